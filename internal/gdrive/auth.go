package gdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// AuthType selects how the Drive client authenticates.
type AuthType string

const (
	// AuthTypeService authenticates with a service account key file.
	AuthTypeService AuthType = "service"

	// AuthTypeUser authenticates as a user via OAuth client secrets and a
	// previously cached token.
	AuthTypeUser AuthType = "user"
)

// ParseAuthType validates a configured auth type string.
func ParseAuthType(s string) (AuthType, error) {
	switch AuthType(strings.ToLower(strings.TrimSpace(s))) {
	case AuthTypeService:
		return AuthTypeService, nil
	case AuthTypeUser:
		return AuthTypeUser, nil
	}
	return "", fmt.Errorf("invalid auth type %q (expected %q or %q)", s, AuthTypeService, AuthTypeUser)
}

// Options configures a Drive client.
type Options struct {
	AuthType        AuthType
	CredentialsFile string // service account key, or OAuth client secrets for AuthTypeUser
	TokenFile       string // cached user token, required for AuthTypeUser
}

// clientOptions builds the Drive service options for the selected auth mode.
func (o Options) clientOptions(ctx context.Context) ([]option.ClientOption, error) {
	if o.CredentialsFile == "" {
		return nil, fmt.Errorf("credentials file cannot be empty")
	}

	switch o.AuthType {
	case AuthTypeService:
		return []option.ClientOption{
			option.WithCredentialsFile(o.CredentialsFile),
			option.WithScopes(drive.DriveReadonlyScope),
		}, nil
	case AuthTypeUser:
		source, err := userTokenSource(ctx, o.CredentialsFile, o.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to build user token source: %w", err)
		}
		return []option.ClientOption{option.WithTokenSource(source)}, nil
	}

	return nil, fmt.Errorf("unsupported auth type %q", o.AuthType)
}

// userTokenSource loads OAuth client secrets and a cached user token. The
// token must have been obtained out of band; this tool never runs the
// interactive consent flow.
func userTokenSource(ctx context.Context, secretsFile, tokenFile string) (oauth2.TokenSource, error) {
	if tokenFile == "" {
		return nil, fmt.Errorf("token file cannot be empty for user auth")
	}

	secrets, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secrets: %w", err)
	}

	conf, err := google.ConfigFromJSON(secrets, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secrets: %w", err)
	}

	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return conf.TokenSource(ctx, &token), nil
}
