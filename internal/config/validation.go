package config

import (
	"fmt"
	"net/url"

	"github.com/phaus/fuelio-lubelogger-sync/internal/gdrive"
)

// Validate checks the entire configuration structure. Every error it returns
// is a fatal configuration error raised before any I/O happens.
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateLubelogger(config.Lubelogger); err != nil {
		return fmt.Errorf("lubelogger: %w", err)
	}

	if err := validateDrive(config.Drive); err != nil {
		return fmt.Errorf("drive: %w", err)
	}

	if err := validateFuelio(config.Fuelio); err != nil {
		return fmt.Errorf("fuelio: %w", err)
	}

	if err := validateLogLevel(config.LogLevel); err != nil {
		return err
	}

	return nil
}

// validateLubelogger validates the destination tracker settings.
func validateLubelogger(l Lubelogger) error {
	if err := validateURL(l.URL); err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if l.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if l.Password == "" && l.EncryptedPassword == nil {
		return fmt.Errorf("either password or encrypted_password must be set")
	}

	if l.Password != "" && l.EncryptedPassword != nil {
		return fmt.Errorf("password and encrypted_password are mutually exclusive")
	}

	if l.EncryptedPassword != nil {
		if err := validateEncryptedData(*l.EncryptedPassword); err != nil {
			return fmt.Errorf("invalid encrypted_password: %w", err)
		}
	}

	if l.VehicleID <= 0 {
		return fmt.Errorf("vehicle_id must be a positive integer")
	}

	return nil
}

// validateDrive validates the source storage settings, including the auth
// mode, so an invalid mode is rejected before any I/O happens.
func validateDrive(d Drive) error {
	if d.FolderID == "" {
		return fmt.Errorf("folder_id cannot be empty")
	}

	if d.AuthType == "" {
		return fmt.Errorf("auth_type cannot be empty")
	}

	authType, err := gdrive.ParseAuthType(d.AuthType)
	if err != nil {
		return err
	}

	if d.CredentialsFile == "" {
		return fmt.Errorf("credentials_file cannot be empty")
	}

	if authType == gdrive.AuthTypeUser && d.TokenFile == "" {
		return fmt.Errorf("token_file is required for user auth")
	}

	return nil
}

// validateFuelio validates the source vehicle settings.
func validateFuelio(f Fuelio) error {
	if f.VehicleID <= 0 {
		return fmt.Errorf("fuelio vehicle_id must be a positive integer")
	}

	return nil
}

// validateLogLevel validates the optional log level setting.
func validateLogLevel(level string) error {
	switch level {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log_level %q (expected debug, info, warn or error)", level)
}

// validateURL validates the tracker base URL.
func validateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must use http or https")
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a valid host")
	}

	return nil
}
