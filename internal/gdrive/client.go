package gdrive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
)

// Client wraps the Drive API for locating and downloading backup files.
type Client struct {
	service *drive.Service
}

// NewClient creates an authenticated Drive client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	clientOpts, err := opts.clientOptions(ctx)
	if err != nil {
		return nil, err
	}

	service, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{service: service}, nil
}

// FindFile returns the ID of the file with the given name inside a folder.
func (c *Client) FindFile(ctx context.Context, folderID, name string) (string, error) {
	list, err := c.service.Files.List().
		Q(buildFileQuery(folderID, name)).
		Fields("files(id, name, modifiedTime)").
		PageSize(10).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to search folder %s: %w", folderID, err)
	}

	if len(list.Files) == 0 {
		return "", fmt.Errorf("no file named %s found in folder %s", name, folderID)
	}

	return list.Files[0].Id, nil
}

// Download streams the content of a file to w.
func (c *Client) Download(ctx context.Context, fileID string, w io.Writer) error {
	resp, err := c.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	return nil
}

// buildFileQuery builds a Drive search expression for an exact file name
// within a parent folder, excluding trashed files. Single quotes in the
// inputs are escaped per the Drive query grammar.
func buildFileQuery(folderID, name string) string {
	escape := func(s string) string {
		return strings.ReplaceAll(s, "'", `\'`)
	}
	return fmt.Sprintf("'%s' in parents and name = '%s' and trashed = false", escape(folderID), escape(name))
}
