package fuelio

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Downloader is the part of the cloud storage client the backup fetch needs.
type Downloader interface {
	// FindFile returns the ID of the file with the given name inside a folder.
	FindFile(ctx context.Context, folderID, name string) (string, error)

	// Download streams the content of a file to w.
	Download(ctx context.Context, fileID string, w io.Writer) error
}

// Backup locates and reads a Fuelio backup archive from cloud storage.
type Backup struct {
	drive     Downloader
	folderID  string
	vehicleID int
	logger    *log.Logger
}

// NewBackup creates a backup source for one Fuelio vehicle.
func NewBackup(drive Downloader, folderID string, vehicleID int, logger *log.Logger) *Backup {
	return &Backup{
		drive:     drive,
		folderID:  folderID,
		vehicleID: vehicleID,
		logger:    logger,
	}
}

// csvName returns the name of the sync CSV inside the backup archive.
func (b *Backup) csvName() string {
	return fmt.Sprintf("vehicle-%d-sync.csv", b.vehicleID)
}

// FetchRecords downloads the backup archive, extracts the sync CSV and
// returns the parsed fillup records. The temporary download area is removed
// before return on every path.
func (b *Backup) FetchRecords(ctx context.Context) ([]Record, error) {
	name := b.csvName()

	fileID, err := b.drive.FindFile(ctx, b.folderID, name+".zip")
	if err != nil {
		return nil, fmt.Errorf("no backup found for vehicle %d: %w", b.vehicleID, err)
	}

	tempDir, err := os.MkdirTemp("", "fuelio-sync-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	archivePath := filepath.Join(tempDir, "fuelio.zip")
	if err := b.downloadArchive(ctx, fileID, archivePath); err != nil {
		return nil, err
	}
	b.logger.Debug("downloaded backup archive", "file", name+".zip")

	csvPath, err := extractEntry(archivePath, name, filepath.Join(tempDir, "fuelio"))
	if err != nil {
		return nil, fmt.Errorf("failed to extract backup: %w", err)
	}

	csvFile, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open extracted CSV: %w", err)
	}
	defer csvFile.Close()

	records, err := ParseCSV(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return records, nil
}

// downloadArchive streams the backup archive to the given path.
func (b *Backup) downloadArchive(ctx context.Context, fileID, path string) error {
	archive, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}

	if err := b.drive.Download(ctx, fileID, archive); err != nil {
		archive.Close()
		return fmt.Errorf("failed to download backup archive: %w", err)
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("failed to write archive file: %w", err)
	}

	return nil
}

// extractEntry extracts the single named entry from a zip archive into
// destDir and returns its path. Only the exact entry name is accepted, so
// hostile archive paths never reach the filesystem.
func extractEntry(archivePath, name, destDir string) (string, error) {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	for _, entry := range archive.File {
		if entry.Name != name {
			continue
		}

		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create extraction directory: %w", err)
		}

		src, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open archive entry %s: %w", name, err)
		}
		defer src.Close()

		destPath := filepath.Join(destDir, name)
		dest, err := os.Create(destPath)
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", destPath, err)
		}

		if _, err := io.Copy(dest, src); err != nil {
			dest.Close()
			return "", fmt.Errorf("failed to extract %s: %w", name, err)
		}

		if err := dest.Close(); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", destPath, err)
		}

		return destPath, nil
	}

	return "", fmt.Errorf("archive does not contain %s", name)
}
