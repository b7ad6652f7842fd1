// Package archive provides zip creation and member extraction for project
// containers and the final package archive.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mholt/archives"
	"github.com/qpack-dev/qpack/pkg/fsutil"
)

// Manager handles archive extraction and creation operations.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// ExtractFile extracts a single member from an archive to destPath.
func (am *Manager) ExtractFile(ctx context.Context, archivePath, memberName, destPath string) error {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	// Ensure archive FS is closed after extraction
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	srcFile, err := fsys.Open(memberName)
	if err != nil {
		return fmt.Errorf("failed to open archive member %s: %w", memberName, err)
	}
	defer func() { _ = srcFile.Close() }()

	if err := fsutil.EnsureFileDir(destPath); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	dstFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", destPath, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy member %s to %s: %w", memberName, destPath, err)
	}

	return nil
}

// CreateFromDir zips the entire contents of sourceDir into archivePath. Paths
// inside the archive are relative to sourceDir.
func (am *Manager) CreateFromDir(ctx context.Context, sourceDir, archivePath string) error {
	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for source directory: %w", err)
	}

	archiveFiles, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath + string(os.PathSeparator): "",
	})
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}

	return am.write(ctx, archiveFiles, archivePath)
}

// CreateFromFiles zips an explicit set of files into archivePath. The map
// keys are on-disk paths and the values the names to store in the archive.
func (am *Manager) CreateFromFiles(ctx context.Context, files map[string]string, archivePath string) error {
	archiveFiles, err := archives.FilesFromDisk(ctx, nil, files)
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}

	return am.write(ctx, archiveFiles, archivePath)
}

func (am *Manager) write(ctx context.Context, archiveFiles []archives.FileInfo, archivePath string) error {
	file, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", archivePath, err)
	}
	// Ensure data is flushed and handle is released promptly
	defer func() {
		_ = file.Sync()
		_ = file.Close()
	}()

	format := archives.Zip{}
	if err := format.Archive(ctx, file, archiveFiles); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	return nil
}
