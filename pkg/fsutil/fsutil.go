// Package fsutil provides the file system primitives gofold needs: bounded
// reads with categorized errors and atomic writes.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultMaxFileSize is the largest file ReadFile accepts when no limit is given (32 MiB).
const DefaultMaxFileSize int64 = 32 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file exceeds the size limit.
	ErrTooLarge = errors.New("file too large")
)

// ReadFile reads a regular file of at most DefaultMaxFileSize bytes.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	return ReadFileLimit(ctx, path, DefaultMaxFileSize)
}

// ReadFileLimit reads a regular file of at most limit bytes. A limit <= 0
// means DefaultMaxFileSize.
func ReadFileLimit(ctx context.Context, path string, limit int64) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, categorize(path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if stat.Size() > limit {
		return nil, fmt.Errorf("%w: %s (%d bytes, limit %d)", ErrTooLarge, path, stat.Size(), limit)
	}

	// Read one byte past the limit to catch files that grew after Stat.
	content, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, categorize(path, err)
	}
	if int64(len(content)) > limit {
		return nil, fmt.Errorf("%w: %s (limit %d)", ErrTooLarge, path, limit)
	}

	return content, nil
}

// Exists reports whether path exists and is a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func categorize(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
