// Package fileutil provides path helpers and the filesystem collaborators
// used by file-existence validation.
package fileutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/githubnext/fieldcheck/pkg/logger"
)

var log = logger.New("fileutil:fileutil")

// ValidateAbsolutePath cleans path and checks that it is absolute.
//
//	cleanPath, err := fileutil.ValidateAbsolutePath(userInputPath)
//	if err != nil {
//	    return fmt.Errorf("invalid path: %w", err)
//	}
func ValidateAbsolutePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path cannot be empty")
	}

	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		return "", fmt.Errorf("path must be absolute, got: %s", path)
	}
	return cleanPath, nil
}

// ResolvePath makes path absolute against the working directory and cleans it.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return ValidateAbsolutePath(abs)
}

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// OSPathChecker checks paths on the local filesystem. Files, directories and
// anything else os.Stat can see count as existing; symlinks are followed.
type OSPathChecker struct{}

// PathExists reports whether path exists. A missing path, or a path that runs
// through a regular file, is reported as false; other stat failures such as
// permission errors are returned.
func (OSPathChecker) PathExists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return false, nil
	default:
		log.Printf("Stat failed for %s: %v", path, err)
		return false, err
	}
}

// FSPathChecker checks paths inside an fs.FS, for example an embedded tree or
// an fstest.MapFS in tests. Paths are slash-separated; a leading slash and
// "./" are tolerated.
type FSPathChecker struct {
	FS fs.FS
}

// PathExists reports whether path exists in the file system.
func (c FSPathChecker) PathExists(_ context.Context, name string) (bool, error) {
	if c.FS == nil {
		return false, errors.New("fs path checker has no file system")
	}

	name = path.Clean("/" + filepath.ToSlash(name))
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return false, nil
	}

	_, err := fs.Stat(c.FS, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
