package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/yaklabco/gofold/pkg/fsutil"
)

// appName names the gofold directory under system and user config roots.
const appName = "gofold"

// ConfigPaths holds the configuration files found for each layer. An empty
// field means that layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// projectConfigFiles are searched in each directory, first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{".gofold.yml", ".gofold.yaml", "gofold.yml", "gofold.yaml"}

// layerConfigFiles are the file names inside a system or user config dir.
//
//nolint:gochecknoglobals // Read-only lookup table.
var layerConfigFiles = []string{"config.yaml", "config.yml"}

// DiscoverPaths locates the system, user and project configuration files for
// a run started in workDir. Missing files are not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstExisting(systemConfigDir(), layerConfigFiles),
		User:    firstExisting(userConfigDir(), layerConfigFiles),
		Project: project,
	}, nil
}

// systemConfigDir is /etc/gofold, or %ProgramData%\gofold on Windows.
func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	root := os.Getenv("ProgramData")
	if root == "" {
		root = `C:\ProgramData`
	}
	return filepath.Join(root, appName)
}

// userConfigDir follows XDG_CONFIG_HOME, defaulting to ~/.config/gofold.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// firstExisting returns the first of names that exists in dir, or "".
func firstExisting(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		if path := filepath.Join(dir, name); fsutil.Exists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig walks upward from startDir and returns the first project
// config file found. The walk ends after a VCS root or the home directory
// has been checked, or at the filesystem root; "" means nothing was found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := firstExisting(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// isVCSRoot reports whether dir holds a .git, .hg or .svn directory.
func isVCSRoot(dir string) bool {
	for _, name := range []string{".git", ".hg", ".svn"} {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
