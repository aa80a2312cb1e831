package util

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = ".gengo"

func DefaultAppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, appDirName), nil
}

func DefaultEnvPath() (string, error) {
	base, err := DefaultAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, ".env"), nil
}

func DefaultConfigPath() (string, error) {
	base, err := DefaultAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

// DefaultCacheDir prefers the platform cache directory and falls back to the
// app directory.
func DefaultCacheDir() (string, error) {
	cacheRoot, err := os.UserCacheDir()
	if err == nil && cacheRoot != "" {
		return filepath.Join(cacheRoot, "gengo", "quotes"), nil
	}
	base, err := DefaultAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, ".quotes"), nil
}
