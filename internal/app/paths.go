package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName      = "fittrack"
	credentialsName = "credentials.json"
)

func DefaultCredentialsPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, credentialsName), nil
}

func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return nil
}
