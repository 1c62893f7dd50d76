package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetUserDataDir returns the user-level darijacode directory (~/.darijacode)
func GetUserDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".darijacode"), nil
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	dataDir, err := GetUserDataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, "config.json"), nil
}

// GetStoreDir returns the directory holding the persisted collections
func GetStoreDir() (string, error) {
	dataDir, err := GetUserDataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, "store"), nil
}

// EnsureDataDir creates the darijacode directory tree if it does not exist
func EnsureDataDir() error {
	storeDir, err := GetStoreDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(storeDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	return nil
}
