package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	fileName   = "diamond.yaml"
	xdgRelPath = "diamond-mine/" + fileName
)

// SourceEmbedded names the built-in configuration in Load results.
const SourceEmbedded = "embedded"

// Load loads the board configuration and reports where it came from.
// Search order: customPath -> ~/.diamond/configs -> $XDG_CONFIG_HOME/diamond-mine
// -> ./configs -> embedded default. An explicit path must load; the other
// locations are skipped when missing or invalid.
func Load(customPath string) (DiamondConfig, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	for _, path := range searchPaths() {
		if cfg, err := loadFile(path); err == nil {
			return cfg, path, nil
		}
	}
	return Default(), SourceEmbedded, nil
}

func loadFile(path string) (DiamondConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DiamondConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(fileName); p != "" {
		paths = append(paths, p)
	}
	if p, err := xdg.SearchConfigFile(xdgRelPath); err == nil {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", fileName))
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".diamond", "configs", filename)
}

// WriteDefault writes the embedded configuration to the XDG config directory
// unless a file already exists there. Returns the file path.
func WriteDefault(force bool) (string, error) {
	path, err := xdg.ConfigFile(xdgRelPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config %s already exists", path)
	}
	if err := os.WriteFile(path, defaultDiamondYAML, 0o644); err != nil {
		return path, fmt.Errorf("write config %s: %w", path, err)
	}
	return path, nil
}
