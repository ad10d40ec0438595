package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in each search directory.
const FileName = "labyrinth.yaml"

// Load loads the labyrinth configuration.
// Search order: customPath -> ~/.labyrinth/configs/labyrinth.yaml ->
// ./configs/labyrinth.yaml -> embedded default -> DefaultLabyrinthConfig.
// Files are decoded over the defaults, so they may set only some keys.
func Load(customPath string) (LabyrinthConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the configuration came from.
func LoadWithSource(customPath string) (LabyrinthConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LabyrinthConfig{}, "", fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return LabyrinthConfig{}, "", fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, path, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultLabyrinthYAML)
	if err != nil {
		return DefaultLabyrinthConfig(), "builtin", nil
	}
	return cfg, "embedded", nil
}

// decode unmarshals YAML on top of the hardcoded defaults.
func decode(data []byte) (LabyrinthConfig, error) {
	cfg := DefaultLabyrinthConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LabyrinthConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".labyrinth", "configs", filename)
}

// Marshal renders a configuration as YAML.
func Marshal(cfg LabyrinthConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}
