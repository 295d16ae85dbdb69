package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/diamond.yaml
var defaultDiamondYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDiamondYAML
}

// Default returns the embedded default configuration.
func Default() DiamondConfig {
	cfg, err := parse(defaultDiamondYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default is invalid: %v", err))
	}
	return cfg
}

// parse decodes a YAML document over the embedded defaults and validates
// the result, so a file only needs the keys it changes.
func parse(data []byte) (DiamondConfig, error) {
	var cfg DiamondConfig
	if err := yaml.Unmarshal(defaultDiamondYAML, &cfg); err != nil {
		return cfg, fmt.Errorf("parse default yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate: %w", err)
	}
	return cfg, nil
}
