package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"orderdesk/internal/config"
)

// LoadConfig reads the optional YAML file at path as the base configuration
// and lets environment variables override it. An empty path means env only.
func LoadConfig(path string) (*config.Config, error) {
	base := config.Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &base); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg, err := config.LoadWithBase(base)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
