// Package config loads the firmware configuration from an optional JSON file,
// falling back to defaults for a standard GuideCane pin layout.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Config is the complete firmware configuration
type Config struct {
	DeviceName string     `json:"deviceName"`
	LogLevel   string     `json:"logLevel"`
	Pins       PinsConfig `json:"pins"`
}

// PinsConfig holds the BCM pin assignments
type PinsConfig struct {
	Trigger uint8 `json:"trigger"`
	Echo    uint8 `json:"echo"`
	Buzzer  uint8 `json:"buzzer"`
	Button  uint8 `json:"button"`
}

func defaultConfig() *Config {
	return &Config{
		DeviceName: "GuideCane",
		LogLevel:   "info",
		Pins: PinsConfig{
			Trigger: 23,
			Echo:    24,
			Buzzer:  18,
			Button:  17,
		},
	}
}

// Load reads the config file at path. A missing file yields the defaults; a
// present but malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config issue")
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config issue")
	}
	return cfg, nil
}
