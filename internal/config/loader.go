package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a board configuration file
func Load(path string) (*BoardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML board configuration
func Parse(data []byte) (*BoardConfig, error) {
	var cfg BoardConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse board config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and that every station names a known feed
func (c *BoardConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid board config: %w", err)
	}

	for _, s := range c.Stations {
		if _, ok := c.Feed(s.Feed); !ok {
			return fmt.Errorf("invalid board config: station %q uses unknown feed %q", s.Name, s.Feed)
		}
	}
	return nil
}

// Feed looks up a feed by name
func (c *BoardConfig) Feed(name string) (FeedConfig, bool) {
	for _, f := range c.Feeds {
		if f.Name == name {
			return f, true
		}
	}
	return FeedConfig{}, false
}
