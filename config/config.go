package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds the settings shared by every qgrover command.
type Config struct {
	Shots   int    `yaml:"shots"`
	Seed    int64  `yaml:"seed"`
	Workers int    `yaml:"workers"`
	Debug   bool   `yaml:"debug"`
	LogFile string `yaml:"logFile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Shots:   1024,
		Seed:    1,
		Workers: 1,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}

func (c *Config) Validate() error {
	if c.Shots <= 0 {
		return errors.Errorf("shots must be positive, got %d", c.Shots)
	}
	if c.Workers <= 0 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
