package config

import (
	"io"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

type Config struct {
	LogLevel  string         `mapstructure:"log_level"`
	LogFormat string         `mapstructure:"log_format"`
	Sessions  SessionsConfig `mapstructure:"sessions"`
	Index     IndexConfig    `mapstructure:"index"`
	Display   DisplayConfig  `mapstructure:"display"`
	Verify    VerifyConfig   `mapstructure:"verify"`
}

type SessionsConfig struct {
	Dir           string `mapstructure:"dir"`
	Suffix        string `mapstructure:"suffix"`
	DefaultHealth int    `mapstructure:"default_health"`
}

type IndexConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

type DisplayConfig struct {
	ColumnWidth int    `mapstructure:"column_width"`
	HealthGlyph string `mapstructure:"health_glyph"`
}

type VerifyConfig struct {
	Workers int `mapstructure:"workers"`
}

func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Sessions.DefaultHealth < 0 || c.Sessions.DefaultHealth > 255 {
		return errors.Errorf("sessions.default_health must be between 0 and 255, got %d", c.Sessions.DefaultHealth)
	}
	if c.Display.ColumnWidth < 1 {
		return errors.Errorf("display.column_width must be positive, got %d", c.Display.ColumnWidth)
	}
	if c.Verify.Workers < 1 {
		return errors.Errorf("verify.workers must be positive, got %d", c.Verify.Workers)
	}
	return nil
}
