// Package config loads the hxstyle command configuration.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"github.com/pthm/hxstyle/lib/encoding"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	SheetConfig struct {
		CriticalCSS bool `yaml:"critical_css"`
	}

	ServerConfig struct {
		Listen       string `yaml:"listen" validate:"required"`
		Snapshot     string `yaml:"snapshot,omitempty" validate:"omitempty,filepath"`
		SnapshotMode string `yaml:"snapshot_mode" validate:"required,oneof=signed sealed"`
		Prefix       string `yaml:"prefix" validate:"required,startswith=/"`
	}

	Config struct {
		Version     int           `yaml:"version" validate:"eq=1"`
		Sheet       SheetConfig   `yaml:"sheet"`
		Server      ServerConfig  `yaml:"server"`
		SnapshotKey SecretString  `yaml:"snapshot_key,omitempty"`
		Logging     LoggingConfig `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// Only fields defined above are accepted.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Default returns the configuration built from the embedded template.
func Default() (*Config, error) {
	return LoadConfiguration("")
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template and
// validates the result. An empty path yields the defaults.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns the expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Mode returns the configured snapshot protection.
func (c *ServerConfig) Mode() encoding.Mode {
	if c.SnapshotMode == "sealed" {
		return encoding.Sealed
	}
	return encoding.Signed
}

// Dump marshals cfg to YAML with secrets masked.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
