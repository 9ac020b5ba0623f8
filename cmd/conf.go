package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/scitags/sysinfo-go/api"
	"github.com/scitags/sysinfo-go/exporter"
	"github.com/scitags/sysinfo-go/netlink"
)

type Config struct {
	LogLevel string `yaml:"logLevel"`
	Backend  string `yaml:"backend"`

	Netlink  netlink.Config  `yaml:"netlink"`
	Api      api.Config      `yaml:"api"`
	Exporter exporter.Config `yaml:"exporter"`
}

var DefaultConfig = Config{
	LogLevel: "info",
	Netlink:  netlink.DefaultConfig,
	Api:      api.DefaultConfig,
	Exporter: exporter.DefaultConfig,
}

func (c Config) String() string {
	m, err := yaml.MarshalWithOptions(c, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return "marshalling error..."
	}
	return string(m)
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := config(DefaultConfig)

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = Config(def)

	return nil
}

// ReadConf parses the configuration at path. An empty path yields the
// defaults.
func ReadConf(path string) (*Config, error) {
	if path == "" {
		c := DefaultConfig
		return &c, nil
	}

	r, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the configuration file: %w", err)
	}

	conf := DefaultConfig
	if err := yaml.Unmarshal(r, &conf); err != nil {
		return nil, fmt.Errorf("error unmarshaling the configuration: %w", err)
	}

	return &conf, nil
}
