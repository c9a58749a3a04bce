package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"webpower-client/internal/webpower"
)

type WebpowerConfig struct {
	Domain   string `yaml:"domain"`
	Path     string `yaml:"path"`
	Customer string `yaml:"customer"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Trace    bool   `yaml:"trace"`
}

type MetricsConfig struct {
	Port int `yaml:"port" validate:"omitempty,gte=0,lte=65535"`
}

// Config is the YAML configuration of the CLI. Every key is optional; the
// webpower section falls back to the client's defaults.
type Config struct {
	Webpower WebpowerConfig `yaml:"webpower,flow"`
	Metrics  MetricsConfig  `yaml:"metrics,flow"`
}

func NewFromYaml(filePath string) (*Config, error) {
	yamlData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return NewFromYamlContent(yamlData)
}

func NewFromYamlContent(yamlContent []byte) (*Config, error) {
	cfg := &Config{}
	yamlString := os.ExpandEnv(string(yamlContent))
	reader := strings.NewReader(yamlString)

	if err := cfg.load(reader); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) load(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	decodeErr := decoder.Decode(c)
	if errors.Is(decodeErr, io.EOF) {
		// An empty file is a valid configuration: everything defaults.
		decodeErr = nil
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.Struct(c)

	if decodeErr != nil && err != nil {
		return fmt.Errorf("%w\n%w", err, decodeErr)
	}
	if decodeErr != nil {
		return decodeErr
	}
	if err != nil {
		return err
	}

	if c.Webpower.Path == "" {
		c.Webpower.Path = webpower.DefaultPath
	}

	return nil
}

func (c *Config) GetClientConfig() webpower.Config {
	return webpower.Config{
		Domain:   c.Webpower.Domain,
		Path:     c.Webpower.Path,
		Customer: c.Webpower.Customer,
		User:     c.Webpower.User,
		Password: c.Webpower.Password,
		Trace:    c.Webpower.Trace,
	}
}

func (c *Config) GetMetricsPort() int {
	return c.Metrics.Port
}
