package zabbix

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
	"github.com/effective-security/x/values"
	"github.com/go-playground/validator/v10"
)

// DefaultMaxResponseLength bounds the text returned to the agent when
// the configuration does not set a limit.
const DefaultMaxResponseLength = 4096

// Config describes the Zabbix endpoint and response shaping limits.
// It is supplied once at construction and never mutated.
type Config struct {
	// APIURL is the full URL of the JSON-RPC endpoint,
	// e.g. https://zabbix.example.com/api_jsonrpc.php
	APIURL string `json:"api_url" yaml:"api_url" validate:"required,url"`
	// APIToken is a pre-issued API token, passed as a Bearer credential.
	APIToken string `json:"api_token" yaml:"api_token" validate:"required"`
	// MaxResponseLength caps the length of the string returned to the
	// agent. Defaults to DefaultMaxResponseLength.
	MaxResponseLength int `json:"max_response_length,omitempty" yaml:"max_response_length,omitempty" validate:"omitempty,gt=0"`
}

// LoadConfig reads the configuration from a JSON or YAML file,
// expanding environment variables in values.
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required fields. Errors match ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.WithMessage(ErrInvalidConfig, err.Error())
	}
	return nil
}

// MaxLen returns the configured response limit, or the default.
func (c *Config) MaxLen() int {
	return values.NumbersCoalesce(c.MaxResponseLength, DefaultMaxResponseLength)
}
