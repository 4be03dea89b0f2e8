package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file looked up when --config is not given.
const DefaultConfigPath = "config.yml"

// Load reads and validates configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DebugEnabled reports whether debug logging was requested, either via the
// debug flag or an explicit log level.
func (c *Config) DebugEnabled() bool {
	return c.Debug || c.LogLevel == "debug"
}

// ResolvePassword returns the Lubelogger password, decrypting the encrypted
// form when the plaintext is not set.
func (l Lubelogger) ResolvePassword() (string, error) {
	if l.Password != "" {
		return l.Password, nil
	}

	if l.EncryptedPassword != nil {
		password, err := DecryptPassword(*l.EncryptedPassword)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt lubelogger password: %w", err)
		}
		return password, nil
	}

	return "", fmt.Errorf("lubelogger password is not configured")
}
