// Package config resolves chatsh settings from the config file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/zhubert/chatsh/internal/converter/openai"
	"github.com/zhubert/chatsh/internal/errors"
	"github.com/zhubert/chatsh/internal/executor"
)

// Environment variables
const (
	EnvAPIKey  = "OPENAI_KEY"
	EnvBaseURL = "OPENAI_BASE_URL"
	EnvModel   = "CHATSH_MODEL"
	EnvShell   = "CHATSH_SHELL"
	EnvConfig  = "CHATSH_CONFIG"
)

// Config holds the resolved settings for one run.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Shell   string
	Theme   string // empty selects the default theme
	Notify  bool   // desktop notification after each execution
	Copy    bool   // copy each produced command to the clipboard

	filePath string
}

// file is the on-disk shape of ~/.chatsh/config.json. Pointers distinguish
// "unset" from the zero value so only present keys override defaults.
type file struct {
	Model   *string `json:"model,omitempty"`
	BaseURL *string `json:"base_url,omitempty"`
	Shell   *string `json:"shell,omitempty"`
	Theme   *string `json:"theme,omitempty"`
	Notify  *bool   `json:"notify,omitempty"`
	Copy    *bool   `json:"copy,omitempty"`
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".chatsh"), nil
}

// DefaultPath returns the config file location, honoring CHATSH_CONFIG.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Defaults returns a Config with built-in values only.
func Defaults() *Config {
	return &Config{
		Model:   openai.DefaultModel,
		BaseURL: openai.DefaultBaseURL,
		Shell:   executor.DefaultShell,
	}
}

// Load reads the default config file and the environment.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("~/.chatsh/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path (a missing file is fine), then
// applies environment overrides. The API key is not checked here; call
// Validate before talking to the backend.
func LoadFrom(path string) (*Config, error) {
	cfg := Defaults()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.ConfigLoadFailed(path, err)
	default:
		var f file
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
		cfg.applyFile(f)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(f file) {
	setString(&c.Model, f.Model)
	setString(&c.BaseURL, f.BaseURL)
	setString(&c.Shell, f.Shell)
	setString(&c.Theme, f.Theme)
	if f.Notify != nil {
		c.Notify = *f.Notify
	}
	if f.Copy != nil {
		c.Copy = *f.Copy
	}
}

func (c *Config) applyEnv() {
	c.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvModel)); v != "" {
		c.Model = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvShell)); v != "" {
		c.Shell = v
	}
}

func setString(dst *string, v *string) {
	if v != nil && strings.TrimSpace(*v) != "" {
		*dst = strings.TrimSpace(*v)
	}
}

// Overrides carries flag values. Nil fields were not set on the command line.
type Overrides struct {
	Model   *string
	BaseURL *string
	Shell   *string
	Theme   *string
	Notify  *bool
	Copy    *bool
}

// Apply layers flag overrides on top of the file and environment.
func (c *Config) Apply(o Overrides) {
	setString(&c.Model, o.Model)
	setString(&c.BaseURL, o.BaseURL)
	setString(&c.Shell, o.Shell)
	setString(&c.Theme, o.Theme)
	if o.Notify != nil {
		c.Notify = *o.Notify
	}
	if o.Copy != nil {
		c.Copy = *o.Copy
	}
}

// Validate checks that the config can start a session.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.ConfigMissingKey(EnvAPIKey)
	}
	if c.Model == "" {
		return errors.ConfigInvalid("model must not be empty")
	}
	if c.Shell == "" {
		return errors.ConfigInvalid("shell must not be empty")
	}
	return nil
}

// Path returns the config file location this Config was loaded from.
func (c *Config) Path() string {
	return c.filePath
}
