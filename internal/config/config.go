// Package config loads clientdesk settings from an optional YAML file and
// CLIENTDESK_* environment variables. Environment values win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/llm"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory when no path is given.
const FileName = "clientdesk.yaml"

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

type Config struct {
	Store StoreConfig `yaml:"store"`
	HTTP  HTTPConfig  `yaml:"http"`
	Log   LogConfig   `yaml:"log"`
	LLM   LLMConfig   `yaml:"llm"`
}

type StoreConfig struct {
	// Backend is "sqlite" (default) or "json".
	Backend string `yaml:"backend"`
	// Path is the database file for sqlite and the data directory for json.
	Path string `yaml:"path"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
	// PublicURL is the base used when handing client links to people.
	PublicURL string `yaml:"public_url"`
}

type LogConfig struct {
	UseCases bool `yaml:"use_cases"`
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// LLMConfig mirrors the file-settable subset of llm.LLMConfig. Zero values
// keep the llm package defaults.
type LLMConfig struct {
	Enabled    bool   `yaml:"enabled"`
	LogCalls   bool   `yaml:"log_calls"`
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	MaxRetries *int   `yaml:"max_retries"`
}

// Default returns the settings used when nothing is configured. The data
// lives under ~/.clientdesk.
func Default() Config {
	dir := ".clientdesk"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".clientdesk")
	}
	return Config{
		Store: StoreConfig{Backend: BackendSQLite, Path: filepath.Join(dir, "clientdesk.db")},
		HTTP:  HTTPConfig{Addr: ":8080", PublicURL: "http://localhost:8080"},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads path, or CLIENTDESK_CONFIG, or ./clientdesk.yaml, in that
// order. An explicitly named file must exist; the implicit one is optional.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		if v := os.Getenv("CLIENTDESK_CONFIG"); v != "" {
			path, explicit = v, true
		} else {
			path = FileName
		}
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Store.Backend == "" {
		c.Store.Backend = d.Store.Backend
	}
	if c.Store.Path == "" {
		c.Store.Path = d.Store.Path
		if c.Store.Backend == BackendJSON {
			c.Store.Path = filepath.Dir(d.Store.Path)
		}
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = d.HTTP.Addr
	}
	if c.HTTP.PublicURL == "" {
		c.HTTP.PublicURL = d.HTTP.PublicURL
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	c.Store.Backend = strings.ToLower(c.Store.Backend)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CLIENTDESK_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("CLIENTDESK_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("CLIENTDESK_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("CLIENTDESK_PUBLIC_URL"); v != "" {
		c.HTTP.PublicURL = v
	}
	if v := os.Getenv("CLIENTDESK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CLIENTDESK_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CLIENTDESK_LOG_USE_CASES: %w", err)
		}
		c.Log.UseCases = b
	}
	return nil
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendJSON:
	default:
		return fmt.Errorf("store backend %q must be %q or %q", c.Store.Backend, BackendSQLite, BackendJSON)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q must be debug, info, warn or error", c.Log.Level)
	}
	if c.LLM.TimeoutMs < 0 {
		return fmt.Errorf("llm timeout_ms must not be negative")
	}
	return nil
}

// LLMSettings layers the file values over llm.DefaultConfig and then lets
// llm.LoadConfig apply the CLIENTDESK_LLM_* variables.
func (c Config) LLMSettings() llm.LLMConfig {
	base := llm.DefaultConfig()
	base.Enabled = c.LLM.Enabled
	base.LogCalls = c.LLM.LogCalls
	base.Endpoint = domain.CoalesceStr(c.LLM.Endpoint, base.Endpoint)
	base.Model = domain.CoalesceStr(c.LLM.Model, base.Model)
	if c.LLM.TimeoutMs > 0 {
		base.TimeoutMs = c.LLM.TimeoutMs
	}
	if c.LLM.MaxRetries != nil && *c.LLM.MaxRetries >= 0 {
		base.MaxRetries = *c.LLM.MaxRetries
	}
	return llm.LoadConfig(base)
}
