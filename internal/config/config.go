package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"gengo-go/internal/util"
)

type Config struct {
	API      APIConfig      `yaml:"api"`
	Log      LogConfig      `yaml:"log"`
	Quote    QuoteConfig    `yaml:"quote"`
	Callback CallbackConfig `yaml:"callback"`
	Run      RunConfig      `yaml:"run"`
}

type APIConfig struct {
	Sandbox       bool   `yaml:"sandbox"`
	BaseURL       string `yaml:"base_url"`
	TimeoutSecond int    `yaml:"timeout_second"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type QuoteConfig struct {
	CacheDir string `yaml:"cache_dir"`
}

type CallbackConfig struct {
	Addr string `yaml:"addr"`
	Path string `yaml:"path"`
}

type RunConfig struct {
	PollIntervalMs    int `yaml:"poll_interval_ms"`
	PollTimeoutSecond int `yaml:"poll_timeout_second"`
	Concurrency       int `yaml:"concurrency"`
}

// envOverrides is read from GENGO_* variables and wins over the file.
type envOverrides struct {
	Sandbox  *bool  `envconfig:"SANDBOX"`
	BaseURL  string `envconfig:"BASE_URL"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

const envPrefix = "GENGO"

func Default() (Config, error) {
	cacheDir, err := util.DefaultCacheDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		API:      APIConfig{Sandbox: false, BaseURL: "", TimeoutSecond: 60},
		Log:      LogConfig{Level: "info"},
		Quote:    QuoteConfig{CacheDir: cacheDir},
		Callback: CallbackConfig{Addr: "127.0.0.1:8787", Path: "/gengo/callback"},
		Run:      RunConfig{PollIntervalMs: 5000, PollTimeoutSecond: 900, Concurrency: 4},
	}, nil
}

func ResolvePath(input string) (string, error) {
	if input != "" {
		return input, nil
	}
	return util.DefaultConfigPath()
}

// LoadOrInit reads path, writing the defaults there first when it does not
// exist yet. Environment overrides are applied on top and the result is
// validated.
func LoadOrInit(path string) (Config, error) {
	def, err := Default()
	if err != nil {
		return Config{}, err
	}
	cfg := def
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err := Save(path, def); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	fillDefaults(&cfg, def)
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func fillDefaults(cfg *Config, def Config) {
	if cfg.API.TimeoutSecond <= 0 {
		cfg.API.TimeoutSecond = def.API.TimeoutSecond
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Quote.CacheDir == "" {
		cfg.Quote.CacheDir = def.Quote.CacheDir
	}
	if cfg.Callback.Addr == "" {
		cfg.Callback.Addr = def.Callback.Addr
	}
	if cfg.Callback.Path == "" {
		cfg.Callback.Path = def.Callback.Path
	}
	if cfg.Run.PollIntervalMs <= 0 {
		cfg.Run.PollIntervalMs = def.Run.PollIntervalMs
	}
	if cfg.Run.PollTimeoutSecond <= 0 {
		cfg.Run.PollTimeoutSecond = def.Run.PollTimeoutSecond
	}
	if cfg.Run.Concurrency <= 0 {
		cfg.Run.Concurrency = def.Run.Concurrency
	}
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("read %s_* environment: %w", envPrefix, err)
	}
	if env.Sandbox != nil {
		cfg.API.Sandbox = *env.Sandbox
	}
	if env.BaseURL != "" {
		cfg.API.BaseURL = env.BaseURL
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	return nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
		}
	}
	if c.API.TimeoutSecond < 1 {
		return fmt.Errorf("api.timeout_second must be >= 1")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.Log.Level))); err != nil {
		return fmt.Errorf("log.level=%q: %w", c.Log.Level, err)
	}
	if !strings.HasPrefix(c.Callback.Path, "/") {
		return fmt.Errorf("callback.path must start with /")
	}
	if c.Run.Concurrency > 32 {
		return fmt.Errorf("run.concurrency must be <= 32")
	}
	return nil
}

func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
