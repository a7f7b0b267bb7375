// Package config loads runtime settings for the sdui binaries. Values are
// layered: defaults, then a YAML file, then a .env file, then SDUI_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config groups every setting.
type Config struct {
	Platform  string    `yaml:"platform" env:"SDUI_PLATFORM"`
	Theme     Theme     `yaml:"theme"`
	Analytics Analytics `yaml:"analytics"`
	Images    Images    `yaml:"images"`
	Log       Log       `yaml:"log"`
	Remote    Remote    `yaml:"remote"`
	Server    Server    `yaml:"server"`
}

// Theme selects the go-theme manifest backing the design system. Manifest is
// a YAML manifest file; empty disables the design system.
type Theme struct {
	Manifest string `yaml:"manifest" env:"SDUI_THEME_MANIFEST"`
	Name     string `yaml:"name" env:"SDUI_THEME"`
	Variant  string `yaml:"variant" env:"SDUI_THEME_VARIANT"`
}

// Analytics configures the built-in analytics providers. Actions maps action
// types to the attributes recorded for them.
type Analytics struct {
	Enabled bool                `yaml:"enabled" env:"SDUI_ANALYTICS_ENABLED"`
	Screens bool                `yaml:"screens" env:"SDUI_ANALYTICS_SCREENS"`
	Actions map[string][]string `yaml:"actions"`
}

// Images configures remote image loading.
type Images struct {
	Timeout  time.Duration `yaml:"timeout" env:"SDUI_IMAGES_TIMEOUT"`
	MaxBytes int64         `yaml:"max_bytes" env:"SDUI_IMAGES_MAX_BYTES"`
}

// Log configures the logrus logger.
type Log struct {
	Level  string `yaml:"level" env:"SDUI_LOG_LEVEL"`
	Format string `yaml:"format" env:"SDUI_LOG_FORMAT"`
}

// Remote configures loading screens over HTTP.
type Remote struct {
	AllowHTTP bool          `yaml:"allow_http" env:"SDUI_REMOTE_ALLOW_HTTP"`
	Timeout   time.Duration `yaml:"timeout" env:"SDUI_REMOTE_TIMEOUT"`
}

// Server configures the mock API.
type Server struct {
	Addr string `yaml:"addr" env:"SDUI_SERVER_ADDR"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Platform: "html",
		Images: Images{
			Timeout:  10 * time.Second,
			MaxBytes: 10 << 20,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Remote: Remote{
			Timeout: 15 * time.Second,
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Options controls where Load reads from.
type Options struct {
	// Path is the YAML file. Empty skips it; a missing file is an error.
	Path string
	// EnvFiles are loaded with godotenv before decoding the environment.
	// Missing files are ignored. Variables already set win.
	EnvFiles []string
}

// Load returns Default overlaid with the YAML file, .env files and
// environment.
func Load(opts Options) (Config, error) {
	cfg := Default()

	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", opts.Path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", opts.Path, err)
		}
	}

	for _, file := range opts.EnvFiles {
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("config: load env %s: %w", file, err)
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	switch strings.ToLower(c.Platform) {
	case "html", "terminal":
	default:
		return fmt.Errorf("config: unknown platform %q", c.Platform)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	if c.Images.Timeout < 0 || c.Remote.Timeout < 0 {
		return errors.New("config: timeouts must not be negative")
	}
	return nil
}

// NewLogger builds a logrus logger writing to out, stderr when nil.
func NewLogger(cfg Log, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	if out == nil {
		out = os.Stderr
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}
