package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Source kinds
const (
	SourceCourseAPI = "courseapi"
	SourceFile      = "file"
)

// Config represents the jobtabs configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Source  SourceConfig  `yaml:"source"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// SourceConfig selects where the job list comes from
type SourceConfig struct {
	Kind     string        `yaml:"kind"`      // courseapi or file
	URL      string        `yaml:"url"`       // courseapi endpoint, empty for the default
	Timeout  time.Duration `yaml:"timeout"`   // 0 means no request timeout
	JobsFile string        `yaml:"jobs_file"` // file source path
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text or console
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand environment variables in the config
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// FromEnv builds the configuration from environment variables only
func FromEnv() (*Config, error) {
	var cfg Config
	var errs error

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("PORT: %w", err))
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("FETCH_TIMEOUT: %w", err))
		}
		cfg.Source.Timeout = timeout
	}
	cfg.Source.Kind = os.Getenv("JOBS_SOURCE")
	cfg.Source.URL = os.Getenv("JOBS_URL")
	cfg.Source.JobsFile = os.Getenv("JOBS_FILE")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")
	cfg.Logging.Format = os.Getenv("LOG_FORMAT")

	if errs != nil {
		return nil, fmt.Errorf("parse environment: %w", errs)
	}

	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceCourseAPI
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// Validate reports every problem with the configuration at once
func (c *Config) Validate() error {
	var errs error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Source.Timeout < 0 {
		errs = multierr.Append(errs, errors.New("source.timeout must not be negative"))
	}

	switch c.Source.Kind {
	case SourceCourseAPI:
		if c.Source.URL == "" {
			break
		}
		u, err := url.Parse(c.Source.URL)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("source.url: %w", err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = multierr.Append(errs, fmt.Errorf("source.url %q must be http or https", c.Source.URL))
		}
	case SourceFile:
		if c.Source.JobsFile == "" {
			errs = multierr.Append(errs, errors.New("source.jobs_file required for file source"))
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf("unsupported source kind: %s", c.Source.Kind))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = multierr.Append(errs, fmt.Errorf("unsupported logging.level: %s", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "text", "console":
	default:
		errs = multierr.Append(errs, fmt.Errorf("unsupported logging.format: %s", c.Logging.Format))
	}

	return errs
}
