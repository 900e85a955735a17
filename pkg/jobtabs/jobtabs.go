package jobtabs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/lei/jobtabs/internal/api"
	"github.com/lei/jobtabs/internal/config"
	"github.com/lei/jobtabs/internal/provider"
	"github.com/lei/jobtabs/internal/provider/courseapi"
	"github.com/lei/jobtabs/internal/provider/fixture"
	"github.com/lei/jobtabs/internal/service"
	"github.com/lei/jobtabs/internal/widget"
	"github.com/lei/jobtabs/pkg/logger"
)

// Jobtabs is a jobs tab view instance that can be embedded in applications
type Jobtabs struct {
	config  *Config
	widget  *widget.Widget
	service *service.Service
	router  http.Handler
	server  *http.Server
	logger  *logger.Logger
}

// Config holds the configuration for a Jobtabs instance
type Config struct {
	// Server configuration
	Server ServerConfig

	// Source configuration
	Source SourceConfig

	// Logger configuration
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SourceConfig selects where the job list is fetched from
type SourceConfig struct {
	Kind string // "courseapi" (default) or "file"

	// URL overrides the course API endpoint
	URL string

	// Timeout bounds the single fetch; zero means no timeout
	Timeout time.Duration

	// JobsFile is read by the file source
	JobsFile string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text or console
}

// New creates a new Jobtabs instance. The widget is not mounted until
// Mount or Start is called.
func New(cfg *Config) (*Jobtabs, error) {
	return NewWithLogger(cfg, nil)
}

// NewWithLogger is New with a caller-supplied logger, used when stdout is
// not available for logs. A nil logger is built from cfg.Logging.
func NewWithLogger(cfg *Config, appLogger *logger.Logger) (*Jobtabs, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if appLogger == nil {
		appLogger = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	var src provider.Source
	switch cfg.Source.Kind {
	case "", config.SourceCourseAPI:
		src = courseapi.NewAdapter(&courseapi.Config{
			URL:     cfg.Source.URL,
			Timeout: cfg.Source.Timeout,
		}, appLogger)
		appLogger.Info("initialized course api source", "url", cfg.Source.URL, "timeout", cfg.Source.Timeout)

	case config.SourceFile:
		if cfg.Source.JobsFile == "" {
			return nil, fmt.Errorf("jobs file required when source kind is 'file'")
		}
		src = fixture.NewSource(cfg.Source.JobsFile, appLogger)
		appLogger.Info("initialized file source", "path", cfg.Source.JobsFile)

	default:
		return nil, fmt.Errorf("unsupported source kind: %s", cfg.Source.Kind)
	}

	w := widget.New(src, appLogger)
	svc := service.NewService(w, appLogger)

	handlers := api.NewHandlers(svc)
	loggingMiddleware := api.NewLoggingMiddleware(appLogger)
	router := api.NewRouter(handlers, loggingMiddleware)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Jobtabs{
		config:  cfg,
		widget:  w,
		service: svc,
		router:  router,
		server:  srv,
		logger:  appLogger,
	}, nil
}

// Mount starts loading jobs. Call it once when embedding the Handler
// without Start; the load is canceled when ctx is done or on Unmount.
func (j *Jobtabs) Mount(ctx context.Context) error {
	return j.widget.Mount(ctx)
}

// Unmount ends the widget's lifetime, discarding an unfinished load
func (j *Jobtabs) Unmount() {
	j.widget.Unmount()
}

// Start mounts the widget and serves HTTP until ctx is canceled.
// This is a blocking call.
func (j *Jobtabs) Start(ctx context.Context) error {
	if err := j.Mount(ctx); err != nil {
		return fmt.Errorf("mount widget: %w", err)
	}

	serverErrors := make(chan error, 1)

	go func() {
		j.logger.Info("starting http server", "port", j.config.Server.Port)
		serverErrors <- j.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		j.Unmount()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		j.logger.Info("shutdown signal received")

		// Unmount first so open event streams end and shutdown can drain
		j.Unmount()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := j.server.Shutdown(shutdownCtx); err != nil {
			err = multierr.Append(err, j.server.Close())
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		j.logger.Info("server stopped gracefully")
		return nil
	}
}

// Handler returns the http.Handler for the view and API.
// Use this to integrate into an existing HTTP server.
func (j *Jobtabs) Handler() http.Handler {
	return j.router
}

// Widget returns the underlying widget
func (j *Jobtabs) Widget() *widget.Widget {
	return j.widget
}

// Service returns the underlying service layer
func (j *Jobtabs) Service() *service.Service {
	return j.service
}

// NewFromEnv creates an instance from a YAML config file, or from
// environment variables alone when configFile is empty
func NewFromEnv(configFile string) (*Jobtabs, error) {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// LoadConfig reads and validates configuration from a YAML file, or from
// environment variables alone when configFile is empty
func LoadConfig(configFile string) (*Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		Source: SourceConfig{
			Kind:     cfg.Source.Kind,
			URL:      cfg.Source.URL,
			Timeout:  cfg.Source.Timeout,
			JobsFile: cfg.Source.JobsFile,
		},
		Logging: LoggingConfig{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		},
	}, nil
}
