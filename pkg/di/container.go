package di

import (
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/gitprep/internal/gitops"
	"github.com/goliatone/gitprep/internal/gitservice"
	"github.com/goliatone/gitprep/internal/state"
	"github.com/goliatone/gitprep/pkg/config"
)

// Logger defines the logging interface used throughout the application.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Container exposes resolved dependencies for the CLI orchestration layer.
// All methods return interfaces to prevent leaking concrete implementations.
type Container interface {
	// Core service accessors
	Runner() gitops.Runner
	Fetcher() *gitops.Fetcher
	Checkout() *gitops.Checkout
	Metadata() *gitops.Metadata
	GitService() gitservice.Provider
	Locker() state.Locker

	// Configuration and infrastructure
	Config() *config.Config
	Logger() Logger
	HTTPClient() *http.Client

	// Resource management
	Close() error
}

// Option customises container construction using the functional options pattern.
// Options allow overriding default dependencies for testing and customization.
type Option func(*builder) error

// New creates a container with default wiring and applies the provided options.
// It returns an error if required dependencies are missing or if any option fails.
func New(opts ...Option) (Container, error) {
	b := &builder{}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("di: failed to apply option: %w", err)
		}
	}

	return b.build()
}

// builder holds the dependencies being assembled into a container.
type builder struct {
	cfg *config.Config

	enableInstrumentation bool

	logger     Logger
	httpClient *http.Client

	runner     gitops.Runner
	fetcher    *gitops.Fetcher
	checkout   *gitops.Checkout
	metadata   *gitops.Metadata
	gitService gitservice.Provider
	locker     state.Locker
}

// container implements the Container interface with concrete dependencies.
type container struct {
	cfg        *config.Config
	logger     Logger
	httpClient *http.Client
	runner     gitops.Runner
	fetcher    *gitops.Fetcher
	checkout   *gitops.Checkout
	metadata   *gitops.Metadata
	gitService gitservice.Provider
	locker     state.Locker
}

// Core service accessors
func (c *container) Runner() gitops.Runner            { return c.runner }
func (c *container) Fetcher() *gitops.Fetcher         { return c.fetcher }
func (c *container) Checkout() *gitops.Checkout       { return c.checkout }
func (c *container) Metadata() *gitops.Metadata       { return c.metadata }
func (c *container) GitService() gitservice.Provider  { return c.gitService }
func (c *container) Locker() state.Locker             { return c.locker }

// Configuration and infrastructure accessors
func (c *container) Config() *config.Config   { return c.cfg }
func (c *container) Logger() Logger           { return c.logger }
func (c *container) HTTPClient() *http.Client { return c.httpClient }

// Close performs cleanup of container resources.
// It attempts to close any services that implement io.Closer,
// logging any errors that occur during cleanup.
func (c *container) Close() error {
	var errs []error

	if closer, ok := c.gitService.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("git service close: %w", err))
		}
	}

	if closer, ok := c.locker.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("locker close: %w", err))
		}
	}

	if c.httpClient != nil && c.httpClient.Transport != nil {
		if closer, ok := c.httpClient.Transport.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("http client transport close: %w", err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}

// build assembles the container with all dependencies resolved.
// It validates that required dependencies are present and creates default
// implementations for any that are missing but can be auto-constructed.
func (b *builder) build() (Container, error) {
	start := time.Now()

	// Configuration must be resolved first as other services depend on it
	if b.cfg == nil {
		var err error
		b.cfg, err = provideConfigWithDefaults()
		if err != nil {
			return nil, fmt.Errorf("di: failed to provide default config: %w", err)
		}
	}

	// Logger depends on config for level/format settings
	if b.logger == nil {
		b.logger = provideLoggerWithConfig(b.cfg)
	}

	if b.httpClient == nil {
		b.httpClient = provideHTTPClient()
	}

	if b.runner == nil {
		b.runner = provideRunner()
	}

	if b.fetcher == nil {
		b.fetcher = gitops.NewFetcher(b.runner, b.logger)
	}

	if b.metadata == nil {
		b.metadata = gitops.NewMetadata(b.runner, b.logger)
	}

	if b.checkout == nil {
		b.checkout = gitops.NewCheckout(b.runner, b.metadata, b.logger)
	}

	// Hosting service provider depends on config for token and endpoint
	// and on the shared HTTP client for transport
	if b.gitService == nil {
		svc, err := provideGitServiceWithConfig(b.cfg, b.httpClient)
		if err != nil {
			return nil, fmt.Errorf("di: failed to provide git service: %w", err)
		}
		b.gitService = svc
	}

	if b.locker == nil {
		b.locker = state.NewFilesystemLocker(b.logger)
	}

	c := &container{
		cfg:        b.cfg,
		logger:     b.logger,
		httpClient: b.httpClient,
		runner:     b.runner,
		fetcher:    b.fetcher,
		checkout:   b.checkout,
		metadata:   b.metadata,
		gitService: b.gitService,
		locker:     b.locker,
	}

	if b.enableInstrumentation && b.logger != nil {
		duration := time.Since(start)
		b.logger.Debug("DI container created",
			"duration_ms", duration.Milliseconds(),
			"config_present", b.cfg != nil,
		)
	}

	return c, nil
}

// Configuration options

// WithConfig injects an explicit configuration object into the container.
// If not provided, the container will attempt to load configuration from
// environment variables and default values.
func WithConfig(cfg *config.Config) Option {
	return func(b *builder) error {
		if cfg == nil {
			return fmt.Errorf("config cannot be nil")
		}
		b.cfg = cfg
		return nil
	}
}

// WithLogger injects a custom logger into the container.
// Useful for testing or when using a specific logging framework.
func WithLogger(logger Logger) Option {
	return func(b *builder) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		b.logger = logger
		return nil
	}
}

// WithHTTPClient injects a custom HTTP client into the container.
func WithHTTPClient(client *http.Client) Option {
	return func(b *builder) error {
		if client == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		b.httpClient = client
		return nil
	}
}

// Core service override options for testing

// WithRunner injects a custom git command runner implementation.
func WithRunner(runner gitops.Runner) Option {
	return func(b *builder) error {
		if runner == nil {
			return fmt.Errorf("runner cannot be nil")
		}
		b.runner = runner
		return nil
	}
}

// WithGitService injects a custom hosting service provider implementation.
func WithGitService(svc gitservice.Provider) Option {
	return func(b *builder) error {
		if svc == nil {
			return fmt.Errorf("git service cannot be nil")
		}
		b.gitService = svc
		return nil
	}
}

// WithLocker injects a custom locker implementation.
func WithLocker(locker state.Locker) Option {
	return func(b *builder) error {
		if locker == nil {
			return fmt.Errorf("locker cannot be nil")
		}
		b.locker = locker
		return nil
	}
}

// Build options

// WithInstrumentation enables logging hooks for DI container creation.
func WithInstrumentation() Option {
	return func(b *builder) error {
		b.enableInstrumentation = true
		return nil
	}
}
