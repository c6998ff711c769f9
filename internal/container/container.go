package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/aidcase/workflow/internal/application/dispatcher"
	"github.com/aidcase/workflow/internal/application/port"
	appworkflow "github.com/aidcase/workflow/internal/application/workflow"
	"github.com/aidcase/workflow/internal/config"
	"github.com/aidcase/workflow/internal/export"
	"github.com/aidcase/workflow/internal/worker"
	"github.com/aidcase/workflow/pkg/utils"
)

// Ports carries the storage adapters the embedder provides. The engine ships
// no database driver; any backend satisfying these interfaces can host it.
type Ports struct {
	Repository   port.RequestRepository
	Recorder     port.TransitionRecorder
	Transactions port.TransactionManager
}

func (p Ports) validate() error {
	if p.Repository == nil {
		return fmt.Errorf("request repository is required")
	}
	if p.Recorder == nil {
		return fmt.Errorf("transition recorder is required")
	}
	if p.Transactions == nil {
		return fmt.Errorf("transaction manager is required")
	}
	return nil
}

// Container wires configuration, domain components, the lifecycle service and
// background workers, with ordered startup and reverse-order teardown.
type Container struct {
	config *config.Config
	logger *zap.Logger
	ports  Ports

	components *appworkflow.Components
	dispatcher dispatcher.Dispatcher
	exporter   *export.Exporter
	service    appworkflow.Service
	workers    *worker.Manager

	mu     sync.Mutex
	cancel context.CancelFunc
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a container from configuration and the embedder's
// storage ports. A nil logger is built from the config's logger section.
// Components are not initialized until Start.
func NewContainer(cfg *config.Config, logger *zap.Logger, ports Ports) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := ports.validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		built, err := utils.NewLogger(utils.LoggerConfig{
			Level:      cfg.Logger.Level,
			OutputPath: cfg.Logger.OutputPath,
			Format:     cfg.Logger.Format,
		})
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		logger = built
	}

	return &Container{
		config: cfg,
		logger: logger,
		ports:  ports,
	}, nil
}

// Start initializes the components in dependency order:
// 1. Domain components from the config tables
// 2. Event dispatcher
// 3. Exporter
// 4. Lifecycle service
// 5. Background workers
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.logger.Info("Starting container initialization")

	c.components = ProvideComponents(c.config)
	c.logger.Info("Domain components initialized")

	c.dispatcher = ProvideDispatcher(c.logger)
	registerEventLogging(c.dispatcher, c.logger)
	c.logger.Info("Dispatcher initialized")

	c.exporter = ProvideExporter(&c.config.Export, c.components, c.logger)

	service, err := ProvideService(&ServiceDeps{
		Components: c.components,
		Ports:      c.ports,
		Dispatcher: c.dispatcher,
		Exporter:   c.exporter,
		Logger:     c.logger,
	})
	if err != nil {
		cancel()
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	c.service = service
	c.logger.Info("Lifecycle service initialized")

	c.workers = ProvideWorkers(&c.config.Worker, c.service, c.components, c.logger)
	if err := c.workers.StartAll(runCtx); err != nil {
		cancel()
		return fmt.Errorf("failed to start workers: %w", err)
	}
	c.logger.Info("Workers started", zap.Int("worker_count", c.workers.Count()))

	c.ready.Store(true)
	c.logger.Info("Container started successfully")

	return nil
}

// Close shuts the components down in reverse order
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	if c.cancel != nil {
		c.cancel()
	}

	if c.workers != nil {
		c.workers.StopAll()
		c.logger.Info("Workers stopped")
	}

	if c.dispatcher != nil {
		if err := c.dispatcher.Close(); err != nil {
			c.logger.Error("Failed to close dispatcher", zap.Error(err))
			errs = append(errs, fmt.Errorf("close dispatcher: %w", err))
		} else {
			c.logger.Info("Dispatcher closed")
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready reports whether Start has completed and Close has not run
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components
func (c *Container) Health() *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	if c.service != nil {
		status.Components["service"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["service"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	if c.dispatcher != nil {
		status.Components["dispatcher"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["dispatcher"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	if c.workers != nil {
		running := c.workers.Running()
		status.Components["workers"] = ComponentHealth{
			Healthy: running,
			Message: fmt.Sprintf("worker count: %d", c.workers.Count()),
		}
		if !running {
			status.Overall = false
		}
	} else {
		status.Components["workers"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	return status
}

// Service returns the request lifecycle service
func (c *Container) Service() appworkflow.Service {
	return c.service
}

// Dispatcher returns the event dispatcher, for embedders attaching handlers
func (c *Container) Dispatcher() dispatcher.Dispatcher {
	return c.dispatcher
}

// Components returns the assembled domain components
func (c *Container) Components() *appworkflow.Components {
	return c.components
}

// Exporter returns the XLSX register exporter
func (c *Container) Exporter() *export.Exporter {
	return c.exporter
}

// Workers returns the worker manager
func (c *Container) Workers() *worker.Manager {
	return c.workers
}

// Logger returns the container's logger
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// zapLoggerAdapter adapts zap.Logger to the keysAndValues-style Logger
// interfaces of the service and the dispatcher
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
