// Package container wires the request lifecycle engine for embedders:
// configuration, domain components, dispatcher, exporter, service and
// background workers, with ordered startup and reverse-order teardown.
package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aidcase/workflow/internal/application/dispatcher"
	appworkflow "github.com/aidcase/workflow/internal/application/workflow"
	"github.com/aidcase/workflow/internal/config"
	"github.com/aidcase/workflow/internal/domain/event"
	"github.com/aidcase/workflow/internal/export"
	"github.com/aidcase/workflow/internal/worker"
)

// ServiceDeps bundles the dependencies of the lifecycle service
type ServiceDeps struct {
	Components *appworkflow.Components
	Ports      Ports
	Dispatcher dispatcher.Dispatcher
	Exporter   appworkflow.Exporter
	Logger     *zap.Logger
}

// ProvideComponents assembles the domain components from the config tables
func ProvideComponents(cfg *config.Config) *appworkflow.Components {
	return appworkflow.BuildComponents(cfg.ToComponentConfig())
}

// ProvideDispatcher creates the in-process event dispatcher
func ProvideDispatcher(logger *zap.Logger) dispatcher.Dispatcher {
	return dispatcher.NewDispatcher(dispatcher.WithLogger(&zapLoggerAdapter{logger: logger}))
}

// ProvideExporter creates the XLSX register exporter over the shared
// catalog, SLA calculator and category table
func ProvideExporter(cfg *config.ExportConfig, comps *appworkflow.Components, logger *zap.Logger) *export.Exporter {
	return export.NewExporter(cfg.SheetName, comps.Catalog, comps.SLA, comps.Categories, logger)
}

// ProvideService creates the request lifecycle service
func ProvideService(deps *ServiceDeps) (appworkflow.Service, error) {
	if deps.Components == nil {
		return nil, fmt.Errorf("components are required")
	}
	if err := deps.Ports.validate(); err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	opts := []appworkflow.ServiceOption{}
	if deps.Dispatcher != nil {
		opts = append(opts, appworkflow.WithDispatcher(deps.Dispatcher))
	}
	if deps.Exporter != nil {
		opts = append(opts, appworkflow.WithExporter(deps.Exporter))
	}

	return appworkflow.NewService(
		deps.Components,
		deps.Ports.Repository,
		deps.Ports.Recorder,
		deps.Ports.Transactions,
		&zapLoggerAdapter{logger: deps.Logger},
		opts...,
	), nil
}

// ProvideWorkers creates the worker manager, registering the expiry sweeper
// when it is enabled
func ProvideWorkers(cfg *config.WorkerConfig, service appworkflow.Service, comps *appworkflow.Components, logger *zap.Logger) *worker.Manager {
	manager := worker.NewManager(logger)

	if cfg.Expiry.Enabled {
		sweeper := worker.NewExpirySweeper(service, comps.Transitions, worker.SweeperConfig{
			Interval:  cfg.Expiry.Interval,
			BatchSize: cfg.Expiry.BatchSize,
			ActorID:   cfg.Expiry.ActorID,
		}, logger)
		manager.Register(sweeper)
	}

	return manager
}

// registerEventLogging attaches a debug-logging handler to every lifecycle
// event type, so embedders get an event audit line without writing a handler
func registerEventLogging(d dispatcher.Dispatcher, logger *zap.Logger) {
	for _, eventType := range event.Types() {
		d.SubscribeNamed(eventType, "event-log", func(ctx context.Context, evt *event.Event) error {
			logger.Debug("Lifecycle event",
				zap.String("event_id", evt.ID),
				zap.String("event_type", string(evt.Type)),
				zap.String("request_id", evt.RequestID))
			return nil
		})
	}
}
