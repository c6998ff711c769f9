package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aidcase/workflow/internal/application/port"
	appworkflow "github.com/aidcase/workflow/internal/application/workflow"
	"github.com/aidcase/workflow/internal/domain/request"
	domainwf "github.com/aidcase/workflow/internal/domain/workflow"
)

const (
	defaultSweepInterval = time.Hour
	defaultBatchSize     = 100
	defaultActorID       = "system"

	sweepTimeout = 30 * time.Second
)

// SweeperConfig tunes the expiry sweeper. Zero values fall back to defaults.
type SweeperConfig struct {
	Interval  time.Duration
	BatchSize int
	ActorID   string
}

// ExpirySweeper periodically drives requests that breached their SLA deadline
// to expired. It is the system-side enforcement of the expiry policy;
// administrators may also expire requests manually through the service.
type ExpirySweeper struct {
	service appworkflow.Service
	table   *domainwf.TransitionTable
	actor   appworkflow.Actor
	logger  *zap.Logger

	sweepInterval time.Duration
	batchSize     int

	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
}

// NewExpirySweeper creates a sweeper acting on behalf of the system actor
func NewExpirySweeper(service appworkflow.Service, table *domainwf.TransitionTable, cfg SweeperConfig, logger *zap.Logger) *ExpirySweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultSweepInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.ActorID == "" {
		cfg.ActorID = defaultActorID
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpirySweeper{
		service:       service,
		table:         table,
		actor:         appworkflow.Actor{ID: cfg.ActorID, Role: request.RoleAdmin},
		logger:        logger,
		sweepInterval: cfg.Interval,
		batchSize:     cfg.BatchSize,
	}
}

// Start launches the sweep loop
func (s *ExpirySweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("expiry sweeper is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.isRunning = true

	s.logger.Info("ExpirySweeper started",
		zap.Duration("sweep_interval", s.sweepInterval),
		zap.Int("batch_size", s.batchSize),
		zap.String("actor_id", s.actor.ID))

	go s.run(runCtx)

	return nil
}

// Stop cancels the sweep loop
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.isRunning = false
	if s.cancel != nil {
		s.cancel()
	}

	s.logger.Info("ExpirySweeper stopped")
}

// Name returns the worker name for identification
func (s *ExpirySweeper) Name() string {
	return "ExpirySweeper"
}

// run sweeps immediately, then on every tick until the context is cancelled
func (s *ExpirySweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Sweep loop context cancelled")
			return

		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep expires every overdue request the transition table allows to expire.
// Overdue requests in other statuses, such as partially paid ones, stay open
// for a human to resolve.
func (s *ExpirySweeper) sweep(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, sweepTimeout)
	defer cancel()

	overdue, err := s.service.ListOverdue(ctx)
	if err != nil {
		s.logger.Error("Failed to list overdue requests", zap.Error(err))
		return
	}
	if len(overdue) == 0 {
		return
	}

	expired := 0
	skipped := 0

	for i, req := range overdue {
		if i >= s.batchSize {
			s.logger.Debug("Sweep batch limit reached",
				zap.Int("remaining", len(overdue)-i))
			break
		}

		if !s.table.IsValidTransition(req.Status, request.StatusExpired) {
			skipped++
			continue
		}

		_, err := s.service.Transition(ctx, s.actor, req.ID, request.StatusExpired, request.ActionExpireRequest, domainwf.TransitionData{})
		if err != nil {
			// A concurrent writer won the race; the next sweep re-examines
			// the request if it is still overdue.
			if errors.Is(err, port.ErrStaleSnapshot) {
				skipped++
				continue
			}
			s.logger.Error("Failed to expire overdue request",
				zap.String("request_id", req.ID),
				zap.String("status", string(req.Status)),
				zap.Error(err))
			continue
		}

		expired++
	}

	s.logger.Info("Expiry sweep completed",
		zap.Int("overdue", len(overdue)),
		zap.Int("expired", expired),
		zap.Int("skipped", skipped))
}
