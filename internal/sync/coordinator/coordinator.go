package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
)

// Coordinator runs the driver on a cron schedule
type Coordinator interface {
	// Start runs an initial pass and then follows the schedule.
	// Blocks until context is cancelled or an unrecoverable error occurs
	Start(ctx context.Context) error

	// Stop gracefully stops the coordinator and waits for a running pass
	Stop() error
}

// defaultCoordinator is the default implementation of Coordinator
type defaultCoordinator struct {
	driver   Driver
	schedule cron.Schedule
	spec     string

	// Lifecycle management
	mu         sync.Mutex
	stopped    bool
	cancelFunc context.CancelFunc
	done       chan struct{}
}

// Option is a function that configures the coordinator
type Option func(*defaultCoordinator)

// New creates a coordinator running driver on the cron spec
func New(driver Driver, spec string, opts ...Option) (Coordinator, error) {
	if spec == "" {
		spec = config.DefaultSchedule
	}
	schedule, err := config.CronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	c := &defaultCoordinator{
		driver:   driver,
		schedule: schedule,
		spec:     spec,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Start begins scheduled sync passes. It returns at once if Stop was already called.
func (c *defaultCoordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	coordCtx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel
	c.mu.Unlock()

	logger.Infow("Starting sync coordinator", "schedule", c.spec)
	defer func() {
		cancel()
		close(c.done)
		logger.Info("Sync coordinator shutting down")
	}()

	if err := c.driver.Initialize(coordCtx); err != nil {
		return err
	}

	cl := cronLogger{}
	runner := cron.New(
		cron.WithParser(config.CronParser),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	runner.Schedule(c.schedule, cron.FuncJob(func() { c.runPass(coordCtx) }))

	// Perform initial pass
	c.runPass(coordCtx)

	runner.Start()
	<-coordCtx.Done()

	logger.Info("Sync coordinator stopping")
	stopCtx := runner.Stop()
	<-stopCtx.Done()
	return nil
}

// Stop gracefully stops the coordinator
func (c *defaultCoordinator) Stop() error {
	c.mu.Lock()
	c.stopped = true
	cancel := c.cancelFunc
	c.mu.Unlock()

	if cancel != nil {
		logger.Info("Stopping sync coordinator")
		cancel()
		<-c.done
	}
	return nil
}

func (c *defaultCoordinator) runPass(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	_, err := c.driver.ProcessAll(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrSyncInProgress):
		logger.Infow("Skipping scheduled pass", "reason", err)
	default:
		logger.Errorw("Sync pass finished with errors", "error", err)
	}
}

// cronLogger routes cron's own logging through the service logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
