package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/board-api/internal/docstore"
	"github.com/orgball2608/board-api/internal/metrics"
	"github.com/orgball2608/board-api/pkg/config"
	"github.com/orgball2608/board-api/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Store   docstore.Store
	Metrics *metrics.Metrics
	Logger  logger.Logger
	Config  *config.Config
}

// Refresher periodically publishes collection sizes as gauges.
type Refresher struct {
	store    docstore.Store
	metrics  *metrics.Metrics
	logger   logger.Logger
	interval time.Duration

	mu        sync.Mutex
	scheduler gocron.Scheduler
}

func New(opts Opts) *Refresher {
	return &Refresher{
		store:    opts.Store,
		metrics:  opts.Metrics,
		logger:   opts.Logger.WithComponent("Stats"),
		interval: opts.Config.Board.StatsInterval,
	}
}

// Refresh counts every collection once. A failing collection is logged and
// skipped so the others still update.
func (r *Refresher) Refresh(ctx context.Context) {
	for _, c := range docstore.Collections() {
		n, err := r.store.Count(ctx, c)
		if err != nil {
			r.logger.Error("Failed to count collection", "collection", c, "error", err)
			continue
		}
		r.metrics.SetDocuments(c, n)
	}
}

// Start schedules Refresh every interval until ctx is done or Stop is called.
func (r *Refresher) Start(ctx context.Context) error {
	if r.interval <= 0 {
		r.logger.Info("Stats refresh disabled")
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create stats scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}

			refreshCtx, cancel := context.WithTimeout(ctx, r.interval)
			defer cancel()

			r.Refresh(refreshCtx)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule stats refresh: %w", err)
	}

	scheduler.Start()
	r.mu.Lock()
	r.scheduler = scheduler
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = r.Stop()
	}()

	r.logger.Info("Stats refresh scheduled", "interval", r.interval.String())
	return nil
}

func (r *Refresher) Stop() error {
	r.mu.Lock()
	s := r.scheduler
	r.scheduler = nil
	r.mu.Unlock()

	if s == nil {
		return nil
	}
	if err := s.Shutdown(); err != nil {
		r.logger.Error("Failed to shut down stats scheduler", "error", err)
		return err
	}
	return nil
}
