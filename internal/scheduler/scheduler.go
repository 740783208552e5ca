// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"provaa/internal/lib/logger/sl"

	"github.com/go-co-op/gocron/v2"
)

type Scheduler struct {
	log   *slog.Logger
	cron  gocron.Scheduler
	ctx   context.Context
	close context.CancelFunc
}

func New(log *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		log:   log.With(slog.String("component", "scheduler")),
		cron:  s,
		ctx:   ctx,
		close: cancel,
	}, nil
}

// Every registers task to run each interval. A run that is still going when
// the next one is due makes the scheduler skip that tick.
func (s *Scheduler) Every(name string, interval time.Duration, task func(ctx context.Context) error) error {
	log := s.log.With(slog.String("job", name))

	_, err := s.cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := task(s.ctx); err != nil {
				log.Error("job failed", sl.Err(err))
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	log.Info("job registered", slog.String("interval", interval.String()))

	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Shutdown() error {
	s.close()

	return s.cron.Shutdown()
}
