// Package cleanup removes bookings whose checkout was abandoned.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const DefaultThreshold = 30 * time.Minute

type BookingDeleter interface {
	DeleteExpiredBookings(ctx context.Context, olderThan time.Time) (int64, error)
}

type Job struct {
	log       *slog.Logger
	deleter   BookingDeleter
	threshold time.Duration
	now       func() time.Time
}

func New(log *slog.Logger, deleter BookingDeleter, threshold time.Duration) *Job {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	return &Job{
		log:       log.With(slog.String("component", "cleanup")),
		deleter:   deleter,
		threshold: threshold,
		now:       time.Now,
	}
}

// Run deletes pending bookings older than the threshold and reports how many
// were removed. It only matches on age and status, so repeated or concurrent
// runs are safe.
func (j *Job) Run(ctx context.Context) (int64, error) {
	const op = "cleanup.Job.Run"

	cutoff := j.now().Add(-j.threshold)

	deleted, err := j.deleter.DeleteExpiredBookings(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if deleted > 0 {
		j.log.Info("expired bookings deleted", slog.Int64("count", deleted), slog.Time("cutoff", cutoff))
	}

	return deleted, nil
}
