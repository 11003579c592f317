// Package expirer implements the Scheduled Expirer: a recurring task,
// invoked by an external scheduler, that cancels stale PENDING bookings.
// Idempotent across repeated invocations; supports a dry-run mode and a
// configurable threshold.
package expirer

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/clock"
	"github.com/rentalmarket/core/internal/store"
	"github.com/rentalmarket/core/models"
)

type Options struct {
	DryRun         bool
	ThresholdHours int
}

func DefaultOptions() Options {
	return Options{DryRun: false, ThresholdHours: 48}
}

type Expirer struct {
	store *store.Store
	clock clock.Clock
}

func New(s *store.Store, c clock.Clock) *Expirer {
	return &Expirer{store: s, clock: c}
}

// Result reports what a single invocation did, for CLI/log output.
type Result struct {
	Scanned   int
	Cancelled int
	DryRun    bool
}

// Run selects PENDING bookings older than the threshold, skipping any whose
// item lock is held by a concurrent transaction (SKIP LOCKED), and
// transitions the rest to CANCELLED. In dry-run mode the scan runs but the
// transaction is rolled back, so nothing commits.
func (e *Expirer) Run(ctx context.Context, opts Options) (Result, error) {
	if opts.ThresholdHours <= 0 {
		opts.ThresholdHours = 48
	}
	cutoff := e.clock.Now().Add(-time.Duration(opts.ThresholdHours) * time.Hour)

	res := Result{DryRun: opts.DryRun}
	err := e.store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidates, err := store.ExpireCandidates(tx, cutoff)
		if err != nil {
			return err
		}
		res.Scanned = len(candidates)

		for i := range candidates {
			candidates[i].Status = models.BookingCancelled
			if err := store.SaveBookingStatus(tx, &candidates[i]); err != nil {
				return err
			}
			res.Cancelled++
		}

		if opts.DryRun {
			return errDryRun
		}
		return nil
	})
	if err != nil && err != errDryRun {
		return res, err
	}
	return res, nil
}

// errDryRun is returned from inside the transaction closure purely to force
// gorm.DB.Transaction to roll back; Run swallows it before returning.
var errDryRun = dryRunSentinel{}

type dryRunSentinel struct{}

func (dryRunSentinel) Error() string { return "dry run: rolling back" }
