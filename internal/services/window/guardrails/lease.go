// Package guardrails keeps scheduled window jobs from overlapping across
// instances and bounds how long a run may take
package guardrails

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"shulzmanim/internal/platform/store"
)

// ErrLeaseHeld signals another instance is running the job already
var ErrLeaseHeld = errors.New("window: job lease already held")

// LeaseFunc runs do while holding the named job's lease
type LeaseFunc func(ctx context.Context, job string, do func(context.Context) error) error

// MakeJobLease claims a row in job_leases for the duration of do.
// An expired lease is reclaimed; the row is released when do returns.
func MakeJobLease(db store.TxRunner, owner string, ttl time.Duration) LeaseFunc {
	owner = fmt.Sprintf("%s:%d", owner, os.Getpid())
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	secs := int64(ttl / time.Second)

	return func(ctx context.Context, job string, do func(context.Context) error) error {
		var claimed bool
		if err := db.Tx(ctx, func(q store.RowQuerier) error {
			rows, err := q.Query(ctx, `
				INSERT INTO job_leases (job, owner, claimed_at, expires_at)
				VALUES ($1, $2, now(), now() + make_interval(secs => $3))
				ON CONFLICT (job) DO UPDATE
				   SET owner = EXCLUDED.owner, claimed_at = EXCLUDED.claimed_at, expires_at = EXCLUDED.expires_at
				 WHERE job_leases.expires_at <= now()
				RETURNING true
			`, job, owner, secs)
			if err != nil {
				return err
			}
			defer rows.Close()
			claimed = rows.Next()
			return rows.Err()
		}); err != nil {
			return err
		}
		if !claimed {
			return ErrLeaseHeld
		}

		defer func() {
			// release on a fresh context so a timed out run still frees the row
			rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			_, _ = db.Exec(rctx, `DELETE FROM job_leases WHERE job = $1 AND owner = $2`, job, owner)
		}()
		return do(ctx)
	}
}

// IsLeaseHeld reports whether err is a skipped run
func IsLeaseHeld(err error) bool { return errors.Is(err, ErrLeaseHeld) }
