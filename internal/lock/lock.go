// Package lock provides short-lived named locks used to serialize work on a
// single record across goroutines or processes.
package lock

import (
	"context"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

// ErrNotObtained is returned when a lock is still held by someone else after
// the locker stopped waiting for it.
var ErrNotObtained = apperr.Sentinel(apperr.KindConflict, "lock not obtained")

type Locker interface {
	Obtain(ctx context.Context, key string) (Lock, error)
}

type Lock interface {
	Release(ctx context.Context) error
}
