package lock

import (
	"context"
	"sync"
	"time"
)

// Local is an in-process Locker. Keys are independent; waiting for one key
// never blocks another.
type Local struct {
	wait time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	held chan struct{}
	refs int
}

// NewLocal returns a Local that waits up to wait for a held key. A zero wait
// blocks until the key is free or ctx is done.
func NewLocal(wait time.Duration) *Local {
	return &Local{wait: wait, entries: make(map[string]*entry)}
}

func (l *Local) Obtain(ctx context.Context, key string) (Lock, error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{held: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	var timeout <-chan time.Time
	if l.wait > 0 {
		t := time.NewTimer(l.wait)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case e.held <- struct{}{}:
		return &localLock{owner: l, key: key, entry: e}, nil
	case <-timeout:
		l.forget(key, e)
		return nil, ErrNotObtained
	case <-ctx.Done():
		l.forget(key, e)
		return nil, ctx.Err()
	}
}

func (l *Local) forget(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

type localLock struct {
	owner *Local
	key   string
	entry *entry
	once  sync.Once
}

func (k *localLock) Release(context.Context) error {
	k.once.Do(func() {
		<-k.entry.held
		k.owner.forget(k.key, k.entry)
	})

	return nil
}
