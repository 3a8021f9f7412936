package lease

import (
	"context"
	"errors"
	"sync"
	"time"
)

// LocalLease guards dispatch within one process. It is the fallback when no
// Redis is configured.
type LocalLease struct {
	mu      sync.Mutex
	holder  uint64
	expires time.Time
	next    uint64
	now     func() time.Time
}

func NewLocal() *LocalLease {
	return &LocalLease{now: time.Now}
}

func (l *LocalLease) Acquire(_ context.Context, ttl time.Duration) (func(context.Context) error, bool, error) {
	if ttl <= 0 {
		return nil, false, errors.New("lease ttl must be positive")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.holder != 0 && now.Before(l.expires) {
		return nil, false, nil
	}
	l.next++
	token := l.next
	l.holder = token
	l.expires = now.Add(ttl)

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.holder == token {
			l.holder = 0
		}
		return nil
	}
	return release, true, nil
}
