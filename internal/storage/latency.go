package storage

import (
	"context"
	"time"
)

// latencyBackend delays every operation by a fixed duration before delegating,
// imitating the round trip the dashboard would see against a remote API. The
// delay is interruptible through the context; once the delegate runs the
// operation completes normally.
type latencyBackend struct {
	next  Backend
	delay time.Duration
}

// WithLatency wraps a backend with a simulated per-operation delay. A zero or
// negative delay returns the backend unchanged, which is what tests use.
func WithLatency(next Backend, delay time.Duration) Backend {
	if delay <= 0 {
		return next
	}
	return &latencyBackend{next: next, delay: delay}
}

func (b *latencyBackend) wait(ctx context.Context) error {
	timer := time.NewTimer(b.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (b *latencyBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := b.wait(ctx); err != nil {
		return nil, false, err
	}
	return b.next.Load(ctx, key)
}

func (b *latencyBackend) Save(ctx context.Context, key string, value []byte) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	return b.next.Save(ctx, key, value)
}

func (b *latencyBackend) Delete(ctx context.Context, key string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	return b.next.Delete(ctx, key)
}

func (b *latencyBackend) Close() error {
	return b.next.Close()
}
