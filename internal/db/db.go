package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrKeyNotFound signals a missing key in the KV store.
var ErrKeyNotFound = errors.New("key not found")

// Op identifies the store operation that failed.
type Op string

// Store operations.
const (
	OpGet  Op = "get"
	OpSet  Op = "set"
	OpPing Op = "ping"
)

// Error wraps a backend failure with the operation that produced it.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("db %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Store is the KV contract used for the embedding cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func WaitForReady(ctx context.Context, s Store, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for store: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
