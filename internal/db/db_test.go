package db

import (
	"context"
	"errors"
	"testing"
	"time"
)

type pingStore struct {
	failures int
	calls    int
}

func (p *pingStore) Get(context.Context, string) ([]byte, error) { return nil, ErrKeyNotFound }
func (p *pingStore) Set(context.Context, string, []byte) error   { return nil }
func (p *pingStore) Close()                                      {}

func (p *pingStore) Ping(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("not ready")
	}
	return nil
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("socket closed")
	err := &Error{Op: OpGet, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose the inner error")
	}
	if err.Error() != "db get: socket closed" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWaitForReady_SucceedsAfterRetries(t *testing.T) {
	s := &pingStore{failures: 2}

	if err := WaitForReady(context.Background(), s, 2*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.calls != 3 {
		t.Errorf("expected 3 ping attempts, got %d", s.calls)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	s := &pingStore{failures: 1 << 30}

	err := WaitForReady(context.Background(), s, 250*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}
