package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/reelchat/reelchat/internal/db"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStore_MissingKey(t *testing.T) {
	s := NewStore()

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected db.ErrKeyNotFound, got %v", err)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_ = s.Set(ctx, "k", []byte("abc"))

	got, _ := s.Get(ctx, "k")
	got[0] = 'x'

	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestStore_SetCopiesInput(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	val := []byte("abc")
	_ = s.Set(ctx, "k", val)
	val[0] = 'x'

	got, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliases caller slice: %q", got)
	}
}

func TestStore_Overwrite(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_ = s.Set(ctx, "k", []byte("one"))
	_ = s.Set(ctx, "k", []byte("two"))

	got, _ := s.Get(ctx, "k")
	if string(got) != "two" {
		t.Errorf("Get = %q, want %q", got, "two")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStore_Ping(t *testing.T) {
	if err := NewStore().Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
