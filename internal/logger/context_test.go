package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_RoundTrip(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	stored := zap.New(core)

	ctx := ContextWithLogger(context.Background(), stored)
	got := FromContext(ctx, zap.NewNop())

	got.Info("hello")
	if logs.Len() != 1 {
		t.Errorf("expected the stored logger back, got %d records", logs.Len())
	}
}

func TestFromContext_Fallback(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	fallback := zap.New(core)

	got := FromContext(context.Background(), fallback)

	got.Info("hello")
	if logs.Len() != 1 {
		t.Errorf("expected the fallback logger, got %d records", logs.Len())
	}
}
