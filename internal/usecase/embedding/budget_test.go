package embedding

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/reelchat/reelchat/internal/domain"
)

func TestBudgetTracker_RejectWhenExceeded(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionReject, zap.NewNop())

	bt.Record(100)

	err := bt.Check(context.Background())
	if !errors.Is(err, domain.ErrEmbeddingQuotaExceeded) {
		t.Fatalf("expected domain.ErrEmbeddingQuotaExceeded, got %v", err)
	}
}

func TestBudgetTracker_WarnWhenExceeded(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionWarn, zap.NewNop())

	bt.Record(200)

	err := bt.Check(context.Background())
	if err != nil {
		t.Fatalf("expected nil error for warn action, got %v", err)
	}
}

func TestBudgetTracker_MonthlyReject(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 500, BudgetActionReject, zap.NewNop())

	bt.Record(500)

	err := bt.Check(context.Background())
	if !errors.Is(err, domain.ErrEmbeddingQuotaExceeded) {
		t.Fatalf("expected domain.ErrEmbeddingQuotaExceeded for monthly limit, got %v", err)
	}
}

func TestBudgetTracker_UnlimitedWhenZero(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 0, BudgetActionReject, zap.NewNop())

	bt.Record(999999999)

	err := bt.Check(context.Background())
	if err != nil {
		t.Fatalf("expected nil error for unlimited budget, got %v", err)
	}
}

func TestBudgetTracker_Remaining(t *testing.T) {
	bt := NewBudgetTracker("test", 1000, 10000, BudgetActionWarn, zap.NewNop())

	bt.Record(300)

	if got := bt.RemainingDaily(); got != 700 {
		t.Errorf("RemainingDaily = %d, want 700", got)
	}
	if got := bt.RemainingMonthly(); got != 9700 {
		t.Errorf("RemainingMonthly = %d, want 9700", got)
	}
}

func TestBudgetTracker_RemainingUnlimited(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 0, BudgetActionWarn, zap.NewNop())

	if got := bt.RemainingDaily(); got != -1 {
		t.Errorf("RemainingDaily = %d, want -1 for unlimited", got)
	}
	if got := bt.RemainingMonthly(); got != -1 {
		t.Errorf("RemainingMonthly = %d, want -1 for unlimited", got)
	}
}

func TestBudgetTracker_RemainingNeverNegative(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionWarn, zap.NewNop())

	bt.Record(250)

	if got := bt.RemainingDaily(); got != 0 {
		t.Errorf("RemainingDaily = %d, want 0 after overrun", got)
	}
}

func TestBudgetTracker_DailyResetOnBoundary(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionReject, zap.NewNop())

	bt.Record(100)
	if err := bt.Check(context.Background()); err == nil {
		t.Fatal("expected rejection before reset")
	}

	// Simulate a past day boundary; the next call resets the counter.
	bt.mu.Lock()
	bt.lastDayReset = bt.lastDayReset.AddDate(0, 0, -1)
	bt.mu.Unlock()

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error after day reset, got %v", err)
	}
	if got := bt.RemainingDaily(); got != 100 {
		t.Errorf("RemainingDaily = %d, want full budget after reset", got)
	}
}
