package embedding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/reelchat/reelchat/internal/domain"
)

// BudgetAction defines behavior when token budget is exceeded.
type BudgetAction string

const (
	// BudgetActionWarn logs a warning but allows the request.
	BudgetActionWarn BudgetAction = "warn"
	// BudgetActionReject blocks the request.
	BudgetActionReject BudgetAction = "reject"
)

// BudgetTracker is an in-memory token budget tracker. Counters reset at
// UTC day and month boundaries. The hot path (Check) takes only the mutex,
// no I/O.
type BudgetTracker struct {
	mu             sync.Mutex
	dailyUsed      int64
	monthlyUsed    int64
	dailyLimit     int64
	monthlyLimit   int64
	action         BudgetAction
	provider       string
	lastDayReset   time.Time
	lastMonthReset time.Time
	logger         *zap.Logger
}

// NewBudgetTracker creates a budget tracker with the given limits.
// A zero limit means unlimited for that period.
func NewBudgetTracker(
	provider string, dailyLimit, monthlyLimit int64,
	action BudgetAction, logger *zap.Logger,
) *BudgetTracker {
	now := time.Now().UTC()
	return &BudgetTracker{
		dailyLimit:     dailyLimit,
		monthlyLimit:   monthlyLimit,
		action:         action,
		provider:       provider,
		lastDayReset:   truncateToDay(now),
		lastMonthReset: truncateToMonth(now),
		logger:         logger,
	}
}

// Check reports whether the next request may proceed. With the warn action
// it always allows and only logs; with reject it returns
// domain.ErrEmbeddingQuotaExceeded once a limit is hit.
func (b *BudgetTracker) Check(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.maybeReset(time.Now().UTC())

	dailyOver := b.dailyLimit > 0 && b.dailyUsed >= b.dailyLimit
	monthlyOver := b.monthlyLimit > 0 && b.monthlyUsed >= b.monthlyLimit
	if !dailyOver && !monthlyOver {
		return nil
	}

	period := "daily"
	if monthlyOver {
		period = "monthly"
	}

	if b.action == BudgetActionReject {
		return fmt.Errorf("%s token budget exhausted for provider %s: %w",
			period, b.provider, domain.ErrEmbeddingQuotaExceeded)
	}

	b.logger.Warn("Token budget exceeded, allowing request",
		zap.String("provider", b.provider),
		zap.String("period", period),
		zap.Int64("daily_used", b.dailyUsed),
		zap.Int64("monthly_used", b.monthlyUsed),
	)
	return nil
}

// Record adds consumed tokens to the current counters.
func (b *BudgetTracker) Record(tokens int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.maybeReset(time.Now().UTC())
	b.dailyUsed += tokens
	b.monthlyUsed += tokens
}

// RemainingDaily returns tokens left in the daily budget (-1 = unlimited).
func (b *BudgetTracker) RemainingDaily() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dailyLimit <= 0 {
		return -1
	}
	return max(b.dailyLimit-b.dailyUsed, 0)
}

// RemainingMonthly returns tokens left in the monthly budget (-1 = unlimited).
func (b *BudgetTracker) RemainingMonthly() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.monthlyLimit <= 0 {
		return -1
	}
	return max(b.monthlyLimit-b.monthlyUsed, 0)
}

// maybeReset zeroes counters when a UTC day or month boundary has passed.
// Callers must hold the mutex.
func (b *BudgetTracker) maybeReset(now time.Time) {
	if day := truncateToDay(now); day.After(b.lastDayReset) {
		b.dailyUsed = 0
		b.lastDayReset = day
	}
	if month := truncateToMonth(now); month.After(b.lastMonthReset) {
		b.monthlyUsed = 0
		b.lastMonthReset = month
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
