// Package ai provides the LLM integration layer for the kitchen.
// The game treats the model as an opaque judge: critics, reviews and
// ingredient analysis come from here, everything else is local rules.
package ai

import (
	"context"
	"sync"
	"time"
)

// Message represents a chat message for the LLM.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// CompletionRequest is the input for LLM inference.
type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Model       string    `json:"model,omitempty"` // Override default model
	JSONMode    bool      `json:"json_mode,omitempty"`
}

// CompletionResponse is the output from LLM inference.
type CompletionResponse struct {
	Content     string        `json:"content"`
	Model       string        `json:"model"`
	TotalTokens int           `json:"total_tokens"`
	Latency     time.Duration `json:"latency"`
}

// LLMProvider is the agnostic interface for LLM backends. The
// CriticService uses this without knowing which provider is behind it.
type LLMProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Name() string
	IsAvailable() bool
}

// BudgetGate controls spending limits for LLM calls.
type BudgetGate struct {
	mu                sync.Mutex
	DailyLimitUSD     float64
	MonthlyLimitUSD   float64
	currentDaySpend   float64
	currentMonthSpend float64
	lastDayReset      time.Time
	lastMonthReset    time.Time
}

// NewBudgetGate creates a new budget controller.
func NewBudgetGate(dailyLimit, monthlyLimit float64) *BudgetGate {
	now := time.Now()
	return &BudgetGate{
		DailyLimitUSD:   dailyLimit,
		MonthlyLimitUSD: monthlyLimit,
		lastDayReset:    now,
		lastMonthReset:  now,
	}
}

// CanSpend checks if a cost is within budget.
func (bg *BudgetGate) CanSpend(costUSD float64) bool {
	bg.mu.Lock()
	defer bg.mu.Unlock()
	bg.maybeReset()
	return bg.currentDaySpend+costUSD <= bg.DailyLimitUSD &&
		bg.currentMonthSpend+costUSD <= bg.MonthlyLimitUSD
}

// RecordSpend logs a cost.
func (bg *BudgetGate) RecordSpend(costUSD float64) {
	bg.mu.Lock()
	defer bg.mu.Unlock()
	bg.maybeReset()
	bg.currentDaySpend += costUSD
	bg.currentMonthSpend += costUSD
}

func (bg *BudgetGate) maybeReset() {
	now := time.Now()
	if now.YearDay() != bg.lastDayReset.YearDay() || now.Year() != bg.lastDayReset.Year() {
		bg.currentDaySpend = 0
		bg.lastDayReset = now
	}
	if now.Month() != bg.lastMonthReset.Month() || now.Year() != bg.lastMonthReset.Year() {
		bg.currentMonthSpend = 0
		bg.lastMonthReset = now
	}
}
