// internal/usage/tracker.go
package usage

import (
	"context"
	"database/sql"
	"sync"
	"time"

	apperrors "lead-generator/internal/common/errors"
	"lead-generator/internal/common/logger"
)

// Pricing holds USD prices per million tokens.
type Pricing struct {
	InputPerM  float64
	OutputPerM float64
}

// RunUsage is the token accounting for one pipeline run.
type RunUsage struct {
	Topic            string    `json:"topic"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	CostUSD          float64   `json:"cost_usd"`
	Timestamp        time.Time `json:"timestamp"`
}

// Totals is the running aggregate across the process lifetime.
type Totals struct {
	Runs             int     `json:"runs"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	CostUSD          float64 `json:"cost_usd"`
}

// Tracker accumulates per-run token usage and cost, optionally
// persisting each run to Postgres. In-memory totals survive a failed
// insert; persistence is best effort.
type Tracker struct {
	pricing Pricing
	db      *sql.DB
	logger  logger.Logger

	mu     sync.Mutex
	totals Totals
}

// NewTracker builds a tracker. db may be nil to keep accounting
// in-memory only.
func NewTracker(pricing Pricing, db *sql.DB, log logger.Logger) *Tracker {
	return &Tracker{
		pricing: pricing,
		db:      db,
		logger: log.WithFields(map[string]interface{}{
			"component": "usage-tracker",
		}),
	}
}

// Record accounts one run and, when a database is attached, writes it to
// the lead_run_usage ledger.
func (t *Tracker) Record(ctx context.Context, u RunUsage) {
	u.CostUSD = t.cost(u.PromptTokens, u.CompletionTokens)
	u.Timestamp = time.Now().UTC()

	t.mu.Lock()
	t.totals.Runs++
	t.totals.PromptTokens += u.PromptTokens
	t.totals.CompletionTokens += u.CompletionTokens
	t.totals.TotalTokens += u.TotalTokens
	t.totals.CostUSD += u.CostUSD
	t.mu.Unlock()

	t.logger.Info("run usage recorded", map[string]interface{}{
		"topic":             u.Topic,
		"prompt_tokens":     u.PromptTokens,
		"completion_tokens": u.CompletionTokens,
		"total_tokens":      u.TotalTokens,
		"cost_usd":          u.CostUSD,
	})

	if t.db == nil {
		return
	}

	if err := t.persist(ctx, u); err != nil {
		stdErr := apperrors.NewUsageSinkFailedError(err)
		t.logger.Warn("usage persistence failed", map[string]interface{}{
			"code":    stdErr.Code,
			"details": stdErr.Details,
		})
	}
}

func (t *Tracker) persist(ctx context.Context, u RunUsage) error {
	query := `
		INSERT INTO lead_run_usage
			(topic, prompt_tokens, completion_tokens, total_tokens, cost_usd, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := t.db.ExecContext(ctx, query,
		u.Topic, u.PromptTokens, u.CompletionTokens, u.TotalTokens, u.CostUSD, u.Timestamp)
	return err
}

// Totals returns a snapshot of the process-lifetime aggregate.
func (t *Tracker) Totals() Totals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totals
}

func (t *Tracker) cost(promptTokens, completionTokens int) float64 {
	in := float64(promptTokens) / 1_000_000 * t.pricing.InputPerM
	out := float64(completionTokens) / 1_000_000 * t.pricing.OutputPerM
	return in + out
}
