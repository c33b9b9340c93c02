package visits

import (
	"context"
	"log/slog"
)

// fallbackCount is shown when the counter is missing or unreadable.
const fallbackCount = 1

// Tracker records page views against one counter key.
type Tracker struct {
	store  Store
	key    string
	writes bool
	logger *slog.Logger
}

// NewTracker returns a tracker for key. With writes false, Record is a
// no-op and the counter is read-only.
func NewTracker(store Store, key string, writes bool, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{store: store, key: key, writes: writes, logger: logger}
}

// Enabled reports whether a store is configured.
func (t *Tracker) Enabled() bool {
	return t != nil && t.store != nil
}

// Record counts one visit.
func (t *Tracker) Record(ctx context.Context) error {
	if !t.Enabled() || !t.writes {
		return nil
	}
	return t.store.Increment(ctx, t.key)
}

// Count returns the current total, falling back to 1 when the counter does
// not exist yet or cannot be read.
func (t *Tracker) Count(ctx context.Context) int64 {
	if !t.Enabled() {
		return 0
	}
	c, found, err := t.store.Read(ctx, t.key)
	if err != nil {
		t.logger.ErrorContext(ctx, "error fetching visitor count", "key", t.key, "error", err)
		return fallbackCount
	}
	if !found {
		return fallbackCount
	}
	return c.Count
}
