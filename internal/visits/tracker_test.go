package visits

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Read(context.Context, string) (Counter, bool, error) {
	return Counter{}, false, errors.New("unavailable")
}
func (failingStore) Increment(context.Context, string) error { return errors.New("unavailable") }
func (failingStore) Close() error                            { return nil }

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestTracker_ReadOnlyShowsFallback(t *testing.T) {
	s := openMemory(t)
	tr := NewTracker(s, "k", false, quietLogger())
	ctx := context.Background()

	require.NoError(t, tr.Record(ctx))

	assert.Equal(t, int64(1), tr.Count(ctx), "missing counter shows 1")
	_, found, err := s.Read(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found, "read-only tracker must not write")
}

func TestTracker_Writes(t *testing.T) {
	s := openMemory(t)
	tr := NewTracker(s, "k", true, quietLogger())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, tr.Record(ctx))
	}

	assert.Equal(t, int64(4), tr.Count(ctx))
}

func TestTracker_ReadErrorFallsBack(t *testing.T) {
	tr := NewTracker(failingStore{}, "k", true, quietLogger())

	assert.Equal(t, int64(1), tr.Count(context.Background()))
	assert.Error(t, tr.Record(context.Background()))
}

func TestTracker_NoStore(t *testing.T) {
	tr := NewTracker(nil, "k", true, quietLogger())

	assert.False(t, tr.Enabled())
	assert.NoError(t, tr.Record(context.Background()))
	assert.Zero(t, tr.Count(context.Background()))

	var nilTracker *Tracker
	assert.False(t, nilTracker.Enabled())
}
