package metrics

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Zachkp/portfolio/internal/generate"
	"github.com/Zachkp/portfolio/internal/lifecycle"
)

func TestAttemptOutcome(t *testing.T) {
	assert.Equal(t, "success", attemptOutcome(nil))
	assert.Equal(t, "transport", attemptOutcome(&generate.StatusError{StatusCode: 500}))
	assert.Equal(t, "malformed", attemptOutcome(fmt.Errorf("%w: empty", generate.ErrMalformedResponse)))
	assert.Equal(t, "cancelled", attemptOutcome(fmt.Errorf("wrapped: %w", context.Canceled)))
	assert.Equal(t, "error", attemptOutcome(fmt.Errorf("boom")))
}

func TestObserveAttempt(t *testing.T) {
	before := testutil.ToFloat64(GenerationAttempts.WithLabelValues("malformed"))

	ObserveAttempt(context.Background(), generate.Attempt{Number: 1, Err: generate.ErrMalformedResponse})

	assert.Equal(t, before+1, testutil.ToFloat64(GenerationAttempts.WithLabelValues("malformed")))
}

func TestObserveSnapshot(t *testing.T) {
	disabled := ActionResults.WithLabelValues("summary", "disabled")
	succeeded := ActionResults.WithLabelValues("summary", "succeeded")
	d0, s0 := testutil.ToFloat64(disabled), testutil.ToFloat64(succeeded)

	ObserveSnapshot("summary", lifecycle.Snapshot{Phase: lifecycle.Failed, Disabled: true})
	ObserveSnapshot("summary", lifecycle.Snapshot{Phase: lifecycle.Succeeded})
	ObserveSnapshot("summary", lifecycle.Snapshot{Phase: lifecycle.Pending})

	assert.Equal(t, d0+1, testutil.ToFloat64(disabled))
	assert.Equal(t, s0+1, testutil.ToFloat64(succeeded))
}
