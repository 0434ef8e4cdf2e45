package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")
var errFatal = errors.New("fatal")

func classify(err error) Action {
	if errors.Is(err, errFatal) {
		return Stop
	}
	return Retry
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	var retried []int
	p := Policy{
		MaxAttempts: 3,
		Backoff:     time.Millisecond,
		OnRetry:     func(attempt int, _ error, _ time.Duration) { retried = append(retried, attempt) },
	}

	got, err := Do(context.Background(), p, classify, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errTransient
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 2, Backoff: time.Millisecond}, classify,
		func(context.Context) (int, error) {
			calls++
			return 0, errTransient
		})

	require.ErrorIs(t, err, errTransient)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 5, Backoff: time.Millisecond}, classify,
		func(context.Context) (int, error) {
			calls++
			return 0, errFatal
		})

	var perm *PermanentError
	require.ErrorAs(t, err, &perm)
	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{
		MaxAttempts: 3,
		Backoff:     time.Hour,
		OnRetry:     func(int, error, time.Duration) { cancel() },
	}

	_, err := Do(ctx, p, classify, func(context.Context) (int, error) { return 0, errTransient })

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_MultiplierGrowsBackoff(t *testing.T) {
	var backoffs []time.Duration
	p := Policy{
		MaxAttempts: 4,
		Backoff:     time.Millisecond,
		Multiplier:  2,
		OnRetry:     func(_ int, _ error, b time.Duration) { backoffs = append(backoffs, b) },
	}

	_, _ = Do(context.Background(), p, classify, func(context.Context) (int, error) { return 0, errTransient })

	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}, backoffs)
}

func TestDo_InvalidPolicy(t *testing.T) {
	_, err := Do(context.Background(), Policy{}, classify, func(context.Context) (int, error) { return 1, nil })
	assert.Error(t, err)
}
