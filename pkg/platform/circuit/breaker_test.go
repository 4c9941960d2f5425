package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker_InitialState(t *testing.T) {
	b := New("registry")
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "registry", b.Name())
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := New("registry", WithFailureThreshold(3))

	// First two failures don't open
	useFallback, change := b.RecordFailure()
	assert.False(t, useFallback)
	assert.False(t, change.Opened)

	useFallback, change = b.RecordFailure()
	assert.False(t, useFallback)
	assert.False(t, change.Opened)

	// Third failure opens the circuit
	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)
	assert.True(t, b.IsOpen())
}

func TestBreaker_ClosesAfterSuccessThreshold(t *testing.T) {
	b := New("registry", WithFailureThreshold(1), WithSuccessThreshold(2))

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	// First success doesn't close
	usePrimary, change := b.RecordSuccess()
	assert.False(t, usePrimary)
	assert.False(t, change.Closed)
	assert.True(t, b.IsOpen())

	// Second success closes
	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
	assert.False(t, b.IsOpen())
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := New("registry", WithFailureThreshold(3))

	b.RecordFailure()
	b.RecordFailure()
	assert.False(t, b.IsOpen())

	b.RecordSuccess()

	// Count was reset, two more failures stay closed
	b.RecordFailure()
	b.RecordFailure()
	assert.False(t, b.IsOpen())

	b.RecordFailure()
	assert.True(t, b.IsOpen())
}

func TestBreaker_FailureResetsSuccessCount(t *testing.T) {
	b := New("registry", WithFailureThreshold(1), WithSuccessThreshold(3))

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.RecordSuccess()
	b.RecordSuccess()

	// Failure while open resets success progress
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.RecordSuccess()
	b.RecordSuccess()
	assert.True(t, b.IsOpen())
	b.RecordSuccess()
	assert.False(t, b.IsOpen())
}

func TestBreaker_Reset(t *testing.T) {
	b := New("registry", WithFailureThreshold(1))

	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.Reset()
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_AllowWhileClosed(t *testing.T) {
	b := New("registry")
	assert.True(t, b.Allow())
	assert.True(t, b.Allow())
}

func TestBreaker_HalfOpenProbeAfterCooldown(t *testing.T) {
	now := time.Unix(1000, 0)
	b := New("registry",
		WithFailureThreshold(1),
		WithCooldown(30*time.Second),
		WithClock(func() time.Time { return now }),
	)

	b.RecordFailure()
	require.True(t, b.IsOpen())
	assert.False(t, b.Allow(), "no probe before the cooldown elapses")

	now = now.Add(30 * time.Second)
	assert.True(t, b.Allow(), "one probe admitted per cooldown window")
	assert.False(t, b.Allow(), "no second probe while the first is in flight")

	b.RecordSuccess()
	assert.False(t, b.IsOpen(), "successful probe closes the breaker")
	assert.True(t, b.Allow())
}

func TestBreaker_FailedProbeRestartsCooldown(t *testing.T) {
	now := time.Unix(1000, 0)
	b := New("registry",
		WithFailureThreshold(1),
		WithCooldown(30*time.Second),
		WithClock(func() time.Time { return now }),
	)

	b.RecordFailure()
	now = now.Add(30 * time.Second)
	require.True(t, b.Allow())

	b.RecordFailure()
	assert.True(t, b.IsOpen())
	assert.False(t, b.Allow(), "failed probe restarts the window")

	now = now.Add(30 * time.Second)
	assert.True(t, b.Allow())
}

func TestBreaker_PartialProbeSuccessFreesNextProbe(t *testing.T) {
	now := time.Unix(1000, 0)
	b := New("registry",
		WithFailureThreshold(1),
		WithSuccessThreshold(2),
		WithCooldown(30*time.Second),
		WithClock(func() time.Time { return now }),
	)

	b.RecordFailure()
	now = now.Add(30 * time.Second)
	require.True(t, b.Allow())

	b.RecordSuccess()
	require.True(t, b.IsOpen(), "one success is not enough at threshold 2")
	assert.True(t, b.Allow(), "next probe admitted without another cooldown")

	b.RecordSuccess()
	assert.False(t, b.IsOpen())
}

func TestBreaker_OpenCircuitReturnsFallback(t *testing.T) {
	b := New("registry", WithFailureThreshold(1))

	b.RecordFailure()

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.False(t, change.Opened)
}
