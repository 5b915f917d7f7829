package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/AakashSorathiya/carrental-service/pkg/circuit_breaker"
	"github.com/stretchr/testify/require"
)

func Test_circuitBreaker_Call(t *testing.T) {
	successfulService := func() error {
		return nil
	}
	failingService := func() error {
		return errors.New("service error")
	}

	const (
		recordLength     = 10
		timeout          = 200 * time.Millisecond
		percentile       = 0.30
		recoveryRequests = 3
	)

	cb := circuit_breaker.New(recordLength, timeout, percentile, recoveryRequests)

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(successfulService))
	}

	// enough failures in the tail to open the breaker
	for i := 0; i < recordLength; i++ {
		_ = cb.Call(failingService)
	}
	require.ErrorIs(t, cb.Call(successfulService), circuit_breaker.ErrOpenCB)

	// after the timeout the breaker half-opens and recovers on successes
	time.Sleep(timeout + 50*time.Millisecond)
	for i := 0; i < recoveryRequests+2; i++ {
		require.NoError(t, cb.Call(successfulService))
	}
	require.NoError(t, cb.Call(successfulService))

	// a failure in half-open snaps back to open
	for i := 0; i < recordLength; i++ {
		_ = cb.Call(failingService)
	}
	require.ErrorIs(t, cb.Call(successfulService), circuit_breaker.ErrOpenCB)
	time.Sleep(timeout + 50*time.Millisecond)
	require.Error(t, cb.Call(failingService))
	require.ErrorIs(t, cb.Call(successfulService), circuit_breaker.ErrOpenCB)
}

func Test_circuitBreaker_Reset(t *testing.T) {
	cb := circuit_breaker.New(4, time.Minute, 0.5, 1)
	for i := 0; i < 4; i++ {
		_ = cb.Call(func() error { return errors.New("boom") })
	}
	require.ErrorIs(t, cb.Call(func() error { return nil }), circuit_breaker.ErrOpenCB)

	cb.Reset()
	require.NoError(t, cb.Call(func() error { return nil }))
}
