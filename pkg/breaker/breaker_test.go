package breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/schoolhub/library-service/pkg/breaker"
)

func TestBreaker_Call(t *testing.T) {
	okCall := func() error { return nil }
	failCall := func() error { return errors.New("service error") }

	b := breaker.New(10, 200*time.Millisecond, 0.3, 5)

	for i := 0; i < 80; i++ {
		require.NoError(t, b.Call(okCall))
	}

	// enough failures trip the breaker open
	for i := 0; i < 10; i++ {
		_ = b.Call(failCall)
	}
	require.ErrorIs(t, b.Call(okCall), breaker.ErrOpen)

	// after the timeout a half-open breaker admits calls again
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, b.Call(okCall))

	// recovery closes it for good
	for i := 0; i < 10; i++ {
		require.NoError(t, b.Call(okCall))
	}

	// a failure burst in closed state opens it once more
	for i := 0; i < 10; i++ {
		_ = b.Call(failCall)
	}
	require.ErrorIs(t, b.Call(okCall), breaker.ErrOpen)
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	failCall := func() error { return errors.New("service error") }

	b := breaker.New(4, 100*time.Millisecond, 0.5, 2)
	for i := 0; i < 4; i++ {
		_ = b.Call(failCall)
	}
	require.ErrorIs(t, b.Call(failCall), breaker.ErrOpen)

	time.Sleep(150 * time.Millisecond)

	// first call in half-open fails and slams it shut again
	require.Error(t, b.Call(failCall))
	require.ErrorIs(t, b.Call(failCall), breaker.ErrOpen)
}
