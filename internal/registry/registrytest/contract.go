// Package registrytest holds behaviour checks shared by every
// registry.Store implementation.
package registrytest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/tally/internal/registry"
)

// RunStoreTests exercises a Store built fresh by newStore for each subtest.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) registry.Store) {
	t.Run("CreateCounterOnce", func(t *testing.T) {
		s := newStore(t)

		created, err := s.CreateCounter("A")
		require.NoError(t, err)
		assert.True(t, created)

		created, err = s.CreateCounter("A")
		require.NoError(t, err)
		assert.False(t, created)

		n, err := s.Len("A")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("NamesAreCaseSensitive", func(t *testing.T) {
		s := newStore(t)

		for _, name := range []string{"a", "A"} {
			created, err := s.CreateCounter(name)
			require.NoError(t, err)
			assert.True(t, created, name)
		}
	})

	t.Run("CountersKeepCreationOrder", func(t *testing.T) {
		s := newStore(t)

		for _, name := range []string{"zeta", "alpha", "mid"} {
			_, err := s.CreateCounter(name)
			require.NoError(t, err)
		}
		names, err := s.Counters()
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
	})

	t.Run("AppendAndPopAreLIFO", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateCounter("A")
		require.NoError(t, err)

		for i, ts := range []int64{100, 200, 300} {
			n, err := s.AppendEvent("A", ts)
			require.NoError(t, err)
			assert.Equal(t, i+1, n)
		}

		ts, ok, err := s.PopEvent("A")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(300), ts)

		events, err := s.Events("A")
		require.NoError(t, err)
		assert.Equal(t, []int64{100, 200}, events)
	})

	t.Run("EqualTimestampsPopOneAtATime", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateCounter("A")
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err := s.AppendEvent("A", 42)
			require.NoError(t, err)
		}
		_, ok, err := s.PopEvent("A")
		require.NoError(t, err)
		require.True(t, ok)

		n, err := s.Len("A")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("PopEmptyIsNoop", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateCounter("A")
		require.NoError(t, err)

		_, ok, err := s.PopEvent("A")
		require.NoError(t, err)
		assert.False(t, ok)

		n, err := s.Len("A")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("UnknownCounter", func(t *testing.T) {
		s := newStore(t)

		_, err := s.AppendEvent("ghost", 1)
		assert.True(t, errors.Is(err, registry.ErrUnknownCounter), "AppendEvent: %v", err)

		_, _, err = s.PopEvent("ghost")
		assert.True(t, errors.Is(err, registry.ErrUnknownCounter), "PopEvent: %v", err)

		_, err = s.Len("ghost")
		assert.True(t, errors.Is(err, registry.ErrUnknownCounter), "Len: %v", err)

		_, err = s.Events("ghost")
		assert.True(t, errors.Is(err, registry.ErrUnknownCounter), "Events: %v", err)
	})

	t.Run("EventsReturnsCopy", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateCounter("A")
		require.NoError(t, err)
		_, err = s.AppendEvent("A", 1)
		require.NoError(t, err)

		events, err := s.Events("A")
		require.NoError(t, err)
		events[0] = 99

		again, err := s.Events("A")
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, again)
	})
}
