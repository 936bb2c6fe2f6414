package timer_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Validate(t *testing.T) {
	t.Run("should accept all defined states", func(t *testing.T) {
		for _, s := range []timer.State{timer.Idle, timer.Running, timer.Paused, timer.Stopped} {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject unknown state", func(t *testing.T) {
		err := timer.Unknown.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "state is invalid")
	})

	t.Run("should reject out of range state", func(t *testing.T) {
		err := timer.State(99).Validate()

		require.Error(t, err)
	})
}

func TestState_String(t *testing.T) {
	t.Run("should return readable names", func(t *testing.T) {
		assert.Equal(t, "Idle", timer.Idle.String())
		assert.Equal(t, "Running", timer.Running.String())
		assert.Equal(t, "Paused", timer.Paused.String())
		assert.Equal(t, "Stopped", timer.Stopped.String())
		assert.Equal(t, "Unknown", timer.Unknown.String())
		assert.Equal(t, "Unknown", timer.State(99).String())
	})
}

func TestStateFromString(t *testing.T) {
	t.Run("should round trip all valid states", func(t *testing.T) {
		for _, s := range []timer.State{timer.Idle, timer.Running, timer.Paused, timer.Stopped} {
			parsed, err := timer.StateFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown string", func(t *testing.T) {
		_, err := timer.StateFromString("Sleeping")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestState_Transitions(t *testing.T) {
	t.Run("should start only from idle", func(t *testing.T) {
		next, err := timer.Idle.Start()
		require.NoError(t, err)
		assert.Equal(t, timer.Running, next)

		for _, s := range []timer.State{timer.Running, timer.Paused, timer.Stopped} {
			_, err := s.Start()
			require.Error(t, err, s.String())
			require.ErrorIs(t, err, errs.ErrInvalidState)
		}
	})

	t.Run("should pause only from running", func(t *testing.T) {
		next, err := timer.Running.Pause()
		require.NoError(t, err)
		assert.Equal(t, timer.Paused, next)

		for _, s := range []timer.State{timer.Idle, timer.Paused, timer.Stopped} {
			_, err := s.Pause()
			require.Error(t, err, s.String())
			require.ErrorIs(t, err, errs.ErrInvalidState)
		}
	})

	t.Run("should resume only from paused", func(t *testing.T) {
		next, err := timer.Paused.Resume()
		require.NoError(t, err)
		assert.Equal(t, timer.Running, next)

		for _, s := range []timer.State{timer.Idle, timer.Running, timer.Stopped} {
			_, err := s.Resume()
			require.Error(t, err, s.String())
			require.ErrorIs(t, err, errs.ErrInvalidState)
		}
	})

	t.Run("should stop from running and paused only", func(t *testing.T) {
		for _, s := range []timer.State{timer.Running, timer.Paused} {
			next, err := s.Stop()
			require.NoError(t, err, s.String())
			assert.Equal(t, timer.Stopped, next)
		}

		for _, s := range []timer.State{timer.Idle, timer.Stopped} {
			_, err := s.Stop()
			require.Error(t, err, s.String())
			require.ErrorIs(t, err, errs.ErrInvalidState)
		}
	})
}

func TestState_IsActive(t *testing.T) {
	t.Run("should treat running and paused as active", func(t *testing.T) {
		assert.True(t, timer.Running.IsActive())
		assert.True(t, timer.Paused.IsActive())
		assert.False(t, timer.Idle.IsActive())
		assert.False(t, timer.Stopped.IsActive())
		assert.False(t, timer.Unknown.IsActive())
	})
}
