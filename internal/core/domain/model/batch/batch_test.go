package batch_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var batchBase = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func memberOrders(t *testing.T, n int) []kernel.UUID {
	t.Helper()

	ids := make([]kernel.UUID, 0, n)
	for range n {
		ids = append(ids, kernel.NewUUID())
	}
	return ids
}

func TestNewBatch(t *testing.T) {
	batchID := kernel.NewUUID()
	stageID := kernel.NewUUID()

	t.Run("should create batch with idle shared clock", func(t *testing.T) {
		orders := memberOrders(t, 3)

		b, err := batch.NewBatch(batchID, orders, stageID, batchBase)

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.True(t, b.ID().IsEqual(batchID))
		assert.Len(t, b.OrderIDs(), 3)
		assert.True(t, b.CurrentStage().IsEqual(stageID))
		assert.Equal(t, timer.Idle, b.Clock().State())
		assert.False(t, b.Completed())
		assert.Equal(t, batchBase, b.CreatedAt())
	})

	t.Run("should fail without member orders", func(t *testing.T) {
		b, err := batch.NewBatch(batchID, nil, stageID, batchBase)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "orderIDs")
	})

	t.Run("should fail with duplicate member orders", func(t *testing.T) {
		orderID := kernel.NewUUID()

		b, err := batch.NewBatch(batchID, []kernel.UUID{orderID, orderID}, stageID, batchBase)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "appears more than once")
	})

	t.Run("should fail with invalid member order ID", func(t *testing.T) {
		var invalidOrderID kernel.UUID

		b, err := batch.NewBatch(batchID, []kernel.UUID{invalidOrderID}, stageID, batchBase)

		require.Error(t, err)
		assert.Nil(t, b)
	})

	t.Run("should fail with invalid batch ID", func(t *testing.T) {
		var invalidID kernel.UUID

		b, err := batch.NewBatch(invalidID, memberOrders(t, 1), stageID, batchBase)

		require.Error(t, err)
		assert.Nil(t, b)
	})

	t.Run("should fail with zero creation time", func(t *testing.T) {
		b, err := batch.NewBatch(batchID, memberOrders(t, 1), stageID, time.Time{})

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "createdAt")
	})
}

func TestRestoreBatch(t *testing.T) {
	batchID := kernel.NewUUID()
	stageID := kernel.NewUUID()

	t.Run("should restore batch with a paused clock", func(t *testing.T) {
		clock, err := timer.RestoreClock(timer.Paused, nil, 25*time.Minute)
		require.NoError(t, err)

		b, err := batch.RestoreBatch(batchID, memberOrders(t, 2), stageID, clock, false, batchBase)

		require.NoError(t, err)
		assert.Equal(t, timer.Paused, b.Clock().State())
		assert.Equal(t, 25*time.Minute, b.Clock().Accumulated())
		assert.False(t, b.Completed())
	})

	t.Run("should restore completed batch", func(t *testing.T) {
		clock, err := timer.RestoreClock(timer.Stopped, nil, 90*time.Minute)
		require.NoError(t, err)

		b, err := batch.RestoreBatch(batchID, memberOrders(t, 2), stageID, clock, true, batchBase)

		require.NoError(t, err)
		assert.True(t, b.Completed())
	})

	t.Run("should fail with unconstructed clock", func(t *testing.T) {
		var raw timer.Clock

		b, err := batch.RestoreBatch(batchID, memberOrders(t, 2), stageID, raw, false, batchBase)

		require.Error(t, err)
		assert.Nil(t, b)
	})
}

func TestBatch_Validate(t *testing.T) {
	t.Run("should fail validation for nil batch", func(t *testing.T) {
		var b *batch.Batch

		err := b.Validate()

		require.Error(t, err)
		assert.Equal(t, batch.ErrBatchIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value batch", func(t *testing.T) {
		var b batch.Batch

		err := b.Validate()

		require.Error(t, err)
		assert.Equal(t, batch.ErrBatchIsNotConstructed, err)
	})
}

func TestBatch_ContainsOrder(t *testing.T) {
	batchID := kernel.NewUUID()
	stageID := kernel.NewUUID()
	orders := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	b, err := batch.NewBatch(batchID, orders, stageID, batchBase)
	require.NoError(t, err)

	t.Run("should find member order", func(t *testing.T) {
		assert.True(t, b.ContainsOrder(orders[0]))
		assert.True(t, b.ContainsOrder(orders[1]))
	})

	t.Run("should not find outside order", func(t *testing.T) {
		assert.False(t, b.ContainsOrder(kernel.NewUUID()))
	})
}

func TestBatch_StartTimerIfIdle(t *testing.T) {
	batchID := kernel.NewUUID()
	stageID := kernel.NewUUID()

	t.Run("should start idle clock for the first joiner", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)

		started, err := b.StartTimerIfIdle(batchBase)

		require.NoError(t, err)
		assert.True(t, started)
		assert.Equal(t, timer.Running, b.Clock().State())
		require.NotNil(t, b.Clock().StartedAt())
		assert.Equal(t, batchBase, *b.Clock().StartedAt())
	})

	t.Run("should not reset a running clock for later joiners", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)
		_, err := b.StartTimerIfIdle(batchBase)
		require.NoError(t, err)

		later := batchBase.Add(20 * time.Minute)
		started, err := b.StartTimerIfIdle(later)

		require.NoError(t, err)
		assert.False(t, started)
		assert.Equal(t, batchBase, *b.Clock().StartedAt()) // original start preserved
		assert.Equal(t, 20*time.Minute, b.TimerElapsed(later))
	})

	t.Run("should leave a paused clock paused", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)
		_, _ = b.StartTimerIfIdle(batchBase)
		require.NoError(t, b.PauseTimer(batchBase.Add(10*time.Minute)))

		started, err := b.StartTimerIfIdle(batchBase.Add(15 * time.Minute))

		require.NoError(t, err)
		assert.False(t, started)
		assert.Equal(t, timer.Paused, b.Clock().State())
		assert.Equal(t, 10*time.Minute, b.Clock().Accumulated()) // banked time preserved
	})

	t.Run("should fail on a stopped clock", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)
		_, _ = b.StartTimerIfIdle(batchBase)
		_, err := b.StopTimer(batchBase.Add(30 * time.Minute))
		require.NoError(t, err)

		started, err := b.StartTimerIfIdle(batchBase.Add(time.Hour))

		require.Error(t, err)
		assert.False(t, started)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestBatch_TimerLifecycle(t *testing.T) {
	batchID := kernel.NewUUID()
	stageID := kernel.NewUUID()

	t.Run("should bank time across pause and resume", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)
		_, _ = b.StartTimerIfIdle(batchBase)

		require.NoError(t, b.PauseTimer(batchBase.Add(12*time.Minute)))
		assert.Equal(t, 12*time.Minute, b.Clock().Accumulated())

		require.NoError(t, b.ResumeTimer(batchBase.Add(40*time.Minute)))

		total, err := b.StopTimer(batchBase.Add(43 * time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, total)
		assert.Equal(t, timer.Stopped, b.Clock().State())
	})

	t.Run("should fail to pause an idle clock", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)

		err := b.PauseTimer(batchBase)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should fail to resume a running clock", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)
		_, _ = b.StartTimerIfIdle(batchBase)

		err := b.ResumeTimer(batchBase.Add(time.Minute))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should fail to stop twice", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)
		_, _ = b.StartTimerIfIdle(batchBase)
		_, err := b.StopTimer(batchBase.Add(30 * time.Minute))
		require.NoError(t, err)

		_, err = b.StopTimer(batchBase.Add(31 * time.Minute))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should stop from paused without extra time", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)
		_, _ = b.StartTimerIfIdle(batchBase)
		require.NoError(t, b.PauseTimer(batchBase.Add(18*time.Minute)))

		total, err := b.StopTimer(batchBase.Add(2 * time.Hour))

		require.NoError(t, err)
		assert.Equal(t, 18*time.Minute, total)
	})
}

func TestBatch_AssignStage(t *testing.T) {
	batchID := kernel.NewUUID()
	entryStageID := kernel.NewUUID()
	nextStageID := kernel.NewUUID()

	t.Run("should move batch onto the given stage", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), entryStageID, batchBase)

		err := b.AssignStage(nextStageID)

		require.NoError(t, err)
		assert.True(t, b.CurrentStage().IsEqual(nextStageID))
	})

	t.Run("should fail with invalid stage ID and keep current stage", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), entryStageID, batchBase)
		var invalidStageID kernel.UUID

		err := b.AssignStage(invalidStageID)

		require.Error(t, err)
		assert.True(t, b.CurrentStage().IsEqual(entryStageID))
	})
}

func TestBatch_MarkCompleted(t *testing.T) {
	batchID := kernel.NewUUID()
	stageID := kernel.NewUUID()

	t.Run("should mark batch completed", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)

		err := b.MarkCompleted()

		require.NoError(t, err)
		assert.True(t, b.Completed())
	})

	t.Run("should fail to complete twice", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)
		require.NoError(t, b.MarkCompleted())

		err := b.MarkCompleted()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "already completed")
	})

	t.Run("should not stop the shared clock on completion", func(t *testing.T) {
		b, _ := batch.NewBatch(batchID, memberOrders(t, 2), stageID, batchBase)
		_, _ = b.StartTimerIfIdle(batchBase)

		require.NoError(t, b.MarkCompleted())

		assert.Equal(t, timer.Running, b.Clock().State()) // stopping stays explicit
	})
}

func TestBatch_OrderIDsCopy(t *testing.T) {
	t.Run("should return a copy of member orders", func(t *testing.T) {
		orders := memberOrders(t, 2)
		b, _ := batch.NewBatch(kernel.NewUUID(), orders, kernel.NewUUID(), batchBase)

		returned := b.OrderIDs()
		returned[0] = kernel.NewUUID()

		assert.True(t, b.ContainsOrder(orders[0]))
		assert.True(t, b.OrderIDs()[0].IsEqual(orders[0]))
	})
}
