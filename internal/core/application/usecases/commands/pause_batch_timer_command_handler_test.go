package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPauseBatchTimerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	aggregate := runningBatchFixture(t, kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()})
	cmd, _ := commands.NewPauseBatchTimerCommand(aggregate.ID(), userID)

	member := memberFixture(t, aggregate.ID(), userID)

	batches := new(MockBatchRepository)
	members := new(MockBatchMemberRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batches).Once(),
		batches.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("BatchMemberRepository").Return(members).Once(),
		members.On("Find", mock.Anything, aggregate.ID(), userID).Return(member, nil).Once(),
		batches.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchTimerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPauseBatchTimerCommandHandler(factory, locker.NewKeyedMutex())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, timer.Paused, aggregate.Clock().State())
	batches.AssertExpectations(t)
	members.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPauseBatchTimerCommandHandler_Handle_NonMemberRejected(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	aggregate := runningBatchFixture(t, kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()})
	cmd, _ := commands.NewPauseBatchTimerCommand(aggregate.ID(), userID)

	batches := new(MockBatchRepository)
	members := new(MockBatchMemberRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batches).Once(),
		batches.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("BatchMemberRepository").Return(members).Once(),
		members.On("Find", mock.Anything, aggregate.ID(), userID).
			Return(nil, errs.NewObjectNotFoundError("batch member", userID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchTimerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPauseBatchTimerCommandHandler(factory, locker.NewKeyedMutex())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTimerRequired)
	assert.Equal(t, timer.Running, aggregate.Clock().State())
}

func TestPauseBatchTimerCommandHandler_Handle_ClockNotRunning(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	aggregate := batchFixture(t, kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()})
	cmd, _ := commands.NewPauseBatchTimerCommand(aggregate.ID(), userID)

	member := memberFixture(t, aggregate.ID(), userID)

	batches := new(MockBatchRepository)
	members := new(MockBatchMemberRepository)
	uow := new(MockUnitOfWork)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batches).Once(),
		batches.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("BatchMemberRepository").Return(members).Once(),
		members.On("Find", mock.Anything, aggregate.ID(), userID).Return(member, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchTimerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPauseBatchTimerCommandHandler(factory, locker.NewKeyedMutex())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	batches.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
