package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Shared mock doubles for every command handler test in this package. Each
// handler test wires only the expectations its choreography needs; calling an
// unexpected method fails the test.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInBatch(ctx context.Context, batchID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUnshipped(ctx context.Context, terminalStageID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, terminalStageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(ctx context.Context, w *worker.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) GetAll(ctx context.Context) ([]*worker.Worker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*worker.Worker), args.Error(1)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *timer.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *timer.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) FindActiveByUser(ctx context.Context, userID kernel.UUID) (*timer.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timer.Session), args.Error(1)
}

type MockLogRepository struct{ mock.Mock }

func (m *MockLogRepository) Add(ctx context.Context, l *timer.Log) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

type MockBatchMemberRepository struct{ mock.Mock }

func (m *MockBatchMemberRepository) Add(ctx context.Context, member *timer.BatchMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockBatchMemberRepository) Find(ctx context.Context, batchID, userID kernel.UUID) (*timer.BatchMember, error) {
	args := m.Called(ctx, batchID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timer.BatchMember), args.Error(1)
}

func (m *MockBatchMemberRepository) GetAllForBatch(ctx context.Context, batchID kernel.UUID) ([]*timer.BatchMember, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timer.BatchMember), args.Error(1)
}

func (m *MockBatchMemberRepository) Remove(ctx context.Context, batchID, userID kernel.UUID) error {
	args := m.Called(ctx, batchID, userID)
	return args.Error(0)
}

func (m *MockBatchMemberRepository) RemoveAllForBatch(ctx context.Context, batchID kernel.UUID) error {
	args := m.Called(ctx, batchID)
	return args.Error(0)
}

type MockInventoryGateway struct{ mock.Mock }

func (m *MockInventoryGateway) Deduct(ctx context.Context, o *order.Order) (*ports.DeductionResult, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.DeductionResult), args.Error(1)
}

func (m *MockInventoryGateway) Status(ctx context.Context, items []*order.LineItem) (order.InventoryStatus, error) {
	args := m.Called(ctx, items)
	return args.Get(0).(order.InventoryStatus), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderStageChanged(ctx context.Context, event ports.OrderStageChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockUnitOfWork satisfies every narrow unit of work the command handlers
// declare, so one double serves the whole package.
type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUnitOfWork) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockUnitOfWork) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockUnitOfWork) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

func (m *MockUnitOfWork) LogRepository() ports.LogRepository {
	args := m.Called()
	return args.Get(0).(ports.LogRepository)
}

func (m *MockUnitOfWork) BatchMemberRepository() ports.BatchMemberRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchMemberRepository)
}

type MockTimerUoWFactory struct{ mock.Mock }

func (m *MockTimerUoWFactory) Create() commands.TimerUoW {
	args := m.Called()
	return args.Get(0).(commands.TimerUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBatchTimerUoWFactory struct{ mock.Mock }

func (m *MockBatchTimerUoWFactory) Create() commands.BatchTimerUoW {
	args := m.Called()
	return args.Get(0).(commands.BatchTimerUoW)
}

type MockBatchUoWFactory struct{ mock.Mock }

func (m *MockBatchUoWFactory) Create() commands.BatchUoW {
	args := m.Called()
	return args.Get(0).(commands.BatchUoW)
}

type MockWorkerUoWFactory struct{ mock.Mock }

func (m *MockWorkerUoWFactory) Create() commands.WorkerUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkerUoW)
}

type MockInventoryUoWFactory struct{ mock.Mock }

func (m *MockInventoryUoWFactory) Create() commands.InventoryUoW {
	args := m.Called()
	return args.Get(0).(commands.InventoryUoW)
}

// Fixtures shared across handler tests. The pipeline mirrors a small
// fulfillment floor: entry, two working stages (one worksheet-gated), a
// quality gate and the terminal shipping stage.

var fixtureTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testPipeline(t *testing.T) *stage.Graph {
	t.Helper()

	names := []struct {
		name              string
		terminal          bool
		requiresWorksheet bool
	}{
		{"New Orders", false, false},
		{"Picking", false, false},
		{"Embroidery", false, true},
		{"Quality Check", false, false},
		{"Shipped", true, false},
	}

	stages := make([]*stage.Stage, 0, len(names))
	for i, n := range names {
		s, err := stage.NewStage(kernel.NewUUID(), n.name, i, "#4a90d9", n.terminal, n.requiresWorksheet)
		require.NoError(t, err)
		stages = append(stages, s)
	}

	g, err := stage.NewGraph(stages)
	require.NoError(t, err)
	return g
}

func stageAt(t *testing.T, g *stage.Graph, index int) *stage.Stage {
	t.Helper()
	stages := g.Stages()
	require.Less(t, index, len(stages))
	return stages[index]
}

func orderFixture(t *testing.T, stageID kernel.UUID, items []*order.LineItem) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), "SO-1042", "Acme Corp", stageID, items, fixtureTime)
	require.NoError(t, err)
	return o
}

func doneItems(t *testing.T) []*order.LineItem {
	t.Helper()

	item, err := order.RestoreLineItem("TEE-RED-L", "Red tee, large", 5, 5, true)
	require.NoError(t, err)
	return []*order.LineItem{item}
}

func openItems(t *testing.T) []*order.LineItem {
	t.Helper()

	item, err := order.NewLineItem("TEE-RED-L", "Red tee, large", 5)
	require.NoError(t, err)
	return []*order.LineItem{item}
}

func runningSessionFixture(t *testing.T, userID, stageID kernel.UUID) *timer.Session {
	t.Helper()

	s, err := timer.NewSession(kernel.NewUUID(), userID, stageID, nil, "", fixtureTime)
	require.NoError(t, err)
	return s
}

func batchFixture(t *testing.T, stageID kernel.UUID, orderIDs []kernel.UUID) *batch.Batch {
	t.Helper()

	b, err := batch.NewBatch(kernel.NewUUID(), orderIDs, stageID, fixtureTime)
	require.NoError(t, err)
	return b
}

func runningBatchFixture(t *testing.T, stageID kernel.UUID, orderIDs []kernel.UUID) *batch.Batch {
	t.Helper()

	b := batchFixture(t, stageID, orderIDs)
	started, err := b.StartTimerIfIdle(fixtureTime)
	require.NoError(t, err)
	require.True(t, started)
	return b
}

func memberFixture(t *testing.T, batchID, userID kernel.UUID) *timer.BatchMember {
	t.Helper()

	member, err := timer.NewBatchMember(batchID, userID, fixtureTime)
	require.NoError(t, err)
	return member
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
