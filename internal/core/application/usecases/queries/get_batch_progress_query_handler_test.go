package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/batchrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/stagerepo"
	"fulfillment/internal/adapters/out/postgres/timerrepo"
	"fulfillment/internal/adapters/out/postgres/workerrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetBatchProgressQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	batches   *batchrepo.GormBatchRepository
	orders    *orderrepo.GormOrderRepository
	stages    *stagerepo.GormStageRepository
	members   *timerrepo.GormBatchMemberRepository
	workers   *workerrepo.GormWorkerRepository
	handler   queries.GetBatchProgressQueryHandler

	productionStage *stage.Stage
}

func (suite *GetBatchProgressQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&batchrepo.BatchDTO{},
		&orderrepo.OrderDTO{},
		&stagerepo.StageDTO{},
		&timerrepo.BatchMemberDTO{},
		&workerrepo.WorkerDTO{},
	)
	suite.Require().NoError(err)

	suite.batches = batchrepo.NewGormBatchRepository(db, &mockAggregateTracker{})
	suite.orders = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.stages = stagerepo.NewGormStageRepository(db, &mockAggregateTracker{})
	suite.members = timerrepo.NewGormBatchMemberRepository(db, &mockAggregateTracker{})
	suite.workers = workerrepo.NewGormWorkerRepository(db, &mockAggregateTracker{})
	suite.handler = queries.NewGetBatchProgressQueryHandler(db)
}

func (suite *GetBatchProgressQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetBatchProgressQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE batches, orders, stages, batch_workers, workers").Error
	suite.Require().NoError(err)

	productionStage, err := stage.NewStage(kernel.NewUUID(), "Production", 2, "#F59E0B", false, true)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.stages.Add(context.Background(), productionStage))
	suite.productionStage = productionStage
}

func (suite *GetBatchProgressQueryHandlerTestSuite) TestHandle_NonExistentBatch_ReturnsNotFoundError() {
	query, err := queries.NewGetBatchProgressQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GetBatchProgressQueryHandlerTestSuite) TestHandle_LiveBatch_FullProgressView() {
	ctx := context.Background()
	now := time.Now().UTC()

	orderOne := suite.createOrder("SO-1", []int{5, 3})
	suite.Require().NoError(orderOne.UpdateItemProgress(0, 2))
	suite.Require().NoError(orderOne.SetItemComplete(1, true))

	orderTwo := suite.createOrder("SO-2", []int{4})

	testBatch, err := batch.NewBatch(
		kernel.NewUUID(),
		[]kernel.UUID{orderOne.ID(), orderTwo.ID()},
		suite.productionStage.ID(),
		now.Add(-time.Hour),
	)
	suite.Require().NoError(err)

	started, err := testBatch.StartTimerIfIdle(now.Add(-30 * time.Minute))
	suite.Require().NoError(err)
	suite.Require().True(started)
	suite.Require().NoError(suite.batches.Add(ctx, testBatch))

	for _, memberOrder := range []*order.Order{orderOne, orderTwo} {
		suite.Require().NoError(memberOrder.AssignBatch(testBatch.ID()))
		suite.Require().NoError(suite.orders.Update(ctx, memberOrder))
	}

	mia := suite.createWorker("Mia Flint")
	leo := suite.createWorker("Leo Aru")
	suite.joinBatch(testBatch.ID(), mia.ID(), now.Add(-30*time.Minute))
	suite.joinBatch(testBatch.ID(), leo.ID(), now.Add(-10*time.Minute))

	query, err := queries.NewGetBatchProgressQuery(testBatch.ID())
	suite.Require().NoError(err)

	progress, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(testBatch.ID(), progress.BatchID)
	suite.Equal(suite.productionStage.ID(), progress.CurrentStageID)
	suite.Equal("Production", progress.StageName)
	suite.False(progress.Completed)
	suite.Equal(timer.Running, progress.ClockState)
	suite.InDelta(30, progress.ElapsedMinutes, 1)

	suite.Equal(5, progress.ItemsDone)
	suite.Equal(12, progress.ItemsNeeded)

	suite.Require().Len(progress.Orders, 2)
	suite.Equal(orderOne.ID(), progress.Orders[0].OrderID)
	suite.Equal("SO-1", progress.Orders[0].Number)
	suite.Equal(5, progress.Orders[0].ItemsDone)
	suite.Equal(8, progress.Orders[0].ItemsNeeded)
	suite.False(progress.Orders[0].WorksheetComplete)
	suite.Equal("SO-2", progress.Orders[1].Number)
	suite.Equal(0, progress.Orders[1].ItemsDone)
	suite.Equal(4, progress.Orders[1].ItemsNeeded)

	suite.Require().Len(progress.ActiveWorkers, 2)
	suite.Equal(mia.ID(), progress.ActiveWorkers[0].UserID)
	suite.Equal("Mia Flint", progress.ActiveWorkers[0].UserName)
	suite.Equal(leo.ID(), progress.ActiveWorkers[1].UserID)
	suite.True(progress.ActiveWorkers[0].JoinedAt.Before(progress.ActiveWorkers[1].JoinedAt))
}

func (suite *GetBatchProgressQueryHandlerTestSuite) TestHandle_IdleBatch_EmptyProgress() {
	ctx := context.Background()

	testBatch, err := batch.NewBatch(
		kernel.NewUUID(),
		[]kernel.UUID{kernel.NewUUID()},
		suite.productionStage.ID(),
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.batches.Add(ctx, testBatch))

	query, err := queries.NewGetBatchProgressQuery(testBatch.ID())
	suite.Require().NoError(err)

	progress, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(timer.Idle, progress.ClockState)
	suite.Zero(progress.ElapsedMinutes)
	suite.Zero(progress.ItemsDone)
	suite.Zero(progress.ItemsNeeded)
	suite.NotNil(progress.Orders)
	suite.Empty(progress.Orders)
	suite.NotNil(progress.ActiveWorkers)
	suite.Empty(progress.ActiveWorkers)
}

func (suite *GetBatchProgressQueryHandlerTestSuite) TestHandle_PausedCompletedBatch_FrozenClock() {
	ctx := context.Background()
	now := time.Now().UTC()

	testBatch, err := batch.NewBatch(
		kernel.NewUUID(),
		[]kernel.UUID{kernel.NewUUID()},
		suite.productionStage.ID(),
		now.Add(-time.Hour),
	)
	suite.Require().NoError(err)

	_, err = testBatch.StartTimerIfIdle(now.Add(-30 * time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(testBatch.PauseTimer(now.Add(-15 * time.Minute)))
	suite.Require().NoError(testBatch.MarkCompleted())
	suite.Require().NoError(suite.batches.Add(ctx, testBatch))

	query, err := queries.NewGetBatchProgressQuery(testBatch.ID())
	suite.Require().NoError(err)

	progress, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(progress.Completed)
	suite.Equal(timer.Paused, progress.ClockState)

	// A paused clock reads its banked time no matter how much later we look.
	suite.Equal(15, progress.ElapsedMinutes)
}

func (suite *GetBatchProgressQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetBatchProgressQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetBatchProgressQuery constructor")
}

func (suite *GetBatchProgressQueryHandlerTestSuite) createOrder(number string, quantities []int) *order.Order {
	items := make([]*order.LineItem, 0, len(quantities))
	for _, qty := range quantities {
		item, err := order.NewLineItem("TEE-RED-L", "Red tee, large", qty)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		"Acme Corp",
		suite.productionStage.ID(),
		items,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), testOrder))
	return testOrder
}

func (suite *GetBatchProgressQueryHandlerTestSuite) createWorker(name string) *worker.Worker {
	testWorker, _ := worker.NewWorker(kernel.NewUUID(), name, 15.0)
	err := suite.workers.Add(context.Background(), testWorker)
	suite.Require().NoError(err)
	return testWorker
}

func (suite *GetBatchProgressQueryHandlerTestSuite) joinBatch(batchID, userID kernel.UUID, joinedAt time.Time) {
	member, err := timer.NewBatchMember(batchID, userID, joinedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.members.Add(context.Background(), member))
}

func TestGetBatchProgressQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetBatchProgressQueryHandlerTestSuite))
}
