package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/stagerepo"
	"fulfillment/internal/adapters/out/postgres/timerrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/timer"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetTimerHistoryQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetTimerHistoryQueryHandler
	logs      *timerrepo.GormLogRepository
	sessions  *timerrepo.GormSessionRepository
	stages    *stagerepo.GormStageRepository
	orders    *orderrepo.GormOrderRepository

	production *stage.Stage
	packing    *stage.Stage
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) SetupSuite() {
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
		&timerrepo.LogDTO{},
		&timerrepo.SessionDTO{},
		&stagerepo.StageDTO{},
		&orderrepo.OrderDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetTimerHistoryQueryHandler(db)
	suite.logs = timerrepo.NewGormLogRepository(db, &mockAggregateTracker{})
	suite.sessions = timerrepo.NewGormSessionRepository(db, &mockAggregateTracker{})
	suite.stages = stagerepo.NewGormStageRepository(db, &mockAggregateTracker{})
	suite.orders = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE timer_logs, timer_sessions, stages, orders").Error
	suite.Require().NoError(err)

	production, err := stage.NewStage(kernel.NewUUID(), "Production", 2, "#F59E0B", false, true)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.stages.Add(context.Background(), production))
	suite.production = production

	packing, err := stage.NewStage(kernel.NewUUID(), "Packing", 3, "#10B981", false, false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.stages.Add(context.Background(), packing))
	suite.packing = packing
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) TestHandle_NoActivity_ReturnsEmptyHistory() {
	query, err := queries.NewGetTimerHistoryQuery(kernel.NewUUID(), queries.PeriodDay)
	suite.Require().NoError(err)

	history, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Zero(history.Totals.SessionCount)
	suite.Zero(history.Totals.TotalMinutes)
	suite.NotNil(history.Sessions)
	suite.Empty(history.Sessions)
	suite.NotNil(history.ByStage)
	suite.Empty(history.ByStage)
	suite.Nil(history.ActiveTimer)
	suite.Equal("Today", history.PeriodLabel)
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) TestHandle_TotalsAndSessionLines() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	now := time.Now().UTC()

	pinnedOrder := suite.createOrder("SO-2905")

	// Earlier session pinned to an order, later one entered manually.
	orderID := pinnedOrder.ID()
	suite.addLog(userID, suite.production.ID(), &orderID, now.Add(-2*time.Second), 45, 1, 5, false)
	suite.addLog(userID, suite.production.ID(), nil, now.Add(-time.Second), 30, 0, 0, true)

	query, err := queries.NewGetTimerHistoryQuery(userID, queries.PeriodDay)
	suite.Require().NoError(err)

	history, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(2, history.Totals.SessionCount)
	suite.Equal(75, history.Totals.TotalMinutes)
	suite.InDelta(1.25, history.Totals.TotalHours, 0.001)
	suite.Equal(1, history.Totals.TotalOrders)
	suite.Equal(5, history.Totals.TotalItems)

	suite.Require().Len(history.Sessions, 2)

	// Newest first.
	suite.Equal("Production", history.Sessions[0].StageName)
	suite.Empty(history.Sessions[0].OrderNumber)
	suite.Equal(30, history.Sessions[0].DurationMinutes)
	suite.True(history.Sessions[0].IsManual)

	suite.Equal("SO-2905", history.Sessions[1].OrderNumber)
	suite.Equal(45, history.Sessions[1].DurationMinutes)
	suite.Equal(1, history.Sessions[1].OrdersProcessed)
	suite.Equal(5, history.Sessions[1].ItemsProcessed)
	suite.False(history.Sessions[1].IsManual)

	suite.Equal("Today", history.PeriodLabel)
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) TestHandle_ByStage_OrderedByPipelinePosition() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	now := time.Now().UTC()

	// Packing was worked first, Production twice after, yet Production
	// leads the breakdown because it sits earlier in the pipeline.
	suite.addLog(userID, suite.packing.ID(), nil, now.Add(-3*time.Second), 10, 0, 2, false)
	suite.addLog(userID, suite.production.ID(), nil, now.Add(-2*time.Second), 20, 1, 3, false)
	suite.addLog(userID, suite.production.ID(), nil, now.Add(-time.Second), 20, 1, 3, false)

	query, err := queries.NewGetTimerHistoryQuery(userID, queries.PeriodDay)
	suite.Require().NoError(err)

	history, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(history.ByStage, 2)

	suite.Equal(suite.production.ID(), history.ByStage[0].StageID)
	suite.Equal("Production", history.ByStage[0].StageName)
	suite.Equal(2, history.ByStage[0].SessionCount)
	suite.Equal(40, history.ByStage[0].TotalMinutes)

	suite.Equal(suite.packing.ID(), history.ByStage[1].StageID)
	suite.Equal("Packing", history.ByStage[1].StageName)
	suite.Equal(1, history.ByStage[1].SessionCount)
	suite.Equal(10, history.ByStage[1].TotalMinutes)
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) TestHandle_ActiveTimer_NotCountedInTotals() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	now := time.Now().UTC()

	suite.addLog(userID, suite.production.ID(), nil, now.Add(-time.Second), 30, 1, 4, false)

	session, err := timer.NewSession(
		kernel.NewUUID(), userID, suite.production.ID(), nil, "", now.Add(-10*time.Minute),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.sessions.Add(ctx, session))

	query, err := queries.NewGetTimerHistoryQuery(userID, queries.PeriodDay)
	suite.Require().NoError(err)

	history, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(1, history.Totals.SessionCount)
	suite.Equal(30, history.Totals.TotalMinutes)

	suite.Require().NotNil(history.ActiveTimer)
	suite.Equal(suite.production.ID(), history.ActiveTimer.StageID)
	suite.Equal("Production", history.ActiveTimer.StageName)
	suite.False(history.ActiveTimer.IsPaused)
	suite.InDelta(10, float64(history.ActiveTimer.ElapsedMinutes), 1)
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) TestHandle_OtherUsersActivity_Excluded() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	otherUserID := kernel.NewUUID()
	now := time.Now().UTC()

	suite.addLog(otherUserID, suite.production.ID(), nil, now.Add(-time.Second), 50, 1, 5, false)

	query, err := queries.NewGetTimerHistoryQuery(userID, queries.PeriodDay)
	suite.Require().NoError(err)

	history, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Zero(history.Totals.SessionCount)
	suite.Empty(history.Sessions)
	suite.Nil(history.ActiveTimer)
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetTimerHistoryQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetTimerHistoryQuery constructor")
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) createOrder(number string) *order.Order {
	item, _ := order.NewLineItem("TEE-RED-L", "Red tee, large", 3)
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		"Acme Corp",
		suite.production.ID(),
		[]*order.LineItem{item},
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(context.Background(), testOrder))
	return testOrder
}

func (suite *GetTimerHistoryQueryHandlerTestSuite) addLog(
	userID, stageID kernel.UUID,
	orderID *kernel.UUID,
	completedAt time.Time,
	durationMinutes, ordersProcessed, itemsProcessed int,
	isManual bool,
) {
	startedAt := completedAt.Add(-time.Duration(durationMinutes) * time.Minute)
	log, err := timer.NewLog(
		kernel.NewUUID(),
		userID,
		stageID,
		orderID,
		nil,
		startedAt,
		completedAt,
		durationMinutes,
		ordersProcessed,
		itemsProcessed,
		isManual,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.logs.Add(context.Background(), log))
}

func TestGetTimerHistoryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetTimerHistoryQueryHandlerTestSuite))
}
