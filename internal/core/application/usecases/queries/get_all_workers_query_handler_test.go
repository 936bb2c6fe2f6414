package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/workerrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/worker"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAllWorkersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	workers   *workerrepo.GormWorkerRepository
	handler   queries.GetAllWorkersQueryHandler
}

func (suite *GetAllWorkersQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&workerrepo.WorkerDTO{})
	suite.Require().NoError(err)

	suite.workers = workerrepo.NewGormWorkerRepository(db, &mockAggregateTracker{})
	suite.handler = queries.NewGetAllWorkersQueryHandler(db)
}

func (suite *GetAllWorkersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAllWorkersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE workers").Error
	suite.Require().NoError(err)
}

func (suite *GetAllWorkersQueryHandlerTestSuite) TestHandle_NoWorkers_ReturnsEmptySlice() {
	query := queries.NewGetAllWorkersQuery()

	workers, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(workers)
	suite.Empty(workers)
}

func (suite *GetAllWorkersQueryHandlerTestSuite) TestHandle_ReturnsRosterOrderedByName() {
	zoe := suite.createWorker("Zoe Quill", 22.0)
	alex := suite.createWorker("Alex Moro", 18.5)
	mira := suite.createWorker("Mira Sand", 20.0)

	query := queries.NewGetAllWorkersQuery()

	workers, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(workers, 3)

	suite.Equal(alex.ID(), workers[0].ID)
	suite.Equal("Alex Moro", workers[0].Name)
	suite.InDelta(18.5, workers[0].HourlyRate, 0.001)

	suite.Equal(mira.ID(), workers[1].ID)
	suite.Equal("Mira Sand", workers[1].Name)

	suite.Equal(zoe.ID(), workers[2].ID)
	suite.Equal("Zoe Quill", workers[2].Name)
}

func (suite *GetAllWorkersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAllWorkersQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetAllWorkersQuery constructor")
}

func (suite *GetAllWorkersQueryHandlerTestSuite) createWorker(name string, rate float64) *worker.Worker {
	testWorker, _ := worker.NewWorker(kernel.NewUUID(), name, rate)
	err := suite.workers.Add(context.Background(), testWorker)
	suite.Require().NoError(err)
	return testWorker
}

func TestGetAllWorkersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAllWorkersQueryHandlerTestSuite))
}
