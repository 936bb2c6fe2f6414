package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fulfillment/api"
	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/batchrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/stagerepo"
	"fulfillment/internal/adapters/out/postgres/timerrepo"
	"fulfillment/internal/adapters/out/postgres/workerrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/lib/pq"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ensureDatabase(configs)
	gormDB := connectDatabase(configs)
	migrateDatabase(gormDB)
	graph := loadStageGraph(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, graph, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	startWebServer(&app, graph, logger, configs.HTTPPort)

	jobManager.StopAll()
	if err := app.Close(); err != nil {
		logger.Error("closing outbound adapters", "error", err)
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                    goDotEnvVariable("HTTP_PORT"),
		DBHost:                      goDotEnvVariable("DB_HOST"),
		DBPort:                      goDotEnvVariable("DB_PORT"),
		DBUser:                      goDotEnvVariable("DB_USER"),
		DBPassword:                  goDotEnvVariable("DB_PASSWORD"),
		DBName:                      goDotEnvVariable("DB_NAME"),
		DBSslMode:                   goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:                   goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderStageChangedTopic: goDotEnvVariable("KAFKA_ORDER_STAGE_CHANGED_TOPIC"),
		InventoryServiceURL:         goDotEnvVariable("INVENTORY_SERVICE_URL"),
		ProductionServiceURL:        goDotEnvVariable("PRODUCTION_SERVICE_URL"),
		InventoryRefreshSpec:        goDotEnvVariable("INVENTORY_REFRESH_SPEC"),
		OutboundTimeout:             goDotEnvDuration("OUTBOUND_TIMEOUT"),
		DailyLimitHours:             goDotEnvFloat("DAILY_LIMIT_HOURS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvDuration(key string) time.Duration {
	value, err := time.ParseDuration(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func goDotEnvFloat(key string) float64 {
	value, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

// ensureDatabase creates the service database when it does not exist yet.
// CREATE DATABASE cannot run against the target database itself, so this
// connects to the maintenance database first.
func ensureDatabase(configs cmd.Config) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBSslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Error connecting to postgres: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Error pinging postgres: %v", err)
	}

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", configs.DBName).Scan(&exists)
	if err != nil {
		log.Fatalf("Error checking database %s: %v", configs.DBName, err)
	}
	if exists {
		return
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", pq.QuoteIdentifier(configs.DBName))); err != nil {
		log.Fatalf("Error creating database %s: %v", configs.DBName, err)
	}
}

func connectDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return db
}

func migrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&stagerepo.StageDTO{},
		&orderrepo.OrderDTO{},
		&batchrepo.BatchDTO{},
		&workerrepo.WorkerDTO{},
		&timerrepo.SessionDTO{},
		&timerrepo.BatchMemberDTO{},
		&timerrepo.LogDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

// loadStageGraph reads the pipeline configuration, seeding the default
// pipeline on first boot, and builds the immutable stage graph.
func loadStageGraph(db *gorm.DB) *stage.Graph {
	ctx := context.Background()
	factory := postgres.NewGormUnitOfWorkFactory(db)

	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Fatalf("Error starting stage bootstrap: %v", err)
	}

	repo := uow.StageRepository()
	stages, err := repo.GetAll(ctx)
	if err != nil {
		log.Fatalf("Error loading stages: %v", err)
	}

	if len(stages) == 0 {
		stages, err = seedDefaultStages(ctx, repo)
		if err != nil {
			log.Fatalf("Error seeding stages: %v", err)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		log.Fatalf("Error committing stage bootstrap: %v", err)
	}

	graph, err := stage.NewGraph(stages)
	if err != nil {
		log.Fatalf("Error building stage graph: %v", err)
	}
	return graph
}

func seedDefaultStages(ctx context.Context, repo ports.StageRepository) ([]*stage.Stage, error) {
	defaults := []struct {
		name              string
		color             string
		terminal          bool
		requiresWorksheet bool
	}{
		{"New Orders", "#9e9e9e", false, false},
		{"Picking", "#2196f3", false, false},
		{"Embroidery", "#ff9800", false, true},
		{"Quality Check", "#9c27b0", false, false},
		{"Shipped", "#4caf50", true, false},
	}

	stages := make([]*stage.Stage, 0, len(defaults))
	for i, d := range defaults {
		s, err := stage.NewStage(kernel.NewUUID(), d.name, i, d.color, d.terminal, d.requiresWorksheet)
		if err != nil {
			return nil, err
		}
		if err := repo.Add(ctx, s); err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}
	return stages, nil
}

func startWebServer(app *cmd.CompositionRoot, graph *stage.Graph, logger *slog.Logger, port string) {
	e := echo.New()
	e.HideBanner = true

	server := httpadapter.NewServer(app.CreateHandlers(), graph, logger)
	server.RegisterRoutes(e)

	openAPIHandler, err := httpadapter.NewOpenAPIHandler(api.SpecYAML)
	if err != nil {
		log.Fatalf("Error loading OpenAPI document: %v", err)
	}
	e.GET("/openapi.json", openAPIHandler)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	logger.Info("HTTP server started", "port", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown", "error", err)
	}
}
