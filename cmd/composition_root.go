package cmd

import (
	"log/slog"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/inventory"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/production"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/locker"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	graph      *stage.Graph
	locks      *locker.KeyedMutex
	inventory  *inventory.Client
	production *production.Client
	publisher  *kafka.Publisher
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, graph *stage.Graph, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		graph:      graph,
		locks:      locker.NewKeyedMutex(),
		inventory:  inventory.NewClient(configs.InventoryServiceURL, configs.OutboundTimeout, logger),
		production: production.NewClient(configs.ProductionServiceURL, configs.OutboundTimeout, logger),
		publisher:  kafka.NewPublisher([]string{configs.KafkaHost}, configs.KafkaOrderStageChangedTopic, logger),
		logger:     logger,
	}
}

// Close releases outbound connections held by the root.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateAddWorkerCommandHandler() commands.AddWorkerCommandHandler {
	var f commands.WorkerUoWFactory = FuncWorkerUoWFactory(func() commands.WorkerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddWorkerCommandHandler(f)
}

func (c *CompositionRoot) CreateStartTimerCommandHandler() commands.StartTimerCommandHandler {
	var f commands.TimerUoWFactory = FuncTimerUoWFactory(func() commands.TimerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartTimerCommandHandler(f, c.graph, c.locks)
}

func (c *CompositionRoot) CreatePauseTimerCommandHandler() commands.PauseTimerCommandHandler {
	var f commands.TimerUoWFactory = FuncTimerUoWFactory(func() commands.TimerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPauseTimerCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateResumeTimerCommandHandler() commands.ResumeTimerCommandHandler {
	var f commands.TimerUoWFactory = FuncTimerUoWFactory(func() commands.TimerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResumeTimerCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateStopTimerCommandHandler() commands.StopTimerCommandHandler {
	var f commands.TimerUoWFactory = FuncTimerUoWFactory(func() commands.TimerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStopTimerCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateMoveOrderNextCommandHandler() commands.MoveOrderNextCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMoveOrderNextCommandHandler(f, c.graph, c.inventory, c.publisher, c.locks, c.logger)
}

func (c *CompositionRoot) CreateAssignOrderStageCommandHandler() commands.AssignOrderStageCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderStageCommandHandler(f, c.graph, c.inventory, c.publisher, c.locks, c.logger)
}

func (c *CompositionRoot) CreateBulkMoveOrdersCommandHandler() commands.BulkMoveOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBulkMoveOrdersCommandHandler(f, c.graph, c.inventory, c.publisher, c.locks, c.logger)
}

func (c *CompositionRoot) CreateMarkOrderShippedCommandHandler() commands.MarkOrderShippedCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderShippedCommandHandler(f, c.graph, c.inventory, c.publisher, c.locks, c.logger)
}

func (c *CompositionRoot) CreateSaveWorksheetCommandHandler() commands.SaveWorksheetCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSaveWorksheetCommandHandler(f, c.graph, c.locks)
}

func (c *CompositionRoot) CreateMarkItemCompleteCommandHandler() commands.MarkItemCompleteCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkItemCompleteCommandHandler(f, c.graph, c.locks)
}

func (c *CompositionRoot) CreateCreateBatchCommandHandler() commands.CreateBatchCommandHandler {
	var f commands.BatchUoWFactory = FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBatchCommandHandler(f, c.graph, c.locks)
}

func (c *CompositionRoot) CreateAdvanceBatchCommandHandler() commands.AdvanceBatchCommandHandler {
	var f commands.BatchUoWFactory = FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceBatchCommandHandler(f, c.graph, c.inventory, c.publisher, c.locks, c.logger)
}

func (c *CompositionRoot) CreateCompleteBatchCommandHandler() commands.CompleteBatchCommandHandler {
	var f commands.BatchUoWFactory = FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteBatchCommandHandler(f, c.graph, c.locks)
}

func (c *CompositionRoot) CreateUpdateBatchItemProgressCommandHandler() commands.UpdateBatchItemProgressCommandHandler {
	var f commands.BatchUoWFactory = FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateBatchItemProgressCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateJoinBatchTimerCommandHandler() commands.JoinBatchTimerCommandHandler {
	var f commands.BatchTimerUoWFactory = FuncBatchTimerUoWFactory(func() commands.BatchTimerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewJoinBatchTimerCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreatePauseBatchTimerCommandHandler() commands.PauseBatchTimerCommandHandler {
	var f commands.BatchTimerUoWFactory = FuncBatchTimerUoWFactory(func() commands.BatchTimerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPauseBatchTimerCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateResumeBatchTimerCommandHandler() commands.ResumeBatchTimerCommandHandler {
	var f commands.BatchTimerUoWFactory = FuncBatchTimerUoWFactory(func() commands.BatchTimerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResumeBatchTimerCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateStopBatchTimerCommandHandler() commands.StopBatchTimerCommandHandler {
	var f commands.BatchTimerUoWFactory = FuncBatchTimerUoWFactory(func() commands.BatchTimerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStopBatchTimerCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateLeaveBatchTimerCommandHandler() commands.LeaveBatchTimerCommandHandler {
	var f commands.BatchTimerUoWFactory = FuncBatchTimerUoWFactory(func() commands.BatchTimerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLeaveBatchTimerCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateRefreshInventoryCommandHandler() commands.RefreshInventoryCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshInventoryCommandHandler(f, c.graph, c.inventory)
}

func (c *CompositionRoot) CreateGetAllWorkersQueryHandler() queries.GetAllWorkersQueryHandler {
	return queries.NewGetAllWorkersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveWorkersQueryHandler() queries.GetActiveWorkersQueryHandler {
	return queries.NewGetActiveWorkersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetHoursByUserDateQueryHandler() queries.GetHoursByUserDateQueryHandler {
	return queries.NewGetHoursByUserDateQueryHandler(c.gormDB, c.configs.DailyLimitHours)
}

func (c *CompositionRoot) CreateGetTimerHistoryQueryHandler() queries.GetTimerHistoryQueryHandler {
	return queries.NewGetTimerHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBatchReportQueryHandler() queries.GetBatchReportQueryHandler {
	return queries.NewGetBatchReportQueryHandler(c.gormDB, c.production)
}

func (c *CompositionRoot) CreateGetOrderWorksheetQueryHandler() queries.GetOrderWorksheetQueryHandler {
	return queries.NewGetOrderWorksheetQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBatchProgressQueryHandler() queries.GetBatchProgressQueryHandler {
	return queries.NewGetBatchProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRefreshInventoryCommandHandler(), c.configs.InventoryRefreshSpec, c.logger)
}

// CreateHandlers assembles the full HTTP handler set.
func (c *CompositionRoot) CreateHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		AddWorker:               c.CreateAddWorkerCommandHandler(),
		StartTimer:              c.CreateStartTimerCommandHandler(),
		PauseTimer:              c.CreatePauseTimerCommandHandler(),
		ResumeTimer:             c.CreateResumeTimerCommandHandler(),
		StopTimer:               c.CreateStopTimerCommandHandler(),
		MoveOrderNext:           c.CreateMoveOrderNextCommandHandler(),
		AssignOrderStage:        c.CreateAssignOrderStageCommandHandler(),
		BulkMoveOrders:          c.CreateBulkMoveOrdersCommandHandler(),
		MarkOrderShipped:        c.CreateMarkOrderShippedCommandHandler(),
		SaveWorksheet:           c.CreateSaveWorksheetCommandHandler(),
		MarkItemComplete:        c.CreateMarkItemCompleteCommandHandler(),
		CreateBatch:             c.CreateCreateBatchCommandHandler(),
		JoinBatchTimer:          c.CreateJoinBatchTimerCommandHandler(),
		PauseBatchTimer:         c.CreatePauseBatchTimerCommandHandler(),
		ResumeBatchTimer:        c.CreateResumeBatchTimerCommandHandler(),
		StopBatchTimer:          c.CreateStopBatchTimerCommandHandler(),
		LeaveBatchTimer:         c.CreateLeaveBatchTimerCommandHandler(),
		AdvanceBatch:            c.CreateAdvanceBatchCommandHandler(),
		CompleteBatch:           c.CreateCompleteBatchCommandHandler(),
		UpdateBatchItemProgress: c.CreateUpdateBatchItemProgressCommandHandler(),

		GetAllWorkers:      c.CreateGetAllWorkersQueryHandler(),
		GetActiveWorkers:   c.CreateGetActiveWorkersQueryHandler(),
		GetHoursByUserDate: c.CreateGetHoursByUserDateQueryHandler(),
		GetTimerHistory:    c.CreateGetTimerHistoryQueryHandler(),
		GetBatchReport:     c.CreateGetBatchReportQueryHandler(),
		GetOrderWorksheet:  c.CreateGetOrderWorksheetQueryHandler(),
		GetBatchProgress:   c.CreateGetBatchProgressQueryHandler(),
	}
}

type FuncTimerUoWFactory func() commands.TimerUoW

func (f FuncTimerUoWFactory) Create() commands.TimerUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBatchUoWFactory func() commands.BatchUoW

func (f FuncBatchUoWFactory) Create() commands.BatchUoW {
	return f()
}

type FuncBatchTimerUoWFactory func() commands.BatchTimerUoW

func (f FuncBatchTimerUoWFactory) Create() commands.BatchTimerUoW {
	return f()
}

type FuncWorkerUoWFactory func() commands.WorkerUoW

func (f FuncWorkerUoWFactory) Create() commands.WorkerUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}
