package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opsdesk/portal/internal/api"
	"github.com/opsdesk/portal/internal/api/dto"
	v1 "github.com/opsdesk/portal/internal/api/v1"
	"github.com/opsdesk/portal/internal/cache"
	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/httpclient"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/repository"
	"github.com/opsdesk/portal/internal/scheduler"
	"github.com/opsdesk/portal/internal/sentry"
	"github.com/opsdesk/portal/internal/service"
	"github.com/opsdesk/portal/internal/sheets"
	"github.com/opsdesk/portal/internal/types"
	"github.com/opsdesk/portal/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Initialize Fx application
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			cache.Initialize,

			// Postgres
			postgres.NewDB,
			provideDBClient,

			// Clock
			provideClock,

			// HTTP client and spreadsheets
			provideHTTPClient,
			sheets.NewReader,

			// Scheduler
			scheduler.New,
		),
	)

	// Repositories
	opts = append(opts,
		fx.Provide(
			repository.NewClientRepository,
			repository.NewProjectRepository,
			repository.NewTeamMemberRepository,
			repository.NewEffortRepository,
			repository.NewUserRepository,
			repository.NewInvoiceRepository,
			repository.NewSalaryRepository,
			repository.NewRecruitmentRepository,
		),
	)

	// Services
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewBillingService,
			service.NewClientService,
			service.NewProjectService,
			service.NewUserService,
			service.NewInvoiceService,
			service.NewSalaryService,
			service.NewRecruitmentReportService,
			service.NewEffortSheetSyncService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			closeDB,
			scheduleEffortSheetSync,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideDBClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideClock(cfg *config.Configuration) (types.Clock, error) {
	loc, err := cfg.Billing.Location()
	if err != nil {
		return nil, err
	}
	return types.NewSystemClock(loc), nil
}

func provideHTTPClient(log *logger.Logger) *httpclient.DefaultClient {
	return httpclient.NewDefaultClient(httpclient.DefaultClientConfig(), log)
}

func provideHandlers(
	db postgres.IClient,
	logger *logger.Logger,
	billingService service.BillingService,
	clientService service.ClientService,
	projectService service.ProjectService,
	userService service.UserService,
	invoiceService service.InvoiceService,
	salaryService service.SalaryService,
	recruitmentService service.RecruitmentReportService,
	syncService service.EffortSheetSyncService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(db, logger),
		Client:      v1.NewClientHandler(clientService, billingService, logger),
		Billing:     v1.NewBillingHandler(billingService, logger),
		Project:     v1.NewProjectHandler(projectService, logger),
		User:        v1.NewUserHandler(userService),
		Invoice:     v1.NewInvoiceHandler(invoiceService, logger),
		Salary:      v1.NewSalaryHandler(salaryService),
		Recruitment: v1.NewRecruitmentHandler(recruitmentService),
		EffortSheet: v1.NewEffortSheetHandler(syncService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func closeDB(lc fx.Lifecycle, db *postgres.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

// scheduleEffortSheetSync runs the effort sheet sync on its cron schedule in
// local mode; api mode leaves scheduling to another instance
func scheduleEffortSheetSync(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	s *scheduler.Scheduler,
	syncService service.EffortSheetSyncService,
	log *logger.Logger,
) error {
	if cfg.Deployment.Mode != types.ModeLocal {
		return nil
	}

	err := s.Register("effortsheet.sync", cfg.EffortSheet.Schedule, func(ctx context.Context) error {
		resp, err := syncService.Sync(ctx, dto.EffortSheetSyncRequest{})
		if err != nil {
			return err
		}
		log.Infow("scheduled effort sheet sync finished",
			"run_id", resp.RunID,
			"projects", len(resp.Projects),
			"failed", resp.Failed,
		)
		return nil
	})
	if err != nil {
		return err
	}

	scheduler.RegisterHooks(lc, s)
	return nil
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
