package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/opsdesk/portal/internal/api/v1"
	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/rest/middleware"
	"github.com/opsdesk/portal/internal/types"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Client      *v1.ClientHandler
	Billing     *v1.BillingHandler
	Project     *v1.ProjectHandler
	User        *v1.UserHandler
	Invoice     *v1.InvoiceHandler
	Salary      *v1.SalaryHandler
	Recruitment *v1.RecruitmentHandler
	EffortSheet *v1.EffortSheetHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg.Server.AllowedOrigins),
		middleware.SentryMiddleware(cfg),
		middleware.UserContextMiddleware,
		middleware.SentryScopeMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	logger.Debugw("router initialized", "mode", cfg.Deployment.Mode)
	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	router.GET("/health", handlers.Health.Health)

	clients := router.Group("/clients")
	{
		clients.POST("", handlers.Client.CreateClient)
		clients.GET("", handlers.Client.GetClients)
		clients.GET("/invoice-ready", handlers.Client.ListInvoiceReady)
		clients.GET("/:id", handlers.Client.GetClient)
		clients.PUT("/:id", handlers.Client.UpdateClient)
		clients.DELETE("/:id", handlers.Client.DeleteClient)
		clients.PUT("/:id/billing-detail", handlers.Client.UpdateBillingDetail)
		clients.POST("/:id/contacts", handlers.Client.AddContact)
		clients.GET("/:id/billing", handlers.Client.GetClientBilling)
		clients.GET("/:id/mail-recipients", handlers.Client.GetMailRecipients)
		clients.GET("/:id/team-efforts", handlers.Client.GetTeamMemberEfforts)
		clients.GET("/:id/next-invoice-number", handlers.Invoice.GetNextInvoiceNumber)
	}

	billing := router.Group("/billing")
	{
		billing.GET("/period", handlers.Billing.ResolvePeriod)
	}

	projects := router.Group("/projects")
	{
		projects.POST("", handlers.Project.CreateProject)
		projects.GET("", handlers.Project.GetProjects)
		projects.GET("/:id", handlers.Project.GetProject)
		projects.PUT("/:id", handlers.Project.UpdateProject)
		projects.POST("/:id/team-members", handlers.Project.AddTeamMember)
	}

	users := router.Group("/users")
	{
		users.POST("", handlers.User.CreateUser)
		users.GET("", handlers.User.GetUsers)
		users.GET("/:id", handlers.User.GetUser)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("/report", handlers.Invoice.GetYearlyReport)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
	}

	salary := router.Group("/salary")
	{
		salary.GET("/configuration", handlers.Salary.GetConfiguration)
		salary.GET("/employees/:id", handlers.Salary.GetEmployeeSalary)
		salary.PUT("/employees/:id", handlers.Salary.UpsertEmployeeSalary)
	}

	recruitment := router.Group("/recruitment")
	{
		recruitment.GET("/reports", handlers.Recruitment.GetReport)
		recruitment.GET("/report-card", handlers.Recruitment.GetReportCard)
		recruitment.GET("/jobs/applications", handlers.Recruitment.GetJobApplications)
	}

	effortSheet := router.Group("/effortsheet")
	{
		effortSheet.POST("/sync", handlers.EffortSheet.Sync)
	}
}
