package interfaces

import (
	"context"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/domain/billing"
	"github.com/opsdesk/portal/internal/domain/client"
	"github.com/opsdesk/portal/internal/types"
)

// BillingService defines the interface for billing computations
type BillingService interface {
	GetClientBilling(ctx context.Context, clientID string, req dto.GetClientBillingRequest) (*dto.ClientBillingResponse, error)
	ResolvePeriod(ctx context.Context, req dto.ResolvePeriodRequest) (*billing.Period, error)
}

// ClientService defines the interface for client operations
type ClientService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id string) (*dto.ClientResponse, error)
	GetClients(ctx context.Context, filter *types.ClientFilter) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
	UpdateBillingDetail(ctx context.Context, clientID string, req dto.UpdateBillingDetailRequest) (*client.BillingDetail, error)
	AddContact(ctx context.Context, clientID string, req dto.CreateContactRequest) (*client.ContactPerson, error)
	ListInvoiceReady(ctx context.Context) (*dto.InvoiceReadyClientsResponse, error)
	GetMailRecipients(ctx context.Context, clientID string) (*dto.MailRecipientsResponse, error)
	GetTeamMemberEfforts(ctx context.Context, clientID string, monthsBack *int) (*dto.TeamMemberEffortsResponse, error)
}

// ProjectService defines the interface for project operations
type ProjectService interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetProject(ctx context.Context, id string) (*dto.ProjectResponse, error)
	GetProjects(ctx context.Context, filter *types.ProjectFilter) (*dto.ListProjectsResponse, error)
	UpdateProject(ctx context.Context, id string, req dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	AddTeamMember(ctx context.Context, projectID string, req dto.AddTeamMemberRequest) (*dto.ProjectResponse, error)
}

// UserService defines the interface for user operations
type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	GetUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error)
}

// InvoiceService defines the interface for invoice operations
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	NextInvoiceNumber(ctx context.Context, clientID string) (*dto.NextInvoiceNumberResponse, error)
	GetYearlyReport(ctx context.Context, req dto.InvoiceReportRequest) (*dto.InvoiceReportResponse, error)
}

// SalaryService defines the interface for payroll calculations
type SalaryService interface {
	GetConfiguration(ctx context.Context) (*dto.SalaryConfigurationResponse, error)
	UpsertEmployeeSalary(ctx context.Context, employeeID string, req dto.UpsertEmployeeSalaryRequest) (*dto.EmployeeSalaryResponse, error)
	GetEmployeeSalary(ctx context.Context, employeeID string) (*dto.EmployeeSalaryResponse, error)
}

// RecruitmentReportService defines the interface for applicant reports
type RecruitmentReportService interface {
	GetReport(ctx context.Context, req dto.RecruitmentReportRequest) (*dto.RecruitmentReportResponse, error)
	GetReportCard(ctx context.Context) (*dto.ReportCardResponse, error)
	GetJobApplications(ctx context.Context) (*dto.JobApplicationsResponse, error)
}

// EffortSheetSyncService defines the interface for importing effort sheets
type EffortSheetSyncService interface {
	Sync(ctx context.Context, req dto.EffortSheetSyncRequest) (*dto.EffortSheetSyncResponse, error)
}
