package testutil

import (
	"context"
	"time"

	"github.com/opsdesk/portal/internal/cache"
	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/domain/client"
	"github.com/opsdesk/portal/internal/domain/invoice"
	"github.com/opsdesk/portal/internal/domain/project"
	"github.com/opsdesk/portal/internal/domain/recruitment"
	"github.com/opsdesk/portal/internal/domain/salary"
	"github.com/opsdesk/portal/internal/domain/user"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/sentry"
	"github.com/opsdesk/portal/internal/types"
	"github.com/opsdesk/portal/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	ClientRepo      client.Repository
	ProjectRepo     project.Repository
	TeamMemberRepo  project.TeamMemberRepository
	EffortRepo      project.EffortRepository
	UserRepo        user.Repository
	InvoiceRepo     invoice.Repository
	SalaryRepo      salary.Repository
	RecruitmentRepo recruitment.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	db           *MockPostgresClient
	logger       *logger.Logger
	config       *config.Configuration
	cache        cache.Cache
	sentry       *sentry.Service
	sheetsReader *FakeSheetsReader
	clock        *types.FixedClock
}

// DefaultTestTime is the instant the suite clock is frozen at, a Friday
var DefaultTestTime = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.Cache.Enabled = true
	cfg.Invoice.MailCC = "accounts@opsdesk.test"

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.sentry = sentry.NewSentryService(cfg, s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.cache = cache.Initialize(s.config, s.logger)
	s.clock = types.NewFixedClock(DefaultTestTime)
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		ClientRepo:      NewInMemoryClientStore(),
		ProjectRepo:     NewInMemoryProjectStore(),
		TeamMemberRepo:  NewInMemoryTeamMemberStore(),
		EffortRepo:      NewInMemoryEffortStore(),
		UserRepo:        NewInMemoryUserStore(),
		InvoiceRepo:     NewInMemoryInvoiceStore(),
		SalaryRepo:      NewInMemorySalaryStore(),
		RecruitmentRepo: NewInMemoryRecruitmentStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.sheetsReader = NewFakeSheetsReader()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.ClientRepo.(*InMemoryClientStore).Clear()
	s.stores.ProjectRepo.(*InMemoryProjectStore).Clear()
	s.stores.TeamMemberRepo.(*InMemoryTeamMemberStore).Clear()
	s.stores.EffortRepo.(*InMemoryEffortStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.SalaryRepo.(*InMemorySalaryStore).Clear()
	s.stores.RecruitmentRepo.(*InMemoryRecruitmentStore).Clear()
	s.sheetsReader.Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetCache returns the per test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetSentry returns a sentry service with reporting disabled
func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

// GetSheetsReader returns the fake effort sheet reader
func (s *BaseServiceTestSuite) GetSheetsReader() *FakeSheetsReader {
	return s.sheetsReader
}

// GetClock returns the frozen test clock
func (s *BaseServiceTestSuite) GetClock() *types.FixedClock {
	return s.clock
}

// SetToday moves the test clock to the given day at noon UTC
func (s *BaseServiceTestSuite) SetToday(d types.Date) {
	s.clock.At = time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.clock.Now()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
