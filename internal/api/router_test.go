package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	v1 "github.com/opsdesk/portal/internal/api/v1"
	"github.com/opsdesk/portal/internal/domain/client"
	"github.com/opsdesk/portal/internal/service"
	"github.com/opsdesk/portal/internal/testutil"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	gin.SetMode(gin.TestMode)

	stores := s.GetStores()
	params := service.NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetCache(),
		s.GetClock(),
		s.GetSentry(),
		stores.ClientRepo,
		stores.ProjectRepo,
		stores.TeamMemberRepo,
		stores.EffortRepo,
		stores.UserRepo,
		stores.InvoiceRepo,
		stores.SalaryRepo,
		stores.RecruitmentRepo,
		s.GetSheetsReader(),
	)

	billing := service.NewBillingService(params)
	s.router = NewRouter(Handlers{
		Health:      v1.NewHealthHandler(s.GetDB(), s.GetLogger()),
		Client:      v1.NewClientHandler(service.NewClientService(params), billing, s.GetLogger()),
		Billing:     v1.NewBillingHandler(billing, s.GetLogger()),
		Project:     v1.NewProjectHandler(service.NewProjectService(params), s.GetLogger()),
		User:        v1.NewUserHandler(service.NewUserService(params)),
		Invoice:     v1.NewInvoiceHandler(service.NewInvoiceService(params), s.GetLogger()),
		Salary:      v1.NewSalaryHandler(service.NewSalaryService(params)),
		Recruitment: v1.NewRecruitmentHandler(service.NewRecruitmentReportService(params)),
		EffortSheet: v1.NewEffortSheetHandler(service.NewEffortSheetSyncService(params), s.GetLogger()),
	}, s.GetConfig(), s.GetLogger())
}

func (s *RouterSuite) TearDownTest() {
	s.GetDB().PingErr = nil
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *RouterSuite) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func (s *RouterSuite) seedClient() *client.Client {
	c := &client.Client{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		Name:        "Acme",
		Email:       "billing@acme.in",
		CountryCode: lo.ToPtr("IN"),
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.Require().NoError(s.GetStores().ClientRepo.Create(s.GetContext(), c))
	return c
}

func (s *RouterSuite) TestHealth() {
	w, body := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", body["status"])
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))

	s.GetDB().PingErr = errors.New("connection refused")
	w, _ = s.do(http.MethodGet, "/v1/health", nil)
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *RouterSuite) TestCreateClient() {
	w, body := s.do(http.MethodPost, "/v1/clients", map[string]any{
		"name":         "Globex",
		"email":        "ap@globex.com",
		"country_code": "US",
	})
	s.Equal(http.StatusCreated, w.Code)
	s.Equal("Globex", body["name"])

	w, body = s.do(http.MethodPost, "/v1/clients", map[string]any{"name": 42})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(false, body["success"])
}

func (s *RouterSuite) TestGetClient_NotFound() {
	w, body := s.do(http.MethodGet, "/v1/clients/client_missing", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(false, body["success"])
}

func (s *RouterSuite) TestClientBilling_MissingRate() {
	c := s.seedClient()

	w, body := s.do(http.MethodGet, "/v1/clients/"+c.ID+"/billing", nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.NotEmpty(body["error"])
}

func (s *RouterSuite) TestResolvePeriod() {
	w, body := s.do(http.MethodGet, "/v1/billing/period?reference=2024-03-05&billing_day=20&months_back=1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("2024-01-20", body["start_date"])
	s.Equal("2024-02-19", body["end_date"])

	w, body = s.do(http.MethodGet, "/v1/billing/period?reference=2024-03-15", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("2024-02-01", body["start_date"])
	s.Equal("2024-02-29", body["end_date"])

	w, _ = s.do(http.MethodGet, "/v1/billing/period?billing_day=40", nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w, _ = s.do(http.MethodGet, "/v1/billing/period?reference=tomorrow", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestEffortSheetSync_NoProjects() {
	w, body := s.do(http.MethodPost, "/v1/effortsheet/sync", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.EqualValues(0, body["failed"])
	s.NotEmpty(body["run_id"])
}

func (s *RouterSuite) TestRecruitmentReportCard() {
	w, body := s.do(http.MethodGet, "/v1/recruitment/report-card", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("2024-02-22", body["start_date"])
	s.Equal("2024-03-15", body["end_date"])
}
