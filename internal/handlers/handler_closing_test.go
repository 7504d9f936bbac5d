package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caixafacil/pos_closing_app/internal/apperrors"
	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	portssvc "github.com/caixafacil/pos_closing_app/internal/core/ports/services"
	"github.com/caixafacil/pos_closing_app/internal/dto"
	"github.com/caixafacil/pos_closing_app/internal/handlers"
	"github.com/caixafacil/pos_closing_app/internal/middleware"
	"github.com/caixafacil/pos_closing_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ClosingService ---
type MockClosingService struct {
	mock.Mock
}

func (m *MockClosingService) OpenClosing(ctx context.Context, companyID string, req dto.OpenClosingRequest, creatorOperatorID string) (*domain.ClosingSession, error) {
	args := m.Called(ctx, companyID, req, creatorOperatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingSession), args.Error(1)
}
func (m *MockClosingService) GetClosing(ctx context.Context, companyID, closingID string) (*domain.ClosingSession, error) {
	args := m.Called(ctx, companyID, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingSession), args.Error(1)
}
func (m *MockClosingService) ListClosings(ctx context.Context, companyID string, limit int, nextToken string) ([]domain.ClosingSession, string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.ClosingSession), args.String(1), args.Error(2)
}
func (m *MockClosingService) CloseClosing(ctx context.Context, companyID, closingID string, req dto.CloseClosingRequest, operatorID string) (*domain.ClosingSession, error) {
	args := m.Called(ctx, companyID, closingID, req, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingSession), args.Error(1)
}
func (m *MockClosingService) AppendRecords(ctx context.Context, companyID, closingID string, req dto.AppendRecordsRequest, operatorID string) (int, error) {
	args := m.Called(ctx, companyID, closingID, req, operatorID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.ClosingSvcFacade = (*MockClosingService)(nil)

// --- Mock ClosingReportService ---
type MockClosingReportService struct {
	mock.Mock
}

func (m *MockClosingReportService) BuildReport(ctx context.Context, companyID, closingID string) (*domain.ClosingReport, error) {
	args := m.Called(ctx, companyID, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingReport), args.Error(1)
}

var _ portssvc.ClosingReportSvc = (*MockClosingReportService)(nil)

// --- Test Suite ---
type ClosingHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockClosingSvc *MockClosingService
	mockReportSvc  *MockClosingReportService
	companyID      string
	operatorID     string
}

func (suite *ClosingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.OperatorContext())

	suite.mockClosingSvc = new(MockClosingService)
	suite.mockReportSvc = new(MockClosingReportService)
	suite.companyID = uuid.NewString()
	suite.operatorID = uuid.NewString()

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterClosingRoutes(v1, suite.mockClosingSvc)
	handlers.RegisterClosingReportRoutes(v1, suite.mockReportSvc, utils.NewCurrencyFormatter("pt-BR", "BRL"))
}

func (suite *ClosingHandlerTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.OperatorHeader, suite.operatorID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ClosingHandlerTestSuite) TestOpenClosing_Created() {
	req := dto.OpenClosingRequest{Register: "CAIXA-01", OpenDate: "2026-03-14", OpenTime: "08:00"}
	session := &domain.ClosingSession{
		ClosingID: uuid.NewString(),
		CompanyID: suite.companyID,
		Register:  req.Register,
		OpenDate:  time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		OpenTime:  req.OpenTime,
		Status:    domain.ClosingOpen,
	}

	suite.mockClosingSvc.On("OpenClosing", mock.Anything, suite.companyID, req, suite.operatorID).
		Return(session, nil).Once()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/closings", suite.companyID), req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ClosingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(session.ClosingID, resp.ClosingID)
	suite.Equal("OPEN", resp.Status)
	suite.mockClosingSvc.AssertExpectations(suite.T())
}

func (suite *ClosingHandlerTestSuite) TestOpenClosing_BadDateRejectedByBinding() {
	req := dto.OpenClosingRequest{Register: "CAIXA-01", OpenDate: "14/03/2026", OpenTime: "08:00"}

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/closings", suite.companyID), req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClosingSvc.AssertNotCalled(suite.T(), "OpenClosing", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingHandlerTestSuite) TestGetClosing_NotFound() {
	closingID := uuid.NewString()
	suite.mockClosingSvc.On("GetClosing", mock.Anything, suite.companyID, closingID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/closings/%s", suite.companyID, closingID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ClosingHandlerTestSuite) TestAppendRecords_ConflictWhenClosed() {
	closingID := uuid.NewString()
	req := dto.AppendRecordsRequest{
		Payments: []dto.PaymentInput{{TypeCode: "cash", Amount: "10.00"}},
	}

	suite.mockClosingSvc.On("AppendRecords", mock.Anything, suite.companyID, closingID, req, suite.operatorID).
		Return(0, fmt.Errorf("closing no longer accepts records: %w", apperrors.ErrClosingClosed)).Once()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/closings/%s/records", suite.companyID, closingID), req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ClosingHandlerTestSuite) TestAppendRecords_MalformedAmountIsBadRequest() {
	closingID := uuid.NewString()
	req := dto.AppendRecordsRequest{
		Payments: []dto.PaymentInput{{TypeCode: "cash", Amount: "abc"}},
	}

	suite.mockClosingSvc.On("AppendRecords", mock.Anything, suite.companyID, closingID, req, suite.operatorID).
		Return(0, fmt.Errorf("payment record: %w", domain.ErrMalformedAmount)).Once()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/closings/%s/records", suite.companyID, closingID), req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ClosingHandlerTestSuite) TestAppendRecords_EmptyBatchIsBadRequest() {
	closingID := uuid.NewString()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/closings/%s/records", suite.companyID, closingID), dto.AppendRecordsRequest{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClosingSvc.AssertNotCalled(suite.T(), "AppendRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingHandlerTestSuite) TestGetReport_Success() {
	closingID := uuid.NewString()
	report := &domain.ClosingReport{
		ClosingID: closingID,
		CompanyID: suite.companyID,
		Groups: []domain.PaymentGroup{
			{
				TypeCode: domain.TypeCash,
				Members: []domain.PaymentRecord{
					{RecordID: "p1", TypeCode: domain.TypeCash, Description: "Dinheiro", Amount: decimal.RequireFromString("115.00")},
				},
				Total: decimal.RequireFromString("115.00"),
			},
		},
		DrawerCashTotal: decimal.RequireFromString("115.00"),
		GrandTotal:      decimal.RequireFromString("115.00"),
	}

	suite.mockReportSvc.On("BuildReport", mock.Anything, suite.companyID, closingID).
		Return(report, nil).Once()

	w := suite.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/closings/%s/report", suite.companyID, closingID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ClosingReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(closingID, resp.ClosingID)
	suite.Require().NotEmpty(resp.Sections)
	suite.Equal("Cash", resp.Sections[0].Label)
}

func (suite *ClosingHandlerTestSuite) TestGetReport_IncompleteWindowIsBadRequest() {
	closingID := uuid.NewString()

	suite.mockReportSvc.On("BuildReport", mock.Anything, suite.companyID, closingID).
		Return(nil, fmt.Errorf("closing %s: %w", closingID, apperrors.ErrIncompleteParams)).Once()

	w := suite.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/closings/%s/report", suite.companyID, closingID), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestClosingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingHandlerTestSuite))
}
