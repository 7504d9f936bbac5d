package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/caixafacil/pos_closing_app/internal/apperrors"
	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	portssvc "github.com/caixafacil/pos_closing_app/internal/core/ports/services"
	"github.com/caixafacil/pos_closing_app/internal/core/services"
	"github.com/caixafacil/pos_closing_app/internal/dto"
	"github.com/caixafacil/pos_closing_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ClosingRepository ---
type MockClosingRepository struct {
	mock.Mock
}

func (m *MockClosingRepository) SaveClosing(ctx context.Context, closing domain.ClosingSession) error {
	args := m.Called(ctx, closing)
	return args.Error(0)
}

func (m *MockClosingRepository) FindClosingByID(ctx context.Context, companyID, closingID string) (*domain.ClosingSession, error) {
	args := m.Called(ctx, companyID, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingSession), args.Error(1)
}

func (m *MockClosingRepository) ListClosings(ctx context.Context, companyID string, limit int, cursorOpenedAt *time.Time, cursorID string) ([]domain.ClosingSession, error) {
	args := m.Called(ctx, companyID, limit, cursorOpenedAt, cursorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingSession), args.Error(1)
}

func (m *MockClosingRepository) MarkClosed(ctx context.Context, companyID, closingID, closeTime, updatedBy string) error {
	args := m.Called(ctx, companyID, closingID, closeTime, updatedBy)
	return args.Error(0)
}

func (m *MockClosingRepository) AppendRecords(ctx context.Context, closingID string, records domain.RecordSet) error {
	args := m.Called(ctx, closingID, records)
	return args.Error(0)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context, includeInactive bool) ([]domain.Company, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

// --- Test Suite ---
type ClosingServiceTestSuite struct {
	suite.Suite
	mockClosingRepo *MockClosingRepository
	mockCompanyRepo *MockCompanyRepository
	service         portssvc.ClosingSvcFacade
	companyID       string
	operatorID      string
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.service = services.NewClosingService(
		suite.mockClosingRepo,
		services.WithCompanyRepository(suite.mockCompanyRepo),
	)
	suite.companyID = uuid.NewString()
	suite.operatorID = uuid.NewString()
}

func (suite *ClosingServiceTestSuite) openSession() *domain.ClosingSession {
	return &domain.ClosingSession{
		ClosingID: uuid.NewString(),
		CompanyID: suite.companyID,
		Register:  "CAIXA-01",
		OpenDate:  time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		OpenTime:  "08:00",
		Status:    domain.ClosingOpen,
	}
}

// --- Open ---

func (suite *ClosingServiceTestSuite) TestOpenClosing_Success() {
	ctx := context.Background()
	req := dto.OpenClosingRequest{
		Register: "CAIXA-01",
		OpenDate: "2026-03-14",
		OpenTime: "08:00",
	}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID}, nil).Once()
	suite.mockClosingRepo.On("SaveClosing", ctx, mock.MatchedBy(func(c domain.ClosingSession) bool {
		return c.CompanyID == suite.companyID &&
			c.Register == req.Register &&
			c.OpenDate.Format("2006-01-02") == req.OpenDate &&
			c.OpenTime == req.OpenTime &&
			c.Status == domain.ClosingOpen &&
			c.CreatedBy == suite.operatorID
	})).Return(nil).Once()

	closing, err := suite.service.OpenClosing(ctx, suite.companyID, req, suite.operatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(closing)
	suite.NotEmpty(closing.ClosingID)
	suite.True(closing.IsOpen())
	suite.Nil(closing.CloseTime)
	suite.mockClosingRepo.AssertExpectations(suite.T())
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestOpenClosing_CompanyNotFound() {
	ctx := context.Background()
	req := dto.OpenClosingRequest{Register: "CAIXA-01", OpenDate: "2026-03-14", OpenTime: "08:00"}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).
		Return(nil, apperrors.ErrNotFound).Once()

	closing, err := suite.service.OpenClosing(ctx, suite.companyID, req, suite.operatorID)

	suite.Require().Error(err)
	suite.Nil(closing)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "SaveClosing", mock.Anything, mock.Anything)
}

// --- Close ---

func (suite *ClosingServiceTestSuite) TestCloseClosing_Success() {
	ctx := context.Background()
	open := suite.openSession()
	req := dto.CloseClosingRequest{CloseTime: "18:30"}

	suite.mockClosingRepo.On("FindClosingByID", ctx, suite.companyID, open.ClosingID).
		Return(open, nil).Once()
	suite.mockClosingRepo.On("MarkClosed", ctx, suite.companyID, open.ClosingID, "18:30", suite.operatorID).
		Return(nil).Once()

	closed, err := suite.service.CloseClosing(ctx, suite.companyID, open.ClosingID, req, suite.operatorID)

	suite.Require().NoError(err)
	suite.Equal(domain.ClosingClosed, closed.Status)
	suite.Require().NotNil(closed.CloseTime)
	suite.Equal("18:30", *closed.CloseTime)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestCloseClosing_AlreadyClosed() {
	ctx := context.Background()
	closeTime := "17:00"
	session := suite.openSession()
	session.Status = domain.ClosingClosed
	session.CloseTime = &closeTime

	suite.mockClosingRepo.On("FindClosingByID", ctx, suite.companyID, session.ClosingID).
		Return(session, nil).Once()

	closed, err := suite.service.CloseClosing(ctx, suite.companyID, session.ClosingID, dto.CloseClosingRequest{CloseTime: "18:30"}, suite.operatorID)

	suite.Require().Error(err)
	suite.Nil(closed)
	suite.ErrorIs(err, apperrors.ErrClosingClosed)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "MarkClosed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- AppendRecords ---

func (suite *ClosingServiceTestSuite) TestAppendRecords_Success() {
	ctx := context.Background()
	open := suite.openSession()
	req := dto.AppendRecordsRequest{
		Payments: []dto.PaymentInput{
			{TypeCode: "cash", Description: "Dinheiro", Amount: "150.00"},
			{TypeCode: "card", Description: "Visa", Amount: "89.90"},
		},
		Supplies: []dto.SupplyInput{
			{Amount: "50.00", ReceivedAt: "09:15", Note: "troco inicial"},
		},
	}

	suite.mockClosingRepo.On("FindClosingByID", ctx, suite.companyID, open.ClosingID).
		Return(open, nil).Once()
	suite.mockClosingRepo.On("AppendRecords", ctx, open.ClosingID, mock.MatchedBy(func(set domain.RecordSet) bool {
		return len(set.Payments) == 2 && len(set.Supplies) == 1 &&
			set.Payments[0].Amount.String() == "150" &&
			set.Payments[0].TypeCode == domain.TypeCash &&
			set.Supplies[0].ReceivedAt == "09:15"
	})).Return(nil).Once()

	appended, err := suite.service.AppendRecords(ctx, suite.companyID, open.ClosingID, req, suite.operatorID)

	suite.Require().NoError(err)
	suite.Equal(3, appended)
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestAppendRecords_ClosedSession() {
	ctx := context.Background()
	session := suite.openSession()
	session.Status = domain.ClosingClosed

	suite.mockClosingRepo.On("FindClosingByID", ctx, suite.companyID, session.ClosingID).
		Return(session, nil).Once()

	appended, err := suite.service.AppendRecords(ctx, suite.companyID, session.ClosingID, dto.AppendRecordsRequest{
		Payments: []dto.PaymentInput{{TypeCode: "cash", Amount: "10.00"}},
	}, suite.operatorID)

	suite.Require().Error(err)
	suite.Zero(appended)
	suite.ErrorIs(err, apperrors.ErrClosingClosed)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "AppendRecords", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestAppendRecords_MalformedAmount() {
	ctx := context.Background()
	open := suite.openSession()

	suite.mockClosingRepo.On("FindClosingByID", ctx, suite.companyID, open.ClosingID).
		Return(open, nil).Once()

	appended, err := suite.service.AppendRecords(ctx, suite.companyID, open.ClosingID, dto.AppendRecordsRequest{
		Payments: []dto.PaymentInput{{TypeCode: "cash", Amount: "12,34"}},
	}, suite.operatorID)

	suite.Require().Error(err)
	suite.Zero(appended)
	suite.True(domain.IsMalformedAmount(err))
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "AppendRecords", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestAppendRecords_NegativeAmountRejectsBatch() {
	ctx := context.Background()
	open := suite.openSession()

	suite.mockClosingRepo.On("FindClosingByID", ctx, suite.companyID, open.ClosingID).
		Return(open, nil).Once()

	appended, err := suite.service.AppendRecords(ctx, suite.companyID, open.ClosingID, dto.AppendRecordsRequest{
		Payments: []dto.PaymentInput{
			{TypeCode: "cash", Amount: "10.00"},
			{TypeCode: "cash", Amount: "-5.00"},
		},
	}, suite.operatorID)

	suite.Require().Error(err)
	suite.Zero(appended)
	suite.True(domain.IsMalformedAmount(err))
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "AppendRecords", mock.Anything, mock.Anything, mock.Anything)
}

// --- Listing ---

func (suite *ClosingServiceTestSuite) TestListClosings_ReturnsTokenWhenMorePagesExist() {
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	page := make([]domain.ClosingSession, 3)
	for i := range page {
		page[i] = domain.ClosingSession{
			ClosingID:   uuid.NewString(),
			CompanyID:   suite.companyID,
			Status:      domain.ClosingClosed,
			AuditFields: domain.AuditFields{CreatedAt: base.Add(-time.Duration(i) * time.Hour)},
		}
	}

	suite.mockClosingRepo.On("ListClosings", ctx, suite.companyID, 3, (*time.Time)(nil), "").
		Return(page, nil).Once()

	closings, token, err := suite.service.ListClosings(ctx, suite.companyID, 2, "")

	suite.Require().NoError(err)
	suite.Len(closings, 2)
	suite.Require().NotEmpty(token)

	openedAt, id, err := pagination.DecodeClosingCursor(token)
	suite.Require().NoError(err)
	suite.Equal(closings[1].ClosingID, id)
	suite.True(openedAt.Equal(closings[1].CreatedAt))
}

func (suite *ClosingServiceTestSuite) TestListClosings_LastPageHasNoToken() {
	ctx := context.Background()
	page := []domain.ClosingSession{{ClosingID: uuid.NewString(), CompanyID: suite.companyID}}

	suite.mockClosingRepo.On("ListClosings", ctx, suite.companyID, 21, (*time.Time)(nil), "").
		Return(page, nil).Once()

	closings, token, err := suite.service.ListClosings(ctx, suite.companyID, 0, "")

	suite.Require().NoError(err)
	suite.Len(closings, 1)
	suite.Empty(token)
}

func (suite *ClosingServiceTestSuite) TestListClosings_BadToken() {
	ctx := context.Background()

	closings, token, err := suite.service.ListClosings(ctx, suite.companyID, 10, "not-a-cursor")

	suite.Require().Error(err)
	suite.Nil(closings)
	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClosingRepo.AssertNotCalled(suite.T(), "ListClosings", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
