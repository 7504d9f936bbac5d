package services_test

import (
	"context"
	"testing"

	"github.com/caixafacil/pos_closing_app/internal/apperrors"
	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	portssvc "github.com/caixafacil/pos_closing_app/internal/core/ports/services"
	"github.com/caixafacil/pos_closing_app/internal/core/services"
	"github.com/caixafacil/pos_closing_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CompanyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCompanyRepository
	service  portssvc.CompanySvcFacade
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCompanyRepository)
	suite.service = services.NewCompanyService(suite.mockRepo)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_Success() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	req := dto.CreateCompanyRequest{
		Name:      "Mercado Central LTDA",
		TradeName: "Mercado Central",
		Document:  "12345678000190",
	}

	suite.mockRepo.On("SaveCompany", ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.Name == req.Name && c.Document == req.Document && c.IsActive && c.CreatedBy == operatorID
	})).Return(nil).Once()

	company, err := suite.service.CreateCompany(ctx, req, operatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(company)
	suite.NotEmpty(company.CompanyID)
	suite.Equal(req.TradeName, company.TradeName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveCompany", ctx, mock.AnythingOfType("domain.Company")).
		Return(expectedErr).Once()

	company, err := suite.service.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "X", Document: "1"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(company)
	suite.ErrorIs(err, expectedErr)
}

func (suite *CompanyServiceTestSuite) TestGetCompanyByID_NotFound() {
	ctx := context.Background()
	companyID := uuid.NewString()

	suite.mockRepo.On("FindCompanyByID", ctx, companyID).
		Return(nil, apperrors.ErrNotFound).Once()

	company, err := suite.service.GetCompanyByID(ctx, companyID)

	suite.Require().Error(err)
	suite.Nil(company)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CompanyServiceTestSuite) TestListCompanies_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListCompanies", ctx, false).Return(nil, nil).Once()

	companies, err := suite.service.ListCompanies(ctx)

	suite.Require().NoError(err)
	suite.NotNil(companies)
	suite.Empty(companies)
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
