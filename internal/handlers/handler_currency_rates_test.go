package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/superhostingvip/portal_backend/internal/apperrors"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	portssvc "github.com/superhostingvip/portal_backend/internal/core/ports/services"
	"github.com/superhostingvip/portal_backend/internal/dto"
	"github.com/superhostingvip/portal_backend/internal/handlers"
	"github.com/superhostingvip/portal_backend/internal/middleware"
	"github.com/superhostingvip/portal_backend/internal/utils"
)

const testJWTSecret = "test-secret-key"

// --- Mock CurrencyRateService ---
type MockCurrencyRateService struct {
	mock.Mock
}

func (m *MockCurrencyRateService) GetAllRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateService) UpdateRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal, actorID string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, rate, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateService) GetRateHistory(ctx context.Context, fromCurrency, toCurrency string) ([]domain.CurrencyRateHistory, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRateHistory), args.Error(1)
}

func (m *MockCurrencyRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, fromCurrency, toCurrency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.CurrencyRateSvcFacade = (*MockCurrencyRateService)(nil)

// --- Mock RoleResolver ---
type MockRoleResolver struct {
	mock.Mock
}

func (m *MockRoleResolver) ResolveRole(ctx context.Context, roleClaim string) domain.Role {
	args := m.Called(ctx, roleClaim)
	return args.Get(0).(domain.Role)
}

var _ portssvc.RoleResolverFacade = (*MockRoleResolver)(nil)

// --- Test Suite ---
type CurrencyRateHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockService  *MockCurrencyRateService
	mockResolver *MockRoleResolver
}

func (suite *CurrencyRateHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterValidations())
}

func (suite *CurrencyRateHandlerTestSuite) SetupTest() {
	suite.mockService = new(MockCurrencyRateService)
	suite.mockResolver = new(MockRoleResolver)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterCurrencyRateRoutes(v1, suite.mockService, suite.mockResolver)
}

func (suite *CurrencyRateHandlerTestSuite) authToken(userID, role string) string {
	token, err := utils.GenerateJWT(userID, role, testJWTSecret, time.Hour, "test-issuer")
	suite.Require().NoError(err)
	return token
}

func (suite *CurrencyRateHandlerTestSuite) doRequest(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- List ---

func (suite *CurrencyRateHandlerTestSuite) TestListRates_Success() {
	rates := []domain.CurrencyRate{
		{RateID: "r1", FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.RequireFromString("1.10")},
	}
	suite.mockService.On("GetAllRates", mock.Anything).Return(rates, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/currency-rates", suite.authToken("u1", "user"), "")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.CurrencyRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("EUR", resp[0].FromCurrency)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CurrencyRateHandlerTestSuite) TestListRates_RequiresAuth() {
	w := suite.doRequest(http.MethodGet, "/api/v1/currency-rates", "", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GetAllRates", mock.Anything)
}

// --- Update ---

func (suite *CurrencyRateHandlerTestSuite) TestUpdateRate_AdminAllowed() {
	rate := decimal.RequireFromString("1.25")
	updated := &domain.CurrencyRate{RateID: "r1", FromCurrency: "EUR", ToCurrency: "USD", Rate: rate}

	suite.mockResolver.On("ResolveRole", mock.Anything, "admin").Return(domain.RoleAdmin).Once()
	suite.mockService.On("UpdateRate", mock.Anything, "EUR", "USD", rate, "admin-1").Return(updated, nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/currency-rates/EUR/USD", suite.authToken("admin-1", "admin"), `{"rate":"1.25"}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CurrencyRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("r1", resp.RateID)
	suite.mockService.AssertExpectations(suite.T())
	suite.mockResolver.AssertExpectations(suite.T())
}

func (suite *CurrencyRateHandlerTestSuite) TestUpdateRate_UserForbidden() {
	suite.mockResolver.On("ResolveRole", mock.Anything, "user").Return(domain.RoleUser).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/currency-rates/EUR/USD", suite.authToken("u1", "user"), `{"rate":"1.25"}`)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "UpdateRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyRateHandlerTestSuite) TestUpdateRate_DemotedAdminForbidden() {
	// The resolver fails closed when store health cannot confirm the claim.
	suite.mockResolver.On("ResolveRole", mock.Anything, "admin").Return(domain.RoleUser).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/currency-rates/EUR/USD", suite.authToken("admin-1", "admin"), `{"rate":"1.25"}`)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "UpdateRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyRateHandlerTestSuite) TestUpdateRate_InvalidCurrencyCode() {
	suite.mockResolver.On("ResolveRole", mock.Anything, "admin").Return(domain.RoleAdmin).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/currency-rates/EURO/US", suite.authToken("admin-1", "admin"), `{"rate":"1.25"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "UpdateRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyRateHandlerTestSuite) TestUpdateRate_ValidationErrorMapsTo400() {
	rate := decimal.RequireFromString("1.25")
	suite.mockResolver.On("ResolveRole", mock.Anything, "admin").Return(domain.RoleAdmin).Once()
	suite.mockService.On("UpdateRate", mock.Anything, "EUR", "USD", rate, "admin-1").Return(nil, apperrors.ErrValidation).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/currency-rates/EUR/USD", suite.authToken("admin-1", "admin"), `{"rate":"1.25"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- History ---

func (suite *CurrencyRateHandlerTestSuite) TestGetRateHistory_Success() {
	history := []domain.CurrencyRateHistory{
		{HistoryID: "h1", RateID: "r1", OldRate: decimal.RequireFromString("1.10"), NewRate: decimal.RequireFromString("1.25"), ChangedAt: time.Now()},
	}
	suite.mockService.On("GetRateHistory", mock.Anything, "EUR", "USD").Return(history, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/currency-rates/EUR/USD/history", suite.authToken("u1", "user"), "")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.CurrencyRateHistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("h1", resp[0].HistoryID)
}

// --- Convert ---

func (suite *CurrencyRateHandlerTestSuite) TestConvertAmount_Success() {
	amount := decimal.RequireFromString("10")
	suite.mockService.On("ConvertAmount", mock.Anything, amount, "EUR", "USD").Return(decimal.RequireFromString("11"), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/currency-rates/convert?amount=10&from=EUR&to=USD", suite.authToken("u1", "user"), "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConvertAmountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("11.00", resp.Amount)
}

func (suite *CurrencyRateHandlerTestSuite) TestConvertAmount_BadAmount() {
	w := suite.doRequest(http.MethodGet, "/api/v1/currency-rates/convert?amount=ten&from=EUR&to=USD", suite.authToken("u1", "user"), "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ConvertAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyRateHandlerTestSuite) TestConvertAmount_NoRateMapsTo404() {
	amount := decimal.RequireFromString("10")
	suite.mockService.On("ConvertAmount", mock.Anything, amount, "EUR", "GBP").Return(decimal.Zero, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/currency-rates/convert?amount=10&from=EUR&to=GBP", suite.authToken("u1", "user"), "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestCurrencyRateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyRateHandlerTestSuite))
}
