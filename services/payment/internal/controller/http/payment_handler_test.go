package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fanvault/pkg/logger"
	"fanvault/services/payment/internal/entity"
	"fanvault/services/payment/internal/provider"
	"fanvault/services/payment/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) CreateOrder(input usecase.CreateOrderInput) (*entity.Order, string, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*entity.Order), args.String(1), args.Error(2)
}

func (m *MockPaymentUseCase) ValidatePreCheckout(orderID string) error {
	args := m.Called(orderID)
	return args.Error(0)
}

func (m *MockPaymentUseCase) ConfirmOrder(orderID, providerPaymentID string) error {
	args := m.Called(orderID, providerPaymentID)
	return args.Error(0)
}

func (m *MockPaymentUseCase) SpendFromBalance(input usecase.CreateOrderInput) (*entity.Order, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockPaymentUseCase) FailOrder(orderID string, status entity.OrderStatus) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

func (m *MockPaymentUseCase) GetWallet(userID string) (*entity.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Wallet), args.Error(1)
}

func (m *MockPaymentUseCase) GetLedger(userID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LedgerEntry), args.Error(1)
}

func (m *MockPaymentUseCase) GetOrders(userID string, limit, offset int) ([]*entity.Order, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Order), args.Error(1)
}

type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) CreateInvoiceLink(ctx context.Context, req provider.InvoiceRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockProviderClient) AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage string) error {
	args := m.Called(ctx, queryID, ok, errorMessage)
	return args.Error(0)
}

func setupPaymentRouter(uc usecase.PaymentUseCase, pc provider.Client, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewPaymentHandler(uc, pc, logger.New())

	router.POST("/webhooks/telegram", handler.TelegramWebhook)

	authed := router.Group("/api/v1")
	authed.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	{
		authed.POST("/orders", handler.CreateOrder)
		authed.GET("/orders", handler.GetOrders)
		authed.POST("/spend", handler.Spend)
		authed.GET("/wallet", handler.GetWallet)
		authed.GET("/wallet/ledger", handler.GetLedger)
	}

	return router
}

func TestCreateOrder_ReturnsInvoiceLink(t *testing.T) {
	uc := new(MockPaymentUseCase)
	pc := new(MockProviderClient)
	router := setupPaymentRouter(uc, pc, "user-1")

	uc.On("CreateOrder", usecase.CreateOrderInput{
		UserID:        "user-1",
		CreatorID:     "creator-1",
		ReferenceType: "subscription",
		ReferenceID:   "creator-1",
		Amount:        100,
	}).Return(&entity.Order{ID: "order-1", Status: entity.OrderStatusPending}, "https://t.me/invoice/abc", nil)

	body := []byte(`{"creator_id":"creator-1","reference_type":"subscription","reference_id":"creator-1","amount":100}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "https://t.me/invoice/abc")
	uc.AssertExpectations(t)
}

func TestCreateOrder_RejectsBadBody(t *testing.T) {
	uc := new(MockPaymentUseCase)
	pc := new(MockProviderClient)
	router := setupPaymentRouter(uc, pc, "user-1")

	body := []byte(`{"reference_type":"refund","reference_id":"x","amount":0}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "CreateOrder", mock.Anything)
}

func TestWebhook_PreCheckoutAnswersOK(t *testing.T) {
	uc := new(MockPaymentUseCase)
	pc := new(MockProviderClient)
	router := setupPaymentRouter(uc, pc, "user-1")

	uc.On("ValidatePreCheckout", "order-1").Return(nil)
	pc.On("AnswerPreCheckoutQuery", mock.Anything, "query-1", true, "").Return(nil)

	body := []byte(`{"update_id":1,"pre_checkout_query":{"id":"query-1","currency":"XTR","total_amount":100,"invoice_payload":"order-1"}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/telegram", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	pc.AssertExpectations(t)
}

func TestWebhook_PreCheckoutRejectsProcessedOrder(t *testing.T) {
	uc := new(MockPaymentUseCase)
	pc := new(MockProviderClient)
	router := setupPaymentRouter(uc, pc, "user-1")

	uc.On("ValidatePreCheckout", "order-1").Return(entity.ErrOrderAlreadyProcessed)
	pc.On("AnswerPreCheckoutQuery", mock.Anything, "query-1", false, mock.AnythingOfType("string")).Return(nil)

	body := []byte(`{"update_id":1,"pre_checkout_query":{"id":"query-1","currency":"XTR","total_amount":100,"invoice_payload":"order-1"}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/telegram", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	pc.AssertExpectations(t)
}

func TestWebhook_SuccessfulPaymentConfirms(t *testing.T) {
	uc := new(MockPaymentUseCase)
	pc := new(MockProviderClient)
	router := setupPaymentRouter(uc, pc, "user-1")

	uc.On("ConfirmOrder", "order-1", "tg-charge-9").Return(nil)

	body := []byte(`{"update_id":2,"message":{"successful_payment":{"currency":"XTR","total_amount":100,"invoice_payload":"order-1","telegram_payment_charge_id":"tg-charge-9"}}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/telegram", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestWebhook_SettleFailureRequestsRedelivery(t *testing.T) {
	uc := new(MockPaymentUseCase)
	pc := new(MockProviderClient)
	router := setupPaymentRouter(uc, pc, "user-1")

	// The order rolled back to pending; a non-200 makes the provider
	// redeliver the confirmation.
	uc.On("ConfirmOrder", "order-1", "tg-charge-9").Return(errors.New("db down"))

	body := []byte(`{"update_id":2,"message":{"successful_payment":{"invoice_payload":"order-1","telegram_payment_charge_id":"tg-charge-9"}}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/telegram", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWebhook_UnresolvableConfirmStillAcks(t *testing.T) {
	uc := new(MockPaymentUseCase)
	pc := new(MockProviderClient)
	router := setupPaymentRouter(uc, pc, "user-1")

	// Unknown or terminally failed orders cannot be fixed by redelivery.
	uc.On("ConfirmOrder", "order-1", "tg-charge-9").Return(entity.ErrOrderNotFound)
	uc.On("ConfirmOrder", "order-2", "tg-charge-9").Return(entity.ErrOrderAlreadyProcessed)

	for _, payload := range []string{"order-1", "order-2"} {
		body := []byte(`{"update_id":2,"message":{"successful_payment":{"invoice_payload":"` + payload + `","telegram_payment_charge_id":"tg-charge-9"}}}`)
		req := httptest.NewRequest(http.MethodPost, "/webhooks/telegram", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestSpend_InsufficientBalance(t *testing.T) {
	uc := new(MockPaymentUseCase)
	pc := new(MockProviderClient)
	router := setupPaymentRouter(uc, pc, "user-1")

	uc.On("SpendFromBalance", mock.Anything).Return(nil, entity.ErrInsufficientBalance)

	body := []byte(`{"creator_id":"creator-1","reference_type":"tip","reference_id":"creator-1","amount":500}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/spend", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestGetWallet(t *testing.T) {
	uc := new(MockPaymentUseCase)
	pc := new(MockProviderClient)
	router := setupPaymentRouter(uc, pc, "user-1")

	uc.On("GetWallet", "user-1").Return(&entity.Wallet{
		UserID:       "user-1",
		StarsBalance: 250,
		TotalEarned:  1000,
		TotalSpent:   750,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stars_balance":250`)
}
