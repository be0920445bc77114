package http

import (
	"errors"
	"net/http"
	"strconv"

	"fanvault/pkg/logger"
	"fanvault/services/payment/internal/entity"
	"fanvault/services/payment/internal/provider"
	"fanvault/services/payment/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
	providerClient provider.Client
	logger         *logger.Logger
}

func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase, providerClient provider.Client, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		providerClient: providerClient,
		logger:         logger,
	}
}

type CreateOrderRequest struct {
	CreatorID     string `json:"creator_id"`
	ReferenceType string `json:"reference_type" binding:"required,oneof=subscription unlock tip livestream"`
	ReferenceID   string `json:"reference_id" binding:"required"`
	Amount        int    `json:"amount" binding:"required,min=1"`
}

type CreateOrderResponse struct {
	Order       *entity.Order `json:"order"`
	InvoiceLink string        `json:"invoice_link"`
}

// CreateOrder godoc
// @Summary      Create a payment order
// @Description  Creates a pending order and returns a Telegram Stars invoice link for it.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateOrderRequest true "Order details"
// @Success      201  {object}  CreateOrderResponse
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /orders [post]
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, invoiceLink, err := h.paymentUseCase.CreateOrder(usecase.CreateOrderInput{
		UserID:        userID,
		CreatorID:     req.CreatorID,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Amount:        req.Amount,
	})
	if err != nil {
		if errors.Is(err, entity.ErrInvoiceCreation) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CreateOrderResponse{Order: order, InvoiceLink: invoiceLink})
}

type SpendRequest struct {
	CreatorID     string `json:"creator_id"`
	ReferenceType string `json:"reference_type" binding:"required,oneof=subscription unlock tip livestream"`
	ReferenceID   string `json:"reference_id" binding:"required"`
	Amount        int    `json:"amount" binding:"required,min=1"`
}

// Spend godoc
// @Summary      Pay from Stars balance
// @Description  Settles a purchase directly from the caller's wallet balance.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SpendRequest true "Purchase details"
// @Success      201  {object}  entity.Order
// @Failure      400  {object}  map[string]string
// @Failure      402  {object}  map[string]string
// @Router       /spend [post]
func (h *PaymentHandler) Spend(c *gin.Context) {
	userID := c.GetString("user_id")

	var req SpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.paymentUseCase.SpendFromBalance(usecase.CreateOrderInput{
		UserID:        userID,
		CreatorID:     req.CreatorID,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Amount:        req.Amount,
	})
	if err != nil {
		if errors.Is(err, entity.ErrInsufficientBalance) {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetWallet godoc
// @Summary      Get wallet
// @Description  Returns the caller's Stars balance and lifetime totals.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Wallet
// @Failure      500  {object}  map[string]string
// @Router       /wallet [get]
func (h *PaymentHandler) GetWallet(c *gin.Context) {
	userID := c.GetString("user_id")

	wallet, err := h.paymentUseCase.GetWallet(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get wallet"})
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// GetLedger godoc
// @Summary      Get wallet ledger
// @Description  Returns the caller's ledger entries, newest first.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "Page size"   default(20)
// @Param        offset query int false "Page offset" default(0)
// @Success      200  {array}   entity.LedgerEntry
// @Failure      500  {object}  map[string]string
// @Router       /wallet/ledger [get]
func (h *PaymentHandler) GetLedger(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.paymentUseCase.GetLedger(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get ledger"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetOrders godoc
// @Summary      List own orders
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "Page size"   default(20)
// @Param        offset query int false "Page offset" default(0)
// @Success      200  {array}   entity.Order
// @Failure      500  {object}  map[string]string
// @Router       /orders [get]
func (h *PaymentHandler) GetOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.paymentUseCase.GetOrders(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// TelegramWebhook handles provider updates: the pre-checkout validation
// callback and the successful-payment confirmation. Duplicate confirmations
// answer 200 (already a success from the provider's point of view); a failed
// settlement answers 500 so the provider redelivers the update and the
// still-pending order gets another attempt.
func (h *PaymentHandler) TelegramWebhook(c *gin.Context) {
	var update provider.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warn("Unparseable webhook update: %v", err)
		c.Status(http.StatusOK)
		return
	}

	switch {
	case update.PreCheckoutQuery != nil:
		h.handlePreCheckout(c, update.PreCheckoutQuery)
	case update.Message != nil && update.Message.SuccessfulPayment != nil:
		if err := h.handleSuccessfulPayment(update.Message.SuccessfulPayment); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	c.Status(http.StatusOK)
}

func (h *PaymentHandler) handlePreCheckout(c *gin.Context, query *provider.PreCheckoutQuery) {
	err := h.paymentUseCase.ValidatePreCheckout(query.InvoicePayload)

	ok := err == nil
	errorMessage := ""
	if err != nil {
		h.logger.Warn("Pre-checkout rejected for order %s: %v", query.InvoicePayload, err)
		errorMessage = "This payment can no longer be processed."
	}

	if answerErr := h.providerClient.AnswerPreCheckoutQuery(c.Request.Context(), query.ID, ok, errorMessage); answerErr != nil {
		h.logger.Error("Failed to answer pre-checkout query %s: %v", query.ID, answerErr)
	}
}

func (h *PaymentHandler) handleSuccessfulPayment(payment *provider.SuccessfulPayment) error {
	err := h.paymentUseCase.ConfirmOrder(payment.InvoicePayload, payment.TelegramPaymentChargeID)
	if err != nil {
		h.logger.Error("Failed to confirm order %s: %v", payment.InvoicePayload, err)
	}
	if err == entity.ErrOrderAlreadyProcessed || err == entity.ErrOrderNotFound {
		// Terminal-failure or unknown orders cannot be settled by
		// redelivering the same confirmation.
		return nil
	}
	return err
}
