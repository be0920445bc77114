package usecase

import (
	"context"
	"fmt"
	"time"

	"fanvault/pkg/logger"
	"fanvault/pkg/queue"
	"fanvault/services/payment/internal/entity"
	"fanvault/services/payment/internal/provider"
	"fanvault/services/payment/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const subscriptionDuration = 30 * 24 * time.Hour

type CreateOrderInput struct {
	UserID        string
	CreatorID     string
	ReferenceType string
	ReferenceID   string
	Amount        int
}

type PaymentUseCase interface {
	// CreateOrder inserts a pending order with the current platform fee
	// baked in and obtains an invoice link from the provider. If the
	// provider refuses, the order is rolled back and ErrInvoiceCreation
	// returned: no pending order exists without an issued invoice.
	CreateOrder(input CreateOrderInput) (*entity.Order, string, error)
	// ValidatePreCheckout is the prepare step before the provider captures
	// the charge. Anything but a pending order is rejected.
	ValidatePreCheckout(orderID string) error
	// ConfirmOrder settles an order on the provider's confirmation signal.
	// Safe under duplicate and concurrent delivery: only the call that wins
	// the pending->completed transition writes ledger entries, credits
	// wallets and grants the entitlement; later calls are successful no-ops.
	// The transition and the settlement writes are one transaction, so a
	// failed settlement leaves the order pending for the next delivery.
	ConfirmOrder(orderID, providerPaymentID string) error
	// SpendFromBalance settles a purchase directly from the payer's Stars
	// balance, no provider round trip. Rejected before any mutation when
	// the balance does not cover the amount.
	SpendFromBalance(input CreateOrderInput) (*entity.Order, error)
	// FailOrder moves a pending order to a terminal failure state. Used by
	// provider failure callbacks and the external expiry sweep.
	FailOrder(orderID string, status entity.OrderStatus) error
	GetWallet(userID string) (*entity.Wallet, error)
	GetLedger(userID string, limit, offset int) ([]*entity.LedgerEntry, error)
	GetOrders(userID string, limit, offset int) ([]*entity.Order, error)
}

type paymentUseCase struct {
	txManager       persistent.TxManager
	orderRepo       persistent.OrderRepository
	ledgerRepo      persistent.LedgerRepository
	walletRepo      persistent.WalletRepository
	entitlementRepo persistent.EntitlementRepository
	settingRepo     persistent.SettingRepository
	providerClient  provider.Client
	redisClient     *redis.Client
	queueClient     *queue.Client
	currency        string
	logger          *logger.Logger
}

func NewPaymentUseCase(
	txManager persistent.TxManager,
	orderRepo persistent.OrderRepository,
	ledgerRepo persistent.LedgerRepository,
	walletRepo persistent.WalletRepository,
	entitlementRepo persistent.EntitlementRepository,
	settingRepo persistent.SettingRepository,
	providerClient provider.Client,
	redisClient *redis.Client,
	queueClient *queue.Client,
	currency string,
	logger *logger.Logger,
) PaymentUseCase {
	return &paymentUseCase{
		txManager:       txManager,
		orderRepo:       orderRepo,
		ledgerRepo:      ledgerRepo,
		walletRepo:      walletRepo,
		entitlementRepo: entitlementRepo,
		settingRepo:     settingRepo,
		providerClient:  providerClient,
		redisClient:     redisClient,
		queueClient:     queueClient,
		currency:        currency,
		logger:          logger,
	}
}

func (uc *paymentUseCase) CreateOrder(input CreateOrderInput) (*entity.Order, string, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, "", err
	}

	// Fee percent is read fresh per order and locked into the row; a fee
	// change affects only orders created after it.
	feePercent, err := uc.settingRepo.GetFeePercent()
	if err != nil {
		uc.logger.Error("Failed to read platform fee: %v", err)
		return nil, "", fmt.Errorf("failed to read platform fee: %w", err)
	}
	fee, net := entity.ComputeFee(input.Amount, feePercent)

	order := &entity.Order{
		UserID:        input.UserID,
		CreatorID:     input.CreatorID,
		ReferenceType: entity.ReferenceType(input.ReferenceType),
		ReferenceID:   input.ReferenceID,
		Amount:        input.Amount,
		FeePercent:    feePercent,
		Fee:           fee,
		Net:           net,
		Status:        entity.OrderStatusPending,
	}

	if err := uc.orderRepo.Create(order); err != nil {
		uc.logger.Error("Failed to create order: %v", err)
		return nil, "", fmt.Errorf("failed to create order: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	invoiceLink, err := uc.providerClient.CreateInvoiceLink(ctx, provider.InvoiceRequest{
		Title:       invoiceTitle(order.ReferenceType),
		Description: fmt.Sprintf("Order %s", order.ID),
		Payload:     order.ID,
		Currency:    uc.currency,
		Amount:      order.Amount,
	})
	if err != nil {
		// Compensation: the half-created order must not linger as pending.
		uc.logger.Error("Invoice creation failed for order %s, rolling back: %v", order.ID, err)
		if delErr := uc.orderRepo.Delete(order.ID); delErr != nil {
			uc.logger.Error("Failed to roll back order %s: %v", order.ID, delErr)
		}
		return nil, "", entity.ErrInvoiceCreation
	}

	return order, invoiceLink, nil
}

func (uc *paymentUseCase) ValidatePreCheckout(orderID string) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order.Status != entity.OrderStatusPending {
		return entity.ErrOrderAlreadyProcessed
	}
	return nil
}

func (uc *paymentUseCase) ConfirmOrder(orderID, providerPaymentID string) error {
	// Short lock to serialize duplicate webhook deliveries for one order.
	// Correctness does not depend on it: the conditional status update
	// below is the real guard.
	if uc.redisClient != nil {
		ctx := context.Background()
		lockKey := fmt.Sprintf("order:confirm:%s", orderID)
		if ok, err := uc.redisClient.SetNX(ctx, lockKey, "1", 30*time.Second).Result(); err == nil && ok {
			defer uc.redisClient.Del(ctx, lockKey)
		}
	}

	// The transition and every settlement write share one transaction: a
	// failed write rolls the order back to pending, so the provider's
	// redelivery retries the whole settlement instead of losing it.
	var settled *entity.Order
	err := uc.txManager.Do(func(tx *gorm.DB) error {
		orders := uc.orderRepo.WithTx(tx)

		won, err := orders.CompleteIfPending(orderID, providerPaymentID)
		if err != nil {
			uc.logger.Error("Failed to transition order %s: %v", orderID, err)
			return fmt.Errorf("failed to transition order: %w", err)
		}

		if !won {
			order, err := orders.GetByID(orderID)
			if err != nil {
				return err
			}
			if order.Status == entity.OrderStatusCompleted {
				// Duplicate confirmation: settled already, nothing to redo.
				uc.logger.Info("Order %s already completed, ignoring duplicate confirmation", orderID)
				return nil
			}
			return entity.ErrOrderAlreadyProcessed
		}

		order, err := orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if err := uc.settle(tx, order); err != nil {
			return err
		}
		settled = order
		return nil
	})
	if err != nil {
		return err
	}

	if settled != nil && uc.queueClient != nil {
		go uc.publishSettled(settled)
	}
	return nil
}

func (uc *paymentUseCase) SpendFromBalance(input CreateOrderInput) (*entity.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	feePercent, err := uc.settingRepo.GetFeePercent()
	if err != nil {
		uc.logger.Error("Failed to read platform fee: %v", err)
		return nil, fmt.Errorf("failed to read platform fee: %w", err)
	}
	fee, net := entity.ComputeFee(input.Amount, feePercent)

	// Debit, order insert and settlement commit or roll back together, so a
	// failure anywhere also gives the Stars back.
	var order *entity.Order
	err = uc.txManager.Do(func(tx *gorm.DB) error {
		// Conditional debit doubles as the insufficient-funds check; nothing
		// else has been written yet when it fails.
		debited, err := uc.walletRepo.WithTx(tx).TryDebit(input.UserID, input.Amount)
		if err != nil {
			uc.logger.Error("Failed to debit wallet for user %s: %v", input.UserID, err)
			return fmt.Errorf("failed to debit wallet: %w", err)
		}
		if !debited {
			return entity.ErrInsufficientBalance
		}

		now := time.Now()
		order = &entity.Order{
			UserID:            input.UserID,
			CreatorID:         input.CreatorID,
			ReferenceType:     entity.ReferenceType(input.ReferenceType),
			ReferenceID:       input.ReferenceID,
			Amount:            input.Amount,
			FeePercent:        feePercent,
			Fee:               fee,
			Net:               net,
			Status:            entity.OrderStatusCompleted,
			ProviderPaymentID: "balance",
			CompletedAt:       &now,
		}

		if err := uc.orderRepo.WithTx(tx).Create(order); err != nil {
			uc.logger.Error("Failed to create balance order: %v", err)
			return fmt.Errorf("failed to create order: %w", err)
		}

		return uc.settle(tx, order)
	})
	if err != nil {
		return nil, err
	}

	if uc.queueClient != nil {
		go uc.publishSettled(order)
	}
	return order, nil
}

func (uc *paymentUseCase) FailOrder(orderID string, status entity.OrderStatus) error {
	if status != entity.OrderStatusFailed && status != entity.OrderStatusCancelled {
		return fmt.Errorf("invalid terminal status: %s", status)
	}

	moved, err := uc.orderRepo.MarkTerminal(orderID, status)
	if err != nil {
		return fmt.Errorf("failed to mark order %s: %w", status, err)
	}
	if !moved {
		order, err := uc.orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order.Status == status {
			return nil
		}
		return entity.ErrOrderAlreadyProcessed
	}
	return nil
}

func (uc *paymentUseCase) GetWallet(userID string) (*entity.Wallet, error) {
	wallet, err := uc.walletRepo.GetOrCreate(userID)
	if err != nil {
		uc.logger.Error("Failed to get wallet: %v", err)
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return wallet, nil
}

func (uc *paymentUseCase) GetLedger(userID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	entries, err := uc.ledgerRepo.GetByUserID(userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to get ledger entries: %v", err)
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	return entries, nil
}

func (uc *paymentUseCase) GetOrders(userID string, limit, offset int) ([]*entity.Order, error) {
	orders, err := uc.orderRepo.GetByUserID(userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to get orders: %v", err)
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// settle applies an order's effects inside the caller's transaction. Callers
// guarantee they own the order's terminal transition in that same
// transaction; every write inside is itself idempotent or an atomic
// increment, so a retried transaction applies the effects exactly once.
func (uc *paymentUseCase) settle(tx *gorm.DB, order *entity.Order) error {
	entries := []*entity.LedgerEntry{
		{
			OrderID:     order.ID,
			UserID:      order.UserID,
			Amount:      -order.Amount,
			Role:        entity.LedgerRoleUser,
			Description: fmt.Sprintf("%s payment", order.ReferenceType),
		},
	}
	if order.CreatorID != "" {
		entries = append(entries, &entity.LedgerEntry{
			OrderID:     order.ID,
			UserID:      order.CreatorID,
			Amount:      order.Net,
			Role:        entity.LedgerRoleCreator,
			Description: fmt.Sprintf("%s earnings", order.ReferenceType),
		}, &entity.LedgerEntry{
			OrderID:     order.ID,
			Amount:      order.Fee,
			Role:        entity.LedgerRolePlatform,
			Description: "platform fee",
		})
	} else {
		// No payee: the platform keeps the whole amount so the order's
		// ledger still sums to zero.
		entries = append(entries, &entity.LedgerEntry{
			OrderID:     order.ID,
			Amount:      order.Fee + order.Net,
			Role:        entity.LedgerRolePlatform,
			Description: "platform revenue",
		})
	}

	if err := uc.ledgerRepo.WithTx(tx).CreateEntries(entries); err != nil {
		uc.logger.Error("Failed to write ledger for order %s: %v", order.ID, err)
		return fmt.Errorf("failed to write ledger: %w", err)
	}

	wallets := uc.walletRepo.WithTx(tx)
	if err := wallets.AddSpent(order.UserID, order.Amount); err != nil {
		uc.logger.Error("Failed to update payer wallet for order %s: %v", order.ID, err)
		return fmt.Errorf("failed to update payer wallet: %w", err)
	}
	if order.CreatorID != "" {
		if err := wallets.CreditEarnings(order.CreatorID, order.Net); err != nil {
			uc.logger.Error("Failed to credit creator wallet for order %s: %v", order.ID, err)
			return fmt.Errorf("failed to credit creator wallet: %w", err)
		}
	}

	if err := uc.grantEntitlement(tx, order); err != nil {
		uc.logger.Error("Failed to grant entitlement for order %s: %v", order.ID, err)
		return fmt.Errorf("failed to grant entitlement: %w", err)
	}

	return nil
}

func (uc *paymentUseCase) grantEntitlement(tx *gorm.DB, order *entity.Order) error {
	ents := uc.entitlementRepo.WithTx(tx)
	switch order.ReferenceType {
	case entity.ReferenceSubscription:
		return ents.GrantSubscription(order.UserID, order.CreatorID, order.ID, subscriptionDuration)
	case entity.ReferenceUnlock:
		if err := ents.GrantPurchase(order.UserID, string(order.ReferenceType), order.ReferenceID, order.ID); err != nil {
			return err
		}
		return ents.IncrementPostPurchases(order.ReferenceID)
	default:
		// Tips and livestream payments keep a purchase row as the record
		// of what was paid for.
		return ents.GrantPurchase(order.UserID, string(order.ReferenceType), order.ReferenceID, order.ID)
	}
}

func (uc *paymentUseCase) publishSettled(order *entity.Order) {
	task := map[string]interface{}{
		"type":           queue.TaskPaymentSettled,
		"order_id":       order.ID,
		"user_id":        order.UserID,
		"creator_id":     order.CreatorID,
		"reference_type": string(order.ReferenceType),
		"reference_id":   order.ReferenceID,
		"amount":         order.Amount,
		"priority":       7,
	}

	if err := uc.queueClient.PublishNotificationTask(task); err != nil {
		uc.logger.Error("Failed to publish settlement notification: %v (order_id=%s)", err, order.ID)
	}
}

func validateOrderInput(input CreateOrderInput) error {
	if input.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if input.ReferenceID == "" {
		return fmt.Errorf("reference id is required")
	}
	if !entity.ValidReferenceType(entity.ReferenceType(input.ReferenceType)) {
		return fmt.Errorf("invalid reference type: %s", input.ReferenceType)
	}
	if input.Amount < 1 {
		return fmt.Errorf("amount must be at least 1")
	}
	return nil
}

func invoiceTitle(refType entity.ReferenceType) string {
	switch refType {
	case entity.ReferenceSubscription:
		return "Creator subscription"
	case entity.ReferenceUnlock:
		return "Post unlock"
	case entity.ReferenceTip:
		return "Tip"
	case entity.ReferenceLivestream:
		return "Livestream access"
	}
	return "Payment"
}
