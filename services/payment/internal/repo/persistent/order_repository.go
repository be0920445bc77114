package persistent

import (
	"time"

	"fanvault/services/payment/internal/entity"
	"fanvault/services/payment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// WithTx rebinds the repository onto an open transaction handle.
	WithTx(tx *gorm.DB) OrderRepository
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	GetByUserID(userID string, limit, offset int) ([]*entity.Order, error)
	// CompleteIfPending transitions pending -> completed as a single
	// conditional update and reports whether this call won the transition.
	// Losing the race is not an error: the caller checks the current status.
	CompleteIfPending(id, providerPaymentID string) (bool, error)
	// MarkTerminal transitions pending -> failed/cancelled conditionally.
	MarkTerminal(id string, status entity.OrderStatus) (bool, error)
	// Delete removes a half-created order (compensation for a failed
	// invoice issue). Hard delete: the order never existed as far as the
	// ledger is concerned.
	Delete(id string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(order *entity.Order) error {
	orderModel := ToOrderModel(order)
	if orderModel.ID == "" {
		orderModel.ID = uuid.New().String()
	}
	if err := r.db.Create(orderModel).Error; err != nil {
		return err
	}
	*order = *ToOrderEntity(orderModel)
	return nil
}

func (r *orderRepository) GetByID(id string) (*entity.Order, error) {
	var orderModel model.OrderModel
	if err := r.db.Where("id = ?", id).First(&orderModel).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrOrderNotFound
		}
		return nil, err
	}
	return ToOrderEntity(&orderModel), nil
}

func (r *orderRepository) GetByUserID(userID string, limit, offset int) ([]*entity.Order, error) {
	var orderModels []model.OrderModel
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*entity.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = ToOrderEntity(&orderModels[i])
	}
	return orders, nil
}

func (r *orderRepository) CompleteIfPending(id, providerPaymentID string) (bool, error) {
	now := time.Now()
	result := r.db.Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, string(entity.OrderStatusPending)).
		Updates(map[string]interface{}{
			"status":              string(entity.OrderStatusCompleted),
			"provider_payment_id": providerPaymentID,
			"completed_at":        now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) MarkTerminal(id string, status entity.OrderStatus) (bool, error) {
	result := r.db.Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, string(entity.OrderStatusPending)).
		Update("status", string(status))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.OrderModel{}).Error
}
