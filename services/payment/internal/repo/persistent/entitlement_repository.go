package persistent

import (
	"time"

	"fanvault/services/payment/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntitlementRepository grants the rights an order pays for. Grants are
// insert-if-absent on the (user, reference) unique index, so calling them
// again for the same order is a no-op rather than a duplicate.
type EntitlementRepository interface {
	WithTx(tx *gorm.DB) EntitlementRepository
	GrantPurchase(userID, referenceType, referenceID, orderID string) error
	GrantSubscription(viewerID, creatorID, orderID string, duration time.Duration) error
	IncrementPostPurchases(postID string) error
}

type entitlementRepository struct {
	db *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) EntitlementRepository {
	return &entitlementRepository{db: db}
}

func (r *entitlementRepository) WithTx(tx *gorm.DB) EntitlementRepository {
	return &entitlementRepository{db: tx}
}

func (r *entitlementRepository) GrantPurchase(userID, referenceType, referenceID, orderID string) error {
	purchase := &model.PurchaseModel{
		ID:            uuid.New().String(),
		UserID:        userID,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		OrderID:       orderID,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "reference_type"}, {Name: "reference_id"}},
		DoNothing: true,
	}).Create(purchase).Error
}

func (r *entitlementRepository) GrantSubscription(viewerID, creatorID, orderID string, duration time.Duration) error {
	extended, err := r.extendSubscription(viewerID, creatorID, orderID, duration)
	if err != nil || extended {
		return err
	}

	sub := &model.SubscriptionModel{
		ID:        uuid.New().String(),
		ViewerID:  viewerID,
		CreatorID: creatorID,
		OrderID:   orderID,
		ExpiresAt: time.Now().Add(duration),
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "viewer_id"}, {Name: "creator_id"}},
		DoNothing: true,
	}).Create(sub)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// Lost the insert to a concurrent grant: stack this order's extension on
	// top of it. A second zero means this order already landed.
	_, err = r.extendSubscription(viewerID, creatorID, orderID, duration)
	return err
}

// extendSubscription pushes the expiry forward in one conditional update so
// concurrent renewals cannot overwrite each other's paid extension. The
// order_id guard makes a redelivered confirmation a no-op.
func (r *entitlementRepository) extendSubscription(viewerID, creatorID, orderID string, duration time.Duration) (bool, error) {
	result := r.db.Model(&model.SubscriptionModel{}).
		Where("viewer_id = ? AND creator_id = ? AND order_id <> ?", viewerID, creatorID, orderID).
		Updates(map[string]interface{}{
			"expires_at": gorm.Expr("GREATEST(expires_at, NOW()) + make_interval(secs => ?)", int64(duration.Seconds())),
			"order_id":   orderID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *entitlementRepository) IncrementPostPurchases(postID string) error {
	return r.db.Table("posts").Where("id = ?", postID).
		UpdateColumn("purchases", gorm.Expr("purchases + ?", 1)).Error
}
