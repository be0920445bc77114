package persistent

import (
	"time"

	"fanvault/services/content/internal/entity"
	"fanvault/services/content/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelationshipRepository answers the per-request questions the visibility
// rules depend on. Results are intentionally not cached: stale permissions
// are worse than three indexed lookups.
type RelationshipRepository interface {
	GetRelationship(viewerID, creatorID, postID string) (entity.ViewerRelationship, error)
	CreateFollow(viewerID, creatorID string) error
	DeleteFollow(viewerID, creatorID string) error
	IsFollowing(viewerID, creatorID string) (bool, error)
	IsSubscribed(viewerID, creatorID string) (bool, error)
	IsPurchased(userID, referenceType, referenceID string) (bool, error)
}

type relationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

func (r *relationshipRepository) GetRelationship(viewerID, creatorID, postID string) (entity.ViewerRelationship, error) {
	rel := entity.ViewerRelationship{IsOwner: viewerID == creatorID}
	if rel.IsOwner || viewerID == "" {
		return rel, nil
	}

	var err error
	if rel.IsFollowing, err = r.IsFollowing(viewerID, creatorID); err != nil {
		return rel, err
	}
	if rel.IsSubscribed, err = r.IsSubscribed(viewerID, creatorID); err != nil {
		return rel, err
	}
	if rel.IsPurchased, err = r.IsPurchased(viewerID, "unlock", postID); err != nil {
		return rel, err
	}
	return rel, nil
}

func (r *relationshipRepository) CreateFollow(viewerID, creatorID string) error {
	var existing model.FollowModel
	err := r.db.Unscoped().Where("viewer_id = ? AND creator_id = ?", viewerID, creatorID).First(&existing).Error
	if err == nil {
		if existing.DeletedAt.Valid {
			return r.db.Unscoped().Model(&existing).Update("deleted_at", nil).Error
		}
		return nil
	}

	followModel := &model.FollowModel{
		ID:        uuid.New().String(),
		ViewerID:  viewerID,
		CreatorID: creatorID,
	}
	return r.db.Create(followModel).Error
}

func (r *relationshipRepository) DeleteFollow(viewerID, creatorID string) error {
	return r.db.Where("viewer_id = ? AND creator_id = ?", viewerID, creatorID).Delete(&model.FollowModel{}).Error
}

func (r *relationshipRepository) IsFollowing(viewerID, creatorID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.FollowModel{}).
		Where("viewer_id = ? AND creator_id = ?", viewerID, creatorID).Count(&count).Error
	return count > 0, err
}

func (r *relationshipRepository) IsSubscribed(viewerID, creatorID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("viewer_id = ? AND creator_id = ? AND expires_at > ?", viewerID, creatorID, time.Now()).
		Count(&count).Error
	return count > 0, err
}

func (r *relationshipRepository) IsPurchased(userID, referenceType, referenceID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.PurchaseModel{}).
		Where("user_id = ? AND reference_type = ? AND reference_id = ?", userID, referenceType, referenceID).
		Count(&count).Error
	return count > 0, err
}
