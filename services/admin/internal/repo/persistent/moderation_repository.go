package persistent

import (
	"fanvault/services/admin/internal/entity"
	"fanvault/services/admin/internal/model"

	"gorm.io/gorm"
)

type ModerationRepository interface {
	GetByID(id string) (*entity.ModeratedPost, error)
	ListByStatus(status entity.PostStatus, limit, offset int) ([]*entity.ModeratedPost, error)
	// Resolve transitions pending -> approved/rejected conditionally and
	// reports whether this call made the transition.
	Resolve(id string, status entity.PostStatus, rejectReason string) (bool, error)
	// Remove takes down an already published post.
	Remove(id string) (bool, error)
	CountByStatus(status entity.PostStatus) (int64, error)
}

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) GetByID(id string) (*entity.ModeratedPost, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrPostNotFound
		}
		return nil, err
	}
	return toModeratedPost(&postModel), nil
}

func (r *moderationRepository) ListByStatus(status entity.PostStatus, limit, offset int) ([]*entity.ModeratedPost, error) {
	var postModels []model.PostModel
	err := r.db.Where("status = ?", string(status)).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.ModeratedPost, 0, len(postModels))
	for i := range postModels {
		posts = append(posts, toModeratedPost(&postModels[i]))
	}
	return posts, nil
}

func (r *moderationRepository) Resolve(id string, status entity.PostStatus, rejectReason string) (bool, error) {
	result := r.db.Model(&model.PostModel{}).
		Where("id = ? AND status = ?", id, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":        string(status),
			"reject_reason": rejectReason,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *moderationRepository) Remove(id string) (bool, error) {
	result := r.db.Model(&model.PostModel{}).
		Where("id = ? AND status = ?", id, string(entity.StatusApproved)).
		Update("status", string(entity.StatusRemoved))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *moderationRepository) CountByStatus(status entity.PostStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

func toModeratedPost(m *model.PostModel) *entity.ModeratedPost {
	return &entity.ModeratedPost{
		ID:           m.ID,
		CreatorID:    m.CreatorID,
		Title:        m.Title,
		Caption:      m.Caption,
		Visibility:   m.Visibility,
		IsNSFW:       m.IsNSFW,
		UnlockPrice:  m.UnlockPrice,
		MediaURL:     m.MediaURL,
		Status:       entity.PostStatus(m.Status),
		RejectReason: m.RejectReason,
		CreatedAt:    m.CreatedAt,
	}
}
