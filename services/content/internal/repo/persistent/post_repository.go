package persistent

import (
	"fanvault/services/content/internal/entity"
	"fanvault/services/content/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	GetByCreatorID(creatorID string, limit, offset int) ([]*entity.Post, error)
	ListVisible(limit, offset int) ([]*entity.Post, error)
	Update(post *entity.Post) error
	Delete(id string) error
	IncrementViews(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) GetByCreatorID(creatorID string, limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.db.Where("creator_id = ?", creatorID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

// ListVisible returns approved posts for the public feed, newest first.
func (r *postRepository) ListVisible(limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.db.Where("status = ?", string(entity.StatusApproved)).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) Update(post *entity.Post) error {
	return r.db.Save(ToPostModel(post)).Error
}

func (r *postRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.PostModel{}).Error
}

func (r *postRepository) IncrementViews(id string) error {
	return r.db.Model(&model.PostModel{}).Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}
