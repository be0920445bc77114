package persistent

import (
	"fanvault/services/content/internal/entity"
	"fanvault/services/content/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:           m.ID,
		CreatorID:    m.CreatorID,
		Title:        m.Title,
		Caption:      m.Caption,
		Visibility:   entity.PostVisibility(m.Visibility),
		IsNSFW:       m.IsNSFW,
		UnlockPrice:  m.UnlockPrice,
		MediaURL:     m.MediaURL,
		ThumbnailURL: m.ThumbnailURL,
		Status:       entity.PostStatus(m.Status),
		RejectReason: m.RejectReason,
		Views:        m.Views,
		Purchases:    m.Purchases,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:           e.ID,
		CreatorID:    e.CreatorID,
		Title:        e.Title,
		Caption:      e.Caption,
		Visibility:   string(e.Visibility),
		IsNSFW:       e.IsNSFW,
		UnlockPrice:  e.UnlockPrice,
		MediaURL:     e.MediaURL,
		ThumbnailURL: e.ThumbnailURL,
		Status:       string(e.Status),
		RejectReason: e.RejectReason,
		Views:        e.Views,
		Purchases:    e.Purchases,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
