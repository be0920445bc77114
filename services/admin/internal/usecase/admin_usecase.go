package usecase

import (
	"fmt"
	"strings"

	"fanvault/pkg/logger"
	"fanvault/pkg/queue"
	"fanvault/services/admin/internal/entity"
	"fanvault/services/admin/internal/repo/persistent"
)

type ModerationStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Removed  int64 `json:"removed"`
}

type AdminUseCase interface {
	// ListPending returns the moderation queue, oldest first.
	ListPending(limit, offset int) ([]*entity.ModeratedPost, error)
	ApprovePost(postID, moderatorID string) error
	// RejectPost requires a non-empty reason; it is surfaced to the creator.
	RejectPost(postID, moderatorID, reason string) error
	// RemovePost takes down an approved post. Entitlements already paid for
	// are not touched; the content just stops being served.
	RemovePost(postID, moderatorID string) error
	GetStats() (*ModerationStats, error)
	GetPlatformFee() (int, error)
	// SetPlatformFee changes the fee for orders created from now on.
	// Existing orders keep the fee locked at their creation.
	SetPlatformFee(percent int) error
}

type adminUseCase struct {
	moderationRepo persistent.ModerationRepository
	settingRepo    persistent.SettingRepository
	queueClient    *queue.Client
	logger         *logger.Logger
}

func NewAdminUseCase(
	moderationRepo persistent.ModerationRepository,
	settingRepo persistent.SettingRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
) AdminUseCase {
	return &adminUseCase{
		moderationRepo: moderationRepo,
		settingRepo:    settingRepo,
		queueClient:    queueClient,
		logger:         logger,
	}
}

func (uc *adminUseCase) ListPending(limit, offset int) ([]*entity.ModeratedPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	posts, err := uc.moderationRepo.ListByStatus(entity.StatusPending, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list pending posts: %v", err)
		return nil, fmt.Errorf("failed to list pending posts: %w", err)
	}
	return posts, nil
}

func (uc *adminUseCase) ApprovePost(postID, moderatorID string) error {
	return uc.resolve(postID, moderatorID, entity.StatusApproved, "")
}

func (uc *adminUseCase) RejectPost(postID, moderatorID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("reject reason is required")
	}
	return uc.resolve(postID, moderatorID, entity.StatusRejected, reason)
}

func (uc *adminUseCase) resolve(postID, moderatorID string, status entity.PostStatus, reason string) error {
	resolved, err := uc.moderationRepo.Resolve(postID, status, reason)
	if err != nil {
		uc.logger.Error("Failed to resolve post %s: %v", postID, err)
		return fmt.Errorf("failed to resolve post: %w", err)
	}
	if !resolved {
		post, err := uc.moderationRepo.GetByID(postID)
		if err != nil {
			return err
		}
		if post.Status == status {
			// Same decision applied twice converges.
			return nil
		}
		return entity.ErrAlreadyResolved
	}

	uc.logger.Info("Post %s %s by moderator %s", postID, status, moderatorID)
	uc.publishModerated(postID, status, reason)
	return nil
}

func (uc *adminUseCase) RemovePost(postID, moderatorID string) error {
	removed, err := uc.moderationRepo.Remove(postID)
	if err != nil {
		uc.logger.Error("Failed to remove post %s: %v", postID, err)
		return fmt.Errorf("failed to remove post: %w", err)
	}
	if !removed {
		post, err := uc.moderationRepo.GetByID(postID)
		if err != nil {
			return err
		}
		if post.Status == entity.StatusRemoved {
			return nil
		}
		return entity.ErrAlreadyResolved
	}

	uc.logger.Info("Post %s removed by moderator %s", postID, moderatorID)
	uc.publishModerated(postID, entity.StatusRemoved, "")
	return nil
}

func (uc *adminUseCase) GetStats() (*ModerationStats, error) {
	stats := &ModerationStats{}
	targets := []struct {
		status entity.PostStatus
		dest   *int64
	}{
		{entity.StatusPending, &stats.Pending},
		{entity.StatusApproved, &stats.Approved},
		{entity.StatusRejected, &stats.Rejected},
		{entity.StatusRemoved, &stats.Removed},
	}
	for _, t := range targets {
		count, err := uc.moderationRepo.CountByStatus(t.status)
		if err != nil {
			uc.logger.Error("Failed to count %s posts: %v", t.status, err)
			return nil, fmt.Errorf("failed to count posts: %w", err)
		}
		*t.dest = count
	}
	return stats, nil
}

func (uc *adminUseCase) GetPlatformFee() (int, error) {
	return uc.settingRepo.GetFeePercent()
}

func (uc *adminUseCase) SetPlatformFee(percent int) error {
	if percent < 0 || percent > 100 {
		return entity.ErrInvalidFee
	}
	if err := uc.settingRepo.SetFeePercent(percent); err != nil {
		uc.logger.Error("Failed to set platform fee: %v", err)
		return fmt.Errorf("failed to set platform fee: %w", err)
	}
	uc.logger.Info("Platform fee set to %d%%", percent)
	return nil
}

func (uc *adminUseCase) publishModerated(postID string, status entity.PostStatus, reason string) {
	if uc.queueClient == nil {
		return
	}
	go func() {
		task := map[string]interface{}{
			"type":     queue.TaskPostModerated,
			"post_id":  postID,
			"status":   string(status),
			"reason":   reason,
			"priority": 5,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("Failed to publish moderation notification: %v (post_id=%s)", err, postID)
		}
	}()
}
