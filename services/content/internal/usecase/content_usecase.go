package usecase

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"fanvault/pkg/logger"
	"fanvault/pkg/queue"
	"fanvault/pkg/s3"
	"fanvault/services/content/internal/entity"
	"fanvault/services/content/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type UpdatePostInput struct {
	Title       *string
	Caption     *string
	Visibility  *string
	IsNSFW      *bool
	UnlockPrice *int
}

type ContentUseCase interface {
	CreatePost(creatorID, title, caption, visibility string, isNSFW bool, unlockPrice int, mediaFile *multipart.FileHeader) (*entity.Post, error)
	GetPost(postID, viewerID string) (*entity.PostView, error)
	ListFeed(viewerID string, limit, offset int) ([]*entity.PostView, error)
	GetCreatorPosts(creatorID, viewerID string, limit, offset int) ([]*entity.PostView, error)
	UpdatePost(postID, userID string, input UpdatePostInput) (*entity.Post, error)
	DeletePost(postID, userID, role string) error
	Follow(viewerID, creatorID string) error
	Unfollow(viewerID, creatorID string) error
	IsFollowing(viewerID, creatorID string) (bool, error)
	IncrementView(postID string) error
}

type contentUseCase struct {
	postRepo    persistent.PostRepository
	relRepo     persistent.RelationshipRepository
	s3Client    *s3.Client
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewContentUseCase(
	postRepo persistent.PostRepository,
	relRepo persistent.RelationshipRepository,
	s3Client *s3.Client,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) ContentUseCase {
	return &contentUseCase{
		postRepo:    postRepo,
		relRepo:     relRepo,
		s3Client:    s3Client,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *contentUseCase) CreatePost(creatorID, title, caption, visibility string, isNSFW bool, unlockPrice int, mediaFile *multipart.FileHeader) (*entity.Post, error) {
	if unlockPrice < 0 {
		return nil, fmt.Errorf("unlock price cannot be negative")
	}

	switch entity.PostVisibility(visibility) {
	case entity.VisibilityPublic, entity.VisibilityFollowers, entity.VisibilitySubscribers:
	default:
		return nil, fmt.Errorf("invalid visibility: %s", visibility)
	}

	var mediaURL string
	if mediaFile != nil {
		src, err := mediaFile.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer src.Close()

		fileKey := fmt.Sprintf("posts/%s/%s%s", creatorID, uuid.New().String(), getFileExtension(mediaFile.Filename))
		contentType := mediaFile.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		uploadedURL, err := uc.s3Client.UploadFile(fileKey, src, contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload media: %w", err)
		}
		mediaURL = uploadedURL
	}

	post := &entity.Post{
		CreatorID:   creatorID,
		Title:       title,
		Caption:     caption,
		Visibility:  entity.PostVisibility(visibility),
		IsNSFW:      isNSFW,
		UnlockPrice: unlockPrice,
		MediaURL:    mediaURL,
		Status:      entity.StatusPending,
	}

	if err := uc.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.cachePost(post)
	uc.addToFeed(post)

	if uc.queueClient != nil {
		go uc.publishNewPost(post)
	}

	return post, nil
}

func (uc *contentUseCase) GetPost(postID, viewerID string) (*entity.PostView, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	// Unapproved posts are visible only to their creator.
	if post.Status != entity.StatusApproved && post.CreatorID != viewerID {
		return nil, fmt.Errorf("post not found")
	}

	rel, err := uc.relRepo.GetRelationship(viewerID, post.CreatorID, post.ID)
	if err != nil {
		uc.logger.Error("Failed to compute viewer relationship: %v", err)
		return nil, fmt.Errorf("failed to compute viewer relationship: %w", err)
	}

	return uc.gate(post, viewerID, rel), nil
}

func (uc *contentUseCase) ListFeed(viewerID string, limit, offset int) ([]*entity.PostView, error) {
	posts, err := uc.postRepo.ListVisible(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return uc.gateAll(posts, viewerID)
}

func (uc *contentUseCase) GetCreatorPosts(creatorID, viewerID string, limit, offset int) ([]*entity.PostView, error) {
	posts, err := uc.postRepo.GetByCreatorID(creatorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list creator posts: %w", err)
	}

	visible := make([]*entity.Post, 0, len(posts))
	for _, post := range posts {
		if post.Status == entity.StatusApproved || post.CreatorID == viewerID {
			visible = append(visible, post)
		}
	}
	return uc.gateAll(visible, viewerID)
}

func (uc *contentUseCase) UpdatePost(postID, userID string, input UpdatePostInput) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	if post.CreatorID != userID {
		return nil, fmt.Errorf("you can only update your own posts")
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Caption != nil {
		post.Caption = *input.Caption
	}
	if input.Visibility != nil {
		switch entity.PostVisibility(*input.Visibility) {
		case entity.VisibilityPublic, entity.VisibilityFollowers, entity.VisibilitySubscribers:
			post.Visibility = entity.PostVisibility(*input.Visibility)
		default:
			return nil, fmt.Errorf("invalid visibility: %s", *input.Visibility)
		}
	}
	if input.IsNSFW != nil {
		post.IsNSFW = *input.IsNSFW
	}
	if input.UnlockPrice != nil {
		if *input.UnlockPrice < 0 {
			return nil, fmt.Errorf("unlock price cannot be negative")
		}
		post.UnlockPrice = *input.UnlockPrice
	}

	// Takes effect immediately: the next evaluation sees the new policy.
	if err := uc.postRepo.Update(post); err != nil {
		return nil, err
	}

	uc.cachePost(post)
	return post, nil
}

func (uc *contentUseCase) DeletePost(postID, userID, role string) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}

	if post.CreatorID != userID && role != "moderator" && role != "admin" {
		return fmt.Errorf("you can only delete your own posts")
	}

	if err := uc.postRepo.Delete(postID); err != nil {
		return err
	}

	ctx := context.Background()
	uc.redisClient.Del(ctx, fmt.Sprintf("post:%s", postID))
	return nil
}

func (uc *contentUseCase) Follow(viewerID, creatorID string) error {
	if viewerID == creatorID {
		return fmt.Errorf("cannot follow yourself")
	}
	return uc.relRepo.CreateFollow(viewerID, creatorID)
}

func (uc *contentUseCase) Unfollow(viewerID, creatorID string) error {
	return uc.relRepo.DeleteFollow(viewerID, creatorID)
}

func (uc *contentUseCase) IsFollowing(viewerID, creatorID string) (bool, error) {
	return uc.relRepo.IsFollowing(viewerID, creatorID)
}

func (uc *contentUseCase) IncrementView(postID string) error {
	return uc.postRepo.IncrementViews(postID)
}

func (uc *contentUseCase) gateAll(posts []*entity.Post, viewerID string) ([]*entity.PostView, error) {
	views := make([]*entity.PostView, 0, len(posts))
	for _, post := range posts {
		rel, err := uc.relRepo.GetRelationship(viewerID, post.CreatorID, post.ID)
		if err != nil {
			uc.logger.Error("Failed to compute viewer relationship for post %s: %v", post.ID, err)
			return nil, fmt.Errorf("failed to compute viewer relationship: %w", err)
		}
		views = append(views, uc.gate(post, viewerID, rel))
	}
	return views, nil
}

func (uc *contentUseCase) gate(post *entity.Post, viewerID string, rel entity.ViewerRelationship) *entity.PostView {
	view := &entity.PostView{
		Post:    *post,
		CanView: entity.CanView(post, viewerID, rel),
	}
	if !view.CanView {
		view.LockedReason = entity.LockReason(post, viewerID, rel)
		view.MediaURL = ""
		view.Caption = ""
	}
	return view
}

func (uc *contentUseCase) cachePost(post *entity.Post) {
	ctx := context.Background()
	postKey := fmt.Sprintf("post:%s", post.ID)
	postData := map[string]interface{}{
		"id":           post.ID,
		"creator_id":   post.CreatorID,
		"title":        post.Title,
		"visibility":   string(post.Visibility),
		"is_nsfw":      post.IsNSFW,
		"unlock_price": post.UnlockPrice,
		"status":       string(post.Status),
	}

	for k, v := range postData {
		uc.redisClient.HSet(ctx, postKey, k, v)
	}
	uc.redisClient.Expire(ctx, postKey, 24*time.Hour)
}

func (uc *contentUseCase) addToFeed(post *entity.Post) {
	ctx := context.Background()
	globalFeedKey := "feed:global"
	uc.redisClient.LPush(ctx, globalFeedKey, post.ID)
	uc.redisClient.LTrim(ctx, globalFeedKey, 0, 9999)
	uc.redisClient.Expire(ctx, globalFeedKey, 7*24*time.Hour)
}

func (uc *contentUseCase) publishNewPost(post *entity.Post) {
	task := map[string]interface{}{
		"type":       queue.TaskNewPost,
		"post_id":    post.ID,
		"creator_id": post.CreatorID,
		"priority":   5,
	}

	if err := uc.queueClient.PublishNotificationTask(task); err != nil {
		uc.logger.Error("Failed to publish new post notification: %v (post_id=%s)", err, post.ID)
	}
}

func getFileExtension(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}
