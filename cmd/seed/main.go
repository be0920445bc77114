package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"fanvault/pkg/cache"
	"fanvault/pkg/config"
	"fanvault/pkg/database"
	"fanvault/pkg/logger"
	"fanvault/pkg/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, redisClient, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, redisClient *redis.Client, log *logger.Logger) error {
	testUsers := []struct {
		username   string
		telegramID int64
		role       models.UserRole
		balance    int
	}{
		{"alice_creates", 100001, models.RoleCreator, 500},
		{"bob_creates", 100002, models.RoleCreator, 200},
		{"carol_watches", 100003, models.RoleViewer, 1000},
		{"dave_watches", 100004, models.RoleViewer, 1000},
		{"mod_margo", 100005, models.RoleModerator, 0},
	}

	userIDs := make(map[string]string, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

		user := &models.User{
			TelegramID: userData.telegramID,
			Username:   userData.username,
			Password:   string(hashedPassword),
			Role:       userData.role,
			IsActive:   true,
		}

		if err := user.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate user ID: %w", err)
		}

		var existingUser models.User
		result := db.Where("username = ?", user.Username).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Username)
			userIDs[userData.username] = existingUser.ID
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.Role)
		userIDs[userData.username] = user.ID

		wallet := &models.Wallet{
			UserID:       user.ID,
			StarsBalance: userData.balance,
		}
		if err := wallet.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate wallet ID: %w", err)
		}
		if err := db.Create(wallet).Error; err != nil {
			log.Error("Failed to create wallet for user %s: %v", user.Username, err)
		}
	}

	seedPosts := []struct {
		creator     string
		title       string
		visibility  models.PostVisibility
		isNSFW      bool
		unlockPrice int
		status      models.PostStatus
	}{
		{"alice_creates", "Morning sketch", models.VisibilityPublic, false, 0, models.StatusApproved},
		{"alice_creates", "Followers-only WIP", models.VisibilityFollowers, false, 0, models.StatusApproved},
		{"alice_creates", "Subscriber timelapse", models.VisibilitySubscribers, false, 0, models.StatusApproved},
		{"alice_creates", "Premium tutorial", models.VisibilityPublic, false, 50, models.StatusApproved},
		{"bob_creates", "Open studio tour", models.VisibilityPublic, false, 0, models.StatusApproved},
		{"bob_creates", "After dark set", models.VisibilitySubscribers, true, 0, models.StatusApproved},
		{"bob_creates", "Unreviewed draft", models.VisibilityPublic, false, 0, models.StatusPending},
	}

	for _, postData := range seedPosts {
		creatorID, ok := userIDs[postData.creator]
		if !ok {
			continue
		}

		post := &models.Post{
			CreatorID:   creatorID,
			Title:       postData.title,
			Caption:     fmt.Sprintf("%s by %s", postData.title, postData.creator),
			Visibility:  postData.visibility,
			IsNSFW:      postData.isNSFW,
			UnlockPrice: postData.unlockPrice,
			Status:      postData.status,
		}

		if err := post.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate post ID: %w", err)
		}

		var existingPost models.Post
		result := db.Where("creator_id = ? AND title = ?", creatorID, post.Title).First(&existingPost)
		if result.Error == nil {
			continue
		}

		if err := db.Create(post).Error; err != nil {
			log.Error("Failed to create post %q: %v", post.Title, err)
			continue
		}
		log.Info("Created post: %q (%s)", post.Title, post.Visibility)

		if post.Status == models.StatusApproved {
			cachePost(redisClient, post)
		}
	}

	// Viewers follow both creators; carol also subscribes to alice.
	follows := []struct{ viewer, creator string }{
		{"carol_watches", "alice_creates"},
		{"carol_watches", "bob_creates"},
		{"dave_watches", "alice_creates"},
	}
	for _, f := range follows {
		viewerID, creatorID := userIDs[f.viewer], userIDs[f.creator]
		if viewerID == "" || creatorID == "" {
			continue
		}

		var existing models.Follow
		if db.Where("viewer_id = ? AND creator_id = ?", viewerID, creatorID).First(&existing).Error == nil {
			continue
		}

		follow := &models.Follow{ViewerID: viewerID, CreatorID: creatorID}
		if err := follow.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate follow ID: %w", err)
		}
		if err := db.Create(follow).Error; err != nil {
			log.Error("Failed to create follow: %v", err)
		}
	}

	if viewerID, creatorID := userIDs["carol_watches"], userIDs["alice_creates"]; viewerID != "" && creatorID != "" {
		var existing models.Subscription
		if db.Where("viewer_id = ? AND creator_id = ?", viewerID, creatorID).First(&existing).Error != nil {
			sub := &models.Subscription{
				ViewerID:  viewerID,
				CreatorID: creatorID,
				OrderID:   uuid.New().String(),
				ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
			}
			if err := sub.BeforeCreate(nil); err != nil {
				return fmt.Errorf("failed to generate subscription ID: %w", err)
			}
			if err := db.Create(sub).Error; err != nil {
				log.Error("Failed to create subscription: %v", err)
			}
		}
	}

	log.Info("Created test follows and subscriptions")
	return nil
}

func cachePost(redisClient *redis.Client, post *models.Post) {
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
		redisClient.HSet(ctx, postKey, k, v)
	}
	redisClient.Expire(ctx, postKey, 24*time.Hour)

	globalFeedKey := "feed:global"
	redisClient.LPush(ctx, globalFeedKey, post.ID)
	redisClient.LTrim(ctx, globalFeedKey, 0, 9999)
	redisClient.Expire(ctx, globalFeedKey, 7*24*time.Hour)
}
