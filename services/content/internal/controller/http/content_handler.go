package http

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"fanvault/pkg/logger"
	"fanvault/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentUseCase usecase.ContentUseCase
	logger         *logger.Logger
}

func NewContentHandler(contentUseCase usecase.ContentUseCase, logger *logger.Logger) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
		logger:         logger,
	}
}

type CreatePostRequest struct {
	Title       string `form:"title" binding:"required"`
	Caption     string `form:"caption"`
	Visibility  string `form:"visibility" binding:"required,oneof=public followers subscribers"`
	IsNSFW      bool   `form:"is_nsfw"`
	UnlockPrice int    `form:"unlock_price" binding:"min=0"`
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a gated post. Visibility, NSFW flag and unlock price control who can view it.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Post title"
// @Param        caption formData string false "Post caption"
// @Param        visibility formData string true "Visibility" Enums(public, followers, subscribers)
// @Param        is_nsfw formData bool false "NSFW flag"
// @Param        unlock_price formData int false "Unlock price in Stars (0 = free)"
// @Param        media formData file false "Media file"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *ContentHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var mediaFile *multipart.FileHeader
	if file, err := c.FormFile("media"); err == nil {
		mediaFile = file
	}

	post, err := h.contentUseCase.CreatePost(userID, req.Title, req.Caption, req.Visibility, req.IsNSFW, req.UnlockPrice, mediaFile)
	if err != nil {
		if strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "negative") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary      Get a post
// @Description  Get a single post gated for the requesting viewer. Locked posts come back with can_view=false and blanked media.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.PostView
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *ContentHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")
	viewerID := c.GetString("user_id")

	view, err := h.contentUseCase.GetPost(postID, viewerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListFeed godoc
// @Summary      List the feed
// @Description  List approved posts, each gated for the requesting viewer.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Limit" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {array}  entity.PostView
// @Failure      500  {object}  map[string]string
// @Router       /feed [get]
func (h *ContentHandler) ListFeed(c *gin.Context) {
	viewerID := c.GetString("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	views, err := h.contentUseCase.ListFeed(viewerID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": views, "limit": limit, "offset": offset})
}

// GetCreatorPosts godoc
// @Summary      List a creator's posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        creator_id path string true "Creator ID"
// @Param        limit query int false "Limit" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {array}  entity.PostView
// @Failure      500  {object}  map[string]string
// @Router       /posts/creator/{creator_id} [get]
func (h *ContentHandler) GetCreatorPosts(c *gin.Context) {
	creatorID := c.Param("creator_id")
	viewerID := c.GetString("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	views, err := h.contentUseCase.GetCreatorPosts(creatorID, viewerID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list creator posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list creator posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": views, "limit": limit, "offset": offset})
}

type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Caption     *string `json:"caption"`
	Visibility  *string `json:"visibility"`
	IsNSFW      *bool   `json:"is_nsfw"`
	UnlockPrice *int    `json:"unlock_price"`
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Update title, caption or gating policy. Policy changes take effect on the next read.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        body body UpdatePostRequest true "Fields to update"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *ContentHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.contentUseCase.UpdatePost(postID, userID, usecase.UpdatePostInput{
		Title:       req.Title,
		Caption:     req.Caption,
		Visibility:  req.Visibility,
		IsNSFW:      req.IsNSFW,
		UnlockPrice: req.UnlockPrice,
	})
	if err != nil {
		if strings.Contains(err.Error(), "own posts") {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		if strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "negative") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *ContentHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")
	role := c.GetString("role")

	if err := h.contentUseCase.DeletePost(postID, userID, role); err != nil {
		if strings.Contains(err.Error(), "own posts") {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// Follow godoc
// @Summary      Follow a creator
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        creator_id path string true "Creator ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /creators/{creator_id}/follow [post]
func (h *ContentHandler) Follow(c *gin.Context) {
	viewerID := c.GetString("user_id")
	creatorID := c.Param("creator_id")

	if err := h.contentUseCase.Follow(viewerID, creatorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Following", "creator_id": creatorID})
}

// Unfollow godoc
// @Summary      Unfollow a creator
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        creator_id path string true "Creator ID"
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /creators/{creator_id}/follow [delete]
func (h *ContentHandler) Unfollow(c *gin.Context) {
	viewerID := c.GetString("user_id")
	creatorID := c.Param("creator_id")

	if err := h.contentUseCase.Unfollow(viewerID, creatorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed", "creator_id": creatorID})
}

// IsFollowing godoc
// @Summary      Check follow status
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        creator_id path string true "Creator ID"
// @Success      200  {object}  map[string]bool
// @Failure      500  {object}  map[string]string
// @Router       /creators/{creator_id}/follow [get]
func (h *ContentHandler) IsFollowing(c *gin.Context) {
	viewerID := c.GetString("user_id")
	creatorID := c.Param("creator_id")

	following, err := h.contentUseCase.IsFollowing(viewerID, creatorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check follow status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

// IncrementView godoc
// @Summary      Record a post view
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/view [post]
func (h *ContentHandler) IncrementView(c *gin.Context) {
	postID := c.Param("id")

	if err := h.contentUseCase.IncrementView(postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "View recorded"})
}
