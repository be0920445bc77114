package http

import (
	"errors"
	"net/http"
	"strconv"

	"fanvault/pkg/logger"
	"fanvault/services/admin/internal/entity"
	"fanvault/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUseCase usecase.AdminUseCase
	logger       *logger.Logger
}

func NewAdminHandler(adminUseCase usecase.AdminUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

// ListPending godoc
// @Summary      List posts awaiting moderation
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "Page size"   default(20)
// @Param        offset query int false "Page offset" default(0)
// @Success      200  {array}   entity.ModeratedPost
// @Failure      500  {object}  map[string]string
// @Router       /moderation/pending [get]
func (h *AdminHandler) ListPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := h.adminUseCase.ListPending(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pending posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// ApprovePost godoc
// @Summary      Approve a pending post
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /moderation/posts/{id}/approve [post]
func (h *AdminHandler) ApprovePost(c *gin.Context) {
	postID := c.Param("id")
	moderatorID := c.GetString("user_id")

	if err := h.adminUseCase.ApprovePost(postID, moderatorID); err != nil {
		h.respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

type RejectPostRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectPost godoc
// @Summary      Reject a pending post
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body RejectPostRequest true "Rejection reason"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /moderation/posts/{id}/reject [post]
func (h *AdminHandler) RejectPost(c *gin.Context) {
	postID := c.Param("id")
	moderatorID := c.GetString("user_id")

	var req RejectPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminUseCase.RejectPost(postID, moderatorID, req.Reason); err != nil {
		h.respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// RemovePost godoc
// @Summary      Take down an approved post
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /moderation/posts/{id} [delete]
func (h *AdminHandler) RemovePost(c *gin.Context) {
	postID := c.Param("id")
	moderatorID := c.GetString("user_id")

	if err := h.adminUseCase.RemovePost(postID, moderatorID); err != nil {
		h.respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// GetStats godoc
// @Summary      Moderation queue counters
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usecase.ModerationStats
// @Failure      500  {object}  map[string]string
// @Router       /moderation/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUseCase.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetPlatformFee godoc
// @Summary      Get the current platform fee percent
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int
// @Failure      500  {object}  map[string]string
// @Router       /settings/fee [get]
func (h *AdminHandler) GetPlatformFee(c *gin.Context) {
	percent, err := h.adminUseCase.GetPlatformFee()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get platform fee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fee_percent": percent})
}

type SetFeeRequest struct {
	FeePercent *int `json:"fee_percent" binding:"required"`
}

// SetPlatformFee godoc
// @Summary      Set the platform fee percent
// @Description  Applies to orders created from now on; existing orders keep their locked fee.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SetFeeRequest true "Fee percent (0-100)"
// @Success      200  {object}  map[string]int
// @Failure      400  {object}  map[string]string
// @Router       /settings/fee [put]
func (h *AdminHandler) SetPlatformFee(c *gin.Context) {
	var req SetFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminUseCase.SetPlatformFee(*req.FeePercent); err != nil {
		if errors.Is(err, entity.ErrInvalidFee) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set platform fee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fee_percent": *req.FeePercent})
}

func (h *AdminHandler) respondModerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
