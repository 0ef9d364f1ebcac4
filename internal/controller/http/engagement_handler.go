package http

import (
	"net/http"

	"skillstream/internal/usecase"
	"skillstream/pkg/logger"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementUseCase usecase.EngagementUseCase
	logger            *logger.Logger
}

func NewEngagementHandler(engagementUseCase usecase.EngagementUseCase, logger *logger.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagementUseCase: engagementUseCase,
		logger:            logger,
	}
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// RecordView godoc
// @Summary      Record a video view
// @Description  Increment the view counter and return the new total
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/view [post]
func (h *EngagementHandler) RecordView(c *gin.Context) {
	views, err := h.engagementUseCase.RecordView(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"views": views})
}

// ToggleLike godoc
// @Summary      Toggle a like on a video
// @Description  Likes the video if not yet liked, otherwise removes the like. Returns the new state and count.
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/like [post]
func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	liked, count, err := h.engagementUseCase.ToggleLike(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"liked":      liked,
		"like_count": count,
	})
}

// AddComment godoc
// @Summary      Comment on a video
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Param        request body AddCommentRequest true "Comment text"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/comments [post]
func (h *EngagementHandler) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.engagementUseCase.AddComment(c.Param("id"), c.GetString("user_id"), req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary      List comments on a video
// @Description  Comments are returned oldest-first
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Param        page query int false "Page number (1-based)"
// @Param        page_size query int false "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/comments [get]
func (h *EngagementHandler) ListComments(c *gin.Context) {
	page, pageSize := pageParams(c)
	comments, total, err := h.engagementUseCase.ListComments(c.Param("id"), page, pageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"total":    total,
	})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  The comment author and the video's creator may delete a comment
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	if err := h.engagementUseCase.DeleteComment(c.Param("id"), c.GetString("user_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// ToggleSubscription godoc
// @Summary      Toggle a subscription to a creator
// @Description  Subscribes if not yet subscribed, otherwise unsubscribes. Returns the new state and the creator's subscriber count.
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        creator_id path string true "Creator ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /subscriptions/{creator_id} [post]
func (h *EngagementHandler) ToggleSubscription(c *gin.Context) {
	subscribed, count, err := h.engagementUseCase.ToggleSubscription(c.GetString("user_id"), c.Param("creator_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subscribed":       subscribed,
		"subscriber_count": count,
	})
}
