package http

import (
	"mime/multipart"
	"net/http"

	"skillstream/internal/usecase"
	"skillstream/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoUseCase usecase.VideoUseCase
	logger       *logger.Logger
}

func NewVideoHandler(videoUseCase usecase.VideoUseCase, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{
		videoUseCase: videoUseCase,
		logger:       logger,
	}
}

type UploadVideoRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
}

// Upload godoc
// @Summary      Upload a video
// @Description  Upload a video file with title and description. A first upload promotes the account to creator.
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Video title"
// @Param        description formData string false "Video description"
// @Param        video formData file true "Video file (mp4/webm/ogg)"
// @Param        thumbnail formData file false "Thumbnail image (jpg/png)"
// @Success      201  {object}  entity.Video
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /videos [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UploadVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videoFile, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video file is required"})
		return
	}

	var thumbnailFile *multipart.FileHeader
	if file, err := c.FormFile("thumbnail"); err == nil {
		thumbnailFile = file
	}

	video, err := h.videoUseCase.Upload(userID, req.Title, req.Description, videoFile, thumbnailFile)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// List godoc
// @Summary      List videos
// @Description  Newest-first video feed. The search term matches title, description and creator username, case-insensitively.
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Search term"
// @Param        page query int false "Page number (1-based)"
// @Param        page_size query int false "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	videos, total, err := h.videoUseCase.List(c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
	})
}

// GetCreatorVideos godoc
// @Summary      List a creator's videos
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        creator_id path string true "Creator ID"
// @Param        page query int false "Page number (1-based)"
// @Param        page_size query int false "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /videos/creator/{creator_id} [get]
func (h *VideoHandler) GetCreatorVideos(c *gin.Context) {
	page, pageSize := pageParams(c)
	videos, total, err := h.videoUseCase.ListByCreator(c.Param("creator_id"), page, pageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
	})
}

// SubscribedFeed godoc
// @Summary      List videos from subscribed creators
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (1-based)"
// @Param        page_size query int false "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /feed [get]
func (h *VideoHandler) SubscribedFeed(c *gin.Context) {
	page, pageSize := pageParams(c)
	videos, total, err := h.videoUseCase.SubscribedFeed(c.GetString("user_id"), page, pageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  total,
	})
}

// Detail godoc
// @Summary      Get video details
// @Description  Video with engagement counts and the caller's like/subscription state
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  entity.VideoDetail
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id} [get]
func (h *VideoHandler) Detail(c *gin.Context) {
	detail, err := h.videoUseCase.Detail(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Delete godoc
// @Summary      Delete a video
// @Description  Remove a video together with its likes and comments. Only the uploader may delete.
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	if err := h.videoUseCase.Delete(c.Param("id"), c.GetString("user_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "video deleted"})
}
