package http

import (
	"net/http"

	"skillstream/internal/entity"
	"skillstream/internal/usecase"
	"skillstream/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountUseCase      usecase.AccountUseCase
	notificationUseCase usecase.NotificationUseCase
	logger              *logger.Logger
}

func NewAccountHandler(
	accountUseCase usecase.AccountUseCase,
	notificationUseCase usecase.NotificationUseCase,
	logger *logger.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase:      accountUseCase,
		notificationUseCase: notificationUseCase,
		logger:              logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=150"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Bio *string `json:"bio"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account with email, username and password
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.accountUseCase.Register(req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login godoc
// @Summary      Login
// @Description  Authenticate with email and password, returns a JWT token
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.accountUseCase.Login(req.Email, req.Password)
	if err != nil {
		// Failed authentication is 401 regardless of the cause; the error
		// text never reveals whether the email exists.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// Me godoc
// @Summary      Get current user
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	user, err := h.accountUseCase.GetUser(c.GetString("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary      Update current user's profile
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /me [patch]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accountUseCase.UpdateProfile(c.GetString("user_id"), req.Bio)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadAvatar godoc
// @Summary      Upload a profile image
// @Tags         accounts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Avatar image (jpg/png)"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /me/avatar [post]
func (h *AccountHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open avatar file"})
		return
	}
	defer src.Close()

	user, err := h.accountUseCase.UploadAvatar(
		c.GetString("user_id"),
		src,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Stats godoc
// @Summary      Get current user's activity stats
// @Description  Uploaded video count, total views, subscriptions, comments and subscribers
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.AccountStats
// @Failure      401  {object}  map[string]string
// @Router       /me/stats [get]
func (h *AccountHandler) Stats(c *gin.Context) {
	stats, err := h.accountUseCase.Stats(c.GetString("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Notifications godoc
// @Summary      List recent notifications
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max notifications to return"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /me/notifications [get]
func (h *AccountHandler) Notifications(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	notifications, err := h.notificationUseCase.ListForUser(c.Request.Context(), c.GetString("user_id"), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// GetUser godoc
// @Summary      Get a user's public profile
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *AccountHandler) GetUser(c *gin.Context) {
	user, err := h.accountUseCase.GetUser(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
