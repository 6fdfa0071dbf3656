package handlers

import (
	"net/http"

	"facestudio/middleware"
	"facestudio/models"
	"facestudio/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login and the caller's own profile.
type AuthHandler struct {
	Service user.UserService
}

func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// Register handles user registration and signs the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	logger := getLogger(c)

	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("Invalid registration request", zap.Error(err))
		badRequest(c, "Invalid request", err)
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Register", err)
		return
	}
	logger.Info("User registered", zap.Int64("user_id", resp.User.ID))
	c.JSON(http.StatusCreated, resp)
}

// Login accepts a username or an email with the password and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	resp, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Login", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Service.GetUserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, "Me", err)
		return
	}
	c.JSON(http.StatusOK, u)
}
