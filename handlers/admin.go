package handlers

import (
	"net/http"

	"facestudio/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates user management for staff.
type AdminHandler struct {
	UserService user.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(us user.UserService) *AdminHandler {
	return &AdminHandler{UserService: us}
}

// GetAllUsersHandler returns all users (password hashes are never serialised).
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.UserService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, "GetAllUsersHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": nonNil(users)})
}

// SetRoleHandler promotes a customer to admin or demotes an admin.
func (ah *AdminHandler) SetRoleHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	u, err := ah.UserService.SetRole(c.Request.Context(), id, body.Role)
	if err != nil {
		respondError(c, "SetRoleHandler", err)
		return
	}
	getLogger(c).Info("User role changed", zap.Int64("user_id", id), zap.String("role", u.Role))
	c.JSON(http.StatusOK, u)
}
