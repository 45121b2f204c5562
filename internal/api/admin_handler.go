package api

import (
	"net/http"

	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes account management. Admin rights are checked by the service on every call.
type AdminHandler struct {
	adminService service.AdminService
	logger       *zap.Logger
}

func NewAdminHandler(adminService service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, logger: logger}
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type CountUsersResponse struct {
	Count int64 `json:"count"`
}

type ToggleAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

// ListUsers godoc
// @Summary List every account, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	actorID, ok := mustSession(c)
	if !ok {
		return
	}
	users, err := h.adminService.ListUsers(c.Request.Context(), actorID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CountUsers(c *gin.Context) {
	actorID, ok := mustSession(c)
	if !ok {
		return
	}
	count, err := h.adminService.CountUsers(c.Request.Context(), actorID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, CountUsersResponse{Count: count})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	actorID, ok := mustSession(c)
	if !ok {
		return
	}
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.adminService.CreateUser(c.Request.Context(), actorID, service.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// DeleteUser godoc
// @Summary Delete an account and all of its data
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} ErrorResponse "Caller is not an admin, or target is the owner"
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, ok := mustSession(c)
	if !ok {
		return
	}
	targetID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteUser(c.Request.Context(), actorID, targetID); err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ToggleAdmin(c *gin.Context) {
	actorID, ok := mustSession(c)
	if !ok {
		return
	}
	targetID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	isAdmin, err := h.adminService.ToggleAdmin(c.Request.Context(), actorID, targetID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ToggleAdminResponse{IsAdmin: isAdmin})
}

func (h *AdminHandler) ChangePassword(c *gin.Context) {
	actorID, ok := mustSession(c)
	if !ok {
		return
	}
	targetID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if err := h.adminService.ChangePassword(c.Request.Context(), actorID, targetID, req.Password); err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
