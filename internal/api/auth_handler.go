package api

import (
	"net/http"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService    service.AuthService
	profileService service.ProfileService
	logger         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, profileService service.ProfileService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, profileService: profileService, logger: logger}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string `json:"name"` // Defaults to the email's local part
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	IsAdmin     bool      `json:"isAdmin"`
	Gender      string    `json:"gender,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type SessionResponse struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}

type MeResponse struct {
	Session SessionResponse `json:"session"`
	Profile UserResponse    `json:"profile"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} UserResponse "User created successfully"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login godoc
// @Summary Log in a user
// @Description Authenticates a user and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Me returns the session carried by the token together with the stored profile.
func (h *AuthHandler) Me(c *gin.Context) {
	session, err := sessionFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), session.UserID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		Session: SessionResponse{
			UserID:      session.UserID.Hex(),
			Email:       session.Email,
			DisplayName: session.DisplayName,
			IsAdmin:     session.IsAdmin,
		},
		Profile: MapUserToResponse(profile),
	})
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		IsAdmin:     user.IsAdmin,
		Gender:      user.Gender,
		Bio:         user.Bio,
		DateOfBirth: user.DateOfBirth,
		CreatedAt:   user.CreatedAt,
	}
}
