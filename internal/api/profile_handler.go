package api

import (
	"net/http"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler serves the profile page: personal data, measurements, theme and exports.
type ProfileHandler struct {
	profileService service.ProfileService
	themeService   service.ThemeService
	exportService  service.ExportService
	logger         *zap.Logger
}

func NewProfileHandler(profileService service.ProfileService, themeService service.ThemeService, exportService service.ExportService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		themeService:   themeService,
		exportService:  exportService,
		logger:         logger,
	}
}

// --- DTOs ---

type UpdateProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	Gender      string `json:"gender"`
	Bio         string `json:"bio"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD
}

type LogMeasurementRequest struct {
	Weight        float64 `json:"weight"`
	MuscleMass    float64 `json:"muscleMass"`
	FatPercentage float64 `json:"fatPercentage"`
	Height        float64 `json:"height"`
}

type LatestMeasurementResponse struct {
	Measurement *domain.BodyMetric `json:"measurement"`
}

type UpdateThemeRequest struct {
	PaletteKey string           `json:"paletteKey"`
	Mode       domain.ThemeMode `json:"mode"`
}

type SelectPaletteRequest struct {
	PaletteKey string `json:"paletteKey" binding:"required"`
}

type SetModeRequest struct {
	Mode domain.ThemeMode `json:"mode" binding:"required"`
}

type UpdateColorRequest struct {
	Mode     domain.ThemeMode `json:"mode" binding:"required"`
	ColorKey string           `json:"colorKey" binding:"required"`
	Hex      string           `json:"hex" binding:"required"`
}

type ThemeResponse struct {
	*service.Theme
	Palettes []domain.Palette `json:"palettes,omitempty"`
}

// --- Profile ---

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateProfile godoc
// @Summary Update name, gender, bio and date of birth
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Name:        req.Name,
		Gender:      req.Gender,
		Bio:         req.Bio,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// LogMeasurement godoc
// @Summary Append a body measurement dated today
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param measurement body LogMeasurementRequest true "All values must be positive"
// @Success 201 {object} domain.BodyMetric
// @Failure 400 {object} ErrorResponse
// @Router /profile/measurements [post]
func (h *ProfileHandler) LogMeasurement(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	var req LogMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	metric, err := h.profileService.LogMeasurement(c.Request.Context(), userID, service.MeasurementInput{
		Weight:        req.Weight,
		MuscleMass:    req.MuscleMass,
		FatPercentage: req.FatPercentage,
		Height:        req.Height,
	})
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, metric)
}

func (h *ProfileHandler) LatestMeasurement(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	metric, err := h.profileService.LatestMeasurement(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, LatestMeasurementResponse{Measurement: metric})
}

// --- Theme ---

func paletteList() []domain.Palette {
	palettes := make([]domain.Palette, 0, len(domain.PaletteKeys))
	for _, key := range domain.PaletteKeys {
		palettes = append(palettes, domain.Palettes[key])
	}
	return palettes
}

func (h *ProfileHandler) writeTheme(c *gin.Context, theme *service.Theme, err error) {
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ThemeResponse{Theme: theme})
}

// GetTheme returns the user's theme plus every built-in palette.
func (h *ProfileHandler) GetTheme(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	theme, err := h.themeService.GetTheme(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ThemeResponse{Theme: theme, Palettes: paletteList()})
}

// UpdateTheme sets palette and mode in one call. Empty fields are left unchanged.
func (h *ProfileHandler) UpdateTheme(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	var req UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	theme, err := h.themeService.GetTheme(ctx, userID)
	if err == nil && req.PaletteKey != "" && req.PaletteKey != theme.PaletteKey {
		theme, err = h.themeService.SelectPalette(ctx, userID, req.PaletteKey)
	}
	if err == nil && req.Mode != "" {
		theme, err = h.themeService.SetMode(ctx, userID, req.Mode)
	}
	h.writeTheme(c, theme, err)
}

func (h *ProfileHandler) SelectPalette(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	var req SelectPaletteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	theme, err := h.themeService.SelectPalette(c.Request.Context(), userID, req.PaletteKey)
	h.writeTheme(c, theme, err)
}

func (h *ProfileHandler) SetMode(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	var req SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	theme, err := h.themeService.SetMode(c.Request.Context(), userID, req.Mode)
	h.writeTheme(c, theme, err)
}

func (h *ProfileHandler) UpdateColor(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	var req UpdateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	theme, err := h.themeService.UpdateColor(c.Request.Context(), userID, req.Mode, req.ColorKey, req.Hex)
	h.writeTheme(c, theme, err)
}

func (h *ProfileHandler) ResetColors(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	theme, err := h.themeService.ResetColors(c.Request.Context(), userID)
	h.writeTheme(c, theme, err)
}

// --- Export ---

// ExportHistory godoc
// @Summary Export workouts and body metrics as CSV files
// @Description Uploads two CSV files to object storage and returns presigned download URLs valid for 15 minutes.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 201 {object} service.ExportResult
// @Failure 503 {object} ErrorResponse "Exports not configured"
// @Router /exports [post]
func (h *ProfileHandler) ExportHistory(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	result, err := h.exportService.ExportHistory(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
