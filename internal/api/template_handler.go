package api

import (
	"net/http"
	"strconv"

	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type TemplateHandler struct {
	templateService service.TemplateService
	scheduleService service.ScheduleService
	logger          *zap.Logger
}

func NewTemplateHandler(templateService service.TemplateService, scheduleService service.ScheduleService, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// --- DTOs ---

type CreateTemplateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type AddExerciseRequest struct {
	Name          string   `json:"name" binding:"required"`
	Sets          int      `json:"sets"` // 0 means default
	Reps          int      `json:"reps"` // 0 means default
	InitialWeight *float64 `json:"initialWeight"`
}

type SetScheduleDayRequest struct {
	TemplateID *string `json:"templateId"` // null makes the day a rest day
}

// parseObjectIDParam reads a hex ObjectID path parameter, aborting with 400 when malformed.
func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// mustSession returns the caller's user id or aborts with 401.
func mustSession(c *gin.Context) (primitive.ObjectID, bool) {
	session, err := sessionFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	return session.UserID, true
}

// --- Templates ---

// ListTemplates godoc
// @Summary List the user's workout templates with their exercises
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.WorkoutTemplate
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	templates, err := h.templateService.ListTemplates(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// CreateTemplate godoc
// @Summary Create a workout template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param template body CreateTemplateRequest true "Template details"
// @Success 201 {object} domain.WorkoutTemplate
// @Failure 400 {object} ErrorResponse
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	templateID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), userID, templateID); err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddExercise godoc
// @Summary Append an exercise to a template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param exercise body AddExerciseRequest true "Exercise details"
// @Success 201 {object} domain.ExerciseTemplate
// @Failure 403 {object} ErrorResponse "Template belongs to another user"
// @Failure 404 {object} ErrorResponse "Template not found"
// @Router /templates/{id}/exercises [post]
func (h *TemplateHandler) AddExercise(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	templateID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.templateService.AddExercise(c.Request.Context(), userID, templateID, service.ExerciseInput{
		Name:          req.Name,
		Sets:          req.Sets,
		Reps:          req.Reps,
		InitialWeight: req.InitialWeight,
	})
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

func (h *TemplateHandler) DeleteExercise(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	templateID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}
	exerciseID, ok := parseObjectIDParam(c, "exerciseId")
	if !ok {
		return
	}

	if err := h.templateService.DeleteExercise(c.Request.Context(), userID, templateID, exerciseID); err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Weekly schedule ---

// GetSchedule godoc
// @Summary Get the weekly schedule, Monday first
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ScheduleDay
// @Router /schedule [get]
func (h *TemplateHandler) GetSchedule(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	days, err := h.scheduleService.GetSchedule(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// SetScheduleDay godoc
// @Summary Assign a template to a day (0=Monday..6=Sunday), or clear it
// @Tags Schedule
// @Accept json
// @Security BearerAuth
// @Param day path int true "Day of week"
// @Param body body SetScheduleDayRequest true "Template to assign"
// @Success 200 {array} service.ScheduleDay
// @Router /schedule/{day} [put]
func (h *TemplateHandler) SetScheduleDay(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day format")
		return
	}
	var req SetScheduleDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var templateID *primitive.ObjectID
	if req.TemplateID != nil && *req.TemplateID != "" {
		id, err := primitive.ObjectIDFromHex(*req.TemplateID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid templateId format")
			return
		}
		templateID = &id
	}

	if err := h.scheduleService.SetDay(c.Request.Context(), userID, day, templateID); err != nil {
		respondWithError(c, h.logger, err)
		return
	}

	days, err := h.scheduleService.GetSchedule(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, days)
}
