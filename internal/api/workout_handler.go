package api

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
	statsService   service.StatsService
	now            service.Clock
	loc            *time.Location
	logger         *zap.Logger
}

func NewWorkoutHandler(workoutService service.WorkoutService, statsService service.StatsService, clock service.Clock, loc *time.Location, logger *zap.Logger) *WorkoutHandler {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &WorkoutHandler{
		workoutService: workoutService,
		statsService:   statsService,
		now:            clock,
		loc:            loc,
		logger:         logger,
	}
}

// --- DTOs ---

type ExerciseStateRequest struct {
	ID        string   `json:"id" binding:"required"`
	Done      *bool    `json:"done"`
	NewWeight *float64 `json:"newWeight"`
}

type FinalizeRequest struct {
	Exercises []ExerciseStateRequest `json:"exercises"`
}

type CalendarResponse struct {
	*service.CalendarView
	Days []domain.CalendarDay `json:"days"`
}

// Today godoc
// @Summary Get today's workout, creating it from the weekly schedule on first visit
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.TodayView
// @Failure 503 {object} ErrorResponse "Database not set up"
// @Router /workouts/today [get]
func (h *WorkoutHandler) Today(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	view, err := h.workoutService.Today(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Finalize godoc
// @Summary Save today's exercise states and update the streak
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FinalizeRequest true "Exercise states"
// @Success 200 {object} service.FinalizeResult
// @Failure 404 {object} ErrorResponse "No workout scheduled today"
// @Router /workouts/today/finalize [post]
func (h *WorkoutHandler) Finalize(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	updates := make([]service.ExerciseUpdate, 0, len(req.Exercises))
	for _, ex := range req.Exercises {
		id, err := primitive.ObjectIDFromHex(ex.ID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise id format")
			return
		}
		updates = append(updates, service.ExerciseUpdate{ExerciseID: id, Done: ex.Done, NewWeight: ex.NewWeight})
	}

	result, err := h.workoutService.Finalize(c.Request.Context(), userID, updates)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Calendar godoc
// @Summary Yearly completion heatmap
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year, defaults to the current one"
// @Success 200 {object} CalendarResponse
// @Router /calendar [get]
func (h *WorkoutHandler) Calendar(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	year := h.now().In(h.loc).Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid year format")
			return
		}
		year = parsed
	}

	view, err := h.statsService.Calendar(c.Request.Context(), userID, year)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, CalendarResponse{CalendarView: view, Days: slices.Collect(view.Days)})
}

func (h *WorkoutHandler) Evolution(c *gin.Context) {
	userID, ok := mustSession(c)
	if !ok {
		return
	}
	evolution, err := h.statsService.Evolution(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, evolution)
}
