package staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ashwinsr/placement-portal/internal/dto"
	"github.com/ashwinsr/placement-portal/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type StaffTestController struct {
	staffTestService service.StaffTestService
	activityLog      service.ActivityLogService
}

func NewStaffTestController(staffTestService service.StaffTestService, activityLog service.ActivityLogService) *StaffTestController {
	return &StaffTestController{staffTestService: staffTestService, activityLog: activityLog}
}

// CreateTest godoc
// @Summary (Staff) Create and publish a test
// @Description Creates the test, resolves the target audience and bulk-assigns it. The response reports the assigned count and whether the audience filter fell back to the whole population.
// @Tags Staff - Tests
// @Accept json
// @Produce json
// @Param test body dto.TestCreateDTO true "Test definition including questions and targeting filter"
// @Success 201 {object} dto.CreateTestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or empty student population"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/tests [post]
func (c *StaffTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTest: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.staffTestService.CreateTest(req, ctx.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrNoStudents) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Str("name", req.Name).Msg("CreateTest: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create test", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListTests godoc
// @Summary (Staff) List all tests
// @Tags Staff - Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/tests [get]
func (c *StaffTestController) ListTests(ctx *gin.Context) {
	tests, err := c.staffTestService.ListTests()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve tests", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// DeleteTest godoc
// @Summary (Staff) Delete a test
// @Description Hard delete cascading to the test's assignments and results.
// @Tags Staff - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/tests/{test_id} [delete]
func (c *StaffTestController) DeleteTest(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	if err := c.staffTestService.DeleteTest(uint(testID), ctx.ClientIP()); err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint64("testID", testID).Msg("DeleteTest: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete test", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// GetParticipation godoc
// @Summary (Staff) Participation report for a test
// @Description Union of assigned and resulted students with attended/score/status per student. Read-only.
// @Tags Staff - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.ParticipationEntryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/tests/{test_id}/participation [get]
func (c *StaffTestController) GetParticipation(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	report, err := c.staffTestService.Participation(uint(testID))
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint64("testID", testID).Msg("GetParticipation: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to build participation report", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// ListStudents godoc
// @Summary (Staff) List registered students
// @Tags Staff - Students
// @Produce json
// @Success 200 {array} dto.StudentDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/students [get]
func (c *StaffTestController) ListStudents(ctx *gin.Context) {
	students, err := c.staffTestService.ListStudents()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve students", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// DeleteStudent godoc
// @Summary (Staff) Delete a student
// @Description Removes the student together with their assignments and results.
// @Tags Staff - Students
// @Produce json
// @Param username path string true "Student username"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/students/{username} [delete]
func (c *StaffTestController) DeleteStudent(ctx *gin.Context) {
	username := ctx.Param("username")

	if err := c.staffTestService.DeleteStudent(username, ctx.ClientIP()); err != nil {
		log.Error().Err(err).Str("username", username).Msg("DeleteStudent: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete student", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// GetActivityLogs godoc
// @Summary (Staff) Recent audit trail entries
// @Tags Staff - Audit
// @Produce json
// @Param limit query int false "Max entries (default 100)"
// @Param action query string false "Filter by action"
// @Param username query string false "Filter by actor"
// @Success 200 {array} model.ActivityLog
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /staff/activity-logs [get]
func (c *StaffTestController) GetActivityLogs(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	logs, err := c.activityLog.RecentLogs(limit, ctx.Query("action"), ctx.Query("username"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve activity logs", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, logs)
}
