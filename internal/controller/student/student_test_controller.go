package student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ashwinsr/placement-portal/internal/dto"
	"github.com/ashwinsr/placement-portal/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type StudentTestController struct {
	attemptService service.AttemptService
}

func NewStudentTestController(attemptService service.AttemptService) *StudentTestController {
	return &StudentTestController{attemptService: attemptService}
}

// GetAvailableTests godoc
// @Summary (Student) List tests still available to start
// @Description Tests assigned to the student, not yet started and never submitted. A missing username yields an empty list, not an error.
// @Tags Student - Attempts
// @Produce json
// @Param username query string false "Student username"
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/available [get]
func (c *StudentTestController) GetAvailableTests(ctx *gin.Context) {
	username := ctx.Query("username")

	tests, err := c.attemptService.AvailableTests(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("GetAvailableTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve available tests", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// StartAttempt godoc
// @Summary (Student) Authorize the start of a test attempt
// @Description Flips the assignment to in_progress, or resumes idempotently if already in progress. Rejected outright once a result exists.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Param attempt body dto.StartAttemptRequest true "Test and student identifiers"
// @Success 200 {object} dto.StartAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Already submitted"
// @Failure 404 {object} dto.ErrorResponse "Not assigned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/start-attempt [post]
func (c *StudentTestController) StartAttempt(ctx *gin.Context) {
	var req dto.StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.attemptService.StartAttempt(req.TestID, req.Username, ctx.ClientIP())
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrAlreadySubmitted):
			status = http.StatusForbidden
		case errors.Is(err, service.ErrNotAssigned):
			status = http.StatusNotFound
		default:
			log.Error().Err(err).Uint("testID", req.TestID).Str("username", req.Username).Msg("StartAttempt: service error")
		}
		ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetTestDetails godoc
// @Summary (Student) Fetch a test's questions for an authorized attempt
// @Description Full test including questions (without correct-answer labels). Clients call this only after a successful start.
// @Tags Student - Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id} [get]
func (c *StudentTestController) GetTestDetails(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	detail, err := c.attemptService.TestForAttempt(uint(testID))
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint64("testID", testID).Msg("GetTestDetails: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve test", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// SubmitAttempt godoc
// @Summary (Student) Submit an answer sheet
// @Description Scores the submission server-side, records the immutable result and flips the assignment to submitted.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Param submission body dto.SubmitAttemptRequest true "Answer sheet"
// @Success 200 {object} dto.ResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or empty test"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/submit [post]
func (c *StudentTestController) SubmitAttempt(ctx *gin.Context) {
	var req dto.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.attemptService.SubmitAttempt(req, ctx.ClientIP())
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrAlreadySubmitted):
			status = http.StatusConflict
		case errors.Is(err, service.ErrTestNotFound):
			status = http.StatusNotFound
		case errors.Is(err, service.ErrNoQuestions):
			status = http.StatusBadRequest
		default:
			log.Error().Err(err).Uint("testID", req.TestID).Str("username", req.Username).Msg("SubmitAttempt: service error")
		}
		ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetStudentResults godoc
// @Summary (Student) Attempt history
// @Description Result rows merged with synthetic "incomplete" entries for abandoned in-progress assignments, newest first.
// @Tags Student - Attempts
// @Produce json
// @Param username path string true "Student username"
// @Success 200 {array} dto.HistoryEntryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/student/{username} [get]
func (c *StudentTestController) GetStudentResults(ctx *gin.Context) {
	username := ctx.Param("username")

	history, err := c.attemptService.StudentHistory(username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("GetStudentResults: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve results", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, history)
}
