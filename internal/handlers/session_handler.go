package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/exercise"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// OpenSession opens a catalog tile
// @Summary Open session
// @Description Opens the exercise behind a catalog tile and emits tile_opened
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body services.OpenSessionRequest true "Tile to open"
// @Success 201 {object} SuccessResponse{data=services.SessionResponse}
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) OpenSession(c *gin.Context) {
	var req services.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Opening session", "test_id", req.TestID)

	session, err := h.sessionService.Open(c.Request.Context(), &req, UserID(c))
	if err != nil {
		h.handleServiceError(c, err, nil)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Session opened", session, "session_id", session.ID)
}

// GetSession returns the current view of a session
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=services.SessionResponse}
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, nil)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Session retrieved", session)
}

// ApplyAction applies one interaction to the exercise
// @Summary Apply action
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param action body exercise.Action true "Action"
// @Success 200 {object} SuccessResponse{data=services.SessionResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/actions [post]
func (h *SessionHandler) ApplyAction(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var action exercise.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return
	}

	h.LogDebug(c, "Applying action", "session_id", id, "kind", action.Kind, "slot", action.Slot)

	session, err := h.sessionService.Apply(c.Request.Context(), id, &action)
	if err != nil {
		h.handleServiceError(c, err, nil)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Action applied", session)
}

// SubmitSession grades the exercise or one of its sections
// @Summary Submit
// @Description Grades the exercise. Returns 422 with the session when a slot is empty.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body services.SectionRequest false "Section to grade"
// @Success 200 {object} SuccessResponse{data=services.SubmitResponse}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse{details=services.SessionResponse}
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.SectionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Submitting exercise", "session_id", id, "section", req.Section)

	resp, err := h.sessionService.Submit(c.Request.Context(), id, &req)
	if err != nil {
		var details interface{}
		if resp != nil {
			details = resp.Session
		}
		h.handleServiceError(c, err, details)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Exercise graded", resp, "score", resp.Result.Score)
}

// ResetSession returns graded sections to in progress
// @Summary Reset
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body services.SectionRequest false "Section to reset"
// @Success 200 {object} SuccessResponse{data=services.SessionResponse}
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/reset [post]
func (h *SessionHandler) ResetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.SectionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
		return
	}

	session, err := h.sessionService.Reset(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err, nil)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Exercise reset", session)
}

// CloseSession is the back button: it discards the session state
// @Summary Close session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) CloseSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.sessionService.Close(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, nil)
		return
	}

	h.LogInfo(c, "Session closed", "session_id", id)
	c.Status(http.StatusNoContent)
}
