package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finchbooks/finch/internal/apperrors"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/dto"
	"github.com/finchbooks/finch/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests for the reconciliation workflow.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(reconciliationService portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: reconciliationService,
	}
}

// startSession godoc
// @Summary Start a reconciliation session
// @Description Opens a session for an account against a statement balance; only one session per account may be open
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   session body dto.StartReconciliationRequest true "Account and optional target balance"
// @Success 201 {object} dto.ReconciliationSessionResponse "The opened session"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Account or reported balance not found"
// @Failure 409 {object} map[string]string "A session is already open for the account"
// @Failure 500 {object} map[string]string "Failed to start session"
// @Router /reconciliations [post]
func (h *reconciliationHandler) startSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.StartReconciliationRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for startSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		userID = middleware.DefaultUserID
	}

	session, err := h.reconciliationService.StartSession(c.Request.Context(), req, userID)
	if err != nil {
		respondReconciliationError(c, logger, err, "Failed to start session")
		return
	}

	logger.Info("Reconciliation session started", slog.String("session_id", session.SessionID), slog.String("account_id", session.AccountID))
	c.JSON(http.StatusCreated, session)
}

// getSession godoc
// @Summary Get a reconciliation session
// @Description Retrieves the live state of a session: target, selected sum and the exact remaining difference
// @Tags reconciliation
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.ReconciliationSessionResponse "The session"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /reconciliations/{sessionID} [get]
func (h *reconciliationHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	session, err := h.reconciliationService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondReconciliationError(c, logger, err, "Failed to retrieve session")
		return
	}

	c.JSON(http.StatusOK, session)
}

// toggleSplit godoc
// @Summary Toggle a split in the selection
// @Description Adds an unselected split to the session's selection or removes a selected one
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   request body dto.ToggleSplitRequest true "The split to toggle"
// @Success 200 {object} dto.ReconciliationSessionResponse "The updated session"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Session or split not found"
// @Failure 409 {object} map[string]string "Split is already reconciled"
// @Failure 500 {object} map[string]string "Failed to toggle split"
// @Router /reconciliations/{sessionID}/toggle [post]
func (h *reconciliationHandler) toggleSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	req := dto.ToggleSplitRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for toggleSplit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session, err := h.reconciliationService.ToggleSplit(c.Request.Context(), sessionID, req.SplitID)
	if err != nil {
		respondReconciliationError(c, logger, err, "Failed to toggle split")
		return
	}

	c.JSON(http.StatusOK, session)
}

// selectAll godoc
// @Summary Select all unreconciled splits
// @Description Adds every not-yet-reconciled split of the session's account to the selection
// @Tags reconciliation
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.ReconciliationSessionResponse "The updated session"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to select splits"
// @Router /reconciliations/{sessionID}/select-all [post]
func (h *reconciliationHandler) selectAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	session, err := h.reconciliationService.SelectAllUnreconciled(c.Request.Context(), sessionID)
	if err != nil {
		respondReconciliationError(c, logger, err, "Failed to select splits")
		return
	}

	c.JSON(http.StatusOK, session)
}

// completeSession godoc
// @Summary Complete a reconciliation session
// @Description Marks every selected split reconciled, but only if the selection matches the target exactly; otherwise nothing changes
// @Tags reconciliation
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 204 "Completed"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Selection does not match the statement balance"
// @Failure 500 {object} map[string]string "Failed to complete session"
// @Router /reconciliations/{sessionID}/complete [post]
func (h *reconciliationHandler) completeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		userID = middleware.DefaultUserID
	}

	if err := h.reconciliationService.Complete(c.Request.Context(), sessionID, userID); err != nil {
		respondReconciliationError(c, logger, err, "Failed to complete session")
		return
	}

	logger.Info("Reconciliation session completed", slog.String("session_id", sessionID))
	c.Status(http.StatusNoContent)
}

// cancelSession godoc
// @Summary Cancel a reconciliation session
// @Description Discards the session's selection; no split state changes
// @Tags reconciliation
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 204 "Cancelled"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /reconciliations/{sessionID} [delete]
func (h *reconciliationHandler) cancelSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	if err := h.reconciliationService.Cancel(c.Request.Context(), sessionID); err != nil {
		respondReconciliationError(c, logger, err, "Failed to cancel session")
		return
	}

	logger.Info("Reconciliation session cancelled", slog.String("session_id", sessionID))
	c.Status(http.StatusNoContent)
}

// respondReconciliationError maps reconciliation failures onto HTTP codes.
func respondReconciliationError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrAmountMismatch),
		errors.Is(err, apperrors.ErrSplitAlreadyReconciled),
		errors.Is(err, apperrors.ErrPartialCompletion):
		logger.Warn("Reconciliation conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// registerReconciliationRoutes registers reconciliation specific routes
func registerReconciliationRoutes(group *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	reconciliations := group.Group("/reconciliations")
	{
		reconciliations.POST("", h.startSession)
		reconciliations.GET("/:sessionID", h.getSession)
		reconciliations.POST("/:sessionID/toggle", h.toggleSplit)
		reconciliations.POST("/:sessionID/select-all", h.selectAll)
		reconciliations.POST("/:sessionID/complete", h.completeSession)
		reconciliations.DELETE("/:sessionID", h.cancelSession)
	}
}
