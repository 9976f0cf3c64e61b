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

// balanceHandler handles HTTP requests for the hierarchical balance rollup.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(balanceService portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{
		balanceService: balanceService,
	}
}

// getBalances godoc
// @Summary Get the account balance report
// @Description Computes per-account and aggregated balances over a date range, as a tree rooted at the top-level accounts
// @Tags balances
// @Produce  json
// @Param   startDate query string false "Period start (YYYY-MM-DD); omit for all history"
// @Param   endDate query string true "Period end (YYYY-MM-DD)"
// @Param   showHidden query bool false "Include hidden accounts"
// @Param   reversal query string false "Sign reversal policy: none, credit or income_expense"
// @Param   sortBy query string false "Sibling ordering: name, totalBalance or periodBalance"
// @Success 200 {object} dto.BalanceReport "The balance report"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Router /balances [get]
func (h *balanceHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	query := dto.BalanceQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Error("Failed to bind query for getBalances", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.balanceService.AccountTreeBalances(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// registerBalanceRoutes registers balance report specific routes
func registerBalanceRoutes(group *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	group.GET("/balances", h.getBalances)
}
