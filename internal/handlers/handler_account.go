package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finchbooks/finch/internal/apperrors"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/core/services"
	"github.com/finchbooks/finch/internal/dto"
	"github.com/finchbooks/finch/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService     portssvc.AccountSvcFacade
	transactionService portssvc.TransactionSvcFacade
	bankFeedService    portssvc.BankFeedSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade, transactionService portssvc.TransactionSvcFacade, bankFeedService portssvc.BankFeedSvcFacade) *accountHandler {
	return &accountHandler{
		accountService:     accountService,
		transactionService: transactionService,
		bankFeedService:    bankFeedService,
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Creates a chart-of-accounts node with a fixed type and commodity
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse "The created account"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Commodity or parent account not found"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateAccountRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		creatorUserID = middleware.DefaultUserID
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondAccountError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(*account))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves a single account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse "The account"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(*account))
}

// listAccountTree godoc
// @Summary List the account tree
// @Description Retrieves the chart of accounts as a name-sorted tree, hiding hidden accounts unless asked
// @Tags accounts
// @Produce  json
// @Param   showHidden query bool false "Include hidden accounts"
// @Success 200 {array} dto.AccountTreeNode "The account tree"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccountTree(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListAccountsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listAccountTree", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	tree, err := h.accountService.ListAccountTree(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, tree)
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates mutable account fields; type and commodity are immutable
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse "The updated account"
// @Failure 400 {object} map[string]string "Invalid request or cycle-creating reparent"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	updateReq := dto.UpdateAccountRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		userID = middleware.DefaultUserID
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, updateReq, userID)
	if err != nil {
		respondAccountError(c, logger, err, "Failed to update account")
		return
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(*account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account that has no splits and no children
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account has splits or children"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID); err != nil {
		respondAccountError(c, logger, err, "Failed to delete account")
		return
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// listLedger godoc
// @Summary List an account's ledger
// @Description Retrieves a paginated ledger view of the splits touching an account, newest first
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListLedgerResponse "One page of ledger lines"
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list ledger"
// @Router /accounts/{accountID}/ledger [get]
func (h *accountHandler) listLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	params := dto.ListLedgerParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.transactionService.ListAccountLedger(c.Request.Context(), accountID, params)
	if err != nil {
		respondAccountError(c, logger, err, "Failed to list ledger")
		return
	}

	c.JSON(http.StatusOK, page)
}

// recordStatementBalance godoc
// @Summary Record an externally reported balance
// @Description Stores the balance a bank statement reports for an account; reconciliation uses it as the default target
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   statement body dto.RecordStatementRequest true "Reported balance and statement date"
// @Success 200 {object} dto.StatementBalanceResponse "The stored balance"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record statement balance"
// @Router /accounts/{accountID}/statement-balance [post]
func (h *accountHandler) recordStatementBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	req := dto.RecordStatementRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordStatementBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		userID = middleware.DefaultUserID
	}

	statement, err := h.bankFeedService.RecordStatementBalance(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondAccountError(c, logger, err, "Failed to record statement balance")
		return
	}

	logger.Info("Statement balance recorded", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.StatementBalanceResponse{
		AccountID: statement.AccountID,
		Balance:   statement.Balance.StringFixed(),
		AsOfDate:  statement.AsOfDate,
	})
}

// getStatementBalance godoc
// @Summary Get the latest reported balance
// @Description Retrieves the latest externally reported balance for an account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.StatementBalanceResponse "The latest reported balance"
// @Failure 404 {object} map[string]string "No reported balance for the account"
// @Failure 500 {object} map[string]string "Failed to retrieve statement balance"
// @Router /accounts/{accountID}/statement-balance [get]
func (h *accountHandler) getStatementBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	statement, err := h.bankFeedService.ReportedBalance(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No reported balance for account"})
			return
		}
		logger.Error("Failed to get statement balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statement balance"})
		return
	}

	c.JSON(http.StatusOK, dto.StatementBalanceResponse{
		AccountID: statement.AccountID,
		Balance:   statement.Balance.StringFixed(),
		AsOfDate:  statement.AsOfDate,
	})
}

// respondAccountError maps account operation failures onto HTTP codes.
func respondAccountError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccountHasSplits):
		logger.Warn("Account has splits", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccountCycle),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// registerAccountRoutes registers chart-of-accounts specific routes
func registerAccountRoutes(group *gin.RouterGroup, accountService portssvc.AccountSvcFacade, transactionService portssvc.TransactionSvcFacade, bankFeedService portssvc.BankFeedSvcFacade) {
	h := newAccountHandler(accountService, transactionService, bankFeedService)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccountTree)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.GET("/:accountID/ledger", h.listLedger)
		accounts.POST("/:accountID/statement-balance", h.recordStatementBalance)
		accounts.GET("/:accountID/statement-balance", h.getStatementBalance)
	}
}
