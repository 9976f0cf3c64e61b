package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finchbooks/finch/internal/apperrors"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/dto"
	"github.com/finchbooks/finch/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(exchangeRateService portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: exchangeRateService,
	}
}

// createExchangeRate godoc
// @Summary Author an exchange rate quote
// @Description Records a rate between two commodities effective from a date, for authoring-time conversion lookups
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Rate details"
// @Success 201 {object} dto.ExchangeRateResponse "The created quote"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Commodity not found"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateExchangeRateRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		creatorUserID = middleware.DefaultUserID
	}

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exchange rate"})
		return
	}

	logger.Info("Exchange rate created", slog.String("exchange_rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(*rate))
}

// getRate godoc
// @Summary Look up the effective rate for a date
// @Description Retrieves the latest quote between two commodities effective on or before the given date
// @Tags exchange-rates
// @Produce  json
// @Param   from query string true "Source commodity code"
// @Param   to query string true "Target commodity code"
// @Param   date query string false "Lookup date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ExchangeRateResponse "The effective quote"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "No quote effective for the date"
// @Failure 500 {object} map[string]string "Failed to look up rate"
// @Router /exchange-rates/lookup [get]
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fromCode := c.Query("from")
	toCode := c.Query("to")
	if fromCode == "" || toCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to commodity codes are required"})
		return
	}

	onDate := time.Now().UTC()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		onDate = parsed
	}

	rate, err := h.exchangeRateService.RateFor(c.Request.Context(), fromCode, toCode, onDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate effective for the requested date"})
			return
		}
		logger.Error("Failed to look up rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(*rate))
}

// listExchangeRates godoc
// @Summary List exchange rate quotes for a pair
// @Description Retrieves every authored quote between two commodities, newest first
// @Tags exchange-rates
// @Produce  json
// @Param   from query string true "Source commodity code"
// @Param   to query string true "Target commodity code"
// @Success 200 {array} dto.ExchangeRateResponse "The quotes"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list rates"
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fromCode := c.Query("from")
	toCode := c.Query("to")
	if fromCode == "" || toCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to commodity codes are required"})
		return
	}

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), fromCode, toCode)
	if err != nil {
		logger.Error("Failed to list rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}

	responses := make([]dto.ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = dto.ToExchangeRateResponse(rate)
	}
	c.JSON(http.StatusOK, responses)
}

// registerExchangeRateRoutes registers exchange rate specific routes
func registerExchangeRateRoutes(group *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := group.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/lookup", h.getRate)
	}
}
