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

// commodityHandler handles HTTP requests related to commodities.
type commodityHandler struct {
	commodityService portssvc.CommoditySvcFacade
}

// newCommodityHandler creates a new commodityHandler.
func newCommodityHandler(commodityService portssvc.CommoditySvcFacade) *commodityHandler {
	return &commodityHandler{
		commodityService: commodityService,
	}
}

// createCommodity godoc
// @Summary Create a commodity
// @Description Registers a commodity with its display fraction
// @Tags commodities
// @Accept  json
// @Produce  json
// @Param   commodity body dto.CreateCommodityRequest true "Commodity details"
// @Success 201 {object} dto.CommodityResponse "The created commodity"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Commodity already exists"
// @Failure 500 {object} map[string]string "Failed to create commodity"
// @Router /commodities [post]
func (h *commodityHandler) createCommodity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateCommodityRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createCommodity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		creatorUserID = middleware.DefaultUserID
	}

	commodity, err := h.commodityService.CreateCommodity(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create commodity", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create commodity"})
		return
	}

	logger.Info("Commodity created", slog.String("code", commodity.Code))
	c.JSON(http.StatusCreated, dto.ToCommodityResponse(*commodity))
}

// getCommodity godoc
// @Summary Get a commodity
// @Description Retrieves a commodity by code
// @Tags commodities
// @Produce  json
// @Param   code path string true "Commodity code"
// @Success 200 {object} dto.CommodityResponse "The commodity"
// @Failure 404 {object} map[string]string "Commodity not found"
// @Failure 500 {object} map[string]string "Failed to retrieve commodity"
// @Router /commodities/{code} [get]
func (h *commodityHandler) getCommodity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	commodity, err := h.commodityService.GetCommodityByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commodity not found"})
			return
		}
		logger.Error("Failed to get commodity", slog.String("error", err.Error()), slog.String("code", code))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve commodity"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommodityResponse(*commodity))
}

// listCommodities godoc
// @Summary List commodities
// @Description Retrieves all registered commodities
// @Tags commodities
// @Produce  json
// @Success 200 {array} dto.CommodityResponse "All commodities"
// @Failure 500 {object} map[string]string "Failed to list commodities"
// @Router /commodities [get]
func (h *commodityHandler) listCommodities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	commodities, err := h.commodityService.ListCommodities(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list commodities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list commodities"})
		return
	}

	responses := make([]dto.CommodityResponse, len(commodities))
	for i, commodity := range commodities {
		responses[i] = dto.ToCommodityResponse(commodity)
	}
	c.JSON(http.StatusOK, responses)
}

// updateCommodity godoc
// @Summary Update a commodity
// @Description Updates display fields; fraction changes are rejected once the commodity is referenced
// @Tags commodities
// @Accept  json
// @Produce  json
// @Param   code path string true "Commodity code"
// @Param   commodity body dto.UpdateCommodityRequest true "Fields to update"
// @Success 200 {object} dto.CommodityResponse "The updated commodity"
// @Failure 400 {object} map[string]string "Invalid request or immutable fraction"
// @Failure 404 {object} map[string]string "Commodity not found"
// @Failure 500 {object} map[string]string "Failed to update commodity"
// @Router /commodities/{code} [put]
func (h *commodityHandler) updateCommodity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	updateReq := dto.UpdateCommodityRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateCommodity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		userID = middleware.DefaultUserID
	}

	commodity, err := h.commodityService.UpdateCommodity(c.Request.Context(), code, updateReq, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commodity not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update commodity", slog.String("error", err.Error()), slog.String("code", code))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update commodity"})
		return
	}

	logger.Info("Commodity updated", slog.String("code", code))
	c.JSON(http.StatusOK, dto.ToCommodityResponse(*commodity))
}

// registerCommodityRoutes registers commodity specific routes
func registerCommodityRoutes(group *gin.RouterGroup, commodityService portssvc.CommoditySvcFacade) {
	h := newCommodityHandler(commodityService)

	commodities := group.Group("/commodities")
	{
		commodities.POST("", h.createCommodity)
		commodities.GET("", h.listCommodities)
		commodities.GET("/:code", h.getCommodity)
		commodities.PUT("/:code", h.updateCommodity)
	}
}
