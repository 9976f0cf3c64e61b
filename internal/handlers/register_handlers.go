package handlers

import (
	"github.com/finchbooks/finch/cmd/docs"
	"github.com/finchbooks/finch/internal/core/domain"
	portssvc "github.com/finchbooks/finch/internal/core/ports/services"
	"github.com/finchbooks/finch/internal/middleware"
	"github.com/finchbooks/finch/internal/platform/config"
	"github.com/finchbooks/finch/internal/utils/accounting"
	"github.com/finchbooks/finch/internal/utils/hierarchy"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	// Delegate route registration to specific handlers, passing required services
	registerCommodityRoutes(v1, service.Commodity)
	registerAccountRoutes(v1, service.Account, service.Transaction, service.BankFeed)
	RegisterTransactionRoutes(v1, service.Transaction)
	registerBalanceRoutes(v1, service.Balance)
	registerReconciliationRoutes(v1, service.Reconciliation)
	registerExchangeRateRoutes(v1, service.ExchangeRate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// registerCustomValidators attaches the domain enum validators used by the
// binding tags on request DTOs.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		return domain.AccountType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("balancereversal", func(fl validator.FieldLevel) bool {
		return accounting.BalanceReversal(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("sortkey", func(fl validator.FieldLevel) bool {
		return hierarchy.SortKey(fl.Field().String()).IsValid()
	})
}
