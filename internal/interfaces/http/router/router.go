package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/pricing"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/auth"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/config"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/logger"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/interfaces/http/handler"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/interfaces/http/middleware"
)

// Handlers bundles every route registrar the API exposes
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Price     *handler.PriceHandler
	Sale      *handler.SaleHandler
	Inventory *handler.InventoryHandler
}

// Deps holds the cross-cutting services the router wires in
type Deps struct {
	Config         *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
}

// New builds the gin engine with all middleware and routes wired
func New(deps Deps, handlers Handlers) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	registerValidators()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))

	corsConfig := middleware.DefaultCORSConfig()
	if len(deps.Config.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = deps.Config.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(middleware.JWTConfig{
		JWTService:     deps.JWTService,
		TokenBlacklist: deps.TokenBlacklist,
		Logger:         deps.Logger,
	}))

	handlers.Auth.RegisterRoutes(api, protected)
	handlers.Product.RegisterRoutes(protected)
	handlers.Customer.RegisterRoutes(protected)
	handlers.Price.RegisterRoutes(protected)
	handlers.Sale.RegisterRoutes(protected)
	handlers.Inventory.RegisterRoutes(protected)

	return engine
}

// registerValidators adds the custom binding tags the request DTOs use
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
		return pricing.Tier(fl.Field().String()).IsValid()
	})
}
