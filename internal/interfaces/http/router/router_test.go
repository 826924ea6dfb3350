package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/auth"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/config"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/interfaces/http/handler"
)

func newTestRouter() http.Handler {
	cfg := &config.Config{
		App: config.AppConfig{Name: "erp-test", Env: "test"},
		JWT: config.JWTConfig{
			Secret:                 "test-secret-which-is-long-enough-0",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "erp-loshermanos",
		},
	}

	// Route registration does not touch the services, so empty handlers
	// are enough to exercise the wiring.
	handlers := Handlers{
		Auth:      handler.NewAuthHandler(nil),
		Product:   handler.NewProductHandler(nil),
		Customer:  handler.NewCustomerHandler(nil),
		Price:     handler.NewPriceHandler(nil),
		Sale:      handler.NewSaleHandler(nil),
		Inventory: handler.NewInventoryHandler(nil),
	}

	return New(Deps{
		Config:         cfg,
		Logger:         zap.NewNop(),
		JWTService:     auth.NewJWTService(cfg.JWT),
		TokenBlacklist: auth.NewInMemoryTokenBlacklist(),
	}, handlers)
}

func TestRouterWiring(t *testing.T) {
	engine := newTestRouter()

	t.Run("health is public", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("business routes require authentication", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/ventas",
			"/api/v1/productos",
			"/api/v1/clientes",
			"/api/v1/stock/movimientos",
		} {
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		}
	})

	t.Run("login is public", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		// No body: binding fails with 400, not 401.
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
