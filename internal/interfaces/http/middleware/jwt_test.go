package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/auth"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-which-is-long-enough-0",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "erp-loshermanos",
	})
}

func setupProtectedRoute(cfg JWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(JWTAuth(cfg))
	engine.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetJWTUserID(c),
			"role":    GetJWTRole(c),
		})
	})
	return engine
}

func TestJWTAuth(t *testing.T) {
	jwtService := newTestJWTService()

	t.Run("valid token passes and fills the context", func(t *testing.T) {
		engine := setupProtectedRoute(JWTConfig{JWTService: jwtService})

		userID := uuid.New()
		pair, err := jwtService.GenerateTokenPair(userID, "mpautasso", "vendedor")
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		assert.Contains(t, w.Body.String(), "vendedor")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		engine := setupProtectedRoute(JWTConfig{JWTService: jwtService})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		engine := setupProtectedRoute(JWTConfig{JWTService: jwtService})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.token")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token is not accepted as access token", func(t *testing.T) {
		engine := setupProtectedRoute(JWTConfig{JWTService: jwtService})

		pair, err := jwtService.GenerateTokenPair(uuid.New(), "mpautasso", "vendedor")
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.RefreshToken)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("blacklisted token is rejected", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		engine := setupProtectedRoute(JWTConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
		})

		pair, err := jwtService.GenerateTokenPair(uuid.New(), "mpautasso", "vendedor")
		require.NoError(t, err)
		claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Minute))

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(role string) *gin.Engine {
		engine := gin.New()
		engine.Use(func(c *gin.Context) {
			c.Set(JWTRoleKey, role)
			c.Next()
		})
		engine.POST("/admin-only", RequireRole("admin"), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return engine
	}

	t.Run("allows listed role", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/admin-only", nil)
		w := httptest.NewRecorder()
		newEngine("admin").ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects other roles", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/admin-only", nil)
		w := httptest.NewRecorder()
		newEngine("vendedor").ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
