package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satriajanaka/erp-backend/internal/container"
	handlers "github.com/satriajanaka/erp-backend/internal/interface/http"
	"github.com/satriajanaka/erp-backend/internal/interface/middleware"
)

// AuthModule registers the public token endpoints.
// POST /api/token, POST /api/token/refresh
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// credential guessing gets the tightest limit; internal callers may
	// refresh as often as they like
	tokenLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.POST("/token", tokenLimiter, m.Handler.Token)
	rg.POST("/token/refresh", refreshLimiter, m.Handler.Refresh)
}
