package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"passvault/internal/core/auth"
	"passvault/internal/domain"
	"passvault/internal/service"
	mdw "passvault/internal/transport/http/middleware"
)

// NewAPIEngine builds the public engine: open auth endpoints, the
// token-protected vault, and the admin-role promote/demote surface.
func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, authSvc *service.AuthService, vaultSvc *service.VaultService, adminSvc *service.AdminService) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	api := r.Group("/api/v1")

	MountAllAPI(api)

	// Everything below /auth requires a verified bearer token; the admin
	// subgroup additionally requires the admin role.
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))

	adminOnly := api.Group("/admin")
	adminOnly.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))

	mountAuthActions(api, l, authSvc)
	mountVaultActions(authed, l, vaultSvc)
	mountAdminActions(adminOnly, l, adminSvc)

	return r
}
