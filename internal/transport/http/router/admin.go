package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"passvault/internal/core/auth"
	"passvault/internal/domain"
	"passvault/internal/service"
	httpez "passvault/internal/transport/http/ez"
	mdw "passvault/internal/transport/http/middleware"
)

// NewAdminEngine builds the ops engine: health, prometheus metrics and user
// listing. It binds on a separate port and requires the admin role outright.
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, adminSvc *service.AdminService) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.Ginzap(l, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(l, true))
	r.Use(mdw.Metrics())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))

	MountAllAdmin(admin)
	mountUserListing(admin, l, adminSvc)

	return r
}

func mountUserListing(admin *gin.RouterGroup, l *zap.Logger, svc *service.AdminService) {
	ez := httpez.New(admin, l)

	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"` // substring match on email
	}
	type row struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}

	httpez.RegisterAction[listQ, listOut](ez, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			users, total, err := svc.ListUsers(in.Offset, in.Limit, in.Q)
			if err != nil {
				return listOut{}, httpez.Internal("list users failed", err)
			}
			out := listOut{Total: total, Items: make([]row, 0, len(users))}
			for _, u := range users {
				out.Items = append(out.Items, row{ID: u.ID, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt})
			}
			return out, nil
		},
	})
}
