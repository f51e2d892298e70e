package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"passvault/internal/service"
	httpez "passvault/internal/transport/http/ez"
	mdw "passvault/internal/transport/http/middleware"
)

// mountAdminActions wires role management. The group already enforces a
// valid admin token; the self-modification guard lives in the policy layer.
func mountAdminActions(adminOnly *gin.RouterGroup, l *zap.Logger, svc *service.AdminService) {
	ez := httpez.New(adminOnly, l)

	type roleIn struct {
		Email string `json:"email" binding:"required"`
	}

	httpez.RegisterAction[roleIn, gin.H](ez, httpez.Action[roleIn, gin.H]{
		Method: http.MethodPut,
		Path:   "/promote",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *roleIn) (gin.H, error) {
			u, err := svc.Promote(mdw.ClaimsFrom(c), in.Email)
			if err != nil {
				return nil, err
			}
			return gin.H{"message": fmt.Sprintf("%s has been promoted to admin", u.Email)}, nil
		},
	})

	httpez.RegisterAction[roleIn, gin.H](ez, httpez.Action[roleIn, gin.H]{
		Method: http.MethodPut,
		Path:   "/demote",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *roleIn) (gin.H, error) {
			u, err := svc.Demote(mdw.ClaimsFrom(c), in.Email)
			if err != nil {
				return nil, err
			}
			return gin.H{"message": fmt.Sprintf("%s has been demoted to user", u.Email)}, nil
		},
	})
}
