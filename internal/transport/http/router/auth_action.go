package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"passvault/internal/service"
	httpez "passvault/internal/transport/http/ez"
)

type userSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func mountAuthActions(api *gin.RouterGroup, l *zap.Logger, svc *service.AuthService) {
	ez := httpez.New(api, l)

	type registerIn struct {
		Email          string `json:"email"          binding:"required,email"`
		MasterPassword string `json:"masterPassword" binding:"required"`
	}
	type registerOut struct {
		Message string      `json:"message"`
		User    userSummary `json:"user"`
	}
	httpez.RegisterAction[registerIn, registerOut](ez, httpez.Action[registerIn, registerOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (registerOut, error) {
			u, err := svc.Register(in.Email, in.MasterPassword)
			if err != nil {
				return registerOut{}, err
			}
			return registerOut{
				Message: fmt.Sprintf("User registered successfully as %s", u.Role),
				User: userSummary{
					ID: u.ID, Email: u.Email, Role: u.Role,
					CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
				},
			}, nil
		},
	})

	type loginIn struct {
		Email          string `json:"email"          binding:"required"`
		MasterPassword string `json:"masterPassword" binding:"required"`
	}
	type loginOut struct {
		Message string      `json:"message"`
		Token   string      `json:"token"`
		User    userSummary `json:"user"`
	}
	httpez.RegisterAction[loginIn, loginOut](ez, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			token, u, err := svc.Login(in.Email, in.MasterPassword)
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{
				Message: "Login successful",
				Token:   token,
				User:    userSummary{ID: u.ID, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt},
			}, nil
		},
	})
}
