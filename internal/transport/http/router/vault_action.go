package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"passvault/internal/service"
	httpez "passvault/internal/transport/http/ez"
	mdw "passvault/internal/transport/http/middleware"
)

func mountVaultActions(authed *gin.RouterGroup, l *zap.Logger, svc *service.VaultService) {
	ez := httpez.New(authed, l)

	type addIn struct {
		Website  string `json:"website"  binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	type addOut struct {
		Message    string                   `json:"message"`
		Credential *service.PlainCredential `json:"password"`
	}
	httpez.RegisterAction[addIn, addOut](ez, httpez.Action[addIn, addOut]{
		Method: http.MethodPost,
		Path:   "/passwords/add",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *addIn) (addOut, error) {
			claims := mdw.ClaimsFrom(c)
			if claims == nil {
				return addOut{}, httpez.Unauthorized("unauthorized")
			}
			cred, err := svc.Add(c.Request.Context(), claims.UID, in.Website, in.Username, in.Password)
			if err != nil {
				return addOut{}, err
			}
			return addOut{Message: "Password saved successfully", Credential: cred}, nil
		},
	})

	httpez.RegisterAction[struct{}, []service.PlainCredential](ez, httpez.Action[struct{}, []service.PlainCredential]{
		Method: http.MethodGet,
		Path:   "/passwords",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.PlainCredential, error) {
			claims := mdw.ClaimsFrom(c)
			if claims == nil {
				return nil, httpez.Unauthorized("unauthorized")
			}
			return svc.List(c.Request.Context(), claims)
		},
	})

	type updateIn struct {
		Website  string `json:"website"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	type updateOut struct {
		Message string                   `json:"message"`
		Updated *service.PlainCredential `json:"updated"`
	}
	httpez.RegisterAction[updateIn, updateOut](ez, httpez.Action[updateIn, updateOut]{
		Method: http.MethodPut,
		Path:   "/passwords/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateIn) (updateOut, error) {
			claims := mdw.ClaimsFrom(c)
			if claims == nil {
				return updateOut{}, httpez.Unauthorized("unauthorized")
			}
			cred, err := svc.Update(c.Request.Context(), claims, c.Param("id"), service.UpdateFields{
				Website:  in.Website,
				Username: in.Username,
				Password: in.Password,
			})
			if err != nil {
				return updateOut{}, err
			}
			return updateOut{Message: "Password updated successfully", Updated: cred}, nil
		},
	})

	httpez.RegisterAction[struct{}, gin.H](ez, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/passwords/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			claims := mdw.ClaimsFrom(c)
			if claims == nil {
				return nil, httpez.Unauthorized("unauthorized")
			}
			if err := svc.Delete(c.Request.Context(), claims, c.Param("id")); err != nil {
				return nil, err
			}
			return gin.H{"message": "Password deleted successfully"}, nil
		},
	})

	type generateQ struct {
		Length int `form:"length"`
	}
	httpez.RegisterAction[generateQ, gin.H](ez, httpez.Action[generateQ, gin.H]{
		Method: http.MethodGet,
		Path:   "/passwords/generate",
		Binder: httpez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *generateQ) (gin.H, error) {
			pw, err := svc.GeneratePassword(in.Length)
			if err != nil {
				return nil, err
			}
			return gin.H{"generatedPassword": pw}, nil
		},
	})

	type strengthIn struct {
		Password string `json:"password"`
	}
	httpez.RegisterAction[strengthIn, *service.StrengthResult](ez, httpez.Action[strengthIn, *service.StrengthResult]{
		Method: http.MethodPost,
		Path:   "/passwords/check-strength",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *strengthIn) (*service.StrengthResult, error) {
			return svc.CheckStrength(in.Password)
		},
	})
}
