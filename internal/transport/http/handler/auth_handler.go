package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-library/internal/service"
	"go-gin-gorm-library/internal/transport/http/ez"
	"go-gin-gorm-library/internal/transport/http/router"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, l *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: l}
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenView struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// 登录相关接口先挂
func (h *AuthHandler) Priority() int { return 10 }

func (h *AuthHandler) MountAPI(g router.Groups) {
	e := ez.New(g.Public, h.log)

	// 任何凭证错误统一 401 Invalid credentials
	ez.RegisterAction(e, ez.Action[credentialsReq, tokenView]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *credentialsReq) (tokenView, error) {
			res, err := h.svc.Login(c.Request.Context(), service.LoginCmd{Email: in.Email, Password: in.Password})
			if err != nil {
				return tokenView{}, err
			}
			return tokenView{AccessToken: res.AccessToken, TokenType: res.TokenType, ExpiresIn: res.ExpiresIn}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[credentialsReq, accountView]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *credentialsReq) (accountView, error) {
			a, err := h.svc.Register(c.Request.Context(), service.RegisterAccountCmd{Email: in.Email, Password: in.Password})
			if err != nil {
				return accountView{}, err
			}
			return accountView{ID: a.ID(), Email: a.Email()}, nil
		},
	})
}
