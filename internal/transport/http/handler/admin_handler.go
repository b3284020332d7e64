package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-library/internal/core/auth"
	"go-gin-gorm-library/internal/service"
	"go-gin-gorm-library/internal/transport/http/ez"
)

// AdminHandler 管理端：会员检索、在借列表、开通登录账号
type AdminHandler struct {
	members  *service.MemberService
	loans    *service.LoanService
	accounts *service.AuthService
	log      *zap.Logger
}

func NewAdminHandler(members *service.MemberService, loans *service.LoanService, accounts *service.AuthService, l *zap.Logger) *AdminHandler {
	return &AdminHandler{members: members, loans: loans, accounts: accounts, log: l}
}

type memberListQ struct {
	Offset int    `form:"offset,default=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"` // 按 email/name 模糊搜
}

type memberListOut struct {
	Total int          `json:"total"`
	Items []memberView `json:"items"`
}

func (h *AdminHandler) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin, h.log)
	roles := []string{auth.RoleAdmin}

	// --- GET /admin/v1/members  会员列表 ---
	ez.RegisterAction(e, ez.Action[memberListQ, memberListOut]{
		Method: http.MethodGet,
		Path:   "/members",
		Binder: ez.BindQuery,
		Roles:  roles,
		Handler: func(c *gin.Context, in *memberListQ) (memberListOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			if in.Offset < 0 {
				in.Offset = 0
			}
			ms, total, err := h.members.Search(c.Request.Context(), service.MemberQuery{Q: in.Q, Offset: in.Offset, Limit: in.Limit})
			if err != nil {
				return memberListOut{}, err
			}
			return memberListOut{Total: total, Items: toMembers(ms)}, nil
		},
	})

	// --- GET /admin/v1/loans/active  在借 ---
	ez.RegisterAction(e, ez.Action[struct{}, []loanView]{
		Method: http.MethodGet,
		Path:   "/loans/active",
		Binder: ez.BindNone,
		Roles:  roles,
		Handler: func(c *gin.Context, _ *struct{}) ([]loanView, error) {
			ls, err := h.loans.List(c.Request.Context(), service.LoanFilter{ActiveOnly: true})
			if err != nil {
				return nil, err
			}
			return toLoans(ls), nil
		},
	})

	// --- POST /admin/v1/accounts  为已有会员开通账号 ---
	ez.RegisterAction(e, ez.Action[credentialsReq, accountView]{
		Method: http.MethodPost,
		Path:   "/accounts",
		Binder: ez.BindJSON,
		Roles:  roles,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *credentialsReq) (accountView, error) {
			a, err := h.accounts.Register(c.Request.Context(), service.RegisterAccountCmd{Email: in.Email, Password: in.Password})
			if err != nil {
				return accountView{}, err
			}
			return accountView{ID: a.ID(), Email: a.Email()}, nil
		},
	})
}
