package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-library/internal/service"
	"go-gin-gorm-library/internal/transport/http/ez"
	"go-gin-gorm-library/internal/transport/http/router"
)

type LoanHandler struct {
	svc *service.LoanService
	log *zap.Logger
}

func NewLoanHandler(svc *service.LoanService, l *zap.Logger) *LoanHandler {
	return &LoanHandler{svc: svc, log: l}
}

type loanBookReq struct {
	BookID   int64 `json:"bookId"`
	MemberID int64 `json:"memberId"`
}

type listLoansQ struct {
	ActiveOnly bool   `form:"activeOnly"`
	BookID     *int64 `form:"bookId"`
	MemberID   *int64 `form:"memberId"`
}

func (h *LoanHandler) MountAPI(g router.Groups) {
	e := ez.New(g.Auth, h.log)

	ez.RegisterAction(e, ez.Action[loanBookReq, loanView]{
		Method: http.MethodPost,
		Path:   "/loans",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *loanBookReq) (loanView, error) {
			l, err := h.svc.LoanBook(c.Request.Context(), service.LoanBookCmd{BookID: in.BookID, MemberID: in.MemberID})
			if err != nil {
				return loanView{}, err
			}
			return toLoan(l), nil
		},
	})

	ez.RegisterAction(e, ez.Action[listLoansQ, []loanView]{
		Method: http.MethodGet,
		Path:   "/loans",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listLoansQ) ([]loanView, error) {
			ls, err := h.svc.List(c.Request.Context(), service.LoanFilter{
				ActiveOnly: in.ActiveOnly, BookID: in.BookID, MemberID: in.MemberID,
			})
			if err != nil {
				return nil, err
			}
			return toLoans(ls), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, loanView]{
		Method: http.MethodPost,
		Path:   "/loans/:id/return",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (loanView, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return loanView{}, err
			}
			l, err := h.svc.ReturnBook(c.Request.Context(), id)
			if err != nil {
				return loanView{}, err
			}
			return toLoan(l), nil
		},
	})
}
