package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-library/internal/service"
	"go-gin-gorm-library/internal/transport/http/ez"
	"go-gin-gorm-library/internal/transport/http/router"
)

type BookHandler struct {
	svc *service.BookService
	log *zap.Logger
}

func NewBookHandler(svc *service.BookService, l *zap.Logger) *BookHandler {
	return &BookHandler{svc: svc, log: l}
}

// 字段合法性交给领域层校验，这里只做类型绑定
type createBookReq struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	LibraryID *int64 `json:"libraryId"`
}

type updateBookReq struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	ISBN      *string `json:"isbn"`
	LibraryID *int64  `json:"libraryId"`
}

type listBooksQ struct {
	Title  string `form:"title"`
	Author string `form:"author"`
}

func (h *BookHandler) MountAPI(g router.Groups) {
	e := ez.New(g.Auth, h.log)

	ez.RegisterAction(e, ez.Action[createBookReq, bookView]{
		Method: http.MethodPost,
		Path:   "/books",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createBookReq) (bookView, error) {
			b, err := h.svc.Create(c.Request.Context(), service.CreateBookCmd{
				Title: in.Title, Author: in.Author, ISBN: in.ISBN, LibraryID: in.LibraryID,
			})
			if err != nil {
				return bookView{}, err
			}
			return toBook(b), nil
		},
	})

	ez.RegisterAction(e, ez.Action[listBooksQ, []bookView]{
		Method: http.MethodGet,
		Path:   "/books",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listBooksQ) ([]bookView, error) {
			bs, err := h.svc.List(c.Request.Context(), service.BookFilter{Title: in.Title, Author: in.Author})
			if err != nil {
				return nil, err
			}
			return toBooks(bs), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, bookView]{
		Method: http.MethodGet,
		Path:   "/books/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (bookView, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return bookView{}, err
			}
			b, err := h.svc.Get(c.Request.Context(), id)
			if err != nil {
				return bookView{}, err
			}
			return toBook(b), nil
		},
	})

	ez.RegisterAction(e, ez.Action[updateBookReq, bookView]{
		Method: http.MethodPatch,
		Path:   "/books/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *updateBookReq) (bookView, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return bookView{}, err
			}
			b, err := h.svc.Update(c.Request.Context(), id, service.UpdateBookCmd{
				Title: in.Title, Author: in.Author, ISBN: in.ISBN, LibraryID: in.LibraryID,
			})
			if err != nil {
				return bookView{}, err
			}
			return toBook(b), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/books/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, h.svc.Remove(c.Request.Context(), id)
		},
	})
}
