package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-library/internal/service"
	"go-gin-gorm-library/internal/transport/http/ez"
	"go-gin-gorm-library/internal/transport/http/router"
)

type LibraryHandler struct {
	svc *service.LibraryService
	log *zap.Logger
}

func NewLibraryHandler(svc *service.LibraryService, l *zap.Logger) *LibraryHandler {
	return &LibraryHandler{svc: svc, log: l}
}

type createLibraryReq struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	OpeningHours string `json:"openingHours"`
}

func (h *LibraryHandler) MountAPI(g router.Groups) {
	e := ez.New(g.Auth, h.log)

	ez.RegisterAction(e, ez.Action[createLibraryReq, libraryView]{
		Method: http.MethodPost,
		Path:   "/libraries",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createLibraryReq) (libraryView, error) {
			l, err := h.svc.Create(c.Request.Context(), service.CreateLibraryCmd{
				Name: in.Name, Address: in.Address, OpeningHours: in.OpeningHours,
			})
			if err != nil {
				return libraryView{}, err
			}
			return toLibrary(l), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []libraryView]{
		Method: http.MethodGet,
		Path:   "/libraries",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]libraryView, error) {
			ls, err := h.svc.List(c.Request.Context())
			if err != nil {
				return nil, err
			}
			out := make([]libraryView, 0, len(ls))
			for _, l := range ls {
				out = append(out, toLibrary(l))
			}
			return out, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, libraryView]{
		Method: http.MethodGet,
		Path:   "/libraries/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (libraryView, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return libraryView{}, err
			}
			l, err := h.svc.Get(c.Request.Context(), id)
			if err != nil {
				return libraryView{}, err
			}
			return toLibrary(l), nil
		},
	})
}
