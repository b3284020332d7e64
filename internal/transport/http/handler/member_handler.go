package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-library/internal/core/cache"
	"go-gin-gorm-library/internal/service"
	"go-gin-gorm-library/internal/transport/http/ez"
	mdw "go-gin-gorm-library/internal/transport/http/middleware"
	"go-gin-gorm-library/internal/transport/http/router"
)

// MemberHandler 会员详情与 /me 走读穿缓存，更新/删除后失效
type MemberHandler struct {
	svc   *service.MemberService
	cache *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// c 可以为 nil（未启用 Redis）
func NewMemberHandler(svc *service.MemberService, c *cache.Cache, ttl time.Duration, l *zap.Logger) *MemberHandler {
	return &MemberHandler{svc: svc, cache: c, ttl: ttl, log: l}
}

type createMemberReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type updateMemberReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func memberKey(id int64) string { return "member:" + strconv.FormatInt(id, 10) }

func (h *MemberHandler) get(ctx context.Context, id int64) (memberView, error) {
	v, err := cache.GetOrLoadJSON(h.cache, ctx, memberKey(id), h.ttl, func(ctx context.Context) (*memberView, error) {
		m, err := h.svc.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		mv := toMember(m)
		return &mv, nil
	})
	if err != nil {
		return memberView{}, err
	}
	return *v, nil
}

func (h *MemberHandler) evict(ctx context.Context, id int64) {
	if err := h.cache.Del(ctx, memberKey(id)); err != nil {
		h.log.Warn("member cache evict failed", zap.Int64("memberId", id), zap.Error(err))
	}
}

func (h *MemberHandler) MountAPI(g router.Groups) {
	pub := ez.New(g.Public, h.log)
	e := ez.New(g.Auth, h.log)

	// 注册会员公开
	ez.RegisterAction(pub, ez.Action[createMemberReq, memberView]{
		Method: http.MethodPost,
		Path:   "/members",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createMemberReq) (memberView, error) {
			m, err := h.svc.Create(c.Request.Context(), service.CreateMemberCmd{Name: in.Name, Email: in.Email, Phone: in.Phone})
			if err != nil {
				return memberView{}, err
			}
			return toMember(m), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []memberView]{
		Method: http.MethodGet,
		Path:   "/members",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]memberView, error) {
			ms, err := h.svc.List(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return toMembers(ms), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, memberView]{
		Method: http.MethodGet,
		Path:   "/members/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (memberView, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return memberView{}, err
			}
			return h.get(c.Request.Context(), id)
		},
	})

	ez.RegisterAction(e, ez.Action[updateMemberReq, memberView]{
		Method: http.MethodPatch,
		Path:   "/members/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *updateMemberReq) (memberView, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return memberView{}, err
			}
			m, err := h.svc.Update(c.Request.Context(), id, service.UpdateMemberCmd{Name: in.Name, Email: in.Email, Phone: in.Phone})
			if err != nil {
				return memberView{}, err
			}
			h.evict(c.Request.Context(), id)
			return toMember(m), nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/members/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return struct{}{}, err
			}
			if err := h.svc.Delete(c.Request.Context(), id); err != nil {
				return struct{}{}, err
			}
			h.evict(c.Request.Context(), id)
			return struct{}{}, nil
		},
	})

	// /me 必须挂在鉴权分组，sub 即会员 ID
	ez.RegisterAction(e, ez.Action[struct{}, memberView]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (memberView, error) {
			cl, ok := mdw.ClaimsFrom(c)
			if !ok {
				return memberView{}, ez.Unauthorized("unauthorized")
			}
			id, err := strconv.ParseInt(cl.Subject, 10, 64)
			if err != nil || id <= 0 {
				return memberView{}, ez.Unauthorized("unauthorized")
			}
			return h.get(c.Request.Context(), id)
		},
	})
}
