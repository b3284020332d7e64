package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-library/internal/domain"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 成功响应
func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// Abort 错误码即 HTTP 状态码
func Abort(c *gin.Context, code int, customMsg string) {
	c.AbortWithStatusJSON(httpStatus(code), Error(code, customMsg))
}

func httpStatus(code int) int {
	if code >= 400 && code <= 599 {
		return code
	}
	return http.StatusInternalServerError
}

// StatusCoder 自带状态码的错误，如 ez.AErr
type StatusCoder interface {
	error
	StatusCode() int
}

// Fail 统一错误出口：领域错误按 Kind 映射；未知错误记日志后返回 500，不透出细节
func Fail(c *gin.Context, l *zap.Logger, err error) {
	var sc StatusCoder
	if errors.As(err, &sc) && sc.StatusCode() < CodeServerError {
		Abort(c, sc.StatusCode(), sc.Error())
		return
	}
	if sc == nil {
		switch domain.KindOf(err) {
		case domain.KindValidation:
			Abort(c, CodeBadRequest, err.Error())
			return
		case domain.KindNotFound:
			Abort(c, CodeNotFound, err.Error())
			return
		case domain.KindConflict:
			Abort(c, CodeConflict, err.Error())
			return
		case domain.KindUnauthorized:
			Abort(c, CodeUnauthorized, err.Error())
			return
		}
	}
	_ = c.Error(err)
	if l != nil {
		l.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	Abort(c, CodeServerError, "")
}
