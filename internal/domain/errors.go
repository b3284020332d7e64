package domain

import (
	"errors"
	"fmt"
)

// Kind 错误分类，由传输层映射成协议状态码
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error 领域/用例层统一错误
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

// Is 只比较 Kind；哨兵错误的 Message 为空
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// 哨兵，配合 errors.Is 使用
var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
)

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

func NotFound(resource string, id any) error { return NotFoundBy(resource, "id", id) }

// NotFoundBy 按非主键字段查找失败，如 NotFoundBy("Member", "email", e)
func NotFoundBy(resource, field string, v any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with %s %v not found", resource, field, v)}
}

func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

// Unauthorized 登录失败统一文案，不区分具体原因
func Unauthorized() error { return &Error{Kind: KindUnauthorized, Message: "Invalid credentials"} }

// KindOf 非领域错误返回 KindUnknown
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
