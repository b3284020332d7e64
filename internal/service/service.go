// Package service 用例层：编排领域实体与仓储端口，错误原样返回给传输层映射
package service

import "go.uber.org/zap"

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func pick(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
