package domain

import (
	"context"
	"time"
)

// Clock 时间来源，测试里用固定时钟
type Clock interface {
	Now() time.Time
}

// EventBus 发布即忘；投递失败由实现自行记录，不影响调用方
type EventBus interface {
	Publish(ctx context.Context, e Event)
}

type Hasher interface {
	Hash(password string) (string, error)
	// Compare 格式不合法时返回 false，不报错
	Compare(password, stored string) bool
}

// TokenClaims 签发访问令牌的载荷
type TokenClaims struct {
	Subject string
	Email   string
	Name    string
	Role    string
}

type TokenIssuer interface {
	Issue(c TokenClaims) (string, error)
	// ExpiresAt 读取令牌内嵌的过期时间
	ExpiresAt(token string) (time.Time, error)
}

// Repositories 一组绑定到同一存储会话的仓储
type Repositories struct {
	Books        BookRepository
	Members      MemberRepository
	Loans        LoanRepository
	Libraries    LibraryRepository
	AuthAccounts AuthAccountRepository
}

// Transactor 工作单元：fn 内的写入要么全部提交，要么全部回滚
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
}
