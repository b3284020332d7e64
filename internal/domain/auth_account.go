package domain

import (
	"context"
	"strings"
)

// AuthAccount 登录凭证，与 Member 档案分离，通过 email 关联
type AuthAccount struct {
	id           int64
	email        string
	passwordHash string
}

func NewAuthAccount(email, passwordHash string) (*AuthAccount, error) {
	return buildAuthAccount(0, email, passwordHash)
}

func RestoreAuthAccount(id int64, email, passwordHash string) (*AuthAccount, error) {
	return buildAuthAccount(id, email, passwordHash)
}

func buildAuthAccount(id int64, email, passwordHash string) (*AuthAccount, error) {
	if err := requireEmail("Auth account email", email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, Validation("Auth account password hash cannot be empty")
	}
	return &AuthAccount{id: id, email: email, passwordHash: passwordHash}, nil
}

func (a *AuthAccount) ID() int64            { return a.id }
func (a *AuthAccount) HasID() bool          { return a.id > 0 }
func (a *AuthAccount) Email() string        { return a.email }
func (a *AuthAccount) PasswordHash() string { return a.passwordHash }

type AuthAccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*AuthAccount, error)
	Save(ctx context.Context, a *AuthAccount) (*AuthAccount, error)
}
