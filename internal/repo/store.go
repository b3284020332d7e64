package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-gin-gorm-library/internal/domain"
)

var errNoID = errors.New("entity has no id")

// Store gorm 版仓储集合，同时实现 domain.Transactor
type Store struct {
	db    *gorm.DB
	clock domain.Clock
}

func NewStore(db *gorm.DB, clock domain.Clock) *Store { return &Store{db: db, clock: clock} }

func (s *Store) Repositories() domain.Repositories { return s.on(s.db) }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r domain.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, s.on(tx))
	})
}

func (s *Store) on(db *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Books:        &BookRepo{db: db},
		Members:      &MemberRepo{db: db},
		Loans:        &LoanRepo{db: db, clock: s.clock},
		Libraries:    &LibraryRepo{db: db},
		AuthAccounts: &AuthAccountRepo{db: db},
	}
}

func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}

func notFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

func contains(s string) string { return "%" + strings.ToLower(s) + "%" }
