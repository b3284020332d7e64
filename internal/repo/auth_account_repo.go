package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-gorm-library/internal/domain"
)

type AuthAccountRepo struct{ db *gorm.DB }

func NewAuthAccountRepo(db *gorm.DB) *AuthAccountRepo { return &AuthAccountRepo{db: db} }

func (r *AuthAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.AuthAccount, error) {
	var m AuthAccountModel
	err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return domain.RestoreAuthAccount(m.ID, m.Email, m.PasswordHash)
}

func (r *AuthAccountRepo) Save(ctx context.Context, a *domain.AuthAccount) (*domain.AuthAccount, error) {
	m := AuthAccountModel{Email: a.Email(), PasswordHash: a.PasswordHash()}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDupKey(err) {
			return nil, domain.Conflict("Auth account with this email already exists")
		}
		return nil, err
	}
	return domain.RestoreAuthAccount(m.ID, m.Email, m.PasswordHash)
}
