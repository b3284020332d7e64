package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-gorm-library/internal/domain"
)

type LibraryRepo struct{ db *gorm.DB }

func NewLibraryRepo(db *gorm.DB) *LibraryRepo { return &LibraryRepo{db: db} }

func toLibrary(m LibraryModel) (*domain.Library, error) {
	books, err := toBooks(m.Books)
	if err != nil {
		return nil, err
	}
	return domain.RestoreLibrary(m.ID, m.Name, m.Address, m.OpeningHours, books)
}

func withBooks(db *gorm.DB, q domain.LibraryQuery) *gorm.DB {
	if !q.IncludeBooks {
		return db
	}
	return db.Preload("Books", func(db *gorm.DB) *gorm.DB { return db.Order("title asc, id asc") })
}

func (r *LibraryRepo) Save(ctx context.Context, l *domain.Library) (*domain.Library, error) {
	m := LibraryModel{Name: l.Name(), Address: l.Address(), OpeningHours: l.OpeningHours()}
	if err := r.db.WithContext(ctx).Omit("Books").Create(&m).Error; err != nil {
		return nil, err
	}
	return toLibrary(m)
}

func (r *LibraryRepo) FindByID(ctx context.Context, id int64, q domain.LibraryQuery) (*domain.Library, error) {
	var m LibraryModel
	err := withBooks(r.db.WithContext(ctx), q).First(&m, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toLibrary(m)
}

func (r *LibraryRepo) FindAll(ctx context.Context, q domain.LibraryQuery) ([]*domain.Library, error) {
	var ms []LibraryModel
	if err := withBooks(r.db.WithContext(ctx), q).Order("name asc, id asc").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Library, 0, len(ms))
	for _, m := range ms {
		l, err := toLibrary(m)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
