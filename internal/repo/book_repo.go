package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-gorm-library/internal/domain"
)

type BookRepo struct{ db *gorm.DB }

func NewBookRepo(db *gorm.DB) *BookRepo { return &BookRepo{db: db} }

func toBook(m BookModel) (*domain.Book, error) {
	return domain.RestoreBook(m.ID, m.Title, m.Author, m.ISBN, m.Available, m.LibraryID)
}

func toBooks(ms []BookModel) ([]*domain.Book, error) {
	out := make([]*domain.Book, 0, len(ms))
	for _, m := range ms {
		b, err := toBook(m)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BookRepo) Save(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	m := BookModel{Title: b.Title(), Author: b.Author(), ISBN: b.ISBN(), Available: b.Available(), LibraryID: b.LibraryID()}
	if err := r.db.WithContext(ctx).Omit("Library").Create(&m).Error; err != nil {
		return nil, err
	}
	return toBook(m)
}

func (r *BookRepo) FindByID(ctx context.Context, id int64) (*domain.Book, error) {
	var m BookModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toBook(m)
}

func (r *BookRepo) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.Book, error) {
	var ms []BookModel
	if err := r.db.WithContext(ctx).Scopes(scope).Order("title asc, id asc").Find(&ms).Error; err != nil {
		return nil, err
	}
	return toBooks(ms)
}

func (r *BookRepo) FindAll(ctx context.Context) ([]*domain.Book, error) {
	return r.find(ctx, func(db *gorm.DB) *gorm.DB { return db })
}

func (r *BookRepo) FindByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	return r.find(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("LOWER(title) LIKE ?", contains(title)) })
}

func (r *BookRepo) FindByAuthor(ctx context.Context, author string) ([]*domain.Book, error) {
	return r.find(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("LOWER(author) LIKE ?", contains(author)) })
}

func (r *BookRepo) FindByLibraryID(ctx context.Context, libraryID int64) ([]*domain.Book, error) {
	return r.find(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("library_id = ?", libraryID) })
}

func (r *BookRepo) Update(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	if !b.HasID() {
		return nil, errNoID
	}
	db := r.db.WithContext(ctx)
	var m BookModel
	err := db.First(&m, "id = ?", b.ID()).Error
	if notFound(err) {
		return nil, domain.NotFound("Book", b.ID())
	}
	if err != nil {
		return nil, err
	}
	m.Title, m.Author, m.ISBN, m.Available, m.LibraryID = b.Title(), b.Author(), b.ISBN(), b.Available(), b.LibraryID()
	if err := db.Omit("Library").Save(&m).Error; err != nil {
		return nil, err
	}
	return toBook(m)
}

// Delete 先清理借阅记录，不依赖驱动是否开启外键级联
func (r *BookRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&LoanModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&BookModel{}, "id = ?", id).Error
	})
}
