package domain

import "context"

// Book 馆藏图书；available 只能通过 MarkAsAvailable / MarkAsUnavailable 切换
type Book struct {
	id        int64
	title     string
	author    string
	isbn      string
	available bool
	libraryID *int64
}

// NewBook 新书默认可借
func NewBook(title, author, isbn string, libraryID *int64) (*Book, error) {
	return buildBook(0, title, author, isbn, true, libraryID)
}

// RestoreBook 从存储重建，同样走校验
func RestoreBook(id int64, title, author, isbn string, available bool, libraryID *int64) (*Book, error) {
	return buildBook(id, title, author, isbn, available, libraryID)
}

func buildBook(id int64, title, author, isbn string, available bool, libraryID *int64) (*Book, error) {
	if err := requireText("Book title", title); err != nil {
		return nil, err
	}
	if err := requireText("Book author", author); err != nil {
		return nil, err
	}
	norm, err := normalizeISBN(isbn)
	if err != nil {
		return nil, err
	}
	if libraryID != nil && *libraryID <= 0 {
		return nil, Validation("Library ID must be a positive integer when provided")
	}
	return &Book{
		id:        id,
		title:     title,
		author:    author,
		isbn:      norm,
		available: available,
		libraryID: copyID(libraryID),
	}, nil
}

func (b *Book) ID() int64        { return b.id }
func (b *Book) HasID() bool      { return b.id > 0 }
func (b *Book) Title() string    { return b.title }
func (b *Book) Author() string   { return b.author }
func (b *Book) ISBN() string     { return b.isbn }
func (b *Book) Available() bool  { return b.available }
func (b *Book) LibraryID() *int64 { return copyID(b.libraryID) }

func (b *Book) MarkAsUnavailable() error {
	if !b.available {
		return Validation("Book is already unavailable")
	}
	b.available = false
	return nil
}

func (b *Book) MarkAsAvailable() error {
	if b.available {
		return Validation("Book is already available")
	}
	b.available = true
	return nil
}

func copyID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// BookRepository 查询不到时返回 (nil, nil)
type BookRepository interface {
	Save(ctx context.Context, b *Book) (*Book, error)
	FindByID(ctx context.Context, id int64) (*Book, error)
	FindAll(ctx context.Context) ([]*Book, error)
	FindByTitle(ctx context.Context, title string) ([]*Book, error)
	FindByAuthor(ctx context.Context, author string) ([]*Book, error)
	FindByLibraryID(ctx context.Context, libraryID int64) ([]*Book, error)
	Update(ctx context.Context, b *Book) (*Book, error)
	Delete(ctx context.Context, id int64) error
}
