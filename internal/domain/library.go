package domain

import "context"

// Library 分馆；books 是按外键反查出的只读视图
type Library struct {
	id           int64
	name         string
	address      string
	openingHours string
	books        []*Book
}

func NewLibrary(name, address, openingHours string) (*Library, error) {
	return buildLibrary(0, name, address, openingHours, nil)
}

func RestoreLibrary(id int64, name, address, openingHours string, books []*Book) (*Library, error) {
	return buildLibrary(id, name, address, openingHours, books)
}

func buildLibrary(id int64, name, address, openingHours string, books []*Book) (*Library, error) {
	if err := requireText("Library name", name); err != nil {
		return nil, err
	}
	if err := requireText("Library address", address); err != nil {
		return nil, err
	}
	if err := requireText("Library opening hours", openingHours); err != nil {
		return nil, err
	}
	if books == nil {
		books = []*Book{}
	}
	return &Library{id: id, name: name, address: address, openingHours: openingHours, books: books}, nil
}

func (l *Library) ID() int64            { return l.id }
func (l *Library) HasID() bool          { return l.id > 0 }
func (l *Library) Name() string         { return l.name }
func (l *Library) Address() string      { return l.address }
func (l *Library) OpeningHours() string { return l.openingHours }

func (l *Library) Books() []*Book {
	out := make([]*Book, len(l.books))
	copy(out, l.books)
	return out
}

// LibraryQuery IncludeBooks 为 true 时附带馆内图书
type LibraryQuery struct {
	IncludeBooks bool
}

type LibraryRepository interface {
	Save(ctx context.Context, l *Library) (*Library, error)
	FindByID(ctx context.Context, id int64, q LibraryQuery) (*Library, error)
	FindAll(ctx context.Context, q LibraryQuery) ([]*Library, error)
}
