package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"go-gin-gorm-library/internal/domain"
)

type CreateBookCmd struct {
	Title     string
	Author    string
	ISBN      string
	LibraryID *int64
}

// UpdateBookCmd nil 字段沿用原值
type UpdateBookCmd struct {
	Title     *string
	Author    *string
	ISBN      *string
	LibraryID *int64
}

// BookFilter title 优先于 author，都为空则返回全部
type BookFilter struct {
	Title  string
	Author string
}

type BookService struct {
	repos domain.Repositories
	log   *zap.Logger
}

func NewBookService(repos domain.Repositories, l *zap.Logger) *BookService {
	return &BookService{repos: repos, log: orNop(l)}
}

func (s *BookService) Create(ctx context.Context, cmd CreateBookCmd) (*domain.Book, error) {
	b, err := domain.NewBook(cmd.Title, cmd.Author, cmd.ISBN, cmd.LibraryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireLibrary(ctx, b.LibraryID()); err != nil {
		return nil, err
	}
	saved, err := s.repos.Books.Save(ctx, b)
	if err != nil {
		return nil, err
	}
	s.log.Info("book created", zap.Int64("bookId", saved.ID()), zap.String("isbn", saved.ISBN()))
	return saved, nil
}

func (s *BookService) List(ctx context.Context, f BookFilter) ([]*domain.Book, error) {
	switch {
	case strings.TrimSpace(f.Title) != "":
		return s.repos.Books.FindByTitle(ctx, strings.TrimSpace(f.Title))
	case strings.TrimSpace(f.Author) != "":
		return s.repos.Books.FindByAuthor(ctx, strings.TrimSpace(f.Author))
	default:
		return s.repos.Books.FindAll(ctx)
	}
}

func (s *BookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	b, err := s.repos.Books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound("Book", id)
	}
	return b, nil
}

func (s *BookService) Update(ctx context.Context, id int64, cmd UpdateBookCmd) (*domain.Book, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	libraryID := cur.LibraryID()
	if cmd.LibraryID != nil {
		libraryID = cmd.LibraryID
	}
	next, err := domain.RestoreBook(cur.ID(),
		pick(cmd.Title, cur.Title()),
		pick(cmd.Author, cur.Author()),
		pick(cmd.ISBN, cur.ISBN()),
		cur.Available(),
		libraryID,
	)
	if err != nil {
		return nil, err
	}
	if cmd.LibraryID != nil {
		if err := s.requireLibrary(ctx, next.LibraryID()); err != nil {
			return nil, err
		}
	}
	return s.repos.Books.Update(ctx, next)
}

// Remove 有在借记录时拒绝删除
func (s *BookService) Remove(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	active, err := s.repos.Loans.FindActiveByBookID(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return domain.Conflict("Cannot remove book with active loans")
	}
	if err := s.repos.Books.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("book removed", zap.Int64("bookId", id))
	return nil
}

func (s *BookService) requireLibrary(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	lib, err := s.repos.Libraries.FindByID(ctx, *id, domain.LibraryQuery{})
	if err != nil {
		return err
	}
	if lib == nil {
		return domain.NotFound("Library", *id)
	}
	return nil
}
