package service

import (
	"context"

	"go.uber.org/zap"

	"go-gin-gorm-library/internal/domain"
)

type CreateLibraryCmd struct {
	Name         string
	Address      string
	OpeningHours string
}

type LibraryService struct {
	repos domain.Repositories
	log   *zap.Logger
}

func NewLibraryService(repos domain.Repositories, l *zap.Logger) *LibraryService {
	return &LibraryService{repos: repos, log: orNop(l)}
}

func (s *LibraryService) Create(ctx context.Context, cmd CreateLibraryCmd) (*domain.Library, error) {
	l, err := domain.NewLibrary(cmd.Name, cmd.Address, cmd.OpeningHours)
	if err != nil {
		return nil, err
	}
	saved, err := s.repos.Libraries.Save(ctx, l)
	if err != nil {
		return nil, err
	}
	s.log.Info("library created", zap.Int64("libraryId", saved.ID()))
	return saved, nil
}

func (s *LibraryService) List(ctx context.Context) ([]*domain.Library, error) {
	return s.repos.Libraries.FindAll(ctx, domain.LibraryQuery{IncludeBooks: true})
}

func (s *LibraryService) Get(ctx context.Context, id int64) (*domain.Library, error) {
	l, err := s.repos.Libraries.FindByID(ctx, id, domain.LibraryQuery{IncludeBooks: true})
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.NotFound("Library", id)
	}
	return l, nil
}
