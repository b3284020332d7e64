package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-library/internal/core/auth"
	"go-gin-gorm-library/internal/core/clock"
	"go-gin-gorm-library/internal/domain"
	"go-gin-gorm-library/internal/repo/memory"
	"go-gin-gorm-library/internal/service"
	"go-gin-gorm-library/pkg/utils"
)

var (
	start   = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	errBoom = errors.New("boom")
)

type busMock struct{ mock.Mock }

func (m *busMock) Publish(ctx context.Context, e domain.Event) { m.Called(ctx, e) }

type fixture struct {
	store    *memory.Store
	clock    *clock.Fixed
	bus      *busMock
	jwt      *auth.JWTer
	books    *service.BookService
	members  *service.MemberService
	loans    *service.LoanService
	libs     *service.LibraryService
	accounts *service.AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewFixed(start)
	store := memory.NewStore(clk)
	repos := store.Repositories()
	bus := &busMock{}
	j := &auth.JWTer{Secret: []byte("s3cret"), Issuer: "library", TTL: time.Hour, Now: clk.Now}
	hasher := utils.PasswordHasher{Iterations: 1000}
	return &fixture{
		store:    store,
		clock:    clk,
		bus:      bus,
		jwt:      j,
		books:    service.NewBookService(repos, nil),
		members:  service.NewMemberService(repos, nil),
		loans:    service.NewLoanService(repos, store, clk, bus, nil),
		libs:     service.NewLibraryService(repos, nil),
		accounts: service.NewAuthService(repos, store, hasher, j, clk, []string{"admin@library.test"}, nil),
	}
}

func (f *fixture) book(t *testing.T, title string) *domain.Book {
	t.Helper()
	b, err := f.books.Create(context.Background(), service.CreateBookCmd{Title: title, Author: "Orwell", ISBN: "9780451524935"})
	require.NoError(t, err)
	return b
}

func (f *fixture) member(t *testing.T, email string) *domain.Member {
	t.Helper()
	m, err := f.members.Create(context.Background(), service.CreateMemberCmd{Name: "Ada Lovelace", Email: email, Phone: "555-0100"})
	require.NoError(t, err)
	return m
}

func strp(s string) *string { return &s }
func int64p(v int64) *int64 { return &v }

func hashOf(t *testing.T, pw string) string {
	t.Helper()
	h, err := utils.PasswordHasher{Iterations: 1000}.Hash(pw)
	require.NoError(t, err)
	return h
}
