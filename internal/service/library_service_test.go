package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-library/internal/domain"
	"go-gin-gorm-library/internal/service"
)

func TestLibraryIncludesBooks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	lib, err := f.libs.Create(ctx, service.CreateLibraryCmd{Name: "Central", Address: "1 Main St", OpeningHours: "Mon-Fri 9-17"})
	require.NoError(t, err)
	_, err = f.books.Create(ctx, service.CreateBookCmd{Title: "Dune", Author: "Herbert", ISBN: "0441013597", LibraryID: int64p(lib.ID())})
	require.NoError(t, err)
	f.book(t, "Unshelved")

	got, err := f.libs.Get(ctx, lib.ID())
	require.NoError(t, err)
	require.Len(t, got.Books(), 1)
	assert.Equal(t, "Dune", got.Books()[0].Title())

	all, err := f.libs.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Books(), 1)

	_, err = f.libs.Get(ctx, 99)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.libs.Create(ctx, service.CreateLibraryCmd{Name: "X", Address: "", OpeningHours: "9-17"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "Library address cannot be empty")
}
