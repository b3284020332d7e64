package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-library/internal/domain"
	"go-gin-gorm-library/internal/service"
)

func TestCreateMemberDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.member(t, "a@b.com")

	_, err := f.members.Create(ctx, service.CreateMemberCmd{Name: "Other", Email: "a@b.com", Phone: "555-0101"})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Member with this email already exists")
}

func TestCreateMemberValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cases := []struct {
		name string
		cmd  service.CreateMemberCmd
		msg  string
	}{
		{"bad email", service.CreateMemberCmd{Name: "A", Email: "nope", Phone: "555-0100"}, "Invalid email format"},
		{"bad phone", service.CreateMemberCmd{Name: "A", Email: "a@b.com", Phone: "abc"}, "Invalid phone format"},
		{"no name", service.CreateMemberCmd{Name: "", Email: "a@b.com", Phone: "555-0100"}, "Member name cannot be empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.members.Create(ctx, tc.cmd)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualError(t, err, tc.msg)
		})
	}
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.member(t, "a@b.com")
	f.member(t, "c@d.com")

	got, err := f.members.Update(ctx, a.ID(), service.UpdateMemberCmd{Phone: strp("+44 20 7946 0000")})
	require.NoError(t, err)
	assert.Equal(t, "+44 20 7946 0000", got.Phone())
	assert.Equal(t, "a@b.com", got.Email())
	assert.Equal(t, "Ada Lovelace", got.Name())

	_, err = f.members.Update(ctx, a.ID(), service.UpdateMemberCmd{Email: strp("c@d.com")})
	require.ErrorIs(t, err, domain.ErrConflict)

	same, err := f.members.Update(ctx, a.ID(), service.UpdateMemberCmd{Email: strp("a@b.com")})
	require.NoError(t, err)
	assert.Equal(t, a.ID(), same.ID())

	_, err = f.members.Update(ctx, 999, service.UpdateMemberCmd{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetAndDeleteMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.member(t, "a@b.com")

	byEmail, err := f.members.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID(), byEmail.ID())

	_, err = f.members.FindByEmail(ctx, "x@y.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Member with email x@y.com not found")

	require.NoError(t, f.members.Delete(ctx, a.ID()))
	_, err = f.members.Get(ctx, a.ID())
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, f.members.Delete(ctx, a.ID()), domain.ErrNotFound)

	all, err := f.members.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSearchMembers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.member(t, "ada@lib.org")
	f.member(t, "grace@lib.org")
	f.member(t, "alan@other.net")

	got, total, err := f.members.Search(ctx, service.MemberQuery{Q: "LIB.ORG"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, got, 2)

	got, total, err = f.members.Search(ctx, service.MemberQuery{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "grace@lib.org", got[0].Email())

	got, total, err = f.members.Search(ctx, service.MemberQuery{Offset: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, got)
}
