package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-library/internal/domain"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewLoan(t *testing.T) {
	l, err := domain.NewLoan(1, 2, now, now)
	require.NoError(t, err)
	assert.False(t, l.IsReturned())
	assert.Nil(t, l.ReturnDate())

	cases := []struct {
		name     string
		bookID   int64
		memberID int64
		loanDate time.Time
		msg      string
	}{
		{"zero book", 0, 2, now, "Book ID must be a positive number"},
		{"negative member", 1, -1, now, "Member ID must be a positive number"},
		{"missing date", 1, 2, time.Time{}, "Loan date is required"},
		{"future date", 1, 2, now.Add(time.Second), "Loan date cannot be in the future"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.NewLoan(tc.bookID, tc.memberID, tc.loanDate, now)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualError(t, err, tc.msg)
		})
	}
}

func TestRestoreLoan(t *testing.T) {
	rd := now.Add(-time.Hour)
	ld := now.Add(-2 * time.Hour)

	l, err := domain.RestoreLoan(5, 1, 2, ld, &rd, now)
	require.NoError(t, err)
	assert.True(t, l.IsReturned())
	assert.Equal(t, rd, *l.ReturnDate())

	early := ld.Add(-time.Minute)
	_, err = domain.RestoreLoan(5, 1, 2, ld, &early, now)
	assert.EqualError(t, err, "Return date cannot be before loan date")

	zero := time.Time{}
	_, err = domain.RestoreLoan(5, 1, 2, ld, &zero, now)
	assert.EqualError(t, err, "Return date is required")
}

func TestLoanReturn(t *testing.T) {
	ld := now.Add(-24 * time.Hour)
	l, err := domain.NewLoan(1, 2, ld, now)
	require.NoError(t, err)

	err = l.Return(ld.Add(-time.Second))
	assert.EqualError(t, err, "Return date cannot be before loan date")
	assert.False(t, l.IsReturned())

	require.NoError(t, l.Return(ld))
	assert.True(t, l.IsReturned())
	assert.Equal(t, ld, *l.ReturnDate())

	err = l.Return(now)
	assert.EqualError(t, err, "Book has already been returned")
	assert.Equal(t, ld, *l.ReturnDate())
}

func TestErrorKinds(t *testing.T) {
	err := domain.NotFound("Book", 42)
	assert.EqualError(t, err, "Book with id 42 not found")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	wrapped := fmt.Errorf("loan book: %w", domain.Conflict("Book is not available for loan"))
	assert.ErrorIs(t, wrapped, domain.ErrConflict)
	assert.Equal(t, domain.KindConflict, domain.KindOf(wrapped))

	assert.Equal(t, domain.KindUnknown, domain.KindOf(errors.New("boom")))
	assert.EqualError(t, domain.Unauthorized(), "Invalid credentials")
	assert.ErrorIs(t, domain.Unauthorized(), domain.ErrUnauthorized)
}

func TestLoanEvents(t *testing.T) {
	c := domain.LoanCreated{LoanID: 1, BookID: 2, MemberID: 3, LoanDate: now}
	assert.Equal(t, "loan.created", c.EventName())
	assert.Equal(t, now, c.OccurredAt())

	r := domain.LoanReturned{LoanID: 1, BookID: 2, MemberID: 3, ReturnDate: now}
	assert.Equal(t, "loan.returned", r.EventName())
	assert.Equal(t, now, r.OccurredAt())
}
