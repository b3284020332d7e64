package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-library/internal/domain"
	"go-gin-gorm-library/internal/repo/memory"
	"go-gin-gorm-library/internal/service"
)

func TestLoanAndReturnLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	book := f.book(t, "1984")
	member := f.member(t, "a@b.com")
	assert.True(t, book.Available())

	f.bus.On("Publish", mock.Anything, mock.AnythingOfType("domain.LoanCreated")).Once()
	loan, err := f.loans.LoanBook(ctx, service.LoanBookCmd{BookID: book.ID(), MemberID: member.ID()})
	require.NoError(t, err)
	assert.False(t, loan.IsReturned())
	assert.Equal(t, start, loan.LoanDate())
	f.bus.AssertCalled(t, "Publish", mock.Anything, domain.LoanCreated{
		LoanID: loan.ID(), BookID: book.ID(), MemberID: member.ID(), LoanDate: start,
	})

	got, err := f.books.Get(ctx, book.ID())
	require.NoError(t, err)
	assert.False(t, got.Available())

	f.clock.Advance(48 * time.Hour)
	returnedAt := start.Add(48 * time.Hour)
	f.bus.On("Publish", mock.Anything, mock.AnythingOfType("domain.LoanReturned")).Once()
	returned, err := f.loans.ReturnBook(ctx, loan.ID())
	require.NoError(t, err)
	assert.True(t, returned.IsReturned())
	require.NotNil(t, returned.ReturnDate())
	assert.Equal(t, returnedAt, *returned.ReturnDate())
	f.bus.AssertCalled(t, "Publish", mock.Anything, domain.LoanReturned{
		LoanID: loan.ID(), BookID: book.ID(), MemberID: member.ID(), ReturnDate: returnedAt,
	})

	got, err = f.books.Get(ctx, book.ID())
	require.NoError(t, err)
	assert.True(t, got.Available())
	f.bus.AssertNumberOfCalls(t, "Publish", 2)
}

func TestLoanBookUnavailableConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	book := f.book(t, "1984")
	member := f.member(t, "a@b.com")

	require.NoError(t, book.MarkAsUnavailable())
	_, err := f.store.Repositories().Books.Update(ctx, book)
	require.NoError(t, err)

	_, err = f.loans.LoanBook(ctx, service.LoanBookCmd{BookID: book.ID(), MemberID: member.ID()})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Book is not available for loan")
	f.bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestLoanBookNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	book := f.book(t, "1984")
	member := f.member(t, "a@b.com")

	_, err := f.loans.LoanBook(ctx, service.LoanBookCmd{BookID: 999, MemberID: member.ID()})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Book with id 999 not found")

	_, err = f.loans.LoanBook(ctx, service.LoanBookCmd{BookID: book.ID(), MemberID: 999})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Member with id 999 not found")
}

func TestLoanBookActiveLoanConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	book := f.book(t, "1984")
	member := f.member(t, "a@b.com")

	// 图书仍标记可借，但已有在借记录
	l, err := domain.NewLoan(book.ID(), member.ID(), start, start)
	require.NoError(t, err)
	_, err = f.store.Repositories().Loans.Save(ctx, l)
	require.NoError(t, err)

	_, err = f.loans.LoanBook(ctx, service.LoanBookCmd{BookID: book.ID(), MemberID: member.ID()})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Book already has an active loan")
}

type failingBooks struct{ domain.BookRepository }

func (failingBooks) Update(context.Context, *domain.Book) (*domain.Book, error) { return nil, errBoom }

type failingBookTx struct{ s *memory.Store }

func (w failingBookTx) WithinTx(ctx context.Context, fn func(context.Context, domain.Repositories) error) error {
	return w.s.WithinTx(ctx, func(ctx context.Context, r domain.Repositories) error {
		r.Books = failingBooks{r.Books}
		return fn(ctx, r)
	})
}

func TestLoanBookRollsBackOnBookUpdateFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	book := f.book(t, "1984")
	member := f.member(t, "a@b.com")

	svc := service.NewLoanService(f.store.Repositories(), failingBookTx{f.store}, f.clock, f.bus, nil)
	_, err := svc.LoanBook(ctx, service.LoanBookCmd{BookID: book.ID(), MemberID: member.ID()})
	require.ErrorIs(t, err, errBoom)

	loans, err := f.loans.List(ctx, service.LoanFilter{})
	require.NoError(t, err)
	assert.Empty(t, loans)
	f.bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestReturnBookTwiceConflictsWithoutWrites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	book := f.book(t, "1984")
	member := f.member(t, "a@b.com")
	f.bus.On("Publish", mock.Anything, mock.Anything)

	loan, err := f.loans.LoanBook(ctx, service.LoanBookCmd{BookID: book.ID(), MemberID: member.ID()})
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	first, err := f.loans.ReturnBook(ctx, loan.ID())
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	_, err = f.loans.ReturnBook(ctx, loan.ID())
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Loan has already been returned")

	stored, err := f.store.Repositories().Loans.FindByID(ctx, loan.ID())
	require.NoError(t, err)
	assert.Equal(t, *first.ReturnDate(), *stored.ReturnDate())
	got, err := f.books.Get(ctx, book.ID())
	require.NoError(t, err)
	assert.True(t, got.Available())
	f.bus.AssertNumberOfCalls(t, "Publish", 2)
}

func TestReturnBookMissingLoan(t *testing.T) {
	f := newFixture(t)
	_, err := f.loans.ReturnBook(context.Background(), 77)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Loan with id 77 not found")
}

func TestListLoansPrecedence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.bus.On("Publish", mock.Anything, mock.Anything)
	b1, b2 := f.book(t, "1984"), f.book(t, "Animal Farm")
	m1, m2 := f.member(t, "a@b.com"), f.member(t, "c@d.com")

	l1, err := f.loans.LoanBook(ctx, service.LoanBookCmd{BookID: b1.ID(), MemberID: m1.ID()})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.loans.LoanBook(ctx, service.LoanBookCmd{BookID: b2.ID(), MemberID: m2.ID()})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.loans.ReturnBook(ctx, l1.ID())
	require.NoError(t, err)

	cases := []struct {
		name   string
		filter service.LoanFilter
		want   int
		member int64
	}{
		{"all", service.LoanFilter{}, 2, 0},
		{"active wins over book", service.LoanFilter{ActiveOnly: true, BookID: int64p(b1.ID())}, 1, m2.ID()},
		{"book wins over member", service.LoanFilter{BookID: int64p(b1.ID()), MemberID: int64p(m2.ID())}, 1, m1.ID()},
		{"member", service.LoanFilter{MemberID: int64p(m2.ID())}, 1, m2.ID()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.loans.List(ctx, tc.filter)
			require.NoError(t, err)
			require.Len(t, got, tc.want)
			if tc.member != 0 {
				assert.Equal(t, tc.member, got[0].MemberID())
			}
		})
	}
}
