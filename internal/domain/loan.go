package domain

import (
	"context"
	"time"
)

// Loan 借阅记录；returnDate 为空即为在借
type Loan struct {
	id         int64
	bookID     int64
	memberID   int64
	loanDate   time.Time
	returnDate *time.Time
}

// NewLoan now 由调用方的时钟提供，用于判断借出日期是否在未来
func NewLoan(bookID, memberID int64, loanDate, now time.Time) (*Loan, error) {
	return buildLoan(0, bookID, memberID, loanDate, nil, now)
}

func RestoreLoan(id, bookID, memberID int64, loanDate time.Time, returnDate *time.Time, now time.Time) (*Loan, error) {
	return buildLoan(id, bookID, memberID, loanDate, returnDate, now)
}

func buildLoan(id, bookID, memberID int64, loanDate time.Time, returnDate *time.Time, now time.Time) (*Loan, error) {
	if err := requirePositive("Book ID must be a positive number", bookID); err != nil {
		return nil, err
	}
	if err := requirePositive("Member ID must be a positive number", memberID); err != nil {
		return nil, err
	}
	if loanDate.IsZero() {
		return nil, Validation("Loan date is required")
	}
	if loanDate.After(now) {
		return nil, Validation("Loan date cannot be in the future")
	}
	l := &Loan{id: id, bookID: bookID, memberID: memberID, loanDate: loanDate}
	if returnDate != nil {
		if err := l.validateReturnDate(*returnDate); err != nil {
			return nil, err
		}
		rd := *returnDate
		l.returnDate = &rd
	}
	return l, nil
}

func (l *Loan) ID() int64           { return l.id }
func (l *Loan) HasID() bool         { return l.id > 0 }
func (l *Loan) BookID() int64       { return l.bookID }
func (l *Loan) MemberID() int64     { return l.memberID }
func (l *Loan) LoanDate() time.Time { return l.loanDate }
func (l *Loan) IsReturned() bool    { return l.returnDate != nil }

func (l *Loan) ReturnDate() *time.Time {
	if l.returnDate == nil {
		return nil
	}
	rd := *l.returnDate
	return &rd
}

// Return 归还；已归还或归还日期早于借出日期都会失败
func (l *Loan) Return(returnDate time.Time) error {
	if l.IsReturned() {
		return Validation("Book has already been returned")
	}
	if err := l.validateReturnDate(returnDate); err != nil {
		return err
	}
	l.returnDate = &returnDate
	return nil
}

func (l *Loan) validateReturnDate(rd time.Time) error {
	if rd.IsZero() {
		return Validation("Return date is required")
	}
	if rd.Before(l.loanDate) {
		return Validation("Return date cannot be before loan date")
	}
	return nil
}

type LoanRepository interface {
	Save(ctx context.Context, l *Loan) (*Loan, error)
	FindByID(ctx context.Context, id int64) (*Loan, error)
	FindAll(ctx context.Context) ([]*Loan, error)
	FindByBookID(ctx context.Context, bookID int64) ([]*Loan, error)
	FindByMemberID(ctx context.Context, memberID int64) ([]*Loan, error)
	FindActive(ctx context.Context) ([]*Loan, error)
	FindActiveByBookID(ctx context.Context, bookID int64) (*Loan, error)
	Update(ctx context.Context, l *Loan) (*Loan, error)
	Delete(ctx context.Context, id int64) error
}
