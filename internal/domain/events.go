package domain

import "time"

const (
	EventLoanCreated  = "loan.created"
	EventLoanReturned = "loan.returned"
)

// Event 已完成状态变更的不可变记录
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

type LoanCreated struct {
	LoanID   int64     `json:"loanId"`
	BookID   int64     `json:"bookId"`
	MemberID int64     `json:"memberId"`
	LoanDate time.Time `json:"loanDate"`
}

func (LoanCreated) EventName() string       { return EventLoanCreated }
func (e LoanCreated) OccurredAt() time.Time { return e.LoanDate }

type LoanReturned struct {
	LoanID     int64     `json:"loanId"`
	BookID     int64     `json:"bookId"`
	MemberID   int64     `json:"memberId"`
	ReturnDate time.Time `json:"returnDate"`
}

func (LoanReturned) EventName() string       { return EventLoanReturned }
func (e LoanReturned) OccurredAt() time.Time { return e.ReturnDate }
