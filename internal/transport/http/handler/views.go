// Package handler HTTP 适配层：请求 DTO -> 用例命令，领域实体 -> JSON 视图
package handler

import (
	"time"

	"go-gin-gorm-library/internal/domain"
)

type bookView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Available bool   `json:"available"`
	LibraryID *int64 `json:"libraryId"`
}

func toBook(b *domain.Book) bookView {
	return bookView{
		ID:        b.ID(),
		Title:     b.Title(),
		Author:    b.Author(),
		ISBN:      b.ISBN(),
		Available: b.Available(),
		LibraryID: b.LibraryID(),
	}
}

func toBooks(bs []*domain.Book) []bookView {
	out := make([]bookView, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBook(b))
	}
	return out
}

type memberView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func toMember(m *domain.Member) memberView {
	return memberView{ID: m.ID(), Name: m.Name(), Email: m.Email(), Phone: m.Phone()}
}

func toMembers(ms []*domain.Member) []memberView {
	out := make([]memberView, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMember(m))
	}
	return out
}

type loanView struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"bookId"`
	MemberID   int64      `json:"memberId"`
	LoanDate   time.Time  `json:"loanDate"`
	ReturnDate *time.Time `json:"returnDate"`
}

func toLoan(l *domain.Loan) loanView {
	return loanView{
		ID:         l.ID(),
		BookID:     l.BookID(),
		MemberID:   l.MemberID(),
		LoanDate:   l.LoanDate(),
		ReturnDate: l.ReturnDate(),
	}
}

func toLoans(ls []*domain.Loan) []loanView {
	out := make([]loanView, 0, len(ls))
	for _, l := range ls {
		out = append(out, toLoan(l))
	}
	return out
}

type libraryView struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	OpeningHours string     `json:"openingHours"`
	Books        []bookView `json:"books"`
}

func toLibrary(l *domain.Library) libraryView {
	return libraryView{
		ID:           l.ID(),
		Name:         l.Name(),
		Address:      l.Address(),
		OpeningHours: l.OpeningHours(),
		Books:        toBooks(l.Books()),
	}
}

type accountView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
