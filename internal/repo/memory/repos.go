package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go-gin-gorm-library/internal/domain"
)

var errNoID = errors.New("entity has no id")

/* ---------- books ---------- */

type BookRepo struct{ s *Store }

func toBook(r bookRec) (*domain.Book, error) {
	return domain.RestoreBook(r.ID, r.Title, r.Author, r.ISBN, r.Available, r.LibraryID)
}

func bookRecOf(id int64, b *domain.Book) bookRec {
	return bookRec{ID: id, Title: b.Title(), Author: b.Author(), ISBN: b.ISBN(), Available: b.Available(), LibraryID: b.LibraryID()}
}

func (r *BookRepo) Save(_ context.Context, b *domain.Book) (*domain.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec := bookRecOf(r.s.nextID(), b)
	r.s.st.books[rec.ID] = rec
	return toBook(rec)
}

func (r *BookRepo) FindByID(_ context.Context, id int64) (*domain.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.st.books[id]
	if !ok {
		return nil, nil
	}
	return toBook(rec)
}

func (r *BookRepo) filter(keep func(bookRec) bool) ([]*domain.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.Book{}
	for _, id := range sortedKeys(r.s.st.books) {
		rec := r.s.st.books[id]
		if !keep(rec) {
			continue
		}
		b, err := toBook(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func byTitle(books []*domain.Book) []*domain.Book {
	sort.SliceStable(books, func(i, j int) bool { return books[i].Title() < books[j].Title() })
	return books
}

func (r *BookRepo) FindAll(_ context.Context) ([]*domain.Book, error) {
	out, err := r.filter(func(bookRec) bool { return true })
	return byTitle(out), err
}

func (r *BookRepo) FindByTitle(_ context.Context, title string) ([]*domain.Book, error) {
	q := strings.ToLower(title)
	out, err := r.filter(func(b bookRec) bool { return strings.Contains(strings.ToLower(b.Title), q) })
	return byTitle(out), err
}

func (r *BookRepo) FindByAuthor(_ context.Context, author string) ([]*domain.Book, error) {
	q := strings.ToLower(author)
	out, err := r.filter(func(b bookRec) bool { return strings.Contains(strings.ToLower(b.Author), q) })
	return byTitle(out), err
}

func (r *BookRepo) FindByLibraryID(_ context.Context, libraryID int64) ([]*domain.Book, error) {
	out, err := r.filter(func(b bookRec) bool { return b.LibraryID != nil && *b.LibraryID == libraryID })
	return byTitle(out), err
}

func (r *BookRepo) Update(_ context.Context, b *domain.Book) (*domain.Book, error) {
	if !b.HasID() {
		return nil, errNoID
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.books[b.ID()]; !ok {
		return nil, domain.NotFound("Book", b.ID())
	}
	rec := bookRecOf(b.ID(), b)
	r.s.st.books[rec.ID] = rec
	return toBook(rec)
}

// Delete 级联删除该书的借阅记录，与数据库外键行为一致
func (r *BookRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.books, id)
	for lid, l := range r.s.st.loans {
		if l.BookID == id {
			delete(r.s.st.loans, lid)
		}
	}
	return nil
}

/* ---------- members ---------- */

type MemberRepo struct{ s *Store }

func toMember(r memberRec) (*domain.Member, error) {
	return domain.RestoreMember(r.ID, r.Name, r.Email, r.Phone)
}

func (r *MemberRepo) emailTaken(email string, except int64) bool {
	for _, m := range r.s.st.members {
		if m.ID != except && m.Email == email {
			return true
		}
	}
	return false
}

func (r *MemberRepo) Save(_ context.Context, m *domain.Member) (*domain.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(m.Email(), 0) {
		return nil, domain.Conflict("Member with this email already exists")
	}
	rec := memberRec{ID: r.s.nextID(), Name: m.Name(), Email: m.Email(), Phone: m.Phone()}
	r.s.st.members[rec.ID] = rec
	return toMember(rec)
}

func (r *MemberRepo) FindByID(_ context.Context, id int64) (*domain.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.st.members[id]
	if !ok {
		return nil, nil
	}
	return toMember(rec)
}

func (r *MemberRepo) FindAll(_ context.Context) ([]*domain.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.Member{}
	for _, id := range sortedKeys(r.s.st.members) {
		m, err := toMember(r.s.st.members[id])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MemberRepo) FindByEmail(_ context.Context, email string) (*domain.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range sortedKeys(r.s.st.members) {
		rec := r.s.st.members[id]
		if rec.Email == email {
			return toMember(rec)
		}
	}
	return nil, nil
}

func (r *MemberRepo) Update(_ context.Context, m *domain.Member) (*domain.Member, error) {
	if !m.HasID() {
		return nil, errNoID
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.members[m.ID()]; !ok {
		return nil, domain.NotFound("Member", m.ID())
	}
	if r.emailTaken(m.Email(), m.ID()) {
		return nil, domain.Conflict("Member with this email already exists")
	}
	rec := memberRec{ID: m.ID(), Name: m.Name(), Email: m.Email(), Phone: m.Phone()}
	r.s.st.members[rec.ID] = rec
	return toMember(rec)
}

func (r *MemberRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.members, id)
	for lid, l := range r.s.st.loans {
		if l.MemberID == id {
			delete(r.s.st.loans, lid)
		}
	}
	return nil
}

/* ---------- loans ---------- */

type LoanRepo struct{ s *Store }

func (r *LoanRepo) toLoan(rec loanRec) (*domain.Loan, error) {
	return domain.RestoreLoan(rec.ID, rec.BookID, rec.MemberID, rec.LoanDate, rec.ReturnDate, r.s.clock.Now())
}

func loanRecOf(id int64, l *domain.Loan) loanRec {
	return loanRec{ID: id, BookID: l.BookID(), MemberID: l.MemberID(), LoanDate: l.LoanDate(), ReturnDate: l.ReturnDate()}
}

// activeTaken 模拟 loans(book_id) WHERE return_date IS NULL 的唯一约束
func (r *LoanRepo) activeTaken(rec loanRec) bool {
	if rec.ReturnDate != nil {
		return false
	}
	for _, l := range r.s.st.loans {
		if l.ID != rec.ID && l.BookID == rec.BookID && l.ReturnDate == nil {
			return true
		}
	}
	return false
}

func (r *LoanRepo) Save(_ context.Context, l *domain.Loan) (*domain.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec := loanRecOf(0, l)
	if r.activeTaken(rec) {
		return nil, domain.Conflict("Book already has an active loan")
	}
	rec.ID = r.s.nextID()
	r.s.st.loans[rec.ID] = rec
	return r.toLoan(rec)
}

func (r *LoanRepo) FindByID(_ context.Context, id int64) (*domain.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.st.loans[id]
	if !ok {
		return nil, nil
	}
	return r.toLoan(rec)
}

func (r *LoanRepo) filter(keep func(loanRec) bool) ([]*domain.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.Loan{}
	for _, id := range sortedKeys(r.s.st.loans) {
		rec := r.s.st.loans[id]
		if !keep(rec) {
			continue
		}
		l, err := r.toLoan(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	// 与 gorm 版一致：按借出时间倒序
	sort.SliceStable(out, func(i, j int) bool { return out[i].LoanDate().After(out[j].LoanDate()) })
	return out, nil
}

func (r *LoanRepo) FindAll(_ context.Context) ([]*domain.Loan, error) {
	return r.filter(func(loanRec) bool { return true })
}

func (r *LoanRepo) FindByBookID(_ context.Context, bookID int64) ([]*domain.Loan, error) {
	return r.filter(func(l loanRec) bool { return l.BookID == bookID })
}

func (r *LoanRepo) FindByMemberID(_ context.Context, memberID int64) ([]*domain.Loan, error) {
	return r.filter(func(l loanRec) bool { return l.MemberID == memberID })
}

func (r *LoanRepo) FindActive(_ context.Context) ([]*domain.Loan, error) {
	return r.filter(func(l loanRec) bool { return l.ReturnDate == nil })
}

func (r *LoanRepo) FindActiveByBookID(ctx context.Context, bookID int64) (*domain.Loan, error) {
	ls, err := r.filter(func(l loanRec) bool { return l.BookID == bookID && l.ReturnDate == nil })
	if err != nil || len(ls) == 0 {
		return nil, err
	}
	return ls[0], nil
}

func (r *LoanRepo) Update(_ context.Context, l *domain.Loan) (*domain.Loan, error) {
	if !l.HasID() {
		return nil, errNoID
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.loans[l.ID()]; !ok {
		return nil, domain.NotFound("Loan", l.ID())
	}
	rec := loanRecOf(l.ID(), l)
	if r.activeTaken(rec) {
		return nil, domain.Conflict("Book already has an active loan")
	}
	r.s.st.loans[rec.ID] = rec
	return r.toLoan(rec)
}

func (r *LoanRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.loans, id)
	return nil
}

/* ---------- libraries ---------- */

type LibraryRepo struct{ s *Store }

func (r *LibraryRepo) toLibrary(rec libraryRec, withBooks bool) (*domain.Library, error) {
	var books []*domain.Book
	if withBooks {
		for _, id := range sortedKeys(r.s.st.books) {
			b := r.s.st.books[id]
			if b.LibraryID == nil || *b.LibraryID != rec.ID {
				continue
			}
			book, err := toBook(b)
			if err != nil {
				return nil, err
			}
			books = append(books, book)
		}
		books = byTitle(books)
	}
	return domain.RestoreLibrary(rec.ID, rec.Name, rec.Address, rec.OpeningHours, books)
}

func (r *LibraryRepo) Save(_ context.Context, l *domain.Library) (*domain.Library, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec := libraryRec{ID: r.s.nextID(), Name: l.Name(), Address: l.Address(), OpeningHours: l.OpeningHours()}
	r.s.st.libraries[rec.ID] = rec
	return r.toLibrary(rec, false)
}

func (r *LibraryRepo) FindByID(_ context.Context, id int64, q domain.LibraryQuery) (*domain.Library, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.st.libraries[id]
	if !ok {
		return nil, nil
	}
	return r.toLibrary(rec, q.IncludeBooks)
}

func (r *LibraryRepo) FindAll(_ context.Context, q domain.LibraryQuery) ([]*domain.Library, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.Library{}
	for _, id := range sortedKeys(r.s.st.libraries) {
		l, err := r.toLibrary(r.s.st.libraries[id], q.IncludeBooks)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

/* ---------- auth accounts ---------- */

type AuthAccountRepo struct{ s *Store }

func (r *AuthAccountRepo) FindByEmail(_ context.Context, email string) (*domain.AuthAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range sortedKeys(r.s.st.accounts) {
		a := r.s.st.accounts[id]
		if a.Email == email {
			return domain.RestoreAuthAccount(a.ID, a.Email, a.PasswordHash)
		}
	}
	return nil, nil
}

func (r *AuthAccountRepo) Save(_ context.Context, a *domain.AuthAccount) (*domain.AuthAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.st.accounts {
		if ex.Email == a.Email() {
			return nil, domain.Conflict("Auth account with this email already exists")
		}
	}
	rec := accountRec{ID: r.s.nextID(), Email: a.Email(), PasswordHash: a.PasswordHash()}
	r.s.st.accounts[rec.ID] = rec
	return domain.RestoreAuthAccount(rec.ID, rec.Email, rec.PasswordHash)
}
