package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-gorm-library/internal/domain"
)

var errActiveLoanExists = domain.Conflict("Book already has an active loan")

// LoanRepo 读出时需要当前时间校验借出日期
type LoanRepo struct {
	db    *gorm.DB
	clock domain.Clock
}

func NewLoanRepo(db *gorm.DB, clock domain.Clock) *LoanRepo { return &LoanRepo{db: db, clock: clock} }

func (r *LoanRepo) toLoan(m LoanModel) (*domain.Loan, error) {
	return domain.RestoreLoan(m.ID, m.BookID, m.MemberID, m.LoanDate, m.ReturnDate, r.clock.Now())
}

func (r *LoanRepo) Save(ctx context.Context, l *domain.Loan) (*domain.Loan, error) {
	m := LoanModel{BookID: l.BookID(), MemberID: l.MemberID(), LoanDate: l.LoanDate(), ReturnDate: l.ReturnDate()}
	if err := r.db.WithContext(ctx).Omit("Book", "Member").Create(&m).Error; err != nil {
		if isDupKey(err) {
			return nil, errActiveLoanExists
		}
		return nil, err
	}
	return r.toLoan(m)
}

func (r *LoanRepo) FindByID(ctx context.Context, id int64) (*domain.Loan, error) {
	var m LoanModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toLoan(m)
}

func (r *LoanRepo) find(ctx context.Context, query string, args ...any) ([]*domain.Loan, error) {
	var ms []LoanModel
	tx := r.db.WithContext(ctx)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Order("loan_date desc, id asc").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Loan, 0, len(ms))
	for _, m := range ms {
		l, err := r.toLoan(m)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *LoanRepo) FindAll(ctx context.Context) ([]*domain.Loan, error) { return r.find(ctx, "") }

func (r *LoanRepo) FindByBookID(ctx context.Context, bookID int64) ([]*domain.Loan, error) {
	return r.find(ctx, "book_id = ?", bookID)
}

func (r *LoanRepo) FindByMemberID(ctx context.Context, memberID int64) ([]*domain.Loan, error) {
	return r.find(ctx, "member_id = ?", memberID)
}

func (r *LoanRepo) FindActive(ctx context.Context) ([]*domain.Loan, error) {
	return r.find(ctx, "return_date IS NULL")
}

func (r *LoanRepo) FindActiveByBookID(ctx context.Context, bookID int64) (*domain.Loan, error) {
	var m LoanModel
	err := r.db.WithContext(ctx).Where("book_id = ? AND return_date IS NULL", bookID).First(&m).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.toLoan(m)
}

func (r *LoanRepo) Update(ctx context.Context, l *domain.Loan) (*domain.Loan, error) {
	if !l.HasID() {
		return nil, errNoID
	}
	db := r.db.WithContext(ctx)
	var m LoanModel
	err := db.First(&m, "id = ?", l.ID()).Error
	if notFound(err) {
		return nil, domain.NotFound("Loan", l.ID())
	}
	if err != nil {
		return nil, err
	}
	m.BookID, m.MemberID, m.LoanDate, m.ReturnDate = l.BookID(), l.MemberID(), l.LoanDate(), l.ReturnDate()
	if err := db.Omit("Book", "Member").Save(&m).Error; err != nil {
		if isDupKey(err) {
			return nil, errActiveLoanExists
		}
		return nil, err
	}
	return r.toLoan(m)
}

func (r *LoanRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&LoanModel{}, "id = ?", id).Error
}
