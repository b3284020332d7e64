package service

import (
	"context"

	"go.uber.org/zap"

	"go-gin-gorm-library/internal/domain"
)

type LoanBookCmd struct {
	BookID   int64
	MemberID int64
}

// LoanFilter 优先级：ActiveOnly > BookID > MemberID > 全部
type LoanFilter struct {
	ActiveOnly bool
	BookID     *int64
	MemberID   *int64
}

type LoanService struct {
	repos domain.Repositories
	tx    domain.Transactor
	clock domain.Clock
	bus   domain.EventBus
	log   *zap.Logger
}

func NewLoanService(repos domain.Repositories, tx domain.Transactor, clock domain.Clock, bus domain.EventBus, l *zap.Logger) *LoanService {
	return &LoanService{repos: repos, tx: tx, clock: clock, bus: bus, log: orNop(l)}
}

// LoanBook 借出与图书状态变更在同一事务内，事件在提交后发布
func (s *LoanService) LoanBook(ctx context.Context, cmd LoanBookCmd) (*domain.Loan, error) {
	var saved *domain.Loan
	err := s.tx.WithinTx(ctx, func(ctx context.Context, r domain.Repositories) error {
		book, err := r.Books.FindByID(ctx, cmd.BookID)
		if err != nil {
			return err
		}
		if book == nil {
			return domain.NotFound("Book", cmd.BookID)
		}
		member, err := r.Members.FindByID(ctx, cmd.MemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return domain.NotFound("Member", cmd.MemberID)
		}
		if !book.Available() {
			return domain.Conflict("Book is not available for loan")
		}
		active, err := r.Loans.FindActiveByBookID(ctx, book.ID())
		if err != nil {
			return err
		}
		if active != nil {
			return domain.Conflict("Book already has an active loan")
		}

		now := s.clock.Now()
		loan, err := domain.NewLoan(book.ID(), member.ID(), now, now)
		if err != nil {
			return err
		}
		if saved, err = r.Loans.Save(ctx, loan); err != nil {
			return err
		}
		if err := book.MarkAsUnavailable(); err != nil {
			return err
		}
		_, err = r.Books.Update(ctx, book)
		return err
	})
	if err != nil {
		return nil, err
	}

	if saved.HasID() {
		s.bus.Publish(ctx, domain.LoanCreated{
			LoanID:   saved.ID(),
			BookID:   saved.BookID(),
			MemberID: saved.MemberID(),
			LoanDate: saved.LoanDate(),
		})
	}
	s.log.Info("loan created",
		zap.Int64("loanId", saved.ID()),
		zap.Int64("bookId", saved.BookID()),
		zap.Int64("memberId", saved.MemberID()),
	)
	return saved, nil
}

func (s *LoanService) ReturnBook(ctx context.Context, loanID int64) (*domain.Loan, error) {
	var updated *domain.Loan
	err := s.tx.WithinTx(ctx, func(ctx context.Context, r domain.Repositories) error {
		loan, err := r.Loans.FindByID(ctx, loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return domain.NotFound("Loan", loanID)
		}
		if loan.IsReturned() {
			return domain.Conflict("Loan has already been returned")
		}
		book, err := r.Books.FindByID(ctx, loan.BookID())
		if err != nil {
			return err
		}
		if book == nil {
			return domain.NotFound("Book", loan.BookID())
		}

		if err := loan.Return(s.clock.Now()); err != nil {
			return err
		}
		if updated, err = r.Loans.Update(ctx, loan); err != nil {
			return err
		}
		if err := book.MarkAsAvailable(); err != nil {
			return err
		}
		_, err = r.Books.Update(ctx, book)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, domain.LoanReturned{
		LoanID:     updated.ID(),
		BookID:     updated.BookID(),
		MemberID:   updated.MemberID(),
		ReturnDate: *updated.ReturnDate(),
	})
	s.log.Info("loan returned", zap.Int64("loanId", updated.ID()), zap.Int64("bookId", updated.BookID()))
	return updated, nil
}

func (s *LoanService) List(ctx context.Context, f LoanFilter) ([]*domain.Loan, error) {
	switch {
	case f.ActiveOnly:
		return s.repos.Loans.FindActive(ctx)
	case f.BookID != nil:
		return s.repos.Loans.FindByBookID(ctx, *f.BookID)
	case f.MemberID != nil:
		return s.repos.Loans.FindByMemberID(ctx, *f.MemberID)
	default:
		return s.repos.Loans.FindAll(ctx)
	}
}
