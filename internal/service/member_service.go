package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"go-gin-gorm-library/internal/domain"
)

type CreateMemberCmd struct {
	Name  string
	Email string
	Phone string
}

type UpdateMemberCmd struct {
	Name  *string
	Email *string
	Phone *string
}

// MemberQuery 管理端检索：Q 对姓名/邮箱做不区分大小写的子串匹配
type MemberQuery struct {
	Q      string
	Offset int
	Limit  int
}

type MemberService struct {
	repos domain.Repositories
	log   *zap.Logger
}

func NewMemberService(repos domain.Repositories, l *zap.Logger) *MemberService {
	return &MemberService{repos: repos, log: orNop(l)}
}

func (s *MemberService) Create(ctx context.Context, cmd CreateMemberCmd) (*domain.Member, error) {
	m, err := domain.NewMember(cmd.Name, cmd.Email, cmd.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.requireFreeEmail(ctx, m.Email(), 0); err != nil {
		return nil, err
	}
	saved, err := s.repos.Members.Save(ctx, m)
	if err != nil {
		return nil, err
	}
	s.log.Info("member registered", zap.Int64("memberId", saved.ID()))
	return saved, nil
}

func (s *MemberService) List(ctx context.Context) ([]*domain.Member, error) {
	return s.repos.Members.FindAll(ctx)
}

// Search 返回匹配总数与当前页
func (s *MemberService) Search(ctx context.Context, q MemberQuery) ([]*domain.Member, int, error) {
	all, err := s.repos.Members.FindAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	needle := strings.ToLower(strings.TrimSpace(q.Q))
	hits := all[:0:0]
	for _, m := range all {
		if needle == "" ||
			strings.Contains(strings.ToLower(m.Name()), needle) ||
			strings.Contains(strings.ToLower(m.Email()), needle) {
			hits = append(hits, m)
		}
	}
	total := len(hits)
	if q.Offset > 0 {
		if q.Offset >= total {
			return []*domain.Member{}, total, nil
		}
		hits = hits[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(hits) {
		hits = hits[:q.Limit]
	}
	return hits, total, nil
}

func (s *MemberService) Get(ctx context.Context, id int64) (*domain.Member, error) {
	m, err := s.repos.Members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("Member", id)
	}
	return m, nil
}

func (s *MemberService) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	m, err := s.repos.Members.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFoundBy("Member", "email", email)
	}
	return m, nil
}

func (s *MemberService) Update(ctx context.Context, id int64, cmd UpdateMemberCmd) (*domain.Member, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := domain.RestoreMember(cur.ID(),
		pick(cmd.Name, cur.Name()),
		pick(cmd.Email, cur.Email()),
		pick(cmd.Phone, cur.Phone()),
	)
	if err != nil {
		return nil, err
	}
	if next.Email() != cur.Email() {
		if err := s.requireFreeEmail(ctx, next.Email(), cur.ID()); err != nil {
			return nil, err
		}
	}
	return s.repos.Members.Update(ctx, next)
}

func (s *MemberService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repos.Members.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("member deleted", zap.Int64("memberId", id))
	return nil
}

func (s *MemberService) requireFreeEmail(ctx context.Context, email string, self int64) error {
	ex, err := s.repos.Members.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if ex != nil && ex.ID() != self {
		return domain.Conflict("Member with this email already exists")
	}
	return nil
}
