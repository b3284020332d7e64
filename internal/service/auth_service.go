package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"go-gin-gorm-library/internal/core/auth"
	"go-gin-gorm-library/internal/domain"
)

const TokenTypeBearer = "Bearer"

type LoginCmd struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // 秒
}

type RegisterAccountCmd struct {
	Email    string
	Password string
}

// SeedAccountCmd 启动时或命令行确保一个可登录账号（含会员档案）
type SeedAccountCmd struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type SeedResult struct {
	MemberCreated  bool
	AccountCreated bool
}

type AuthService struct {
	repos  domain.Repositories
	tx     domain.Transactor
	hasher domain.Hasher
	tokens domain.TokenIssuer
	clock  domain.Clock
	admins map[string]struct{}
	log    *zap.Logger
}

func NewAuthService(
	repos domain.Repositories,
	tx domain.Transactor,
	hasher domain.Hasher,
	tokens domain.TokenIssuer,
	clock domain.Clock,
	adminEmails []string,
	l *zap.Logger,
) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.TrimSpace(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &AuthService{repos: repos, tx: tx, hasher: hasher, tokens: tokens, clock: clock, admins: admins, log: orNop(l)}
}

// Login 凭证类失败一律返回 Unauthorized；存储或签名故障原样上抛
func (s *AuthService) Login(ctx context.Context, cmd LoginCmd) (*LoginResult, error) {
	email := strings.TrimSpace(cmd.Email)
	acct, err := s.repos.AuthAccounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acct == nil || !s.hasher.Compare(cmd.Password, acct.PasswordHash()) {
		s.log.Info("login rejected", zap.String("email", email))
		return nil, domain.Unauthorized()
	}
	member, err := s.repos.Members.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if member == nil || !member.HasID() {
		s.log.Info("login rejected: no member profile", zap.String("email", email))
		return nil, domain.Unauthorized()
	}

	tok, err := s.tokens.Issue(domain.TokenClaims{
		Subject: strconv.FormatInt(member.ID(), 10),
		Email:   member.Email(),
		Name:    member.Name(),
		Role:    s.RoleOf(member.Email()),
	})
	if err != nil {
		return nil, err
	}
	exp, err := s.tokens.ExpiresAt(tok)
	if err != nil {
		return nil, err
	}
	secs := int64(exp.Sub(s.clock.Now()).Seconds())
	if secs < 0 {
		secs = 0
	}
	return &LoginResult{AccessToken: tok, TokenType: TokenTypeBearer, ExpiresIn: secs}, nil
}

func (s *AuthService) RoleOf(email string) string {
	if _, ok := s.admins[email]; ok {
		return auth.RoleAdmin
	}
	return auth.RoleMember
}

// Register 为已存在的会员开通登录凭证
func (s *AuthService) Register(ctx context.Context, cmd RegisterAccountCmd) (*domain.AuthAccount, error) {
	email := strings.TrimSpace(cmd.Email)
	var saved *domain.AuthAccount
	err := s.tx.WithinTx(ctx, func(ctx context.Context, r domain.Repositories) error {
		member, err := r.Members.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if member == nil {
			return domain.NotFoundBy("Member", "email", email)
		}
		ex, err := r.AuthAccounts.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if ex != nil {
			return domain.Conflict("Auth account with this email already exists")
		}
		saved, err = s.newAccount(ctx, r, email, cmd.Password)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("auth account registered", zap.Int64("accountId", saved.ID()))
	return saved, nil
}

// Seed 幂等：已存在的会员和账号保持不变
func (s *AuthService) Seed(ctx context.Context, cmd SeedAccountCmd) (SeedResult, error) {
	var res SeedResult
	email := strings.TrimSpace(cmd.Email)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, r domain.Repositories) error {
		member, err := r.Members.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if member == nil {
			m, err := domain.NewMember(cmd.Name, email, cmd.Phone)
			if err != nil {
				return err
			}
			if _, err := r.Members.Save(ctx, m); err != nil {
				return err
			}
			res.MemberCreated = true
		}
		ex, err := r.AuthAccounts.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if ex != nil {
			return nil
		}
		if _, err := s.newAccount(ctx, r, email, cmd.Password); err != nil {
			return err
		}
		res.AccountCreated = true
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	s.log.Info("auth account seeded",
		zap.String("email", email),
		zap.Bool("memberCreated", res.MemberCreated),
		zap.Bool("accountCreated", res.AccountCreated),
	)
	return res, nil
}

func (s *AuthService) newAccount(ctx context.Context, r domain.Repositories, email, password string) (*domain.AuthAccount, error) {
	if strings.TrimSpace(password) == "" {
		return nil, domain.Validation("Password cannot be empty")
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	acct, err := domain.NewAuthAccount(email, hash)
	if err != nil {
		return nil, err
	}
	return r.AuthAccounts.Save(ctx, acct)
}
