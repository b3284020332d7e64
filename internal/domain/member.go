package domain

import "context"

// Member 读者档案；登录凭证在 AuthAccount
type Member struct {
	id    int64
	name  string
	email string
	phone string
}

func NewMember(name, email, phone string) (*Member, error) {
	return buildMember(0, name, email, phone)
}

func RestoreMember(id int64, name, email, phone string) (*Member, error) {
	return buildMember(id, name, email, phone)
}

func buildMember(id int64, name, email, phone string) (*Member, error) {
	if err := requireText("Member name", name); err != nil {
		return nil, err
	}
	if err := requireEmail("Member email", email); err != nil {
		return nil, err
	}
	if err := requirePhone("Member phone", phone); err != nil {
		return nil, err
	}
	return &Member{id: id, name: name, email: email, phone: phone}, nil
}

func (m *Member) ID() int64     { return m.id }
func (m *Member) HasID() bool   { return m.id > 0 }
func (m *Member) Name() string  { return m.name }
func (m *Member) Email() string { return m.email }
func (m *Member) Phone() string { return m.phone }

type MemberRepository interface {
	Save(ctx context.Context, m *Member) (*Member, error)
	FindByID(ctx context.Context, id int64) (*Member, error)
	FindAll(ctx context.Context) ([]*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	Update(ctx context.Context, m *Member) (*Member, error)
	Delete(ctx context.Context, id int64) error
}
