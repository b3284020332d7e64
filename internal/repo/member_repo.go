package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-gorm-library/internal/domain"
)

var errMemberEmailTaken = domain.Conflict("Member with this email already exists")

type MemberRepo struct{ db *gorm.DB }

func NewMemberRepo(db *gorm.DB) *MemberRepo { return &MemberRepo{db: db} }

func toMember(m MemberModel) (*domain.Member, error) {
	return domain.RestoreMember(m.ID, m.Name, m.Email, m.Phone)
}

func (r *MemberRepo) Save(ctx context.Context, mem *domain.Member) (*domain.Member, error) {
	m := MemberModel{Name: mem.Name(), Email: mem.Email(), Phone: mem.Phone()}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDupKey(err) {
			return nil, errMemberEmailTaken
		}
		return nil, err
	}
	return toMember(m)
}

func (r *MemberRepo) first(ctx context.Context, query string, arg any) (*domain.Member, error) {
	var m MemberModel
	err := r.db.WithContext(ctx).First(&m, query, arg).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toMember(m)
}

func (r *MemberRepo) FindByID(ctx context.Context, id int64) (*domain.Member, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *MemberRepo) FindByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *MemberRepo) FindAll(ctx context.Context) ([]*domain.Member, error) {
	var ms []MemberModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Member, 0, len(ms))
	for _, m := range ms {
		mem, err := toMember(m)
		if err != nil {
			return nil, err
		}
		out = append(out, mem)
	}
	return out, nil
}

func (r *MemberRepo) Update(ctx context.Context, mem *domain.Member) (*domain.Member, error) {
	if !mem.HasID() {
		return nil, errNoID
	}
	db := r.db.WithContext(ctx)
	var m MemberModel
	err := db.First(&m, "id = ?", mem.ID()).Error
	if notFound(err) {
		return nil, domain.NotFound("Member", mem.ID())
	}
	if err != nil {
		return nil, err
	}
	m.Name, m.Email, m.Phone = mem.Name(), mem.Email(), mem.Phone()
	if err := db.Save(&m).Error; err != nil {
		if isDupKey(err) {
			return nil, errMemberEmailTaken
		}
		return nil, err
	}
	return toMember(m)
}

func (r *MemberRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&LoanModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&MemberModel{}, "id = ?", id).Error
	})
}
