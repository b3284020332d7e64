package repo

import "time"

// 持久化模型，只在 repo 包内与领域实体互转

type LibraryModel struct {
	ID           int64       `gorm:"primaryKey;autoIncrement"`
	Name         string      `gorm:"size:255;not null"`
	Address      string      `gorm:"size:255;not null"`
	OpeningHours string      `gorm:"size:255;not null"`
	Books        []BookModel `gorm:"foreignKey:LibraryID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (LibraryModel) TableName() string { return "libraries" }

type BookModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:255;not null;index:idx_books_title"`
	Author    string `gorm:"size:255;not null;index:idx_books_author"`
	ISBN      string `gorm:"column:isbn;size:13;not null"`
	Available bool   `gorm:"not null;index:idx_books_available"`
	LibraryID *int64 `gorm:"index:idx_books_library_id"`

	Library *LibraryModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (BookModel) TableName() string { return "books" }

type MemberModel struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:255;not null"`
	Email string `gorm:"uniqueIndex:idx_members_email;size:255;not null"`
	Phone string `gorm:"size:20;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (MemberModel) TableName() string { return "members" }

type LoanModel struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	BookID     int64      `gorm:"not null;index:idx_loans_book_id"`
	MemberID   int64      `gorm:"not null;index:idx_loans_member_id"`
	LoanDate   time.Time  `gorm:"not null"`
	ReturnDate *time.Time `gorm:"index"`

	Book   *BookModel   `gorm:"constraint:OnDelete:CASCADE;"`
	Member *MemberModel `gorm:"constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (LoanModel) TableName() string { return "loans" }

type AuthAccountModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex:idx_auth_accounts_email;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AuthAccountModel) TableName() string { return "auth_accounts" }

// Models AutoMigrate 顺序（被引用的表在前）
func Models() []any {
	return []any{&LibraryModel{}, &BookModel{}, &MemberModel{}, &LoanModel{}, &AuthAccountModel{}}
}
