// Package memory 内存版仓储，与 gorm 版实现同一组端口；用于测试和本地调试。
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-gin-gorm-library/internal/domain"
)

type bookRec struct {
	ID        int64
	Title     string
	Author    string
	ISBN      string
	Available bool
	LibraryID *int64
}

type memberRec struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

type loanRec struct {
	ID         int64
	BookID     int64
	MemberID   int64
	LoanDate   time.Time
	ReturnDate *time.Time
}

type libraryRec struct {
	ID           int64
	Name         string
	Address      string
	OpeningHours string
}

type accountRec struct {
	ID           int64
	Email        string
	PasswordHash string
}

type state struct {
	seq       int64
	books     map[int64]bookRec
	members   map[int64]memberRec
	loans     map[int64]loanRec
	libraries map[int64]libraryRec
	accounts  map[int64]accountRec
}

func newState() state {
	return state{
		books:     map[int64]bookRec{},
		members:   map[int64]memberRec{},
		loans:     map[int64]loanRec{},
		libraries: map[int64]libraryRec{},
		accounts:  map[int64]accountRec{},
	}
}

func (s state) clone() state {
	c := newState()
	c.seq = s.seq
	for k, v := range s.books {
		c.books[k] = v
	}
	for k, v := range s.members {
		c.members[k] = v
	}
	for k, v := range s.loans {
		c.loans[k] = v
	}
	for k, v := range s.libraries {
		c.libraries[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	return c
}

// Store 同时实现 domain.Transactor
type Store struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	st    state
	clock domain.Clock
}

func NewStore(clock domain.Clock) *Store {
	return &Store{st: newState(), clock: clock}
}

func (s *Store) Repositories() domain.Repositories {
	return domain.Repositories{
		Books:        &BookRepo{s: s},
		Members:      &MemberRepo{s: s},
		Loans:        &LoanRepo{s: s},
		Libraries:    &LibraryRepo{s: s},
		AuthAccounts: &AuthAccountRepo{s: s},
	}
}

// WithinTx 串行执行工作单元，fn 出错时整体回滚到快照
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r domain.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snap := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx, s.Repositories()); err != nil {
		s.mu.Lock()
		s.st = snap
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) nextID() int64 {
	s.st.seq++
	return s.st.seq
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
