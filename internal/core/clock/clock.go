package clock

import (
	"sync"
	"time"
)

// System 系统时钟（UTC）
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fixed 可手动拨动的时钟，测试用
type Fixed struct {
	mu sync.Mutex
	t  time.Time
}

func NewFixed(t time.Time) *Fixed { return &Fixed{t: t} }

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}
