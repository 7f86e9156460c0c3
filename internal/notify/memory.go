package notify

import (
	"context"
	"sync"
	"time"
)

// ScheduledReminder is one reminder a Memory notifier has accepted.
type ScheduledReminder struct {
	Content   Content
	TriggerAt time.Time
}

// Memory is a Notifier fake for tests: it records schedule/cancel calls and
// reports whatever permission it is told to.
type Memory struct {
	Permission Permission

	mu         sync.Mutex
	scheduled  []ScheduledReminder
	cancelalls int
}

func NewMemory(p Permission) *Memory {
	return &Memory{Permission: p}
}

func (m *Memory) PermissionStatus(_ context.Context) Permission {
	return m.Permission
}

func (m *Memory) RequestPermission(_ context.Context) Permission {
	return m.Permission
}

func (m *Memory) CancelAll(_ context.Context) error {
	m.mu.Lock()
	m.scheduled = nil
	m.cancelalls++
	m.mu.Unlock()
	return nil
}

func (m *Memory) Schedule(_ context.Context, content Content, triggerAt time.Time) error {
	m.mu.Lock()
	m.scheduled = append(m.scheduled, ScheduledReminder{Content: content, TriggerAt: triggerAt})
	m.mu.Unlock()
	return nil
}

func (m *Memory) Scheduled() []ScheduledReminder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ScheduledReminder(nil), m.scheduled...)
}

func (m *Memory) CancelAllCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancelalls
}
