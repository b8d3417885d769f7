package notify

import (
	"context"
	"sync"
)

// Memory fans out events inside one process. Handlers run synchronously on
// the publishing goroutine.
type Memory struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]func(Event)
}

func NewMemory() *Memory {
	return &Memory{subs: make(map[string]map[int]func(Event))}
}

func memoryKey(table, sessionID string) string {
	return table + "|" + sessionID
}

func (m *Memory) Publish(_ context.Context, table, sessionID string) error {
	m.mu.RLock()
	handlers := make([]func(Event), 0, len(m.subs[memoryKey(table, sessionID)]))
	for _, fn := range m.subs[memoryKey(table, sessionID)] {
		handlers = append(handlers, fn)
	}
	m.mu.RUnlock()

	ev := Event{Table: table, SessionID: sessionID}
	for _, fn := range handlers {
		fn(ev)
	}
	return nil
}

func (m *Memory) Subscribe(_ context.Context, sessionID string, tables []string, fn func(Event)) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	id := m.next
	keys := make([]string, 0, len(tables))
	for _, t := range tables {
		key := memoryKey(t, sessionID)
		if m.subs[key] == nil {
			m.subs[key] = make(map[int]func(Event))
		}
		m.subs[key][id] = fn
		keys = append(keys, key)
	}
	return &memorySub{m: m, id: id, keys: keys}, nil
}

// Subscribers counts live handlers for a table within a session
func (m *Memory) Subscribers(table, sessionID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs[memoryKey(table, sessionID)])
}

type memorySub struct {
	m    *Memory
	id   int
	keys []string
	once sync.Once
}

func (s *memorySub) Close() error {
	s.once.Do(func() {
		s.m.mu.Lock()
		defer s.m.mu.Unlock()
		for _, key := range s.keys {
			delete(s.m.subs[key], s.id)
			if len(s.m.subs[key]) == 0 {
				delete(s.m.subs, key)
			}
		}
	})
	return nil
}
