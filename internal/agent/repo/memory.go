package repo

import (
	"context"
	"sync"

	"github.com/gadget-scout/server/internal/agent/model"
)

// MemoryConversationStore keeps session state in process memory. It is the
// default backend for stdio deployments and for tests.
type MemoryConversationStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
	capacity int
}

type memorySession struct {
	mu      sync.Mutex
	seq     int64
	records []model.QueryRecord
	prefs   model.Preferences
	theme   model.QueryType
}

var _ model.ConversationStore = (*MemoryConversationStore)(nil)

// NewMemoryConversationStore returns a store keeping at most capacity records
// per session, evicting the oldest on overflow.
func NewMemoryConversationStore(capacity int) *MemoryConversationStore {
	if capacity <= 0 {
		capacity = 10
	}
	return &MemoryConversationStore{
		sessions: make(map[string]*memorySession),
		capacity: capacity,
	}
}

func (s *MemoryConversationStore) getOrCreate(sessionID string) *memorySession {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionID]; ok {
		return sess
	}
	sess = &memorySession{theme: model.QueryGeneral}
	s.sessions[sessionID] = sess
	return sess
}

// get returns the session without creating it. Reads on unknown sessions
// behave like reads on an empty session.
func (s *MemoryConversationStore) get(sessionID string) *memorySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID]
}

func (s *MemoryConversationStore) Append(_ context.Context, sessionID string, rec model.QueryRecord) (model.QueryRecord, error) {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.seq++
	rec.SessionID = sessionID
	rec.Sequence = sess.seq
	sess.records = append(sess.records, rec)
	if len(sess.records) > s.capacity {
		sess.records = sess.records[len(sess.records)-s.capacity:]
	}
	return rec, nil
}

func (s *MemoryConversationStore) Recent(_ context.Context, sessionID string, n int) ([]model.QueryRecord, error) {
	sess := s.get(sessionID)
	if sess == nil || n <= 0 {
		return nil, nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	start := len(sess.records) - n
	if start < 0 {
		start = 0
	}
	return append([]model.QueryRecord(nil), sess.records[start:]...), nil
}

func (s *MemoryConversationStore) EntitiesInWindow(ctx context.Context, sessionID string, n int) ([]string, error) {
	recent, err := s.Recent(ctx, sessionID, n)
	if err != nil {
		return nil, err
	}
	return entityUnion(recent), nil
}

func (s *MemoryConversationStore) Preferences(_ context.Context, sessionID string) (model.Preferences, error) {
	sess := s.get(sessionID)
	if sess == nil {
		return model.Preferences{}, nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.prefs.Clone(), nil
}

func (s *MemoryConversationStore) MergePreferences(_ context.Context, sessionID string, delta model.PreferenceDelta) (model.Preferences, error) {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.prefs.Apply(delta)
	return sess.prefs.Clone(), nil
}

func (s *MemoryConversationStore) Theme(_ context.Context, sessionID string) (model.QueryType, error) {
	sess := s.get(sessionID)
	if sess == nil {
		return model.QueryGeneral, nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.theme == "" {
		return model.QueryGeneral, nil
	}
	return sess.theme, nil
}

func (s *MemoryConversationStore) SetTheme(_ context.Context, sessionID string, theme model.QueryType) error {
	sess := s.getOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.theme = theme
	return nil
}

func (s *MemoryConversationStore) AttachToolUsage(_ context.Context, sessionID string, toolNames []string) error {
	sess := s.get(sessionID)
	if sess == nil {
		return nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(sess.records) == 0 {
		return nil
	}
	last := &sess.records[len(sess.records)-1]
	if len(last.ToolsUsed) > 0 {
		return nil
	}
	last.ToolsUsed = append([]string(nil), toolNames...)
	return nil
}

func (s *MemoryConversationStore) QueryCount(_ context.Context, sessionID string) (int64, error) {
	sess := s.get(sessionID)
	if sess == nil {
		return 0, nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.seq, nil
}

// entityUnion flattens the entities across records into a first-seen-order
// set. Shared by both store backends.
func entityUnion(records []model.QueryRecord) []string {
	var out []string
	seen := map[string]bool{}
	for _, rec := range records {
		for _, e := range rec.Entities {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}
