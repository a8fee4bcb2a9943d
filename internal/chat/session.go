package chat

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dayimpact/ecocoach/internal/impact"
)

// Message is one turn of a chat session.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session accumulates one conversation: the message history plus every
// action parsed so far with its impact.
type Session struct {
	ID string

	mu      sync.Mutex
	history []Message
	actions []ParsedAction
	records []impact.ActionRecord
}

// SessionSummary totals a session's parsed actions.
type SessionSummary struct {
	ActionCount int                   `json:"action_count"`
	TotalCO2eKg float64               `json:"total_co2e_kg"`
	TotalWaterL float64               `json:"total_water_l"`
	Actions     []SessionSummaryEntry `json:"actions"`
}

// SessionSummaryEntry is one action within a session summary.
type SessionSummaryEntry struct {
	Item     string  `json:"item"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	CO2eKg   float64 `json:"co2e_kg"`
	WaterL   float64 `json:"water_l"`
}

// AddMessage appends a turn to the session history.
func (s *Session) AddMessage(role, content string) {
	s.mu.Lock()
	s.history = append(s.history, Message{Role: role, Content: content})
	s.mu.Unlock()
}

// AddAction records a parsed action and its computed impact.
func (s *Session) AddAction(action ParsedAction, record impact.ActionRecord) {
	s.mu.Lock()
	s.actions = append(s.actions, action)
	s.records = append(s.records, record)
	s.mu.Unlock()
}

// History returns a copy of the session's message history.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Summary totals the session's actions.
func (s *Session) Summary() SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := SessionSummary{
		ActionCount: len(s.actions),
		Actions:     make([]SessionSummaryEntry, 0, len(s.actions)),
	}
	for i, action := range s.actions {
		record := s.records[i]
		summary.TotalCO2eKg += record.CO2eKg
		summary.TotalWaterL += record.WaterL
		summary.Actions = append(summary.Actions, SessionSummaryEntry{
			Item:     action.Item,
			Amount:   action.Amount,
			Category: string(action.Category),
			CO2eKg:   record.CO2eKg,
			WaterL:   record.WaterL,
		})
	}
	return summary
}

// Clear drops the session's history and accumulated actions.
func (s *Session) Clear() {
	s.mu.Lock()
	s.history = nil
	s.actions = nil
	s.records = nil
	s.mu.Unlock()
}

// SessionStore tracks live chat sessions by id. Sessions are in-memory
// only; a restart drops them.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore returns an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create starts a new session with a generated id.
func (st *SessionStore) Create() *Session {
	s := &Session{ID: uuid.NewString()}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given id, if it exists.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	return s, ok
}

// GetOrCreate returns the session with the given id, creating a fresh
// one when the id is unknown or empty.
func (st *SessionStore) GetOrCreate(id string) *Session {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s
		}
	}
	return st.Create()
}

// Delete removes a session. Unknown ids are a no-op.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
