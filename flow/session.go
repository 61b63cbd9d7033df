package flow

import "sync"

// DialogState tracks where a session is inside one dialog instance.
// Parameters is an open bag accumulated across steps; keys are only ever
// overwritten, never removed, so stale values must be reset by the step
// that owns them when the dialog branches.
type DialogState struct {
	DialogID   string
	Cursor     int
	Parameters map[string]any
}

// Session holds the per-chat conversation state: at most one active dialog.
// All mutation happens under the session mutex, which the engine holds for
// the whole of one event, so two concurrently arriving events for the same
// chat never interleave.
type Session struct {
	ChatID int64
	UserID int64

	mu     sync.Mutex
	dialog *DialogState
}

// Lock serializes event processing for this session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session event lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Dialog returns the active dialog state, or nil when idle.
func (s *Session) Dialog() *DialogState {
	return s.dialog
}

// InDialog reports whether a dialog is active.
func (s *Session) InDialog() bool {
	return s.dialog != nil
}

// StartDialog replaces any active dialog with a fresh one at step 0.
// Previous parameters are discarded wholesale; seed values become the
// initial parameter bag.
func (s *Session) StartDialog(dialogID string, seed map[string]any) *DialogState {
	params := make(map[string]any, len(seed))
	for k, v := range seed {
		params[k] = v
	}
	s.dialog = &DialogState{DialogID: dialogID, Parameters: params}
	return s.dialog
}

// EndDialog discards the active dialog and all of its state.
func (s *Session) EndDialog() {
	s.dialog = nil
}

// Set stores a parameter on the active dialog. No-op when idle.
func (s *Session) Set(key string, value any) {
	if s.dialog == nil {
		return
	}
	s.dialog.Parameters[key] = value
}

// Get returns a parameter from the active dialog.
func (s *Session) Get(key string) (any, bool) {
	if s.dialog == nil {
		return nil, false
	}
	v, ok := s.dialog.Parameters[key]
	return v, ok
}

// GetString returns a string parameter, or "" when absent or mistyped.
func (s *Session) GetString(key string) string {
	if v, ok := s.Get(key); ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// GetBool returns a bool parameter, or false when absent or mistyped.
func (s *Session) GetBool(key string) bool {
	if v, ok := s.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// GetInt returns an int parameter, or 0 when absent or mistyped.
func (s *Session) GetInt(key string) int {
	if v, ok := s.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		}
	}
	return 0
}

// Store keeps sessions keyed by chat id. The store lock only guards the
// map; per-event serialization is the session's own mutex.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for a chat, creating it on first contact.
func (st *Store) Get(chatID, userID int64) *Session {
	st.mu.RLock()
	s, ok := st.sessions[chatID]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok = st.sessions[chatID]; ok {
		return s
	}
	s = &Session{ChatID: chatID, UserID: userID}
	st.sessions[chatID] = s
	return s
}

// Peek returns the session without creating one.
func (st *Store) Peek(chatID int64) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[chatID]
	return s, ok
}

// Delete removes a session entirely.
func (st *Store) Delete(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, chatID)
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
