// Package session holds per-browser-session dashboard state: the mood on
// display, the recording flag and any voice analysis awaiting a save. It
// replaces what was once process-wide mutable state.
package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/mindcareapp/goMindcare/business/voice"
	"github.com/mindcareapp/goMindcare/foundation/store"
)

type Session struct {
	sync.RWMutex

	id          string
	currentMood string
	moodScore   int
	recording   bool
	pending     *voice.Analysis
	history     []store.MoodEntry
}

func newSession(id string) *Session {
	return &Session{
		id:          id,
		currentMood: "Neutral",
		moodScore:   5,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) CurrentMood() (string, int) {
	s.RLock()
	defer s.RUnlock()
	return s.currentMood, s.moodScore
}

func (s *Session) SetCurrentMood(mood string, score int) {
	s.Lock()
	defer s.Unlock()
	s.currentMood = mood
	s.moodScore = score
}

func (s *Session) Recording() bool {
	s.RLock()
	defer s.RUnlock()
	return s.recording
}

func (s *Session) SetRecording(recording bool) {
	s.Lock()
	defer s.Unlock()
	s.recording = recording
}

func (s *Session) PendingAnalysis() (voice.Analysis, bool) {
	s.RLock()
	defer s.RUnlock()
	if s.pending == nil {
		return voice.Analysis{}, false
	}
	return *s.pending, true
}

func (s *Session) SetPendingAnalysis(a voice.Analysis) {
	s.Lock()
	defer s.Unlock()
	s.pending = &a
}

func (s *Session) ClearPendingAnalysis() {
	s.Lock()
	defer s.Unlock()
	s.pending = nil
}

// AppendHistory records an entry in the session's in-memory history.
// Append-only, like the persisted store.
func (s *Session) AppendHistory(entry store.MoodEntry) {
	s.Lock()
	defer s.Unlock()
	s.history = append(s.history, entry)
}

func (s *Session) History() []store.MoodEntry {
	s.RLock()
	defer s.RUnlock()
	out := make([]store.MoodEntry, len(s.history))
	copy(out, s.history)
	return out
}

// =====================================================================================================================

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for the given ID, creating it on first use. An
// empty ID mints a fresh session.
func (m *Manager) Get(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, exists := m.sessions[id]
	if !exists {
		s = newSession(id)
		m.sessions[id] = s
	}

	return s
}
