package selection

import (
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/kumotan/kumotan/plugin/segmenter"
)

// EventType identifies a gesture or external signal posted to a session.
type EventType string

const (
	EventTapToken     EventType = "tap_token"
	EventLongPress    EventType = "long_press_token"
	EventTapContainer EventType = "tap_container"
	EventTokenAction  EventType = "token_action"
	EventSelectPost   EventType = "select_post"
	EventClear        EventType = "clear"
)

// Event is one gesture delivered to a selection session.
type Event struct {
	Type       EventType `json:"type"`
	TokenIndex int       `json:"tokenIndex"`
}

// Outcome describes what an event resolved to. An armed first tap reports
// "pending" because its meaning is only known after the double-tap window.
type Outcome struct {
	Kind string `json:"kind"` // word, sentence, navigate, open_url, open_tag, open_profile, pending, none
	Text string `json:"text,omitempty"`
	Mode string `json:"mode"`
}

// Session owns one Machine for one rendered post.
type Session struct {
	ID      string
	machine *Machine

	mu      sync.Mutex
	outcome *Outcome
}

// Manager tracks live selection sessions. Each session is single-owner; the
// manager only guards its own map.
type Manager struct {
	window time.Duration
	sched  Scheduler

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager. window <= 0 selects the default
// double-tap window, sched == nil the real timer scheduler.
func NewManager(window time.Duration, sched Scheduler) *Manager {
	if window <= 0 {
		window = DefaultDoubleTapWindow
	}
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &Manager{
		window:   window,
		sched:    sched,
		sessions: make(map[string]*Session),
	}
}

// Create opens a selection session for one rendered post.
func (m *Manager) Create(postID, postText string, tokens []segmenter.Token, sentences []string) *Session {
	session := &Session{ID: shortuuid.New()}
	session.machine = NewMachine(postID, postText, tokens, sentences,
		WithWindow(m.window),
		WithScheduler(m.sched),
		WithCallbacks(session.callbacks()),
	)
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, errors.Errorf("selection session %s not found", id)
	}
	return session, nil
}

// Delete clears a session and cancels its pending timer.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		session.machine.ClearSelection()
	}
}

// callbacks record each completed transition into the session so Handle can
// report it synchronously. Callbacks fire inside the event call, never from
// the timer: window expiry only drops the pending tap.
func (s *Session) callbacks() Callbacks {
	record := func(kind, text string) {
		s.mu.Lock()
		s.outcome = &Outcome{Kind: kind, Text: text}
		s.mu.Unlock()
	}
	return Callbacks{
		OnWordSelect:     func(word, _, _ string) { record("word", word) },
		OnSentenceSelect: func(sentence, _, _ string) { record("sentence", sentence) },
		OnNavigate:       func(postID string) { record("navigate", postID) },
		OnOpenURL:        func(url string) { record("open_url", url) },
		OnOpenTag:        func(tag string) { record("open_tag", tag) },
		OnOpenProfile:    func(handle string) { record("open_profile", handle) },
	}
}

// Handle applies one event and returns what it resolved to.
func (s *Session) Handle(event Event) Outcome {
	s.mu.Lock()
	s.outcome = nil
	s.mu.Unlock()

	switch event.Type {
	case EventTapToken:
		s.machine.TapToken(event.TokenIndex)
	case EventLongPress:
		s.machine.LongPressToken(event.TokenIndex)
	case EventTapContainer:
		s.machine.TapContainer()
	case EventTokenAction:
		s.machine.TokenAction(event.TokenIndex)
	case EventSelectPost:
		s.machine.SelectWholePost()
	case EventClear:
		s.machine.ClearSelection()
	}

	s.mu.Lock()
	outcome := s.outcome
	s.mu.Unlock()

	mode := s.machine.Mode().String()
	if outcome != nil {
		outcome.Mode = mode
		return *outcome
	}
	if s.machine.HasPendingTap() {
		return Outcome{Kind: "pending", Mode: mode}
	}
	return Outcome{Kind: "none", Mode: mode}
}

// Machine exposes the underlying state machine, mainly for tests.
func (s *Session) Machine() *Machine {
	return s.machine
}
