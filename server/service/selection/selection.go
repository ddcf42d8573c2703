// Package selection resolves per-token gesture streams into word-level or
// sentence-level lookups. One Machine instance belongs to one rendered
// post; there is no cross-post shared state.
package selection

import (
	"strings"
	"sync"
	"time"

	"github.com/kumotan/kumotan/plugin/segmenter"
)

// Mode is the current selection state of a rendered post.
type Mode int

const (
	ModeNone Mode = iota
	ModeWordSelected
	ModeSentenceSelected
)

func (m Mode) String() string {
	switch m {
	case ModeWordSelected:
		return "word_selected"
	case ModeSentenceSelected:
		return "sentence_selected"
	default:
		return "none"
	}
}

// Callbacks are the external collaborators a completed transition notifies.
// Each is invoked exactly once per completed selection; nil callbacks are
// skipped.
type Callbacks struct {
	OnWordSelect     func(word, postID, postText string)
	OnSentenceSelect func(sentence, postID, postText string)
	OnNavigate       func(postID string)
	OnOpenURL        func(url string)
	OnOpenTag        func(tag string)
	OnOpenProfile    func(handle string)
}

// DefaultDoubleTapWindow is the tap/double-tap disambiguation window. The
// first tap on a meaningful token starts this timer; a second tap within
// the window selects the containing sentence instead of a single word. The
// induced lookup delay on a lone first tap is an accepted trade-off.
const DefaultDoubleTapWindow = 300 * time.Millisecond

// Machine is the per-post selection state machine. All gesture handling is
// serialized under one mutex; the only asynchronous input is the scheduler
// firing the double-tap timer.
type Machine struct {
	postID   string
	postText string
	tokens   []segmenter.Token

	sentences []string

	window time.Duration
	sched  Scheduler
	cb     Callbacks

	mu           sync.Mutex
	mode         Mode
	selectedText string
	pendingTap   *segmenter.Token
	cancelTimer  func()
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithScheduler replaces the real timer scheduler, typically with a fake in
// tests.
func WithScheduler(s Scheduler) MachineOption {
	return func(m *Machine) {
		if s != nil {
			m.sched = s
		}
	}
}

// WithWindow overrides the double-tap window.
func WithWindow(d time.Duration) MachineOption {
	return func(m *Machine) {
		if d > 0 {
			m.window = d
		}
	}
}

// WithCallbacks sets the collaborator callbacks.
func WithCallbacks(cb Callbacks) MachineOption {
	return func(m *Machine) { m.cb = cb }
}

// NewMachine creates the selection machine for one rendered post.
func NewMachine(postID, postText string, tokens []segmenter.Token, sentences []string, opts ...MachineOption) *Machine {
	m := &Machine{
		postID:    postID,
		postText:  postText,
		tokens:    tokens,
		sentences: sentences,
		window:    DefaultDoubleTapWindow,
		sched:     TimerScheduler{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mode returns the current selection mode.
func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// SelectedText returns the currently highlighted word or sentence.
func (m *Machine) SelectedText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectedText
}

// HasPendingTap reports whether a first tap is awaiting its double-tap
// window.
func (m *Machine) HasPendingTap() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingTap != nil
}

// TapToken handles a single tap on the token at index i. A tap on a
// non-meaningful token is a container tap.
func (m *Machine) TapToken(i int) {
	m.mu.Lock()
	if i < 0 || i >= len(m.tokens) {
		m.mu.Unlock()
		return
	}
	token := m.tokens[i]
	if !token.Meaningful {
		m.mu.Unlock()
		m.TapContainer()
		return
	}

	if m.pendingTap != nil {
		// Second tap within the window: sentence lookup.
		m.cancelPendingLocked()
		sentence := m.resolveSentence(token.Text)
		m.mode = ModeSentenceSelected
		m.selectedText = sentence
		cb := m.cb.OnSentenceSelect
		postID, postText := m.postID, m.postText
		m.mu.Unlock()
		if cb != nil {
			cb(sentence, postID, postText)
		}
		return
	}

	// First tap: arm the window, no state change yet.
	pending := token
	m.pendingTap = &pending
	m.cancelTimer = m.sched.Schedule(m.window, m.expireTap)
	m.mu.Unlock()
}

// expireTap fires when the double-tap window elapses with no second tap.
// The pending tap is dropped without a selection change.
func (m *Machine) expireTap() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingTap = nil
	m.cancelTimer = nil
}

// LongPressToken handles a long-press on the token at index i. Long-press
// is the direct word-lookup signal and always preempts a pending tap.
func (m *Machine) LongPressToken(i int) {
	m.mu.Lock()
	if i < 0 || i >= len(m.tokens) {
		m.mu.Unlock()
		return
	}
	token := m.tokens[i]
	if !token.Meaningful {
		m.mu.Unlock()
		return
	}
	m.cancelPendingLocked()
	m.mode = ModeWordSelected
	m.selectedText = token.Text
	cb := m.cb.OnWordSelect
	postID, postText := m.postID, m.postText
	m.mu.Unlock()
	if cb != nil {
		cb(token.Text, postID, postText)
	}
}

// TapContainer handles a tap outside any meaningful token. With an active
// selection it clears; with nothing pending it is a navigation request.
func (m *Machine) TapContainer() {
	m.mu.Lock()
	hadPending := m.pendingTap != nil
	m.cancelPendingLocked()
	if m.mode != ModeNone {
		m.mode = ModeNone
		m.selectedText = ""
		m.mu.Unlock()
		return
	}
	cb := m.cb.OnNavigate
	postID := m.postID
	m.mu.Unlock()
	if !hadPending && cb != nil {
		cb(postID)
	}
}

// SelectWholePost is the external "select whole post" trigger, bypassing
// token gestures.
func (m *Machine) SelectWholePost() {
	m.mu.Lock()
	m.cancelPendingLocked()
	sentence := strings.TrimSpace(m.postText)
	m.mode = ModeSentenceSelected
	m.selectedText = sentence
	cb := m.cb.OnSentenceSelect
	postID, postText := m.postID, m.postText
	m.mu.Unlock()
	if cb != nil {
		cb(sentence, postID, postText)
	}
}

// ClearSelection is the external clear signal: back to ModeNone from any
// state, canceling a pending timer. Must also be called when the post view
// goes away so no stale timer callback fires afterwards.
func (m *Machine) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelPendingLocked()
	m.mode = ModeNone
	m.selectedText = ""
}

func (m *Machine) cancelPendingLocked() {
	if m.cancelTimer != nil {
		m.cancelTimer()
		m.cancelTimer = nil
	}
	m.pendingTap = nil
}

// resolveSentence finds the sentence containing word: the first sentence
// whose text contains it, case-insensitively. Sentence splitting is not
// position-indexed back to tokens, so first match wins even when the token
// visually came from a later duplicate. Falls back to the trimmed post text
// when no sentence matches.
func (m *Machine) resolveSentence(word string) string {
	needle := strings.ToLower(word)
	for _, sentence := range m.sentences {
		if strings.Contains(strings.ToLower(sentence), needle) {
			return sentence
		}
	}
	return strings.TrimSpace(m.postText)
}
