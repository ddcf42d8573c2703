package selection

import "github.com/kumotan/kumotan/plugin/segmenter"

// tokenActions maps token kind to its pass-through navigation sink: URLs
// open the browser, hashtags open tag search, mentions open the profile.
// One dispatch table instead of cascading per-kind conditionals.
var tokenActions = map[segmenter.TokenKind]func(cb Callbacks, token segmenter.Token){
	segmenter.KindURL: func(cb Callbacks, token segmenter.Token) {
		if cb.OnOpenURL != nil {
			cb.OnOpenURL(token.Text)
		}
	},
	segmenter.KindHashtag: func(cb Callbacks, token segmenter.Token) {
		if cb.OnOpenTag != nil {
			cb.OnOpenTag(token.AnnotationValue)
		}
	},
	segmenter.KindMention: func(cb Callbacks, token segmenter.Token) {
		if cb.OnOpenProfile != nil {
			cb.OnOpenProfile(token.AnnotationValue)
		}
	},
}

// TokenAction triggers the per-kind tap target of the token at index i.
// Tokens without a navigation affordance do nothing.
func (m *Machine) TokenAction(i int) {
	m.mu.Lock()
	if i < 0 || i >= len(m.tokens) {
		m.mu.Unlock()
		return
	}
	token := m.tokens[i]
	cb := m.cb
	m.mu.Unlock()
	if action, ok := tokenActions[token.Kind]; ok {
		action(cb, token)
	}
}
