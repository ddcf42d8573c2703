package morph

import (
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"github.com/pkg/errors"

	"github.com/kumotan/kumotan/plugin/segmenter"
)

// Splitter implements segmenter.JapaneseSplitter on top of the kagome
// morphological analyzer with the embedded IPA dictionary.
type Splitter struct {
	tokenizer *tokenizer.Tokenizer
	policy    *Policy
}

// NewSplitter builds a Splitter. A nil policy selects DefaultPolicy.
func NewSplitter(policy *Policy) (*Splitter, error) {
	if policy == nil {
		policy = DefaultPolicy()
	}
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize morphological tokenizer")
	}
	return &Splitter{tokenizer: t, policy: policy}, nil
}

// SplitUnits splits one sentence into morphological units. Units the
// analyzer does not cover (it can skip whitespace) are re-inserted as
// non-meaningful gap units so the concatenated unit text always equals the
// input sentence.
func (s *Splitter) SplitUnits(sentence string) []segmenter.Unit {
	if sentence == "" {
		return nil
	}
	if !segmenter.ContainsJapanese(sentence) {
		return []segmenter.Unit{{Text: sentence, Meaningful: false}}
	}

	runes := []rune(sentence)
	var units []segmenter.Unit
	cursor := 0
	for _, token := range s.tokenizer.Tokenize(sentence) {
		if token.Start > cursor {
			units = append(units, segmenter.Unit{Text: string(runes[cursor:token.Start])})
		}
		if token.End <= token.Start || token.End > len(runes) {
			continue
		}
		units = append(units, segmenter.Unit{
			Text:       string(runes[token.Start:token.End]),
			Meaningful: s.policy.Meaningful(token.Features()),
		})
		cursor = token.End
	}
	if cursor < len(runes) {
		units = append(units, segmenter.Unit{Text: string(runes[cursor:])})
	}
	return units
}
