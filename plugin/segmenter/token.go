// Package segmenter converts raw post text, plus optional facet annotations,
// into the ordered token stream that gets rendered as pressable spans.
// Supports mixed Japanese and English social-media text.
package segmenter

// TokenKind identifies how a token is rendered and which gesture
// affordance it carries.
type TokenKind string

const (
	KindPlainText    TokenKind = "plain_text"
	KindEnglishWord  TokenKind = "english_word"
	KindJapaneseUnit TokenKind = "japanese_unit"
	KindURL          TokenKind = "url"
	KindHashtag      TokenKind = "hashtag"
	KindMention      TokenKind = "mention"
)

// Token is the atomic unit of tokenizer output: one rendered,
// potentially-selectable text span.
type Token struct {
	// Text is the exact substring of the source text covered by this token.
	// Concatenating all tokens' Text in SequenceIndex order reconstructs the
	// source text exactly.
	Text string `json:"text"`
	Kind TokenKind `json:"kind"`
	// Meaningful marks tokens eligible for dictionary lookup: English words
	// and content-word Japanese units. Whitespace, punctuation and particles
	// are never meaningful.
	Meaningful bool `json:"meaningful"`
	// AnnotationValue carries the hashtag tag (without '#') or the mention
	// handle (without '@'). Empty for all other kinds.
	AnnotationValue string `json:"annotationValue,omitempty"`
	// SequenceIndex is the 0-based position in the token stream and the
	// rendering order. It is the only ordering guarantee.
	SequenceIndex int `json:"sequenceIndex"`
}

// Unit is one Japanese morphological unit produced by a JapaneseSplitter.
type Unit struct {
	Text       string `json:"text"`
	Meaningful bool   `json:"meaningful"`
}

// JapaneseSplitter splits one sentence into morphological units and decides
// which of them are content words. The exact linguistic rules are a tuning
// detail behind this interface; see plugin/morph for the dictionary-backed
// implementation.
type JapaneseSplitter interface {
	SplitUnits(sentence string) []Unit
}

// SentenceSplitFunc splits text into ordered sentence substrings. Separator
// text between sentences may be dropped by the splitter; the tokenizer
// re-locates each sentence in the source and keeps the gaps itself.
type SentenceSplitFunc func(text string) []string
