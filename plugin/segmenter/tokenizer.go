package segmenter

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// URL detection stops at whitespace and at CJK punctuation/script ranges,
	// which in practice terminate pasted links in Japanese posts.
	urlPattern = regexp.MustCompile(`https?://[^\s\x{3000}-\x{303F}\x{3040}-\x{30FF}\x{4E00}-\x{9FAF}\x{FF00}-\x{FFEF}]+`)
	// Unicode-aware hashtag: '#' followed by letters/digits/underscore.
	hashtagPattern = regexp.MustCompile(`#[\pL\pN_]+`)
	// Handles allow dot and hyphen mid-token but must not end on a separator.
	mentionPattern = regexp.MustCompile(`@[A-Za-z0-9][A-Za-z0-9.-]*[A-Za-z0-9]|@[A-Za-z0-9]`)
	// English sentences split into words ([A-Za-z][A-Za-z'-]*), whitespace
	// runs, and runs of anything else; each match is one token.
	englishPattern = regexp.MustCompile(`[A-Za-z][A-Za-z'-]*|\s+|[^A-Za-z\s]+`)
)

// Tokenizer produces the full ordered token sequence for one post body.
// It is pure and re-entrant: no shared mutable state, same input always
// yields the same output.
type Tokenizer struct {
	splitSentences SentenceSplitFunc
	japanese       JapaneseSplitter
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithSentenceSplitter replaces the default sentence splitter.
func WithSentenceSplitter(fn SentenceSplitFunc) Option {
	return func(t *Tokenizer) {
		if fn != nil {
			t.splitSentences = fn
		}
	}
}

// WithJapaneseSplitter replaces the dictionary-free fallback splitter,
// typically with the morphological one from plugin/morph.
func WithJapaneseSplitter(s JapaneseSplitter) Option {
	return func(t *Tokenizer) {
		if s != nil {
			t.japanese = s
		}
	}
}

// NewTokenizer creates a Tokenizer with the default collaborators.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		splitSentences: SplitSentences,
		japanese:       ScriptRunSplitter{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize converts text into the ordered token sequence. When facets are
// supplied they take priority over regex detection for the ranges they
// cover; the gaps between facets still go through plain-text tokenization.
func (t *Tokenizer) Tokenize(text string, facets []Facet) []Token {
	var tokens []Token
	if len(facets) == 0 {
		tokens = t.tokenizePlain(text, tokens)
	} else {
		tokens = t.tokenizeFaceted(text, facets, tokens)
	}
	for i := range tokens {
		tokens[i].SequenceIndex = i
	}
	return tokens
}

// tokenizeFaceted walks the facets in start order, plain-tokenizing each gap
// and emitting exactly one token per facet span.
func (t *Tokenizer) tokenizeFaceted(text string, facets []Facet, tokens []Token) []Token {
	offsets := newByteOffsets(text)
	runes := []rune(text)
	cursor := 0
	for _, facet := range sortFacets(facets) {
		start := offsets.runeIndex(facet.ByteStart)
		end := offsets.runeIndex(facet.ByteEnd)
		if start < cursor {
			// Overlapping facet; the earlier-starting one already won.
			continue
		}
		if end <= start {
			continue
		}
		if start > cursor {
			tokens = t.tokenizePlain(string(runes[cursor:start]), tokens)
		}
		tokens = append(tokens, facetToken(string(runes[start:end]), facet))
		cursor = end
	}
	if cursor < len(runes) {
		tokens = t.tokenizePlain(string(runes[cursor:]), tokens)
	}
	return tokens
}

func facetToken(spanText string, facet Facet) Token {
	switch facet.Kind {
	case FacetMention:
		return Token{
			Text:            spanText,
			Kind:            KindMention,
			AnnotationValue: strings.TrimPrefix(spanText, "@"),
		}
	case FacetTag:
		tag := facet.Value
		if tag == "" {
			tag = strings.TrimPrefix(spanText, "#")
		}
		return Token{Text: spanText, Kind: KindHashtag, AnnotationValue: tag}
	default:
		return Token{Text: spanText, Kind: KindURL}
	}
}

type specialMatch struct {
	start int
	end   int
	kind  TokenKind
}

// findSpecialMatches scans segment for URLs, hashtags and mentions. URLs are
// accepted first; hashtag and mention candidates that overlap an accepted
// match are dropped (first-found wins among themselves).
func findSpecialMatches(segment string) []specialMatch {
	var accepted []specialMatch
	for _, m := range urlPattern.FindAllStringIndex(segment, -1) {
		accepted = append(accepted, specialMatch{start: m[0], end: m[1], kind: KindURL})
	}

	var candidates []specialMatch
	for _, m := range hashtagPattern.FindAllStringIndex(segment, -1) {
		candidates = append(candidates, specialMatch{start: m[0], end: m[1], kind: KindHashtag})
	}
	for _, m := range mentionPattern.FindAllStringIndex(segment, -1) {
		candidates = append(candidates, specialMatch{start: m[0], end: m[1], kind: KindMention})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].start < candidates[j].start })

	for _, c := range candidates {
		overlaps := false
		for _, a := range accepted {
			if c.start < a.end && a.start < c.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, c)
		}
	}
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].start < accepted[j].start })
	return accepted
}

// tokenizePlain is the regex/script path, used standalone and for the gaps
// between facets.
func (t *Tokenizer) tokenizePlain(segment string, tokens []Token) []Token {
	if segment == "" {
		return tokens
	}
	cursor := 0
	for _, m := range findSpecialMatches(segment) {
		if m.start > cursor {
			tokens = t.parseText(segment[cursor:m.start], tokens)
		}
		span := segment[m.start:m.end]
		switch m.kind {
		case KindHashtag:
			tokens = append(tokens, Token{Text: span, Kind: KindHashtag, AnnotationValue: strings.TrimPrefix(span, "#")})
		case KindMention:
			tokens = append(tokens, Token{Text: span, Kind: KindMention, AnnotationValue: strings.TrimPrefix(span, "@")})
		default:
			tokens = append(tokens, Token{Text: span, Kind: KindURL})
		}
		cursor = m.end
	}
	if cursor < len(segment) {
		tokens = t.parseText(segment[cursor:], tokens)
	}
	return tokens
}

// parseText tokenizes a plain segment sentence by sentence. Separator text
// the sentence splitter dropped is re-emitted verbatim as plain tokens so
// that concatenating all tokens reconstructs the segment exactly.
func (t *Tokenizer) parseText(segment string, tokens []Token) []Token {
	sentences := t.splitSentences(segment)
	if len(sentences) == 0 {
		// Pure whitespace/newlines; keep it as a single placeholder token.
		return append(tokens, Token{Text: segment, Kind: KindPlainText})
	}
	onlySentence := len(sentences) == 1
	cursor := 0
	for _, sentence := range sentences {
		rel := strings.Index(segment[cursor:], sentence)
		if rel < 0 {
			continue
		}
		if rel > 0 {
			tokens = append(tokens, Token{Text: segment[cursor : cursor+rel], Kind: KindPlainText})
		}
		tokens = t.parseSentence(sentence, onlySentence, tokens)
		cursor += rel + len(sentence)
	}
	if cursor < len(segment) {
		tokens = append(tokens, Token{Text: segment[cursor:], Kind: KindPlainText})
	}
	return tokens
}

func (t *Tokenizer) parseSentence(sentence string, onlySentence bool, tokens []Token) []Token {
	if IsEnglishSentence(sentence, onlySentence) {
		for _, part := range englishPattern.FindAllString(sentence, -1) {
			r := rune(part[0])
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				tokens = append(tokens, Token{Text: part, Kind: KindEnglishWord, Meaningful: true})
			} else {
				tokens = append(tokens, Token{Text: part, Kind: KindPlainText})
			}
		}
		return tokens
	}
	if !ContainsJapanese(sentence) {
		return append(tokens, Token{Text: sentence, Kind: KindPlainText})
	}
	units := t.japanese.SplitUnits(sentence)
	if len(units) == 0 {
		return append(tokens, Token{Text: sentence, Kind: KindPlainText})
	}
	for _, u := range units {
		tokens = append(tokens, Token{Text: u.Text, Kind: KindJapaneseUnit, Meaningful: u.Meaningful})
	}
	return tokens
}
