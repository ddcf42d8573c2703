package segmenter

import (
	"testing"
)

func findKind(tokens []Token, kind TokenKind) *Token {
	for i := range tokens {
		if tokens[i].Kind == kind {
			return &tokens[i]
		}
	}
	return nil
}

func TestTokenizer_FacetPriorityOverRegex(t *testing.T) {
	tokenizer := NewTokenizer()
	// The span matches the URL regex, but the facet declares a mention.
	text := "ping https://handle.example now"
	facet := Facet{ByteStart: 5, ByteEnd: 27, Kind: FacetMention}

	tokens := tokenizer.Tokenize(text, []Facet{facet})
	if got := concatTokens(tokens); got != text {
		t.Fatalf("reconstruction = %q", got)
	}
	if url := findKind(tokens, KindURL); url != nil {
		t.Errorf("facet range must not be regex-typed, got url token %q", url.Text)
	}
	mention := findKind(tokens, KindMention)
	if mention == nil || mention.Text != "https://handle.example" {
		t.Fatalf("mention token = %+v", mention)
	}
}

func TestTokenizer_FacetByteOffsetsMultibyte(t *testing.T) {
	tokenizer := NewTokenizer()
	text := "こんにちは @alice"
	// 5 hiragana x 3 bytes + 1 space = 16 bytes before the handle.
	facet := Facet{ByteStart: 16, ByteEnd: 22, Kind: FacetMention}

	tokens := tokenizer.Tokenize(text, []Facet{facet})
	if got := concatTokens(tokens); got != text {
		t.Fatalf("reconstruction = %q", got)
	}
	mention := findKind(tokens, KindMention)
	if mention == nil || mention.Text != "@alice" || mention.AnnotationValue != "alice" {
		t.Fatalf("mention token = %+v", mention)
	}
}

func TestTokenizer_FacetTagValuePreferred(t *testing.T) {
	tokenizer := NewTokenizer()
	text := "news: #ニュース"
	facet := Facet{ByteStart: 6, ByteEnd: 16, Kind: FacetTag, Value: "nyuusu"}

	tokens := tokenizer.Tokenize(text, []Facet{facet})
	hashtag := findKind(tokens, KindHashtag)
	if hashtag == nil || hashtag.AnnotationValue != "nyuusu" {
		t.Fatalf("hashtag token = %+v, want declared tag value", hashtag)
	}
}

func TestTokenizer_OverlappingFacetsFirstWins(t *testing.T) {
	tokenizer := NewTokenizer()
	text := "overlap zone here"
	facets := []Facet{
		{ByteStart: 0, ByteEnd: 12, Kind: FacetLink},
		{ByteStart: 8, ByteEnd: 17, Kind: FacetTag},
	}

	tokens := tokenizer.Tokenize(text, facets)
	if got := concatTokens(tokens); got != text {
		t.Fatalf("reconstruction = %q", got)
	}
	if tokens[0].Kind != KindURL || tokens[0].Text != "overlap zone" {
		t.Errorf("first token = %+v, want the earlier facet's span", tokens[0])
	}
	if hashtag := findKind(tokens, KindHashtag); hashtag != nil {
		t.Errorf("later overlapping facet must be dropped, got %+v", hashtag)
	}
}

func TestTokenizer_MalformedFacetClamped(t *testing.T) {
	tokenizer := NewTokenizer()
	text := "short こんにちは"
	facets := []Facet{
		// Mid-rune start and an end far past the text; both must clamp
		// without blanking the rest of the post.
		{ByteStart: 7, ByteEnd: 999, Kind: FacetLink},
	}

	tokens := tokenizer.Tokenize(text, facets)
	if got := concatTokens(tokens); got != text {
		t.Fatalf("reconstruction = %q", got)
	}
}

func TestByteOffsets(t *testing.T) {
	offsets := newByteOffsets("aあ😺")

	tests := []struct {
		byteOffset int
		expected   int
	}{
		{0, 0},
		{1, 1},  // after 'a'
		{4, 2},  // after 'あ' (3 bytes)
		{8, 3},  // after the 4-byte emoji
		{2, 3},  // mid-rune clamps to end
		{-5, 0}, // negative clamps to start
		{99, 3}, // out of range clamps to end
	}
	for _, tt := range tests {
		if got := offsets.runeIndex(tt.byteOffset); got != tt.expected {
			t.Errorf("runeIndex(%d) = %d, want %d", tt.byteOffset, got, tt.expected)
		}
	}
}
