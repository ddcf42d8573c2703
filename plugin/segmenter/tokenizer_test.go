package segmenter

import (
	"reflect"
	"strings"
	"testing"
)

func concatTokens(tokens []Token) string {
	var b strings.Builder
	for _, token := range tokens {
		b.WriteString(token.Text)
	}
	return b.String()
}

func TestTokenizer_LosslessReconstruction(t *testing.T) {
	tokenizer := NewTokenizer()

	texts := []string{
		"",
		"cool",
		"Hello! Wait",
		"I love cats. Cats are great.",
		"check #news @alice.bsky.social",
		"see https://example.com/path?q=1 now",
		"こんにちは、世界。",
		"今日はcoffeeを飲んだ。Good day!",
		"   \n\t  ",
		"!!! ... ???",
		"emoji 🎉 and more 🚀🚀",
		"#タグ only",
	}
	for _, text := range texts {
		tokens := tokenizer.Tokenize(text, nil)
		if got := concatTokens(tokens); got != text {
			t.Errorf("Tokenize(%q) reconstructs to %q", text, got)
		}
		for i, token := range tokens {
			if token.SequenceIndex != i {
				t.Errorf("Tokenize(%q) token %d has sequence index %d", text, i, token.SequenceIndex)
			}
		}
	}
}

func TestTokenizer_Idempotent(t *testing.T) {
	tokenizer := NewTokenizer()
	text := "Learning English with #kumotan is fun. 頑張って!"
	facets := []Facet{{ByteStart: 22, ByteEnd: 30, Kind: FacetTag, Value: "kumotan"}}

	first := tokenizer.Tokenize(text, facets)
	second := tokenizer.Tokenize(text, facets)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("tokenizing twice differs:\n%v\n%v", first, second)
	}
}

func TestTokenizer_EnglishLeniency(t *testing.T) {
	tokenizer := NewTokenizer()

	// A lone unterminated fragment is still English.
	tokens := tokenizer.Tokenize("cool", nil)
	if len(tokens) != 1 || tokens[0].Kind != KindEnglishWord || tokens[0].Text != "cool" || !tokens[0].Meaningful {
		t.Fatalf("Tokenize(%q) = %v, want one meaningful english word", "cool", tokens)
	}

	// An unterminated trailing fragment of a multi-sentence block is not:
	// it degrades to a single non-meaningful plain token.
	tokens = tokenizer.Tokenize("Hello! Wait", nil)
	want := []Token{
		{Text: "Hello", Kind: KindEnglishWord, Meaningful: true, SequenceIndex: 0},
		{Text: "!", Kind: KindPlainText, SequenceIndex: 1},
		{Text: " ", Kind: KindPlainText, SequenceIndex: 2},
		{Text: "Wait", Kind: KindPlainText, SequenceIndex: 3},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize(%q) = %v, want %v", "Hello! Wait", tokens, want)
	}
}

func TestTokenizer_EnglishWordPattern(t *testing.T) {
	tokenizer := NewTokenizer()
	tokens := tokenizer.Tokenize("Don't worry, be happy-ish.", nil)

	var words []string
	for _, token := range tokens {
		if token.Kind == KindEnglishWord {
			if !token.Meaningful {
				t.Errorf("english word %q not meaningful", token.Text)
			}
			words = append(words, token.Text)
		}
	}
	want := []string{"Don't", "worry", "be", "happy-ish"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("english words = %v, want %v", words, want)
	}
}

func TestTokenizer_HashtagAndMention(t *testing.T) {
	tokenizer := NewTokenizer()
	tokens := tokenizer.Tokenize("check #news @alice.bsky.social", nil)

	var hashtag, mention *Token
	for i := range tokens {
		switch tokens[i].Kind {
		case KindHashtag:
			hashtag = &tokens[i]
		case KindMention:
			mention = &tokens[i]
		}
	}
	if hashtag == nil || hashtag.Text != "#news" || hashtag.AnnotationValue != "news" {
		t.Errorf("hashtag token = %+v, want #news/news", hashtag)
	}
	if mention == nil || mention.Text != "@alice.bsky.social" || mention.AnnotationValue != "alice.bsky.social" {
		t.Errorf("mention token = %+v, want @alice.bsky.social", mention)
	}
	if got := concatTokens(tokens); got != "check #news @alice.bsky.social" {
		t.Errorf("reconstruction = %q", got)
	}
}

func TestTokenizer_URLWinsOverHashtag(t *testing.T) {
	tokenizer := NewTokenizer()
	text := "read https://example.com/#section now"
	tokens := tokenizer.Tokenize(text, nil)

	var kinds []TokenKind
	for _, token := range tokens {
		kinds = append(kinds, token.Kind)
	}
	for _, token := range tokens {
		if token.Kind == KindHashtag {
			t.Errorf("hashtag inside URL must be dropped, got kinds %v", kinds)
		}
		if token.Kind == KindURL && token.Text != "https://example.com/#section" {
			t.Errorf("url token = %q", token.Text)
		}
	}
	if got := concatTokens(tokens); got != text {
		t.Errorf("reconstruction = %q", got)
	}
}

func TestTokenizer_WhitespaceOnlyInput(t *testing.T) {
	tokenizer := NewTokenizer()
	tokens := tokenizer.Tokenize("  \n\n  ", nil)
	want := []Token{{Text: "  \n\n  ", Kind: KindPlainText, SequenceIndex: 0}}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize(whitespace) = %v, want %v", tokens, want)
	}
}

func TestTokenizer_EmptyInput(t *testing.T) {
	tokenizer := NewTokenizer()
	if tokens := tokenizer.Tokenize("", nil); len(tokens) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want empty", tokens)
	}
}

func TestTokenizer_JapaneseFallbackSplitter(t *testing.T) {
	tokenizer := NewTokenizer()
	text := "猫が好き。"
	tokens := tokenizer.Tokenize(text, nil)

	if got := concatTokens(tokens); got != text {
		t.Fatalf("reconstruction = %q", got)
	}
	meaningful := 0
	for _, token := range tokens {
		if token.Kind != KindJapaneseUnit {
			t.Errorf("token %q kind = %s, want japanese unit", token.Text, token.Kind)
		}
		if token.Meaningful {
			meaningful++
		}
	}
	if meaningful == 0 {
		t.Error("expected at least one meaningful japanese unit")
	}
}

func BenchmarkTokenizer_MixedPost(b *testing.B) {
	tokenizer := NewTokenizer()
	text := "今日は新しいcoffee shopに行った。The latte was amazing! #coffee @barista.bsky.social https://example.com/menu"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tokenizer.Tokenize(text, nil)
	}
}
