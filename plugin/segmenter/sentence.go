package segmenter

import "strings"

// SplitSentences is the default sentence splitter. It closes a sentence at
// ASCII and full-width terminal punctuation and at newlines, keeping the
// terminator attached to its sentence. Returned sentences are trimmed; the
// tokenizer re-locates them in the source text and preserves the separator
// runs itself, so nothing is lost.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}
	for _, r := range text {
		b.WriteRune(r)
		switch r {
		case '.', '!', '?', '。', '！', '？', '\n':
			flush()
		}
	}
	flush()
	return sentences
}
