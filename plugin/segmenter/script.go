package segmenter

import (
	"strings"
	"unicode"
)

// Kana/Kanji detection ranges. U+3040–U+30FF covers Hiragana and Katakana,
// U+4E00–U+9FAF covers the common CJK unified ideographs.
func isJapaneseRune(r rune) bool {
	return (r >= 0x3040 && r <= 0x30FF) || (r >= 0x4E00 && r <= 0x9FAF)
}

// ContainsJapanese reports whether s contains at least one Hiragana,
// Katakana, or Kanji rune. When false, morphological splitting does not
// apply and the whole span is treated as one non-meaningful unit.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if isJapaneseRune(r) {
			return true
		}
	}
	return false
}

func containsLatin(s string) bool {
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// IsEnglishSentence classifies one sentence-length string. A sentence is
// English if it contains at least one Latin letter AND either ends with
// terminal punctuation after trimming, or is the only sentence in its
// containing segment.
//
// The leniency for a lone unterminated fragment is deliberate: informal
// posts like "cool" should still be word-splittable. The flip side is that
// an unterminated trailing fragment of a multi-sentence block falls through
// to the Japanese/other path even when it holds Latin words; that observable
// behavior is kept as-is for compatibility with the shipped clients.
func IsEnglishSentence(sentence string, onlySentence bool) bool {
	if !containsLatin(sentence) {
		return false
	}
	trimmed := strings.TrimSpace(sentence)
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, "!") || strings.HasSuffix(trimmed, "?") {
		return true
	}
	return onlySentence
}

// ScriptRunSplitter is the dictionary-free fallback JapaneseSplitter. It
// groups the sentence into runs of Kana/Kanji versus everything else; script
// runs are treated as meaningful, the rest is not. Good enough to keep
// lookups working when no morphological dictionary is wired in.
type ScriptRunSplitter struct{}

func (ScriptRunSplitter) SplitUnits(sentence string) []Unit {
	if sentence == "" {
		return nil
	}
	if !ContainsJapanese(sentence) {
		return []Unit{{Text: sentence, Meaningful: false}}
	}

	var units []Unit
	var run strings.Builder
	runJapanese := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		units = append(units, Unit{Text: run.String(), Meaningful: runJapanese})
		run.Reset()
	}
	for _, r := range sentence {
		j := isJapaneseRune(r)
		if run.Len() > 0 && j != runJapanese {
			flush()
		}
		runJapanese = j
		run.WriteRune(r)
	}
	flush()
	return units
}
