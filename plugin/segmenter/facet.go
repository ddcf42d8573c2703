package segmenter

import (
	"sort"
	"unicode/utf8"
)

// FacetKind is the rich-text feature type declared by the social network.
type FacetKind string

const (
	FacetLink    FacetKind = "link"
	FacetMention FacetKind = "mention"
	FacetTag     FacetKind = "tag"
)

// Facet is a byte-range-addressed rich-text annotation supplied by the
// network API. Facets are authoritative over regex-based detection for the
// ranges they cover. Offsets address UTF-8 bytes, not runes.
type Facet struct {
	ByteStart int       `json:"byteStart"`
	ByteEnd   int       `json:"byteEnd"`
	Kind      FacetKind `json:"kind"`
	// Value is the link URI, mention handle, or tag text when the network
	// supplies it. For tags the declared value is preferred over re-deriving
	// it from the covered text.
	Value string `json:"value,omitempty"`
}

// byteOffsets maps UTF-8 byte offsets to rune offsets for one string.
// Built by walking the string once; facet offsets are byte-based but all
// downstream slicing is rune-based.
type byteOffsets struct {
	toRune  map[int]int
	runeEnd int
}

func newByteOffsets(text string) *byteOffsets {
	m := make(map[int]int, len(text)+1)
	b, i := 0, 0
	for _, r := range text {
		m[b] = i
		b += utf8.RuneLen(r)
		i++
	}
	m[b] = i
	return &byteOffsets{toRune: m, runeEnd: i}
}

// runeIndex resolves a byte offset to a rune offset. A malformed offset
// (mid-rune or out of range) is clamped to the nearest text boundary so a
// single bad facet cannot blank out the rest of the post.
func (o *byteOffsets) runeIndex(byteOffset int) int {
	if i, ok := o.toRune[byteOffset]; ok {
		return i
	}
	if byteOffset <= 0 {
		return 0
	}
	return o.runeEnd
}

// sortFacets returns a copy of facets ordered by byte start ascending.
func sortFacets(facets []Facet) []Facet {
	sorted := make([]Facet, len(facets))
	copy(sorted, facets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ByteStart < sorted[j].ByteStart
	})
	return sorted
}
