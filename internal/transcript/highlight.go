package transcript

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Markers wrapped around highlighted key phrases in HighlightedHTML.
// Everything outside the markers is raw transcript text; escaping it is the
// presentation layer's job.
const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

// Span is a run of transcript text that is either plain or highlighted.
type Span struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

type match struct {
	start, end int
	rule       int
}

// Highlight splits text into spans, marking every whole-word occurrence of
// the given key phrases. Matching is case-sensitive and literal; phrases are
// never interpreted as patterns. Duplicate key phrases collapse into a single
// rule, keeping first-appearance order.
//
// All matches are located against the original text and applied in one pass,
// so a rule can never match inside the markers another rule produced. When
// two matches overlap, the earlier one wins; at the same start position the
// earlier-listed key phrase wins.
func Highlight(text string, keyPhrases []string) []Span {
	rules := dedupe(keyPhrases)

	var matches []match
	for i, phrase := range rules {
		for _, start := range findWholeWord(text, phrase) {
			matches = append(matches, match{start: start, end: start + len(phrase), rule: i})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].start != matches[b].start {
			return matches[a].start < matches[b].start
		}
		return matches[a].rule < matches[b].rule
	})

	spans := make([]Span, 0, 2*len(matches)+1)
	pos := 0
	for _, m := range matches {
		if m.start < pos {
			// Overlaps a match already applied.
			continue
		}
		if m.start > pos {
			spans = append(spans, Span{Text: text[pos:m.start]})
		}
		spans = append(spans, Span{Text: text[m.start:m.end], Highlighted: true})
		pos = m.end
	}
	if pos < len(text) || len(spans) == 0 {
		spans = append(spans, Span{Text: text[pos:]})
	}
	return spans
}

// JoinSpans renders spans back into a single string with highlighted runs
// wrapped in the emphasis markers.
func JoinSpans(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Highlighted {
			b.WriteString(MarkOpen)
			b.WriteString(s.Text)
			b.WriteString(MarkClose)
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func dedupe(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// findWholeWord returns the byte offset of every occurrence of phrase in text
// that sits on a word boundary. A boundary is satisfied when the adjacent
// rune is missing or is not a Unicode letter or digit, so punctuation and
// whitespace delimit matches in any script.
func findWholeWord(text, phrase string) []int {
	var offs []int
	for from := 0; from <= len(text)-len(phrase); {
		i := strings.Index(text[from:], phrase)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(phrase)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			offs = append(offs, start)
			from = end
		} else {
			from = start + 1
		}
	}
	return offs
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
