package restyle

import (
	"regexp"
)

// MatchSite locates one match of a span rule: the paragraph index and the
// byte span of the matched text within that paragraph's text. A site with
// WholeParagraph set carries no meaningful span bounds.
type MatchSite struct {
	Paragraph      int
	Start          int
	End            int
	WholeParagraph bool
}

// FindMatches scans the document's paragraphs in order and returns every
// match site of the pattern, ordered by paragraph index and span start.
// Matches within one paragraph are the standard leftmost non-overlapping
// set. When the pattern defines capture groups, the site spans the first
// group instead of the whole match, so a fixed contextual prefix can stay
// unstyled. Empty spans are dropped.
//
// Sites are resolved against each paragraph's current text. Style
// application splits runs without changing paragraph text, so sites from
// successive rules stay valid within one pass.
func FindMatches(doc *TargetDocument, re *regexp.Regexp) []MatchSite {
	var sites []MatchSite

	for i, para := range doc.Paragraphs() {
		text := para.GetText()
		if text == "" {
			continue
		}

		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[0], m[1]
			if len(m) >= 4 && m[2] >= 0 {
				start, end = m[2], m[3]
			}
			if start == end {
				continue
			}
			sites = append(sites, MatchSite{
				Paragraph: i,
				Start:     start,
				End:       end,
			})
		}
	}

	return sites
}
