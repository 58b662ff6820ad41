package restyle

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []string
		pattern    string
		want       []MatchSite
	}{
		{
			name:       "whole match without capture group",
			paragraphs: []string{"error: disk full"},
			pattern:    `error:`,
			want:       []MatchSite{{Paragraph: 0, Start: 0, End: 6}},
		},
		{
			name:       "capture group narrows the span",
			paragraphs: []string{"++ IMPORTANT: contact support"},
			pattern:    `\+\+ IMPORTANT: (.*)`,
			want:       []MatchSite{{Paragraph: 0, Start: 14, End: 29}},
		},
		{
			name:       "multiple non-overlapping matches in one paragraph",
			paragraphs: []string{"foo bar foo baz foo"},
			pattern:    `foo`,
			want: []MatchSite{
				{Paragraph: 0, Start: 0, End: 3},
				{Paragraph: 0, Start: 8, End: 11},
				{Paragraph: 0, Start: 16, End: 19},
			},
		},
		{
			name:       "matches ordered across paragraphs",
			paragraphs: []string{"alpha", "no match here", "alphabet"},
			pattern:    `alpha`,
			want: []MatchSite{
				{Paragraph: 0, Start: 0, End: 5},
				{Paragraph: 2, Start: 0, End: 5},
			},
		},
		{
			name:       "empty captures are dropped",
			paragraphs: []string{"prefix:"},
			pattern:    `prefix:(.*)`,
			want:       nil,
		},
		{
			name:       "no matches",
			paragraphs: []string{"nothing to see"},
			pattern:    `absent`,
			want:       nil,
		},
		{
			name:       "anchored pattern",
			paragraphs: []string{"Chapter 1: Intro", "see Chapter 2"},
			pattern:    `^Chapter \d+`,
			want:       []MatchSite{{Paragraph: 0, Start: 0, End: 9}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openTestTarget(t, createSimpleDOCXBytes(tt.paragraphs...))
			re := regexp.MustCompile(tt.pattern)

			got := FindMatches(doc, re)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindMatches() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindMatchesSpansRunBoundaries(t *testing.T) {
	// The match target is assembled from several runs; matching works on the
	// concatenated paragraph text.
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t xml:space="preserve">This is </w:t></w:r>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>important</w:t></w:r>` +
		`<w:r><w:t xml:space="preserve"> notice text</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	doc := openTestTarget(t, createDOCXBytesWithDocument(minimalStylesXML, documentXML))
	re := regexp.MustCompile(`important notice`)

	got := FindMatches(doc, re)
	want := []MatchSite{{Paragraph: 0, Start: 8, End: 24}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindMatches() mismatch (-want +got):\n%s", diff)
	}
}
