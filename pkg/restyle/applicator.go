package restyle

import (
	"fmt"

	wpxml "github.com/benjaminschreck/go-restyle/pkg/restyle/xml"
)

// ApplyStyle applies a resolved style to one match site, switching on the
// style's family. Paragraph styles attach to the whole paragraph regardless
// of span bounds; text styles attach to exactly the matched substring.
// Application only restructures runs and never changes paragraph text.
func ApplyStyle(doc *TargetDocument, site MatchSite, def *StyleDefinition) error {
	paras := doc.Paragraphs()
	if site.Paragraph < 0 || site.Paragraph >= len(paras) {
		return NewOffsetIntegrityError(site.Paragraph, site.Start, site.End, 0)
	}
	para := paras[site.Paragraph]

	switch def.Family {
	case FamilyParagraph:
		applyParagraphStyle(para, def)
		return nil
	case FamilyText:
		return applyTextStyle(para, site, def)
	default:
		return fmt.Errorf("cannot apply style '%s': unsupported family '%s'", def.Name, def.Family)
	}
}

// applyParagraphStyle sets the paragraph's style and clears run-level style
// references inside it, so the paragraph renders uniformly. Re-applying the
// same style is a no-op in effect.
func applyParagraphStyle(para *wpxml.Paragraph, def *StyleDefinition) {
	para.SetStyle(def.StyleID)
	for _, run := range para.Runs() {
		run.ClearStyle()
	}
}

// applyTextStyle splits runs at the span boundaries so exactly the matched
// substring carries the style reference. A previous style on the span is
// replaced, not composed.
func applyTextStyle(para *wpxml.Paragraph, site MatchSite, def *StyleDefinition) error {
	text := para.GetText()
	if site.Start < 0 || site.Start > site.End || site.End > len(text) {
		return NewOffsetIntegrityError(site.Paragraph, site.Start, site.End, len(text))
	}
	if site.Start == site.End {
		return nil
	}

	newContent := make([]wpxml.ParagraphContent, 0, len(para.Content)+2)
	pos := 0

	for _, content := range para.Content {
		run, ok := content.(*wpxml.Run)
		if !ok {
			newContent = append(newContent, content)
			continue
		}

		runText := run.GetText()
		runStart := pos
		runEnd := pos + len(runText)
		pos = runEnd

		if runEnd <= site.Start || runStart >= site.End || runText == "" {
			newContent = append(newContent, run)
			continue
		}

		relStart := site.Start - runStart
		if relStart < 0 {
			relStart = 0
		}
		relEnd := site.End - runStart
		if relEnd > len(runText) {
			relEnd = len(runText)
		}

		left, rest := run.SplitAt(relStart)
		styled, right := rest.SplitAt(relEnd - relStart)
		styled.SetStyle(def.StyleID)

		if left != nil {
			newContent = append(newContent, left)
		}
		newContent = append(newContent, styled)
		if right != nil {
			newContent = append(newContent, right)
		}
	}

	para.Content = newContent
	return nil
}
