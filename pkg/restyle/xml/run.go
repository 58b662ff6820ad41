package xml

import (
	"encoding/xml"
	"strings"
)

// RunContent represents any content that can appear inside a run
type RunContent interface {
	isRunContent()
}

// Run represents a text run element
type Run struct {
	Properties *RunProperties
	Content    []RunContent
}

// isParagraphContent implements the ParagraphContent interface
func (r Run) isParagraphContent() {}

// RunProperties represents run formatting properties. The character style
// reference is parsed into structure; all other property children are kept
// raw in their original order.
type RunProperties struct {
	Style  *RunStyle
	RawXML []RawXMLElement
}

// RunStyle represents a character style reference (rStyle)
type RunStyle struct {
	Val string `xml:"val,attr"`
}

// Text represents a text element in a run
type Text struct {
	Space   string `xml:"space,attr,omitempty"`
	Content string `xml:",chardata"`
}

// isRunContent implements the RunContent interface
func (t Text) isRunContent() {}

// Break represents a line break element
type Break struct {
	Type string `xml:"type,attr,omitempty"`
}

// isRunContent implements the RunContent interface
func (b Break) isRunContent() {}

// Tab represents a tab element
type Tab struct{}

// isRunContent implements the RunContent interface
func (t Tab) isRunContent() {}

// isRunContent implements the RunContent interface
func (r RawXMLElement) isRunContent() {}

// UnmarshalXML implements custom XML unmarshaling for runs to preserve the
// order of text, breaks and unrecognized content
func (r *Run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				var props RunProperties
				if err := props.unmarshal(d, t); err != nil {
					return err
				}
				r.Properties = &props
			case "t":
				var text Text
				if err := d.DecodeElement(&text, &t); err != nil {
					return err
				}
				r.Content = append(r.Content, &text)
			case "br":
				var br Break
				if err := d.DecodeElement(&br, &t); err != nil {
					return err
				}
				r.Content = append(r.Content, &br)
			case "tab":
				var tab Tab
				if err := d.DecodeElement(&tab, &t); err != nil {
					return err
				}
				r.Content = append(r.Content, &tab)
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				r.Content = append(r.Content, &raw)
			}
		case xml.EndElement:
			if t.Name.Local == "r" {
				return nil
			}
		}
	}
}

func (props *RunProperties) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "rStyle" {
				var style RunStyle
				if err := d.DecodeElement(&style, &t); err != nil {
					return err
				}
				props.Style = &style
			} else {
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				props.RawXML = append(props.RawXML, raw)
			}
		case xml.EndElement:
			if t.Name.Local == "rPr" {
				return nil
			}
		}
	}
}

// GetText returns the concatenated text content of the run. Breaks, tabs and
// unrecognized content contribute nothing.
func (r *Run) GetText() string {
	var sb strings.Builder
	for _, c := range r.Content {
		if t, ok := c.(*Text); ok {
			sb.WriteString(t.Content)
		}
	}
	return sb.String()
}

// StyleID returns the run's character style reference, or "" when unstyled
func (r *Run) StyleID() string {
	if r.Properties != nil && r.Properties.Style != nil {
		return r.Properties.Style.Val
	}
	return ""
}

// SetStyle sets the run's character style reference, creating properties as
// needed
func (r *Run) SetStyle(styleID string) {
	if r.Properties == nil {
		r.Properties = &RunProperties{}
	}
	r.Properties.Style = &RunStyle{Val: styleID}
}

// ClearStyle removes the run's character style reference. Other run
// properties are untouched.
func (r *Run) ClearStyle() {
	if r.Properties == nil {
		return
	}
	r.Properties.Style = nil
	if len(r.Properties.RawXML) == 0 {
		r.Properties = nil
	}
}

// Clone returns a deep copy of the run properties
func (props *RunProperties) Clone() *RunProperties {
	if props == nil {
		return nil
	}
	clone := &RunProperties{}
	if props.Style != nil {
		clone.Style = &RunStyle{Val: props.Style.Val}
	}
	if len(props.RawXML) > 0 {
		clone.RawXML = make([]RawXMLElement, len(props.RawXML))
		copy(clone.RawXML, props.RawXML)
	}
	return clone
}

// SplitAt splits the run at the given byte offset into the run's text and
// returns the two halves. Both halves carry a copy of the run's properties.
// Content that holds no text stays on the side where it appears in order.
// Returns (nil, r) or (r, nil) when the offset falls at an edge.
func (r *Run) SplitAt(offset int) (*Run, *Run) {
	text := r.GetText()
	if offset <= 0 {
		return nil, r
	}
	if offset >= len(text) {
		return r, nil
	}

	left := &Run{Properties: r.Properties}
	right := &Run{Properties: r.Properties.Clone()}

	pos := 0
	for _, c := range r.Content {
		t, ok := c.(*Text)
		if !ok {
			if pos < offset {
				left.Content = append(left.Content, c)
			} else {
				right.Content = append(right.Content, c)
			}
			continue
		}

		end := pos + len(t.Content)
		switch {
		case end <= offset:
			left.Content = append(left.Content, t)
		case pos >= offset:
			right.Content = append(right.Content, t)
		default:
			cut := offset - pos
			left.Content = append(left.Content, &Text{Content: t.Content[:cut]})
			right.Content = append(right.Content, &Text{Content: t.Content[cut:]})
		}
		pos = end
	}

	return left, right
}

// writeXML serializes the run with properties first, then content in its
// original order
func (r *Run) writeXML(b *strings.Builder) {
	if r.Properties == nil && len(r.Content) == 0 {
		b.WriteString("<w:r/>")
		return
	}

	b.WriteString("<w:r>")
	if r.Properties != nil {
		r.Properties.writeXML(b)
	}
	for _, c := range r.Content {
		switch el := c.(type) {
		case *Text:
			el.writeXML(b)
		case *Break:
			el.writeXML(b)
		case *Tab:
			b.WriteString("<w:tab/>")
		case *RawXMLElement:
			el.writeXML(b)
		}
	}
	b.WriteString("</w:r>")
}

// writeXML serializes run properties. The style reference leads, per schema
// order; raw children follow in their original order.
func (props *RunProperties) writeXML(b *strings.Builder) {
	if props.Style == nil && len(props.RawXML) == 0 {
		b.WriteString("<w:rPr/>")
		return
	}

	b.WriteString("<w:rPr>")
	if props.Style != nil {
		b.WriteString(`<w:rStyle w:val="`)
		b.WriteString(escapeAttr(props.Style.Val))
		b.WriteString(`"/>`)
	}
	for i := range props.RawXML {
		props.RawXML[i].writeXML(b)
	}
	b.WriteString("</w:rPr>")
}

func (t *Text) writeXML(b *strings.Builder) {
	needsPreserve := t.Space == "preserve" ||
		(len(t.Content) > 0 && (t.Content[0] == ' ' || t.Content[len(t.Content)-1] == ' '))
	if needsPreserve {
		b.WriteString(`<w:t xml:space="preserve">`)
	} else {
		b.WriteString("<w:t>")
	}
	b.WriteString(escapeText(t.Content))
	b.WriteString("</w:t>")
}

func (br *Break) writeXML(b *strings.Builder) {
	if br.Type != "" {
		b.WriteString(`<w:br w:type="`)
		b.WriteString(escapeAttr(br.Type))
		b.WriteString(`"/>`)
	} else {
		b.WriteString("<w:br/>")
	}
}
