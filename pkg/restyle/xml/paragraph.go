package xml

import (
	"encoding/xml"
	"strings"
)

// Paragraph represents a paragraph element
type Paragraph struct {
	Properties *ParagraphProperties
	Content    []ParagraphContent
}

// isBodyElement implements the BodyElement interface
func (p Paragraph) isBodyElement() {}

// ParagraphProperties represents paragraph formatting properties. The style
// reference is parsed into structure; all other property children are kept
// raw in their original order.
type ParagraphProperties struct {
	Style  *Style
	RawXML []RawXMLElement
}

// Style represents a paragraph style reference (pStyle)
type Style struct {
	Val string `xml:"val,attr"`
}

// UnmarshalXML implements custom XML unmarshaling for paragraphs to preserve
// the order of runs and unrecognized content
func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				var props ParagraphProperties
				if err := props.unmarshal(d, t); err != nil {
					return err
				}
				p.Properties = &props
			case "r":
				var run Run
				if err := d.DecodeElement(&run, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, &run)
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				p.Content = append(p.Content, &raw)
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				return nil
			}
		}
	}
}

func (props *ParagraphProperties) unmarshal(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "pStyle" {
				var style Style
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
			if t.Name.Local == "pPr" {
				return nil
			}
		}
	}
}

// Runs returns the paragraph's runs in order
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.Content {
		if r, ok := c.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// GetText returns the concatenated text of all runs in the paragraph.
// Non-run content contributes nothing.
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, c := range p.Content {
		if r, ok := c.(*Run); ok {
			sb.WriteString(r.GetText())
		}
	}
	return sb.String()
}

// StyleID returns the paragraph's style reference, or "" when unstyled
func (p *Paragraph) StyleID() string {
	if p.Properties != nil && p.Properties.Style != nil {
		return p.Properties.Style.Val
	}
	return ""
}

// SetStyle sets the paragraph's style reference, creating properties as needed
func (p *Paragraph) SetStyle(styleID string) {
	if p.Properties == nil {
		p.Properties = &ParagraphProperties{}
	}
	p.Properties.Style = &Style{Val: styleID}
}

// writeXML serializes the paragraph with properties first, then content in
// its original order
func (p *Paragraph) writeXML(b *strings.Builder) {
	if p.Properties == nil && len(p.Content) == 0 {
		b.WriteString("<w:p/>")
		return
	}

	b.WriteString("<w:p>")
	if p.Properties != nil {
		p.Properties.writeXML(b)
	}
	for _, c := range p.Content {
		switch el := c.(type) {
		case *Run:
			el.writeXML(b)
		case *RawXMLElement:
			el.writeXML(b)
		}
	}
	b.WriteString("</w:p>")
}

// writeXML serializes paragraph properties. The style reference leads, per
// schema order; raw children follow in their original order.
func (props *ParagraphProperties) writeXML(b *strings.Builder) {
	if props.Style == nil && len(props.RawXML) == 0 {
		b.WriteString("<w:pPr/>")
		return
	}

	b.WriteString("<w:pPr>")
	if props.Style != nil {
		b.WriteString(`<w:pStyle w:val="`)
		b.WriteString(escapeAttr(props.Style.Val))
		b.WriteString(`"/>`)
	}
	for i := range props.RawXML {
		props.RawXML[i].writeXML(b)
	}
	b.WriteString("</w:pPr>")
}
