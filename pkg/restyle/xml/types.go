package xml

import (
	"encoding/xml"
	"strings"
)

// BodyElement represents any element that can appear in a document body
type BodyElement interface {
	isBodyElement()
}

// ParagraphContent represents any content that can appear in a paragraph
type ParagraphContent interface {
	isParagraphContent()
}

// RawXMLElement represents a raw XML element that we preserve but don't parse.
// Content holds the inner XML with namespace prefixes already restored; the
// element tag itself is rebuilt from XMLName and Attrs at write time.
type RawXMLElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	Content []byte
}

// isBodyElement implements the BodyElement interface
func (r RawXMLElement) isBodyElement() {}

// isParagraphContent implements the ParagraphContent interface
func (r RawXMLElement) isParagraphContent() {}

// namespaceToPrefix converts a namespace URI to its conventional prefix
func namespaceToPrefix(uri string) string {
	prefixMap := map[string]string{
		// Core Word namespaces
		"http://schemas.openxmlformats.org/wordprocessingml/2006/main":        "w",
		"http://schemas.openxmlformats.org/officeDocument/2006/relationships": "r",
		"http://schemas.openxmlformats.org/officeDocument/2006/math":          "m",
		"http://www.w3.org/XML/1998/namespace":                               "xml",
		// Drawing namespaces
		"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
		"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
		"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
		"http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing":    "wp14",
		"http://schemas.microsoft.com/office/drawing/2010/main":                  "a14",
		// VML namespaces
		"urn:schemas-microsoft-com:vml":           "v",
		"urn:schemas-microsoft-com:office:office": "o",
		"urn:schemas-microsoft-com:office:word":   "w10",
		// Markup compatibility namespace
		"http://schemas.openxmlformats.org/markup-compatibility/2006": "mc",
		// Word processing shapes and canvas
		"http://schemas.microsoft.com/office/word/2010/wordprocessingShape":  "wps",
		"http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas": "wpc",
		"http://schemas.microsoft.com/office/word/2010/wordprocessingGroup":  "wpg",
		"http://schemas.microsoft.com/office/word/2010/wordprocessingInk":    "wpi",
		// Extended Word namespaces
		"http://schemas.microsoft.com/office/word/2010/wordml":               "w14",
		"http://schemas.microsoft.com/office/word/2012/wordml":               "w15",
		"http://schemas.microsoft.com/office/word/2015/wordml/symex":         "w16se",
		"http://schemas.microsoft.com/office/word/2016/wordml/cid":           "w16cid",
		"http://schemas.microsoft.com/office/word/2018/wordml":               "w16",
		"http://schemas.microsoft.com/office/word/2018/wordml/cex":           "w16cex",
		"http://schemas.microsoft.com/office/word/2020/wordml/sdtdatahash":   "w16sdtdh",
		"http://schemas.microsoft.com/office/word/2024/wordml/sdtformatlock": "w16sdtfl",
		"http://schemas.microsoft.com/office/word/2023/wordml/word16du":      "w16du",
		"http://schemas.microsoft.com/office/word/2006/wordml":               "wne",
		// Office extension namespaces
		"http://schemas.microsoft.com/office/2019/extlst": "oel",
	}

	if prefix, ok := prefixMap[uri]; ok {
		return prefix
	}
	// For unknown namespaces, return the URI as-is (shouldn't happen in practice)
	return uri
}

// escapeText escapes character data for XML output
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// escapeAttr escapes an attribute value for XML output
func escapeAttr(s string) string {
	s = escapeText(s)
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// writeName writes an XML name with its namespace prefix restored
func writeName(b *strings.Builder, name xml.Name) {
	if name.Space != "" {
		b.WriteString(namespaceToPrefix(name.Space))
		b.WriteString(":")
	}
	b.WriteString(name.Local)
}

// writeAttrs writes attributes with namespace prefixes restored
func writeAttrs(b *strings.Builder, attrs []xml.Attr) {
	for _, attr := range attrs {
		b.WriteString(" ")
		writeName(b, attr.Name)
		b.WriteString("=\"")
		b.WriteString(escapeAttr(attr.Value))
		b.WriteString("\"")
	}
}

// writeXML writes the raw element: opening tag from XMLName/Attrs, then the
// preserved inner content, then the closing tag. Empty elements self-close.
func (r *RawXMLElement) writeXML(b *strings.Builder) {
	b.WriteString("<")
	writeName(b, r.XMLName)
	writeAttrs(b, r.Attrs)
	if len(r.Content) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	b.Write(r.Content)
	b.WriteString("</")
	writeName(b, r.XMLName)
	b.WriteString(">")
}

// captureRaw reads the element that start opens and returns it as a
// RawXMLElement. The decoder is left positioned after the element's end tag.
// Inner markup is rebuilt with conventional namespace prefixes so it can be
// written back verbatim.
func captureRaw(d *xml.Decoder, start xml.StartElement) (RawXMLElement, error) {
	raw := RawXMLElement{XMLName: start.Name, Attrs: start.Attr}

	depth := 1
	var buf strings.Builder

	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return raw, err
		}

		switch tt := tok.(type) {
		case xml.StartElement:
			depth++
			buf.WriteString("<")
			writeName(&buf, tt.Name)
			writeAttrs(&buf, tt.Attr)
			buf.WriteString(">")
		case xml.EndElement:
			depth--
			if depth > 0 {
				buf.WriteString("</")
				writeName(&buf, tt.Name)
				buf.WriteString(">")
			}
		case xml.CharData:
			buf.WriteString(escapeText(string(tt)))
		}
	}

	raw.Content = []byte(buf.String())
	return raw, nil
}
