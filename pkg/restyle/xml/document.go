package xml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Document represents a Word document structure
type Document struct {
	XMLName xml.Name   `xml:"document"`
	Body    *Body      `xml:"body"`
	Attrs   []xml.Attr `xml:"-"` // Preserve root element attributes (namespaces)
}

// UnmarshalXML implements custom XML unmarshaling to preserve root attributes
func (doc *Document) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	// Save the attributes from the root element
	doc.Attrs = start.Attr
	doc.XMLName = start.Name

	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" {
				var body Body
				if err := d.DecodeElement(&body, &t); err != nil {
					return err
				}
				doc.Body = &body
			} else if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "document" {
				return nil
			}
		}
	}

	return nil
}

// Body represents the document body
type Body struct {
	// Elements maintains the order of all body elements. Paragraphs are
	// parsed into structure; everything else (tables, sectPr, bookmarks,
	// structured document tags) is preserved as raw XML.
	Elements []BodyElement `xml:"-"`
}

// UnmarshalXML implements custom XML unmarshaling to preserve element order
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" {
				var para Paragraph
				if err := d.DecodeElement(&para, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, &para)
			} else {
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				b.Elements = append(b.Elements, &raw)
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				return nil
			}
		}
	}

	return nil
}

// Paragraphs returns the body's paragraphs in document order
func (b *Body) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, elem := range b.Elements {
		if p, ok := elem.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// ParseDocument parses a Word document XML
func ParseDocument(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Body == nil {
		return nil, fmt.Errorf("failed to parse document: missing body")
	}

	return &doc, nil
}

// Marshal serializes the document back to a complete document.xml with the
// original root attributes (namespace declarations) preserved.
func (doc *Document) Marshal() ([]byte, error) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString("\n")

	b.WriteString("<w:document")
	if len(doc.Attrs) > 0 {
		for _, attr := range doc.Attrs {
			// Skip a default xmlns declaration since we emit w:document
			if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
				continue
			}
			writeAttrs(&b, []xml.Attr{attr})
		}
	} else {
		// Fallback to the minimal namespace set
		b.WriteString(` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`)
		b.WriteString(` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`)
	}
	b.WriteString("><w:body>")

	for _, elem := range doc.Body.Elements {
		switch el := elem.(type) {
		case *Paragraph:
			el.writeXML(&b)
		case *RawXMLElement:
			el.writeXML(&b)
		}
	}

	b.WriteString("</w:body></w:document>")
	return []byte(b.String()), nil
}
