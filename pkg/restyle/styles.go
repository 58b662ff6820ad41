package restyle

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// StyleFamily is the closed set of style families the engine applies.
// Paragraph styles attach to whole paragraphs; text styles attach to runs.
type StyleFamily string

const (
	FamilyParagraph StyleFamily = "paragraph"
	FamilyText      StyleFamily = "text"
)

// ParseStyleFamily parses a family name from configuration
func ParseStyleFamily(s string) (StyleFamily, error) {
	switch s {
	case "paragraph":
		return FamilyParagraph, nil
	case "text":
		return FamilyText, nil
	default:
		return "", fmt.Errorf("unknown style family '%s' (want paragraph or text)", s)
	}
}

// StyleType returns the w:type value this family maps to in styles.xml
func (f StyleFamily) StyleType() string {
	if f == FamilyText {
		return "character"
	}
	return "paragraph"
}

// familyFromStyleType maps a w:type value back to a family. Types outside
// the closed set (table, numbering) report ok=false.
func familyFromStyleType(t string) (StyleFamily, bool) {
	switch t {
	case "paragraph":
		return FamilyParagraph, true
	case "character":
		return FamilyText, true
	default:
		return "", false
	}
}

// StyleDefinition is a style read from a reference document. OuterXML holds
// the complete w:style element verbatim, so importing never reinterprets the
// attribute set. Immutable once resolved.
type StyleDefinition struct {
	Name     string
	Family   StyleFamily
	StyleID  string
	OuterXML []byte
}

// CatalogStyle is one w:style entry in a styles.xml catalog. Entries parsed
// from the source bytes carry their byte range; entries added or overwritten
// carry replacement XML instead.
type CatalogStyle struct {
	Type    string
	StyleID string
	Name    string

	start int64
	end   int64
	outer []byte
}

// outerXML returns the complete w:style element for this entry
func (cs *CatalogStyle) outerXML(raw []byte) []byte {
	if cs.outer != nil {
		return cs.outer
	}
	return raw[cs.start:cs.end]
}

// StyleCatalog is the parsed style catalog of one document. It keeps the
// original styles.xml bytes and records per-style byte ranges, so a rebuild
// only rewrites the entries that changed and leaves everything else
// (docDefaults, latent styles, unknown attributes) byte for byte intact.
type StyleCatalog struct {
	raw     []byte
	styles  []*CatalogStyle
	added   []*CatalogStyle
	changed bool
}

const emptyStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"></w:styles>`

// NewStyleCatalog creates an empty catalog for documents without a styles part
func NewStyleCatalog() *StyleCatalog {
	return &StyleCatalog{raw: []byte(emptyStylesXML)}
}

// ParseStyleCatalog parses styles.xml and indexes every w:style element with
// its byte range in the source
func ParseStyleCatalog(raw []byte) (*StyleCatalog, error) {
	catalog := &StyleCatalog{raw: raw}

	decoder := xml.NewDecoder(bytes.NewReader(raw))
	depth := 0

	for {
		before := decoder.InputOffset()
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse styles.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if depth == 1 && t.Name.Local == "style" {
				entry, err := parseCatalogStyle(decoder, t, before)
				if err != nil {
					return nil, fmt.Errorf("failed to parse styles.xml: %w", err)
				}
				catalog.styles = append(catalog.styles, entry)
			} else {
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}

	return catalog, nil
}

// parseCatalogStyle consumes one w:style subtree, recording its attributes,
// its display name and its byte range
func parseCatalogStyle(d *xml.Decoder, start xml.StartElement, offset int64) (*CatalogStyle, error) {
	entry := &CatalogStyle{start: offset}
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "type":
			entry.Type = attr.Value
		case "styleId":
			entry.StyleID = attr.Value
		}
	}

	depth := 1
	for depth > 0 {
		token, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if depth == 1 && t.Name.Local == "name" {
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						entry.Name = attr.Value
					}
				}
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	entry.end = d.InputOffset()
	return entry, nil
}

// all iterates parsed and added entries in catalog order
func (c *StyleCatalog) all() []*CatalogStyle {
	if len(c.added) == 0 {
		return c.styles
	}
	out := make([]*CatalogStyle, 0, len(c.styles)+len(c.added))
	out = append(out, c.styles...)
	out = append(out, c.added...)
	return out
}

// matchesName reports whether the entry answers to the given name, by
// styleId or by display name
func (cs *CatalogStyle) matchesName(name string) bool {
	return cs.StyleID == name || cs.Name == name
}

// Lookup finds a style by name within a family, or nil
func (c *StyleCatalog) Lookup(name string, family StyleFamily) *CatalogStyle {
	styleType := family.StyleType()
	for _, cs := range c.all() {
		if cs.Type == styleType && cs.matchesName(name) {
			return cs
		}
	}
	return nil
}

// LookupAnyFamily finds a style by name in either applicable family, or nil
func (c *StyleCatalog) LookupAnyFamily(name string) *CatalogStyle {
	for _, cs := range c.all() {
		if _, ok := familyFromStyleType(cs.Type); ok && cs.matchesName(name) {
			return cs
		}
	}
	return nil
}

// Definition extracts a StyleDefinition for the named style, copying its
// w:style element verbatim
func (c *StyleCatalog) Definition(name string, family StyleFamily) (*StyleDefinition, bool) {
	cs := c.Lookup(name, family)
	if cs == nil {
		return nil, false
	}

	styleID := cs.StyleID
	if styleID == "" {
		styleID = name
	}

	outer := cs.outerXML(c.raw)
	copied := make([]byte, len(outer))
	copy(copied, outer)

	return &StyleDefinition{
		Name:     name,
		Family:   family,
		StyleID:  styleID,
		OuterXML: copied,
	}, true
}

// Upsert writes the definition into the catalog, overwriting an existing
// style of the same name and family or appending a new entry. Returns true
// when the catalog content actually changed, so a re-import of an identical
// definition is observably a no-op.
func (c *StyleCatalog) Upsert(def *StyleDefinition) bool {
	if existing := c.Lookup(def.Name, def.Family); existing != nil {
		if bytes.Equal(existing.outerXML(c.raw), def.OuterXML) {
			return false
		}
		existing.outer = def.OuterXML
		existing.StyleID = def.StyleID
		existing.Name = def.Name
		c.changed = true
		return true
	}

	c.added = append(c.added, &CatalogStyle{
		Type:    def.Family.StyleType(),
		StyleID: def.StyleID,
		Name:    def.Name,
		outer:   def.OuterXML,
	})
	c.changed = true
	return true
}

// Changed reports whether the catalog differs from the parsed source
func (c *StyleCatalog) Changed() bool {
	return c.changed
}

// Rebuild serializes the catalog back to styles.xml. Unchanged regions are
// copied from the source bytes; overwritten entries are spliced in place and
// new entries are inserted before the closing tag.
func (c *StyleCatalog) Rebuild() ([]byte, error) {
	if !c.changed {
		return c.raw, nil
	}

	var buf bytes.Buffer
	var pos int64
	for _, cs := range c.styles {
		buf.Write(c.raw[pos:cs.start])
		buf.Write(cs.outerXML(c.raw))
		pos = cs.end
	}

	rest := c.raw[pos:]
	closing := bytes.LastIndex(rest, []byte("</w:styles>"))
	if closing == -1 {
		return nil, fmt.Errorf("failed to rebuild styles.xml: closing tag not found")
	}

	buf.Write(rest[:closing])
	for _, cs := range c.added {
		buf.Write(cs.outer)
	}
	buf.Write(rest[closing:])

	return buf.Bytes(), nil
}
