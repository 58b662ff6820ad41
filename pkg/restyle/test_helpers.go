// test_helpers.go contains functions that are exposed only for testing purposes.
// These should not be used in production code.

package restyle

import (
	"archive/zip"
	"bytes"
	"strings"
)

// referenceStylesXML is a small but realistic styles part: a paragraph style
// and a character style, plus catalog content the engine must round-trip
// untouched.
const referenceStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:docDefaults><w:rPrDefault><w:rPr><w:sz w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:styleId="Standard"><w:name w:val="Standard"/><w:pPr><w:jc w:val="both"/></w:pPr></w:style>
<w:style w:type="character" w:styleId="HighlightStyle"><w:name w:val="HighlightStyle"/><w:rPr><w:b/><w:color w:val="FF0000"/></w:rPr></w:style>
</w:styles>`

// minimalStylesXML has only a default paragraph style
const minimalStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:styleId="Normal" w:default="1"><w:name w:val="Normal"/></w:style>
</w:styles>`

// buildDocumentXML wraps paragraph texts in a minimal document.xml. Texts
// must be XML-safe; test inputs are plain.
func buildDocumentXML(paragraphs ...string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, text := range paragraphs {
		sb.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		sb.WriteString(text)
		sb.WriteString(`</w:t></w:r></w:p>`)
	}
	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

// createDOCXBytes builds a complete in-memory DOCX package. An empty
// stylesXML omits the styles part entirely.
func createDOCXBytes(stylesXML string, paragraphs ...string) []byte {
	return createDOCXBytesWithDocument(stylesXML, buildDocumentXML(paragraphs...))
}

// createDOCXBytesWithDocument builds a package around a complete document.xml
func createDOCXBytesWithDocument(stylesXML, documentXML string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`
	if stylesXML != "" {
		contentTypes += `<Override PartName="/word/styles.xml" ContentType="` + stylesContentType + `"/>`
	}
	contentTypes += `</Types>`

	f, _ := w.Create("[Content_Types].xml")
	f.Write([]byte(contentTypes))

	f, _ = w.Create("_rels/.rels")
	f.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`))

	f, _ = w.Create("word/document.xml")
	f.Write([]byte(documentXML))

	if stylesXML != "" {
		f, _ = w.Create("word/styles.xml")
		f.Write([]byte(stylesXML))
	}

	w.Close()
	return buf.Bytes()
}

// createSimpleDOCXBytes builds a target document with a minimal styles part
func createSimpleDOCXBytes(paragraphs ...string) []byte {
	return createDOCXBytes(minimalStylesXML, paragraphs...)
}

// createReferenceDOCXBytes builds a reference document defining Standard
// (paragraph) and HighlightStyle (character)
func createReferenceDOCXBytes() []byte {
	return createDOCXBytes(referenceStylesXML, "reference content")
}
