package restyle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	wpxml "github.com/benjaminschreck/go-restyle/pkg/restyle/xml"
)

const stylesContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"

// TargetDocument is one mutable unit of work in a batch: the parsed body of
// a DOCX file plus its style catalog. Each document is owned by exactly one
// worker for the duration of its processing.
type TargetDocument struct {
	path      string
	reader    *DocxReader
	document  *wpxml.Document
	catalog   *StyleCatalog
	hadStyles bool
}

// OpenTarget opens a DOCX file for styling
func OpenTarget(path string) (*TargetDocument, error) {
	reader, err := DocxReaderFromFile(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}

	docXML, err := reader.GetDocumentXML()
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}

	document, err := wpxml.ParseDocument(bytes.NewReader(docXML))
	if err != nil {
		return nil, NewDocumentError("parse", path, err)
	}

	stylesXML, hasStyles, err := reader.GetStylesXML()
	if err != nil {
		return nil, NewDocumentError("read styles", path, err)
	}

	var catalog *StyleCatalog
	if hasStyles {
		catalog, err = ParseStyleCatalog(stylesXML)
		if err != nil {
			return nil, NewDocumentError("parse styles", path, err)
		}
	} else {
		catalog = NewStyleCatalog()
	}

	return &TargetDocument{
		path:      path,
		reader:    reader,
		document:  document,
		catalog:   catalog,
		hadStyles: hasStyles,
	}, nil
}

// Path returns the source file path
func (d *TargetDocument) Path() string {
	return d.path
}

// Paragraphs returns the document's paragraphs in document order. Paragraphs
// inside tables and other container elements are not included.
func (d *TargetDocument) Paragraphs() []*wpxml.Paragraph {
	return d.document.Body.Paragraphs()
}

// Catalog returns the document's style catalog
func (d *TargetDocument) Catalog() *StyleCatalog {
	return d.catalog
}

// Save writes the styled document to outPath. The package is rebuilt part by
// part from the source archive, replacing only word/document.xml and
// word/styles.xml. The output appears atomically: it is written to a
// temporary file in the same directory and renamed on success, so a failed
// save leaves no partial file behind.
func (d *TargetDocument) Save(outPath string) error {
	docXML, err := d.document.Marshal()
	if err != nil {
		return NewDocumentError("serialize", d.path, err)
	}

	stylesXML, err := d.catalog.Rebuild()
	if err != nil {
		return NewDocumentError("serialize styles", d.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".restyle-*.docx")
	if err != nil {
		return NewDocumentError("save", outPath, err)
	}
	tmpName := tmp.Name()

	if err := d.writePackage(tmp, docXML, stylesXML); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewDocumentError("save", outPath, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewDocumentError("save", outPath, err)
	}

	if err := os.Rename(tmpName, outPath); err != nil {
		os.Remove(tmpName)
		return NewDocumentError("save", outPath, err)
	}

	return nil
}

// writePackage writes the full DOCX archive with the replaced parts
func (d *TargetDocument) writePackage(w io.Writer, docXML, stylesXML []byte) error {
	zw := zip.NewWriter(w)

	for _, file := range d.reader.Files() {
		out, err := zw.Create(file.Name)
		if err != nil {
			return fmt.Errorf("failed to create part %s: %w", file.Name, err)
		}

		switch {
		case file.Name == "word/document.xml":
			_, err = out.Write(docXML)
		case file.Name == "word/styles.xml":
			_, err = out.Write(stylesXML)
		case file.Name == "[Content_Types].xml" && !d.hadStyles:
			var content []byte
			content, err = d.reader.GetPart(file.Name)
			if err == nil {
				_, err = out.Write(addStylesContentType(content))
			}
		default:
			var rc io.ReadCloser
			rc, err = file.Open()
			if err == nil {
				_, err = io.Copy(out, rc)
				rc.Close()
			}
		}
		if err != nil {
			return fmt.Errorf("failed to write part %s: %w", file.Name, err)
		}
	}

	// Documents without a styles part get one added
	if !d.hadStyles {
		out, err := zw.Create("word/styles.xml")
		if err != nil {
			return fmt.Errorf("failed to create part word/styles.xml: %w", err)
		}
		if _, err := out.Write(stylesXML); err != nil {
			return fmt.Errorf("failed to write part word/styles.xml: %w", err)
		}
	}

	return zw.Close()
}

// addStylesContentType registers word/styles.xml in [Content_Types].xml if
// it is not declared yet
func addStylesContentType(contentTypes []byte) []byte {
	s := string(contentTypes)
	if strings.Contains(s, `PartName="/word/styles.xml"`) {
		return contentTypes
	}

	closing := strings.LastIndex(s, "</Types>")
	if closing == -1 {
		return contentTypes
	}

	override := `<Override PartName="/word/styles.xml" ContentType="` + stylesContentType + `"/>`
	return []byte(s[:closing] + override + s[closing:])
}

// OutputPath applies the output naming convention: the suffix goes between
// the base name and the extension
func OutputPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
