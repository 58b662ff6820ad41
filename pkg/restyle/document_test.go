package restyle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path   string
		suffix string
		want   string
	}{
		{"report.docx", "_EDITED", "report_EDITED.docx"},
		{"/tmp/in/report.docx", "_EDITED", "/tmp/in/report_EDITED.docx"},
		{"noext", "_EDITED", "noext_EDITED"},
		{"archive.tar.docx", "-v2", "archive.tar-v2.docx"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.path, tt.suffix); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.path, tt.suffix, got, tt.want)
		}
	}
}

func TestOpenTarget(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := openTestTarget(t, createSimpleDOCXBytes("first", "second"))
		if len(doc.Paragraphs()) != 2 {
			t.Errorf("got %d paragraphs, want 2", len(doc.Paragraphs()))
		}
		if doc.Catalog().Lookup("Normal", FamilyParagraph) == nil {
			t.Error("catalog missing Normal style")
		}
	})

	t.Run("document without styles part", func(t *testing.T) {
		doc := openTestTarget(t, createDOCXBytes("", "text"))
		if doc.Catalog() == nil {
			t.Fatal("expected empty catalog")
		}
		if doc.Catalog().LookupAnyFamily("Normal") != nil {
			t.Error("empty catalog should have no styles")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenTarget("/nonexistent/file.docx")
		if !IsDocumentError(err) {
			t.Errorf("OpenTarget() error = %v, want DocumentError", err)
		}
	})

	t.Run("not a docx", func(t *testing.T) {
		path := writeTestFile(t, "bad.docx", []byte("not a zip"))
		if _, err := OpenTarget(path); !IsDocumentError(err) {
			t.Errorf("OpenTarget() error = %v, want DocumentError", err)
		}
	})
}

func TestTargetDocumentSave(t *testing.T) {
	t.Run("styled output round-trips", func(t *testing.T) {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "in.docx")
		if err := os.WriteFile(inPath, createSimpleDOCXBytes("++ IMPORTANT: contact support"), 0644); err != nil {
			t.Fatal(err)
		}

		doc, err := OpenTarget(inPath)
		if err != nil {
			t.Fatalf("OpenTarget() error = %v", err)
		}

		highlight := &StyleDefinition{
			Name:     "HighlightStyle",
			Family:   FamilyText,
			StyleID:  "HighlightStyle",
			OuterXML: []byte(`<w:style w:type="character" w:styleId="HighlightStyle"><w:name w:val="HighlightStyle"/><w:rPr><w:b/></w:rPr></w:style>`),
		}
		if err := ImportStyle(doc, highlight); err != nil {
			t.Fatalf("ImportStyle() error = %v", err)
		}
		if err := ApplyStyle(doc, MatchSite{Paragraph: 0, Start: 14, End: 29}, highlight); err != nil {
			t.Fatalf("ApplyStyle() error = %v", err)
		}

		outPath := filepath.Join(dir, "out.docx")
		if err := doc.Save(outPath); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		// The output is a valid package with the styled run and catalog
		saved, err := OpenTarget(outPath)
		if err != nil {
			t.Fatalf("reopen error = %v", err)
		}
		if got := saved.Paragraphs()[0].GetText(); got != "++ IMPORTANT: contact support" {
			t.Errorf("text changed: %q", got)
		}
		runs := saved.Paragraphs()[0].Runs()
		if len(runs) != 2 || runs[0].StyleID() != "" || runs[1].StyleID() != "HighlightStyle" {
			t.Errorf("unexpected run structure after round trip: %d runs", len(runs))
		}
		if saved.Catalog().Lookup("HighlightStyle", FamilyText) == nil {
			t.Error("saved catalog missing imported style")
		}

		// Unrelated parts are copied through
		reader, err := DocxReaderFromFile(outPath)
		if err != nil {
			t.Fatalf("DocxReaderFromFile() error = %v", err)
		}
		rels, err := reader.GetPart("_rels/.rels")
		if err != nil {
			t.Fatalf("GetPart(_rels/.rels) error = %v", err)
		}
		if !bytes.Contains(rels, []byte("Relationships")) {
			t.Errorf("rels part corrupted: %s", rels)
		}
	})

	t.Run("adds styles part when source had none", func(t *testing.T) {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "in.docx")
		if err := os.WriteFile(inPath, createDOCXBytes("", "text"), 0644); err != nil {
			t.Fatal(err)
		}

		doc, err := OpenTarget(inPath)
		if err != nil {
			t.Fatalf("OpenTarget() error = %v", err)
		}
		def := &StyleDefinition{
			Name:     "Standard",
			Family:   FamilyParagraph,
			StyleID:  "Standard",
			OuterXML: []byte(`<w:style w:type="paragraph" w:styleId="Standard"><w:name w:val="Standard"/></w:style>`),
		}
		if err := ImportStyle(doc, def); err != nil {
			t.Fatalf("ImportStyle() error = %v", err)
		}

		outPath := filepath.Join(dir, "out.docx")
		if err := doc.Save(outPath); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		reader, err := DocxReaderFromFile(outPath)
		if err != nil {
			t.Fatalf("DocxReaderFromFile() error = %v", err)
		}
		if _, ok := reader.Parts["word/styles.xml"]; !ok {
			t.Fatal("output missing word/styles.xml")
		}
		contentTypes, err := reader.GetPart("[Content_Types].xml")
		if err != nil {
			t.Fatalf("GetPart() error = %v", err)
		}
		if !bytes.Contains(contentTypes, []byte(`PartName="/word/styles.xml"`)) {
			t.Errorf("content types not patched: %s", contentTypes)
		}
	})

	t.Run("failed save leaves no output", func(t *testing.T) {
		doc := openTestTarget(t, createSimpleDOCXBytes("x"))

		outPath := filepath.Join(t.TempDir(), "missing-dir", "out.docx")
		if err := doc.Save(outPath); err == nil {
			t.Fatal("Save() into missing directory: expected error")
		}
		if _, err := os.Stat(outPath); !os.IsNotExist(err) {
			t.Error("output file exists after failed save")
		}
	})
}
