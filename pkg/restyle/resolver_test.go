package restyle

import (
	"bytes"
	"testing"
)

func TestResolverResolve(t *testing.T) {
	refPath := writeTestFile(t, "template.docx", createReferenceDOCXBytes())
	resolver := NewResolverWithCache(NewStyleCacheWithConfig(CacheConfig{MaxSize: 10}))

	t.Run("resolves paragraph style", func(t *testing.T) {
		def, err := resolver.Resolve(refPath, "Standard", FamilyParagraph)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if def.StyleID != "Standard" || def.Family != FamilyParagraph {
			t.Errorf("got StyleID=%q Family=%q", def.StyleID, def.Family)
		}
		if !bytes.Contains(def.OuterXML, []byte(`w:styleId="Standard"`)) {
			t.Errorf("OuterXML = %s", def.OuterXML)
		}
	})

	t.Run("resolves character style for text family", func(t *testing.T) {
		def, err := resolver.Resolve(refPath, "HighlightStyle", FamilyText)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !bytes.Contains(def.OuterXML, []byte(`w:type="character"`)) {
			t.Errorf("OuterXML = %s", def.OuterXML)
		}
	})

	t.Run("missing style", func(t *testing.T) {
		_, err := resolver.Resolve(refPath, "Missing", FamilyParagraph)
		if !IsStyleNotFoundError(err) {
			t.Fatalf("Resolve() error = %v, want StyleNotFoundError", err)
		}
		notFound := err.(*StyleNotFoundError)
		if notFound.Name != "Missing" || notFound.Source != refPath {
			t.Errorf("error fields = %+v", notFound)
		}
	})

	t.Run("wrong family", func(t *testing.T) {
		_, err := resolver.Resolve(refPath, "Standard", FamilyText)
		if !IsStyleNotFoundError(err) {
			t.Fatalf("Resolve() error = %v, want StyleNotFoundError", err)
		}
	})

	t.Run("missing reference document", func(t *testing.T) {
		_, err := resolver.Resolve("/nonexistent/template.docx", "Standard", FamilyParagraph)
		if !IsDocumentError(err) {
			t.Fatalf("Resolve() error = %v, want DocumentError", err)
		}
	})
}

func TestResolverCaching(t *testing.T) {
	refPath := writeTestFile(t, "template.docx", createReferenceDOCXBytes())
	cache := NewStyleCacheWithConfig(CacheConfig{MaxSize: 10})
	resolver := NewResolverWithCache(cache)

	first, err := resolver.Resolve(refPath, "Standard", FamilyParagraph)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cache.Size() != 1 {
		t.Errorf("cache size = %d, want 1", cache.Size())
	}

	second, err := resolver.Resolve(refPath, "Standard", FamilyParagraph)
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}
	if first != second {
		t.Error("second Resolve() did not return the cached definition")
	}
}

func TestResolverConcurrentAccess(t *testing.T) {
	refPath := writeTestFile(t, "template.docx", createReferenceDOCXBytes())
	resolver := NewResolver()

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := resolver.Resolve(refPath, "HighlightStyle", FamilyText)
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent Resolve() error = %v", err)
		}
	}
}
