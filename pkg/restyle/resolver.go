package restyle

import (
	"sync"
)

// Resolver reads style definitions out of reference documents. Reference
// documents are opened read-only and never mutated; parsed catalogs and
// resolved definitions are cached for the duration of a batch run and may be
// read concurrently by multiple workers.
type Resolver struct {
	defs   *StyleCache
	logger *Logger

	mu       sync.RWMutex
	catalogs map[string]*StyleCatalog
}

// NewResolver creates a resolver with a cache built from the global configuration
func NewResolver() *Resolver {
	return NewResolverWithCache(NewStyleCache())
}

// NewResolverWithCache creates a resolver around an existing style cache
func NewResolverWithCache(cache *StyleCache) *Resolver {
	return &Resolver{
		defs:     cache,
		logger:   GetLogger(),
		catalogs: make(map[string]*StyleCatalog),
	}
}

// Resolve locates the named style in the reference document and returns its
// definition. Returns a StyleNotFoundError when the document has no style of
// that name and family.
func (r *Resolver) Resolve(source, name string, family StyleFamily) (*StyleDefinition, error) {
	if def, ok := r.defs.Get(source, name, family); ok {
		return def, nil
	}

	catalog, err := r.catalog(source)
	if err != nil {
		return nil, err
	}

	def, ok := catalog.Definition(name, family)
	if !ok {
		return nil, NewStyleNotFoundError(name, family, source)
	}

	r.logger.WithFields(Fields{
		"source": source,
		"style":  name,
		"family": family,
	}).Debug("resolved style")

	r.defs.Set(source, name, family, def)
	return def, nil
}

// catalog returns the parsed style catalog of a reference document, reading
// and parsing it on first use
func (r *Resolver) catalog(source string) (*StyleCatalog, error) {
	r.mu.RLock()
	catalog, ok := r.catalogs[source]
	r.mu.RUnlock()
	if ok {
		return catalog, nil
	}

	reader, err := DocxReaderFromFile(source)
	if err != nil {
		return nil, NewDocumentError("open", source, err)
	}

	stylesXML, hasStyles, err := reader.GetStylesXML()
	if err != nil {
		return nil, NewDocumentError("read styles", source, err)
	}

	if hasStyles {
		catalog, err = ParseStyleCatalog(stylesXML)
		if err != nil {
			return nil, NewDocumentError("parse styles", source, err)
		}
	} else {
		catalog = NewStyleCatalog()
	}

	r.mu.Lock()
	// Another worker may have parsed the same document meanwhile; keep the
	// first stored catalog so all callers share one instance.
	if existing, ok := r.catalogs[source]; ok {
		catalog = existing
	} else {
		r.catalogs[source] = catalog
	}
	r.mu.Unlock()

	return catalog, nil
}
