package restyle

// ImportStyle writes a resolved style definition into the target's catalog.
// Importing the same identity (name and family) again overwrites, so a
// repeated import of an unchanged definition leaves the catalog as it was.
// A style of the same name under a different family is an ImportConflictError,
// since family decides how the style is applied.
func ImportStyle(doc *TargetDocument, def *StyleDefinition) error {
	catalog := doc.Catalog()

	if catalog.Lookup(def.Name, def.Family) == nil {
		if existing := catalog.LookupAnyFamily(def.Name); existing != nil {
			family, _ := familyFromStyleType(existing.Type)
			return NewImportConflictError(def.Name, def.Family, family)
		}
	}

	changed := catalog.Upsert(def)
	GetLogger().WithFields(Fields{
		"document": doc.Path(),
		"style":    def.Name,
		"family":   def.Family,
		"changed":  changed,
	}).Debug("imported style")

	return nil
}
