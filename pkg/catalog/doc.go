// Package catalog defines the catalog entity model consumed by sourceloc.
//
// # Overview
//
// An [Entity] is a catalog-managed resource record. Only a small part of the
// record matters here: the metadata annotations, a flat string map holding
// well-known keys such as [AnnotationSourceLocation].
//
// # Annotation Lookup
//
// Annotations are read through [Entity.Annotation], which reports absence
// as a second return value instead of an error:
//
//	if ref, ok := entity.Annotation(catalog.AnnotationSourceLocation); ok {
//	    // ref is e.g. "url:https://github.com/org/repo/tree/main/"
//	}
//
// A missing metadata block, a nil annotation map and an empty value are all
// reported as absent.
//
// # Loading
//
// [ParseEntities] and [LoadFile] read catalog descriptor files. YAML files
// may contain several documents separated by "---"; JSON files hold a single
// entity or an array of entities.
package catalog
