package catalog

import (
	"strings"
)

// Well-known annotation keys.
const (
	// AnnotationSourceLocation holds a location reference pointing at the
	// source-control location the entity's definition was ingested from.
	AnnotationSourceLocation = "backstage.io/source-location"

	// AnnotationManagedByLocation holds the location reference of the
	// descriptor file that manages the entity.
	AnnotationManagedByLocation = "backstage.io/managed-by-location"

	// AnnotationManagedByOriginLocation holds the location reference that
	// originally caused the entity to be ingested.
	AnnotationManagedByOriginLocation = "backstage.io/managed-by-origin-location"
)

// DefaultNamespace is assumed when an entity does not declare a namespace.
const DefaultNamespace = "default"

// Entity is a catalog entity descriptor.
type Entity struct {
	APIVersion string         `json:"apiVersion" yaml:"apiVersion"`
	Kind       string         `json:"kind" yaml:"kind"`
	Metadata   Metadata       `json:"metadata" yaml:"metadata"`
	Spec       map[string]any `json:"spec,omitempty" yaml:"spec,omitempty"`
}

// Metadata holds the identifying and descriptive fields of an entity.
type Metadata struct {
	Name        string            `json:"name" yaml:"name"`
	Namespace   string            `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Labels      map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Annotation returns the value stored under key and whether it is set.
// Empty values are reported as unset. Safe to call on a nil *Entity.
func (e *Entity) Annotation(key string) (string, bool) {
	if e == nil || e.Metadata.Annotations == nil {
		return "", false
	}
	v, ok := e.Metadata.Annotations[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Ref returns the entity reference in the form "kind:namespace/name".
// The kind is lowercased and a missing namespace becomes [DefaultNamespace].
func (e *Entity) Ref() string {
	if e == nil {
		return ""
	}
	ns := e.Metadata.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	return strings.ToLower(e.Kind) + ":" + ns + "/" + e.Metadata.Name
}
