package source

// Location is the resolved source location of an entity.
type Location struct {
	// URL is the raw target of the source-location reference.
	URL string `json:"url"`
	// Type is the type of the integration that owns URL, or empty when no
	// configured integration matched.
	Type string `json:"type,omitempty"`
}

// Reason tells which step decided a resolution outcome.
type Reason string

// Resolution reasons.
const (
	// ReasonResolved means the target matched a configured integration.
	ReasonResolved Reason = "resolved"
	// ReasonNoIntegration means the target resolved but no integration
	// matched its host. The location is still returned without a type.
	ReasonNoIntegration Reason = "no_integration"
	// ReasonNoAnnotation means the entity declares no source location.
	ReasonNoAnnotation Reason = "no_annotation"
	// ReasonInvalidReference means the annotation is not a valid location reference.
	ReasonInvalidReference Reason = "invalid_reference"
	// ReasonInvalidConfig means the integration registry could not be built.
	ReasonInvalidConfig Reason = "invalid_config"
)

// HasLocation reports whether the reason carries a location.
func (r Reason) HasLocation() bool {
	return r == ReasonResolved || r == ReasonNoIntegration
}

// Result is the outcome of a resolution with its diagnostic reason.
type Result struct {
	Location Location
	Reason   Reason
	// Err is the failure behind ReasonInvalidReference or ReasonInvalidConfig.
	Err error
}

// OK reports whether the result carries a location.
func (r Result) OK() bool {
	return r.Reason.HasLocation()
}
