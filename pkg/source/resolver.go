package source

import (
	"time"

	"github.com/matzehuels/sourceloc/pkg/catalog"
	"github.com/matzehuels/sourceloc/pkg/config"
	"github.com/matzehuels/sourceloc/pkg/integrations"
	"github.com/matzehuels/sourceloc/pkg/location"
	"github.com/matzehuels/sourceloc/pkg/observability"
	"github.com/matzehuels/sourceloc/pkg/scm"
)

// Entity is the part of a catalog entity the resolver reads.
// [*catalog.Entity] implements it.
type Entity interface {
	Annotation(key string) (string, bool)
}

// Registry finds the integration owning a URL. [*scm.Integrations] implements it.
type Registry interface {
	ByURL(url string) (integrations.Integration, bool)
}

// Resolve returns the source location of entity, building the integration
// registry from cfg. It reports false when the entity has no resolvable
// source location.
func Resolve(entity Entity, cfg *config.Config) (Location, bool) {
	res := ResolveDetailed(entity, cfg)
	return res.Location, res.OK()
}

// ResolveDetailed is like [Resolve] but reports why resolution ended the way
// it did.
func ResolveDetailed(entity Entity, cfg *config.Config) Result {
	return resolve(entity, func() (Registry, error) {
		reg, err := scm.FromConfig(cfg)
		if err != nil {
			return nil, err
		}
		return reg, nil
	}, settings{hooks: observability.Resolve()})
}

// Option configures a [Resolver].
type Option func(*settings)

type settings struct {
	hooks           observability.ResolveHooks
	managedFallback bool
}

// WithHooks sends resolution events to h instead of the globally registered hooks.
func WithHooks(h observability.ResolveHooks) Option {
	return func(s *settings) {
		if h != nil {
			s.hooks = h
		}
	}
}

// WithManagedByFallback makes entities without a source-location annotation
// fall back to their managed-by location, provided it is a url: reference.
func WithManagedByFallback() Option {
	return func(s *settings) { s.managedFallback = true }
}

// Resolver resolves source locations against a registry owned by the
// caller. The zero value is not usable; use [NewResolver].
type Resolver struct {
	registry Registry
	settings settings
}

// NewResolver creates a Resolver that looks integrations up in reg.
// A nil reg behaves like a registry that never matches.
func NewResolver(reg Registry, opts ...Option) *Resolver {
	s := settings{hooks: observability.Resolve()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Resolver{registry: reg, settings: s}
}

// Resolve returns the source location of entity.
func (r *Resolver) Resolve(entity Entity) (Location, bool) {
	res := r.ResolveDetailed(entity)
	return res.Location, res.OK()
}

// ResolveDetailed returns the source location of entity with its reason.
func (r *Resolver) ResolveDetailed(entity Entity) Result {
	return resolve(entity, func() (Registry, error) { return r.registry, nil }, r.settings)
}

func resolve(entity Entity, registry func() (Registry, error), s settings) Result {
	start := time.Now()
	res := resolveSteps(entity, registry, s)
	if s.hooks != nil {
		s.hooks.OnResolve(entityRef(entity), string(res.Reason), res.Location.Type, time.Since(start), res.Err)
	}
	return res
}

func resolveSteps(entity Entity, registry func() (Registry, error), s settings) Result {
	ref, ok := annotation(entity, s)
	if !ok {
		return Result{Reason: ReasonNoAnnotation}
	}

	parsed, err := location.ParseReference(ref)
	if err != nil {
		return Result{Reason: ReasonInvalidReference, Err: err}
	}

	reg, err := registry()
	if err != nil {
		return Result{Reason: ReasonInvalidConfig, Err: err}
	}

	loc := Location{URL: parsed.Target}
	if reg == nil {
		return Result{Location: loc, Reason: ReasonNoIntegration}
	}
	in, ok := reg.ByURL(parsed.Target)
	if !ok {
		return Result{Location: loc, Reason: ReasonNoIntegration}
	}
	loc.Type = in.Type()
	return Result{Location: loc, Reason: ReasonResolved}
}

func annotation(entity Entity, s settings) (string, bool) {
	if entity == nil {
		return "", false
	}
	if v, ok := entity.Annotation(catalog.AnnotationSourceLocation); ok {
		return v, true
	}
	if !s.managedFallback {
		return "", false
	}
	v, ok := entity.Annotation(catalog.AnnotationManagedByLocation)
	if !ok {
		return "", false
	}
	if ref, err := location.ParseReference(v); err != nil || !ref.IsURL() {
		return "", false
	}
	return v, true
}

func entityRef(entity Entity) string {
	if r, ok := entity.(interface{ Ref() string }); ok {
		return r.Ref()
	}
	return ""
}
