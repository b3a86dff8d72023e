// Package source resolves the source-control location of catalog entities.
//
// # Overview
//
// An entity declares where its definition was ingested from through the
// [catalog.AnnotationSourceLocation] annotation, a location reference such
// as "url:https://github.com/org/repo/tree/main/". Resolution turns that
// annotation into a [Location]: the raw target URL plus the type of the SCM
// integration that owns it ("github", "gitlab", ...).
//
// # Fail-soft Contract
//
// Resolution never fails for the caller. A missing annotation, a malformed
// reference or an invalid integration config all mean "no known source
// location":
//
//	loc, ok := source.Resolve(&entity, cfg)
//	if !ok {
//	    // render without a source link
//	}
//
// A target on a host without a configured integration still resolves; only
// [Location.Type] is left empty.
//
// # Diagnostics
//
// [ResolveDetailed] returns a [Result] whose [Reason] tells which step
// decided the outcome, along with the underlying error if there was one.
//
// # Long-lived Resolvers
//
// [Resolve] builds the integration registry from config on every call. A
// caller that owns a stable config can build the registry once and use a
// [Resolver]:
//
//	reg, err := scm.FromConfig(cfg)
//	if err != nil {
//	    return err
//	}
//	r := source.NewResolver(reg)
//	loc, ok := r.Resolve(&entity)
//
// Resolvers are safe for concurrent use.
//
// [catalog.AnnotationSourceLocation]: github.com/matzehuels/sourceloc/pkg/catalog.AnnotationSourceLocation
package source
