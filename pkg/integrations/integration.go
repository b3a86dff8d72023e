package integrations

import (
	"net/url"
	"strings"

	"github.com/matzehuels/sourceloc/pkg/errors"
)

// Integration is a configured connector for a single provider host.
//
// Implementations are immutable and safe for concurrent use.
type Integration interface {
	// Type is the short provider identifier, e.g. "github".
	Type() string
	// Title is a human-readable name, usually the host.
	Title() string
	// Host is the host (and optional port) the integration is scoped to.
	Host() string
	// ResolveURL resolves url relative to base. Absolute URLs are returned unchanged.
	ResolveURL(url, base string) string
	// ResolveEditURL returns a URL that opens url for editing, or url itself
	// when the provider has no edit view.
	ResolveEditURL(url string) string
}

// defaultPorts maps schemes to the port implied when a URL omits one.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// HostOf returns the lowercased host (including any port) of an absolute
// URL. The default port of the scheme is dropped, so "https://github.com:443"
// yields "github.com". It reports false when raw is not an absolute URL with
// a host.
func HostOf(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	host := strings.ToLower(u.Host)
	if port := u.Port(); port != "" && port == defaultPorts[strings.ToLower(u.Scheme)] {
		host = strings.TrimSuffix(host, ":"+port)
	}
	return host, true
}

// MatchesHost reports whether raw is an absolute URL on host.
func MatchesHost(raw, host string) bool {
	h, ok := HostOf(raw)
	return ok && strings.EqualFold(h, host)
}

// IsAbsoluteURL reports whether raw parses as a URL with a scheme.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}

// DefaultResolveURL resolves ref against base the way a browser would,
// keeping the query string of base. Absolute refs are returned unchanged.
// If base is not a valid URL, ref is returned unchanged.
func DefaultResolveURL(ref, base string) string {
	return ResolveWithRoot(ref, base, "")
}

// ResolveWithRoot works like [DefaultResolveURL], except that refs starting
// with "/" are resolved against root, a path prefix of base such as the root
// of a repository tree, instead of against the host root. An empty root
// falls back to the host root.
func ResolveWithRoot(ref, base, root string) string {
	if IsAbsoluteURL(ref) {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return ref
	}

	var resolved *url.URL
	if strings.HasPrefix(ref, "/") && root != "" {
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		resolved = &url.URL{
			Scheme: b.Scheme,
			User:   b.User,
			Host:   b.Host,
			Path:   strings.TrimSuffix(root, "/") + r.Path,
		}
	} else {
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		resolved = b.ResolveReference(r)
	}
	resolved.RawQuery = b.RawQuery
	resolved.Fragment = ""
	return resolved.String()
}

// URLField names a base URL setting of a provider entry for validation.
type URLField struct {
	Name  string
	Value string
}

// ValidateEntry checks the host and every non-empty base URL of a provider
// entry, in order. provider is used in error messages, e.g. "GitHub".
func ValidateEntry(provider, host string, fields ...URLField) error {
	if err := errors.ValidateHost(host); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s integration config", provider)
	}
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		if err := errors.ValidateURL(f.Value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s integration config, %s", provider, f.Name)
		}
	}
	return nil
}
