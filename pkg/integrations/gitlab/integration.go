package gitlab

import (
	"regexp"
	"strings"

	"github.com/matzehuels/sourceloc/pkg/integrations"
)

// Type is the integration type identifier.
const Type = "gitlab"

var viewPattern = regexp.MustCompile(`/-/(blob|tree|edit)/`)

// Integration is a GitLab integration scoped to one host.
type Integration struct {
	cfg Config
}

// New creates an Integration from a validated config.
func New(cfg Config) *Integration {
	return &Integration{cfg: cfg}
}

// FromConfigs creates one integration per config, in order.
func FromConfigs(cs []Config) []*Integration {
	out := make([]*Integration, len(cs))
	for i, c := range cs {
		out[i] = New(c)
	}
	return out
}

func (g *Integration) Type() string   { return Type }
func (g *Integration) Title() string  { return g.cfg.Host }
func (g *Integration) Host() string   { return g.cfg.Host }
func (g *Integration) Config() Config { return g.cfg }

// ResolveURL resolves url against base. Refs starting with "/" are taken
// relative to the repository tree of base when base is a blob or tree URL.
func (g *Integration) ResolveURL(url, base string) string {
	return integrations.ResolveWithRoot(url, base, treeRoot(base))
}

// ResolveEditURL rewrites blob, tree and edit links to the edit view.
func (g *Integration) ResolveEditURL(url string) string {
	m := viewPattern.FindStringSubmatchIndex(url)
	if m == nil {
		return url
	}
	return url[:m[2]] + "edit" + url[m[3]:]
}

// treeRoot returns the path up to and including the ref of a blob or tree
// URL, e.g. "/group/project/-/blob/main".
func treeRoot(base string) string {
	i := strings.Index(base, "://")
	if i < 0 {
		return ""
	}
	rest := base[i+3:]
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return ""
	}
	path := rest[slash:]
	if q := strings.IndexAny(path, "?#"); q >= 0 {
		path = path[:q]
	}

	m := viewPattern.FindStringIndex(path)
	if m == nil {
		return ""
	}
	ref, _, _ := strings.Cut(path[m[1]:], "/")
	if ref == "" {
		return ""
	}
	return path[:m[1]] + ref
}

var _ integrations.Integration = (*Integration)(nil)
