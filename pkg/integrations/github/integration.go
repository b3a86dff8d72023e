package github

import (
	"regexp"

	"github.com/matzehuels/sourceloc/pkg/integrations"
)

// Type is the integration type identifier.
const Type = "github"

// treePattern matches the view segment after owner/repo.
var treePattern = regexp.MustCompile(`//([^/]+)/([^/]+)/([^/]+)/(blob|tree|edit)/`)

// Integration is a GitHub integration scoped to one host.
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
	root := ""
	if loc, err := ParseURL(base); err == nil && loc.Ref != "" {
		root = "/" + loc.Owner + "/" + loc.Repo + "/" + loc.View + "/" + loc.Ref
	}
	return integrations.ResolveWithRoot(url, base, root)
}

// ResolveEditURL rewrites blob, tree and edit links to the edit view.
func (g *Integration) ResolveEditURL(url string) string {
	return replaceURLType(url, "edit")
}

func replaceURLType(url, typ string) string {
	m := treePattern.FindStringSubmatchIndex(url)
	if m == nil {
		return url
	}
	return url[:m[8]] + typ + url[m[9]:]
}

var _ integrations.Integration = (*Integration)(nil)
