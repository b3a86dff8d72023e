// Package azure provides the Azure DevOps SCM integration.
package azure

import (
	"strings"

	"github.com/matzehuels/sourceloc/pkg/config"
	"github.com/matzehuels/sourceloc/pkg/integrations"
)

// Type is the integration type identifier.
const Type = "azure"

// DefaultHost is the Azure DevOps Services host.
const DefaultHost = "dev.azure.com"

// Config is a validated Azure DevOps integration entry.
type Config struct {
	Host  string
	Token string
}

// ReadConfig validates a single entry. An empty host means [DefaultHost].
func ReadConfig(c config.Integration) (Config, error) {
	out := Config{Host: strings.TrimSpace(c.Host), Token: c.Token}
	if out.Host == "" {
		out.Host = DefaultHost
	}
	if err := integrations.ValidateEntry("Azure", out.Host); err != nil {
		return Config{}, err
	}
	return out, nil
}

// ReadConfigs validates all entries and appends the dev.azure.com default
// when it is not configured.
func ReadConfigs(cs []config.Integration) ([]Config, error) {
	out := make([]Config, 0, len(cs)+1)
	for _, c := range cs {
		cfg, err := ReadConfig(c)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	for _, c := range out {
		if strings.EqualFold(c.Host, DefaultHost) {
			return out, nil
		}
	}
	return append(out, Config{Host: DefaultHost}), nil
}

// Integration is an Azure DevOps integration scoped to one host.
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

func (a *Integration) Type() string   { return Type }
func (a *Integration) Title() string  { return a.cfg.Host }
func (a *Integration) Host() string   { return a.cfg.Host }
func (a *Integration) Config() Config { return a.cfg }

func (a *Integration) ResolveURL(ref, base string) string {
	return integrations.DefaultResolveURL(ref, base)
}

// ResolveEditURL returns url unchanged; Azure Repos file links already open
// in a view with an edit action.
func (a *Integration) ResolveEditURL(url string) string {
	return url
}

var _ integrations.Integration = (*Integration)(nil)
