// Package bitbucket provides the Bitbucket SCM integration, covering both
// Bitbucket Cloud (bitbucket.org) and self-hosted Bitbucket Server.
package bitbucket

import (
	"net/url"
	"strings"

	"github.com/matzehuels/sourceloc/pkg/config"
	"github.com/matzehuels/sourceloc/pkg/integrations"
)

// Type is the integration type identifier.
const Type = "bitbucket"

// Defaults for Bitbucket Cloud.
const (
	DefaultHost       = "bitbucket.org"
	DefaultAPIBaseURL = "https://api.bitbucket.org/2.0"
)

// Config is a validated Bitbucket integration entry.
type Config struct {
	Host       string
	APIBaseURL string
	Token      string
}

// ReadConfig validates a single entry and applies defaults. Server hosts
// default to the REST 1.0 API below the host.
func ReadConfig(c config.Integration) (Config, error) {
	out := Config{
		Host:       strings.TrimSpace(c.Host),
		APIBaseURL: strings.TrimSuffix(c.APIBaseURL, "/"),
		Token:      c.Token,
	}
	if out.Host == "" {
		out.Host = DefaultHost
	}
	if out.APIBaseURL == "" {
		if strings.EqualFold(out.Host, DefaultHost) {
			out.APIBaseURL = DefaultAPIBaseURL
		} else {
			out.APIBaseURL = "https://" + out.Host + "/rest/api/1.0"
		}
	}

	if err := integrations.ValidateEntry("Bitbucket", out.Host,
		integrations.URLField{Name: "apiBaseUrl", Value: out.APIBaseURL},
	); err != nil {
		return Config{}, err
	}
	return out, nil
}

// ReadConfigs validates all entries and appends the bitbucket.org default
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
	def, _ := ReadConfig(config.Integration{Host: DefaultHost})
	return append(out, def), nil
}

// Integration is a Bitbucket integration scoped to one host.
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

func (b *Integration) Type() string   { return Type }
func (b *Integration) Title() string  { return b.cfg.Host }
func (b *Integration) Host() string   { return b.cfg.Host }
func (b *Integration) Config() Config { return b.cfg }

func (b *Integration) ResolveURL(ref, base string) string {
	return integrations.DefaultResolveURL(ref, base)
}

// ResolveEditURL opens the file in the web editor by setting mode=edit.
// Bitbucket Cloud additionally needs spa=0 to bypass the single page app.
func (b *Integration) ResolveEditURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return raw
	}
	q := u.Query()
	q.Set("mode", "edit")
	if strings.EqualFold(b.cfg.Host, DefaultHost) {
		q.Set("spa", "0")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

var _ integrations.Integration = (*Integration)(nil)
