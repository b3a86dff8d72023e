package github

import (
	"strings"

	"github.com/matzehuels/sourceloc/pkg/config"
	"github.com/matzehuels/sourceloc/pkg/integrations"
)

// Defaults for the public github.com host.
const (
	DefaultHost       = "github.com"
	DefaultAPIBaseURL = "https://api.github.com"
	DefaultRawBaseURL = "https://raw.githubusercontent.com"
)

// Config is a validated GitHub integration entry.
type Config struct {
	Host       string // e.g. "github.com" or "ghe.example.com"
	APIBaseURL string // REST API root, empty if unknown
	RawBaseURL string // raw content root, empty if unknown
	Token      string // optional
}

// ReadConfig validates a single entry and applies defaults. An empty host
// means [DefaultHost].
func ReadConfig(c config.Integration) (Config, error) {
	out := Config{
		Host:       strings.TrimSpace(c.Host),
		APIBaseURL: strings.TrimSuffix(c.APIBaseURL, "/"),
		RawBaseURL: strings.TrimSuffix(c.RawBaseURL, "/"),
		Token:      c.Token,
	}
	if out.Host == "" {
		out.Host = DefaultHost
	}
	if strings.EqualFold(out.Host, DefaultHost) {
		if out.APIBaseURL == "" {
			out.APIBaseURL = DefaultAPIBaseURL
		}
		if out.RawBaseURL == "" {
			out.RawBaseURL = DefaultRawBaseURL
		}
	}

	if err := integrations.ValidateEntry("GitHub", out.Host,
		integrations.URLField{Name: "apiBaseUrl", Value: out.APIBaseURL},
		integrations.URLField{Name: "rawBaseUrl", Value: out.RawBaseURL},
	); err != nil {
		return Config{}, err
	}
	return out, nil
}

// ReadConfigs validates all entries and appends the github.com default when
// it is not configured.
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
