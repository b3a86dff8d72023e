package gitlab

import (
	"strings"

	"github.com/matzehuels/sourceloc/pkg/config"
	"github.com/matzehuels/sourceloc/pkg/integrations"
)

// DefaultHost is the public GitLab host.
const DefaultHost = "gitlab.com"

// Config is a validated GitLab integration entry.
type Config struct {
	Host       string
	APIBaseURL string
	BaseURL    string
	Token      string
}

// ReadConfig validates a single entry and applies defaults. An empty host
// means [DefaultHost].
func ReadConfig(c config.Integration) (Config, error) {
	out := Config{
		Host:       strings.TrimSpace(c.Host),
		APIBaseURL: strings.TrimSuffix(c.APIBaseURL, "/"),
		BaseURL:    strings.TrimSuffix(c.BaseURL, "/"),
		Token:      c.Token,
	}
	if out.Host == "" {
		out.Host = DefaultHost
	}
	if out.APIBaseURL == "" {
		out.APIBaseURL = "https://" + out.Host + "/api/v4"
	}
	if out.BaseURL == "" {
		out.BaseURL = "https://" + out.Host
	}

	if err := integrations.ValidateEntry("GitLab", out.Host,
		integrations.URLField{Name: "apiBaseUrl", Value: out.APIBaseURL},
		integrations.URLField{Name: "baseUrl", Value: out.BaseURL},
	); err != nil {
		return Config{}, err
	}
	return out, nil
}

// ReadConfigs validates all entries and appends the gitlab.com default when
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
