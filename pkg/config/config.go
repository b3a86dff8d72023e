// Package config loads sourceloc application configuration.
//
// The configuration mirrors the integrations section of a catalog app-config
// file. Only the integrations are interpreted; other top-level keys are
// ignored so existing app-config files can be used as-is.
//
//	integrations:
//	  github:
//	    - host: github.com
//	      token: ${GITHUB_TOKEN}
//	  gitlab:
//	    - host: gitlab.example.com
//	      apiBaseUrl: https://gitlab.example.com/api/v4
//
// Files ending in ".toml" are decoded as TOML, anything else as YAML (which
// includes JSON). Environment variables referenced as ${NAME} or $NAME are
// substituted before decoding.
package config

// Config is the root configuration document.
type Config struct {
	Integrations Integrations `json:"integrations" toml:"integrations"`
}

// Integrations lists the configured SCM integrations per provider type.
type Integrations struct {
	GitHub    []Integration `json:"github,omitempty" toml:"github"`
	GitLab    []Integration `json:"gitlab,omitempty" toml:"gitlab"`
	Bitbucket []Integration `json:"bitbucket,omitempty" toml:"bitbucket"`
	Azure     []Integration `json:"azure,omitempty" toml:"azure"`
}

// Integration is a single provider entry. Which fields are meaningful
// depends on the provider; unset fields take provider defaults.
type Integration struct {
	Host       string `json:"host,omitempty" toml:"host"`
	APIBaseURL string `json:"apiBaseUrl,omitempty" toml:"apiBaseUrl"`
	BaseURL    string `json:"baseUrl,omitempty" toml:"baseUrl"`
	RawBaseURL string `json:"rawBaseUrl,omitempty" toml:"rawBaseUrl"`
	Token      string `json:"token,omitempty" toml:"token"`
}

// Len returns the number of explicitly configured integration entries.
func (i Integrations) Len() int {
	return len(i.GitHub) + len(i.GitLab) + len(i.Bitbucket) + len(i.Azure)
}
