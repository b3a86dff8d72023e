// Package github provides the GitHub SCM integration.
//
// # Overview
//
// An [Integration] matches URLs on a GitHub host (github.com or a GitHub
// Enterprise Server host) and derives related URLs for that host.
//
// # Configuration
//
// [ReadConfigs] turns raw config entries into validated [Config] values:
//
//	configs, err := github.ReadConfigs(cfg.Integrations.GitHub)
//
// The public github.com host is always present; when it is not configured
// explicitly a default entry using https://api.github.com and
// https://raw.githubusercontent.com is appended. Enterprise hosts get no
// implicit API URL.
//
// # Edit URLs
//
// [Integration.ResolveEditURL] rewrites blob and tree links to the edit view:
//
//	https://github.com/o/r/blob/main/catalog-info.yaml
//	https://github.com/o/r/edit/main/catalog-info.yaml
package github
