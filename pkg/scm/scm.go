// Package scm provides the registry of configured SCM integrations.
//
// [FromConfig] builds an [Integrations] value from application config. The
// result is immutable and safe for concurrent use, so callers may build it
// once and share it, or build it per lookup when the config may change.
//
//	reg, err := scm.FromConfig(cfg)
//	if err != nil {
//	    return err
//	}
//	if in, ok := reg.ByURL("https://github.com/org/repo"); ok {
//	    fmt.Println(in.Type()) // github
//	}
package scm

import (
	"strings"

	"github.com/matzehuels/sourceloc/pkg/config"
	"github.com/matzehuels/sourceloc/pkg/errors"
	"github.com/matzehuels/sourceloc/pkg/integrations"
	"github.com/matzehuels/sourceloc/pkg/integrations/azure"
	"github.com/matzehuels/sourceloc/pkg/integrations/bitbucket"
	"github.com/matzehuels/sourceloc/pkg/integrations/github"
	"github.com/matzehuels/sourceloc/pkg/integrations/gitlab"
)

// Integrations is the collection of configured integrations, queryable by
// URL or host. Lookups search GitHub, GitLab, Bitbucket and Azure in that
// order, and integrations of one type in configuration order. A nil
// *Integrations is an empty registry.
type Integrations struct {
	github    []*github.Integration
	gitlab    []*gitlab.Integration
	bitbucket []*bitbucket.Integration
	azure     []*azure.Integration
	all       []integrations.Integration
}

// FromConfig reads every provider section of cfg. A nil cfg yields only the
// default public integrations. Invalid entries fail the whole registry with
// [errors.ErrCodeInvalidConfig].
func FromConfig(cfg *config.Config) (*Integrations, error) {
	var in config.Integrations
	if cfg != nil {
		in = cfg.Integrations
	}

	gh, err := github.ReadConfigs(in.GitHub)
	if err != nil {
		return nil, wrapConfig(err, github.Type)
	}
	gl, err := gitlab.ReadConfigs(in.GitLab)
	if err != nil {
		return nil, wrapConfig(err, gitlab.Type)
	}
	bb, err := bitbucket.ReadConfigs(in.Bitbucket)
	if err != nil {
		return nil, wrapConfig(err, bitbucket.Type)
	}
	az, err := azure.ReadConfigs(in.Azure)
	if err != nil {
		return nil, wrapConfig(err, azure.Type)
	}

	return New(github.FromConfigs(gh), gitlab.FromConfigs(gl), bitbucket.FromConfigs(bb), azure.FromConfigs(az)), nil
}

// New assembles a registry from already constructed integrations.
func New(gh []*github.Integration, gl []*gitlab.Integration, bb []*bitbucket.Integration, az []*azure.Integration) *Integrations {
	s := &Integrations{github: gh, gitlab: gl, bitbucket: bb, azure: az}
	s.all = make([]integrations.Integration, 0, len(gh)+len(gl)+len(bb)+len(az))
	for _, i := range gh {
		s.all = append(s.all, i)
	}
	for _, i := range gl {
		s.all = append(s.all, i)
	}
	for _, i := range bb {
		s.all = append(s.all, i)
	}
	for _, i := range az {
		s.all = append(s.all, i)
	}
	return s
}

func wrapConfig(err error, typ string) error {
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "integrations.%s", typ)
}

// List returns all integrations in lookup order.
func (s *Integrations) List() []integrations.Integration {
	if s == nil {
		return nil
	}
	out := make([]integrations.Integration, len(s.all))
	copy(out, s.all)
	return out
}

func (s *Integrations) GitHub() []*github.Integration {
	if s == nil {
		return nil
	}
	return s.github
}

func (s *Integrations) GitLab() []*gitlab.Integration {
	if s == nil {
		return nil
	}
	return s.gitlab
}

func (s *Integrations) Bitbucket() []*bitbucket.Integration {
	if s == nil {
		return nil
	}
	return s.bitbucket
}

func (s *Integrations) Azure() []*azure.Integration {
	if s == nil {
		return nil
	}
	return s.azure
}

// ByURL returns the integration whose host matches the host of raw.
// Values that are not absolute URLs never match.
func (s *Integrations) ByURL(raw string) (integrations.Integration, bool) {
	host, ok := integrations.HostOf(raw)
	if !ok {
		return nil, false
	}
	return s.ByHost(host)
}

// ByHost returns the integration configured for host, compared
// case-insensitively and including any port.
func (s *Integrations) ByHost(host string) (integrations.Integration, bool) {
	if s == nil {
		return nil, false
	}
	for _, i := range s.all {
		if strings.EqualFold(i.Host(), host) {
			return i, true
		}
	}
	return nil, false
}

// ResolveURL resolves url relative to base using the integration that owns
// base, or plain URL resolution when none does.
func (s *Integrations) ResolveURL(url, base string) string {
	if i, ok := s.ByURL(base); ok {
		return i.ResolveURL(url, base)
	}
	return integrations.DefaultResolveURL(url, base)
}

// ResolveEditURL returns the edit link for url, or url itself when no
// integration owns it.
func (s *Integrations) ResolveEditURL(url string) string {
	if i, ok := s.ByURL(url); ok {
		return i.ResolveEditURL(url)
	}
	return url
}
