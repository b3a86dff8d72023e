// Package integrations defines the contract shared by SCM integrations.
//
// # Overview
//
// An [Integration] is a configured connector for one source-control
// provider host. Integrations are matched against URLs by host, and know how
// to derive related URLs (relative resolution, edit links) for that host.
// Each provider has its own subpackage:
//
//   - [github]: GitHub and GitHub Enterprise
//   - [gitlab]: GitLab and self-managed GitLab
//   - [bitbucket]: Bitbucket Cloud and Bitbucket Server
//   - [azure]: Azure DevOps
//
// The collection of configured integrations, queryable by URL, lives in
// package [scm].
//
// # Adding a New Provider
//
//  1. Create a subpackage: pkg/integrations/<provider>/
//  2. Define a Config and ReadConfigs that applies defaults and validation
//  3. Implement [Integration] on a provider type
//  4. Wire ReadConfigs into [scm.FromConfig]
//
// [github]: github.com/matzehuels/sourceloc/pkg/integrations/github
// [gitlab]: github.com/matzehuels/sourceloc/pkg/integrations/gitlab
// [bitbucket]: github.com/matzehuels/sourceloc/pkg/integrations/bitbucket
// [azure]: github.com/matzehuels/sourceloc/pkg/integrations/azure
// [scm]: github.com/matzehuels/sourceloc/pkg/scm
// [scm.FromConfig]: github.com/matzehuels/sourceloc/pkg/scm.FromConfig
package integrations
