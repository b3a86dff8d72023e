// Package gitlab provides the GitLab SCM integration.
//
// # Overview
//
// An [Integration] matches URLs on a GitLab host, either gitlab.com or a
// self-managed instance.
//
// # Configuration
//
// [ReadConfigs] applies the GitLab defaults to each entry:
//
//   - apiBaseUrl defaults to https://<host>/api/v4
//   - baseUrl defaults to https://<host>
//
// A gitlab.com entry is appended when none is configured.
//
// # URL Layout
//
// GitLab separates the project path from the view with a "/-/" segment, so
// projects may live in nested groups:
//
//	https://gitlab.com/group/subgroup/project/-/blob/main/catalog-info.yaml
//
// [Integration.ResolveEditURL] rewrites the blob or tree segment to edit.
package gitlab
