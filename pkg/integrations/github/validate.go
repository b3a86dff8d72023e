package github

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// Regex patterns for GitHub resource validation.
var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ValidateOwner validates a GitHub username or organization name.
func ValidateOwner(owner string) error {
	if owner == "" {
		return errors.New("owner is required")
	}
	if !validOwner.MatchString(owner) {
		return errors.New("invalid owner format: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen")
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(repo string) error {
	if repo == "" {
		return errors.New("repo is required")
	}
	if !validRepo.MatchString(repo) {
		return errors.New("invalid repo format: must be 1-100 alphanumeric characters, hyphens, underscores, or dots")
	}
	return nil
}

// RepoLocation is a GitHub URL split into its repository parts.
type RepoLocation struct {
	Host  string
	Owner string
	Repo  string
	View  string // "blob", "tree" or "edit"; empty for the repository root
	Ref   string // branch, tag or commit; empty for the repository root
	Path  string // file or directory path below Ref, without leading slash
}

// ParseURL splits a GitHub URL such as
// https://github.com/o/r/tree/main/docs into its parts. The owner and repo
// are validated; a trailing ".git" on the repo is removed.
func ParseURL(raw string) (RepoLocation, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return RepoLocation{}, errors.New("not an absolute URL")
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return RepoLocation{}, errors.New("invalid repo format: use owner/repo")
	}

	loc := RepoLocation{
		Host:  u.Host,
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
	}
	if err := ValidateOwner(loc.Owner); err != nil {
		return RepoLocation{}, err
	}
	if err := ValidateRepo(loc.Repo); err != nil {
		return RepoLocation{}, err
	}

	if len(parts) >= 4 {
		switch parts[2] {
		case "blob", "tree", "edit":
			loc.View = parts[2]
			loc.Ref = parts[3]
			loc.Path = strings.Join(parts[4:], "/")
		}
	}
	return loc, nil
}
