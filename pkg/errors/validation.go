package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateHost validates an integration host such as "github.com" or
// "gitlab.internal:8443". A host is valid when it parses as the host part of
// an https URL and carries nothing else: no scheme, path, query or userinfo.
func ValidateHost(host string) error {
	if host == "" {
		return New(ErrCodeInvalidHost, "host cannot be empty")
	}

	for _, r := range host {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidHost, "host %q contains invalid characters", host)
		}
	}

	if strings.ContainsAny(host, "/\\?#@") {
		return New(ErrCodeInvalidHost, "%q is not a valid host", host)
	}

	u, err := url.Parse("https://" + host)
	if err != nil || u.Host != host || u.Hostname() == "" {
		return New(ErrCodeInvalidHost, "%q is not a valid host", host)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL is absolute, has a host, and uses a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "%q is not a valid URL", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidURL, "URL %q must use http or https scheme", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL %q has no host", rawURL)
	}
	return nil
}
