// Package location parses and formats catalog location references.
//
// A location reference is a string of the form "<type>:<target>", for
// example "url:https://github.com/org/repo/blob/main/catalog-info.yaml" or
// "file:./catalog-info.yaml". The type says how to interpret the target.
package location

import (
	"strings"

	"github.com/matzehuels/sourceloc/pkg/errors"
)

// Well-known location types.
const (
	TypeURL  = "url"
	TypeFile = "file"
)

// Reference is a parsed location reference.
type Reference struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

// ParseReference splits ref at its first colon into a type and a target.
// Surrounding whitespace is removed from both parts. It fails with
// [errors.ErrCodeInvalidReference] when ref has no colon, when either part is
// empty, or when the type is "http" or "https", which means the url: prefix
// was forgotten.
func ParseReference(ref string) (Reference, error) {
	i := strings.IndexByte(ref, ':')
	if i < 0 {
		return Reference{}, errors.New(errors.ErrCodeInvalidReference,
			"unable to parse location reference %q, expected '<type>:<target>', e.g. 'url:https://host/path'", ref)
	}

	typ := strings.TrimSpace(ref[:i])
	target := strings.TrimSpace(ref[i+1:])

	if typ == "" || target == "" {
		return Reference{}, errors.New(errors.ErrCodeInvalidReference,
			"unable to parse location reference %q, expected '<type>:<target>', e.g. 'url:https://host/path'", ref)
	}

	if typ == "http" || typ == "https" {
		return Reference{}, errors.New(errors.ErrCodeInvalidReference,
			"invalid location reference %q, please prefix it with 'url:', e.g. 'url:%s'", ref, ref)
	}

	return Reference{Type: typ, Target: target}, nil
}

// StringifyReference formats a reference, failing when either part is empty.
func StringifyReference(r Reference) (string, error) {
	if r.Type == "" {
		return "", errors.New(errors.ErrCodeInvalidReference, "unable to stringify location reference, empty type")
	}
	if r.Target == "" {
		return "", errors.New(errors.ErrCodeInvalidReference, "unable to stringify location reference, empty target")
	}
	return r.String(), nil
}

// String returns the reference as "type:target".
func (r Reference) String() string {
	return r.Type + ":" + r.Target
}

// IsURL reports whether the reference points at a URL target.
func (r Reference) IsURL() bool {
	return r.Type == TypeURL
}
