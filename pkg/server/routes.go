package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/sourceloc/pkg/catalog"
	"github.com/matzehuels/sourceloc/pkg/errors"
	"github.com/matzehuels/sourceloc/pkg/scm"
	"github.com/matzehuels/sourceloc/pkg/source"
)

// MaxEntitySize is the largest accepted request body.
const MaxEntitySize = 1 << 20

// SourceLocationResponse is the body of a resolution response.
type SourceLocationResponse struct {
	URL     string        `json:"url,omitempty"`
	Type    string        `json:"type,omitempty"`
	EditURL string        `json:"editUrl,omitempty"`
	Reason  source.Reason `json:"reason"`
	Error   string        `json:"error,omitempty"`
}

// IntegrationResponse describes one configured integration.
type IntegrationResponse struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Host  string `json:"host"`
}

// ListIntegrationsResponse is the body of the integration listing.
type ListIntegrationsResponse struct {
	Integrations []IntegrationResponse `json:"integrations"`
	Total        int                   `json:"total"`
}

// ErrorResponse is a standardized error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type routes struct {
	registry *scm.Integrations
	resolver *source.Resolver
}

func newRoutes(reg *scm.Integrations, r *source.Resolver) *routes {
	return &routes{registry: reg, resolver: r}
}

func (rt *routes) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveSourceLocation answers 200 when the entity has a source location
// and 404 otherwise. With ?edit=true the edit URL is included.
func (rt *routes) resolveSourceLocation(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxEntitySize))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	entity, err := catalog.ParseEntity(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := rt.resolver.ResolveDetailed(&entity)
	if !res.OK() {
		body := SourceLocationResponse{Reason: res.Reason}
		if res.Err != nil {
			body.Error = errors.UserMessage(res.Err)
		}
		writeJSON(w, http.StatusNotFound, body)
		return
	}

	body := SourceLocationResponse{
		URL:    res.Location.URL,
		Type:   res.Location.Type,
		Reason: res.Reason,
	}
	if edit, _ := strconv.ParseBool(r.URL.Query().Get("edit")); edit && rt.registry != nil {
		body.EditURL = rt.registry.ResolveEditURL(res.Location.URL)
	}
	writeJSON(w, http.StatusOK, body)
}

func (rt *routes) listIntegrations(w http.ResponseWriter, _ *http.Request) {
	resp := ListIntegrationsResponse{Integrations: []IntegrationResponse{}}
	if rt.registry != nil {
		for _, in := range rt.registry.List() {
			resp.Integrations = append(resp.Integrations, IntegrationResponse{
				Type:  in.Type(),
				Title: in.Title(),
				Host:  in.Host(),
			})
		}
	}
	resp.Total = len(resp.Integrations)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}
