// Package handlers translates HTTP requests into repository and share
// service calls. Handlers are methods on API so the store and share
// service are injected rather than reached through package globals.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hsuden/wellatlas/config"
	"github.com/hsuden/wellatlas/share"
	"github.com/hsuden/wellatlas/store"
)

// API carries the dependencies of every handler.
type API struct {
	Store    store.Interface
	Shares   share.Service
	Settings config.Settings
}

// New builds the handler set.
func New(st store.Interface, shares share.Service, settings config.Settings) *API {
	return &API{Store: st, Shares: shares, Settings: settings}
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeJSONError sends a JSON error body with the given status.
func writeJSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// pathID extracts a numeric path variable.
func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	return uint(id), err
}

// baseURL is the absolute prefix for links embedded in responses:
// configured BASE_URL when set, otherwise derived from the request.
func (api *API) baseURL(r *http.Request) string {
	if api.Settings.BaseURL != "" {
		return api.Settings.BaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
