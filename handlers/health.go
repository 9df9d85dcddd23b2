package handlers

import "net/http"

// Healthz reports store connectivity: 200 "ok" when a trivial query
// succeeds, 500 with the error text otherwise.
func (api *API) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := api.Store.Ping(); err != nil {
		http.Error(w, "not ok: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
