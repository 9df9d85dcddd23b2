package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/hsuden/wellatlas/models"
	"github.com/hsuden/wellatlas/share"
)

// CreateCustomerShare issues a read-only share link for a customer.
// POST /customers/{id}/share
func (api *API) CreateCustomerShare(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	t, err := api.Shares.Issue(models.ShareKindCustomer, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, "customer not found", http.StatusNotFound)
			return
		}
		writeJSONError(w, "failed to create share link", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"link": api.baseURL(r) + "/s/customer/" + t.Token})
}

// CreateJobShare issues a read-only share link for a job, scoped to its
// site path. POST /sites/{id}/jobs/{jobID}/share
func (api *API) CreateJobShare(w http.ResponseWriter, r *http.Request) {
	siteID, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, "invalid site id", http.StatusBadRequest)
		return
	}
	jobID, err := pathID(r, "jobID")
	if err != nil {
		writeJSONError(w, "invalid job id", http.StatusBadRequest)
		return
	}

	if _, err := api.Store.GetJob(siteID, jobID); err != nil {
		writeJSONError(w, "job not found", http.StatusNotFound)
		return
	}

	t, err := api.Shares.Issue(models.ShareKindJob, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, "job not found", http.StatusNotFound)
			return
		}
		writeJSONError(w, "failed to create share link", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"link": api.baseURL(r) + "/s/job/" + t.Token})
}

// ShareCustomerView serves the read-only record tree behind a customer
// share link. A token that does not resolve is "Invalid or expired
// link"; a resolved token whose target has since vanished is "Not
// found". Both are 404, but distinguishable. GET /s/customer/{token}
func (api *API) ShareCustomerView(w http.ResponseWriter, r *http.Request) {
	t, err := api.Shares.Resolve(mux.Vars(r)["token"], models.ShareKindCustomer)
	if err != nil {
		api.shareError(w, err)
		return
	}

	tree, err := api.Shares.CustomerTree(t.TargetID)
	if err != nil {
		api.shareError(w, err)
		return
	}
	writeJSON(w, tree)
}

// ShareJobView serves the read-only record tree behind a job share link.
// GET /s/job/{token}
func (api *API) ShareJobView(w http.ResponseWriter, r *http.Request) {
	t, err := api.Shares.Resolve(mux.Vars(r)["token"], models.ShareKindJob)
	if err != nil {
		api.shareError(w, err)
		return
	}

	tree, err := api.Shares.JobTree(t.TargetID)
	if err != nil {
		api.shareError(w, err)
		return
	}
	writeJSON(w, tree)
}

func (api *API) shareError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, share.ErrInvalidToken):
		http.Error(w, "Invalid or expired link", http.StatusNotFound)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	default:
		http.Error(w, "failed to load shared view", http.StatusInternalServerError)
	}
}
