package handlers

import (
	"fmt"
	"net/http"

	"github.com/hsuden/wellatlas/models"
	"github.com/hsuden/wellatlas/store"
	"github.com/hsuden/wellatlas/utils"
)

// APISites serves the filtered site list as JSON.
// GET /api/sites?q=&job=&customer=
func (api *API) APISites(w http.ResponseWriter, r *http.Request) {
	sites, err := api.Store.ListSites(siteFilterFromQuery(r))
	if err != nil {
		http.Error(w, "failed to fetch sites", http.StatusInternalServerError)
		return
	}
	if sites == nil {
		sites = []models.Site{}
	}
	writeJSON(w, sites)
}

func siteFilterFromQuery(r *http.Request) store.SiteFilter {
	q := r.URL.Query()
	return store.SiteFilter{
		Query:       q.Get("q"),
		JobCategory: q.Get("job"),
		Customer:    q.Get("customer"),
	}
}

// SiteDetail serves one site with its live jobs, notes and photos.
// Soft-deleted sites still resolve here so they can be reviewed and
// restored. GET /sites/{id}
func (api *API) SiteDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}

	site, err := api.Store.GetSite(id)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	jobs, err := api.Store.ListJobsForSite(id)
	if err != nil {
		http.Error(w, "failed to fetch jobs", http.StatusInternalServerError)
		return
	}
	notes, err := api.Store.ListNotesForSite(id)
	if err != nil {
		http.Error(w, "failed to fetch notes", http.StatusInternalServerError)
		return
	}
	photos, err := api.Store.ListPhotosForSite(id)
	if err != nil {
		http.Error(w, "failed to fetch photos", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"site":       site,
		"jobs":       jobs,
		"notes":      notes,
		"photos":     photos,
		"categories": models.JobCategories,
	})
}

// DeletedSites lists soft-deleted sites. GET /deleted
func (api *API) DeletedSites(w http.ResponseWriter, r *http.Request) {
	sites, err := api.Store.ListDeletedSites()
	if err != nil {
		http.Error(w, "failed to fetch deleted sites", http.StatusInternalServerError)
		return
	}
	if sites == nil {
		sites = []models.Site{}
	}
	writeJSON(w, sites)
}

// CreateSite inserts a site from form data and redirects to its detail
// view. Malformed coordinates coerce to 0.0. POST /sites
func (api *API) CreateSite(w http.ResponseWriter, r *http.Request) {
	site, err := api.Store.CreateSite(
		r.FormValue("name"),
		r.FormValue("customer"),
		r.FormValue("description"),
		utils.FloatOrZero(r.FormValue("latitude")),
		utils.FloatOrZero(r.FormValue("longitude")),
	)
	if err != nil {
		http.Error(w, "failed to create site", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/sites/%d", site.ID), http.StatusSeeOther)
}

// EditSite fully replaces a site's fields. POST /sites/{id}/edit
func (api *API) EditSite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}

	_, err = api.Store.UpdateSite(id,
		r.FormValue("name"),
		r.FormValue("customer"),
		r.FormValue("description"),
		utils.FloatOrZero(r.FormValue("latitude")),
		utils.FloatOrZero(r.FormValue("longitude")),
	)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/sites/%d", id), http.StatusSeeOther)
}

// DeleteSite soft-deletes a site. POST /sites/{id}/delete
func (api *API) DeleteSite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}
	if err := api.Store.SetSiteDeleted(id, true); err != nil {
		http.Error(w, "failed to delete site", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RestoreSite clears the soft-delete flag. POST /sites/{id}/restore
func (api *API) RestoreSite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}
	if err := api.Store.SetSiteDeleted(id, false); err != nil {
		http.Error(w, "failed to restore site", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/deleted", http.StatusSeeOther)
}

// AddSiteNote attaches a note; a blank body is silently dropped.
// POST /sites/{id}/notes
func (api *API) AddSiteNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}
	if _, err := api.Store.AddNote(id, r.FormValue("body")); err != nil {
		http.Error(w, "failed to add note", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/sites/%d", id), http.StatusSeeOther)
}
