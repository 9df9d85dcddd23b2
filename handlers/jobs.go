package handlers

import (
	"fmt"
	"net/http"
)

// CreateJob adds a job to a site, synthesizing a job number when none is
// supplied. POST /sites/{id}/jobs
func (api *API) CreateJob(w http.ResponseWriter, r *http.Request) {
	siteID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}

	_, err = api.Store.CreateJob(siteID,
		r.FormValue("job_number"),
		r.FormValue("job_category"),
		r.FormValue("description"),
	)
	if err != nil {
		http.Error(w, "failed to create job", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/sites/%d", siteID), http.StatusSeeOther)
}

// JobDetail serves one job with its notes and photos, plus the owning
// site. GET /sites/{id}/jobs/{jobID}
func (api *API) JobDetail(w http.ResponseWriter, r *http.Request) {
	siteID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}
	jobID, err := pathID(r, "jobID")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	site, err := api.Store.GetSite(siteID)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	job, err := api.Store.GetJob(siteID, jobID)
	if err != nil {
		http.Redirect(w, r, fmt.Sprintf("/sites/%d", siteID), http.StatusSeeOther)
		return
	}
	notes, err := api.Store.ListJobNotes(jobID)
	if err != nil {
		http.Error(w, "failed to fetch job notes", http.StatusInternalServerError)
		return
	}
	photos, err := api.Store.ListJobPhotos(jobID)
	if err != nil {
		http.Error(w, "failed to fetch job photos", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"site":   site,
		"job":    job,
		"notes":  notes,
		"photos": photos,
	})
}

// EditJob replaces the job's number, category and description.
// POST /sites/{id}/jobs/{jobID}/edit
func (api *API) EditJob(w http.ResponseWriter, r *http.Request) {
	siteID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}
	jobID, err := pathID(r, "jobID")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	_, err = api.Store.UpdateJob(siteID, jobID,
		r.FormValue("job_number"),
		r.FormValue("job_category"),
		r.FormValue("description"),
	)
	if err != nil {
		http.Redirect(w, r, fmt.Sprintf("/sites/%d", siteID), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/sites/%d/jobs/%d", siteID, jobID), http.StatusSeeOther)
}

// DeleteJob soft-deletes a job. POST /sites/{id}/jobs/{jobID}/delete
func (api *API) DeleteJob(w http.ResponseWriter, r *http.Request) {
	siteID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}
	jobID, err := pathID(r, "jobID")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	if err := api.Store.SetJobDeleted(siteID, jobID, true); err != nil {
		http.Error(w, "failed to delete job", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/sites/%d", siteID), http.StatusSeeOther)
}

// AddJobNote attaches a note to a job; a blank body is silently dropped.
// POST /sites/{id}/jobs/{jobID}/notes
func (api *API) AddJobNote(w http.ResponseWriter, r *http.Request) {
	siteID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}
	jobID, err := pathID(r, "jobID")
	if err != nil {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	if _, err := api.Store.AddJobNote(jobID, r.FormValue("body")); err != nil {
		http.Error(w, "failed to add job note", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/sites/%d/jobs/%d", siteID, jobID), http.StatusSeeOther)
}
