package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hsuden/wellatlas/utils"
)

// maxUploadMemory is the in-memory buffer for multipart parsing; larger
// uploads spill to temp files.
const maxUploadMemory = 50 << 20

// UploadSitePhoto stores a photo against a site.
// POST /sites/{id}/photos
func (api *API) UploadSitePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid site id", http.StatusBadRequest)
		return
	}
	dest := fmt.Sprintf("/sites/%d", id)

	filename, ok := api.saveUpload(w, r, dest)
	if !ok {
		return
	}
	if _, err := api.Store.AddPhoto(id, filename, r.FormValue("caption")); err != nil {
		http.Error(w, "failed to record photo", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// UploadJobPhoto stores a photo against a job.
// POST /sites/{id}/jobs/{jobID}/photos
func (api *API) UploadJobPhoto(w http.ResponseWriter, r *http.Request) {
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
	dest := fmt.Sprintf("/sites/%d/jobs/%d", siteID, jobID)

	filename, ok := api.saveUpload(w, r, dest)
	if !ok {
		return
	}
	if _, err := api.Store.AddJobPhoto(jobID, filename, r.FormValue("caption")); err != nil {
		http.Error(w, "failed to record photo", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// UploadCustomerPhoto stores a photo against a customer.
// POST /customers/{id}/photos
func (api *API) UploadCustomerPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}
	dest := fmt.Sprintf("/customers/%d", id)

	filename, ok := api.saveUpload(w, r, dest)
	if !ok {
		return
	}
	if _, err := api.Store.AddCustomerPhoto(id, filename, r.FormValue("caption")); err != nil {
		http.Error(w, "failed to record photo", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// saveUpload writes the "photo" form file into the upload directory
// under a collision-resistant name and returns it. A missing file is a
// no-op: the caller's redirect is issued and ok is false. The second
// return is false whenever a response has already been written.
func (api *API) saveUpload(w http.ResponseWriter, r *http.Request, fallback string) (string, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return "", false
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		// No file attached: not an error, just nothing to do.
		http.Redirect(w, r, fallback, http.StatusSeeOther)
		return "", false
	}
	defer file.Close()

	filename, err := utils.UploadFilename(header.Filename)
	if err != nil {
		http.Error(w, "invalid filename", http.StatusBadRequest)
		return "", false
	}

	if err := api.writeFile(file, filename); err != nil {
		http.Error(w, "failed to save file: "+err.Error(), http.StatusInternalServerError)
		return "", false
	}
	return filename, true
}

func (api *API) writeFile(src multipart.File, filename string) error {
	if err := os.MkdirAll(api.Settings.UploadDir, 0o755); err != nil {
		return err
	}

	dst, err := os.Create(filepath.Join(api.Settings.UploadDir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
