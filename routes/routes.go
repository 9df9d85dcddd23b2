package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hsuden/wellatlas/handlers"
	"github.com/hsuden/wellatlas/middleware"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(api *handlers.API) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequestLogger)

	// Health and JSON APIs
	r.HandleFunc("/healthz", api.Healthz).Methods("GET")
	r.HandleFunc("/api/sites", api.APISites).Methods("GET")
	r.HandleFunc("/api/sites/geojson", api.SitesGeoJSON).Methods("GET")
	r.HandleFunc("/api/sites/export", api.SitesExport).Methods("GET")
	r.HandleFunc("/api/customers", api.APICustomers).Methods("GET")

	// Sites
	r.HandleFunc("/sites", api.CreateSite).Methods("POST")
	r.HandleFunc("/deleted", api.DeletedSites).Methods("GET")
	r.HandleFunc("/sites/{id:[0-9]+}", api.SiteDetail).Methods("GET")
	r.HandleFunc("/sites/{id:[0-9]+}/edit", api.EditSite).Methods("POST")
	r.HandleFunc("/sites/{id:[0-9]+}/delete", api.DeleteSite).Methods("POST")
	r.HandleFunc("/sites/{id:[0-9]+}/restore", api.RestoreSite).Methods("POST")
	r.HandleFunc("/sites/{id:[0-9]+}/notes", api.AddSiteNote).Methods("POST")
	r.HandleFunc("/sites/{id:[0-9]+}/photos", api.UploadSitePhoto).Methods("POST")

	// Jobs
	r.HandleFunc("/sites/{id:[0-9]+}/jobs", api.CreateJob).Methods("POST")
	r.HandleFunc("/sites/{id:[0-9]+}/jobs/{jobID:[0-9]+}", api.JobDetail).Methods("GET")
	r.HandleFunc("/sites/{id:[0-9]+}/jobs/{jobID:[0-9]+}/edit", api.EditJob).Methods("POST")
	r.HandleFunc("/sites/{id:[0-9]+}/jobs/{jobID:[0-9]+}/delete", api.DeleteJob).Methods("POST")
	r.HandleFunc("/sites/{id:[0-9]+}/jobs/{jobID:[0-9]+}/notes", api.AddJobNote).Methods("POST")
	r.HandleFunc("/sites/{id:[0-9]+}/jobs/{jobID:[0-9]+}/photos", api.UploadJobPhoto).Methods("POST")

	// Customers
	r.HandleFunc("/customers", api.CustomersIndex).Methods("GET")
	r.HandleFunc("/customers", api.CreateCustomer).Methods("POST")
	r.HandleFunc("/customers/{id:[0-9]+}", api.CustomerDetail).Methods("GET")
	r.HandleFunc("/customers/{id:[0-9]+}/photos", api.UploadCustomerPhoto).Methods("POST")

	// Share links
	r.HandleFunc("/customers/{id:[0-9]+}/share", api.CreateCustomerShare).Methods("POST")
	r.HandleFunc("/sites/{id:[0-9]+}/jobs/{jobID:[0-9]+}/share", api.CreateJobShare).Methods("POST")
	r.HandleFunc("/s/customer/{token}", api.ShareCustomerView).Methods("GET")
	r.HandleFunc("/s/job/{token}", api.ShareJobView).Methods("GET")

	// Uploaded files
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(api.Settings.UploadDir))),
	)

	return r
}
