package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/hsuden/wellatlas/models"
)

// APICustomers serves the directory as {id, name} pairs, alphabetical.
// GET /api/customers
func (api *API) APICustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := api.Store.ListCustomers()
	if err != nil {
		http.Error(w, "failed to fetch customers", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(customers))
	for _, c := range customers {
		out = append(out, map[string]any{"id": c.ID, "name": c.Name})
	}
	writeJSON(w, out)
}

// CustomersIndex serves the full customer directory. GET /customers
func (api *API) CustomersIndex(w http.ResponseWriter, r *http.Request) {
	customers, err := api.Store.ListCustomers()
	if err != nil {
		http.Error(w, "failed to fetch customers", http.StatusInternalServerError)
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	writeJSON(w, customers)
}

// CustomerDetail serves one customer with their live sites and photos.
// GET /customers/{id}
func (api *API) CustomerDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	customer, err := api.Store.GetCustomer(id)
	if err != nil {
		http.Redirect(w, r, "/customers", http.StatusSeeOther)
		return
	}
	sites, err := api.Store.ListSitesForCustomer(id, false)
	if err != nil {
		http.Error(w, "failed to fetch sites", http.StatusInternalServerError)
		return
	}
	photos, err := api.Store.ListCustomerPhotos(id)
	if err != nil {
		http.Error(w, "failed to fetch photos", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"customer":   customer,
		"sites":      sites,
		"photos":     photos,
		"categories": models.JobCategories,
	})
}

// CreateCustomer adds a directory entry from form data. Duplicate names
// are rejected. POST /customers
func (api *API) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	c := models.Customer{
		Name:    r.FormValue("name"),
		Address: r.FormValue("address"),
		Phone:   r.FormValue("phone"),
		Email:   r.FormValue("email"),
		Notes:   r.FormValue("notes"),
	}
	if c.Name == "" {
		http.Error(w, "customer name required", http.StatusBadRequest)
		return
	}

	if err := api.Store.CreateCustomer(&c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "customer name already exists", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create customer", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/customers/%d", c.ID), http.StatusSeeOther)
}
