package store

import (
	"strings"

	"github.com/hsuden/wellatlas/models"
)

// CreateSite inserts a new site. The owning customer row is created on
// demand so site creation always succeeds for well-typed input.
func (ds *DataStore) CreateSite(name, customer, description string, lat, lon float64) (*models.Site, error) {
	c, err := ds.GetOrCreateCustomer(customer)
	if err != nil {
		return nil, err
	}

	site := models.Site{
		Name:        name,
		CustomerID:  c.ID,
		Description: description,
		Latitude:    lat,
		Longitude:   lon,
	}
	if err := ds.DB.Create(&site).Error; err != nil {
		return nil, err
	}
	site.CustomerName = c.Name
	return &site, nil
}

// GetSite fetches a site by id. Soft-deleted sites still resolve so
// their detail view and restore keep working.
func (ds *DataStore) GetSite(id uint) (*models.Site, error) {
	var site models.Site
	if err := ds.siteQuery().Where("sites.id = ?", id).First(&site).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

// ListSites returns live sites matching the filter, newest first.
func (ds *DataStore) ListSites(f SiteFilter) ([]models.Site, error) {
	q := ds.siteQuery().Where("sites.deleted = ?", false)

	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where(
			"LOWER(sites.name) LIKE ? OR LOWER(sites.description) LIKE ? OR sites.id IN (SELECT site_id FROM notes WHERE LOWER(body) LIKE ?)",
			like, like, like,
		)
	}
	if f.JobCategory != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM jobs WHERE jobs.site_id = sites.id AND jobs.deleted = ? AND jobs.job_category = ?)",
			false, f.JobCategory,
		)
	}
	if f.Customer != "" {
		q = q.Where("customers.name = ?", f.Customer)
	}

	var sites []models.Site
	if err := q.Order("sites.created_at DESC, sites.id DESC").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

// ListDeletedSites returns soft-deleted sites, newest first.
func (ds *DataStore) ListDeletedSites() ([]models.Site, error) {
	var sites []models.Site
	err := ds.siteQuery().
		Where("sites.deleted = ?", true).
		Order("sites.created_at DESC, sites.id DESC").
		Find(&sites).Error
	if err != nil {
		return nil, err
	}
	return sites, nil
}

// ListSitesForCustomer returns a customer's sites ordered by name.
func (ds *DataStore) ListSitesForCustomer(customerID uint, includeDeleted bool) ([]models.Site, error) {
	q := ds.siteQuery().Where("sites.customer_id = ?", customerID)
	if !includeDeleted {
		q = q.Where("sites.deleted = ?", false)
	}

	var sites []models.Site
	if err := q.Order("sites.name ASC").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

// UpdateSite replaces name, customer, description and coordinates. No
// partial-update semantics: callers supply every field.
func (ds *DataStore) UpdateSite(id uint, name, customer, description string, lat, lon float64) (*models.Site, error) {
	var site models.Site
	if err := ds.DB.First(&site, id).Error; err != nil {
		return nil, err
	}

	c, err := ds.GetOrCreateCustomer(customer)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name":        name,
		"customer_id": c.ID,
		"description": description,
		"latitude":    lat,
		"longitude":   lon,
	}
	if err := ds.DB.Model(&site).Updates(updates).Error; err != nil {
		return nil, err
	}
	return ds.GetSite(id)
}

// SetSiteDeleted flips the soft-delete flag. Idempotent; a missing id is
// a no-op, not an error. Children are not cascaded: jobs, notes and
// photos of a deleted site are retained and reachable only through the
// site's detail view.
func (ds *DataStore) SetSiteDeleted(id uint, deleted bool) error {
	return ds.DB.Model(&models.Site{}).Where("id = ?", id).Update("deleted", deleted).Error
}
