// Package store is the repository layer: every read and write against
// the database goes through it, behind an interface so handlers can be
// tested against doubles and the connection handling swapped without
// touching callers.
package store

import (
	"gorm.io/gorm"

	"github.com/hsuden/wellatlas/models"
)

// SiteFilter narrows ListSites. All set fields must match (AND).
type SiteFilter struct {
	Query       string // case-insensitive substring over name, description, note bodies
	JobCategory string // at least one live job on the site with this category
	Customer    string // exact customer name
}

// Interface defines the repository operations per entity.
type Interface interface {
	// Sites
	CreateSite(name, customer, description string, lat, lon float64) (*models.Site, error)
	GetSite(id uint) (*models.Site, error)
	ListSites(f SiteFilter) ([]models.Site, error)
	ListDeletedSites() ([]models.Site, error)
	ListSitesForCustomer(customerID uint, includeDeleted bool) ([]models.Site, error)
	UpdateSite(id uint, name, customer, description string, lat, lon float64) (*models.Site, error)
	SetSiteDeleted(id uint, deleted bool) error

	// Jobs
	CreateJob(siteID uint, jobNumber, category, description string) (*models.Job, error)
	GetJob(siteID, jobID uint) (*models.Job, error)
	GetJobByID(id uint) (*models.Job, error)
	ListJobsForSite(siteID uint) ([]models.Job, error)
	ListJobsBySiteIDs(siteIDs []uint, includeDeleted bool) ([]models.Job, error)
	UpdateJob(siteID, jobID uint, jobNumber, category, description string) (*models.Job, error)
	SetJobDeleted(siteID, jobID uint, deleted bool) error

	// Notes
	AddNote(siteID uint, body string) (*models.Note, error)
	AddJobNote(jobID uint, body string) (*models.JobNote, error)
	ListNotesForSite(siteID uint) ([]models.Note, error)
	ListNotesBySiteIDs(siteIDs []uint) ([]models.Note, error)
	ListJobNotes(jobID uint) ([]models.JobNote, error)
	ListJobNotesByJobIDs(jobIDs []uint) ([]models.JobNote, error)

	// Photos
	AddPhoto(siteID uint, filename, caption string) (*models.Photo, error)
	AddJobPhoto(jobID uint, filename, caption string) (*models.JobPhoto, error)
	AddCustomerPhoto(customerID uint, filename, caption string) (*models.CustomerPhoto, error)
	ListPhotosForSite(siteID uint) ([]models.Photo, error)
	ListPhotosBySiteIDs(siteIDs []uint) ([]models.Photo, error)
	ListJobPhotos(jobID uint) ([]models.JobPhoto, error)
	ListJobPhotosByJobIDs(jobIDs []uint) ([]models.JobPhoto, error)
	ListCustomerPhotos(customerID uint) ([]models.CustomerPhoto, error)

	// Customers
	CreateCustomer(c *models.Customer) error
	GetCustomer(id uint) (*models.Customer, error)
	GetCustomerByName(name string) (*models.Customer, error)
	GetOrCreateCustomer(name string) (*models.Customer, error)
	ListCustomers() ([]models.Customer, error)

	// Share tokens
	CreateShareToken(t *models.ShareToken) error
	GetShareToken(token, kind string) (*models.ShareToken, error)

	// Ping verifies store connectivity with a trivial query.
	Ping() error
}

// DataStore implements Interface over a GORM database.
type DataStore struct {
	DB *gorm.DB
}

// New wraps a GORM database in the repository interface.
func New(db *gorm.DB) *DataStore {
	return &DataStore{DB: db}
}

func (ds *DataStore) Ping() error {
	return ds.DB.Exec("SELECT 1").Error
}

// siteQuery joins customers so every read returns sites with
// CustomerName populated.
func (ds *DataStore) siteQuery() *gorm.DB {
	return ds.DB.Model(&models.Site{}).
		Select("sites.*, customers.name AS customer_name").
		Joins("LEFT JOIN customers ON customers.id = sites.customer_id")
}
