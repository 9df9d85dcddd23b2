package models

import "time"

// Job categories used by the field crews. Conventional values, not
// enforced by the store.
const (
	CategoryDomestic   = "Domestic"
	CategoryDrilling   = "Drilling"
	CategoryAg         = "Ag"
	CategoryElectrical = "Electrical"
)

// JobCategories lists the conventional job categories in display order.
var JobCategories = []string{CategoryDomestic, CategoryDrilling, CategoryAg, CategoryElectrical}

// Job is a unit of work performed at a site.
type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SiteID      uint      `gorm:"not null;index" json:"site_id"`
	JobNumber   string    `gorm:"size:32;uniqueIndex;not null" json:"job_number"`
	JobCategory string    `gorm:"size:32" json:"job_category"`
	Description string    `gorm:"size:500" json:"description"`
	Deleted     bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobNote is an immutable free-text note attached to a job.
type JobNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JobID     uint      `gorm:"not null;index" json:"job_id"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// JobPhoto records an uploaded image attached to a job.
type JobPhoto struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JobID     uint      `gorm:"not null;index" json:"job_id"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	Caption   string    `gorm:"size:255" json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}
