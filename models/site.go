package models

import "time"

// Site represents a physical location where work is performed.
// Sites belong to a customer through CustomerID; the customer name is
// denormalized into CustomerName on reads so API consumers keep seeing
// the flat "customer" field.
type Site struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	CustomerID   uint      `gorm:"not null;index" json:"-"`
	CustomerName string    `gorm:"->;-:migration" json:"customer"`
	Description  string    `gorm:"size:500" json:"description"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Deleted      bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt    time.Time `json:"created_at"`
}

// Note is a free-text note attached to a site. Notes are immutable once
// created.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SiteID    uint      `gorm:"not null;index" json:"site_id"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Photo records an uploaded image attached to a site. Filename is the
// on-disk name in the upload directory.
type Photo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SiteID    uint      `gorm:"not null;index" json:"site_id"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	Caption   string    `gorm:"size:255" json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}
