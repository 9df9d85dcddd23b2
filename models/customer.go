package models

import "time"

// Customer is an entry in the customer directory. Sites reference
// customers by id; the name stays unique so lookups by name keep working.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Address   string    `gorm:"size:255" json:"address"`
	Phone     string    `gorm:"size:40" json:"phone"`
	Email     string    `gorm:"size:120" json:"email"`
	Notes     string    `gorm:"size:1000" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerPhoto records an uploaded image attached to a customer.
type CustomerPhoto struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Filename   string    `gorm:"size:255;not null" json:"filename"`
	Caption    string    `gorm:"size:255" json:"caption"`
	CreatedAt  time.Time `json:"created_at"`
}
