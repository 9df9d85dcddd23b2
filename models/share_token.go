package models

import "time"

// Share token kinds. A token grants read-only access to one customer's
// or one job's full record tree.
const (
	ShareKindCustomer = "customer"
	ShareKindJob      = "job"
)

// ShareToken is a bearer capability: possession of the token string is
// the entire access-control model. Tokens never expire and are never
// revoked.
type ShareToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:16;not null;index" json:"kind"`
	TargetID  uint      `gorm:"not null" json:"target_id"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
