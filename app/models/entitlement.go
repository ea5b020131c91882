package models

import "time"

// Entitlement grants a user access to one resource because of a completed
// payment. The (user_ref, resource) pair is unique so granting is idempotent:
// re-granting refreshes the originating payment link but never duplicates.
type Entitlement struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserRef   string     `gorm:"type:varchar(64);not null;index:ux_entitlements_user_resource,unique,priority:1" json:"user_ref"`
	Resource  string     `gorm:"type:varchar(100);not null;index:ux_entitlements_user_resource,unique,priority:2" json:"resource"`
	PaymentID uint       `gorm:"not null;index" json:"payment_id"`
	GrantedAt time.Time  `gorm:"not null" json:"granted_at"`
	ExpiresAt *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
