package models

import "time"

// Audit event kinds written by the reconciliation service.
const (
	AuditKindEntitlementGranted = "entitlement_granted"
	AuditKindAmountMismatch     = "amount_mismatch"
)

// Audit event sources distinguish which protocol produced a record.
const (
	AuditSourceWebhook = "webhook"
	AuditSourceConfirm = "confirm"
)

// AuditEvent is an append-only fact about a notable payment event. Rows are
// never updated or deleted; they exist only as an observability sink.
type AuditEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Kind        string    `gorm:"type:varchar(50);not null;index" json:"kind"`
	Source      string    `gorm:"type:varchar(20);not null;default:''" json:"source"`
	PaymentID   uint      `gorm:"index" json:"payment_id"`
	UserRef     string    `gorm:"type:varchar(64);default:''" json:"user_ref"`
	PayloadJSON string    `gorm:"type:longtext" json:"payload_json"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
