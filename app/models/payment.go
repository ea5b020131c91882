package models

import "time"

// Payment provider constants used across payment-related models.
const (
	PaymentProviderPayDunya = "paydunya"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment is the local record of one checkout attempt. The provider token is
// the join key between the provider-side and local-side views of the same
// transaction. Rows are created pending when an invoice is issued, mutated
// only by the reconciliation service and never deleted.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserRef       string    `gorm:"type:varchar(64);not null;index" json:"user_ref"`
	Plan          string    `gorm:"type:varchar(50);not null" json:"plan"`
	Provider      string    `gorm:"type:varchar(20);not null;default:'paydunya'" json:"provider"`
	ProviderToken string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_payments_provider_token" json:"provider_token"`
	Status        string    `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	Amount        int64     `gorm:"not null" json:"amount"`
	Currency      string    `gorm:"type:varchar(8);not null;default:'XOF'" json:"currency"`
	Description   string    `gorm:"type:varchar(255);default:''" json:"description"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsTerminal reports whether the payment reached a final state.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusFailed
}
