package repository

import (
	"github.com/ndiayelabs/terangapay/app/models"
	"gorm.io/gorm"
)

// auditRepository implements the AuditRepository interface
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository instance
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// ListByPaymentID returns the audit trail of a single payment, oldest first
func (r *auditRepository) ListByPaymentID(paymentID uint) ([]models.AuditEvent, error) {
	var out []models.AuditEvent
	err := r.db.Where("payment_id = ?", paymentID).Order("created_at ASC").Find(&out).Error
	return out, err
}

// ListRecent returns the newest audit events across all payments
func (r *auditRepository) ListRecent(limit int) ([]models.AuditEvent, error) {
	var out []models.AuditEvent
	err := r.db.Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}
