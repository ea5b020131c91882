package payments

import (
	"time"

	"github.com/ndiayelabs/terangapay/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the reconciliation service.
type Repository interface {
	CreatePayment(p *models.Payment) error
	GetPaymentByToken(token string) (*models.Payment, error)
	GetPaymentByID(id uint) (*models.Payment, error)
	ListPaymentsByUser(userRef string) ([]models.Payment, error)
	ListStalePending(olderThan time.Time, limit int) ([]models.Payment, error)

	// UpdatePaymentStatusFrom writes the new status only if the row still
	// holds the status the merge was computed against. A false return means
	// a concurrent writer got there first; callers re-read and re-merge.
	UpdatePaymentStatusFrom(id uint, from, to string) (bool, error)

	UpsertEntitlement(e *models.Entitlement) error
	AppendAudit(ev *models.AuditEvent) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payments repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreatePayment(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *gormRepository) GetPaymentByToken(token string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.Where("provider_token = ?", token).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) GetPaymentByID(id uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) ListPaymentsByUser(userRef string) ([]models.Payment, error) {
	var out []models.Payment
	err := r.db.Where("user_ref = ?", userRef).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *gormRepository) ListStalePending(olderThan time.Time, limit int) ([]models.Payment, error) {
	var out []models.Payment
	err := r.db.
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, olderThan).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *gormRepository) UpdatePaymentStatusFrom(id uint, from, to string) (bool, error) {
	tx := r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) UpsertEntitlement(e *models.Entitlement) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_ref"},
			{Name: "resource"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"payment_id",
			"granted_at",
			"expires_at",
			"updated_at",
		}),
	}).Create(e).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("user_ref = ? AND resource = ?", e.UserRef, e.Resource).
		First(e).Error
}

func (r *gormRepository) AppendAudit(ev *models.AuditEvent) error {
	return r.db.Create(ev).Error
}
