package repository

import (
	"errors"

	"github.com/ndiayelabs/terangapay/app/models"
	"gorm.io/gorm"
)

// entitlementRepository implements the EntitlementRepository interface
type entitlementRepository struct {
	db *gorm.DB
}

// NewEntitlementRepository creates a new entitlement repository instance
func NewEntitlementRepository(db *gorm.DB) EntitlementRepository {
	return &entitlementRepository{db: db}
}

// ListByUserRef returns all entitlements granted to a user
func (r *entitlementRepository) ListByUserRef(userRef string) ([]models.Entitlement, error) {
	var out []models.Entitlement
	err := r.db.Where("user_ref = ?", userRef).Order("granted_at DESC").Find(&out).Error
	return out, err
}

// HasResource reports whether the user currently holds the given resource
func (r *entitlementRepository) HasResource(userRef, resource string) (bool, error) {
	var e models.Entitlement
	err := r.db.Where("user_ref = ? AND resource = ?", userRef, resource).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
