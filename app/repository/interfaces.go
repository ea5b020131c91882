package repository

import (
	"github.com/ndiayelabs/terangapay/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// EntitlementRepository defines read access to granted entitlements
type EntitlementRepository interface {
	ListByUserRef(userRef string) ([]models.Entitlement, error)
	HasResource(userRef, resource string) (bool, error)
}

// AuditRepository defines read access to the append-only audit trail
type AuditRepository interface {
	ListByPaymentID(paymentID uint) ([]models.AuditEvent, error)
	ListRecent(limit int) ([]models.AuditEvent, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Entitlement EntitlementRepository
	Audit       AuditRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Entitlement: NewEntitlementRepository(db),
		Audit:       NewAuditRepository(db),
	}
}
