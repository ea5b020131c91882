package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ndiayelabs/terangapay/app/models"
	"github.com/ndiayelabs/terangapay/app/repository"
	"github.com/ndiayelabs/terangapay/internal/pkg/usercontext"
)

// HandleGetUserAccount returns account information and the currently granted
// entitlements for the authenticated user.
func HandleGetUserAccount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repos := repository.GetGlobalRepositories()
	account, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user"})
	}

	granted, err := repos.Entitlement.ListByUserRef(userCtx.UserRef)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load entitlements"})
	}

	entitlementList := make([]fiber.Map, 0, len(granted))
	for _, e := range granted {
		entitlementList = append(entitlementList, fiber.Map{
			"resource":   e.Resource,
			"granted_at": e.GrantedAt.UTC().Format(time.RFC3339),
			"expires_at": formatTimePtr(e.ExpiresAt),
		})
	}

	return c.JSON(fiber.Map{
		"id":                   account.ID,
		"username":             account.Name,
		"email":                account.Email,
		"status":               account.Status,
		"is_admin":             account.Role == models.ROLE_ADMIN,
		"created_at":           account.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at":        formatTimePtr(account.LastLoginAt),
		"api_key_last_used_at": formatTimePtr(account.APIKeyLastUsed),
		"entitlements":         entitlementList,
	})
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return v
}
