package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ndiayelabs/terangapay/app/models"
	"github.com/ndiayelabs/terangapay/app/repository"
)

const adminAuditDefaultLimit = 100

// HandleAdminListAuditEvents returns the newest audit events across all
// payments. Route is admin-gated by middleware.
func HandleAdminListAuditEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", adminAuditDefaultLimit)
	if limit <= 0 || limit > 1000 {
		limit = adminAuditDefaultLimit
	}

	events, err := repository.GetGlobalRepositories().Audit.ListRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load audit events"})
	}
	return c.JSON(fiber.Map{"events": auditEventList(events)})
}

// HandleAdminPaymentAudit returns the full audit trail of one payment,
// oldest first.
func HandleAdminPaymentAudit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_id", "message": "Payment id must be a positive integer"})
	}

	events, auditErr := repository.GetGlobalRepositories().Audit.ListByPaymentID(uint(id))
	if auditErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load audit events"})
	}
	return c.JSON(fiber.Map{"payment_id": id, "events": auditEventList(events)})
}

func auditEventList(events []models.AuditEvent) []fiber.Map {
	out := make([]fiber.Map, 0, len(events))
	for _, ev := range events {
		out = append(out, fiber.Map{
			"id":         ev.ID,
			"kind":       ev.Kind,
			"source":     ev.Source,
			"payment_id": ev.PaymentID,
			"user_ref":   ev.UserRef,
			"payload":    ev.PayloadJSON,
			"created_at": ev.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
