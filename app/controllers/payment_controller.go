package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ndiayelabs/terangapay/internal/pkg/payments"
	"github.com/ndiayelabs/terangapay/internal/pkg/usercontext"
)

var (
	paymentService       *payments.Service
	paymentWebhookSecret string
	paymentValidate      = validator.New()
)

// InitializePaymentController wires the reconciliation service and webhook
// secret into the payment handlers. Must be called before routes are served.
func InitializePaymentController(svc *payments.Service, webhookSecret string) {
	paymentService = svc
	paymentWebhookSecret = webhookSecret
}

// CreateCheckoutRequest is the body of POST /api/v1/checkout.
type CreateCheckoutRequest struct {
	Plan        string `json:"plan" validate:"required,oneof=premium premium_plus donation"`
	Amount      int64  `json:"amount" validate:"omitempty,gt=0"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// HandleCreateCheckout opens a provider invoice for the authenticated user
// and returns the checkout URL the client redirects to.
func HandleCreateCheckout(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req CreateCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload", "message": "Request body could not be parsed"})
	}
	if err := paymentValidate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 20*time.Second)
	defer cancel()

	res, err := paymentService.CreateCheckout(ctx, payments.CheckoutInput{
		UserRef:     userCtx.UserRef,
		Plan:        req.Plan,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		log.Errorf("[Payments] checkout for user %s failed: %v", userCtx.UserRef, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "checkout_failed", "message": "Checkout could not be created"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment_id":   res.PaymentID,
		"token":        res.Token,
		"checkout_url": res.CheckoutURL,
	})
}

// HandlePaymentWebhook ingests provider notifications. The signature is
// verified over the exact raw bytes before anything is parsed; an invalid
// signature is rejected with 401 and a valid notification for an unknown
// token is acknowledged but ignored.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := firstHeaderValue(c, payments.SignatureHeaders...)

	if !payments.VerifyWebhookSignature(rawBody, signature, paymentWebhookSecret) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	notification, err := payments.ParseNotification(rawBody, c.Get(fiber.HeaderContentType))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res, err := paymentService.ApplyNotification(ctx, notification)
	if err != nil {
		log.Errorf("[Payments] webhook for token %q failed: %v", notification.Token, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_processing_failed"})
	}
	if res.Ignored {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// HandlePaymentStatus resolves the current status of a payment by provider
// token, falling back to a provider confirm call when local state is still
// pending.
func HandlePaymentStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_token", "message": "Payment token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 20*time.Second)
	defer cancel()

	res, err := paymentService.ResolveStatus(ctx, token)
	if err != nil {
		log.Errorf("[Payments] status resolve for token %q failed: %v", token, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "status_resolve_failed"})
	}

	return c.JSON(fiber.Map{
		"token":  token,
		"status": string(res.Status),
		"known":  res.Known,
	})
}

// HandleListPayments returns the authenticated user's payment history.
func HandleListPayments(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	list, err := paymentService.ListUserPayments(c.Context(), userCtx.UserRef)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load payments"})
	}

	out := make([]fiber.Map, 0, len(list))
	for _, p := range list {
		out = append(out, fiber.Map{
			"id":         p.ID,
			"token":      p.ProviderToken,
			"plan":       p.Plan,
			"status":     p.Status,
			"amount":     p.Amount,
			"currency":   p.Currency,
			"created_at": p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{"payments": out})
}
