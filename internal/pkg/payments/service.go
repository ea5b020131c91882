package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/ndiayelabs/terangapay/app/models"
	"github.com/ndiayelabs/terangapay/internal/pkg/entitlements"
	"gorm.io/gorm"
)

// statusWriteRetries bounds the re-read/re-merge loop on a conditional write
// conflict. The merge is idempotent, so one retry normally settles it.
const statusWriteRetries = 3

// Service is the payment reconciliation engine. It merges status reports
// from webhooks, confirm polls and persisted state into one authoritative
// payment status and grants entitlements exactly once per completed payment.
type Service struct {
	repo     Repository
	provider Provider
}

// NewService creates a reconciliation service from an injected repository
// and provider client.
func NewService(repo Repository, provider Provider) *Service {
	return &Service{repo: repo, provider: provider}
}

// NewServiceFromDB creates a reconciliation service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, provider Provider) *Service {
	return NewService(NewRepository(db), provider)
}

// CreateCheckout opens a provider invoice and records the attempt as a
// pending payment owned by userRef.
func (s *Service) CreateCheckout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	userRef := strings.TrimSpace(in.UserRef)
	plan := strings.ToLower(strings.TrimSpace(in.Plan))
	if userRef == "" || plan == "" {
		return nil, errors.New("user_ref and plan are required")
	}

	amount := in.Amount
	// Plans with a fixed price ignore the client-supplied amount.
	if fixed, ok := entitlements.AmountForPlan(plan); ok {
		amount = fixed
	}
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "XOF"
	}

	inv, err := s.provider.CreateInvoice(ctx, CreateInvoiceInput{
		Amount:      amount,
		Currency:    currency,
		Description: in.Description,
		Plan:        plan,
		UserRef:     userRef,
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	p := &models.Payment{
		UserRef:       userRef,
		Plan:          plan,
		Provider:      models.PaymentProviderPayDunya,
		ProviderToken: inv.Token,
		Status:        models.PaymentStatusPending,
		Amount:        amount,
		Currency:      currency,
		Description:   strings.TrimSpace(in.Description),
	}
	if err := s.repo.CreatePayment(p); err != nil {
		return nil, fmt.Errorf("persist payment: %w", err)
	}

	return &CheckoutResult{PaymentID: p.ID, Token: inv.Token, CheckoutURL: inv.CheckoutURL}, nil
}

// ApplyNotification runs the push protocol for an already signature-verified
// notification. Unknown tokens are logged and ignored; a payment is never
// synthesized from an inbound notification.
func (s *Service) ApplyNotification(ctx context.Context, n *Notification) (*ApplyResult, error) {
	_ = ctx
	p, err := s.repo.GetPaymentByToken(n.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("[Payments] notification for unknown token %q ignored", n.Token)
			return &ApplyResult{Status: StatusUnknown, Ignored: true}, nil
		}
		return nil, err
	}

	incoming, mismatch := Normalize(n.Report, &Expectation{Amount: p.Amount, Currency: p.Currency})
	if mismatch != nil {
		if err := s.auditMismatch(p, mismatch, models.AuditSourceWebhook); err != nil {
			return nil, err
		}
	}

	res, err := s.applyObserved(p, incoming, models.AuditSourceWebhook)
	if err != nil {
		return nil, err
	}
	res.Mismatch = mismatch
	return res, nil
}

// ResolveStatus runs the pull protocol for a provider token. Provider
// failures degrade to "no new information": the previously known status is
// returned and local state is never regressed.
func (s *Service) ResolveStatus(ctx context.Context, token string) (*ResolveResult, error) {
	p, err := s.repo.GetPaymentByToken(token)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Nothing local to update; ask the provider and report what it says.
		report, cerr := s.provider.Confirm(ctx, token)
		if cerr != nil {
			log.Warnf("[Payments] confirm for unknown token %q failed: %v", token, cerr)
			return &ResolveResult{Status: StatusUnknown}, nil
		}
		status, _ := Normalize(*report, nil)
		return &ResolveResult{Status: status}, nil
	}

	if p.IsTerminal() {
		if p.Status == models.PaymentStatusCompleted {
			// Self-healing: re-running the grant is a no-op if already granted.
			if err := s.grantEntitlements(p); err != nil {
				log.Errorf("[Payments] entitlement self-heal for payment %d failed: %v", p.ID, err)
			}
		}
		return &ResolveResult{Status: Status(p.Status), Known: true}, nil
	}

	report, cerr := s.provider.Confirm(ctx, token)
	if cerr != nil {
		log.Warnf("[Payments] confirm for token %q failed: %v", token, cerr)
		return &ResolveResult{Status: Status(p.Status), Known: true}, nil
	}

	incoming, mismatch := Normalize(*report, &Expectation{Amount: p.Amount, Currency: p.Currency})
	if mismatch != nil {
		if err := s.auditMismatch(p, mismatch, models.AuditSourceConfirm); err != nil {
			return nil, err
		}
	}

	res, err := s.applyObserved(p, incoming, models.AuditSourceConfirm)
	if err != nil {
		return nil, err
	}
	return &ResolveResult{Status: res.Status, Known: true}, nil
}

// applyObserved merges an observed status into the stored row using a
// compare-and-set write. Losing the race means another reconciliation run
// advanced the row first; the state is re-read and the merge repeated so the
// last write is always computed against the most recently read status.
func (s *Service) applyObserved(p *models.Payment, incoming Status, source string) (*ApplyResult, error) {
	for attempt := 0; attempt < statusWriteRetries; attempt++ {
		current := Status(p.Status)
		next := Merge(current, incoming)
		if next == current {
			return &ApplyResult{Status: next}, nil
		}

		ok, err := s.repo.UpdatePaymentStatusFrom(p.ID, string(current), string(next))
		if err != nil {
			return nil, err
		}
		if ok {
			p.Status = string(next)
			res := &ApplyResult{Status: next, Transitioned: true}
			if next == StatusCompleted {
				if err := s.grantEntitlements(p); err != nil {
					return res, err
				}
				if err := s.auditGranted(p, source); err != nil {
					return res, err
				}
				res.Granted = true
			}
			return res, nil
		}

		fresh, err := s.repo.GetPaymentByID(p.ID)
		if err != nil {
			return nil, err
		}
		p = fresh
	}
	return nil, fmt.Errorf("status write conflict on payment %d not resolved", p.ID)
}

// grantEntitlements ensures every resource of the payment's plan is granted
// to its owner. The upsert is keyed on (user_ref, resource), so repeated
// calls refresh the originating payment link without creating duplicates.
func (s *Service) grantEntitlements(p *models.Payment) error {
	now := time.Now()
	for _, resource := range entitlements.ResourcesForPlan(p.Plan) {
		e := &models.Entitlement{
			UserRef:   p.UserRef,
			Resource:  resource,
			PaymentID: p.ID,
			GrantedAt: now,
		}
		if err := s.repo.UpsertEntitlement(e); err != nil {
			return fmt.Errorf("grant %s: %w", resource, err)
		}
	}
	return nil
}

func (s *Service) auditGranted(p *models.Payment, source string) error {
	payload, _ := json.Marshal(map[string]any{
		"plan":      p.Plan,
		"resources": entitlements.ResourcesForPlan(p.Plan),
		"amount":    p.Amount,
		"currency":  p.Currency,
	})
	return s.repo.AppendAudit(&models.AuditEvent{
		Kind:        models.AuditKindEntitlementGranted,
		Source:      source,
		PaymentID:   p.ID,
		UserRef:     p.UserRef,
		PayloadJSON: string(payload),
	})
}

func (s *Service) auditMismatch(p *models.Payment, m *Mismatch, source string) error {
	payload, _ := json.Marshal(m)
	return s.repo.AppendAudit(&models.AuditEvent{
		Kind:        models.AuditKindAmountMismatch,
		Source:      source,
		PaymentID:   p.ID,
		UserRef:     p.UserRef,
		PayloadJSON: string(payload),
	})
}

// ListUserPayments returns the caller's payment history, newest first.
func (s *Service) ListUserPayments(ctx context.Context, userRef string) ([]models.Payment, error) {
	_ = ctx
	return s.repo.ListPaymentsByUser(userRef)
}

// ListStalePending exposes pending payments older than a threshold for the
// background confirm sweeper.
func (s *Service) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]models.Payment, error) {
	_ = ctx
	return s.repo.ListStalePending(olderThan, limit)
}
