package payments

import (
	"strings"

	"github.com/ndiayelabs/terangapay/app/models"
)

// Status is the closed local payment vocabulary. Provider free-text statuses
// are mapped onto it by Normalize and never leak past this package.
type Status string

const (
	StatusPending   Status = models.PaymentStatusPending
	StatusCompleted Status = models.PaymentStatusCompleted
	StatusFailed    Status = models.PaymentStatusFailed

	// StatusUnknown is a pull-path outcome for tokens with no local row and
	// an unreachable provider. It is never persisted.
	StatusUnknown Status = "unknown"
)

// classifyStatus maps the provider's top-level and nested status strings onto
// the local vocabulary. Rules are ranked, not fields: a completed signal in
// either field wins over a cancelled/failed signal in the other. The
// classifier is best-effort text matching over an externally controlled
// vocabulary and defaults to pending on anything it does not recognize; it
// must never default to completed.
func classifyStatus(values ...string) Status {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		s := strings.ToUpper(strings.TrimSpace(v))
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	for _, s := range cleaned {
		if strings.Contains(s, "COMPLETE") || s == "PAID" || s == "SUCCESS" {
			return StatusCompleted
		}
	}
	for _, s := range cleaned {
		if strings.Contains(s, "CANCEL") || strings.Contains(s, "FAIL") {
			return StatusFailed
		}
	}
	return StatusPending
}

// Normalize turns a provider report into a local status. When the report
// classifies as completed and an expectation is supplied, the reported amount
// and currency are checked against it; a disagreement downgrades the result
// to pending and returns the mismatch detail. A payment is never marked
// completed on mismatched proceeds, even if the provider claims success.
func Normalize(r Report, expect *Expectation) (Status, *Mismatch) {
	status := classifyStatus(r.Status, r.InvoiceStatus)
	if status != StatusCompleted || expect == nil {
		return status, nil
	}

	amountOK := r.Amount == nil || *r.Amount == expect.Amount
	currencyOK := r.Currency == "" || expect.Currency == "" ||
		strings.EqualFold(strings.TrimSpace(r.Currency), strings.TrimSpace(expect.Currency))
	if amountOK && currencyOK {
		return StatusCompleted, nil
	}

	m := &Mismatch{
		ExpectedAmount:   expect.Amount,
		ExpectedCurrency: expect.Currency,
		ReceivedCurrency: strings.TrimSpace(r.Currency),
	}
	if r.Amount != nil {
		m.ReceivedAmount = *r.Amount
	} else {
		m.ReceivedAmount = expect.Amount
	}
	return StatusPending, m
}
