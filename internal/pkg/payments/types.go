package payments

import "context"

// Report is the provider-reported view of one transaction, either carried in
// a webhook body or returned by the confirm endpoint. Status strings are the
// provider's free-text vocabulary; they never leave this package without
// going through Normalize.
type Report struct {
	Token         string
	Status        string
	InvoiceStatus string
	Amount        *int64
	Currency      string
}

// Notification is a parsed inbound webhook body. Raw keeps the exact bytes
// the signature was computed over.
type Notification struct {
	Report
	Raw []byte
}

// Expectation carries the locally stored amount/currency a completed report
// must match before it is believed.
type Expectation struct {
	Amount   int64
	Currency string
}

// Mismatch describes an amount/currency disagreement on an otherwise
// completed provider report. It is recorded in exactly one audit event per
// occurrence.
type Mismatch struct {
	ExpectedAmount   int64  `json:"expected_amount"`
	ReceivedAmount   int64  `json:"received_amount"`
	ExpectedCurrency string `json:"expected_currency"`
	ReceivedCurrency string `json:"received_currency"`
}

// CreateInvoiceInput describes a checkout invoice to open with the provider.
type CreateInvoiceInput struct {
	Amount      int64
	Currency    string
	Description string
	Plan        string
	UserRef     string
}

// CreateInvoiceResult is the provider-issued handle for a new invoice.
type CreateInvoiceResult struct {
	Token       string
	CheckoutURL string
}

// Provider is the payment provider boundary the reconciliation service
// depends on. Network failures surface as plain errors; the service treats
// them as "no new information" and never lets them regress local state.
type Provider interface {
	CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*CreateInvoiceResult, error)
	Confirm(ctx context.Context, token string) (*Report, error)
}

// CheckoutInput is a request to open a checkout attempt for a user.
type CheckoutInput struct {
	UserRef     string
	Plan        string
	Amount      int64
	Currency    string
	Description string
}

// CheckoutResult references the created Payment row and the provider-hosted
// checkout page the client is redirected to.
type CheckoutResult struct {
	PaymentID   uint
	Token       string
	CheckoutURL string
}

// ApplyResult reports what a push-protocol run did.
type ApplyResult struct {
	Status       Status
	Transitioned bool
	Granted      bool
	Ignored      bool
	Mismatch     *Mismatch
}

// ResolveResult reports what a pull-protocol run observed. Known is false
// when no local payment exists for the token.
type ResolveResult struct {
	Status Status
	Known  bool
}
