package payments

import (
	"net/url"
	"testing"
)

func TestParseNotification_JSONNestedInvoice(t *testing.T) {
	raw := []byte(`{
		"status": "completed",
		"invoice": {
			"token": "tok_123",
			"status": "completed",
			"total_amount": 5000,
			"currency": "XOF"
		}
	}`)

	n, err := ParseNotification(raw, "application/json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Token != "tok_123" {
		t.Fatalf("token mismatch: %q", n.Token)
	}
	if n.Status != "completed" || n.InvoiceStatus != "completed" {
		t.Fatalf("status mismatch: %q / %q", n.Status, n.InvoiceStatus)
	}
	if n.Amount == nil || *n.Amount != 5000 {
		t.Fatalf("amount mismatch: %v", n.Amount)
	}
	if n.Currency != "XOF" {
		t.Fatalf("currency mismatch: %q", n.Currency)
	}
	if string(n.Raw) != string(raw) {
		t.Fatalf("raw bytes not preserved")
	}
}

func TestParseNotification_StringAmountAndTopLevelToken(t *testing.T) {
	raw := []byte(`{"token":"tok_9","status":"PAID","amount":"5000.00","currency":"xof"}`)

	n, err := ParseNotification(raw, "application/json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Token != "tok_9" {
		t.Fatalf("token mismatch: %q", n.Token)
	}
	if n.Amount == nil || *n.Amount != 5000 {
		t.Fatalf("string amount not parsed: %v", n.Amount)
	}
}

func TestParseNotification_FormEncoded(t *testing.T) {
	form := url.Values{}
	form.Set("data[invoice][token]", "tok_form")
	form.Set("data[status]", "completed")
	form.Set("data[invoice][total_amount]", "2500")
	form.Set("data[invoice][currency]", "XOF")

	n, err := ParseNotification([]byte(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Token != "tok_form" || n.Status != "completed" {
		t.Fatalf("unexpected parse: %+v", n.Report)
	}
	if n.Amount == nil || *n.Amount != 2500 {
		t.Fatalf("amount mismatch: %v", n.Amount)
	}
}

func TestParseNotification_MissingToken(t *testing.T) {
	if _, err := ParseNotification([]byte(`{"status":"completed"}`), "application/json"); err == nil {
		t.Fatalf("expected error for missing token")
	}
}
