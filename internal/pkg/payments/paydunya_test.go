package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testPayDunyaClient(t *testing.T, handler http.HandlerFunc) (*PayDunyaClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewPayDunyaClient(PayDunyaConfig{
		MasterKey:   "mk",
		PrivateKey:  "pk",
		Token:       "tk",
		BaseURL:     srv.URL,
		StoreName:   "Test Store",
		CallbackURL: "https://example.com/webhooks/paydunya",
	})
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	return client, srv
}

func TestNewPayDunyaClient_RequiresKeys(t *testing.T) {
	if _, err := NewPayDunyaClient(PayDunyaConfig{MasterKey: "mk"}); err == nil {
		t.Fatalf("expected error for missing private key and token")
	}
}

func TestPayDunyaCreateInvoice(t *testing.T) {
	var gotBody map[string]any
	client, _ := testPayDunyaClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/checkout-invoice/create" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("PAYDUNYA-MASTER-KEY") != "mk" || r.Header.Get("PAYDUNYA-TOKEN") != "tk" {
			t.Errorf("auth headers missing")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response_code": "00",
			"response_text": "https://paydunya.com/checkout/invoice/tok_abc",
			"token":         "tok_abc",
		})
	})

	res, err := client.CreateInvoice(context.Background(), CreateInvoiceInput{
		Amount:      5000,
		Currency:    "XOF",
		Description: "Premium subscription",
		Plan:        "premium",
		UserRef:     "42",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token != "tok_abc" {
		t.Fatalf("token mismatch: %q", res.Token)
	}
	if !strings.HasPrefix(res.CheckoutURL, "https://paydunya.com/") {
		t.Fatalf("checkout url mismatch: %q", res.CheckoutURL)
	}

	invoice, _ := gotBody["invoice"].(map[string]any)
	if invoice == nil || invoice["total_amount"].(float64) != 5000 {
		t.Fatalf("request invoice payload: %+v", gotBody)
	}
	custom, _ := gotBody["custom_data"].(map[string]any)
	if custom == nil || custom["plan"] != "premium" || custom["user_ref"] != "42" {
		t.Fatalf("request custom_data payload: %+v", gotBody)
	}
}

func TestPayDunyaCreateInvoice_RejectedCode(t *testing.T) {
	client, _ := testPayDunyaClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response_code": "1001",
			"description":   "Invalid store configuration",
		})
	})

	if _, err := client.CreateInvoice(context.Background(), CreateInvoiceInput{Amount: 5000}); err == nil {
		t.Fatalf("expected error for rejected response code")
	}
}

func TestPayDunyaCreateInvoice_HTTPError(t *testing.T) {
	client, _ := testPayDunyaClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	})

	if _, err := client.CreateInvoice(context.Background(), CreateInvoiceInput{Amount: 5000}); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

func TestPayDunyaConfirm(t *testing.T) {
	client, _ := testPayDunyaClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/checkout-invoice/confirm/tok_abc" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "completed",
			"invoice": map[string]any{
				"token":        "tok_abc",
				"status":       "completed",
				"total_amount": "5000.00",
				"currency":     "XOF",
			},
		})
	})

	report, err := client.Confirm(context.Background(), "tok_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Token != "tok_abc" || report.Status != "completed" {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Amount == nil || *report.Amount != 5000 {
		t.Fatalf("amount mismatch: %v", report.Amount)
	}
	if report.Currency != "XOF" {
		t.Fatalf("currency mismatch: %q", report.Currency)
	}
}

func TestPayDunyaConfirm_EmptyToken(t *testing.T) {
	client, _ := testPayDunyaClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := client.Confirm(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty token")
	}
}
