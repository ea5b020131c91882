package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ndiayelabs/terangapay/internal/pkg/env"
)

const defaultPayDunyaBaseURL = "https://app.paydunya.com/api/v1"

// PayDunyaConfig holds the credentials and URLs the client is constructed
// with. Missing key material is a construction-time error so a misconfigured
// deployment refuses to start instead of rejecting every request at runtime.
type PayDunyaConfig struct {
	MasterKey  string
	PrivateKey string
	PublicKey  string
	Token      string

	BaseURL   string
	StoreName string

	CallbackURL string
	ReturnURL   string
	CancelURL   string

	HTTPClient *http.Client
}

// PayDunyaClient talks to the PayDunya checkout-invoice API. It implements
// Provider.
type PayDunyaClient struct {
	cfg        PayDunyaConfig
	baseURL    string
	httpClient *http.Client
}

// NewPayDunyaClient validates the config and builds a client.
func NewPayDunyaClient(cfg PayDunyaConfig) (*PayDunyaClient, error) {
	if strings.TrimSpace(cfg.MasterKey) == "" ||
		strings.TrimSpace(cfg.PrivateKey) == "" ||
		strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("paydunya: master key, private key and token are required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultPayDunyaBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &PayDunyaClient{cfg: cfg, baseURL: baseURL, httpClient: httpClient}, nil
}

// NewPayDunyaClientFromEnv builds a client from PAYDUNYA_* environment keys.
func NewPayDunyaClientFromEnv() (*PayDunyaClient, error) {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	callbackURL := strings.TrimSpace(env.GetEnv("PAYDUNYA_CALLBACK_URL", ""))
	if callbackURL == "" && base != "" {
		callbackURL = base + "/webhooks/paydunya"
	}

	return NewPayDunyaClient(PayDunyaConfig{
		MasterKey:   strings.TrimSpace(env.GetEnv("PAYDUNYA_MASTER_KEY", "")),
		PrivateKey:  strings.TrimSpace(env.GetEnv("PAYDUNYA_PRIVATE_KEY", "")),
		PublicKey:   strings.TrimSpace(env.GetEnv("PAYDUNYA_PUBLIC_KEY", "")),
		Token:       strings.TrimSpace(env.GetEnv("PAYDUNYA_TOKEN", "")),
		BaseURL:     strings.TrimSpace(env.GetEnv("PAYDUNYA_BASE_URL", defaultPayDunyaBaseURL)),
		StoreName:   strings.TrimSpace(env.GetEnv("PAYDUNYA_STORE_NAME", "TerangaPay")),
		CallbackURL: callbackURL,
		ReturnURL:   strings.TrimSpace(env.GetEnv("PAYDUNYA_RETURN_URL", "")),
		CancelURL:   strings.TrimSpace(env.GetEnv("PAYDUNYA_CANCEL_URL", "")),
	})
}

func (c *PayDunyaClient) setAuthHeaders(req *http.Request) {
	req.Header.Set("PAYDUNYA-MASTER-KEY", c.cfg.MasterKey)
	req.Header.Set("PAYDUNYA-PRIVATE-KEY", c.cfg.PrivateKey)
	if c.cfg.PublicKey != "" {
		req.Header.Set("PAYDUNYA-PUBLIC-KEY", c.cfg.PublicKey)
	}
	req.Header.Set("PAYDUNYA-TOKEN", c.cfg.Token)
	req.Header.Set("Accept", "application/json")
}

// CreateInvoice opens a hosted checkout invoice and returns the provider
// token plus the checkout URL the client is redirected to.
func (c *PayDunyaClient) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*CreateInvoiceResult, error) {
	payload := map[string]any{
		"invoice": map[string]any{
			"total_amount": in.Amount,
			"description":  in.Description,
		},
		"store": map[string]any{
			"name": c.cfg.StoreName,
		},
		"actions": map[string]any{
			"callback_url": c.cfg.CallbackURL,
			"return_url":   c.cfg.ReturnURL,
			"cancel_url":   c.cfg.CancelURL,
		},
		"custom_data": map[string]any{
			"plan":     in.Plan,
			"user_ref": in.UserRef,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout-invoice/create", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paydunya create invoice: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paydunya create invoice failed: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out struct {
		ResponseCode string `json:"response_code"`
		ResponseText string `json:"response_text"`
		Description  string `json:"description"`
		Token        string `json:"token"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode create invoice response: %w", err)
	}
	if out.ResponseCode != "00" || strings.TrimSpace(out.Token) == "" {
		return nil, fmt.Errorf("paydunya create invoice rejected: code=%s description=%s", out.ResponseCode, out.Description)
	}

	checkoutURL := strings.TrimSpace(out.ResponseText)
	if _, err := url.ParseRequestURI(checkoutURL); err != nil {
		return nil, fmt.Errorf("paydunya returned invalid checkout url %q", checkoutURL)
	}
	return &CreateInvoiceResult{Token: out.Token, CheckoutURL: checkoutURL}, nil
}

// Confirm queries the authoritative status of an invoice by token. The raw
// report carries the provider's own vocabulary; callers normalize it.
func (c *PayDunyaClient) Confirm(ctx context.Context, token string) (*Report, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("paydunya confirm: token is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/checkout-invoice/confirm/"+url.PathEscape(token), nil)
	if err != nil {
		return nil, err
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paydunya confirm: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paydunya confirm failed: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out struct {
		Status  string `json:"status"`
		Invoice struct {
			Token       string    `json:"token"`
			Status      string    `json:"status"`
			TotalAmount rawAmount `json:"total_amount"`
			Currency    string    `json:"currency"`
		} `json:"invoice"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode confirm response: %w", err)
	}

	reportToken := strings.TrimSpace(out.Invoice.Token)
	if reportToken == "" {
		reportToken = token
	}
	return &Report{
		Token:         reportToken,
		Status:        strings.TrimSpace(out.Status),
		InvoiceStatus: strings.TrimSpace(out.Invoice.Status),
		Amount:        out.Invoice.TotalAmount.value,
		Currency:      strings.TrimSpace(out.Invoice.Currency),
	}, nil
}
