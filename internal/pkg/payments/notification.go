package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// rawAmount tolerates the provider sending amounts as JSON numbers or as
// numeric strings ("5000", "5000.00").
type rawAmount struct {
	value *int64
}

func (a *rawAmount) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		v := int64(f)
		a.value = &v
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse amount: %s", string(data))
	}
	v, err := parseAmountString(s)
	if err != nil {
		return err
	}
	a.value = v
	return nil
}

func parseAmountString(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %q", s)
	}
	v := int64(f)
	return &v, nil
}

// ParseNotification decodes a webhook body into a Notification without ever
// re-serializing it: signature verification has already run on the exact raw
// bytes. JSON is tried first; the provider's form-encoded variant (flat keys
// or data[invoice][...] style) is the fallback.
func ParseNotification(raw []byte, contentType string) (*Notification, error) {
	if strings.Contains(strings.ToLower(contentType), "form-urlencoded") {
		return parseFormNotification(raw)
	}
	n, jsonErr := parseJSONNotification(raw)
	if jsonErr == nil {
		return n, nil
	}
	if n, err := parseFormNotification(raw); err == nil {
		return n, nil
	}
	return nil, jsonErr
}

func parseJSONNotification(raw []byte) (*Notification, error) {
	var payload struct {
		Token    string    `json:"token"`
		Status   string    `json:"status"`
		Amount   rawAmount `json:"amount"`
		Currency string    `json:"currency"`
		Invoice  struct {
			Token       string    `json:"token"`
			Status      string    `json:"status"`
			TotalAmount rawAmount `json:"total_amount"`
			Currency    string    `json:"currency"`
		} `json:"invoice"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}

	token := strings.TrimSpace(payload.Token)
	if token == "" {
		token = strings.TrimSpace(payload.Invoice.Token)
	}
	if token == "" {
		return nil, errors.New("notification missing provider token")
	}

	amount := payload.Invoice.TotalAmount.value
	if amount == nil {
		amount = payload.Amount.value
	}
	currency := strings.TrimSpace(payload.Invoice.Currency)
	if currency == "" {
		currency = strings.TrimSpace(payload.Currency)
	}

	return &Notification{
		Report: Report{
			Token:         token,
			Status:        strings.TrimSpace(payload.Status),
			InvoiceStatus: strings.TrimSpace(payload.Invoice.Status),
			Amount:        amount,
			Currency:      currency,
		},
		Raw: raw,
	}, nil
}

func parseFormNotification(raw []byte) (*Notification, error) {
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("decode form notification: %w", err)
	}

	pick := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(values.Get(k)); v != "" {
				return v
			}
		}
		return ""
	}

	token := pick("data[invoice][token]", "invoice[token]", "token")
	if token == "" {
		return nil, errors.New("notification missing provider token")
	}
	amount, err := parseAmountString(pick("data[invoice][total_amount]", "invoice[total_amount]", "amount"))
	if err != nil {
		return nil, err
	}

	return &Notification{
		Report: Report{
			Token:         token,
			Status:        pick("data[status]", "status"),
			InvoiceStatus: pick("data[invoice][status]", "invoice[status]"),
			Amount:        amount,
			Currency:      pick("data[invoice][currency]", "invoice[currency]", "currency"),
		},
		Raw: raw,
	}, nil
}
