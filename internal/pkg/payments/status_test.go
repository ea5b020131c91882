package payments

import "testing"

func int64p(v int64) *int64 { return &v }

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		top, nested string
		want        Status
	}{
		{"completed", "", StatusCompleted},
		{"COMPLETE", "", StatusCompleted},
		{"paid", "", StatusCompleted},
		{"success", "", StatusCompleted},
		{"", "completed", StatusCompleted},
		{"cancelled", "", StatusFailed},
		{"canceled", "", StatusFailed},
		{"failed", "", StatusFailed},
		{"", "fail", StatusFailed},
		{"pending", "", StatusPending},
		{"processing", "", StatusPending},
		{"", "", StatusPending},
		{"something new", "", StatusPending},
	}

	for _, tt := range tests {
		if got := classifyStatus(tt.top, tt.nested); got != tt.want {
			t.Fatalf("classifyStatus(%q, %q) = %q, want %q", tt.top, tt.nested, got, tt.want)
		}
	}
}

func TestClassifyStatus_CompletedRuleWinsAcrossFields(t *testing.T) {
	// A completed signal in either field outranks a failed one in the other,
	// regardless of field order.
	tests := []struct {
		top, nested string
	}{
		{"cancelled", "completed"},
		{"completed", "cancelled"},
		{"failed", "PAID"},
		{"SUCCESS", "fail"},
	}
	for _, tt := range tests {
		if got := classifyStatus(tt.top, tt.nested); got != StatusCompleted {
			t.Fatalf("classifyStatus(%q, %q) = %q, want %q", tt.top, tt.nested, got, StatusCompleted)
		}
	}
}

func TestClassifyStatus_NeverDefaultsToCompleted(t *testing.T) {
	for _, s := range []string{"ok", "done-ish", "approved?", "unknown"} {
		if got := classifyStatus(s, ""); got == StatusCompleted {
			t.Fatalf("unrecognized status %q classified as completed", s)
		}
	}
}

func TestNormalize_AcceptsMatchingProceeds(t *testing.T) {
	r := Report{Status: "completed", Amount: int64p(5000), Currency: "XOF"}
	status, mismatch := Normalize(r, &Expectation{Amount: 5000, Currency: "XOF"})
	if status != StatusCompleted || mismatch != nil {
		t.Fatalf("expected clean completed, got %q mismatch=%v", status, mismatch)
	}

	// Currency comparison is case-insensitive.
	r.Currency = "xof"
	status, mismatch = Normalize(r, &Expectation{Amount: 5000, Currency: "XOF"})
	if status != StatusCompleted || mismatch != nil {
		t.Fatalf("expected case-insensitive currency match, got %q mismatch=%v", status, mismatch)
	}
}

func TestNormalize_AmountMismatchDowngrades(t *testing.T) {
	r := Report{Status: "completed", Amount: int64p(4000), Currency: "XOF"}
	status, mismatch := Normalize(r, &Expectation{Amount: 5000, Currency: "XOF"})
	if status != StatusPending {
		t.Fatalf("expected downgrade to pending, got %q", status)
	}
	if mismatch == nil {
		t.Fatalf("expected mismatch detail")
	}
	if mismatch.ExpectedAmount != 5000 || mismatch.ReceivedAmount != 4000 {
		t.Fatalf("unexpected mismatch amounts: %+v", mismatch)
	}
}

func TestNormalize_CurrencyMismatchDowngrades(t *testing.T) {
	r := Report{Status: "completed", Amount: int64p(5000), Currency: "EUR"}
	status, mismatch := Normalize(r, &Expectation{Amount: 5000, Currency: "XOF"})
	if status != StatusPending || mismatch == nil {
		t.Fatalf("expected downgrade on currency mismatch, got %q mismatch=%v", status, mismatch)
	}

	// Unknown provider currency is not a mismatch.
	r.Currency = ""
	status, mismatch = Normalize(r, &Expectation{Amount: 5000, Currency: "XOF"})
	if status != StatusCompleted || mismatch != nil {
		t.Fatalf("expected unknown currency to be accepted, got %q mismatch=%v", status, mismatch)
	}
}

func TestNormalize_GuardOnlyAppliesToCompleted(t *testing.T) {
	r := Report{Status: "pending", Amount: int64p(4000)}
	status, mismatch := Normalize(r, &Expectation{Amount: 5000, Currency: "XOF"})
	if status != StatusPending || mismatch != nil {
		t.Fatalf("guard must not fire on non-completed reports: %q %v", status, mismatch)
	}

	status, mismatch = Normalize(Report{Status: "completed", Amount: int64p(4000)}, nil)
	if status != StatusCompleted || mismatch != nil {
		t.Fatalf("no expectation means no guard: %q %v", status, mismatch)
	}
}
