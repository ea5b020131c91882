package payments

import "testing"

var allStatuses = []Status{StatusPending, StatusCompleted, StatusFailed}

func TestMergePriority(t *testing.T) {
	tests := []struct {
		current, incoming, want Status
	}{
		{StatusPending, StatusPending, StatusPending},
		{StatusPending, StatusCompleted, StatusCompleted},
		{StatusPending, StatusFailed, StatusFailed},
		{StatusFailed, StatusCompleted, StatusCompleted},
		{StatusCompleted, StatusFailed, StatusCompleted},
		{StatusCompleted, StatusPending, StatusCompleted},
		{StatusFailed, StatusPending, StatusFailed},
	}

	for _, tt := range tests {
		if got := Merge(tt.current, tt.incoming); got != tt.want {
			t.Fatalf("Merge(%q, %q) = %q, want %q", tt.current, tt.incoming, got, tt.want)
		}
	}
}

func TestMergeCommutativeAndIdempotent(t *testing.T) {
	for _, a := range allStatuses {
		for _, b := range allStatuses {
			if Merge(a, b) != Merge(b, a) {
				t.Fatalf("Merge(%q, %q) is not commutative", a, b)
			}
			if Merge(Merge(a, b), b) != Merge(a, b) {
				t.Fatalf("Merge(%q, %q) is not idempotent", a, b)
			}
		}
	}
}

func TestMergeTerminalStickiness(t *testing.T) {
	for _, incoming := range []Status{StatusPending, StatusFailed} {
		if got := Merge(StatusCompleted, incoming); got != StatusCompleted {
			t.Fatalf("completed regressed to %q on incoming %q", got, incoming)
		}
	}
}

func TestMergeUnknownInputRanksAsPending(t *testing.T) {
	if got := Merge(StatusFailed, Status("weird")); got != StatusFailed {
		t.Fatalf("expected failed to survive unknown input, got %q", got)
	}
	if got := Merge(Status(""), StatusCompleted); got != StatusCompleted {
		t.Fatalf("expected completed, got %q", got)
	}
}
