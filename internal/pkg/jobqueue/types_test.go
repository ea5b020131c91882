package jobqueue

import (
	"testing"
	"time"
)

func TestPaymentConfirmJobPayloadRoundTrip(t *testing.T) {
	payload := PaymentConfirmJobPayload{PaymentID: 7, Token: "tok_7"}

	restored, err := PaymentConfirmJobPayloadFromMap(payload.ToMap())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.PaymentID != payload.PaymentID || restored.Token != payload.Token {
		t.Fatalf("round trip changed payload: %+v", restored)
	}
}

func TestJobStatusTransitions(t *testing.T) {
	job := &Job{
		ID:         "test",
		Type:       JobTypePaymentConfirm,
		Status:     JobStatusPending,
		MaxRetries: DefaultMaxRetries,
	}

	job.MarkAsProcessing()
	if job.Status != JobStatusProcessing || job.ProcessedAt == nil {
		t.Fatalf("MarkAsProcessing: %+v", job)
	}

	job.MarkAsFailed("provider unreachable")
	if job.Status != JobStatusFailed || job.RetryCount != 1 || job.ErrorMsg == "" {
		t.Fatalf("MarkAsFailed: %+v", job)
	}
	if !job.IsRetryable() {
		t.Fatalf("expected job to be retryable after first failure")
	}

	job.RetryCount = job.MaxRetries
	if job.IsRetryable() {
		t.Fatalf("job at max retries must not be retryable")
	}

	job.MarkAsCompleted()
	if job.Status != JobStatusCompleted || job.CompletedAt == nil || job.ErrorMsg != "" {
		t.Fatalf("MarkAsCompleted: %+v", job)
	}
	if job.UpdatedAt.After(time.Now()) {
		t.Fatalf("UpdatedAt in the future")
	}
}
