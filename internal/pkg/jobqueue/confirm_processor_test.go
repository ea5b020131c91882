package jobqueue

import (
	"context"
	"errors"
	"testing"

	"github.com/ndiayelabs/terangapay/internal/pkg/payments"
)

type fakeResolver struct {
	lastToken string
	result    *payments.ResolveResult
	err       error
}

func (f *fakeResolver) ResolveStatus(ctx context.Context, token string) (*payments.ResolveResult, error) {
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestProcessPaymentConfirmJob(t *testing.T) {
	resolver := &fakeResolver{result: &payments.ResolveResult{Status: payments.StatusCompleted, Known: true}}
	SetStatusResolver(resolver)
	t.Cleanup(func() { SetStatusResolver(nil) })

	q := &Queue{}
	payload := PaymentConfirmJobPayload{PaymentID: 1, Token: "tok_1"}
	job := &Job{ID: "j1", Type: JobTypePaymentConfirm, Payload: payload.ToMap()}

	if err := q.processPaymentConfirmJob(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolver.lastToken != "tok_1" {
		t.Fatalf("resolver called with %q", resolver.lastToken)
	}
}

func TestProcessPaymentConfirmJob_ResolverError(t *testing.T) {
	SetStatusResolver(&fakeResolver{err: errors.New("db down")})
	t.Cleanup(func() { SetStatusResolver(nil) })

	q := &Queue{}
	payload := PaymentConfirmJobPayload{PaymentID: 1, Token: "tok_1"}
	job := &Job{ID: "j1", Type: JobTypePaymentConfirm, Payload: payload.ToMap()}

	if err := q.processPaymentConfirmJob(context.Background(), job); err == nil {
		t.Fatalf("expected error to mark the job retryable")
	}
}

func TestProcessPaymentConfirmJob_MissingToken(t *testing.T) {
	SetStatusResolver(&fakeResolver{})
	t.Cleanup(func() { SetStatusResolver(nil) })

	q := &Queue{}
	job := &Job{ID: "j1", Type: JobTypePaymentConfirm, Payload: map[string]interface{}{"payment_id": 1}}

	if err := q.processPaymentConfirmJob(context.Background(), job); err == nil {
		t.Fatalf("expected error for missing token")
	}
}

func TestProcessPaymentConfirmJob_NoResolver(t *testing.T) {
	SetStatusResolver(nil)

	q := &Queue{}
	payload := PaymentConfirmJobPayload{PaymentID: 1, Token: "tok_1"}
	job := &Job{ID: "j1", Type: JobTypePaymentConfirm, Payload: payload.ToMap()}

	if err := q.processPaymentConfirmJob(context.Background(), job); err == nil {
		t.Fatalf("expected error when resolver is not configured")
	}
}
