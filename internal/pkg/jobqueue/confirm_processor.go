package jobqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ndiayelabs/terangapay/internal/pkg/payments"
)

// StatusResolver resolves the authoritative status of a payment by provider
// token. Satisfied by *payments.Service.
type StatusResolver interface {
	ResolveStatus(ctx context.Context, token string) (*payments.ResolveResult, error)
}

var (
	resolverMu     sync.RWMutex
	statusResolver StatusResolver
)

// SetStatusResolver wires the reconciliation service into confirm job
// processing. Must be called before the queue starts.
func SetStatusResolver(r StatusResolver) {
	resolverMu.Lock()
	defer resolverMu.Unlock()
	statusResolver = r
}

func getStatusResolver() StatusResolver {
	resolverMu.RLock()
	defer resolverMu.RUnlock()
	return statusResolver
}

// processPaymentConfirmJob asks the provider for the current status of a
// stale pending payment. ResolveStatus degrades provider failures to "no new
// information", so the job only fails on local errors worth retrying.
func (q *Queue) processPaymentConfirmJob(ctx context.Context, job *Job) error {
	payload, err := PaymentConfirmJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid payment confirm payload: %w", err)
	}
	if payload.Token == "" {
		return fmt.Errorf("payment confirm job %s missing token", job.ID)
	}

	resolver := getStatusResolver()
	if resolver == nil {
		return fmt.Errorf("status resolver not configured")
	}

	jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := resolver.ResolveStatus(jobCtx, payload.Token)
	if err != nil {
		return fmt.Errorf("resolve status for payment %d: %w", payload.PaymentID, err)
	}

	log.Infof("[JobQueue] Confirm sweep for payment %d (token=%s): status=%s", payload.PaymentID, payload.Token, res.Status)
	return nil
}
