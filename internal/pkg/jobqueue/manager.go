package jobqueue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ndiayelabs/terangapay/app/models"
	"github.com/ndiayelabs/terangapay/internal/pkg/env"
)

const confirmSweepBatchSize = 100

// PendingLister lists pending payments older than a threshold. Satisfied by
// *payments.Service.
type PendingLister interface {
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]models.Payment, error)
}

// Manager manages the global job queue and the confirm sweep
type Manager struct {
	queue        *Queue
	lister       PendingLister
	sweepTicker  *time.Ticker
	confirmAfter time.Duration
	stopCh       chan struct{}
	wg           sync.WaitGroup
	mu           sync.Mutex
	running      bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{
			queue:  NewQueue(envInt("JOBQUEUE_WORKER_COUNT", 3)),
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// SetPendingLister wires the source of stale pending payments into the
// sweep. Must be called before Start.
func (m *Manager) SetPendingLister(l PendingLister) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lister = l
}

// Start starts the job queue and the confirm sweep
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue and confirm sweep")

	// Start the job queue
	m.queue.Start()

	// Webhooks are the primary signal; the sweep only catches payments the
	// provider never called back about.
	sweepInterval := time.Duration(envInt("CONFIRM_SWEEP_INTERVAL_MINUTES", 5)) * time.Minute
	m.confirmAfter = time.Duration(envInt("CONFIRM_PENDING_AFTER_MINUTES", 15)) * time.Minute

	m.sweepTicker = time.NewTicker(sweepInterval)
	m.wg.Add(1)
	go m.confirmSweepWorker()

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue and the confirm sweep
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and confirm sweep...")

	if m.sweepTicker != nil {
		m.sweepTicker.Stop()
	}

	close(m.stopCh)
	m.running = false
	m.wg.Wait()

	m.queue.Stop()
	log.Info("[JobQueue Manager] Stopped")
}

// confirmSweepWorker periodically enqueues confirm jobs for pending payments
// that have not received a webhook within the staleness window.
func (m *Manager) confirmSweepWorker() {
	defer m.wg.Done()

	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Confirm sweep stopping")
			return
		case <-m.sweepTicker.C:
			m.sweepOnce()
		}
	}
}

func (m *Manager) sweepOnce() {
	m.mu.Lock()
	lister := m.lister
	confirmAfter := m.confirmAfter
	m.mu.Unlock()

	if lister == nil {
		log.Warn("[JobQueue Manager] Confirm sweep has no pending lister configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stale, err := lister.ListStalePending(ctx, time.Now().Add(-confirmAfter), confirmSweepBatchSize)
	if err != nil {
		log.Errorf("[JobQueue Manager] Confirm sweep query failed: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	log.Infof("[JobQueue Manager] Confirm sweep found %d stale pending payments", len(stale))
	for _, p := range stale {
		payload := PaymentConfirmJobPayload{PaymentID: p.ID, Token: p.ProviderToken}
		if _, err := m.queue.EnqueueJob(JobTypePaymentConfirm, payload.ToMap()); err != nil {
			log.Errorf("[JobQueue Manager] Failed to enqueue confirm job for payment %d: %v", p.ID, err)
		}
	}
}

func envInt(key string, def int) int {
	raw := env.GetEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
