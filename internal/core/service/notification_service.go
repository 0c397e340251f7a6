package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aiqb/preorder-system/internal/api/metrics"
	"github.com/aiqb/preorder-system/internal/core/domain"
)

// queuedToast pairs a toast with its pending auto-dismiss timer, if any.
type queuedToast struct {
	toast domain.Toast
	timer *time.Timer
}

// NotificationService is the in-memory toast queue. Toasts are scoped to a
// client id, ordered by enqueue time, and dismissed either by their own
// timer or by an explicit request. Nothing merges or deduplicates: every
// Push yields a visible toast.
type NotificationService struct {
	logger zerolog.Logger

	mu     sync.Mutex
	queues map[string][]*queuedToast
}

func NewNotificationService(logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		logger: logger,
		queues: make(map[string][]*queuedToast),
	}
}

// Push appends a toast to the client's queue and arms its auto-dismiss timer.
// A zero duration leaves the toast up until it is dismissed.
func (n *NotificationService) Push(clientID string, kind domain.ToastKind, title, message string, duration time.Duration) string {
	t := domain.Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		Duration:  duration,
		CreatedAt: time.Now().UTC(),
	}

	q := &queuedToast{toast: t}

	// The toast must be in the queue before its timer is armed, or a very
	// short timer could fire against a toast that is not there yet and the
	// toast would then outlive its duration.
	n.mu.Lock()
	n.queues[clientID] = append(n.queues[clientID], q)
	if duration > 0 {
		q.timer = time.AfterFunc(duration, func() {
			n.remove(clientID, t.ID)
		})
	}
	n.mu.Unlock()

	metrics.ToastsEmittedTotal.WithLabelValues(string(kind)).Inc()
	n.logger.Debug().Str("client_id", clientID).Str("kind", string(kind)).Str("message", message).Msg("toast")
	return t.ID
}

// Dismiss removes a toast immediately and cancels its pending timer.
func (n *NotificationService) Dismiss(clientID, toastID string) {
	n.remove(clientID, toastID)
}

// Active returns the client's live toasts in enqueue order.
func (n *NotificationService) Active(clientID string) []domain.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	queue := n.queues[clientID]
	toasts := make([]domain.Toast, 0, len(queue))
	for _, q := range queue {
		toasts = append(toasts, q.toast)
	}
	return toasts
}

func (n *NotificationService) remove(clientID, toastID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	queue := n.queues[clientID]
	for i, q := range queue {
		if q.toast.ID != toastID {
			continue
		}
		if q.timer != nil {
			q.timer.Stop()
		}
		n.queues[clientID] = append(queue[:i], queue[i+1:]...)
		if len(n.queues[clientID]) == 0 {
			delete(n.queues, clientID)
		}
		return
	}
}
