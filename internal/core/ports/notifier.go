package ports

import (
	"time"

	"github.com/aiqb/preorder-system/internal/core/domain"
)

// Notifier is the transient per-client toast queue. Every Push produces a
// visible toast: there is no batching, throttling, or deduplication.
type Notifier interface {
	// Push enqueues a toast and returns its id. Duration 0 keeps the toast
	// until dismissed; otherwise it auto-dismisses on its own timer,
	// independently of every other toast.
	Push(clientID string, kind domain.ToastKind, title, message string, duration time.Duration) string
	// Dismiss removes a toast immediately and cancels its pending timer.
	// Unknown ids are a no-op.
	Dismiss(clientID, toastID string)
	// Active returns the client's live toasts in enqueue order.
	Active(clientID string) []domain.Toast
}
