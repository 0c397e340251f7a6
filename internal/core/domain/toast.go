package domain

import "time"

// ToastKind classifies a transient on-screen notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastWarning ToastKind = "warning"
	ToastInfo    ToastKind = "info"
)

// Toast is a single queued notification. Duration 0 means the toast persists
// until explicitly dismissed. Each toast is timed independently; identical
// repeated pushes stack rather than merge.
type Toast struct {
	ID        string        `json:"id"`
	Kind      ToastKind     `json:"kind"`
	Title     string        `json:"title,omitempty"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}
