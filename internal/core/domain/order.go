package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// AmountNPR is the fixed preorder price in Nepali rupees. Every order is for
// exactly one jacket at this price.
const AmountNPR = 10999

// OrderIDPrefix starts every public order id.
const OrderIDPrefix = "AIQB-"

// SyncStatus tracks whether an order captured locally has reached the remote
// backend yet.
type SyncStatus string

const (
	// SyncCaptured means the order lives only in the local fallback tier.
	SyncCaptured SyncStatus = "captured"
	// SyncSynced means the remote backend holds the order too.
	SyncSynced SyncStatus = "synced"
)

// validSyncTransitions defines the allowed sync state machine. Synced is
// terminal: an order never falls back to captured.
var validSyncTransitions = map[SyncStatus][]SyncStatus{
	SyncCaptured: {SyncSynced},
}

var ErrInvalidSyncTransition = errors.New("invalid sync status transition")
var ErrOrderNotFound = errors.New("order not found")
var ErrDuplicateOrder = errors.New("order already exists")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from the current sync status
// to next is valid.
func (s SyncStatus) CanTransitionTo(next SyncStatus) bool {
	for _, allowed := range validSyncTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is one preorder submission. It always carries the full form payload:
// the local record must be self-sufficient when the remote backend never saw
// the order.
type Order struct {
	OrderID       string `json:"order_id" bson:"order_id"`
	ClientID      string `json:"-" bson:"client_id"`
	UserID        string `json:"user_id,omitempty" bson:"user_id,omitempty"`
	FullName      string `json:"full_name" bson:"full_name"`
	Email         string `json:"email" bson:"email"`
	Phone         string `json:"phone" bson:"phone"`
	Size          string `json:"size" bson:"size"`
	LiningColor   string `json:"lining_color" bson:"lining_color"`
	Address       string `json:"address,omitempty" bson:"address,omitempty"`
	City          string `json:"city,omitempty" bson:"city,omitempty"`
	Landmark      string `json:"landmark,omitempty" bson:"landmark,omitempty"`
	PaymentMethod string `json:"payment_method" bson:"payment_method"`
	AmountNPR     int    `json:"amount_npr" bson:"amount_npr"`

	SyncStatus SyncStatus `json:"sync_status" bson:"sync_status"`
	RemoteID   string     `json:"remote_id,omitempty" bson:"remote_id,omitempty"`
	SyncedAt   *time.Time `json:"synced_at,omitempty" bson:"synced_at,omitempty"`

	IdempotencyKey string    `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// NewOrderID derives the public order id from the submission instant: the
// millisecond timestamp rendered in uppercase base 36 behind the fixed
// prefix.
func NewOrderID(t time.Time) string {
	return OrderIDPrefix + strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}
