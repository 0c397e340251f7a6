package domain

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestNewOrderID_Format(t *testing.T) {
	at := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	id := NewOrderID(at)

	if !strings.HasPrefix(id, OrderIDPrefix) {
		t.Fatalf("missing prefix: %s", id)
	}
	suffix := strings.TrimPrefix(id, OrderIDPrefix)
	if suffix != strings.ToUpper(suffix) {
		t.Fatalf("suffix must be uppercase: %s", suffix)
	}

	ms, err := strconv.ParseInt(strings.ToLower(suffix), 36, 64)
	if err != nil {
		t.Fatalf("suffix is not base 36: %v", err)
	}
	if ms != at.UnixMilli() {
		t.Fatalf("expected %d, decoded %d", at.UnixMilli(), ms)
	}
}

func TestSyncTransitions(t *testing.T) {
	if !SyncCaptured.CanTransitionTo(SyncSynced) {
		t.Fatalf("captured must be able to sync")
	}
	if SyncSynced.CanTransitionTo(SyncCaptured) {
		t.Fatalf("synced is terminal")
	}
	if SyncSynced.CanTransitionTo(SyncSynced) {
		t.Fatalf("no self transition")
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{"9812345678", "9712345678", "9612345678"}
	for _, p := range valid {
		if !ValidPhone(p) {
			t.Fatalf("expected valid: %s", p)
		}
	}

	invalid := []string{"1234567890", "9512345678", "981234567", "98123456789", "98123456ab", "+9779812345678", ""}
	for _, p := range invalid {
		if ValidPhone(p) {
			t.Fatalf("expected invalid: %s", p)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "ram.shrestha@example.org"}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Fatalf("expected valid: %s", e)
		}
	}

	invalid := []string{"not-an-email", "a@b", "a b@c.com", "@b.com", ""}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Fatalf("expected invalid: %s", e)
		}
	}
}
