package domain

import (
	"errors"
	"time"
)

var ErrSnapshotNotFound = errors.New("form snapshot not found")

// ErrSnapshotCorrupt marks stored snapshot data that fails to decode. Callers
// treat it as "no snapshot": the restore proceeds empty and the user never
// sees an error.
var ErrSnapshotCorrupt = errors.New("form snapshot corrupt")

// FormSnapshot is the full set of preorder form field values captured as one
// atomic unit. Every persist is a whole-form overwrite; a snapshot never
// holds a half-written subset of a multi-field edit.
type FormSnapshot struct {
	ClientID  string            `json:"client_id" bson:"_id"`
	Fields    map[string]string `json:"fields" bson:"fields"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}
