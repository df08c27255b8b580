package models

import "time"

// Audit carries the identity and bookkeeping timestamps
// shared by every persisted entity.
type Audit struct {
	ID      int64
	Created time.Time
	Updated time.Time
}
