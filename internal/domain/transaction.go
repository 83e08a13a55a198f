package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is an atomically created set of balanced ledger entries owned by
// one user. Entries cannot be added or removed after creation; an edit is a
// delete followed by a recreate.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time // calendar date, time component ignored
	Description string
	Entries     []Entry
	CreatedAt   time.Time
}
