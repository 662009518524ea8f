package rawmatch

import "time"

// Match is an opaque stats API payload stored as received.
type Match struct {
	ID        string
	Payload   []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}
