package types

import "time"

const (
	EventTextServed   = "text_served"
	EventFileServed   = "file_served"
	EventFileReceived = "file_received"
)

// TransferEvent records that content moved through the server. Informational
// only: emitting one must never block or fail the request that caused it.
type TransferEvent struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	Remote string    `json:"remote,omitempty"`
	Name   string    `json:"name,omitempty"`
	Size   int64     `json:"size,omitempty"`
	Time   time.Time `json:"time"`
}
