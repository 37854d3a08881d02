package domain

import "time"

// DisputeStatus represents the dispute state of a booking
type DisputeStatus string

const (
	DisputeNone             DisputeStatus = "none"
	DisputeOpened           DisputeStatus = "opened"
	DisputeProResponded     DisputeStatus = "pro_responded"
	DisputeResolvedPro      DisputeStatus = "resolved_pro"
	DisputeResolvedCustomer DisputeStatus = "resolved_customer"
	DisputeEscalated        DisputeStatus = "escalated"
)

// IsTerminal returns true if no further party transitions are allowed.
// Escalated disputes are handed to the admin resolution path, which is the
// only actor that may still move them (to one of the resolved states).
func (s DisputeStatus) IsTerminal() bool {
	return s == DisputeResolvedPro || s == DisputeResolvedCustomer || s == DisputeEscalated
}

// IsOpen returns true if a dispute is in progress
func (s DisputeStatus) IsOpen() bool {
	return s == DisputeOpened || s == DisputeProResponded || s == DisputeEscalated
}

// ActorRole identifies which side of a booking an actor is on
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RolePro      ActorRole = "pro"
	RoleAdmin    ActorRole = "admin"
)

// Dispute log actions
const (
	DisputeActionOpened    = "opened"
	DisputeActionResponded = "responded"
	DisputeActionResolved  = "resolved"
	DisputeActionEscalated = "escalated"
)

// DisputeLogEntry is one append-only record in a booking's dispute audit trail.
// Entries are never updated or deleted.
type DisputeLogEntry struct {
	ID           int64
	BookingID    int64
	ActorID      *int64 // nil for system-generated entries
	ActorRole    ActorRole
	Action       string
	Message      string
	EvidenceURLs []string
	CreatedAt    time.Time
}
