package domain

import (
	"context"
	"time"
)

// TicketStatus is the lifecycle state of a ticket. The purchase flow only
// ever writes StatusActive; voided tickets are recognized by availability
// queries but no transition to them is implemented.
type TicketStatus string

const (
	TicketStatusActive TicketStatus = "active"
	TicketStatusVoided TicketStatus = "voided"
)

// Ticket represents one fungible admission unit for an event. Tickets are
// immutable once committed; they are never edited or deleted.
// swagger:model Ticket
type Ticket struct {
	ID           string       `json:"id"`
	EventID      string       `json:"event_id"`
	UserID       string       `json:"user_id"`
	TicketNumber string       `json:"ticket_number"`
	PurchaseDate time.Time    `json:"purchase_date"`
	Status       TicketStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewTicket returns a new active Ticket purchased at the given instant.
// ID is typically set by the repository on create.
func NewTicket(eventID, userID, ticketNumber string, purchasedAt time.Time) *Ticket {
	return &Ticket{
		EventID:      eventID,
		UserID:       userID,
		TicketNumber: ticketNumber,
		PurchaseDate: purchasedAt,
		Status:       TicketStatusActive,
		CreatedAt:    purchasedAt,
		UpdatedAt:    purchasedAt,
	}
}

// TicketWithEvent bundles a ticket with its owning event.
// swagger:model TicketWithEvent
type TicketWithEvent struct {
	*Ticket
	Event *Event `json:"event"`
}

// PurchaseResult is the outcome of a successful purchase.
type PurchaseResult struct {
	Tickets           []*Ticket `json:"tickets"`
	RemainingCapacity int       `json:"remaining_capacity"`
}

// TicketRepository defines the interface for ticket storage.
// CountActiveByEventID joins the caller's transaction when one is carried in
// the context, so counts taken under the event row lock cannot race with the
// caller's own allocation write.
type TicketRepository interface {
	CreateBatch(ctx context.Context, tickets []*Ticket) error
	CountActiveByEventID(ctx context.Context, eventID string) (int, error)
	ListByUserID(ctx context.Context, userID string) ([]*TicketWithEvent, error)
}

// ReservationService converts available capacity into committed tickets.
// Purchase is all-or-nothing: either quantity tickets are created or none
// are, even under concurrent purchases against the same event.
type ReservationService interface {
	Purchase(ctx context.Context, eventID, userID string, quantity int) (*PurchaseResult, error)
	// GetAvailable returns capacity minus the current active-ticket count.
	GetAvailable(ctx context.Context, eventID string) (int, error)
	// HasAvailable reports whether at least quantity tickets remain. quantity must be >= 1.
	HasAvailable(ctx context.Context, eventID string, quantity int) (bool, error)
}

// QueryService defines the read-only projections over events and tickets.
type QueryService interface {
	ListUpcomingEvents(ctx context.Context) ([]*EventWithAvailability, error)
	ListUserTickets(ctx context.Context, userID string) ([]*TicketWithEvent, error)
}
