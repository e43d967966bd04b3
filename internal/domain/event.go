package domain

import (
	"context"
	"time"
)

// Event represents a ticketed event with a finite capacity.
// Capacity is the immutable business ceiling; availability is always derived
// from the count of active tickets, never stored.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	Price       float64   `json:"price"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name, description string, capacity int, price float64, eventDate time.Time, location string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:        name,
		Description: description,
		Capacity:    capacity,
		Price:       price,
		EventDate:   eventDate,
		Location:    location,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventWithAvailability bundles an event with its live ticket counts.
// swagger:model EventWithAvailability
type EventWithAvailability struct {
	*Event
	AvailableTickets int `json:"available_tickets"`
	SoldTickets      int `json:"sold_tickets"`
}

// EventRepository defines the interface for event storage.
// GetByIDForUpdate acquires the per-event row lock and must be called inside
// a transaction opened through Transactor.WithTx.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Event, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]*EventWithAvailability, error)
}

// EventService defines the admin-facing event operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
}

// Transactor runs fn inside a storage transaction. Repository calls made
// with the context passed to fn join that transaction; fn returning an error
// rolls everything back.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
