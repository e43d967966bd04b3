package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventticketing/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, capacity, price, event_date, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return q(ctx, r.DB).QueryRowContext(ctx, query,
		e.Name, e.Description, e.Capacity, e.Price, e.EventDate, e.Location, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, description, capacity, price, event_date, location, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate reads the event under its row lock. The lock serializes
// concurrent purchases of the same event and is held until the enclosing
// transaction commits or rolls back.
func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, description, capacity, price, event_date, location, created_at, updated_at
		FROM events
		WHERE id = $1
		FOR UPDATE
	`
	return r.getOne(ctx, query, id)
}

func (r *eventRepository) getOne(ctx context.Context, query, id string) (*domain.Event, error) {
	e := &domain.Event{}
	err := q(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Description, &e.Capacity, &e.Price, &e.EventDate, &e.Location, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]*domain.EventWithAvailability, error) {
	query := `
		SELECT e.id, e.name, e.description, e.capacity, e.price, e.event_date, e.location, e.created_at, e.updated_at,
			COUNT(t.id) FILTER (WHERE t.status = 'active') AS sold
		FROM events e
		LEFT JOIN tickets t ON t.event_id = e.id
		WHERE e.event_date > $1
		GROUP BY e.id
		ORDER BY e.created_at
	`
	rows, err := q(ctx, r.DB).QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.EventWithAvailability, 0)
	for rows.Next() {
		e := &domain.Event{}
		var sold int
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.Capacity, &e.Price, &e.EventDate, &e.Location, &e.CreatedAt, &e.UpdatedAt,
			&sold,
		); err != nil {
			return nil, err
		}
		events = append(events, &domain.EventWithAvailability{
			Event:            e,
			AvailableTickets: e.Capacity - sold,
			SoldTickets:      sold,
		})
	}
	return events, rows.Err()
}
