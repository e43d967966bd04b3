package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eventticketing/internal/domain"
)

type ticketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{
		DB: db,
	}
}

// CreateBatch inserts all tickets in a single statement so the whole
// allocation is one write inside the caller's transaction. The generated ids
// are scanned back onto the tickets in order.
func (r *ticketRepository) CreateBatch(ctx context.Context, tickets []*domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	const fieldsPerRow = 7
	valueClauses := make([]string, 0, len(tickets))
	args := make([]any, 0, len(tickets)*fieldsPerRow)
	for i, t := range tickets {
		base := i * fieldsPerRow
		valueClauses = append(valueClauses, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, t.EventID, t.UserID, t.TicketNumber, t.PurchaseDate, string(t.Status), t.CreatedAt, t.UpdatedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO tickets (event_id, user_id, ticket_number, purchase_date, status, created_at, updated_at)
		VALUES %s
		RETURNING id
	`, strings.Join(valueClauses, ", "))

	rows, err := q(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ticket number collision: %w", err)
		}
		return err
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(tickets) {
			return fmt.Errorf("insert tickets: more rows returned than inserted")
		}
		if err := rows.Scan(&tickets[i].ID); err != nil {
			return err
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if i != len(tickets) {
		return fmt.Errorf("insert tickets: expected %d ids, got %d", len(tickets), i)
	}
	return nil
}

func (r *ticketRepository) CountActiveByEventID(ctx context.Context, eventID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets
		WHERE event_id = $1 AND status = 'active'
	`
	var count int
	if err := q(ctx, r.DB).QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return count, nil
}

func (r *ticketRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.TicketWithEvent, error) {
	query := `
		SELECT t.id, t.event_id, t.user_id, t.ticket_number, t.purchase_date, t.status, t.created_at, t.updated_at,
			e.id, e.name, e.description, e.capacity, e.price, e.event_date, e.location, e.created_at, e.updated_at
		FROM tickets t
		JOIN events e ON e.id = t.event_id
		WHERE t.user_id = $1
		ORDER BY t.purchase_date DESC
	`
	rows, err := q(ctx, r.DB).QueryContext(ctx, query, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.TicketWithEvent, 0)
	for rows.Next() {
		t := &domain.Ticket{}
		e := &domain.Event{}
		var status string
		if err := rows.Scan(
			&t.ID, &t.EventID, &t.UserID, &t.TicketNumber, &t.PurchaseDate, &status, &t.CreatedAt, &t.UpdatedAt,
			&e.ID, &e.Name, &e.Description, &e.Capacity, &e.Price, &e.EventDate, &e.Location, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.Status = domain.TicketStatus(status)
		tickets = append(tickets, &domain.TicketWithEvent{Ticket: t, Event: e})
	}
	return tickets, rows.Err()
}
