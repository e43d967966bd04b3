package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventticketing/internal/clock"
	"eventticketing/internal/domain"
)

// maxTicketsPerPurchase caps a single request so one caller cannot exhaust
// an event in one purchase.
const maxTicketsPerPurchase = 10

type reservationService struct {
	tx             domain.Transactor
	eventRepo      domain.EventRepository
	ticketRepo     domain.TicketRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	clock          clock.Clock
	contextTimeout time.Duration
}

// NewReservationService creates a ReservationService. The context timeout
// bounds the whole check-and-allocate sequence, including the wait for the
// event row lock.
func NewReservationService(
	tx domain.Transactor,
	eventRepo domain.EventRepository,
	ticketRepo domain.TicketRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	clk clock.Clock,
	timeout time.Duration,
) domain.ReservationService {
	return &reservationService{
		tx:             tx,
		eventRepo:      eventRepo,
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		clock:          clk,
		contextTimeout: timeout,
	}
}

func (s *reservationService) Purchase(ctx context.Context, eventID, userID string, quantity int) (*domain.PurchaseResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if quantity < 1 || quantity > maxTicketsPerPurchase {
		return nil, domain.NewValidationError("quantity", fmt.Sprintf("quantity must be between 1 and %d", maxTicketsPerPurchase))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("user_id", "user does not exist")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	var (
		result *domain.PurchaseResult
		event  *domain.Event
	)
	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		// The row lock serializes purchases against this event; everything
		// below happens under it.
		event, err = s.eventRepo.GetByIDForUpdate(txCtx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewValidationError("event_id", "event does not exist")
			}
			return fmt.Errorf("get event: %w", err)
		}

		now := s.clock.Now()
		if !event.EventDate.After(now) {
			return domain.ErrEventPassed
		}

		sold, err := s.ticketRepo.CountActiveByEventID(txCtx, eventID)
		if err != nil {
			return fmt.Errorf("count tickets: %w", err)
		}
		available := event.Capacity - sold
		if available < quantity {
			return &domain.CapacityError{Available: available}
		}

		tickets := make([]*domain.Ticket, 0, quantity)
		for i := 0; i < quantity; i++ {
			tickets = append(tickets, domain.NewTicket(eventID, user.ID, newTicketNumber(), now))
		}
		if err := s.ticketRepo.CreateBatch(txCtx, tickets); err != nil {
			return fmt.Errorf("create tickets: %w", err)
		}

		result = &domain.PurchaseResult{
			Tickets:           tickets,
			RemainingCapacity: available - quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, user, event, result.Tickets)
	return result, nil
}

// sendConfirmation emails the purchaser after a committed purchase.
// Best-effort: a send failure never affects the purchase.
func (s *reservationService) sendConfirmation(ctx context.Context, user *domain.User, event *domain.Event, tickets []*domain.Ticket) {
	numbers := make([]string, 0, len(tickets))
	for _, t := range tickets {
		numbers = append(numbers, t.TicketNumber)
	}
	data := &domain.TicketConfirmationEmailData{
		Email:         user.Email,
		Name:          user.Name,
		EventName:     event.Name,
		EventDate:     event.EventDate.Format("Monday, 2 January 2006 at 15:04 MST"),
		EventLocation: event.Location,
		Quantity:      len(tickets),
		TicketNumbers: numbers,
	}
	if err := s.emailService.SendTicketConfirmation(ctx, data); err != nil {
		log.Printf("[RESERVATION] Confirmation email to %s failed: %v", user.Email, err)
	}
}

func (s *reservationService) GetAvailable(ctx context.Context, eventID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get event: %w", err)
	}
	sold, err := s.ticketRepo.CountActiveByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return event.Capacity - sold, nil
}

func (s *reservationService) HasAvailable(ctx context.Context, eventID string, quantity int) (bool, error) {
	if quantity < 1 {
		return false, domain.NewValidationError("quantity", "quantity must be at least 1")
	}
	available, err := s.GetAvailable(ctx, eventID)
	if err != nil {
		return false, err
	}
	return available >= quantity, nil
}

// newTicketNumber generates a globally unique, high-entropy ticket number.
// A random UUID needs no cross-request coordination and makes collisions
// negligible; the unique index on ticket_number backstops it.
func newTicketNumber() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
