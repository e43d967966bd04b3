package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventticketing/internal/clock"
	"eventticketing/internal/domain"
)

type queryService struct {
	eventRepo      domain.EventRepository
	ticketRepo     domain.TicketRepository
	userRepo       domain.UserRepository
	clock          clock.Clock
	contextTimeout time.Duration
}

// NewQueryService creates a QueryService over the given repositories.
func NewQueryService(
	eventRepo domain.EventRepository,
	ticketRepo domain.TicketRepository,
	userRepo domain.UserRepository,
	clk clock.Clock,
	timeout time.Duration,
) domain.QueryService {
	return &queryService{
		eventRepo:      eventRepo,
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		clock:          clk,
		contextTimeout: timeout,
	}
}

func (s *queryService) ListUpcomingEvents(ctx context.Context) ([]*domain.EventWithAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListUpcoming(ctx, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	if events == nil {
		events = []*domain.EventWithAvailability{}
	}
	return events, nil
}

func (s *queryService) ListUserTickets(ctx context.Context, userID string) ([]*domain.TicketWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("user_id", "user does not exist")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	tickets, err := s.ticketRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	if tickets == nil {
		tickets = []*domain.TicketWithEvent{}
	}
	return tickets, nil
}
