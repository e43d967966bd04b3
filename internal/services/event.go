package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventticketing/internal/clock"
	"eventticketing/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	clock          clock.Clock
	contextTimeout time.Duration
}

// NewEventService creates the admin-facing EventService.
func NewEventService(eventRepo domain.EventRepository, clk clock.Clock, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		clock:          clk,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return domain.NewValidationError("name", "name is required")
	}
	if event.Capacity < 0 {
		return domain.NewValidationError("capacity", "capacity must be zero or greater")
	}
	if event.EventDate.IsZero() {
		return domain.NewValidationError("event_date", "event_date is required")
	}

	now := s.clock.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}
