package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

// EventController serves event listing and the admin create endpoint.
type EventController struct {
	Logger  *slog.Logger
	Events  domain.EventService
	Queries domain.QueryService
}

func NewEventController(logger *slog.Logger, events domain.EventService, queries domain.QueryService) *EventController {
	return &EventController{
		Logger:  logger,
		Events:  events,
		Queries: queries,
	}
}

// AvailableEventsResponse is the success envelope for GET /available-events (200).
type AvailableEventsResponse struct {
	Success bool                            `json:"success"`
	Events  []*domain.EventWithAvailability `json:"events"`
}

// ListAvailable godoc
// @Summary List upcoming events with availability
// @Description Returns all events with a date strictly in the future, each annotated with live available and sold ticket counts.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.AvailableEventsResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /available-events [get]
func (c *EventController) ListAvailable(w http.ResponseWriter, r *http.Request) {
	events, err := c.Queries.ListUpcomingEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteServerError(w, "An error occurred while fetching events", err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, AvailableEventsResponse{
		Success: true,
		Events:  events,
	})
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	Price       float64   `json:"price"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
}

// Validate implements helpers.Validator.
func (r *CreateEventRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "name is required"
	}
	if r.Capacity < 0 {
		errs["capacity"] = "capacity must be zero or greater"
	}
	if r.Price < 0 {
		errs["price"] = "price must be zero or greater"
	}
	if r.EventDate.IsZero() {
		errs["event_date"] = "event_date is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CreateEventSuccessResponse is the success envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Success bool          `json:"success"`
	Event   *domain.Event `json:"event"`
}

// Create godoc
// @Summary Create an event
// @Description Creates an event with the given capacity ceiling. Admin surface; unauthenticated by design.
// @Tags events
// @Accept json
// @Produce json
// @Param body body controllers.CreateEventRequest true "Event to create"
// @Success 201 {object} controllers.CreateEventSuccessResponse
// @Failure 422 {object} helpers.ValidationFailedResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event := domain.NewEvent(req.Name, req.Description, req.Capacity, req.Price, req.EventDate, req.Location, time.Time{}, time.Time{})
	if err := c.Events.CreateEvent(r.Context(), event); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			helpers.WriteValidationError(w, map[string]string{ve.Field: ve.Reason})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteServerError(w, "An error occurred while creating the event", err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, CreateEventSuccessResponse{
		Success: true,
		Event:   event,
	})
}
