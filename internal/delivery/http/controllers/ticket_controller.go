package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/domain"
)

// TicketController serves ticket purchase and listing endpoints.
type TicketController struct {
	Logger       *slog.Logger
	Reservations domain.ReservationService
	Queries      domain.QueryService
}

func NewTicketController(logger *slog.Logger, reservations domain.ReservationService, queries domain.QueryService) *TicketController {
	return &TicketController{
		Logger:       logger,
		Reservations: reservations,
		Queries:      queries,
	}
}

// PurchaseTicketsRequest is the request body for POST /tickets/purchase.
type PurchaseTicketsRequest struct {
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	Quantity int    `json:"quantity"`
}

// Validate implements helpers.Validator.
func (r *PurchaseTicketsRequest) Validate() map[string]string {
	errs := map[string]string{}
	if r.EventID == "" {
		errs["event_id"] = "event_id is required"
	}
	if r.UserID == "" {
		errs["user_id"] = "user_id is required"
	}
	if r.Quantity < 1 || r.Quantity > 10 {
		errs["quantity"] = "quantity must be between 1 and 10"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// PurchaseSuccessResponse is the success envelope for POST /tickets/purchase (201).
type PurchaseSuccessResponse struct {
	Success           bool             `json:"success"`
	Message           string           `json:"message"`
	Tickets           []*domain.Ticket `json:"tickets"`
	RemainingCapacity int              `json:"remaining_capacity"`
}

// Purchase godoc
// @Summary Purchase tickets for an event
// @Description Atomically reserves quantity tickets against the event's remaining capacity. Fails without side effects when the event has passed or not enough tickets remain.
// @Tags tickets
// @Accept json
// @Produce json
// @Param body body controllers.PurchaseTicketsRequest true "Purchase request (quantity 1..10)"
// @Success 201 {object} controllers.PurchaseSuccessResponse
// @Failure 422 {object} helpers.ValidationFailedResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /tickets/purchase [post]
func (c *TicketController) Purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseTicketsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Reservations.Purchase(r.Context(), req.EventID, req.UserID, req.Quantity)
	if err != nil {
		var ve *domain.ValidationError
		var ce *domain.CapacityError
		switch {
		case errors.As(err, &ve):
			helpers.WriteValidationError(w, map[string]string{ve.Field: ve.Reason})
		case errors.Is(err, domain.ErrEventPassed):
			helpers.WriteValidationError(w, map[string]string{
				"event_id": "Event has already passed. Tickets cannot be purchased.",
			})
		case errors.As(err, &ce):
			helpers.WriteValidationError(w, map[string]string{"quantity": ce.Error()})
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteServerError(w, "An error occurred while purchasing tickets", err)
		}
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, PurchaseSuccessResponse{
		Success:           true,
		Message:           "Tickets purchased successfully",
		Tickets:           result.Tickets,
		RemainingCapacity: result.RemainingCapacity,
	})
}

// UserTicketsResponse is the success envelope for GET /user-tickets (200).
type UserTicketsResponse struct {
	Success bool                      `json:"success"`
	Tickets []*domain.TicketWithEvent `json:"tickets"`
}

// GetUserTickets godoc
// @Summary List a user's tickets
// @Description Returns every ticket owned by the user, regardless of status, each with its owning event embedded.
// @Tags tickets
// @Produce json
// @Param user_id query string true "User ID (UUID)"
// @Success 200 {object} controllers.UserTicketsResponse
// @Failure 422 {object} helpers.ValidationFailedResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /user-tickets [get]
func (c *TicketController) GetUserTickets(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		helpers.WriteValidationError(w, map[string]string{"user_id": "user_id is required"})
		return
	}

	tickets, err := c.Queries.ListUserTickets(r.Context(), userID)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			helpers.WriteValidationError(w, map[string]string{ve.Field: ve.Reason})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteServerError(w, "An error occurred while fetching tickets", err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, UserTicketsResponse{
		Success: true,
		Tickets: tickets,
	})
}
