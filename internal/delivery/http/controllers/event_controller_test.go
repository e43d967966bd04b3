package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventticketing/internal/domain"

	"github.com/stretchr/testify/require"
)

// fakeEventService returns a canned outcome for CreateEvent.
type fakeEventService struct {
	err error
	got *domain.Event
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.got = event
	if f.err != nil {
		return f.err
	}
	event.ID = "ev-uuid-1"
	return nil
}

func TestEventController_ListAvailable(t *testing.T) {
	t.Run("200 with availability counts", func(t *testing.T) {
		queries := &fakeQueryService{
			events: []*domain.EventWithAvailability{
				{
					Event:            &domain.Event{ID: "ev-1", Name: "Concert", Capacity: 100},
					AvailableTickets: 63,
					SoldTickets:      37,
				},
			},
		}
		controller := NewEventController(testLogger, &fakeEventService{}, queries)

		req := httptest.NewRequest(http.MethodGet, "/available-events", nil)
		rec := httptest.NewRecorder()
		controller.ListAvailable(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp AvailableEventsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.True(t, resp.Success)
		require.Len(t, resp.Events, 1)
		require.Equal(t, 63, resp.Events[0].AvailableTickets)
		require.Equal(t, 37, resp.Events[0].SoldTickets)
	})

	t.Run("200 with empty list", func(t *testing.T) {
		queries := &fakeQueryService{events: []*domain.EventWithAvailability{}}
		controller := NewEventController(testLogger, &fakeEventService{}, queries)

		req := httptest.NewRequest(http.MethodGet, "/available-events", nil)
		rec := httptest.NewRecorder()
		controller.ListAvailable(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"success": true, "events": []}`, rec.Body.String())
	})

	t.Run("500 on unexpected errors", func(t *testing.T) {
		queries := &fakeQueryService{err: errors.New("db unreachable")}
		controller := NewEventController(testLogger, &fakeEventService{}, queries)

		req := httptest.NewRequest(http.MethodGet, "/available-events", nil)
		rec := httptest.NewRecorder()
		controller.ListAvailable(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestEventController_Create(t *testing.T) {
	eventDate := time.Date(2025, 9, 1, 19, 0, 0, 0, time.UTC)

	t.Run("201 with the created event", func(t *testing.T) {
		events := &fakeEventService{}
		controller := NewEventController(testLogger, events, &fakeQueryService{})

		req := httptest.NewRequest(http.MethodPost, "/events",
			purchaseBody(t, CreateEventRequest{
				Name:      "Concert",
				Capacity:  100,
				Price:     49.90,
				EventDate: eventDate,
				Location:  "Main Hall",
			}))
		rec := httptest.NewRecorder()
		controller.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp CreateEventSuccessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.True(t, resp.Success)
		require.Equal(t, "ev-uuid-1", resp.Event.ID)
		require.Equal(t, "Concert", resp.Event.Name)
		require.Equal(t, 100, events.got.Capacity)
	})

	t.Run("422 on invalid body without reaching the service", func(t *testing.T) {
		events := &fakeEventService{}
		controller := NewEventController(testLogger, events, &fakeQueryService{})

		req := httptest.NewRequest(http.MethodPost, "/events",
			purchaseBody(t, CreateEventRequest{Name: "  ", Capacity: -1}))
		rec := httptest.NewRecorder()
		controller.Create(rec, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Contains(t, resp.Errors, "name")
		require.Contains(t, resp.Errors, "capacity")
		require.Contains(t, resp.Errors, "event_date")
		require.Nil(t, events.got)
	})

	t.Run("500 on unexpected errors", func(t *testing.T) {
		events := &fakeEventService{err: errors.New("db unreachable")}
		controller := NewEventController(testLogger, events, &fakeQueryService{})

		req := httptest.NewRequest(http.MethodPost, "/events",
			purchaseBody(t, CreateEventRequest{Name: "Concert", Capacity: 10, EventDate: eventDate}))
		rec := httptest.NewRecorder()
		controller.Create(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
