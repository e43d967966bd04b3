package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventticketing/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(ticketController *controllers.TicketController, eventController *controllers.EventController) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("POST /tickets/purchase", ticketController.Purchase)
	mux.HandleFunc("GET /user-tickets", ticketController.GetUserTickets)
	mux.HandleFunc("GET /available-events", eventController.ListAvailable)
	mux.HandleFunc("POST /events", eventController.Create)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
