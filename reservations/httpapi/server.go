package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AntonStoeckl/room-reservations-go/eventstore"
	"github.com/AntonStoeckl/room-reservations-go/reservations/shell"
)

// CorrelationIDHeader carries the correlation id in requests and responses.
const CorrelationIDHeader = "X-Correlation-ID"

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// Server serves the reservation API.
type Server struct {
	srv    *http.Server
	router *mux.Router
}

// Option configures a Server.
type Option func(*Server, *handler)

// WithLogger sets the logger for failed requests. *slog.Logger satisfies it.
func WithLogger(logger eventstore.ContextualLogger) Option {
	return func(_ *Server, h *handler) {
		h.logger = logger
	}
}

// NewServer creates a Server listening on addr once started.
func NewServer(addr string, service ReservationService, opts ...Option) *Server {
	s := &Server{
		srv: &http.Server{
			Addr:              addr,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
		router: mux.NewRouter(),
	}

	h := &handler{service: service}
	for _, opt := range opts {
		opt(s, h)
	}

	s.router.Use(correlationIDMiddleware)
	s.router.HandleFunc("/reservation", h.searchReservations).Methods(http.MethodGet)
	s.router.HandleFunc("/reservation", h.createReservation).Methods(http.MethodPost)
	s.router.HandleFunc("/reservation/{id}", h.getReservationByID).Methods(http.MethodGet)
	s.router.HandleFunc("/reservation/{id}", h.updateReservation).Methods(http.MethodPut)
	s.router.HandleFunc("/reservation/{id}/cancel", h.cancelReservation).Methods(http.MethodDelete)
	s.router.HandleFunc("/reservation/{id}/approve", h.approveReservation).Methods(http.MethodPost)

	s.srv.Handler = s.router

	return s
}

// Handler returns the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server is stopped. A regular Stop is not an error.
func (s *Server) Start() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop shuts the server down gracefully, waiting for running requests.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultShutdownTimeout)
	defer cancel()

	return s.srv.Shutdown(ctx)
}

// correlationIDMiddleware puts the correlation id of the request into the context,
// so that the events written on its behalf carry it in their metadata.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID, err := uuid.Parse(r.Header.Get(CorrelationIDHeader))
		if err != nil {
			correlationID = uuid.New()
		}

		w.Header().Set(CorrelationIDHeader, correlationID.String())
		next.ServeHTTP(w, r.WithContext(shell.WithCorrelationID(r.Context(), correlationID)))
	})
}
