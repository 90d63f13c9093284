package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/staffdesk-io/staffdesk/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	logger  logging.Logger
	router  http.Handler
}

func NewServer(address string, logger logging.Logger, authFlows AuthFlows, employeeFlows EmployeeFlows, accessSecret []byte) *Server {
	return &Server{
		address: address,
		logger:  logger.With("module", "http_server"),
		router:  NewRouter(logger, authFlows, employeeFlows, accessSecret),
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. Cancellation triggers a graceful shutdown.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.router}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
