package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// DefaultShutdownGrace bounds how long Run waits for in-flight requests.
const DefaultShutdownGrace = 5 * time.Second

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully. A nil listener makes Run listen on addr itself.
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger, listener net.Listener) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if listener == nil {
		var err error
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			return err
		}
	}
	logger.Info("listening", "addr", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "error", err)
		return err
	}
	logger.Info("server stopped", "addr", listener.Addr().String())
	return nil
}
