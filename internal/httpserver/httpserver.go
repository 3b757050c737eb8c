package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 30 * time.Second

// Run starts the HTTP server and all background services, then blocks until shutdown signal.
// This method manages the complete lifecycle of the service:
//  1. Map HTTP handlers and routes
//  2. Start the WebSocket hub and Redis subscriber
//  3. Start HTTP server
//  4. Wait for shutdown signal, then drain in reverse order
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	// 1. Map handlers
	if err := srv.mapHandlers(); err != nil {
		srv.logger.Errorf(ctx, "Failed to map handlers: %v", err)
		return err
	}

	// 2. Start WebSocket background services
	go srv.hub.Run()
	srv.logger.Info(ctx, "WebSocket hub started")

	if err := srv.wsSubscriber.Start(); err != nil {
		srv.logger.Errorf(ctx, "Failed to start Redis subscriber: %v", err)
		return err
	}
	srv.logger.Info(ctx, "Redis pub/sub subscriber started")

	// 3. Start HTTP server in background
	httpSrv := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler:        srv.gin,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.logger.Errorf(ctx, "HTTP server error: %v", err)
		}
	}()

	srv.logger.Infof(ctx, "HTTP server started on %s", httpSrv.Addr)

	// 4. Wait for shutdown signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	srv.logger.Infof(ctx, "Received signal %s, stopping service...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Graceful shutdown: stop accepting new traffic first, then drain fan-out.
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "HTTP server shutdown error: %v", err)
	}
	if err := srv.wsSubscriber.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "Redis subscriber shutdown error: %v", err)
	}
	if err := srv.hub.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "WebSocket hub shutdown error: %v", err)
	}

	srv.logger.Info(ctx, "Service shutdown complete")
	return nil
}
