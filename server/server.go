package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"picam.api/v0/pkg/picture"
	"picam.api/v0/server/middleware"
	"picam.api/v0/server/route"
	fileio "picam.api/v0/utils/fileIO"
)

type ServerOpts struct {
	// Optional TLS. Both must be set to serve over HTTPS.
	ServerCertificate string
	ServerKey         string

	HostEndpoint string
	PortEndpoint uint16
}

// NewRouter builds the router with middleware and every route attached.
func NewRouter(svc *picture.Service, gatherer prometheus.Gatherer) (*mux.Router, error) {
	router := mux.NewRouter()

	// Add middleware.
	router.Use(middleware.RequestID)
	router.Use(middleware.BasicLogger)

	// Add server root endpoints.
	if err := route.InitRootRoute(router, svc, gatherer); err != nil {
		return nil, fmt.Errorf("failed to create root server routes: %v", err)
	}

	return router, nil
}

// Run serves the picture API until ctx is cancelled, then shuts the server
// down gracefully.
func Run(ctx context.Context, opts *ServerOpts, svc *picture.Service, gatherer prometheus.Gatherer) error {
	useTLS := opts.ServerCertificate != "" || opts.ServerKey != ""
	if useTLS {
		// Check if the server's certificate & key exists.
		if !fileio.FileExists(opts.ServerCertificate) {
			return fmt.Errorf("server certificate '%s' does not exist", opts.ServerCertificate)
		}
		if !fileio.FileExists(opts.ServerKey) {
			return fmt.Errorf("server key '%s' does not exist", opts.ServerKey)
		}
	}

	router, err := NewRouter(svc, gatherer)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", opts.HostEndpoint, opts.PortEndpoint),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
	}

	// Shut down once the root context is done.
	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on %s:%d.\n", opts.HostEndpoint, opts.PortEndpoint)
	if useTLS {
		err = server.ListenAndServeTLS(opts.ServerCertificate, opts.ServerKey)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %v", err)
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("failed to shut down server: %v", err)
	}
	return nil
}
