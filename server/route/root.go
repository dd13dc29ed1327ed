package route

import (
	"fmt"

	mux "github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"picam.api/v0/pkg/picture"
	pictureroute "picam.api/v0/server/route/picture"
	"picam.api/v0/server/route/ping"
)

func InitRootRoute(r *mux.Router, svc *picture.Service, gatherer prometheus.Gatherer) error {
	// Ping endpoint.
	pingSubrouter := r.PathPrefix("/ping").Subrouter()
	ping.CreateRoute(pingSubrouter)

	// Picture capture, sync & delete endpoints.
	pictureSubrouter := r.PathPrefix("/picture").Subrouter()
	if err := pictureroute.CreateRoutes(pictureSubrouter, svc); err != nil {
		return fmt.Errorf("failed to create picture routes: %v", err)
	}

	// Metrics endpoint.
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	return nil
}
