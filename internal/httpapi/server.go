// Package httpapi exposes the record operations as a JSON HTTP API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/estate/internal/records"
)

// Options configures NewHandler.
type Options struct {
	// AllowedOrigins lists CORS origins. Empty allows every origin.
	AllowedOrigins []string
	// Gatherer backs /metrics. Nil leaves /metrics unrouted.
	Gatherer prometheus.Gatherer
	Logger   logrus.FieldLogger
}

// NewHandler builds the router for svc wrapped in CORS and request logging.
func NewHandler(svc *records.Service, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	props := newPropertyController(svc)
	leases := newLeaseController(svc)
	maint := newMaintenanceController(svc)

	router := mux.NewRouter()
	router.HandleFunc(Health, healthCheck).Methods(http.MethodGet)
	if opts.Gatherer != nil {
		router.Handle(Metrics, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	router.HandleFunc(Properties, props.Create).Methods(http.MethodPost)
	router.HandleFunc(Properties, props.GetAll).Methods(http.MethodGet)
	router.HandleFunc(Property, props.Get).Methods(http.MethodGet)
	router.HandleFunc(Property, props.Update).Methods(http.MethodPut)
	router.HandleFunc(Property, props.Delete).Methods(http.MethodDelete)

	router.HandleFunc(Leases, leases.Create).Methods(http.MethodPost)
	router.HandleFunc(Leases, leases.GetAll).Methods(http.MethodGet)
	router.HandleFunc(Lease, leases.Get).Methods(http.MethodGet)
	router.HandleFunc(Lease, leases.Update).Methods(http.MethodPut)
	router.HandleFunc(Lease, leases.Delete).Methods(http.MethodDelete)

	router.HandleFunc(MaintenanceRequests, maint.Create).Methods(http.MethodPost)
	router.HandleFunc(MaintenanceRequests, maint.GetAll).Methods(http.MethodGet)
	router.HandleFunc(MaintenanceRequest, maint.Get).Methods(http.MethodGet)
	router.HandleFunc(MaintenanceRequest, maint.Update).Methods(http.MethodPut)
	router.HandleFunc(MaintenanceRequest, maint.Delete).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, loggerFrom(r), http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, loggerFrom(r), http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return requestLogging(log)(c.Handler(router))
}

// NewServer returns an http.Server for handler with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
