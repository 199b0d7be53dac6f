package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/nekruzvatanshoev/vehicletax/pkg/vehicletax/calculator"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options tunes the HTTP server.
type Options struct {
	// RateLimit is the sustained number of requests per second; 0 disables limiting.
	RateLimit   float64
	Burst       int
	ServiceName string
}

// DefaultOptions returns the options used by the serve command.
func DefaultOptions() Options {
	return Options{
		RateLimit:   50,
		Burst:       20,
		ServiceName: "vehicletax",
	}
}

// NewHTTPServer returns a new HTTP server exposing calc
func NewHTTPServer(addr string, calc *calculator.Calculator, logger *zap.Logger, opts Options) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewHandler(calc, logger, opts),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// NewHandler registers the calculator routes and wraps the router with the
// middleware chain. Unmatched requests go through the same chain.
func NewHandler(calc *calculator.Calculator, logger *zap.Logger, opts Options) http.Handler {
	server := newHTTPServer(calc, logger)

	r := mux.NewRouter()
	r.HandleFunc("/vehicles", server.GetVehicles).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/current", server.GetCurrent).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/most-expensive", server.GetMostExpensive).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/average-price", server.GetAveragePrice).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/search", server.SearchByBrand).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/search", server.SearchByLine).Methods(http.MethodPost)
	r.HandleFunc("/vehicles/oldest", server.FindOldest).Methods(http.MethodPost)
	r.HandleFunc("/vehicles/{move:first|previous|next|last}", server.Move).Methods(http.MethodPost)
	r.HandleFunc("/tax", server.GetTax).Methods(http.MethodGet)
	r.HandleFunc("/rates", server.GetRates).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	var h http.Handler = r
	if opts.RateLimit > 0 {
		h = rateLimiter(rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.Burst, 1)))(h)
	}
	if opts.ServiceName != "" {
		h = tracing(opts.ServiceName)(h)
	}
	return recoverer(server.log)(requestLogger(server.log)(h))
}

// httpServer serializes access to the calculator: its cursor is shared by
// every client.
type httpServer struct {
	mu   sync.Mutex
	calc *calculator.Calculator
	log  *zap.Logger
}

func newHTTPServer(calc *calculator.Calculator, logger *zap.Logger) *httpServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &httpServer{
		calc: calc,
		log:  logger,
	}
}
