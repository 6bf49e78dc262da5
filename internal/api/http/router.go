package http

import (
	"net/http"
	"time"

	"boardcamp-backend/internal/repository"
	"boardcamp-backend/internal/security"
	"boardcamp-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Services are the use cases exposed over HTTP
type Services struct {
	Categories service.CategoryService
	Games      service.GameService
	Customers  service.CustomerService
	Rentals    service.RentalService
}

type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	AuthEnabled    bool
}

type handler struct {
	svc    Services
	pinger repository.Pinger
}

// NewRouter builds the REST API. Route names double as keys into the
// endpoint security table.
func NewRouter(svc Services, pinger repository.Pinger, tokens security.TokenManager, cfg RouterConfig) http.Handler {
	h := &handler{svc: svc, pinger: pinger}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware, loggingMiddleware, recoveryMiddleware)
	if cfg.RequestTimeout > 0 {
		router.Use(timeoutMiddleware(cfg.RequestTimeout))
	}
	if cfg.AuthEnabled {
		router.Use(authMiddleware(tokens))
	}

	router.HandleFunc("/health", h.health).Methods(http.MethodGet).Name("health")

	router.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet).Name("listCategories")
	router.HandleFunc("/categories", h.createCategory).Methods(http.MethodPost).Name("createCategory")

	router.HandleFunc("/games", h.listGames).Methods(http.MethodGet).Name("listGames")
	router.HandleFunc("/games", h.createGame).Methods(http.MethodPost).Name("createGame")

	router.HandleFunc("/customers", h.listCustomers).Methods(http.MethodGet).Name("listCustomers")
	router.HandleFunc("/customers/{id}", h.getCustomer).Methods(http.MethodGet).Name("getCustomer")
	router.HandleFunc("/customers", h.createCustomer).Methods(http.MethodPost).Name("createCustomer")

	router.HandleFunc("/rentals", h.listRentals).Methods(http.MethodGet).Name("listRentals")
	router.HandleFunc("/rentals/{id}", h.getRental).Methods(http.MethodGet).Name("getRental")
	router.HandleFunc("/rentals", h.createRental).Methods(http.MethodPost).Name("createRental")
	router.HandleFunc("/rentals/{id}/return", h.returnRental).Methods(http.MethodPost).Name("returnRental")

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(router)
}
