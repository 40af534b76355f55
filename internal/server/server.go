//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/events"
	"github.com/foodify/driver-agent/internal/model"
	"github.com/foodify/driver-agent/internal/offer"
	"github.com/foodify/driver-agent/internal/realtime"
	"github.com/foodify/driver-agent/internal/session"
)

type Offers interface {
	State() offer.State
	Accept(ctx context.Context) (*model.Order, error)
	Decline(ctx context.Context) error
}

type Channel interface {
	Snapshot() realtime.Snapshot
	ClearWarning()
}

type Orders interface {
	List() []*model.Order
	Get(orderID int64) (*model.Order, bool)
}

type History interface {
	OrderHistory(ctx context.Context, orderID int64) ([]events.Event, error)
}

type DriverAPI interface {
	Pickup(ctx context.Context, orderID int64, token string) (string, error)
	Deliver(ctx context.Context, orderID int64, token string) (bool, error)
	UpdateStatus(ctx context.Context, available bool) error
	CurrentShift(ctx context.Context) (*model.DriverShift, error)
	Earnings(ctx context.Context, q model.EarningsQuery) (*model.Earnings, error)
	ShiftEarnings(ctx context.Context, q model.EarningsQuery) ([]model.ShiftEarnings, error)
	ShiftEarningsDetails(ctx context.Context, shiftID int64) (*model.ShiftEarningsDetails, error)
	ShiftBalance(ctx context.Context) (*model.ShiftBalance, error)
	FinanceSummary(ctx context.Context) (*model.FinanceSummary, error)
	Deposits(ctx context.Context) ([]model.Deposit, error)
	Documents(ctx context.Context) (*model.DocumentsSummary, error)
	Logout(ctx context.Context) error
}

type Locations interface {
	Set(position model.Coordinates)
}

type Sessions interface {
	Current() session.Session
}

type Journal interface {
	Record(ctx context.Context, event events.Event)
}

type Config struct {
	Addr         string
	User         string
	PasswordHash string
	// RequestTimeout bounds calls that must outlive the control request, such as accept.
	RequestTimeout time.Duration
}

type Deps struct {
	Offers    Offers
	Channel   Channel
	Orders    Orders
	History   History
	API       DriverAPI
	Locations Locations
	Sessions  Sessions
	Journal   Journal
}

// Server is the local control API used by the driver's tooling.
type Server struct {
	cfg      Config
	deps     Deps
	validate *validator.Validate
	log      *zap.Logger
	server   *http.Server
}

func New(cfg Config, deps Deps, log *zap.Logger) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	return &Server{
		cfg:      cfg,
		deps:     deps,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			s.log.Error("Control API shutdown failed", zap.Error(err))
		}
	}()

	s.log.Info("Control API starting", zap.String("addr", s.cfg.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down control API")
	return s.server.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet).Name("health")
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")

	api := r.NewRoute().Subrouter()
	api.Use(s.basicAuthMiddleware, s.auditLogMiddleware)

	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet).Name("state")
	api.HandleFunc("/offer/accept", s.handleAcceptOffer).Methods(http.MethodPost).Name("accept_offer")
	api.HandleFunc("/offer/decline", s.handleDeclineOffer).Methods(http.MethodPost).Name("decline_offer")
	api.HandleFunc("/warnings", s.handleDismissWarning).Methods(http.MethodDelete).Name("dismiss_warning")

	api.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet).Name("list_orders")
	api.HandleFunc("/orders/{id:[0-9]+}", s.handleGetOrder).Methods(http.MethodGet).Name("get_order")
	api.HandleFunc("/orders/{id:[0-9]+}/history", s.handleOrderHistory).Methods(http.MethodGet).Name("order_history")
	api.HandleFunc("/orders/{id:[0-9]+}/pickup", s.handlePickup).Methods(http.MethodPost).Name("pickup")
	api.HandleFunc("/orders/{id:[0-9]+}/deliver", s.handleDeliver).Methods(http.MethodPost).Name("deliver")

	api.HandleFunc("/status", s.handleUpdateStatus).Methods(http.MethodPost).Name("update_status")
	api.HandleFunc("/location", s.handleUpdateLocation).Methods(http.MethodPost).Name("update_location")
	api.HandleFunc("/shift", s.handleShift).Methods(http.MethodGet).Name("shift")
	api.HandleFunc("/earnings", s.handleEarnings).Methods(http.MethodGet).Name("earnings")
	api.HandleFunc("/earnings/shifts", s.handleShiftEarnings).Methods(http.MethodGet).Name("shift_earnings")
	api.HandleFunc("/earnings/shifts/{id:[0-9]+}", s.handleShiftEarningsDetails).Methods(http.MethodGet).Name("shift_earnings_details")

	api.HandleFunc("/wallet/balance", s.handleBalance).Methods(http.MethodGet).Name("balance")
	api.HandleFunc("/wallet/summary", s.handleFinanceSummary).Methods(http.MethodGet).Name("finance_summary")
	api.HandleFunc("/wallet/deposits", s.handleDeposits).Methods(http.MethodGet).Name("deposits")
	api.HandleFunc("/documents", s.handleDocuments).Methods(http.MethodGet).Name("documents")

	api.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost).Name("logout")

	return r
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
