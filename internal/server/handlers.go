package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/driverapi"
	"github.com/foodify/driver-agent/internal/events"
	"github.com/foodify/driver-agent/internal/httpclient"
	"github.com/foodify/driver-agent/internal/model"
	"github.com/foodify/driver-agent/internal/offer"
	"github.com/foodify/driver-agent/internal/realtime"
	"github.com/foodify/driver-agent/internal/repository"
)

type sessionView struct {
	LoggedIn  bool   `json:"loggedIn"`
	DriverID  int64  `json:"driverId,omitempty"`
	Name      string `json:"name,omitempty"`
	Available bool   `json:"available"`
}

type stateResponse struct {
	Session  sessionView       `json:"session"`
	Realtime realtime.Snapshot `json:"realtime"`
	Offer    offer.State       `json:"offer"`
}

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"realtime": s.deps.Channel.Snapshot().State.String(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	var view sessionView
	current := s.deps.Sessions.Current()
	if current.User != nil {
		view = sessionView{
			LoggedIn:  current.Active(),
			DriverID:  current.User.ID,
			Name:      current.User.Name,
			Available: current.User.Available,
		}
	}

	respondJSON(w, http.StatusOK, stateResponse{
		Session:  view,
		Realtime: s.deps.Channel.Snapshot(),
		Offer:    s.deps.Offers.State(),
	})
}

// detached keeps a backend call running when the control client goes away. An accept
// the backend may already have applied must not be abandoned halfway.
func (s *Server) detached(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(r.Context()), s.cfg.RequestTimeout)
}

func (s *Server) handleAcceptOffer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.detached(r)
	defer cancel()

	order, err := s.deps.Offers.Accept(ctx)
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleDeclineOffer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.detached(r)
	defer cancel()

	if err := s.deps.Offers.Decline(ctx); err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Offer declined"})
}

func (s *Server) handleDismissWarning(w http.ResponseWriter, _ *http.Request) {
	s.deps.Channel.ClearWarning()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListOrders(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.deps.Orders.List())
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}

	order, found := s.deps.Orders.Get(orderID)
	if !found {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}

	history, err := s.deps.History.OrderHistory(r.Context(), orderID)
	if err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
		respondError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}
	if history == nil {
		history = []events.Event{}
	}
	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handlePickup(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	var req tokenRequest
	if !s.decode(w, r, &req) {
		return
	}

	message, err := s.deps.API.Pickup(r.Context(), orderID, req.Token)
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleDeliver(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDFrom(w, r)
	if !ok {
		return
	}
	var req tokenRequest
	if !s.decode(w, r, &req) {
		return
	}

	delivered, err := s.deps.API.Deliver(r.Context(), orderID, req.Token)
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"delivered": delivered})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Available *bool `json:"available" validate:"required"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.deps.API.UpdateStatus(r.Context(), *req.Available); err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"available": *req.Available})
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req model.Coordinates
	if !s.decode(w, r, &req) {
		return
	}
	s.deps.Locations.Set(req)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShift(w http.ResponseWriter, r *http.Request) {
	shift, err := s.deps.API.CurrentShift(r.Context())
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shift)
}

func (s *Server) handleEarnings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	earnings, err := s.deps.API.Earnings(r.Context(), model.EarningsQuery{
		DateOn: q.Get("date"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	})
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, earnings)
}

func (s *Server) handleShiftEarnings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shifts, err := s.deps.API.ShiftEarnings(r.Context(), model.EarningsQuery{
		DateOn: q.Get("date"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	})
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	if shifts == nil {
		shifts = []model.ShiftEarnings{}
	}
	respondJSON(w, http.StatusOK, shifts)
}

func (s *Server) handleShiftEarningsDetails(w http.ResponseWriter, r *http.Request) {
	shiftID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || shiftID <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid shift ID")
		return
	}

	details, err := s.deps.API.ShiftEarningsDetails(r.Context(), shiftID)
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.deps.API.ShiftBalance(r.Context())
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balance)
}

func (s *Server) handleFinanceSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.deps.API.FinanceSummary(r.Context())
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDeposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := s.deps.API.Deposits(r.Context())
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	if deposits == nil {
		deposits = []model.Deposit{}
	}
	respondJSON(w, http.StatusOK, deposits)
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	documents, err := s.deps.API.Documents(r.Context())
	if err != nil {
		s.respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, documents)
}

// handleLogout ends the session. The local session is gone even when the backend
// could not be told.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.detached(r)
	defer cancel()

	if err := s.deps.API.Logout(ctx); err != nil {
		s.log.Warn("Logout not delivered to backend", zap.Error(err))
		respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out locally"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			respondError(w, http.StatusBadRequest, "Invalid field: "+verrs[0].Field())
			return false
		}
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// respondUpstreamError maps agent and backend failures onto control API statuses.
func (s *Server) respondUpstreamError(w http.ResponseWriter, err error) {
	var (
		statusErr     *httpclient.StatusError
		validationErr *driverapi.ValidationError
	)
	switch {
	case errors.Is(err, offer.ErrNoOffer), errors.Is(err, offer.ErrAcceptInProgress):
		respondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, err.Error())
	case httpclient.IsAuthError(err):
		respondError(w, http.StatusUnauthorized, "Driver session is not authorized")
	case errors.As(err, &statusErr):
		respondError(w, http.StatusBadGateway, "Backend error: "+err.Error())
	default:
		s.log.Warn("Control call failed", zap.Error(err))
		respondError(w, http.StatusBadGateway, "Error: "+err.Error())
	}
}

func orderIDFrom(w http.ResponseWriter, r *http.Request) (int64, bool) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return 0, false
	}
	return orderID, true
}
