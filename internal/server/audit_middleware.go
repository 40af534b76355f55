package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/foodify/driver-agent/internal/events"
)

// auditLogMiddleware journals every control call with its outcome.
func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		var driverID, orderID int64
		if s.deps.Sessions != nil {
			if user := s.deps.Sessions.Current().User; user != nil {
				driverID = user.ID
			}
		}
		if id, ok := mux.Vars(r)["id"]; ok {
			orderID, _ = strconv.ParseInt(id, 10, 64)
		}

		event := events.New(events.KindControlCall, driverID, orderID).
			With("handler", getHandlerName(r)).
			With("method", r.Method).
			With("path", r.URL.Path).
			With("status_code", strconv.Itoa(wrw.GetStatusCode())).
			With("duration", time.Since(started).String())
		if username, _, ok := r.BasicAuth(); ok {
			event = event.With("user", username)
		}

		if s.deps.Journal != nil {
			s.deps.Journal.Record(r.Context(), event)
		}
	})
}

func getHandlerName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
		return route.GetName()
	}
	return "unknown"
}
