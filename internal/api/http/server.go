// Package http is the REST surface of the service. Routes return JSON;
// errors carry the canonical code name and a message.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flyerpoints-backend/internal/security"
	"flyerpoints-backend/internal/service"
)

// Server bundles the route handlers with their dependencies.
type Server struct {
	ingest      service.IngestService
	review      service.ReviewService
	redemption  service.RedemptionService
	leaderboard service.LeaderboardService
	users       service.UserService
	verifier    security.TokenVerifier
}

func NewServer(
	ingest service.IngestService,
	review service.ReviewService,
	redemption service.RedemptionService,
	leaderboard service.LeaderboardService,
	users service.UserService,
	verifier security.TokenVerifier,
) *Server {
	return &Server{
		ingest:      ingest,
		review:      review,
		redemption:  redemption,
		leaderboard: leaderboard,
		users:       users,
		verifier:    verifier,
	}
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger)

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Storage push notifications arrive on the internal network, not
	// through the user-facing load balancer, so they skip user auth.
	router.HandleFunc("/v1/events/storage", s.handleStorageEvent).Methods(http.MethodPost)

	// Published rankings are public reads.
	router.HandleFunc("/v1/leaderboard/current", s.handleCurrentLeaderboard).Methods(http.MethodGet)
	router.HandleFunc("/v1/leaderboard/{weekId}", s.handleGetLeaderboard).Methods(http.MethodGet)

	authed := router.PathPrefix("/v1").Subrouter()
	authed.Use(authMiddleware(s.verifier))
	authed.HandleFunc("/me", s.handleGetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/exchange", s.handleRedeem).Methods(http.MethodPost)
	authed.HandleFunc("/photos/pending", s.handleListPending).Methods(http.MethodGet)
	authed.HandleFunc("/photos/{photoId}/approve", s.handleApprove).Methods(http.MethodPost)
	authed.HandleFunc("/photos/{photoId}/reject", s.handleReject).Methods(http.MethodPost)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
