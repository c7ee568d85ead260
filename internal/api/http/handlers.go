package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flyerpoints-backend/internal/domain"
)

const defaultPendingLimit = 50

// handleStorageEvent consumes an object-finalize push from blob storage.
// Permanently skippable events get a 2xx so the event bus stops
// redelivering; transient failures get a 5xx so it retries.
func (s *Server) handleStorageEvent(w http.ResponseWriter, r *http.Request) {
	var event domain.UploadEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, r, status.Error(codes.InvalidArgument, "malformed event payload"))
		return
	}
	if event.Name == "" || event.Bucket == "" {
		writeError(w, r, status.Error(codes.InvalidArgument, "event requires name and bucket"))
		return
	}

	record, err := s.ingest.ProcessUploadEvent(r.Context(), event)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if record == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"skipped": true})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	photo, err := s.review.Approve(r.Context(), UserID(r.Context()), mux.Vars(r)["photoId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	photo, err := s.review.Reject(r.Context(), UserID(r.Context()), mux.Vars(r)["photoId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	limit := defaultPendingLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, r, status.Error(codes.InvalidArgument, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	photos, err := s.review.ListPending(r.Context(), UserID(r.Context()), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if photos == nil {
		photos = []domain.PhotoRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"photos": photos})
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var details domain.RedemptionDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		writeError(w, r, status.Error(codes.InvalidArgument, "malformed request body"))
		return
	}

	entry, err := s.redemption.Redeem(r.Context(), UserID(r.Context()), details)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	account, history, err := s.users.GetProfile(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if history == nil {
		history = []domain.PointTransaction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":         account,
		"transactions": history,
	})
}

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.leaderboard.GetSnapshot(r.Context(), mux.Vars(r)["weekId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleCurrentLeaderboard(w http.ResponseWriter, r *http.Request) {
	weekID := s.leaderboard.CurrentWeekID(time.Now())
	snapshot, err := s.leaderboard.GetSnapshot(r.Context(), weekID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
