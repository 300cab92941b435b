package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clearday/clearday/internal/config"
	"github.com/clearday/clearday/internal/logger"
	"github.com/clearday/clearday/internal/storage"
	"github.com/clearday/clearday/internal/streak"
	"github.com/clearday/clearday/pkg/sobriety"
	"github.com/clearday/clearday/pkg/versioninfo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	store storage.Store
	cfg   *config.Config

	// now is replaceable in tests.
	now func() time.Time
}

func New(store storage.Store, cfg *config.Config) *Server {
	return &Server{store: store, cfg: cfg, now: time.Now}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/users/{user_id}", func(r chi.Router) {
		r.Put("/profile", s.putProfile)
		r.Get("/profile", s.getProfile)
		r.Post("/resets", s.logReset)
		r.Get("/resets", s.listResets)
		r.Get("/streak", s.getStreak)
	})
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	http.Error(w, fmt.Sprintf(`{"error":%q}`, msg), code)
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON in profile request", "user_id", userID, "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validateProfile(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile := sobriety.Profile{
		ID:        userID,
		StartDate: req.StartDate,
		Timezone:  req.Timezone,
	}
	if err := s.store.PutProfile(userID, profile); err != nil {
		logger.Error("failed to store profile", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.Info("profile stored", "user_id", userID,
		"start_date", profile.StartDate.String(), "timezone", profile.Timezone)

	if err := writeJSON(w, http.StatusOK, profile); err != nil {
		logger.Error("failed to serialize profile response", "user_id", userID, "error", err)
	}
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	profile, err := s.store.GetProfile(userID)
	if err != nil {
		logger.Error("failed to read profile", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err := writeJSON(w, http.StatusOK, profile); err != nil {
		logger.Error("failed to serialize profile response", "user_id", userID, "error", err)
	}
}

func (s *Server) logReset(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON in reset request", "user_id", userID, "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.RestartDate.IsZero() && !req.OccurredOn.IsZero() {
		// Recovery resumes the day after the relapse unless told otherwise.
		req.RestartDate = req.OccurredOn.AddDays(1)
	}
	if err := validateReset(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := sobriety.ResetEvent{
		ID:          uuid.NewString(),
		OccurredOn:  req.OccurredOn,
		RestartDate: req.RestartDate,
		Note:        req.Note,
	}
	if err := s.store.PutResetEvent(userID, event); err != nil {
		logger.Error("failed to store reset event", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	logger.Info("reset event logged", "user_id", userID,
		"occurred_on", event.OccurredOn.String(), "restart_date", event.RestartDate.String())
	resetEventsTotal.Inc()

	if err := writeJSON(w, http.StatusCreated, event); err != nil {
		logger.Error("failed to serialize reset response", "user_id", userID, "error", err)
	}
}

func (s *Server) listResets(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	events, err := s.store.ListResetEvents(userID)
	if err != nil {
		logger.Error("failed to list reset events", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	resp := ResetListResponse{UserID: userID, Resets: events}
	if resp.Resets == nil {
		resp.Resets = []sobriety.ResetEvent{}
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("failed to serialize reset list response", "user_id", userID, "error", err)
	}
}

func (s *Server) getStreak(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	profile, err := s.store.GetProfile(userID)
	if err != nil {
		logger.Error("failed to read profile for streak", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	reset, err := s.store.LatestResetEvent(userID)
	if err != nil {
		logger.Error("failed to read reset events for streak", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	state := streak.Compose(profile, reset, s.now())
	streakComputationsTotal.WithLabelValues("api").Inc()

	resp := StreakResponse{UserID: userID, StreakState: state}
	if state.Err != nil {
		resp.Error = state.Err.Error()
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("failed to serialize streak response", "user_id", userID, "error", err)
	}
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		logger.Error("failed to serialize version info", "error", err)
	}
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
