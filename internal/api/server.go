package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"headliner/internal/config"
	"headliner/internal/engine"
	"headliner/internal/game"
	"headliner/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	eng  *engine.Engine
	save store.Store
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, eng *engine.Engine, save store.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		eng:  eng,
		save: save,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/stats", s.handleStats)
		r.Get("/boosts", s.handleBoostsList)
		r.Get("/properties", s.handlePropertiesList)
		r.Get("/albums", s.handleAlbumsList)
		r.Get("/tours", s.handleToursList)

		r.Post("/songs", s.handleWriteSongs)
		r.Post("/boosts/{type}", s.handleActivateBoost)
		r.Post("/properties/{type}", s.handleBuyProperty)
		r.Post("/upgrades", s.handleBuyUpgrade)
		r.Post("/tours", s.handleStartTour)
		r.Post("/albums/{id}/rerelease", s.handleReRelease)
		r.Post("/trend", s.handleScoutTrend)
		r.Post("/prestige", s.handlePrestige)
		r.Post("/save", s.handleSave)
	})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.eng.Snapshot())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	st := s.eng.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"cash":            st.Cash,
		"fans":            st.Fans,
		"peak_fans":       st.PeakFans,
		"income_rate":     game.IncomeRate(st) * game.DynamicIncomeMult(st),
		"fan_rate":        game.FanRate(st) * game.DynamicFanMult(st),
		"songs":           len(st.Songs),
		"queued":          len(st.Queue),
		"tier":            st.Tier,
		"gear_level":      st.GearLevel,
		"phase":           st.Phase,
		"resets":          st.Resets,
		"control":         st.Control,
		"control_percent": game.ControlPercent(st),
		"trend_genre":     st.TrendGenre,
		"won":             game.HasWon(st),
	})
}

func (s *Server) handleBoostsList(w http.ResponseWriter, _ *http.Request) {
	st := s.eng.Snapshot()
	types := make([]map[string]any, 0)
	for _, spec := range game.BoostTypes() {
		types = append(types, map[string]any{
			"type":        spec.Type,
			"name":        spec.Name,
			"cost":        game.BoostCost(st, spec),
			"duration_ms": spec.DurationMS,
			"income_mult": spec.IncomeMult,
			"fan_mult":    spec.FanMult,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"unlocked": st.Unlocks.Boosts,
		"types":    types,
		"active":   st.Boosts,
	})
}

func (s *Server) handlePropertiesList(w http.ResponseWriter, _ *http.Request) {
	st := s.eng.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"unlocked":  st.Unlocks.Properties,
		"owned":     st.Properties,
		"available": game.AvailableProperties(st),
	})
}

func (s *Server) handleAlbumsList(w http.ResponseWriter, _ *http.Request) {
	st := s.eng.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{"albums": st.Albums})
}

func (s *Server) handleToursList(w http.ResponseWriter, _ *http.Request) {
	st := s.eng.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"tours":     st.Tours,
		"completed": st.ToursCompleted,
		"capacity":  game.MaxConcurrentTours(st.Tier),
	})
}

func (s *Server) handleWriteSongs(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Count int `json:"count"`
	}
	// An empty body means one song.
	if err := decodeJSON(r, &in); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Count == 0 {
		in.Count = 1
	}
	if err := s.eng.WriteSongs(in.Count); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"queued": in.Count})
}

func (s *Server) handleActivateBoost(w http.ResponseWriter, r *http.Request) {
	b, err := s.eng.ActivateBoost(chi.URLParam(r, "type"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleBuyProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.eng.BuyProperty(chi.URLParam(r, "type"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleBuyUpgrade(w http.ResponseWriter, _ *http.Request) {
	if err := s.eng.BuyUpgrade(); err != nil {
		writeDomainError(w, err)
		return
	}
	st := s.eng.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{"tier": st.Tier, "gear_level": st.GearLevel})
}

func (s *Server) handleStartTour(w http.ResponseWriter, _ *http.Request) {
	t, err := s.eng.StartTour()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleReRelease(w http.ResponseWriter, r *http.Request) {
	a, err := s.eng.ReRelease(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleScoutTrend(w http.ResponseWriter, _ *http.Request) {
	genre, err := s.eng.ScoutTrend()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"genre": genre})
}

func (s *Server) handlePrestige(w http.ResponseWriter, _ *http.Request) {
	artist, err := s.eng.Prestige()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.save == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	if err := s.save.Save(r.Context(), s.eng.Snapshot()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrLocked):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, game.ErrPrecondition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
