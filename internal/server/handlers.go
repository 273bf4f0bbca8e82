package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hsuan0717/health/internal/dashboard"
	"github.com/hsuan0717/health/internal/engine"
	"github.com/hsuan0717/health/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var verr engine.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func (s *Server) listDiet(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.DietRepo().ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) createDiet(w http.ResponseWriter, r *http.Request) {
	var in engine.LogDietInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	e, err := s.svc.LogDiet(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) listExercise(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.ExerciseRepo().ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) createExercise(w http.ResponseWriter, r *http.Request) {
	var in engine.LogExerciseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	e, err := s.svc.LogExercise(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) listSleep(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.SleepRepo().ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) createSleep(w http.ResponseWriter, r *http.Request) {
	var in engine.LogSleepInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	e, err := s.svc.LogSleep(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) deleteDiet(w http.ResponseWriter, r *http.Request) {
	s.deleteEntry(w, r, s.svc.DietRepo().Delete)
}

func (s *Server) deleteExercise(w http.ResponseWriter, r *http.Request) {
	s.deleteEntry(w, r, s.svc.ExerciseRepo().Delete)
}

func (s *Server) deleteSleep(w http.ResponseWriter, r *http.Request) {
	s.deleteEntry(w, r, s.svc.SleepRepo().Delete)
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request, del func(context.Context, string) error) {
	id := mux.Vars(r)["id"]
	if err := del(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getAdvice(w http.ResponseWriter, r *http.Request) {
	days := engine.DefaultWindowDays
	if q := r.URL.Query().Get("days"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be a positive integer"})
			return
		}
		days = n
	}

	advice, err := s.svc.Advice(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	if advice == nil {
		advice = []engine.AdviceItem{}
	}
	writeJSON(w, http.StatusOK, advice)
}

func (s *Server) getScore(w http.ResponseWriter, r *http.Request) {
	state, err := s.svc.Gamification(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	layout := dashboard.LoadLayout(r.Context(), s.svc.LayoutRepo())
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) putLayout(w http.ResponseWriter, r *http.Request) {
	var layout dashboard.Layout
	if err := json.NewDecoder(r.Body).Decode(&layout); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	// Re-parse through the normalizer so unknown kinds never land in the
	// stored document.
	raw, _ := json.Marshal(layout)
	normalized, err := dashboard.ParseLayout(string(raw))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := dashboard.SaveLayout(r.Context(), s.svc.LayoutRepo(), normalized); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, normalized)
}

func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "AI service not configured"})
		return
	}

	ctx := r.Context()
	advice, err := s.svc.Advice(ctx, engine.DefaultWindowDays)
	if err != nil {
		writeError(w, err)
		return
	}
	diet, err := s.svc.DietRepo().ListAll(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	exercise, err := s.svc.ExerciseRepo().ListAll(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	sleep, err := s.svc.SleepRepo().ListAll(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := s.ai.WeeklySummary(ctx, diet, exercise, sleep, advice)
	if err != nil {
		// One fallback message, no retry.
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}
