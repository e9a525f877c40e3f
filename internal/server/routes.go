package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lazypower/leitner/internal/leitner"
	"github.com/lazypower/leitner/internal/store"
)

type categoryFilter struct {
	MainCategory string `json:"main_category"`
	SubCategory  string `json:"sub_category"`
}

// candidates resolves an explicit id list, or else the catalog cards of the
// category filter.
func (s *Server) candidates(ids []string, f categoryFilter) ([]leitner.CardID, error) {
	if len(ids) == 0 {
		return s.db.CardIDs(f.MainCategory, f.SubCategory)
	}
	return parseIDs(ids)
}

func parseIDs(ids []string) ([]leitner.CardID, error) {
	out := make([]leitner.CardID, 0, len(ids))
	for _, raw := range ids {
		id, err := leitner.ParseCardID(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func cardParam(w http.ResponseWriter, r *http.Request) (leitner.CardID, bool) {
	id, err := leitner.ParseCardID(chi.URLParam(r, "cardID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return id, true
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	var req struct {
		categoryFilter
		Candidates []string `json:"candidates"`
		// Override lifts the daily cap for this request only.
		Override bool `json:"override"`
	}
	// An empty body means no filter.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	candidates, err := s.candidates(req.Candidates, req.categoryFilter)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	next := s.sched.NextCard
	if req.Override {
		next = s.sched.NextCardOverridingLimit
	}
	s.mu.Lock()
	sel, err := next(candidates)
	s.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Msg("next card")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]any{
		"selection": sel,
	}
	if sel.Found() {
		if card, err := s.db.GetCard(sel.Card); err == nil && card != nil {
			resp["card"] = card
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := cardParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Outcome leitner.Outcome `json:"outcome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if !req.Outcome.IsValid() {
		writeError(w, http.StatusBadRequest, "outcome required: great, fair or poor")
		return
	}

	s.mu.Lock()
	tr, err := s.sched.RecordAnswer(id, req.Outcome)
	var next time.Time
	var hasNext bool
	if err == nil {
		next, hasNext = s.sched.NextDue(id)
	}
	s.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Str("card", id.Short()).Msg("record answer")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// History is best-effort; the grading itself is already persisted.
	if err := s.db.LogAnswer(s.profile, tr); err != nil {
		s.log.Warn().Err(err).Msg("answer log")
	}

	resp := map[string]any{"transition": tr}
	if hasNext {
		resp["next_due"] = next
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	id, ok := cardParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	err := s.sched.Pause(id)
	since, _ := s.sched.PausedSince(id)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "paused", "paused_at": since})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	id, ok := cardParam(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	err := s.sched.Resume(id)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "resumed"})
}

func (s *Server) handleGetFocus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	active, queue := s.sched.IsFocusActive(), s.sched.FocusQueue()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"active": active, "queue": queue})
}

func (s *Server) handlePin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cards []string `json:"cards"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ids, err := parseIDs(req.Cards)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	err = s.sched.Pin(ids)
	active := s.sched.IsFocusActive()
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": active, "queued": len(ids)})
}

func (s *Server) handlePop(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	id, found, err := s.sched.PopNext()
	active := s.sched.IsFocusActive()
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"card_id": id, "found": found, "active": active})
}

func (s *Server) handleClearFocus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.sched.ClearFocus()
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": false})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req categoryFilter
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.MainCategory == "" {
		writeError(w, http.StatusBadRequest, "main_category required")
		return
	}
	ids, err := s.db.CardIDs(req.MainCategory, req.SubCategory)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	n, err := s.sched.ResetCards(ids)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"reset": n})
}

func (s *Server) handleOverride(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.sched.ConfirmDailyOverride()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"override_confirmed": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	f := categoryFilter{
		MainCategory: r.URL.Query().Get("main"),
		SubCategory:  r.URL.Query().Get("sub"),
	}
	var ids []leitner.CardID
	if f.MainCategory != "" {
		var err error
		if ids, err = s.db.CardIDs(f.MainCategory, f.SubCategory); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	s.mu.Lock()
	var st leitner.Stats
	if f.MainCategory != "" {
		st = s.sched.StatsFor(ids)
	} else {
		st = s.sched.Stats()
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleAnswers(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	answers, err := s.db.RecentAnswers(s.profile, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if answers == nil {
		answers = []store.Answer{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"answers": answers})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.db.Categories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if cats == nil {
		cats = []store.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

type cardView struct {
	store.Card
	Box    *int `json:"box"`
	Paused bool `json:"paused"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.db.ListCards(r.URL.Query().Get("main"), r.URL.Query().Get("sub"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]cardView, len(cards))
	s.mu.Lock()
	for i, c := range cards {
		views[i] = cardView{Card: c, Paused: s.sched.IsPaused(c.ID)}
		if b, ok := s.sched.Box(c.ID); ok {
			views[i].Box = &b
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"cards": views})
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		categoryFilter
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.MainCategory == "" || req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "main_category and prompt required")
		return
	}

	card, created, err := s.db.AddCard(req.MainCategory, req.SubCategory, req.Prompt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, card)
}

