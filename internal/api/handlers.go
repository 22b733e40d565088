package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/nerrad567/gray-logic-voice/internal/assist"
	"github.com/nerrad567/gray-logic-voice/internal/audit"
)

// defaultCommandSource is the source recorded for commands submitted
// over HTTP when the request does not name one.
const defaultCommandSource = "api"

// commandRequest is the request body for POST /api/v1/command.
type commandRequest struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// handleCommand runs a text command through the normalization pipeline
// and returns the structured outcome.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		writeBadRequest(w, "text is required")
		return
	}

	source := req.Source
	if source == "" {
		source = defaultCommandSource
	}

	outcome, err := s.pipeline.HandleText(r.Context(), source, req.Text)
	if err != nil {
		if errors.Is(err, assist.ErrNotReady) {
			writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "vocabulary not yet loaded")
			return
		}
		s.logger.Error("command processing failed", "source", source, "error", err)
		writeError(w, http.StatusBadGateway, ErrCodeUpstream, "inference engine request failed")
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// handleVocabulary returns the current device/location mapping.
func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	mapping, err := s.pipeline.Mapping()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "vocabulary not yet loaded")
		return
	}

	writeJSON(w, http.StatusOK, mapping)
}

// handleGrammar returns the rendered GBNF grammar as plain text.
func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	text, err := s.pipeline.GrammarText()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "grammar not yet built")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// handleCombinations returns every device/location/action combination
// the current grammar accepts.
func (s *Server) handleCombinations(w http.ResponseWriter, r *http.Request) {
	combos, err := s.pipeline.Combinations()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "grammar not yet built")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"combinations": combos,
		"count":        len(combos),
	})
}

// handleRefresh rebuilds the vocabulary from the hub's current entity dump.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.pipeline.Refresh(r.Context()); err != nil {
		s.logger.Error("vocabulary refresh failed", "error", err)
		writeError(w, http.StatusBadGateway, ErrCodeUpstream, "vocabulary refresh failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"last_refresh": s.pipeline.LastRefresh(),
	})
}

// handleListAudit returns paginated command records with optional filters.
//
// Query parameters:
//   - source: filter by ingress source (api, mqtt satellite name)
//   - device: filter by extracted device type
//   - valid: filter by validation outcome (true/false)
//   - limit: max results (default 50, max 200)
//   - offset: pagination offset
func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	if s.auditRepo == nil {
		writeInternalError(w, "audit logging not configured")
		return
	}

	q := r.URL.Query()
	filter := audit.Filter{
		Source: q.Get("source"),
		Device: q.Get("device"),
	}

	if v := q.Get("valid"); v != "" {
		valid, err := strconv.ParseBool(v)
		if err != nil {
			writeBadRequest(w, "valid must be true or false")
			return
		}
		filter.Valid = &valid
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	result, err := s.auditRepo.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list command records", "error", err)
		writeInternalError(w, "failed to list command records")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
