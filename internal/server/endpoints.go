package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/bree-jeune/ems-protocols-radio/internal/cache"
	"github.com/bree-jeune/ems-protocols-radio/internal/script"
	"github.com/bree-jeune/ems-protocols-radio/internal/store"
)

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// SegmentRequest asks for one record's radio script
type SegmentRequest struct {
	ProtocolID string `json:"protocol_id"`
	Mode       string `json:"mode"`
}

// SegmentResponse carries the generated script
type SegmentResponse struct {
	Title      string `json:"title"`
	Mode       string `json:"mode"`
	ScriptText string `json:"script_text"`
}

func (s *Server) handleListProtocols(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List())
}

// handleGenerateSegment builds the spoken script for one record. Unknown
// ids are an explicit 404: the legacy behavior of substituting an arbitrary
// record hid data problems from callers and is not preserved.
func (s *Server) handleGenerateSegment(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProtocolID == "" {
		writeError(w, http.StatusBadRequest, "protocol_id is required")
		return
	}
	mode := strings.TrimSpace(req.Mode)
	if mode == "" {
		mode = "standard"
	}

	rec, err := s.store.Get(req.ProtocolID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "protocol not found: "+req.ProtocolID)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	key := cache.Key(rec.ID, mode)
	text, found := s.scripts.Get(key)
	if !found {
		text = script.Build(rec, mode)
		s.scripts.Set(key, text, s.cacheTTL)
	}

	writeJSON(w, http.StatusOK, SegmentResponse{
		Title:      rec.Title,
		Mode:       mode,
		ScriptText: text,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.store.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
