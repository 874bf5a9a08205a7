package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/corkboard-io/corkboard/pkg/board"
	"github.com/corkboard-io/corkboard/pkg/errors"
	"github.com/corkboard-io/corkboard/pkg/layout"
	"github.com/corkboard-io/corkboard/pkg/pipeline"
	"github.com/corkboard-io/corkboard/pkg/store"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Board      board.Board      `json:"board"`
	Filter     string           `json:"filter,omitempty"`
	Settings   *layout.Settings `json:"settings,omitempty"`
	Formats    []string         `json:"formats,omitempty"`
	ShowLabels bool             `json:"show_labels,omitempty"`
	Refresh    bool             `json:"refresh,omitempty"`
}

// BoardLayoutRequest is the body of POST /v1/boards/{id}/layout. The board
// is loaded from the store, everything else matches LayoutRequest.
type BoardLayoutRequest struct {
	Filter     string           `json:"filter,omitempty"`
	Settings   *layout.Settings `json:"settings,omitempty"`
	Formats    []string         `json:"formats,omitempty"`
	ShowLabels bool             `json:"show_labels,omitempty"`
	Refresh    bool             `json:"refresh,omitempty"`
}

// LayoutResponse is the result envelope for layout requests. Artifact bytes
// are base64-encoded by encoding/json.
type LayoutResponse struct {
	BoardHash string             `json:"board_hash"`
	Plan      layout.Plan        `json:"plan"`
	Artifacts map[string][]byte  `json:"artifacts,omitempty"`
	Cache     pipeline.CacheInfo `json:"cache"`
}

// ColorsResponse maps labels to their palette colors.
type ColorsResponse struct {
	Colors map[string]string `json:"colors"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	s.runLayout(w, r, req.Board, pipeline.Options{
		Filter:     req.Filter,
		Settings:   req.Settings,
		Formats:    req.Formats,
		ShowLabels: req.ShowLabels,
		Refresh:    req.Refresh,
	})
}

func (s *Server) handleBoardLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no board store configured"))
		return
	}

	var req BoardLayoutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
			return
		}
	}

	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.runLayout(w, r, b, pipeline.Options{
		Filter:     req.Filter,
		Settings:   req.Settings,
		Formats:    req.Formats,
		ShowLabels: req.ShowLabels,
		Refresh:    req.Refresh,
	})
}

func (s *Server) runLayout(w http.ResponseWriter, r *http.Request, b board.Board, opts pipeline.Options) {
	opts.Logger = s.logger

	// Pin colors for the board's labels on the shared palette, then render
	// against a snapshot so concurrent requests never race on assignment.
	labels := make([]string, 0, len(b.Objects))
	for _, obj := range b.Objects {
		labels = append(labels, obj.Label)
	}
	_, palette := s.assignColors(labels)
	opts.Palette = palette

	result, err := s.runner.Execute(r.Context(), b, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// A single svg format with Accept: image/svg+xml gets the raw artifact.
	if len(opts.Formats) == 1 && opts.Formats[0] == pipeline.FormatSVG &&
		strings.Contains(r.Header.Get("Accept"), "image/svg+xml") {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
		return
	}

	s.writeJSON(w, http.StatusOK, LayoutResponse{
		BoardHash: result.BoardHash,
		Plan:      result.Plan,
		Artifacts: result.Artifacts,
		Cache:     result.CacheInfo,
	})
}

func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	colors, _ := s.assignColors(r.URL.Query()["label"])
	s.writeJSON(w, http.StatusOK, ColorsResponse{Colors: colors})
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no board store configured"))
		return
	}
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"boards": ids})
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no board store configured"))
		return
	}

	var b board.Board
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode board"))
		return
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := b.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), b); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no board store configured"))
		return
	}
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no board store configured"))
		return
	}

	var b board.Board
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode board"))
		return
	}
	b.ID = chi.URLParam(r, "boardID")
	if err := b.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), b); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "no board store configured"))
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "boardID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Response Helpers
// =============================================================================

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	if stderrors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGeometry, errors.ErrCodeInvalidLabel,
		errors.ErrCodeInvalidObject, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeBoardNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
