package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/scorepager/pkg/buildinfo"
	"github.com/matzehuels/scorepager/pkg/errors"
	scoreio "github.com/matzehuels/scorepager/pkg/io"
	"github.com/matzehuels/scorepager/pkg/pipeline"
	"github.com/matzehuels/scorepager/pkg/score"
	"github.com/matzehuels/scorepager/pkg/session"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// LayoutRequest is the body of POST /v1/layout and POST /v1/scale.
// Score is a score document as read by pkg/io.
type LayoutRequest struct {
	Score   json.RawMessage  `json:"score"`
	Options pipeline.Options `json:"options"`
}

// ScaleResponse is the body returned by POST /v1/scale.
type ScaleResponse struct {
	Mode   pipeline.Mode `json:"mode"`
	Target float64       `json:"target"`
	Scale  float64       `json:"scale"`
}

// SessionRequest is the body of PUT /v1/sessions/{scoreID}.
type SessionRequest struct {
	Staff   int              `json:"staff"`
	Options pipeline.Options `json:"options"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sc, opts, err := decodeLayoutRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Layout(r.Context(), sc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc := scoreio.NewLayoutDocument(sc, res.Layout, res.Scale, res.Options.Width, res.Options.Height)
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	sc, opts, err := decodeLayoutRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	scale, err := opts.Scale(sc.Staves)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ScaleResponse{Mode: opts.Mode, Target: opts.Target(), Scale: scale})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "scoreID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handlePutSession(w http.ResponseWriter, r *http.Request) {
	scoreID := chi.URLParam(r, "scoreID")
	var req SessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Options.SetDefaults()
	if err := req.Options.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	sess, err := s.sessions.Get(ctx, scoreID)
	switch {
	case errors.Is(err, errors.ErrCodeSessionNotFound):
		sess, err = session.New(scoreID, req.Staff, req.Options, session.DefaultTTL)
	case err == nil:
		sess.Record(req.Staff, req.Options, session.DefaultTTL)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "scoreID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

func decodeLayoutRequest(w http.ResponseWriter, r *http.Request) (*score.Score, pipeline.Options, error) {
	var req LayoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, req.Options, err
	}
	if len(req.Score) == 0 {
		return nil, req.Options, errors.New(errors.ErrCodeInvalidInput, "request has no score")
	}
	sc, err := scoreio.ReadScore(bytes.NewReader(req.Score), scoreio.FormatJSON)
	if err != nil {
		return nil, req.Options, err
	}
	return sc, req.Options, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
