// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package community

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bureau-foundation/tokenroute/lib/routemetrics"
	"github.com/bureau-foundation/tokenroute/lib/router"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error      string `json:"error"`
	Kind       string `json:"kind,omitempty"`
	Token      string `json:"token,omitempty"`
	Position   int    `json:"position"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Handler serves a routing table over HTTP.
type Handler struct {
	community *Community
	table     *router.Router[*Community]
	metrics   *routemetrics.Recorder
	logger    *slog.Logger
}

// NewHandler returns an http.Handler that dispatches every request
// through table. metrics may be nil.
func NewHandler(community *Community, table *router.Router[*Community], metrics *routemetrics.Recorder, logger *slog.Logger) http.Handler {
	handler := &Handler{
		community: community,
		table:     table,
		metrics:   metrics,
		logger:    logger,
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.HandleFunc("/*", handler.serve)
	return mux
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())
	if requestID != "" {
		w.Header().Set(middleware.RequestIDHeader, requestID)
	}
	logger := h.logger.With("request_id", requestID, "method", r.Method, "path", r.URL.Path)

	request := ParseRequest(r.Method, r.URL.Path)
	result := routemetrics.Dispatch(h.metrics, h.table, h.community, request.Tokens())
	value, err := result.Unwrap()
	if err != nil {
		status := StatusFor(err)
		logger.Info("request not routed", "error", err, "status", status)
		h.writeJSON(w, status, ErrorResponseFor(err), logger)
		return
	}

	status, body := Respond(value)
	logger.Debug("request handled", "leaf", value.Leaf(), "status", status)
	h.writeJSON(w, status, body, logger)
}

// StatusFor maps a routing error to an HTTP status: 404 for an
// unmatched path or verb, 400 otherwise.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, router.ErrInvalidAction):
		return http.StatusNotFound
	case errors.Is(err, router.ErrValueConversionFailed),
		errors.Is(err, router.ErrNotEnoughInput),
		errors.Is(err, router.ErrTooManyArguments):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond converts a leaf result into a status and a JSON body.
func Respond(value router.Value) (int, any) {
	switch payload := value.Payload().(type) {
	case *Speaker:
		if payload == nil {
			return http.StatusNotFound, ErrorResponse{Error: "speaker not found"}
		}
		return http.StatusOK, payload
	case *Talk:
		if payload == nil {
			return http.StatusNotFound, ErrorResponse{Error: "talk not found"}
		}
		return http.StatusOK, payload
	case Room:
		return http.StatusCreated, payload
	case []Talk:
		if payload == nil {
			payload = []Talk{}
		}
		return http.StatusOK, payload
	case []Speaker:
		if payload == nil {
			payload = []Speaker{}
		}
		return http.StatusOK, payload
	case error:
		if errors.Is(payload, ErrUnknownConference) {
			return http.StatusNotFound, ErrorResponse{Error: payload.Error()}
		}
		return http.StatusInternalServerError, ErrorResponse{Error: payload.Error()}
	default:
		return http.StatusOK, payload
	}
}

// ErrorResponseFor describes a routing failure, including its position
// and suggestion when err is a *router.Error.
func ErrorResponseFor(err error) ErrorResponse {
	response := ErrorResponse{Error: err.Error()}
	var routeErr *router.Error
	if errors.As(err, &routeErr) {
		response.Kind = routeErr.Kind.String()
		response.Token = routeErr.Token
		response.Position = routeErr.Position
		response.Suggestion = routeErr.Suggestion
	}
	return response
}

// writeJSON encodes value as JSON. Encoding failures usually mean the
// client went away, so they are only logged.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, value any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		logger.Warn("writing JSON response", "error", err, "status", status)
	}
}
