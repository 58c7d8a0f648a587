package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/transport/http/dto"
	"github.com/fleshka4/vault-quoter/internal/transport/http/validate"
)

func (s *Server) handleSwapQuote(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.SwapQuoteRequestValidate(r)
	if err != nil {
		s.writeValidationError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.QuoteSwap(ctx, *req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSwapBuild(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.SwapBuildRequestValidate(r)
	if err != nil {
		s.writeValidationError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.BuildSwap(ctx, *req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNestedExitQuote(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.NestedExitQuoteRequestValidate(r)
	if err != nil {
		s.writeValidationError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.QuoteNestedExit(ctx, *req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNestedJoinQuote(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.NestedJoinQuoteRequestValidate(r)
	if err != nil {
		s.writeValidationError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.QuoteNestedJoin(ctx, *req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNestedBuild(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.NestedBuildRequestValidate(r)
	if err != nil {
		s.writeValidationError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.BuildNested(ctx, *req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.requestTimeout)
}

func (s *Server) writeValidationError(w http.ResponseWriter, code int, err error) {
	if code == 0 {
		code = http.StatusBadRequest
	}
	kind := apperrors.Kind(err)
	if code == http.StatusMethodNotAllowed {
		kind = "method_not_allowed"
	}
	s.writeJSON(w, code, dto.ErrorResponse{Kind: kind, Error: err.Error()})
}

// writeError maps a service error to a status by its taxonomy kind. Errors
// outside the taxonomy are logged and answered without details.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := apperrors.Kind(err)
	switch kind {
	case apperrors.KindSimulationFailed:
		s.writeJSON(w, http.StatusBadGateway, dto.ErrorResponse{Kind: kind, Error: err.Error()})
	case apperrors.KindInternal:
		s.logger.Error("request failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Kind: kind, Error: "internal error"})
	default:
		s.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Kind: kind, Error: err.Error()})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response write error", zap.Error(err))
	}
}
