package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aleister1102/grammarwhiz/internal/common"
	"github.com/aleister1102/grammarwhiz/internal/differ"
	"github.com/aleister1102/grammarwhiz/internal/history"
	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/aleister1102/grammarwhiz/internal/renderer"
)

type proofreadPayload struct {
	Text     string `json:"text"`
	Scenario string `json:"scenario"`
}

func (s *Server) handleProofread(w http.ResponseWriter, r *http.Request) {
	var payload proofreadPayload
	if err := s.decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, err)
		return
	}

	scenario, err := models.ParseScenario(payload.Scenario)
	if err != nil {
		s.writeError(w, common.NewValidationError("scenario", payload.Scenario, err.Error()))
		return
	}
	req := models.ProofreadRequest{Text: payload.Text, Scenario: scenario}
	if err := models.Validate(&req); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	result, err := s.deps.Corrector.Correct(r.Context(), req.Text, req.Scenario)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.recordHistory(r, req, result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) recordHistory(r *http.Request, req models.ProofreadRequest, result models.ProofreadResult) {
	if s.deps.History == nil {
		return
	}

	delta := ""
	if s.deps.Differ != nil {
		script, err := s.deps.Differ.Script(req.Text, result.Corrected)
		if err == nil {
			delta, err = differ.ToDelta(script)
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to encode history diff, storing entry without it")
			delta = ""
		}
	}

	if _, err := s.deps.History.Append(r.Context(), history.NewEntry(req.Text, result, req.Scenario, delta)); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record history entry")
	}
}

func (s *Server) handleExtractNewspaper(w http.ResponseWriter, r *http.Request) {
	if s.deps.Extractor == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "PDF extraction is not configured"})
		return
	}

	var req models.ExtractRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.PDFBase64 == "" {
		s.writeError(w, common.NewValidationError("pdfBase64", nil, "missing PDF data"))
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.PDFBase64)
	if err != nil {
		s.writeError(w, common.NewValidationError("pdfBase64", nil, "invalid base64 data"))
		return
	}

	text, err := s.deps.Extractor.Import(r.Context(), data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ExtractResult{Text: text})
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	if s.deps.Differ == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "diff engine is not configured"})
		return
	}

	var req models.DiffRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.checkDiffInput("original", req.Original); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.checkDiffInput("corrected", req.Corrected); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.deps.Differ.GenerateDiff(req.Original, req.Corrected)
	if err != nil {
		s.writeError(w, err)
		return
	}
	script := differ.FromModels(result.Diffs)
	delta, err := differ.ToDelta(script)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.DiffResponse{
		Result: result,
		HTML:   string(renderer.HTML(script)),
		Delta:  delta,
	})
}

// checkDiffInput keeps /api/diff to texts far below the request body limit.
func (s *Server) checkDiffInput(field, text string) error {
	limit := s.cfg.MaxDiffInputBytes()
	if len(text) > limit {
		return common.NewValidationError(field, fmt.Sprintf("%d bytes", len(text)),
			fmt.Sprintf("exceeds the %d byte diff limit", limit))
	}
	return nil
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.deps.History == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "history is not configured"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, common.NewValidationError("limit", raw, "must be a non-negative integer"))
			return
		}
		limit = n
	}

	entries, err := s.deps.History.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if s.deps.History == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "history is not configured"})
		return
	}

	entry, err := s.deps.History.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if s.deps.History == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "history is not configured"})
		return
	}

	if err := s.deps.History.Clear(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validationError(err error) error {
	var fieldErr *models.FieldError
	if errors.As(err, &fieldErr) {
		return common.NewValidationError(fieldErr.Field, nil, "failed rule '"+fieldErr.Rule+"'")
	}
	return common.WrapError(common.ErrInvalidInput, err.Error())
}
