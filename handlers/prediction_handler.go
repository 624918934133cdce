package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/germarr/static-worldcup/services"
)

type PredictionHandler struct {
	predictionService services.PredictionService
}

func NewPredictionHandler(ps services.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: ps,
	}
}

// ViewHandler handles GET /api/predictions/{token}.
// The token is the full compressed state; the response carries standings,
// the third-place table, the bracket, and the re-encoded token.
func (h *PredictionHandler) ViewHandler(w http.ResponseWriter, r *http.Request) {
	view, ok := h.deriveView(w, r)
	if !ok {
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"prediction": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StandingsHandler handles GET /api/predictions/{token}/standings.
func (h *PredictionHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	view, ok := h.deriveView(w, r)
	if !ok {
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{
		"standings": view.Standings,
		"token":     view.Token,
		"healed":    view.Healed,
	}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ThirdsHandler handles GET /api/predictions/{token}/thirds.
func (h *PredictionHandler) ThirdsHandler(w http.ResponseWriter, r *http.Request) {
	view, ok := h.deriveView(w, r)
	if !ok {
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{
		"third_place": view.ThirdPlace,
		"token":       view.Token,
		"healed":      view.Healed,
	}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// BracketHandler handles GET /api/predictions/{token}/bracket.
func (h *PredictionHandler) BracketHandler(w http.ResponseWriter, r *http.Request) {
	view, ok := h.deriveView(w, r)
	if !ok {
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{
		"bracket": view.Bracket,
		"token":   view.Token,
		"healed":  view.Healed,
	}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PredictionHandler) deriveView(w http.ResponseWriter, r *http.Request) (*services.PredictionView, bool) {
	token := chi.URLParam(r, "token")
	if token == "" {
		badRequestResponse(w, r, errors.New("missing token in URL path"))
		return nil, false
	}

	view, err := h.predictionService.View(r.Context(), token)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return nil, false
	}
	return view, true
}

// ScoreHandler handles GET /api/predictions/{token}/score.
func (h *PredictionHandler) ScoreHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		badRequestResponse(w, r, errors.New("missing token in URL path"))
		return
	}

	summary, err := h.predictionService.Score(r.Context(), token)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"score": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
