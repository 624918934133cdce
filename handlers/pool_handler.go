package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/germarr/static-worldcup/services"
)

const (
	memberTokenHeader  = "X-Member-Token"
	creatorTokenHeader = "X-Creator-Token"
)

type PoolHandler struct {
	poolService services.PoolService
}

func NewPoolHandler(ps services.PoolService) *PoolHandler {
	return &PoolHandler{
		poolService: ps,
	}
}

// CreateHandler handles POST /api/pools. The response is the only time the
// creator and member tokens are visible.
func (h *PoolHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePoolInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.poolService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"pool": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler handles GET /api/pools/{code}?limit=N.
func (h *PoolHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	code, err := getCodeFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			badRequestResponse(w, r, errors.New("invalid limit query parameter"))
			return
		}
	}

	pool, err := h.poolService.Get(r.Context(), code, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pool": pool}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// JoinHandler handles POST /api/pools/{code}/join.
func (h *PoolHandler) JoinHandler(w http.ResponseWriter, r *http.Request) {
	code, err := getCodeFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.JoinPoolInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.poolService.Join(r.Context(), code, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"membership": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateBracketHandler handles PUT /api/pools/{code}/members/{displayName}.
// The member token travels in the X-Member-Token header.
func (h *PoolHandler) UpdateBracketHandler(w http.ResponseWriter, r *http.Request) {
	code, err := getCodeFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	displayName := chi.URLParam(r, "displayName")
	memberToken := r.Header.Get(memberTokenHeader)
	if memberToken == "" {
		unauthorizedResponse(w, r, "missing "+memberTokenHeader+" header")
		return
	}

	var input struct {
		BracketData string `json:"bracket_data"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.poolService.UpdateBracket(r.Context(), code, displayName, memberToken, input.BracketData); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LeaveHandler handles DELETE /api/pools/{code}/members/{displayName}.
func (h *PoolHandler) LeaveHandler(w http.ResponseWriter, r *http.Request) {
	code, err := getCodeFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	displayName := chi.URLParam(r, "displayName")
	memberToken := r.Header.Get(memberTokenHeader)
	if memberToken == "" {
		unauthorizedResponse(w, r, "missing "+memberTokenHeader+" header")
		return
	}

	if err := h.poolService.Leave(r.Context(), code, displayName, memberToken); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteHandler handles DELETE /api/pools/{code}. Only the creator token
// may delete a pool.
func (h *PoolHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	code, err := getCodeFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	creatorToken := r.Header.Get(creatorTokenHeader)
	if creatorToken == "" {
		unauthorizedResponse(w, r, "missing "+creatorTokenHeader+" header")
		return
	}

	if err := h.poolService.Delete(r.Context(), code, creatorToken); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func getCodeFromURL(r *http.Request) (string, error) {
	code := chi.URLParam(r, "code")
	if code == "" {
		return "", errors.New("missing code in URL path")
	}
	return code, nil
}
