package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/germarr/static-worldcup/models"
	"github.com/germarr/static-worldcup/services"
)

const maxFlagUploadSize = 2 * 1024 * 1024 // 2MB

type ReferenceHandler struct {
	referenceService services.ReferenceService
}

func NewReferenceHandler(rs services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{
		referenceService: rs,
	}
}

// ListTeamsHandler handles GET /api/teams.
func (h *ReferenceHandler) ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	teams, err := h.referenceService.ListTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListStadiumsHandler handles GET /api/stadiums.
func (h *ReferenceHandler) ListStadiumsHandler(w http.ResponseWriter, r *http.Request) {
	stadiums, err := h.referenceService.ListStadiums(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stadiums": stadiums}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatchesHandler handles GET /api/matches.
func (h *ReferenceHandler) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	matches, err := h.referenceService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ImportHandler handles POST /api/admin/reference: a bulk upsert of teams,
// stadiums and matches.
func (h *ReferenceHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	var input services.ImportInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.referenceService.Import(r.Context(), input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{
		"teams":    len(input.Teams),
		"stadiums": len(input.Stadiums),
		"matches":  len(input.Matches),
	}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadFlagHandler handles POST /api/admin/teams/{teamID}/flag with a
// multipart form field named "flag".
func (h *ReferenceHandler) UploadFlagHandler(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxFlagUploadSize); err != nil {
		badRequestResponse(w, r, fmt.Errorf("could not parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("flag")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("missing flag file: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	team, err := h.referenceService.UploadTeamFlag(r.Context(), teamID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResultHandler handles PUT /api/admin/matches/{matchID}/result.
func (h *ReferenceHandler) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var result models.Result
	if err := readJSON(w, r, &result); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.referenceService.RecordResult(r.Context(), matchID, result)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func getIDFromURL(r *http.Request, paramName string) (int, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s in URL path", paramName)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}
	return id, nil
}
