package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/matchdayhq/matchday-data/internal/api/respond"
	"github.com/matchdayhq/matchday-data/internal/importer"
	"github.com/matchdayhq/matchday-data/internal/snapshot"
)

const maxImportBody = 4 << 20 // 4 MiB

// Recompute forces a full derivation pass over one competition.
// @Summary Recompute derived tables
// @Description Re-reconciles rosters and recalculates standings from stored match data, then persists the result. Idempotent.
// @Tags admin
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /competitions/{competitionID}/recompute [post]
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	competitionID := chi.URLParam(r, "competitionID")

	derived, err := snapshot.Recompute(r.Context(), h.pool, competitionID)
	if err != nil {
		h.writeMutationError(w, competitionID, err)
		return
	}

	h.cache.Invalidate(fmt.Sprintf("competition:%s:", competitionID))

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":        "recomputed",
		"competitionId": competitionID,
		"teams":         len(derived.Teams),
	})
}

type renameRequest struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

// RenameTeam renames a team across its roster entry and all matches.
// @Summary Rename a team
// @Description Rewrites a team's name on the roster and every historical fixture and result in one transaction, keeping matches joinable.
// @Tags admin
// @Accept json
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Param request body handler.renameRequest true "Old and new team names"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /competitions/{competitionID}/rename-team [post]
func (h *Handler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	competitionID := chi.URLParam(r, "competitionID")

	var req renameRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxImportBody)).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON with oldName and newName")
		return
	}
	if strings.TrimSpace(req.OldName) == "" || strings.TrimSpace(req.NewName) == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_NAMES", "oldName and newName are required")
		return
	}

	if err := snapshot.RenameTeam(r.Context(), h.pool, competitionID, req.OldName, req.NewName); err != nil {
		if errors.Is(err, snapshot.ErrTeamNotFound) {
			respond.WriteError(w, http.StatusNotFound, "TEAM_NOT_FOUND", err.Error())
			return
		}
		h.writeMutationError(w, competitionID, err)
		return
	}

	h.cache.Invalidate(fmt.Sprintf("competition:%s:", competitionID))

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":        "renamed",
		"competitionId": competitionID,
		"oldName":       req.OldName,
		"newName":       req.NewName,
	})
}

// ImportMatches appends candidate match records to a competition.
// @Summary Import match records
// @Description Accepts a JSON array of candidate match records (lenient field names), stores the salvageable ones, and recomputes derived tables.
// @Tags admin
// @Accept json
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Param source query string false "Import source label (default api)"
// @Param request body []model.Match true "Candidate match records"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /competitions/{competitionID}/import [post]
func (h *Handler) ImportMatches(w http.ResponseWriter, r *http.Request) {
	competitionID := chi.URLParam(r, "competitionID")

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "api"
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBody))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "READ_ERROR", "Failed to read request body")
		return
	}

	result, err := importer.Parse(body)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_PAYLOAD",
			"Request body must be a JSON array of match records", err.Error())
		return
	}
	if len(result.Matches) == 0 {
		respond.WriteError(w, http.StatusBadRequest, "NO_MATCHES",
			fmt.Sprintf("No salvageable match records in payload (%d skipped)", result.Skipped))
		return
	}

	if err := snapshot.ImportMatches(r.Context(), h.pool, competitionID, source, result.Matches); err != nil {
		h.writeMutationError(w, competitionID, err)
		return
	}

	// Derived tables are recomputed immediately so the next read is fresh.
	if _, err := snapshot.Recompute(r.Context(), h.pool, competitionID); err != nil {
		h.writeMutationError(w, competitionID, err)
		return
	}

	h.cache.Invalidate(fmt.Sprintf("competition:%s:", competitionID))

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":        "imported",
		"competitionId": competitionID,
		"source":        source,
		"imported":      len(result.Matches),
		"skipped":       result.Skipped,
	})
}

func (h *Handler) writeMutationError(w http.ResponseWriter, competitionID string, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("Competition %q not found", competitionID))
		return
	}
	respond.WriteError(w, http.StatusInternalServerError, "DB_ERROR", "Operation failed")
}
