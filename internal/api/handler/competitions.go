package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/matchdayhq/matchday-data/internal/api/respond"
	"github.com/matchdayhq/matchday-data/internal/cache"
	"github.com/matchdayhq/matchday-data/internal/engine"
	"github.com/matchdayhq/matchday-data/internal/model"
	"github.com/matchdayhq/matchday-data/internal/snapshot"
)

// standingsRow is one line of a rendered league table.
type standingsRow struct {
	Position int    `json:"position"`
	Team     string `json:"team"`
	model.LeagueRow
}

func toStandingsRows(teams []model.Team) []standingsRow {
	rows := make([]standingsRow, len(teams))
	for i, t := range teams {
		rows[i] = standingsRow{
			Position:  i + 1,
			Team:      t.Name,
			LeagueRow: t.Stats,
		}
	}
	return rows
}

// GetCompetitions lists all competitions.
// @Summary List competitions
// @Description Returns all competitions with their IDs and names.
// @Tags competitions
// @Produce json
// @Success 200 {array} snapshot.Competition
// @Router /competitions [get]
func (h *Handler) GetCompetitions(w http.ResponseWriter, r *http.Request) {
	cacheKey := "competitions"
	ttl := cache.TTLList

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	comps, err := snapshot.List(r.Context(), h.pool)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "DB_ERROR", "Failed to list competitions")
		return
	}
	if comps == nil {
		comps = []snapshot.Competition{}
	}

	data, err := json.Marshal(comps)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", "Failed to encode competitions")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetStandings returns the league table for a competition.
// @Summary Get league standings
// @Description Returns the league table derived from finished results: points, goal difference, goals scored, and recent form.
// @Tags competitions
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Success 200 {array} handler.standingsRow
// @Failure 404 {object} respond.ErrorResponse
// @Router /competitions/{competitionID}/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	competitionID := chi.URLParam(r, "competitionID")
	cacheKey := fmt.Sprintf("competition:%s:standings", competitionID)
	ttl := cache.TTLStandings

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	s, err := h.loadSnapshot(w, r, competitionID)
	if err != nil {
		return
	}

	derived := snapshot.Derive(s)
	data, err := json.Marshal(toStandingsRows(derived.Teams))
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", "Failed to encode standings")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetGroupStandings returns per-group league tables for a competition.
// @Summary Get group standings
// @Description Returns one league table per group, considering only matches between group members.
// @Tags competitions
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /competitions/{competitionID}/standings/groups [get]
func (h *Handler) GetGroupStandings(w http.ResponseWriter, r *http.Request) {
	competitionID := chi.URLParam(r, "competitionID")
	cacheKey := fmt.Sprintf("competition:%s:standings:groups", competitionID)
	ttl := cache.TTLStandings

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	s, err := h.loadSnapshot(w, r, competitionID)
	if err != nil {
		return
	}

	combined := append(append([]model.Match{}, s.Results...), s.Fixtures...)
	reconciled := engine.ReconcilePlayers(s.Teams, combined)

	tables := make(map[string][]standingsRow, len(s.Groups))
	for _, g := range s.Groups {
		members := make([]model.Team, 0, len(g.Teams))
		for _, name := range g.Teams {
			key := engine.Normalize(name)
			for _, t := range reconciled {
				if engine.Normalize(t.Name) == key {
					members = append(members, t)
					break
				}
			}
		}
		tables[g.Name] = toStandingsRows(engine.CalculateGroupStandings(members, combined))
	}

	data, err := json.Marshal(tables)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", "Failed to encode group standings")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetScorers returns the top scorer leaderboard for a competition.
// @Summary Get top scorers
// @Description Returns the scorer leaderboard ranked by goals, with player-of-the-match awards breaking ties.
// @Tags competitions
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Param limit query int false "Maximum entries to return (default 10)"
// @Success 200 {array} model.ScorerRecord
// @Failure 404 {object} respond.ErrorResponse
// @Router /competitions/{competitionID}/scorers [get]
func (h *Handler) GetScorers(w http.ResponseWriter, r *http.Request) {
	competitionID := chi.URLParam(r, "competitionID")

	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		limit = n
	}

	cacheKey := fmt.Sprintf("competition:%s:scorers:%d", competitionID, limit)
	ttl := cache.TTLScorers

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	s, err := h.loadSnapshot(w, r, competitionID)
	if err != nil {
		return
	}

	scorers := snapshot.TopScorers(s, limit)
	if scorers == nil {
		scorers = []model.ScorerRecord{}
	}

	data, err := json.Marshal(scorers)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", "Failed to encode scorers")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// GetRoster returns the reconciled team rosters for a competition.
// @Summary Get team rosters
// @Description Returns all teams with merged rosters and per-player stats re-derived from match data.
// @Tags competitions
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Success 200 {array} model.Team
// @Failure 404 {object} respond.ErrorResponse
// @Router /competitions/{competitionID}/roster [get]
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	competitionID := chi.URLParam(r, "competitionID")
	cacheKey := fmt.Sprintf("competition:%s:roster", competitionID)
	ttl := cache.TTLRoster

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	s, err := h.loadSnapshot(w, r, competitionID)
	if err != nil {
		return
	}

	derived := snapshot.Derive(s)
	data, err := json.Marshal(derived.Teams)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", "Failed to encode roster")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// loadSnapshot loads a competition snapshot, writing the error response
// itself so callers can just return on failure.
func (h *Handler) loadSnapshot(w http.ResponseWriter, r *http.Request, competitionID string) (*snapshot.Snapshot, error) {
	s, err := snapshot.Load(r.Context(), h.pool, competitionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
				fmt.Sprintf("Competition %q not found", competitionID))
		} else {
			respond.WriteError(w, http.StatusInternalServerError, "DB_ERROR", "Failed to load competition")
		}
		return nil, err
	}
	return s, nil
}
