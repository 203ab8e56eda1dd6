package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/competition"
	"github.com/Echelon133/sports-live-app-sub002/internal/usecase"
)

type competitionDTO struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Season   string            `json:"season"`
	League   *leaguePhaseDTO   `json:"league,omitempty"`
	Knockout *knockoutPhaseDTO `json:"knockout,omitempty"`
}

type leaguePhaseDTO struct {
	Rounds []roundDTO `json:"rounds"`
}

type roundDTO struct {
	Number   int      `json:"number"`
	MatchIDs []string `json:"matchIds"`
}

type knockoutPhaseDTO struct {
	Stages []stageDTO `json:"stages"`
}

type stageDTO struct {
	Name string   `json:"name"`
	Ties []tieDTO `json:"ties"`
}

type tieDTO struct {
	HomeTeamID  string `json:"homeTeamId"`
	AwayTeamID  string `json:"awayTeamId"`
	FirstLegID  string `json:"firstLegId"`
	SecondLegID string `json:"secondLegId,omitempty"`
}

type assignMatchesRequest struct {
	MatchIDs []string `json:"matchIds" validate:"required,min=1,dive,required"`
}

func competitionToDTO(ctx context.Context, v competition.Competition) competitionDTO {
	ctx, span := startSpan(ctx, "httpapi.competitionToDTO")
	defer span.End()

	dto := competitionDTO{
		ID:     v.ID,
		Name:   v.Name,
		Season: v.Season,
	}
	if v.League != nil {
		rounds := make([]roundDTO, 0, len(v.League.Rounds))
		for _, round := range v.League.Rounds {
			rounds = append(rounds, roundDTO{
				Number:   round.Number,
				MatchIDs: append([]string(nil), round.MatchIDs...),
			})
		}
		dto.League = &leaguePhaseDTO{Rounds: rounds}
	}
	if v.Knockout != nil {
		stages := make([]stageDTO, 0, len(v.Knockout.Stages))
		for _, stage := range v.Knockout.Stages {
			ties := make([]tieDTO, 0, len(stage.Ties))
			for _, tie := range stage.Ties {
				ties = append(ties, tieDTO{
					HomeTeamID:  tie.HomeTeamID,
					AwayTeamID:  tie.AwayTeamID,
					FirstLegID:  tie.FirstLegID,
					SecondLegID: tie.SecondLegID,
				})
			}
			stages = append(stages, stageDTO{Name: stage.Name, Ties: ties})
		}
		dto.Knockout = &knockoutPhaseDTO{Stages: stages}
	}
	return dto
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	comp, err := h.competitionService.GetCompetition(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(ctx, comp))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	entries, err := h.standingsService.GetStandings(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) GetRoundStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoundStandings")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	roundNumber, err := parseRoundNumber(r.PathValue("roundNumber"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.standingsService.GetRoundStandings(ctx, competitionID, roundNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "get round standings failed",
			"competition_id", competitionID, "round", roundNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) GetKnockoutBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetKnockoutBracket")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	stages, err := h.competitionService.GetKnockoutBracket(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get knockout bracket failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stages)
}

func (h *Handler) ListPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerStats")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	page := parseQueryInt(r, "page", 0)
	size := parseQueryInt(r, "size", 0)

	stats, err := h.statsService.ListPlayerStats(ctx, competitionID, page, size)
	if err != nil {
		h.logger.WarnContext(ctx, "list player stats failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) ListTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamStats")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	stats, err := h.statsService.ListTeamStats(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team stats failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) AssignMatchesToRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignMatchesToRound")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	roundNumber, err := parseRoundNumber(r.PathValue("roundNumber"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignMatchesRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.competitionService.AssignMatchesToRound(ctx, competitionID, roundNumber, req.MatchIDs); err != nil {
		h.logger.WarnContext(ctx, "assign matches to round failed",
			"competition_id", competitionID, "round", roundNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"competitionId": competitionID,
		"roundNumber":   roundNumber,
		"assigned":      len(req.MatchIDs),
	})
}

func parseRoundNumber(raw string) (int, error) {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("%w: round number must be a positive integer", usecase.ErrInvalidInput)
	}
	return number, nil
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
