package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/Echelon133/sports-live-app-sub002/internal/domain/match"
	"github.com/Echelon133/sports-live-app-sub002/internal/domain/matchevent"
	"github.com/Echelon133/sports-live-app-sub002/internal/usecase"
)

type matchDTO struct {
	ID                string `json:"id"`
	CompetitionID     string `json:"competitionId"`
	HomeTeamID        string `json:"homeTeamId"`
	AwayTeamID        string `json:"awayTeamId"`
	HomeTeamName      string `json:"homeTeamName"`
	AwayTeamName      string `json:"awayTeamName"`
	VenueID           string `json:"venueId,omitempty"`
	RefereeID         string `json:"refereeId,omitempty"`
	KickoffAt         string `json:"kickoffAt"`
	Status            string `json:"status"`
	Result            string `json:"result,omitempty"`
	HomeGoals         int    `json:"homeGoals"`
	AwayGoals         int    `json:"awayGoals"`
	HomeShootoutGoals int    `json:"homeShootoutGoals,omitempty"`
	AwayShootoutGoals int    `json:"awayShootoutGoals,omitempty"`
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	return matchDTO{
		ID:                v.ID,
		CompetitionID:     v.CompetitionID,
		HomeTeamID:        v.HomeTeamID,
		AwayTeamID:        v.AwayTeamID,
		HomeTeamName:      v.HomeTeamName,
		AwayTeamName:      v.AwayTeamName,
		VenueID:           v.VenueID,
		RefereeID:         v.RefereeID,
		KickoffAt:         v.KickoffAt.UTC().Format(time.RFC3339),
		Status:            string(v.Status),
		Result:            string(v.Result),
		HomeGoals:         v.HomeGoals,
		AwayGoals:         v.AwayGoals,
		HomeShootoutGoals: v.HomeShootoutGoals,
		AwayShootoutGoals: v.AwayShootoutGoals,
	}
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, m))
}

func (h *Handler) ListMatchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchEvents")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	events, err := h.matchService.ListMatchEvents(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match events failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, events)
}

// SubmitMatchEvent is the ingest boundary for the event feed. The body is a
// wire-format event; a missing id gets one generated, so retried submissions
// must carry their own id to be deduplicated.
func (h *Handler) SubmitMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitMatchEvent")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var event matchevent.MatchEvent
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&event); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid event payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	if strings.TrimSpace(event.MatchID) == "" {
		event.MatchID = matchID
	}
	if event.MatchID != matchID {
		writeError(ctx, w, fmt.Errorf("%w: match id mismatch between path and payload", usecase.ErrInvalidInput))
		return
	}
	if strings.TrimSpace(event.ID) == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if err := h.dispatcher.Dispatch(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "dispatch event failed", "match_id", matchID, "event_id", event.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{"eventId": event.ID})
}
