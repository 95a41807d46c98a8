package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpsduel-go/internal/api/middleware"
	"github.com/mcoot/rpsduel-go/internal/api/request"
	"github.com/mcoot/rpsduel-go/internal/api/response"
	"github.com/mcoot/rpsduel-go/internal/events"
	"github.com/mcoot/rpsduel-go/internal/model"
	"github.com/mcoot/rpsduel-go/internal/services/match"
)

// MatchHandler handles match lifecycle and query endpoints
type MatchHandler struct {
	matchController *match.Controller
	hub             *events.Hub
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchController *match.Controller, hub *events.Hub) *MatchHandler {
	return &MatchHandler{
		matchController: matchController,
		hub:             hub,
	}
}

// Start handles POST /api/v1/matches
// The caller's session identity is the host.
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	host := middleware.MustGetIdentity(r.Context())

	var req request.StartMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	opponent, err := model.ParseIdentity(req.Opponent)
	if err != nil {
		WriteError(w, err)
		return
	}

	firstMove, err := model.ParseMove(req.FirstMove)
	if err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchController.Start(r.Context(), host, opponent, firstMove)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastEvent(events.EventMatchStarted, events.MatchStarted{
			Host:     m.Host,
			Opponent: m.Opponent,
		})
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

// Respond handles POST /api/v1/matches/{host}/respond
// The caller's session identity is the opponent.
func (h *MatchHandler) Respond(w http.ResponseWriter, r *http.Request) {
	opponent := middleware.MustGetIdentity(r.Context())

	host, err := model.ParseIdentity(mux.Vars(r)["host"])
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	secondMove, err := model.ParseMove(req.SecondMove)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.matchController.Respond(r.Context(), host, opponent, secondMove)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.hub != nil {
		h.hub.BroadcastEvent(events.EventMatchResolved, events.MatchResolved{
			Host:     host,
			Opponent: opponent,
			Result:   result.Display(),
		})
	}

	response.JSON(w, http.StatusOK, response.RespondResponse{Result: result.Display()})
}

// ByHost handles GET /api/v1/matches/by-host/{host}
func (h *MatchHandler) ByHost(w http.ResponseWriter, r *http.Request) {
	host, err := model.ParseIdentity(mux.Vars(r)["host"])
	if err != nil {
		WriteError(w, err)
		return
	}

	matches, err := h.matchController.MatchesByHost(r.Context(), host)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchListResponse{Matches: response.MatchesFromModel(matches)})
}

// ByOpponent handles GET /api/v1/matches/by-opponent/{opponent}
func (h *MatchHandler) ByOpponent(w http.ResponseWriter, r *http.Request) {
	opponent, err := model.ParseIdentity(mux.Vars(r)["opponent"])
	if err != nil {
		WriteError(w, err)
		return
	}

	matches, err := h.matchController.MatchesByOpponent(r.Context(), opponent)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchListResponse{Matches: response.MatchesFromModel(matches)})
}
