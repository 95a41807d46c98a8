package response

import (
	"time"

	"github.com/mcoot/rpsduel-go/internal/model"
	"github.com/mcoot/rpsduel-go/internal/services/auth"
)

// AuthResponse is returned from claim/register/login
type AuthResponse struct {
	Address      string    `json:"address"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthFromSession builds an AuthResponse from a session
func AuthFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Address:      string(s.Address),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// IdentityResponse is the projection of the caller's session identity
type IdentityResponse struct {
	Address string `json:"address"`
}

// Match is the wire representation of a match record
type Match struct {
	Host      string    `json:"host"`
	Opponent  string    `json:"opponent"`
	HostMove  string    `json:"host_move"`
	OppMove   *string   `json:"opp_move,omitempty"`
	Result    *string   `json:"result,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchFromModel converts a model match to its wire form
func MatchFromModel(m *model.Match) Match {
	resp := Match{
		Host:      string(m.Host),
		Opponent:  string(m.Opponent),
		HostMove:  string(m.HostMove),
		CreatedAt: m.CreatedAt,
	}
	if m.OppMove != nil {
		move := string(*m.OppMove)
		resp.OppMove = &move
	}
	if m.Result != nil {
		result := m.Result.Display()
		resp.Result = &result
	}
	return resp
}

// MatchesFromModel converts a slice of model matches
func MatchesFromModel(matches []*model.Match) []Match {
	resp := make([]Match, len(matches))
	for i, m := range matches {
		resp[i] = MatchFromModel(m)
	}
	return resp
}

// MatchListResponse wraps an ordered list of open matches
type MatchListResponse struct {
	Matches []Match `json:"matches"`
}

// RespondResponse carries the resolved outcome tag
type RespondResponse struct {
	Result string `json:"result"`
}

// OwnerResponse is the owner projection
type OwnerResponse struct {
	Owner string `json:"owner"`
}

// AdminResponse is the admin projection; Admin is null while unset
type AdminResponse struct {
	Admin *string `json:"admin"`
}

// BlacklistResponse is the current denylist in ascending order
type BlacklistResponse struct {
	Addresses []string `json:"addresses"`
}
