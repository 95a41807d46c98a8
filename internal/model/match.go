package model

import (
	"fmt"
	"time"
)

// Move is one of the three playable moves
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

// ParseMove validates a raw move string
func ParseMove(s string) (Move, error) {
	switch Move(s) {
	case MoveRock, MovePaper, MoveScissors:
		return Move(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
}

// Result is the outcome of a resolved match, from the host's perspective
type Result string

const (
	ResultHostWins     Result = "host_wins"
	ResultOpponentWins Result = "opponent_wins"
	ResultTie          Result = "tie"
)

// Display returns the human-readable result tag
func (r Result) Display() string {
	switch r {
	case ResultHostWins:
		return "Host Wins"
	case ResultOpponentWins:
		return "Opponent Wins"
	case ResultTie:
		return "Tie"
	default:
		return string(r)
	}
}

// Match is one open or resolving two-party rock-paper-scissors record,
// keyed by the ordered (host, opponent) pair
type Match struct {
	Host     Identity `json:"host"`
	Opponent Identity `json:"opponent"`
	HostMove Move     `json:"host_move"`

	// OppMove and Result are both nil until the opponent responds;
	// they are set together, never independently
	OppMove *Move   `json:"opp_move,omitempty"`
	Result  *Result `json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewMatch creates an open match awaiting the opponent's response
func NewMatch(host, opponent Identity, hostMove Move, now time.Time) *Match {
	return &Match{
		Host:      host,
		Opponent:  opponent,
		HostMove:  hostMove,
		CreatedAt: now,
	}
}

// IsOpen reports whether the match is still awaiting a response
func (m *Match) IsOpen() bool {
	return m.OppMove == nil
}

// Resolve computes the match outcome from the stored moves.
// Returns ErrUnexpectedGameResult if the opponent has not moved yet.
func (m *Match) Resolve() (Result, error) {
	if m.OppMove == nil {
		return "", ErrUnexpectedGameResult
	}
	return Resolve(m.HostMove, *m.OppMove), nil
}

// Resolve maps a pair of moves to an outcome. Total over the nine move
// pairs: identical moves tie, rock beats scissors, scissors beats paper,
// paper beats rock.
func Resolve(hostMove, oppMove Move) Result {
	if hostMove == oppMove {
		return ResultTie
	}

	hostWins := (hostMove == MoveRock && oppMove == MoveScissors) ||
		(hostMove == MoveScissors && oppMove == MovePaper) ||
		(hostMove == MovePaper && oppMove == MoveRock)

	if hostWins {
		return ResultHostWins
	}
	return ResultOpponentWins
}
