package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		hostMove Move
		oppMove  Move
		expected Result
	}{
		{"rock ties rock", MoveRock, MoveRock, ResultTie},
		{"paper ties paper", MovePaper, MovePaper, ResultTie},
		{"scissors ties scissors", MoveScissors, MoveScissors, ResultTie},
		{"rock beats scissors", MoveRock, MoveScissors, ResultHostWins},
		{"scissors beats paper", MoveScissors, MovePaper, ResultHostWins},
		{"paper beats rock", MovePaper, MoveRock, ResultHostWins},
		{"scissors loses to rock", MoveScissors, MoveRock, ResultOpponentWins},
		{"paper loses to scissors", MovePaper, MoveScissors, ResultOpponentWins},
		{"rock loses to paper", MoveRock, MovePaper, ResultOpponentWins},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.hostMove, tt.oppMove))
		})
	}
}

func TestResolveAntisymmetry(t *testing.T) {
	// Swapping the players flips a win into a loss and keeps a tie a tie
	moves := []Move{MoveRock, MovePaper, MoveScissors}
	for _, a := range moves {
		for _, b := range moves {
			forward := Resolve(a, b)
			backward := Resolve(b, a)

			switch forward {
			case ResultTie:
				assert.Equal(t, ResultTie, backward)
			case ResultHostWins:
				assert.Equal(t, ResultOpponentWins, backward)
			case ResultOpponentWins:
				assert.Equal(t, ResultHostWins, backward)
			}
		}
	}
}

func TestMatchResolve(t *testing.T) {
	m := NewMatch("alice", "bob", MoveRock, time.Now())

	_, err := m.Resolve()
	assert.ErrorIs(t, err, ErrUnexpectedGameResult)

	oppMove := MoveScissors
	m.OppMove = &oppMove

	result, err := m.Resolve()
	require.NoError(t, err)
	assert.Equal(t, ResultHostWins, result)
}

func TestMatchIsOpen(t *testing.T) {
	m := NewMatch("alice", "bob", MovePaper, time.Now())
	assert.True(t, m.IsOpen())

	oppMove := MoveRock
	m.OppMove = &oppMove
	assert.False(t, m.IsOpen())
}

func TestParseMove(t *testing.T) {
	for _, valid := range []string{"rock", "paper", "scissors"} {
		move, err := ParseMove(valid)
		require.NoError(t, err)
		assert.Equal(t, Move(valid), move)
	}

	for _, invalid := range []string{"", "Rock", "lizard", "spock", "rock "} {
		_, err := ParseMove(invalid)
		assert.ErrorIs(t, err, ErrInvalidMove, "move %q should be invalid", invalid)
	}
}

func TestResultDisplay(t *testing.T) {
	assert.Equal(t, "Host Wins", ResultHostWins.Display())
	assert.Equal(t, "Opponent Wins", ResultOpponentWins.Display())
	assert.Equal(t, "Tie", ResultTie.Display())
}
