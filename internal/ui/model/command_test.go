package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/card"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Suit: card.Clubs, Rank: card.Rank2},
		{Suit: card.Hearts, Rank: card.Rank10},
		{Suit: card.Spades, Rank: card.RankA},
	}

	tests := []struct {
		name     string
		input    string
		phase    table.Phase
		expected Command
	}{
		{"Quit", "quit", table.PhaseBidding, Command{Kind: CmdQuit}},
		{"Help", " HELP ", table.PhasePlaying, Command{Kind: CmdHelp}},
		{"Mute", "m", table.PhasePlaying, Command{Kind: CmdMute}},
		{"Pass", "pass", table.PhaseBidding, Command{Action: table.Action{Kind: table.ActionPass}}},
		{"Short pass", "p", table.PhaseBidding, Command{Action: table.Action{Kind: table.ActionPass}}},
		{"Bid verb", "bid 3nt", table.PhaseBidding, Command{Action: table.Action{Kind: table.ActionBid, Bid: rule.Bid{Level: 3, Strain: rule.NoTrump}}}},
		{"Bare bid", "2H", table.PhaseBidding, Command{Action: table.Action{Kind: table.ActionBid, Bid: rule.Bid{Level: 2, Strain: rule.StrainHearts}}}},
		{"Play by code", "play 10h", table.PhasePlaying, Command{Action: table.Action{Kind: table.ActionPlay, CardIndex: 1}}},
		{"Bare card", "AS", table.PhasePlaying, Command{Action: table.Action{Kind: table.ActionPlay, CardIndex: 2}}},
		{"Bare index", "1", table.PhasePlaying, Command{Action: table.Action{Kind: table.ActionPlay, CardIndex: 0}}},
		{"Card code in bidding", "play 2c", table.PhaseBidding, Command{Action: table.Action{Kind: table.ActionPlay, CardIndex: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd, err := ParseCommand(tt.input, tt.phase, hand)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cmd)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	t.Parallel()

	hand := []card.Card{{Suit: card.Clubs, Rank: card.Rank2}}

	tests := []struct {
		name  string
		input string
		phase table.Phase
		is    error
	}{
		{name: "Empty", input: "   ", phase: table.PhaseBidding, is: errEmptyInput},
		{name: "Bid level out of range", input: "8NT", phase: table.PhaseBidding},
		{name: "Bid without argument", input: "bid", phase: table.PhaseBidding},
		{name: "Unknown strain", input: "1X", phase: table.PhaseBidding},
		{name: "Card not held", input: "AS", phase: table.PhasePlaying, is: apperrors.ErrCardNotInHand},
		{name: "Index out of range", input: "play 2", phase: table.PhasePlaying, is: apperrors.ErrCardNotInHand},
		{name: "Zero index", input: "0", phase: table.PhasePlaying, is: apperrors.ErrCardNotInHand},
		{name: "Trailing words", input: "2c now", phase: table.PhasePlaying},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCommand(tt.input, tt.phase, hand)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}
