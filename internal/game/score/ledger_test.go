package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mybridge/internal/game/rule"
)

// winTricks 让 team 连赢 n 墩
func winTricks(l *Ledger, team rule.Team, n int) {
	for range n {
		l.RecordTrick(team)
	}
}

func TestLedger_RecordTrick(t *testing.T) {
	t.Parallel()

	l := NewLedger(DefaultRules())
	assert.Equal(t, 20, l.RecordTrick(rule.TeamA))
	assert.Equal(t, 40, l.RecordTrick(rule.TeamA))
	assert.Equal(t, 20, l.RecordTrick(rule.TeamB))
	assert.Equal(t, [2]int{40, 20}, l.Round)
}

func TestLedger_FinalizeRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tricksA   int
		tricksB   int
		setWinner *rule.Team
		round     [2]int // 结算后的局分
	}{
		{"Below threshold carries over", 2, 3, nil, [2]int{40, 60}},
		{"Threshold wins set", 8, 5, new(rule.Team), [2]int{0, 0}},
		{"Tie above threshold carries over", 6, 6, nil, [2]int{120, 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := NewLedger(DefaultRules())
			winTricks(l, rule.TeamA, tt.tricksA)
			winTricks(l, rule.TeamB, tt.tricksB)

			out := l.FinalizeRound()
			assert.Equal(t, [2]int{tt.tricksA * 20, tt.tricksB * 20}, out.Round)
			assert.Equal(t, tt.round, l.Round)
			if tt.setWinner == nil {
				assert.Nil(t, out.SetWinner)
			} else {
				require.NotNil(t, out.SetWinner)
				assert.Equal(t, *tt.setWinner, *out.SetWinner)
			}
		})
	}
}

func TestLedger_RoundCarriesOver(t *testing.T) {
	t.Parallel()

	// 9 墩对 4 墩：B 方 180 分，未达门槛前一直累积
	l := NewLedger(Rules{PointsPerTrick: 20, SetThreshold: 200, SetsPerGame: 2, GamesPerMatch: 2})
	winTricks(l, rule.TeamB, 9)
	winTricks(l, rule.TeamA, 4)
	out := l.FinalizeRound()
	assert.Nil(t, out.SetWinner)

	winTricks(l, rule.TeamB, 1)
	out = l.FinalizeRound()
	require.NotNil(t, out.SetWinner)
	assert.Equal(t, rule.TeamB, *out.SetWinner)
	assert.Equal(t, [2]int{0, 1}, l.Set)
}

func TestLedger_Ladder(t *testing.T) {
	t.Parallel()

	l := NewLedger(DefaultRules())

	winSet := func(team rule.Team) RoundOutcome {
		winTricks(l, team, 5)
		return l.FinalizeRound()
	}

	out := winSet(rule.TeamA)
	assert.NotNil(t, out.SetWinner)
	assert.Nil(t, out.GameWinner)
	assert.Equal(t, [2]int{1, 0}, l.Set)

	out = winSet(rule.TeamB)
	assert.Nil(t, out.GameWinner)
	assert.Equal(t, [2]int{1, 1}, l.Set)

	out = winSet(rule.TeamA)
	require.NotNil(t, out.GameWinner)
	assert.Equal(t, rule.TeamA, *out.GameWinner)
	assert.Nil(t, out.MatchWinner)
	assert.Equal(t, [2]int{0, 0}, l.Set, "set ladder resets after a game")
	assert.Equal(t, [2]int{1, 0}, l.Game)

	winSet(rule.TeamA)
	out = winSet(rule.TeamA)
	require.NotNil(t, out.MatchWinner)
	assert.Equal(t, rule.TeamA, *out.MatchWinner)
	assert.Equal(t, [2]int{0, 0}, l.Round)
	assert.Equal(t, [2]int{0, 0}, l.Set)
	assert.Equal(t, [2]int{0, 0}, l.Game)
	assert.Equal(t, [2]int{1, 0}, l.Match)
}

func TestLedger_FinalizeGame(t *testing.T) {
	t.Parallel()

	l := NewLedger(DefaultRules())
	l.Game = [2]int{1, 1}
	assert.False(t, l.FinalizeGame(rule.TeamB))
	assert.Equal(t, [2]int{1, 1}, l.Game)

	l.Game[rule.TeamB] = 2
	assert.True(t, l.FinalizeGame(rule.TeamB))
	assert.Equal(t, [2]int{0, 0}, l.Game)
	assert.Equal(t, [2]int{0, 1}, l.Match)
}
