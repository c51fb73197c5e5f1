package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/card"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/score"
)

func cd(s card.Suit, r card.Rank) card.Card {
	return card.Card{Suit: s, Rank: r}
}

// midTrick 构造一个打牌中的牌桌：座位 0 已首攻 led，轮到座位 1
func midTrick(t *testing.T, strict bool, trump rule.Strain, led card.Card, hand1 []card.Card) (*Table, *recorder) {
	t.Helper()

	rules := DefaultRules()
	rules.Bidding = false
	rules.StrictFollowSuit = strict
	tb, _ := newTestTable(t, rules, 31)

	snap := tb.Snapshot()
	snap.Trump = trump
	snap.Trick = &rule.Trick{Leader: 0, Trump: trump, Plays: []rule.Play{{Seat: 0, Card: led}}}
	snap.Current = 1
	snap.Players[0].Hand = []card.Card{cd(card.Spades, card.Rank5)}
	snap.Players[0].Played = &led
	snap.Players[1].Hand = hand1

	rec := &recorder{}
	restored, err := Restore(snap, Options{Listener: rec.listen})
	require.NoError(t, err)
	return restored, rec
}

func TestTable_FaithfulRevokeAsymmetry(t *testing.T) {
	t.Parallel()

	led := cd(card.Clubs, card.Rank10)

	// 持有将牌时垫其他花色是违规
	tb, _ := midTrick(t, false, rule.StrainHearts, led,
		[]card.Card{cd(card.Spades, card.Rank2), cd(card.Clubs, card.Rank4), cd(card.Hearts, card.Rank3)})
	st, err := tb.SubmitPlay(1, 0)
	assert.ErrorIs(t, err, apperrors.ErrRevokeViolation)
	assert.Len(t, st.Plays, 1)
	assert.Len(t, tb.Hand(1), 3)
	assert.Equal(t, []int{1, 2}, tb.LegalPlays(1))

	// 没有将牌时即使有首攻花色也可以垫牌
	tb, rec := midTrick(t, false, rule.StrainHearts, led,
		[]card.Card{cd(card.Spades, card.Rank2), cd(card.Clubs, card.Rank4)})
	st, err = tb.SubmitPlay(1, 0)
	require.NoError(t, err)
	assert.Len(t, st.Plays, 2)
	assert.Equal(t, rule.Seat(2), st.Next)
	assert.Equal(t, []string{KindCardPlayed, KindTurnChanged}, rec.kinds())
	assert.Equal(t, CardPlayed{Seat: 1, Card: cd(card.Spades, card.Rank2)}, rec.events[0])
}

func TestTable_StrictFollowSuit(t *testing.T) {
	t.Parallel()

	led := cd(card.Clubs, card.Rank10)
	tb, _ := midTrick(t, true, rule.StrainHearts, led,
		[]card.Card{cd(card.Spades, card.Rank2), cd(card.Clubs, card.Rank4)})

	_, err := tb.SubmitPlay(1, 0)
	assert.ErrorIs(t, err, apperrors.ErrRevokeViolation)
	assert.Equal(t, []int{1}, tb.LegalPlays(1))

	_, err = tb.SubmitPlay(1, 1)
	assert.NoError(t, err)
}

// lastTrick 构造第 13 墩只差座位 3 出牌的牌桌，座位 0 的 A 将赢下这一墩
func lastTrick(t *testing.T, ledger score.Ledger) (*Table, *recorder) {
	t.Helper()

	rules := DefaultRules()
	rules.Bidding = false
	tb, _ := newTestTable(t, rules, 41)

	snap := tb.Snapshot()
	snap.Trump = rule.NoTrump
	snap.Trick = &rule.Trick{Leader: 0, Trump: rule.NoTrump, Plays: []rule.Play{
		{Seat: 0, Card: cd(card.Clubs, card.RankA)},
		{Seat: 1, Card: cd(card.Clubs, card.Rank2)},
		{Seat: 2, Card: cd(card.Clubs, card.Rank3)},
	}}
	snap.TricksPlayed = card.HandSize - 1
	snap.Current = 3
	for i := range snap.Players {
		snap.Players[i].Hand = []card.Card{}
	}
	snap.Players[3].Hand = []card.Card{cd(card.Clubs, card.Rank4)}
	ledger.Rules = snap.Ledger.Rules
	snap.Ledger = ledger

	rec := &recorder{}
	restored, err := Restore(snap, Options{Listener: rec.listen})
	require.NoError(t, err)
	return restored, rec
}

func TestTable_RoundCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ledger   score.Ledger
		kinds    []string
		expected score.Ledger
	}{
		{
			name:     "Below threshold carries over",
			ledger:   score.Ledger{Round: [2]int{20, 40}},
			kinds:    []string{KindCardPlayed, KindTrickResolved, KindRoundFinalized, KindRoundDealt},
			expected: score.Ledger{Round: [2]int{40, 40}},
		},
		{
			name:     "Set won",
			ledger:   score.Ledger{Round: [2]int{80, 40}},
			kinds:    []string{KindCardPlayed, KindTrickResolved, KindRoundFinalized, KindSetWon, KindRoundDealt},
			expected: score.Ledger{Set: [2]int{1, 0}},
		},
		{
			name:     "Game won",
			ledger:   score.Ledger{Round: [2]int{80, 40}, Set: [2]int{1, 1}},
			kinds:    []string{KindCardPlayed, KindTrickResolved, KindRoundFinalized, KindSetWon, KindGameWon, KindRoundDealt},
			expected: score.Ledger{Game: [2]int{1, 0}},
		},
		{
			name:     "Match won resets the ladder",
			ledger:   score.Ledger{Round: [2]int{80, 40}, Set: [2]int{1, 0}, Game: [2]int{1, 1}},
			kinds:    []string{KindCardPlayed, KindTrickResolved, KindRoundFinalized, KindSetWon, KindGameWon, KindMatchWon, KindRoundDealt},
			expected: score.Ledger{Match: [2]int{1, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tb, rec := lastTrick(t, tt.ledger)
			st, err := tb.SubmitPlay(3, 0)
			require.NoError(t, err)
			require.NotNil(t, st.Winner)
			assert.Equal(t, rule.Seat(0), *st.Winner)
			assert.Equal(t, card.HandSize, st.TricksPlayed)

			// 去掉新一副牌开始后的 TurnChanged
			kinds := rec.kinds()
			require.GreaterOrEqual(t, len(kinds), 1)
			assert.Equal(t, tt.kinds, kinds[:len(kinds)-1])
			assert.Equal(t, KindTurnChanged, kinds[len(kinds)-1])

			resolved := rec.events[1].(TrickResolved)
			assert.Equal(t, rule.TeamA, resolved.Team)
			assert.Len(t, resolved.Plays, rule.SeatCount)

			got := tb.Ledger()
			assert.Equal(t, tt.expected.Round, got.Round)
			assert.Equal(t, tt.expected.Set, got.Set)
			assert.Equal(t, tt.expected.Game, got.Game)
			assert.Equal(t, tt.expected.Match, got.Match)

			v := tb.View(0)
			assert.Equal(t, 2, v.Deal)
			assert.Equal(t, [rule.SeatCount]int{13, 13, 13, 13}, v.HandSizes)
			assert.Equal(t, 0, v.TricksPlayed)
		})
	}
}
