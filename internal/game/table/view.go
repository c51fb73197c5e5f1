package table

import (
	"slices"

	"github.com/palemoky/mybridge/internal/game/card"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/score"
)

// View 某个座位能看到的牌桌状态，用于断线重连和自动出牌
type View struct {
	TableID      string                     `json:"table_id"`
	Seat         rule.Seat                  `json:"seat"`
	Names        [rule.SeatCount]string     `json:"names"`
	Phase        Phase                      `json:"phase"`
	Current      rule.Seat                  `json:"current"`
	Deal         int                        `json:"deal"`
	Hand         []card.Card                `json:"hand"`
	HandSizes    [rule.SeatCount]int        `json:"hand_sizes"`
	Played       [rule.SeatCount]*card.Card `json:"played"`
	DrawnTrump   *card.Suit                 `json:"drawn_trump,omitempty"`
	Trump        *rule.Strain               `json:"trump,omitempty"` // 叫牌结束前为 nil
	Contract     *rule.Contract             `json:"contract,omitempty"`
	Auction      *rule.AuctionState         `json:"auction,omitempty"`
	MinimumBid   *rule.Bid                  `json:"minimum_bid,omitempty"`
	Trick        *rule.Trick                `json:"trick,omitempty"`
	Legal        []int                      `json:"legal,omitempty"`
	TricksPlayed int                        `json:"tricks_played"`
	Ledger       score.Ledger               `json:"ledger"`
}

// View 返回 seat 视角的状态；seat 无效时不含手牌
func (t *Table) View(seat rule.Seat) View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view(seat)
}

func (t *Table) view(seat rule.Seat) View {
	v := View{
		TableID:      t.ID,
		Seat:         seat,
		Names:        t.Names(),
		Phase:        t.phase,
		Current:      t.current,
		Deal:         t.deal,
		TricksPlayed: t.tricksPlayed,
		Ledger:       *t.ledger,
	}
	for i, p := range t.players {
		v.HandSizes[i] = len(p.Hand)
		if p.Played != nil {
			c := *p.Played
			v.Played[i] = &c
		}
	}
	if seat.Valid() {
		v.Hand = slices.Clone(t.players[seat].Hand)
	}
	if t.drawnTrump != nil {
		s := *t.drawnTrump
		v.DrawnTrump = &s
	}

	switch t.phase {
	case PhaseBidding:
		st := t.auction.State()
		v.Auction = &st
		if b, ok := t.auction.MinimumBid(); ok {
			v.MinimumBid = &b
		}
	case PhasePlaying:
		trump := t.trump
		v.Trump = &trump
		v.Trick = t.trick.Clone()
		v.Legal = t.legalPlays(seat)
		if t.contract != nil {
			c := *t.contract
			v.Contract = &c
		}
	}
	return v
}
