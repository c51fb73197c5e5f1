package table

import (
	"fmt"
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/palemoky/mybridge/internal/game/card"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/score"
)

// Snapshot 牌桌的完整可序列化状态，包括随机数状态
type Snapshot struct {
	ID           string                 `json:"id"`
	Rules        Rules                  `json:"rules"`
	Players      [rule.SeatCount]Player `json:"players"`
	Phase        Phase                  `json:"phase"`
	Deal         int                    `json:"deal"`
	StartIndex   int                    `json:"start_index"`
	DrawnTrump   *card.Suit             `json:"drawn_trump,omitempty"`
	LastTrump    *card.Suit             `json:"last_trump,omitempty"`
	Trump        rule.Strain            `json:"trump"`
	Auction      *rule.Auction          `json:"auction,omitempty"`
	Contract     *rule.Contract         `json:"contract,omitempty"`
	Trick        *rule.Trick            `json:"trick,omitempty"`
	TricksPlayed int                    `json:"tricks_played"`
	Current      rule.Seat              `json:"current"`
	Ledger       score.Ledger           `json:"ledger"`
	RNG          []byte                 `json:"rng"`
	Version      uint64                 `json:"version"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// Snapshot 深拷贝当前状态
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	rng, err := t.pcg.MarshalBinary()
	if err != nil {
		log.Panicf("marshal pcg: %v", err)
	}

	s := Snapshot{
		ID:           t.ID,
		Rules:        t.rules,
		Phase:        t.phase,
		Deal:         t.deal,
		StartIndex:   t.startIndex,
		Trump:        t.trump,
		TricksPlayed: t.tricksPlayed,
		Current:      t.current,
		Ledger:       *t.ledger,
		RNG:          rng,
		Version:      t.version,
		CreatedAt:    t.createdAt,
		UpdatedAt:    t.updatedAt,
	}
	for i, p := range t.players {
		s.Players[i] = Player{Seat: p.Seat, Name: p.Name, Hand: slices.Clone(p.Hand)}
		if p.Played != nil {
			c := *p.Played
			s.Players[i].Played = &c
		}
	}
	if t.drawnTrump != nil {
		d := *t.drawnTrump
		s.DrawnTrump = &d
	}
	if t.lastTrump != nil {
		l := *t.lastTrump
		s.LastTrump = &l
	}
	if t.auction != nil {
		s.Auction = t.auction.Clone()
	}
	if t.contract != nil {
		c := *t.contract
		s.Contract = &c
	}
	if t.trick != nil {
		s.Trick = t.trick.Clone()
	}
	return s
}

// Restore 从快照重建牌桌，listener 取自 opts，Seed 被忽略
func Restore(s Snapshot, opts Options) (*Table, error) {
	if err := s.Rules.Validate(); err != nil {
		return nil, err
	}
	switch s.Phase {
	case PhaseBidding:
		if s.Auction == nil {
			return nil, fmt.Errorf("叫牌阶段缺少叫牌记录")
		}
	case PhasePlaying:
		if s.Trick == nil {
			return nil, fmt.Errorf("打牌阶段缺少当前墩")
		}
	}

	pcg := &rand.PCG{}
	if err := pcg.UnmarshalBinary(s.RNG); err != nil {
		return nil, fmt.Errorf("恢复随机数状态失败: %w", err)
	}

	ledger := s.Ledger
	ledger.Rules = s.Rules.Score
	t := &Table{
		ID:           s.ID,
		rules:        s.Rules,
		pcg:          pcg,
		rng:          rand.New(pcg),
		listener:     opts.Listener,
		phase:        s.Phase,
		deal:         s.Deal,
		startIndex:   s.StartIndex,
		trump:        s.Trump,
		tricksPlayed: s.TricksPlayed,
		current:      s.Current,
		ledger:       &ledger,
		version:      s.Version,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
	for i := range s.Players {
		p := s.Players[i]
		p.Seat = rule.Seat(i)
		p.Hand = slices.Clone(p.Hand)
		t.players[i] = &p
	}
	if s.DrawnTrump != nil {
		d := *s.DrawnTrump
		t.drawnTrump = &d
	}
	switch {
	case s.LastTrump != nil:
		l := *s.LastTrump
		t.lastTrump = &l
	case s.DrawnTrump != nil:
		l := *s.DrawnTrump
		t.lastTrump = &l
	}
	if s.Auction != nil {
		t.auction = s.Auction.Clone()
	}
	if s.Contract != nil {
		c := *s.Contract
		t.contract = &c
	}
	if s.Trick != nil {
		t.trick = s.Trick.Clone()
	}
	return t, nil
}
