package rule

import (
	"log"
	"slices"

	"github.com/palemoky/mybridge/internal/game/card"
)

// Play 一墩中的一次出牌
type Play struct {
	Seat Seat      `json:"seat"`
	Card card.Card `json:"card"`
}

// Trick 一墩牌：每个座位各出一张
type Trick struct {
	Leader Seat   `json:"leader"`
	Trump  Strain `json:"trump"` // NoTrump 表示本局无将
	Plays  []Play `json:"plays"`
}

// NewTrick 创建由 leader 首攻的一墩
func NewTrick(leader Seat, trump Strain) *Trick {
	return &Trick{
		Leader: leader,
		Trump:  trump,
		Plays:  make([]Play, 0, SeatCount),
	}
}

// LedSuit 返回首攻花色
func (t *Trick) LedSuit() (card.Suit, bool) {
	if len(t.Plays) == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit, true
}

// Complete 四家是否都已出牌
func (t *Trick) Complete() bool {
	return len(t.Plays) == SeatCount
}

// Add 记录一次出牌，合法性由 CheckPlay 保证
func (t *Trick) Add(seat Seat, c card.Card) {
	if t.Complete() {
		log.Panicf("trick already has %d plays", len(t.Plays))
	}
	t.Plays = append(t.Plays, Play{Seat: seat, Card: c})
}

// Cards 返回本墩已出的牌
func (t *Trick) Cards() []Play {
	return slices.Clone(t.Plays)
}

// Clone 深拷贝
func (t *Trick) Clone() *Trick {
	cp := *t
	cp.Plays = slices.Clone(t.Plays)
	return &cp
}

// beats 判断 a 是否压过 b：将牌压非将牌，同为将牌或同为首攻花色比点数，
// 其他花色永远不赢
func beats(a, b card.Card, led card.Suit, trump Strain) bool {
	if trumpSuit, ok := trump.Suit(); ok {
		aTrump, bTrump := a.Suit == trumpSuit, b.Suit == trumpSuit
		switch {
		case aTrump && !bTrump:
			return true
		case bTrump && !aTrump:
			return false
		case aTrump && bTrump:
			return a.Rank > b.Rank
		}
	}
	if a.Suit == led && b.Suit != led {
		return true
	}
	if a.Suit == led && b.Suit == led {
		return a.Rank > b.Rank
	}
	return false
}

// Resolve 结算一墩，返回赢家。
// 不足四张或出现平局说明不变量被破坏，直接 panic
func (t *Trick) Resolve() Seat {
	if !t.Complete() {
		log.Panicf("resolve trick with %d plays", len(t.Plays))
	}

	led := t.Plays[0].Card.Suit
	best := 0
	for i := 1; i < len(t.Plays); i++ {
		if beats(t.Plays[i].Card, t.Plays[best].Card, led, t.Trump) {
			best = i
		}
	}

	winner := t.Plays[best]
	for i, p := range t.Plays {
		if i != best && p.Card == winner.Card {
			log.Panicf("trick tie between %s and %s", winner.Seat, p.Seat)
		}
	}
	return winner.Seat
}

// TrickState 出牌后的墩状态
type TrickState struct {
	Leader       Seat   `json:"leader"`
	Trump        Strain `json:"trump"`
	Plays        []Play `json:"plays"`
	Next         Seat   `json:"next"`
	Winner       *Seat  `json:"winner,omitempty"` // 本次出牌完成一墩时设置
	TricksPlayed int    `json:"tricks_played"`
}
