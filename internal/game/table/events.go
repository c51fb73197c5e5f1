package table

import (
	"github.com/palemoky/mybridge/internal/game/card"
	"github.com/palemoky/mybridge/internal/game/rule"
)

// 事件类型名，与网关消息类型一致
const (
	KindRoundDealt     = "round_dealt"
	KindTurnChanged    = "turn"
	KindBidAccepted    = "bid_accepted"
	KindBiddingEnded   = "bidding_ended"
	KindCardPlayed     = "card_played"
	KindTrickResolved  = "trick_resolved"
	KindRoundFinalized = "round_finalized"
	KindSetWon         = "set_won"
	KindGameWon        = "game_won"
	KindMatchWon       = "match_won"
)

// Event 牌桌对外发布的事件，只能是本包定义的类型
type Event interface {
	Kind() string
	isEvent()
}

// Listener 事件回调，在牌桌锁内调用，不能回调牌桌
type Listener func(Event)

// RoundDealt 新一副牌已发完
type RoundDealt struct {
	Deal       int       `json:"deal"` // 第几次发牌
	Start      rule.Seat `json:"start"`
	DrawnTrump card.Suit `json:"drawn_trump"`
	Bidding    bool      `json:"bidding"`
}

// TurnChanged 轮到某个座位行动
type TurnChanged struct {
	Seat  rule.Seat `json:"seat"`
	Phase Phase     `json:"phase"`
}

// BidAccepted 叫牌或 Pass 被接受
type BidAccepted struct {
	Call rule.Call `json:"call"`
}

// BiddingEnded 叫牌结束；Contract 为 nil 表示无定约，将重新发牌
type BiddingEnded struct {
	Contract *rule.Contract `json:"contract,omitempty"`
	Trump    rule.Strain    `json:"trump"`
}

// CardPlayed 某座位出了一张牌
type CardPlayed struct {
	Seat rule.Seat `json:"seat"`
	Card card.Card `json:"card"`
}

// TrickResolved 一墩结算完毕
type TrickResolved struct {
	Winner       rule.Seat   `json:"winner"`
	Team         rule.Team   `json:"team"`
	Plays        []rule.Play `json:"plays"`
	Round        [2]int      `json:"round"`
	TricksPlayed int         `json:"tricks_played"`
}

// RoundFinalized 一局（13 墩）打完后的计分
type RoundFinalized struct {
	Round [2]int `json:"round"` // 结算前的局分
	Set   [2]int `json:"set"`
	Game  [2]int `json:"game"`
}

// SetWon 某方赢得一盘
type SetWon struct {
	Team rule.Team `json:"team"`
	Set  [2]int    `json:"set"`
}

// GameWon 某方赢得一场
type GameWon struct {
	Team rule.Team `json:"team"`
	Game [2]int    `json:"game"`
}

// MatchWon 某方赢得比赛，阶梯归零
type MatchWon struct {
	Team  rule.Team `json:"team"`
	Match [2]int    `json:"match"`
}

func (RoundDealt) Kind() string { return KindRoundDealt }
func (TurnChanged) Kind() string { return KindTurnChanged }
func (BidAccepted) Kind() string { return KindBidAccepted }
func (BiddingEnded) Kind() string { return KindBiddingEnded }
func (CardPlayed) Kind() string { return KindCardPlayed }
func (TrickResolved) Kind() string { return KindTrickResolved }
func (RoundFinalized) Kind() string { return KindRoundFinalized }
func (SetWon) Kind() string { return KindSetWon }
func (GameWon) Kind() string { return KindGameWon }
func (MatchWon) Kind() string { return KindMatchWon }

func (RoundDealt) isEvent() {}
func (TurnChanged) isEvent() {}
func (BidAccepted) isEvent() {}
func (BiddingEnded) isEvent() {}
func (CardPlayed) isEvent() {}
func (TrickResolved) isEvent() {}
func (RoundFinalized) isEvent() {}
func (SetWon) isEvent() {}
func (GameWon) isEvent() {}
func (MatchWon) isEvent() {}
