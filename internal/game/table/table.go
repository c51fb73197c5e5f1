package table

import (
	"fmt"
	"log"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/card"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/score"
)

// pcgStream PCG 第二个种子分量
const pcgStream = 0x9e3779b97f4a7c15

// Player 座位上的玩家
type Player struct {
	Seat   rule.Seat   `json:"seat"`
	Name   string      `json:"name"`
	Hand   []card.Card `json:"hand"`
	Played *card.Card  `json:"played,omitempty"` // 本墩已出的牌
}

// Options 创建牌桌的可选项
type Options struct {
	Seed     uint64   // 0 表示随机种子
	Listener Listener // 可为 nil
}

// Table 一张牌桌的完整状态，所有修改都在 mu 保护下进行
type Table struct {
	ID string

	rules    Rules
	players  [rule.SeatCount]*Player
	pcg      *rand.PCG
	rng      *rand.Rand
	listener Listener

	phase        Phase
	deal         int // 已发牌次数
	startIndex   int // 起始座位在出牌顺序中的偏移
	drawnTrump   *card.Suit
	lastTrump    *card.Suit // 下一次抽将牌时排除的花色
	trump        rule.Strain
	auction      *rule.Auction
	contract     *rule.Contract
	trick        *rule.Trick
	tricksPlayed int
	current      rule.Seat
	ledger       *score.Ledger

	version   uint64 // 每次状态变化加一，存储据此丢弃旧快照
	createdAt time.Time
	updatedAt time.Time

	mu sync.Mutex
}

// New 入座四名玩家，洗牌发牌并开始第一盘
func New(id string, names [rule.SeatCount]string, rules Rules, opts Options) (*Table, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	for _, name := range names {
		if name == "" {
			return nil, apperrors.ErrInvalidPlayers
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	pcg := rand.NewPCG(seed, pcgStream)

	now := time.Now()
	t := &Table{
		ID:        id,
		rules:     rules,
		pcg:       pcg,
		rng:       rand.New(pcg),
		listener:  opts.Listener,
		ledger:    score.NewLedger(rules.Score),
		createdAt: now,
		updatedAt: now,
	}
	for i, name := range names {
		t.players[i] = &Player{Seat: rule.Seat(i), Name: name}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.startDeal()
	return t, nil
}

func (t *Table) emit(e Event) {
	if t.listener != nil {
		t.listener(e)
	}
}

// startSeat 当前的起始座位
func (t *Table) startSeat() rule.Seat {
	return t.rules.PlayOrder.At(t.startIndex)
}

// startDeal 洗牌、发牌、抽将牌，进入叫牌或直接进入打牌
func (t *Table) startDeal() {
	deck := card.Shuffle(card.NewDeck(), t.rng)
	hands, err := card.Deal(deck)
	if err != nil {
		log.Panicf("deal generated deck: %v", err)
	}
	for i, p := range t.players {
		p.Hand = hands[i]
		p.Played = nil
	}

	drawn := drawTrump(t.rng, t.lastTrump)
	t.drawnTrump = &drawn
	last := drawn
	t.lastTrump = &last
	t.deal++
	t.tricksPlayed = 0
	t.contract = nil
	t.trick = nil
	t.auction = nil

	start := t.startSeat()
	t.emit(RoundDealt{Deal: t.deal, Start: start, DrawnTrump: drawn, Bidding: t.rules.Bidding})

	if !t.rules.Bidding {
		t.trump = rule.StrainOf(drawn)
		t.beginPlay(start)
		return
	}

	t.phase = PhaseBidding
	t.auction = rule.NewAuction(t.rules.PlayOrder, start)
	t.current = start
	t.emit(TurnChanged{Seat: start, Phase: PhaseBidding})
}

// redeal 轮换起始座位后重新发牌
func (t *Table) redeal() {
	t.startIndex = (t.startIndex + 1) % rule.SeatCount
	t.startDeal()
}

func (t *Table) beginPlay(leader rule.Seat) {
	t.phase = PhasePlaying
	t.trick = rule.NewTrick(leader, t.trump)
	t.current = leader
	for _, p := range t.players {
		p.Played = nil
	}
	t.emit(TurnChanged{Seat: leader, Phase: PhasePlaying})
}

func (t *Table) checkBidding() error {
	switch t.phase {
	case PhaseBidding:
		return nil
	case PhasePlaying:
		return apperrors.ErrBiddingClosed
	default:
		return apperrors.ErrWrongPhase
	}
}

// SubmitBid 座位叫牌
func (t *Table) SubmitBid(seat rule.Seat, bid rule.Bid) (rule.AuctionState, error) {
	return t.SubmitCall(rule.Call{Seat: seat, Bid: bid})
}

// SubmitPass 座位 Pass
func (t *Table) SubmitPass(seat rule.Seat) (rule.AuctionState, error) {
	return t.SubmitCall(rule.Call{Seat: seat, Pass: true})
}

// SubmitCall 提交叫牌或 Pass；被拒绝时状态不变
func (t *Table) SubmitCall(call rule.Call) (rule.AuctionState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.submitCall(call)
}

func (t *Table) submitCall(call rule.Call) (rule.AuctionState, error) {
	if err := t.checkBidding(); err != nil {
		return rule.AuctionState{}, err
	}
	if err := t.auction.Submit(call); err != nil {
		return t.auction.State(), err
	}
	t.touch()

	st := t.auction.State()
	accepted := st.Calls[len(st.Calls)-1]
	t.emit(BidAccepted{Call: accepted})

	if !t.auction.Done() {
		t.current = t.auction.Current
		t.emit(TurnChanged{Seat: t.current, Phase: PhaseBidding})
		return st, nil
	}

	t.finishAuction()
	return st, nil
}

// finishAuction 成约进入打牌，无定约则重新发牌
func (t *Table) finishAuction() {
	contract, ok := t.auction.Contract()
	if !ok {
		t.emit(BiddingEnded{Trump: rule.NoTrump})
		t.redeal()
		return
	}

	t.contract = &contract
	t.trump = contract.Trump()
	if suit, ok := t.trump.Suit(); ok {
		t.lastTrump = &suit
	}
	t.emit(BiddingEnded{Contract: &contract, Trump: t.trump})
	t.beginPlay(t.startSeat())
}

// SubmitPlay 座位打出手牌中第 cardIndex 张；被拒绝时状态不变
func (t *Table) SubmitPlay(seat rule.Seat, cardIndex int) (rule.TrickState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.submitPlay(seat, cardIndex)
}

func (t *Table) submitPlay(seat rule.Seat, cardIndex int) (rule.TrickState, error) {
	if t.phase != PhasePlaying {
		return rule.TrickState{}, apperrors.ErrWrongPhase
	}
	if !seat.Valid() {
		return t.trickState(nil), apperrors.ErrInvalidSeat
	}
	if seat != t.current {
		return t.trickState(nil), apperrors.ErrOutOfTurn
	}

	p := t.players[seat]
	if err := rule.CheckPlay(p.Hand, cardIndex, t.trick, t.rules.StrictFollowSuit); err != nil {
		return t.trickState(nil), err
	}

	played := p.Hand[cardIndex]
	p.Hand = card.RemoveAt(p.Hand, cardIndex)
	p.Played = &played
	t.trick.Add(seat, played)
	t.touch()
	t.emit(CardPlayed{Seat: seat, Card: played})

	if !t.trick.Complete() {
		t.current = t.rules.PlayOrder.Next(seat)
		t.emit(TurnChanged{Seat: t.current, Phase: PhasePlaying})
		return t.trickState(nil), nil
	}

	winner := t.trick.Resolve()
	t.tricksPlayed++
	t.ledger.RecordTrick(winner.Team())
	st := t.trickState(&winner)
	t.emit(TrickResolved{
		Winner:       winner,
		Team:         winner.Team(),
		Plays:        t.trick.Cards(),
		Round:        t.ledger.Round,
		TricksPlayed: t.tricksPlayed,
	})

	if t.tricksPlayed == card.HandSize {
		t.finishRound()
		return st, nil
	}

	t.beginPlay(winner)
	return st, nil
}

func (t *Table) trickState(winner *rule.Seat) rule.TrickState {
	return rule.TrickState{
		Leader:       t.trick.Leader,
		Trump:        t.trick.Trump,
		Plays:        t.trick.Cards(),
		Next:         t.current,
		Winner:       winner,
		TricksPlayed: t.tricksPlayed,
	}
}

// finishRound 13 墩打完，推进计分阶梯后重新发牌
func (t *Table) finishRound() {
	out := t.ledger.FinalizeRound()
	t.emit(RoundFinalized{Round: out.Round, Set: t.ledger.Set, Game: t.ledger.Game})

	if out.SetWinner != nil {
		t.emit(SetWon{Team: *out.SetWinner, Set: t.ledger.Set})
	}
	if out.GameWinner != nil {
		t.emit(GameWon{Team: *out.GameWinner, Game: t.ledger.Game})
	}
	if out.MatchWinner != nil {
		log.Printf("🏆 牌桌 %s 比赛结束，%s 获胜", t.ID, *out.MatchWinner)
		t.emit(MatchWon{Team: *out.MatchWinner, Match: t.ledger.Match})
	}

	t.redeal()
}

// Apply 执行一个动作
func (t *Table) Apply(seat rule.Seat, a Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.apply(seat, a)
}

func (t *Table) apply(seat rule.Seat, a Action) error {
	var err error
	switch a.Kind {
	case ActionBid:
		_, err = t.submitCall(rule.Call{Seat: seat, Bid: a.Bid})
	case ActionPass:
		_, err = t.submitCall(rule.Call{Seat: seat, Pass: true})
	case ActionPlay:
		_, err = t.submitPlay(seat, a.CardIndex)
	default:
		err = fmt.Errorf("未知动作: %d", a.Kind)
	}
	return err
}

// Auto 由 policy 代替当前座位行动，返回执行的动作
func (t *Table) Auto(seat rule.Seat, p Policy) (Action, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase == PhaseClosed {
		return Action{}, apperrors.ErrWrongPhase
	}
	if seat != t.current {
		return Action{}, apperrors.ErrOutOfTurn
	}
	a := p.Decide(t.view(seat))
	return a, t.apply(seat, a)
}

// Close 解散牌桌，之后的操作都会被拒绝
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phase = PhaseClosed
	t.touch()
}

func (t *Table) touch() {
	t.version++
	t.updatedAt = time.Now()
}

// Turn 返回当前阶段和行动座位
func (t *Table) Turn() (Phase, rule.Seat) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase, t.current
}

// Ledger 返回计分副本
func (t *Table) Ledger() score.Ledger {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.ledger
}

// Names 返回各座位玩家名
func (t *Table) Names() [rule.SeatCount]string {
	var names [rule.SeatCount]string
	for i, p := range t.players {
		names[i] = p.Name
	}
	return names
}

// Hand 返回座位手牌副本
func (t *Table) Hand(seat rule.Seat) []card.Card {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !seat.Valid() {
		return nil
	}
	return slices.Clone(t.players[seat].Hand)
}

// LegalPlays 返回座位当前可出牌的下标，不是该座位出牌时返回 nil
func (t *Table) LegalPlays(seat rule.Seat) []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.legalPlays(seat)
}

func (t *Table) legalPlays(seat rule.Seat) []int {
	if t.phase != PhasePlaying || seat != t.current {
		return nil
	}
	return rule.LegalPlays(t.players[seat].Hand, t.trick, t.rules.StrictFollowSuit)
}

// Version 状态版本号，只增不减
func (t *Table) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

// UpdatedAt 最后一次状态变化的时间
func (t *Table) UpdatedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updatedAt
}
