package rule

import (
	"slices"

	"github.com/palemoky/mybridge/internal/apperrors"
)

// AuctionPhase 叫牌状态机的状态
type AuctionPhase int

const (
	AwaitingBid AuctionPhase = iota
	ContractSet
	NoContract
)

var auctionPhaseNames = map[AuctionPhase]string{
	AwaitingBid: "awaiting_bid",
	ContractSet: "contract_set",
	NoContract:  "no_contract",
}

func (p AuctionPhase) String() string {
	return auctionPhaseNames[p]
}

// Auction 一轮叫牌。连续 Pass 达到座位数时结束：
// 之前有过叫牌则成约，否则无定约
type Auction struct {
	Order   Order        `json:"order"`
	Current Seat         `json:"current"`
	Phase   AuctionPhase `json:"phase"`
	Passes  int          `json:"passes"` // 连续 Pass 次数
	Highest *Call        `json:"highest,omitempty"`
	Calls   []Call       `json:"calls"` // 只追加
}

// AuctionState 叫牌状态的只读副本
type AuctionState struct {
	Phase   AuctionPhase `json:"phase"`
	Current Seat         `json:"current"`
	Passes  int          `json:"passes"`
	Highest *Call        `json:"highest,omitempty"`
	Calls   []Call       `json:"calls"`
}

// NewAuction 从 opener 开始叫牌
func NewAuction(order Order, opener Seat) *Auction {
	return &Auction{
		Order:   order,
		Current: opener,
		Phase:   AwaitingBid,
		Calls:   make([]Call, 0, 8),
	}
}

func (a *Auction) checkTurn(seat Seat) error {
	if a.Phase != AwaitingBid {
		return apperrors.ErrBiddingClosed
	}
	if !seat.Valid() {
		return apperrors.ErrInvalidSeat
	}
	if seat != a.Current {
		return apperrors.ErrOutOfTurn
	}
	return nil
}

// SubmitBid 处理叫牌，叫牌必须严格高于当前最高叫牌
func (a *Auction) SubmitBid(seat Seat, bid Bid) error {
	if err := a.checkTurn(seat); err != nil {
		return err
	}
	if !bid.Valid() {
		return apperrors.ErrInvalidBid
	}
	if a.Highest != nil && !bid.Higher(a.Highest.Bid) {
		return apperrors.ErrInvalidBid
	}

	call := Call{Seat: seat, Bid: bid}
	a.Calls = append(a.Calls, call)
	a.Highest = &call
	a.Passes = 0
	a.Current = a.Order.Next(seat)
	return nil
}

// SubmitPass 处理 Pass
func (a *Auction) SubmitPass(seat Seat) error {
	if err := a.checkTurn(seat); err != nil {
		return err
	}

	a.Calls = append(a.Calls, Call{Seat: seat, Pass: true})
	a.Passes++
	a.Current = a.Order.Next(seat)

	if a.Passes >= SeatCount {
		if a.Highest != nil {
			a.Phase = ContractSet
		} else {
			a.Phase = NoContract
		}
	}
	return nil
}

// Submit 按 Call 分派到 SubmitBid 或 SubmitPass
func (a *Auction) Submit(call Call) error {
	if call.Pass {
		return a.SubmitPass(call.Seat)
	}
	return a.SubmitBid(call.Seat, call.Bid)
}

// Contract 返回定约；未成约返回 false
func (a *Auction) Contract() (Contract, bool) {
	if a.Phase != ContractSet || a.Highest == nil {
		return Contract{}, false
	}
	return Contract{Bid: a.Highest.Bid, Declarer: a.Highest.Seat}, true
}

// Clone 深拷贝
func (a *Auction) Clone() *Auction {
	cp := *a
	cp.Calls = slices.Clone(a.Calls)
	if a.Highest != nil {
		h := *a.Highest
		cp.Highest = &h
	}
	return &cp
}

// Done 叫牌是否结束
func (a *Auction) Done() bool {
	return a.Phase != AwaitingBid
}

// State 返回状态副本
func (a *Auction) State() AuctionState {
	st := AuctionState{
		Phase:   a.Phase,
		Current: a.Current,
		Passes:  a.Passes,
		Calls:   slices.Clone(a.Calls),
	}
	if a.Highest != nil {
		h := *a.Highest
		st.Highest = &h
	}
	return st
}

// MinimumBid 返回当前可以叫的最低叫牌；已叫到 7NT 返回 false
func (a *Auction) MinimumBid() (Bid, bool) {
	if a.Highest == nil {
		return Bid{Level: MinLevel, Strain: StrainClubs}, true
	}
	h := a.Highest.Bid
	if h.Strain < NoTrump {
		return Bid{Level: h.Level, Strain: h.Strain + 1}, true
	}
	if h.Level < MaxLevel {
		return Bid{Level: h.Level + 1, Strain: StrainClubs}, true
	}
	return Bid{}, false
}
