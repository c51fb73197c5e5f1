package table

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/palemoky/mybridge/internal/game/rule"
)

// ActionKind 动作类型
type ActionKind int

const (
	ActionBid ActionKind = iota
	ActionPass
	ActionPlay
)

// Action 一个座位的动作
type Action struct {
	Kind      ActionKind `json:"kind"`
	Bid       rule.Bid   `json:"bid,omitzero"`
	CardIndex int        `json:"card_index"`
}

func (a Action) String() string {
	switch a.Kind {
	case ActionBid:
		return "叫 " + a.Bid.String()
	case ActionPass:
		return "Pass"
	default:
		return fmt.Sprintf("出第 %d 张", a.CardIndex)
	}
}

// Policy 自动座位的决策，必须是同步的纯计算，延迟由调用方负责
type Policy interface {
	Decide(v View) Action
}

// PolicyFunc 函数形式的 Policy
type PolicyFunc func(v View) Action

func (f PolicyFunc) Decide(v View) Action { return f(v) }

// FirstLegal 最简单的托管：无人叫牌时叫最低，否则 Pass；出牌时出第一张合法的牌。
// 超时自动出牌也使用它
var FirstLegal Policy = PolicyFunc(firstLegal)

func firstLegal(v View) Action {
	if v.Phase == PhaseBidding {
		if v.Auction != nil && v.Auction.Highest == nil && v.MinimumBid != nil {
			return Action{Kind: ActionBid, Bid: *v.MinimumBid}
		}
		return Action{Kind: ActionPass}
	}
	if len(v.Legal) == 0 {
		return Action{Kind: ActionPlay}
	}
	return Action{Kind: ActionPlay, CardIndex: v.Legal[0]}
}

// randomMaxLevel 随机托管最多叫到的阶数
const randomMaxLevel = 3

// Random 随机托管：偶尔加叫一级，出牌随机选一张合法的牌
type Random struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewRandom 创建随机托管
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, pcgStream))}
}

func (r *Random) Decide(v View) Action {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.Phase == PhaseBidding {
		if v.MinimumBid != nil && v.MinimumBid.Level <= randomMaxLevel && r.rng.IntN(3) == 0 {
			return Action{Kind: ActionBid, Bid: *v.MinimumBid}
		}
		return Action{Kind: ActionPass}
	}
	if len(v.Legal) == 0 {
		return Action{Kind: ActionPlay}
	}
	return Action{Kind: ActionPlay, CardIndex: v.Legal[r.rng.IntN(len(v.Legal))]}
}
