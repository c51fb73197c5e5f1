package table

import (
	"fmt"

	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/score"
)

// Rules 牌桌规则
type Rules struct {
	Score            score.Rules `json:"score"`
	StrictFollowSuit bool        `json:"strict_follow_suit"` // 严格跟牌：有首攻花色必须跟
	Bidding          bool        `json:"bidding"`            // 关闭时跳过叫牌，直接使用抽到的将牌
	PlayOrder        rule.Order  `json:"play_order"`
}

// DefaultRules 默认规则
func DefaultRules() Rules {
	return Rules{
		Score:     score.DefaultRules(),
		Bidding:   true,
		PlayOrder: rule.DefaultOrder,
	}
}

// Validate 检查规则是否可用
func (r Rules) Validate() error {
	if !r.PlayOrder.Valid() {
		return fmt.Errorf("出牌顺序不是座位的排列: %v", r.PlayOrder)
	}
	if r.Score.PointsPerTrick <= 0 {
		return fmt.Errorf("每墩分数必须为正: %d", r.Score.PointsPerTrick)
	}
	if r.Score.SetThreshold <= 0 || r.Score.SetsPerGame <= 0 || r.Score.GamesPerMatch <= 0 {
		return fmt.Errorf("晋级门槛必须为正: %+v", r.Score)
	}
	return nil
}
