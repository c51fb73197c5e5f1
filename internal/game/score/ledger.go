package score

import "github.com/palemoky/mybridge/internal/game/rule"

// Rules 计分阶梯的门槛
type Rules struct {
	PointsPerTrick int `json:"points_per_trick"`
	SetThreshold   int `json:"set_threshold"`   // 赢一盘所需的局分
	SetsPerGame    int `json:"sets_per_game"`   // 赢一场所需的盘数
	GamesPerMatch  int `json:"games_per_match"` // 赢一轮比赛所需的场数
}

// DefaultRules 每墩 20 分，100 分一盘，两盘一场，两场一轮
func DefaultRules() Rules {
	return Rules{
		PointsPerTrick: 20,
		SetThreshold:   100,
		SetsPerGame:    2,
		GamesPerMatch:  2,
	}
}

// Ledger 双方的分数阶梯：局分 → 盘 → 场 → 比赛
type Ledger struct {
	Rules Rules  `json:"rules"`
	Round [2]int `json:"round"`
	Set   [2]int `json:"set"`
	Game  [2]int `json:"game"`
	Match [2]int `json:"match"` // 赢得的比赛数，不随阶梯重置
}

// RoundOutcome 一局结束后的结算结果，未发生的晋级为 nil
type RoundOutcome struct {
	Round       [2]int     `json:"round"` // 结算前的局分
	SetWinner   *rule.Team `json:"set_winner,omitempty"`
	GameWinner  *rule.Team `json:"game_winner,omitempty"`
	MatchWinner *rule.Team `json:"match_winner,omitempty"`
}

// NewLedger 创建空账本
func NewLedger(rules Rules) *Ledger {
	return &Ledger{Rules: rules}
}

// RecordTrick 赢墩方加分，返回加分后的局分
func (l *Ledger) RecordTrick(team rule.Team) int {
	l.Round[team] += l.Rules.PointsPerTrick
	return l.Round[team]
}

// leader 返回局分领先的一方；平分返回 false
func (l *Ledger) leader() (rule.Team, bool) {
	switch {
	case l.Round[rule.TeamA] > l.Round[rule.TeamB]:
		return rule.TeamA, true
	case l.Round[rule.TeamB] > l.Round[rule.TeamA]:
		return rule.TeamB, true
	}
	return 0, false
}

// FinalizeRound 一局打完后推进阶梯。
// 领先方局分达到门槛则赢一盘并清空局分，否则局分带入下一次发牌
func (l *Ledger) FinalizeRound() RoundOutcome {
	out := RoundOutcome{Round: l.Round}

	team, ok := l.leader()
	if !ok || l.Round[team] < l.Rules.SetThreshold {
		return out
	}

	l.Round = [2]int{}
	l.Set[team]++
	out.SetWinner = &team

	if l.Set[team] < l.Rules.SetsPerGame {
		return out
	}
	l.Set = [2]int{}
	l.Game[team]++
	out.GameWinner = &team

	if l.FinalizeGame(team) {
		out.MatchWinner = &team
	}
	return out
}

// FinalizeGame 场数达到门槛则该方赢得比赛，整个阶梯归零
func (l *Ledger) FinalizeGame(team rule.Team) bool {
	if l.Game[team] < l.Rules.GamesPerMatch {
		return false
	}
	l.Match[team]++
	l.Reset()
	return true
}

// Reset 清空局、盘、场三级分数
func (l *Ledger) Reset() {
	l.Round = [2]int{}
	l.Set = [2]int{}
	l.Game = [2]int{}
}
