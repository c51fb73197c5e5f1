package tables

import (
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
)

// SubmitBid 提交叫牌或 Pass，call.Seat 以 seat 为准
func (m *Manager) SubmitBid(id string, seat rule.Seat, call rule.Call) (rule.AuctionState, error) {
	t, err := m.Get(id)
	if err != nil {
		return rule.AuctionState{}, err
	}

	call.Seat = seat
	st, err := t.SubmitCall(call)
	if err != nil {
		return st, err
	}
	m.saveAsync(t)
	return st, nil
}

// SubmitPlay 打出手牌中第 cardIndex 张
func (m *Manager) SubmitPlay(id string, seat rule.Seat, cardIndex int) (rule.TrickState, error) {
	t, err := m.Get(id)
	if err != nil {
		return rule.TrickState{}, err
	}

	st, err := t.SubmitPlay(seat, cardIndex)
	if err != nil {
		return st, err
	}
	m.saveAsync(t)
	return st, nil
}

// Auto 由 policy 代替 seat 行动
func (m *Manager) Auto(id string, seat rule.Seat, p table.Policy) (table.Action, error) {
	t, err := m.Get(id)
	if err != nil {
		return table.Action{}, err
	}

	a, err := t.Auto(seat, p)
	if err != nil {
		return a, err
	}
	m.saveAsync(t)
	return a, nil
}

// View 返回 seat 视角的牌桌状态
func (m *Manager) View(id string, seat rule.Seat) (table.View, error) {
	t, err := m.Get(id)
	if err != nil {
		return table.View{}, err
	}
	return t.View(seat), nil
}
