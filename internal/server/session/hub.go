package session

import (
	"sync"

	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/protocol"
	"github.com/palemoky/mybridge/internal/types"
)

// Spectator 旁观者的座位
const Spectator rule.Seat = -1

// Member 牌桌上的一个连接
type Member struct {
	Client types.ClientInterface
	Seat   rule.Seat
}

// Hub 记录每张牌桌上有哪些连接、各坐在哪个座位
type Hub struct {
	tables map[string]map[string]Member // tableID -> clientID -> member
	mu     sync.RWMutex
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{
		tables: make(map[string]map[string]Member),
	}
}

// Join 让 client 以 seat 加入牌桌；seat 为 Spectator 表示旁观。
// 同一个连接重复加入会换到新座位
func (h *Hub) Join(tableID string, client types.ClientInterface, seat rule.Seat) error {
	if seat != Spectator && !seat.Valid() {
		return apperrors.ErrInvalidSeat
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.tables[tableID]
	if !ok {
		members = make(map[string]Member)
		h.tables[tableID] = members
	}

	if seat != Spectator {
		for id, m := range members {
			if m.Seat == seat && id != client.GetID() {
				return apperrors.ErrSeatTaken
			}
		}
	}

	members[client.GetID()] = Member{Client: client, Seat: seat}
	return nil
}

// Leave 把连接从所有牌桌移除，返回离开的牌桌
func (h *Hub) Leave(clientID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var left []string
	for tableID, members := range h.tables {
		if _, ok := members[clientID]; !ok {
			continue
		}
		delete(members, clientID)
		left = append(left, tableID)
		if len(members) == 0 {
			delete(h.tables, tableID)
		}
	}
	return left
}

// SeatOf 返回连接在牌桌上的座位
func (h *Hub) SeatOf(tableID, clientID string) (rule.Seat, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	m, ok := h.tables[tableID][clientID]
	if !ok {
		return Spectator, false
	}
	return m.Seat, true
}

// Occupied 座位是否已有连接
func (h *Hub) Occupied(tableID string, seat rule.Seat) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, m := range h.tables[tableID] {
		if m.Seat == seat {
			return true
		}
	}
	return false
}

// Members 返回牌桌上的连接副本
func (h *Hub) Members(tableID string) []Member {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]Member, 0, len(h.tables[tableID]))
	for _, m := range h.tables[tableID] {
		members = append(members, m)
	}
	return members
}

// Broadcast 发送给牌桌上的所有连接
func (h *Hub) Broadcast(tableID string, msg *protocol.Message) {
	for _, m := range h.Members(tableID) {
		m.Client.SendMessage(msg)
	}
}

// Drop 移除整张牌桌，返回原有连接
func (h *Hub) Drop(tableID string) []Member {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := make([]Member, 0, len(h.tables[tableID]))
	for _, m := range h.tables[tableID] {
		members = append(members, m)
	}
	delete(h.tables, tableID)
	return members
}
