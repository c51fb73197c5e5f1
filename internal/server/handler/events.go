package handler

import (
	"log"
	"sync"

	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
	"github.com/palemoky/mybridge/internal/game/tables"
	"github.com/palemoky/mybridge/internal/protocol"
	"github.com/palemoky/mybridge/internal/protocol/codec"
	"github.com/palemoky/mybridge/internal/protocol/convert"
)

// tableEvent 待分发的牌桌事件；event 为 nil 表示牌桌已解散
type tableEvent struct {
	tableID string
	event   table.Event
}

// eventQueue 无界队列。事件在牌桌锁内入队，入队不能阻塞
type eventQueue struct {
	mu     sync.Mutex
	items  []tableEvent
	notify chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{notify: make(chan struct{}, 1)}
}

func (q *eventQueue) push(e tableEvent) {
	q.mu.Lock()
	q.items = append(q.items, e)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *eventQueue) drain() []tableEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// Hooks 返回交给牌桌管理器的回调
func (h *Handler) Hooks() tables.Hooks {
	return tables.Hooks{
		OnEvent:   h.onEvent,
		OnClose:   h.onClose,
		OnRestore: h.onRestore,
	}
}

func (h *Handler) onRestore(t *table.Table) {
	if h.driver != nil {
		h.driver.Resume(t)
	}
}

// onEvent 在牌桌锁内调用：只调度托管和入队
func (h *Handler) onEvent(tableID string, e table.Event) {
	if turn, ok := e.(table.TurnChanged); ok && h.driver != nil {
		h.driver.OnTurn(tableID, turn.Seat)
	}
	h.queue.push(tableEvent{tableID: tableID, event: e})
}

func (h *Handler) onClose(tableID string) {
	if h.driver != nil {
		h.driver.Forget(tableID)
	}
	h.queue.push(tableEvent{tableID: tableID})
}

// dispatchLoop 按顺序把事件发给牌桌上的连接
func (h *Handler) dispatchLoop() {
	for {
		select {
		case <-h.queue.notify:
			for _, e := range h.queue.drain() {
				h.deliver(e)
			}
		case <-h.done:
			return
		}
	}
}

func (h *Handler) deliver(e tableEvent) {
	if e.event == nil {
		msg := codec.MustNewMessage(protocol.MsgTableClosed, protocol.TableClosedPayload{TableID: e.tableID})
		for _, m := range h.hub.Drop(e.tableID) {
			m.Client.SendMessage(msg)
		}
		log.Printf("📪 牌桌 %s 已通知解散", e.tableID)
		return
	}

	msgType, payload := convert.EventToPayload(e.tableID, e.event)
	h.hub.Broadcast(e.tableID, codec.MustNewMessage(msgType, payload))

	// 新发的牌只能按座位单独发送
	if _, ok := e.event.(table.RoundDealt); ok {
		for _, m := range h.hub.Members(e.tableID) {
			h.sendState(m.Client, e.tableID, m.Seat)
		}
	}
}

// bots 返回牌桌的机器人座位
func (h *Handler) bots(tableID string) [rule.SeatCount]bool {
	if h.driver == nil {
		return [rule.SeatCount]bool{}
	}
	return h.driver.Bots(tableID)
}
