package tables

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/palemoky/mybridge/internal/game/table"
)

// writerLinger 解散后的队列保留多久，拦截迟到的保存
const writerLinger = 5 * time.Minute

// writer 一张牌桌的存储写入队列。
//
// 同一时刻最多一个协程写存储；排队的快照只保留版本最新的一份，
// 比已写入版本旧的快照直接丢弃。删除之后不再接受保存。
type writer struct {
	mu       sync.Mutex
	pending  *table.Snapshot
	written  uint64
	deleting bool
	closed   bool
	closedAt time.Time
	running  bool
}

func (w *writer) save(m *Manager, snap table.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || snap.Version < w.written {
		return
	}
	if w.pending != nil && w.pending.Version > snap.Version {
		return
	}
	w.pending = &snap
	w.start(m, snap.ID)
}

func (w *writer) remove(m *Manager, id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed, w.closedAt = true, time.Now()
	w.pending = nil
	w.deleting = true
	w.start(m, id)
}

// start 需持有 w.mu
func (w *writer) start(m *Manager, id string) {
	if w.running {
		return
	}
	w.running = true
	m.writes.Add(1)
	go w.run(m, id)
}

func (w *writer) run(m *Manager, id string) {
	defer m.writes.Done()
	ctx := context.Background()

	for {
		w.mu.Lock()
		snap, deleting := w.pending, w.deleting
		w.pending, w.deleting = nil, false
		if snap == nil && !deleting {
			w.running = false
			w.mu.Unlock()
			return
		}
		if snap != nil {
			w.written = snap.Version
		}
		w.mu.Unlock()

		if snap != nil {
			if err := m.store.SaveTable(ctx, *snap); err != nil {
				log.Printf("⚠️ 保存牌桌 %s 失败: %v", id, err)
			}
		}
		if deleting {
			if err := m.store.DeleteTable(ctx, id); err != nil {
				log.Printf("⚠️ 删除牌桌 %s 失败: %v", id, err)
			}
		}
	}
}

// done 已解散、写完并超过保留时间
func (w *writer) done(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed && !w.running && now.Sub(w.closedAt) > writerLinger
}
