package tables

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
)

// cleanupInterval 清理空闲牌桌的间隔
const cleanupInterval = 1 * time.Minute

// Store 牌桌快照存储
type Store interface {
	SaveTable(ctx context.Context, snap table.Snapshot) error
	LoadTable(ctx context.Context, id string) (*table.Snapshot, error)
	DeleteTable(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]string, error)
}

// Hooks 牌桌回调。OnEvent 在牌桌锁内调用，不能回调 Manager；
// OnRestore 在 Recover 登记完牌桌后逐张调用
type Hooks struct {
	OnEvent   func(tableID string, e table.Event)
	OnClose   func(tableID string)
	OnRestore func(t *table.Table)
}

// Manager 牌桌管理器
type Manager struct {
	store        Store // 可为 nil
	rules        table.Rules
	tableTimeout time.Duration
	hooks        Hooks

	tables map[string]*table.Table
	mu     sync.RWMutex

	writers   map[string]*writer
	writersMu sync.Mutex
	writes    sync.WaitGroup

	done      chan struct{}
	closeOnce sync.Once
}

// NewManager 创建牌桌管理器并启动空闲清理协程
func NewManager(store Store, rules table.Rules, tableTimeout time.Duration, hooks Hooks) *Manager {
	m := &Manager{
		store:        store,
		rules:        rules,
		tableTimeout: tableTimeout,
		hooks:        hooks,
		tables:       make(map[string]*table.Table),
		writers:      make(map[string]*writer),
		done:         make(chan struct{}),
	}

	// 启动牌桌清理协程
	go m.cleanupLoop()

	return m
}

// Close 停止清理协程，等待排队中的存储写入完成
func (m *Manager) Close() {
	m.closeOnce.Do(func() { close(m.done) })
	m.writes.Wait()
}

func (m *Manager) options(id string, seed uint64) table.Options {
	opts := table.Options{Seed: seed}
	if m.hooks.OnEvent != nil {
		opts.Listener = func(e table.Event) { m.hooks.OnEvent(id, e) }
	}
	return opts
}

// Create 开一张新牌桌：四名玩家入座，发牌并开始第一盘
func (m *Manager) Create(names [rule.SeatCount]string, seed uint64) (*table.Table, error) {
	// 持有写锁直到牌桌登记完成，事件回调触发的延迟操作会等到牌桌可见
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	t, err := table.New(id, names, m.rules, m.options(id, seed))
	if err != nil {
		return nil, err
	}
	m.tables[id] = t

	m.saveAsync(t)
	log.Printf("🃏 牌桌 %s 已创建: %v", id, names)

	return t, nil
}

// Get 获取牌桌
func (m *Manager) Get(id string) (*table.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tables[id]
	if !ok {
		return nil, apperrors.ErrTableNotFound
	}
	return t, nil
}

// Count 进行中的牌桌数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}

// Abandon 解散牌桌，任何阶段都可以
func (m *Manager) Abandon(id string) error {
	m.mu.Lock()
	t, ok := m.tables[id]
	if !ok {
		m.mu.Unlock()
		return apperrors.ErrTableNotFound
	}
	delete(m.tables, id)
	m.mu.Unlock()

	m.closeTable(t)
	log.Printf("🗑️ 牌桌 %s 已解散", id)
	return nil
}

func (m *Manager) closeTable(t *table.Table) {
	t.Close()
	if m.hooks.OnClose != nil {
		m.hooks.OnClose(t.ID)
	}
	m.deleteAsync(t.ID)
}

// Recover 从存储中恢复进行中的牌桌，返回恢复的数量
func (m *Manager) Recover(ctx context.Context) (int, error) {
	if m.store == nil {
		return 0, nil
	}

	ids, err := m.store.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	var restored []*table.Table
	for _, id := range ids {
		if _, exists := m.tables[id]; exists {
			continue
		}
		snap, err := m.store.LoadTable(ctx, id)
		if err != nil || snap == nil {
			log.Printf("⚠️ 加载牌桌 %s 失败: %v", id, err)
			continue
		}
		t, err := table.Restore(*snap, m.options(id, 0))
		if err != nil {
			log.Printf("⚠️ 恢复牌桌 %s 失败: %v", id, err)
			continue
		}
		m.tables[id] = t
		restored = append(restored, t)
	}
	m.mu.Unlock()

	for _, t := range restored {
		if m.hooks.OnRestore != nil {
			m.hooks.OnRestore(t)
		}
	}
	if len(restored) > 0 {
		log.Printf("♻️ 已从存储恢复 %d 张牌桌", len(restored))
	}
	return len(restored), nil
}

// saveAsync 同步拍快照，交给牌桌的写入队列
func (m *Manager) saveAsync(t *table.Table) {
	if m.store == nil {
		return
	}
	m.writerFor(t.ID).save(m, t.Snapshot())
}

// deleteAsync 排在已有写入之后删除快照
func (m *Manager) deleteAsync(id string) {
	if m.store == nil {
		return
	}
	m.writerFor(id).remove(m, id)
}

func (m *Manager) writerFor(id string) *writer {
	m.writersMu.Lock()
	defer m.writersMu.Unlock()
	w, ok := m.writers[id]
	if !ok {
		w = &writer{}
		m.writers[id] = w
	}
	return w
}

// pruneWriters 移除已解散且写完的队列
func (m *Manager) pruneWriters(now time.Time) {
	m.writersMu.Lock()
	defer m.writersMu.Unlock()
	for id, w := range m.writers {
		if w.done(now) {
			delete(m.writers, id)
		}
	}
}

// cleanupLoop 定期清理空闲牌桌
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.cleanup(now)
			m.pruneWriters(now)
		case <-m.done:
			return
		}
	}
}

// cleanup 清理超过 tableTimeout 没有动作的牌桌
func (m *Manager) cleanup(now time.Time) int {
	if m.tableTimeout <= 0 {
		return 0
	}

	m.mu.Lock()
	var idle []*table.Table
	for id, t := range m.tables {
		if now.Sub(t.UpdatedAt()) > m.tableTimeout {
			idle = append(idle, t)
			delete(m.tables, id)
		}
	}
	m.mu.Unlock()

	for _, t := range idle {
		m.closeTable(t)
		log.Printf("🧹 牌桌 %s 超时已清理", t.ID)
	}
	return len(idle)
}
