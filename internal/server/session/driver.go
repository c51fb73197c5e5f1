package session

import (
	"errors"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
)

// Actor 代替座位行动，由 tables.Manager 实现
type Actor interface {
	Auto(id string, seat rule.Seat, p table.Policy) (table.Action, error)
}

// drivenTable 一张牌桌的托管状态
type drivenTable struct {
	bots     [rule.SeatCount]bool
	policy   table.Policy
	timer    *time.Timer
	gen      uint64 // 每次换人加一，过期的计时器不再行动
	turn     rule.Seat
	hasTurn  bool
	attached bool
}

// Driver 托管座位：机器人座位延迟后由随机策略行动，
// 真人座位超时后由 FirstLegal 代打
type Driver struct {
	actor       Actor
	botDelay    time.Duration
	turnTimeout time.Duration // 0 表示真人不限时

	tables map[string]*drivenTable
	mu     sync.Mutex
}

// NewDriver 创建托管器
func NewDriver(actor Actor, botDelay, turnTimeout time.Duration) *Driver {
	return &Driver{
		actor:       actor,
		botDelay:    botDelay,
		turnTimeout: turnTimeout,
		tables:      make(map[string]*drivenTable),
	}
}

func (d *Driver) get(tableID string) *drivenTable {
	dt, ok := d.tables[tableID]
	if !ok {
		dt = &drivenTable{}
		d.tables[tableID] = dt
	}
	return dt
}

// botSeedSalt 让机器人的随机序列与牌桌洗牌的序列不同
const botSeedSalt = 0xd1b54a32d192ed03

// botSeed 由牌桌种子派生机器人种子，0 表示随机
func botSeed(seed uint64) uint64 {
	if seed == 0 {
		return rand.Uint64()
	}
	return seed ^ botSeedSalt
}

// Attach 登记牌桌的机器人座位。牌桌创建时的第一个 TurnChanged
// 早于 Attach 到达，这里补上调度
func (d *Driver) Attach(tableID string, bots [rule.SeatCount]bool, seed uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	dt := d.get(tableID)
	dt.bots = bots
	dt.policy = table.NewRandom(botSeed(seed))
	dt.attached = true
	if dt.hasTurn {
		d.schedule(tableID, dt)
	}
}

// Resume 接管从存储恢复的牌桌：机器人座位没有持久化，全部按真人处理，
// 从当前行动座位开始计时
func (d *Driver) Resume(t *table.Table) {
	phase, seat := t.Turn()
	if phase == table.PhaseClosed {
		return
	}
	d.OnTurn(t.ID, seat)
	d.Attach(t.ID, [rule.SeatCount]bool{}, 0)
}

// Bots 返回牌桌的机器人座位
func (d *Driver) Bots(tableID string) [rule.SeatCount]bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if dt, ok := d.tables[tableID]; ok {
		return dt.bots
	}
	return [rule.SeatCount]bool{}
}

// IsBot 座位是否由机器人托管
func (d *Driver) IsBot(tableID string, seat rule.Seat) bool {
	if !seat.Valid() {
		return false
	}
	return d.Bots(tableID)[seat]
}

// OnTurn 轮到 seat 行动。在牌桌锁内调用，只做调度
func (d *Driver) OnTurn(tableID string, seat rule.Seat) {
	d.mu.Lock()
	defer d.mu.Unlock()

	dt := d.get(tableID)
	dt.turn = seat
	dt.hasTurn = true
	if dt.attached {
		d.schedule(tableID, dt)
	}
}

// schedule 需持有 d.mu
func (d *Driver) schedule(tableID string, dt *drivenTable) {
	if dt.timer != nil {
		dt.timer.Stop()
		dt.timer = nil
	}
	dt.gen++

	seat := dt.turn
	var (
		delay  time.Duration
		policy table.Policy
	)
	switch {
	case dt.bots[seat]:
		delay, policy = d.botDelay, dt.policy
	case d.turnTimeout > 0:
		delay, policy = d.turnTimeout, table.FirstLegal
	default:
		return
	}

	gen := dt.gen
	dt.timer = time.AfterFunc(delay, func() {
		d.act(tableID, seat, gen, policy)
	})
}

func (d *Driver) act(tableID string, seat rule.Seat, gen uint64, policy table.Policy) {
	d.mu.Lock()
	dt, ok := d.tables[tableID]
	stale := !ok || dt.gen != gen
	isBot := ok && dt.bots[seat]
	d.mu.Unlock()
	if stale {
		return
	}

	a, err := d.actor.Auto(tableID, seat, policy)
	if err != nil {
		// 真人抢先行动或牌桌已解散
		if !errors.Is(err, apperrors.ErrOutOfTurn) && !errors.Is(err, apperrors.ErrTableNotFound) {
			log.Printf("⚠️ 牌桌 %s 座位 %s 托管行动失败: %v", tableID, seat, err)
		}
		return
	}
	if !isBot {
		log.Printf("⏰ 牌桌 %s 座位 %s 超时，自动执行 %s", tableID, seat, a)
	}
}

// Forget 停止牌桌的计时器并移除
func (d *Driver) Forget(tableID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if dt, ok := d.tables[tableID]; ok {
		if dt.timer != nil {
			dt.timer.Stop()
		}
		delete(d.tables, tableID)
	}
}

// Close 停止所有计时器
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, dt := range d.tables {
		if dt.timer != nil {
			dt.timer.Stop()
		}
		delete(d.tables, id)
	}
}
