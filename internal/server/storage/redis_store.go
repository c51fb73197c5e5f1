package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/mybridge/internal/game/table"
)

const (
	// Redis key 前缀
	tableKeyPrefix  = "table:"
	activeTablesKey = "tables:active"
	versionSuffix   = ":version"
	closedSuffix    = ":closed" // 解散标记，之后的保存都会被忽略

	// 牌桌快照默认过期时间
	defaultTableExpiration = 2 * time.Hour
)

// saveScript 只在牌桌未解散且版本不旧于已存版本时写入快照
//
// KEYS: 快照, 活跃索引, 版本, 解散标记
// ARGV: 快照 JSON, 版本, 过期毫秒, 牌桌 ID
var saveScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[4]) == 1 then
	return 0
end
local cur = tonumber(redis.call('GET', KEYS[3]) or '-1')
if tonumber(ARGV[2]) < cur then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
redis.call('SET', KEYS[3], ARGV[2], 'PX', ARGV[3])
redis.call('SADD', KEYS[2], ARGV[4])
return 1
`)

// RedisStore Redis 存储，保存进行中牌桌的快照用于状态同步和重启恢复
type RedisStore struct {
	client     *redis.Client
	expiration time.Duration
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, expiration: defaultTableExpiration}
}

// WithExpiration 设置快照过期时间
func (rs *RedisStore) WithExpiration(d time.Duration) *RedisStore {
	if d > 0 {
		rs.expiration = d
	}
	return rs
}

// Ping 检查连接
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// --- 牌桌存储 ---

// SaveTable 保存牌桌快照并加入活跃索引。
// 已解散的牌桌和比已存版本旧的快照被静默丢弃
func (rs *RedisStore) SaveTable(ctx context.Context, snap table.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("序列化牌桌数据失败: %w", err)
	}

	id := snap.ID
	keys := []string{tableKeyPrefix + id, activeTablesKey, tableKeyPrefix + id + versionSuffix, tableKeyPrefix + id + closedSuffix}
	err = saveScript.Run(ctx, rs.client, keys, data, snap.Version, rs.expiration.Milliseconds(), id).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("保存牌桌 %s 失败: %w", id, err)
	}
	return nil
}

// LoadTable 从 Redis 加载牌桌快照，不存在时返回 nil
func (rs *RedisStore) LoadTable(ctx context.Context, id string) (*table.Snapshot, error) {
	data, err := rs.client.Get(ctx, tableKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 牌桌不存在
		}
		return nil, err
	}

	var snap table.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("反序列化牌桌数据失败: %w", err)
	}
	return &snap, nil
}

// DeleteTable 删除牌桌快照并留下解散标记，标记与快照同样过期
func (rs *RedisStore) DeleteTable(ctx context.Context, id string) error {
	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, tableKeyPrefix+id, tableKeyPrefix+id+versionSuffix)
		pipe.SRem(ctx, activeTablesKey, id)
		pipe.Set(ctx, tableKeyPrefix+id+closedSuffix, 1, rs.expiration)
		return nil
	})
	return err
}

// ListActive 返回仍有快照的牌桌 ID，顺便清理已过期的索引
func (rs *RedisStore) ListActive(ctx context.Context) ([]string, error) {
	ids, err := rs.client.SMembers(ctx, activeTablesKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := rs.client.Pipeline()
	results := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		results[i] = pipe.Exists(ctx, tableKeyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	active := make([]string, 0, len(ids))
	var stale []any
	for i, result := range results {
		if result.Val() > 0 {
			active = append(active, ids[i])
		} else {
			stale = append(stale, ids[i])
		}
	}
	if len(stale) > 0 {
		if err := rs.client.SRem(ctx, activeTablesKey, stale...).Err(); err != nil {
			return nil, err
		}
	}
	return active, nil
}
