package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 8080
  max_connections: 50
  wire_format: protobuf

security:
  allowed_origins: ["https://bridge.example.com"]
  messages_per_second: 5

redis:
  enabled: true
  addr: "redis:6379"
  password: "secret"
  db: 1
  snapshot_ttl: 5

game:
  turn_timeout: 60
  bot_delay_ms: 200
  table_timeout: 15

rules:
  points_per_trick: 10
  set_threshold: 50
  strict_follow_suit: true
  bidding: false
  play_order: [3, 2, 1, 0]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Server.MaxConnections)
	assert.Equal(t, "protobuf", cfg.Server.WireFormat)
	assert.Equal(t, []string{"https://bridge.example.com"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, 5, cfg.Security.MessagesPerSecond)
	assert.Equal(t, defaultConnectsPerMinute, cfg.Security.ConnectsPerMinute)
	assert.Equal(t, time.Minute, cfg.Security.BanDurationDuration())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 5*time.Minute, cfg.Redis.SnapshotTTLDuration())
	assert.Equal(t, 60*time.Second, cfg.Game.TurnTimeoutDuration())
	assert.Equal(t, 200*time.Millisecond, cfg.Game.BotDelayDuration())
	assert.Equal(t, 15*time.Minute, cfg.Game.TableTimeoutDuration())

	rules, err := cfg.Rules.ToRules()
	require.NoError(t, err)
	assert.Equal(t, 10, rules.Score.PointsPerTrick)
	assert.Equal(t, 50, rules.Score.SetThreshold)
	assert.Equal(t, 2, rules.Score.SetsPerGame)
	assert.True(t, rules.StrictFollowSuit)
	assert.False(t, rules.Bidding)
	assert.Equal(t, rule.Order{3, 2, 1, 0}, rules.PlayOrder)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "invalid: yaml: :::"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, defaultHost, cfg.Server.Host)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultMaxConnections, cfg.Server.MaxConnections)
	assert.Equal(t, defaultWireFormat, cfg.Server.WireFormat)
	assert.Equal(t, defaultRedisAddr, cfg.Redis.Addr)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, defaultTurnTimeout, cfg.Game.TurnTimeout)
	assert.Equal(t, defaultBotDelay, cfg.Game.BotDelay)

	rules, err := cfg.Rules.ToRules()
	require.NoError(t, err)
	assert.Equal(t, table.DefaultRules(), rules)
}

func TestDefault(t *testing.T) {
	// 不并行：Default 读取环境变量

	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, defaultHost, cfg.Server.Host)
	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, defaultTableTimeout, cfg.Game.TableTimeout)
}

func TestRulesConfig_ToRulesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  RulesConfig
	}{
		{name: "Short play order", cfg: RulesConfig{PlayOrder: []int{0, 1, 2}}},
		{name: "Repeated seat", cfg: RulesConfig{PlayOrder: []int{0, 1, 1, 2}}},
		{name: "Seat out of range", cfg: RulesConfig{PlayOrder: []int{0, 1, 2, 4}}},
		{name: "Negative points", cfg: RulesConfig{PointsPerTrick: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.cfg.ToRules()
			assert.Error(t, err)
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	// 不并行：修改环境变量

	t.Setenv("SERVER_HOST", "env-host")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("SERVER_WIRE_FORMAT", "protobuf")
	t.Setenv("REDIS_ADDR", "env-redis:6380")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("GAME_TURN_TIMEOUT", "120")

	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "protobuf", cfg.Server.WireFormat)
	assert.Equal(t, "env-redis:6380", cfg.Redis.Addr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 120, cfg.Game.TurnTimeout)
}
