package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/score"
	"github.com/palemoky/mybridge/internal/game/table"
)

// 默认值
const (
	defaultHost           = "0.0.0.0"
	defaultPort           = 1780
	defaultMaxConnections = 1000
	defaultWireFormat     = "json"
	defaultRedisAddr      = "localhost:6379"
	defaultSnapshotTTL    = 30 // 分钟
	defaultTurnTimeout    = 30 // 秒
	defaultBotDelay       = 800
	defaultTableTimeout   = 30 // 分钟
	defaultShutdownWait   = 10 // 秒

	defaultConnectsPerSecond = 5
	defaultConnectsPerMinute = 30
	defaultBanDuration       = 60 // 秒
	defaultMessagesPerSecond = 20
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Rules    RulesConfig    `yaml:"rules"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
	WireFormat     string `yaml:"wire_format"` // json 或 protobuf
}

// SecurityConfig 连接与消息限流配置
type SecurityConfig struct {
	AllowedOrigins    []string `yaml:"allowed_origins"` // 为空或包含 "*" 时允许所有来源
	ConnectsPerSecond int      `yaml:"connects_per_second"`
	ConnectsPerMinute int      `yaml:"connects_per_minute"`
	BanDuration       int      `yaml:"ban_duration"` // 超限封禁时长（秒）
	MessagesPerSecond int      `yaml:"messages_per_second"`
}

// BanDurationDuration 返回封禁时长
func (c *SecurityConfig) BanDurationDuration() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// RedisConfig Redis 配置，关闭时牌桌只在内存中
type RedisConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Addr        string `yaml:"addr"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	SnapshotTTL int    `yaml:"snapshot_ttl"` // 快照过期时间（分钟）
}

// GameConfig 牌桌运行配置
type GameConfig struct {
	TurnTimeout     int `yaml:"turn_timeout"`     // 真人行动超时（秒），0 表示不限时
	BotDelay        int `yaml:"bot_delay_ms"`     // 机器人行动延迟（毫秒）
	TableTimeout    int `yaml:"table_timeout"`    // 牌桌空闲超时（分钟）
	ShutdownTimeout int `yaml:"shutdown_timeout"` // 优雅关闭等待（秒）
}

// RulesConfig 牌桌规则配置
type RulesConfig struct {
	PointsPerTrick   int   `yaml:"points_per_trick"`
	SetThreshold     int   `yaml:"set_threshold"`
	SetsPerGame      int   `yaml:"sets_per_game"`
	GamesPerMatch    int   `yaml:"games_per_match"`
	StrictFollowSuit bool  `yaml:"strict_follow_suit"`
	Bidding          *bool `yaml:"bidding"` // 未配置时默认开启
	PlayOrder        []int `yaml:"play_order"`
}

// TurnTimeoutDuration 返回行动超时时长
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// BotDelayDuration 返回机器人延迟
func (c *GameConfig) BotDelayDuration() time.Duration {
	return time.Duration(c.BotDelay) * time.Millisecond
}

// TableTimeoutDuration 返回牌桌空闲超时时长
func (c *GameConfig) TableTimeoutDuration() time.Duration {
	return time.Duration(c.TableTimeout) * time.Minute
}

// ShutdownTimeoutDuration 返回优雅关闭等待时长
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// SnapshotTTLDuration 返回快照过期时长
func (c *RedisConfig) SnapshotTTLDuration() time.Duration {
	return time.Duration(c.SnapshotTTL) * time.Minute
}

// ToRules 转换为牌桌规则，未填写的计分项使用默认值
func (c RulesConfig) ToRules() (table.Rules, error) {
	rules := table.DefaultRules()
	def := score.DefaultRules()

	rules.Score = score.Rules{
		PointsPerTrick: orDefault(c.PointsPerTrick, def.PointsPerTrick),
		SetThreshold:   orDefault(c.SetThreshold, def.SetThreshold),
		SetsPerGame:    orDefault(c.SetsPerGame, def.SetsPerGame),
		GamesPerMatch:  orDefault(c.GamesPerMatch, def.GamesPerMatch),
	}
	rules.StrictFollowSuit = c.StrictFollowSuit
	if c.Bidding != nil {
		rules.Bidding = *c.Bidding
	}

	if len(c.PlayOrder) > 0 {
		if len(c.PlayOrder) != rule.SeatCount {
			return table.Rules{}, fmt.Errorf("play_order 需要 %d 个座位: %v", rule.SeatCount, c.PlayOrder)
		}
		for i, s := range c.PlayOrder {
			rules.PlayOrder[i] = rule.Seat(s)
		}
	}

	if err := rules.Validate(); err != nil {
		return table.Rules{}, err
	}
	return rules, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// Load 加载配置文件，环境变量优先于文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = defaultMaxConnections
	}
	if c.Server.WireFormat == "" {
		c.Server.WireFormat = defaultWireFormat
	}
	if c.Security.ConnectsPerSecond == 0 {
		c.Security.ConnectsPerSecond = defaultConnectsPerSecond
	}
	if c.Security.ConnectsPerMinute == 0 {
		c.Security.ConnectsPerMinute = defaultConnectsPerMinute
	}
	if c.Security.BanDuration == 0 {
		c.Security.BanDuration = defaultBanDuration
	}
	if c.Security.MessagesPerSecond == 0 {
		c.Security.MessagesPerSecond = defaultMessagesPerSecond
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.Redis.SnapshotTTL == 0 {
		c.Redis.SnapshotTTL = defaultSnapshotTTL
	}
	if c.Game.TurnTimeout == 0 {
		c.Game.TurnTimeout = defaultTurnTimeout
	}
	if c.Game.BotDelay == 0 {
		c.Game.BotDelay = defaultBotDelay
	}
	if c.Game.TableTimeout == 0 {
		c.Game.TableTimeout = defaultTableTimeout
	}
	if c.Game.ShutdownTimeout == 0 {
		c.Game.ShutdownTimeout = defaultShutdownWait
	}
}

// applyEnv 用环境变量覆盖配置，方便容器部署
func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v, ok := envInt("SERVER_PORT"); ok {
		c.Server.Port = v
	}
	if v := os.Getenv("SERVER_WIRE_FORMAT"); v != "" {
		c.Server.WireFormat = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v, err := strconv.ParseBool(os.Getenv("REDIS_ENABLED")); err == nil {
		c.Redis.Enabled = v
	}
	if v, ok := envInt("GAME_TURN_TIMEOUT"); ok {
		c.Game.TurnTimeout = v
	}
}

func envInt(key string) (int, bool) {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0, false
	}
	return v, true
}
