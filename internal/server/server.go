package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/mybridge/internal/config"
	"github.com/palemoky/mybridge/internal/game/tables"
	"github.com/palemoky/mybridge/internal/protocol"
	"github.com/palemoky/mybridge/internal/protocol/codec"
	"github.com/palemoky/mybridge/internal/server/handler"
	"github.com/palemoky/mybridge/internal/server/session"
	"github.com/palemoky/mybridge/internal/server/storage"
	"github.com/palemoky/mybridge/internal/types"
)

// Server WebSocket 服务器
type Server struct {
	config  *config.Config
	redis   *redis.Client // 未启用 Redis 时为 nil
	codec   codec.Codec
	hub     *session.Hub
	tables  *tables.Manager
	driver  *session.Driver
	handler *handler.Handler

	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数
	upgrader       websocket.Upgrader

	// 安全组件
	rateLimiter    *RateLimiter
	messageLimiter *MessageRateLimiter
	originChecker  *OriginChecker

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex

	httpServer *http.Server
}

// NewServer 创建服务器实例；启用 Redis 时会恢复未结束的牌桌
func NewServer(cfg *config.Config) (*Server, error) {
	wire, err := codec.ForFormat(cfg.Server.WireFormat)
	if err != nil {
		return nil, err
	}
	rules, err := cfg.Rules.ToRules()
	if err != nil {
		return nil, fmt.Errorf("规则配置无效: %w", err)
	}

	s := &Server{
		config:         cfg,
		codec:          wire,
		hub:            session.NewHub(),
		clients:        make(map[string]*Client),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
		rateLimiter: NewRateLimiter(
			cfg.Security.ConnectsPerSecond,
			cfg.Security.ConnectsPerMinute,
			cfg.Security.BanDurationDuration(),
		),
		messageLimiter: NewMessageRateLimiter(cfg.Security.MessagesPerSecond),
		originChecker:  NewOriginChecker(cfg.Security.AllowedOrigins),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.Check,
	}

	var store tables.Store
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		rs := storage.NewRedisStore(rdb).WithExpiration(cfg.Redis.SnapshotTTLDuration())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			_ = rdb.Close()
			s.rateLimiter.Stop()
			return nil, fmt.Errorf("redis 连接失败: %w", err)
		}
		s.redis = rdb
		store = rs
	}

	s.handler = handler.NewHandler(handler.HandlerDeps{Server: s, Hub: s.hub})
	s.tables = tables.NewManager(store, rules, cfg.Game.TableTimeoutDuration(), s.handler.Hooks())
	s.driver = session.NewDriver(s.tables, cfg.Game.BotDelayDuration(), cfg.Game.TurnTimeoutDuration())
	s.handler.Bind(s.tables, s.driver)

	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := s.tables.Recover(ctx); err != nil {
			log.Printf("⚠️ 恢复牌桌失败: %v", err)
		}
	}

	log.Printf("⚙️ 配置: 线上格式=%s, 最大连接数=%d, Redis=%v", cfg.Server.WireFormat, cfg.Server.MaxConnections, cfg.Redis.Enabled)

	return s, nil
}

// Handler 返回 HTTP 路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start 启动服务器，阻塞直到关闭
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	// 启动监控 goroutine
	go s.monitorStats()

	log.Printf("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		IdleTimeout:       60 * time.Second,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.IsMaintenanceMode() {
		log.Printf("🔧 维护模式，拒绝新连接: %s", r.RemoteAddr)
		http.Error(w, "Server is under maintenance, please try again later", http.StatusServiceUnavailable)
		return
	}

	ip := GetClientIP(r)
	if !s.rateLimiter.Allow(ip) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	// 连接数限制检查，信号量在 ReadPump 退出时释放
	select {
	case s.semaphore <- struct{}{}:
	default:
		log.Printf("🚫 达到最大连接数限制 (%d), 来源: %s", s.maxConnections, r.RemoteAddr)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		<-s.semaphore
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	client.IP = ip
	s.registerClient(client)

	client.SendMessage(codec.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		ClientID: client.ID,
	}))

	log.Printf("✅ 连接 %s (%s) 已建立", client.ID, client.IP)

	go client.ReadPump()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		log.Printf("❌ 连接 %s 已断开", client.ID)
	}
}

// GetClientByID 按连接 ID 查找客户端
func (s *Server) GetClientByID(id string) types.ClientInterface {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	if c, ok := s.clients[id]; ok {
		return c
	}
	return nil
}

// GetOnlineCount 获取在线连接数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Broadcast 广播消息给所有客户端
func (s *Server) Broadcast(msg *protocol.Message) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for _, client := range s.clients {
		client.SendMessage(msg)
	}
}
