package handler

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/tables"
	"github.com/palemoky/mybridge/internal/protocol"
	"github.com/palemoky/mybridge/internal/protocol/codec"
	"github.com/palemoky/mybridge/internal/server/session"
	"github.com/palemoky/mybridge/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server types.Gateway
	Hub    *session.Hub
}

// Handler 消息处理器
type Handler struct {
	server   types.Gateway
	hub      *session.Hub
	tables   *tables.Manager
	driver   *session.Driver
	handlers map[protocol.MessageType]handlerFunc

	queue     *eventQueue
	done      chan struct{}
	closeOnce sync.Once
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器并启动事件分发协程。
// 牌桌管理器需要 Hooks()，创建后再用 Bind 注入
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server: deps.Server,
		hub:    deps.Hub,
		queue:  newEventQueue(),
		done:   make(chan struct{}),
	}
	h.initHandlers()

	go h.dispatchLoop()

	return h
}

// Bind 注入牌桌管理器和托管器
func (h *Handler) Bind(manager *tables.Manager, driver *session.Driver) {
	h.tables = manager
	h.driver = driver
}

// Close 停止事件分发
func (h *Handler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 牌桌操作
		protocol.MsgStartGame: h.handleStartGame,
		protocol.MsgJoinTable: h.handleJoinTable,
		protocol.MsgSync:      h.handleSync,
		protocol.MsgAbandon:   h.handleAbandon,

		// 游戏操作
		protocol.MsgBid:  h.handleBid,
		protocol.MsgPass: h.handlePass,
		protocol.MsgPlay: h.handlePlay,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (来自连接: %s)", msg.Type, client.GetID())
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// handlePing 回显客户端时间戳，客户端据此计算延迟
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	ping, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: ping.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// ClientGone 连接断开，让出座位；牌桌继续，超时由托管代打
func (h *Handler) ClientGone(clientID string) {
	for _, tableID := range h.hub.Leave(clientID) {
		log.Printf("👋 连接 %s 离开牌桌 %s", clientID, tableID)
	}
}

// sendError 把引擎错误转成错误消息
func sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(codec.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	log.Printf("处理请求失败: %v", err)
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeUnknown))
}
