package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palemoky/mybridge/internal/logger"
	"github.com/palemoky/mybridge/internal/protocol"
	"github.com/palemoky/mybridge/internal/protocol/codec"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10 // 小于 pongWait
	maxFrameSize   = 4096              // 叫牌和出牌消息都很小
	sendBufferSize = 256
)

// Client 一个 WebSocket 连接
type Client struct {
	ID   string
	Name string
	IP   string

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	closed bool
}

// NewClient 分配连接 ID 和随机昵称
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.NewString(),
		Name:   GenerateNickname(),
		server: s,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

func (c *Client) GetID() string   { return c.ID }
func (c *Client) GetName() string { return c.Name }

// ReadPump 读循环，退出时让出座位并释放连接名额
func (c *Client) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.handleDisconnect()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	extend := func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
	_ = extend("")
	c.conn.SetPongHandler(extend)

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ 连接 %s 读取失败: %v", c.ID, err)
			}
			return
		}
		c.handleFrame(frame)
	}
}

// handleFrame 限流、解码并交给处理器；解码出的消息用完放回池
func (c *Client) handleFrame(frame []byte) {
	if !c.server.messageLimiter.Allow(c.ID) {
		c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeRateLimit))
		return
	}

	msg, err := c.server.codec.Decode(frame)
	if err != nil {
		log.Printf("⚠️ 连接 %s 消息无法解析: %v", c.ID, err)
		c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	defer codec.PutMessage(msg)

	c.server.handler.Handle(c, msg)
}

// WritePump 写循环，send 关闭后发送关闭帧退出
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		_ = c.conn.Close()
	}()

	frameType := websocket.TextMessage
	if c.server.codec.Binary() {
		frameType = websocket.BinaryMessage
	}

	write := func(kind int, data []byte) error {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		return c.conn.WriteMessage(kind, data)
	}

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				_ = write(websocket.CloseMessage, []byte{})
				return
			}
			if err := write(frameType, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 发送消息给客户端，缓冲区满时断开
func (c *Client) SendMessage(msg *protocol.Message) {
	data, err := c.server.codec.Encode(msg)
	if err != nil {
		log.Printf("消息编码错误: %v", err)
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("⚠️ 连接 %s 发送缓冲已满，断开", c.ID)
		go c.Close()
	}
}

// handleDisconnect 让出座位并注销连接
func (c *Client) handleDisconnect() {
	c.server.handler.ClientGone(c.ID)
	c.server.messageLimiter.Remove(c.ID)
	c.server.unregisterClient(c)
	c.Close()
	<-c.server.semaphore
}

// Close 关闭发送通道，可重复调用
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
