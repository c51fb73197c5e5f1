package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 牌桌操作
	MsgStartGame MessageType = "start_game" // 开新牌桌
	MsgJoinTable MessageType = "join_table" // 入座已有牌桌
	MsgSync      MessageType = "sync"       // 请求状态同步
	MsgAbandon   MessageType = "abandon"    // 解散牌桌

	// 游戏操作
	MsgBid  MessageType = "bid"  // 叫牌
	MsgPass MessageType = "pass" // Pass
	MsgPlay MessageType = "play" // 出牌
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 牌桌相关
	MsgTableStarted MessageType = "table_started" // 牌桌已创建
	MsgTableJoined  MessageType = "table_joined"  // 入座成功
	MsgStateSync    MessageType = "state_sync"    // 牌桌状态
	MsgTableClosed  MessageType = "table_closed"  // 牌桌已解散

	// 游戏流程，与牌桌事件一一对应
	MsgRoundDealt     MessageType = "round_dealt"     // 发牌
	MsgTurn           MessageType = "turn"            // 轮到某座位
	MsgBidAccepted    MessageType = "bid_accepted"    // 叫牌被接受
	MsgBiddingEnded   MessageType = "bidding_ended"   // 叫牌结束
	MsgCardPlayed     MessageType = "card_played"     // 有人出牌
	MsgTrickResolved  MessageType = "trick_resolved"  // 一墩结算
	MsgRoundFinalized MessageType = "round_finalized" // 一局结算
	MsgSetWon         MessageType = "set_won"         // 赢得一盘
	MsgGameWon        MessageType = "game_won"        // 赢得一场
	MsgMatchWon       MessageType = "match_won"       // 赢得比赛

	// 错误
	MsgError MessageType = "error" // 错误消息
)
