// Package types 放置 server 与 handler 共用的接口，避免两个包互相引用
package types

import (
	"github.com/palemoky/mybridge/internal/protocol"
)

// Gateway 处理器需要的服务器能力
type Gateway interface {
	IsMaintenanceMode() bool
}

// ClientInterface 一个已连接的玩家或旁观者
type ClientInterface interface {
	GetID() string
	GetName() string
	SendMessage(msg *protocol.Message)
	Close()
}
