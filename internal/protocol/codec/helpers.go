package codec

import (
	"encoding/json"
	"fmt"

	"github.com/palemoky/mybridge/internal/protocol"
)

// NewMessage 把 payload 编成 JSON 放进消息；nil 表示无 payload，
// json.RawMessage 原样使用
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := &protocol.Message{Type: msgType}
	switch p := payload.(type) {
	case nil:
	case json.RawMessage:
		msg.Payload = p
	default:
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("编码 %s: %w", msgType, err)
		}
		msg.Payload = data
	}
	return msg, nil
}

// MustNewMessage 用于服务端自己构造的 payload，编码失败属于程序错误
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// ParsePayload 把消息 payload 解到 T
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	if len(msg.Payload) == 0 {
		return nil, fmt.Errorf("消息 %s 缺少 payload", msg.Type)
	}
	p := new(T)
	if err := json.Unmarshal(msg.Payload, p); err != nil {
		return nil, fmt.Errorf("解析 %s: %w", msg.Type, err)
	}
	return p, nil
}

// NewErrorMessage 按错误码表生成错误消息
func NewErrorMessage(code int) *protocol.Message {
	return NewErrorMessageWithText(code, protocol.ErrorMessages[code])
}

func NewErrorMessageWithText(code int, text string) *protocol.Message {
	return MustNewMessage(protocol.MsgError, protocol.ErrorPayload{Code: code, Message: text})
}
