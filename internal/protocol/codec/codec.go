package codec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/mybridge/internal/protocol"
)

// 线上格式
const (
	FormatJSON     = "json"
	FormatProtobuf = "protobuf"
)

// Codec 消息的线上编解码
type Codec interface {
	Encode(m *protocol.Message) ([]byte, error)
	// Decode 返回的消息来自对象池，用完后应调用 PutMessage
	Decode(data []byte) (*protocol.Message, error)
	// Binary 是否使用二进制帧
	Binary() bool
}

// ForFormat 按配置名返回编解码器
func ForFormat(format string) (Codec, error) {
	switch format {
	case "", FormatJSON:
		return JSON{}, nil
	case FormatProtobuf:
		return Protobuf{}, nil
	}
	return nil, fmt.Errorf("未知的线上格式: %q", format)
}

// JSON 文本帧编解码
type JSON struct{}

func (JSON) Binary() bool { return false }

// Encode 将消息编码为 JSON 字节
func (JSON) Encode(m *protocol.Message) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := json.NewEncoder(buf).Encode(m); err != nil {
		return nil, err
	}
	// Encoder 会追加换行
	data := buf.Bytes()
	return append([]byte(nil), data[:len(data)-1]...), nil
}

// Decode 从 JSON 字节解码消息
func (JSON) Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, err
	}
	if msg.Type == "" {
		PutMessage(msg)
		return nil, fmt.Errorf("消息缺少类型")
	}
	return msg, nil
}

// Protobuf 二进制帧编解码：信封是 google.protobuf.Struct，
// 包含 type 字符串和结构化的 payload
type Protobuf struct{}

func (Protobuf) Binary() bool { return true }

// Encode 将消息编码为 Protobuf 字节
func (Protobuf) Encode(m *protocol.Message) ([]byte, error) {
	env := getEnvelope()
	defer putEnvelope(env)

	env.Fields = map[string]*structpb.Value{
		"type": structpb.NewStringValue(string(m.Type)),
	}
	if len(m.Payload) > 0 {
		payload := &structpb.Value{}
		if err := protojson.Unmarshal(m.Payload, payload); err != nil {
			return nil, fmt.Errorf("转换 payload 失败: %w", err)
		}
		env.Fields["payload"] = payload
	}
	return proto.Marshal(env)
}

// Decode 从 Protobuf 字节解码消息
func (Protobuf) Decode(data []byte) (*protocol.Message, error) {
	env := getEnvelope()
	defer putEnvelope(env)

	if err := proto.Unmarshal(data, env); err != nil {
		return nil, err
	}

	msgType := env.GetFields()["type"].GetStringValue()
	if msgType == "" {
		return nil, fmt.Errorf("消息缺少类型")
	}

	msg := GetMessage()
	msg.Type = protocol.MessageType(msgType)
	if payload, ok := env.GetFields()["payload"]; ok {
		raw, err := protojson.Marshal(payload)
		if err != nil {
			PutMessage(msg)
			return nil, err
		}
		msg.Payload = raw
	}
	return msg, nil
}
