package codec

import (
	"bytes"
	"sync"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/mybridge/internal/protocol"
)

// pool 带类型的 sync.Pool，放回前先用 reset 清空对象
type pool[T any] struct {
	p     sync.Pool
	reset func(T)
}

func newPool[T any](newFn func() T, reset func(T)) *pool[T] {
	return &pool[T]{
		p:     sync.Pool{New: func() any { return newFn() }},
		reset: reset,
	}
}

func (p *pool[T]) get() T { return p.p.Get().(T) }

func (p *pool[T]) put(v T) {
	p.reset(v)
	p.p.Put(v)
}

// 每条 WebSocket 帧都要经过这三个池
var (
	messages = newPool(
		func() *protocol.Message { return &protocol.Message{} },
		func(m *protocol.Message) { m.Type, m.Payload = "", nil },
	)
	envelopes = newPool(
		func() *structpb.Struct { return &structpb.Struct{} },
		func(s *structpb.Struct) { s.Reset() },
	)
	buffers = newPool(
		func() *bytes.Buffer { return new(bytes.Buffer) },
		func(b *bytes.Buffer) { b.Reset() },
	)
)

// GetMessage 从池中取一条空消息
func GetMessage() *protocol.Message { return messages.get() }

// PutMessage 处理完入站消息后放回，之后不能再使用 msg
func PutMessage(msg *protocol.Message) {
	if msg != nil {
		messages.put(msg)
	}
}

func getEnvelope() *structpb.Struct { return envelopes.get() }

func putEnvelope(env *structpb.Struct) {
	if env != nil {
		envelopes.put(env)
	}
}

// GetBuffer 取编码缓冲，容量保留
func GetBuffer() *bytes.Buffer { return buffers.get() }

func PutBuffer(buf *bytes.Buffer) {
	if buf != nil {
		buffers.put(buf)
	}
}
