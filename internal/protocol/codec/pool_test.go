package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/mybridge/internal/protocol"
)

func TestMessagePool_GetPut(t *testing.T) {
	// 不并行：放回池后还要检查同一个对象
	msg := GetMessage()
	assert.NotNil(t, msg)

	msg.Type = "test"
	msg.Payload = []byte("data")
	PutMessage(msg)

	// 放回后字段被清空
	assert.Empty(t, msg.Type)
	assert.Nil(t, msg.Payload)
}

func TestMessagePool_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutMessage(nil)
		PutBuffer(nil)
		putEnvelope(nil)
	})
}

func TestEnvelopePool_Reset(t *testing.T) {
	env := getEnvelope()
	env.Fields = map[string]*structpb.Value{"type": structpb.NewStringValue("ping")}
	putEnvelope(env)

	assert.Empty(t, env.GetFields())
}

func TestBufferPool_GetPut(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("hello")
	PutBuffer(buf)

	assert.Equal(t, 0, buf.Len())
}

func TestPools_Concurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			msg := GetMessage()
			msg.Type = protocol.MsgPing
			PutMessage(msg)

			buf := GetBuffer()
			buf.WriteString("x")
			PutBuffer(buf)
		})
	}
	wg.Wait()
}
