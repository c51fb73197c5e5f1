package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mybridge/internal/protocol"
)

func TestForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		binary  bool
		wantErr bool
	}{
		{format: "", binary: false},
		{format: FormatJSON, binary: false},
		{format: FormatProtobuf, binary: true},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			c, err := ForFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.binary, c.Binary())
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	bid := protocol.BidPayload{TableID: "T1", Seat: 2, Level: 3, Strain: 4}

	codecs := map[string]Codec{
		FormatJSON:     JSON{},
		FormatProtobuf: Protobuf{},
	}

	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			msg := MustNewMessage(protocol.MsgBid, bid)
			data, err := c.Encode(msg)
			require.NoError(t, err)

			decoded, err := c.Decode(data)
			require.NoError(t, err)
			defer PutMessage(decoded)

			assert.Equal(t, protocol.MsgBid, decoded.Type)
			got, err := ParsePayload[protocol.BidPayload](decoded)
			require.NoError(t, err)
			assert.Equal(t, bid, *got)
		})
	}
}

func TestCodec_NoPayload(t *testing.T) {
	t.Parallel()

	for _, c := range []Codec{JSON{}, Protobuf{}} {
		msg := MustNewMessage(protocol.MsgPong, nil)
		data, err := c.Encode(msg)
		require.NoError(t, err)

		decoded, err := c.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, protocol.MsgPong, decoded.Type)
		assert.Empty(t, decoded.Payload)
		PutMessage(decoded)
	}
}

func TestCodec_DecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := JSON{}.Decode([]byte("{not json"))
	assert.Error(t, err)

	_, err = JSON{}.Decode([]byte(`{"payload":{}}`))
	assert.Error(t, err)

	_, err = Protobuf{}.Decode([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)

	// 合法的空信封但没有 type
	_, err = Protobuf{}.Decode(nil)
	assert.Error(t, err)
}

func TestJSON_EncodeShape(t *testing.T) {
	t.Parallel()

	data, err := JSON{}.Encode(MustNewMessage(protocol.MsgPass, protocol.PassPayload{TableID: "T", Seat: 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pass","payload":{"table_id":"T","seat":1}}`, string(data))
}

func TestParsePayload_Missing(t *testing.T) {
	t.Parallel()

	_, err := ParsePayload[protocol.PlayPayload](&protocol.Message{Type: protocol.MsgPlay})
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(protocol.ErrCodeOutOfTurn)
	assert.Equal(t, protocol.MsgError, msg.Type)

	p, err := ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeOutOfTurn, p.Code)
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeOutOfTurn], p.Message)

	msg = NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, "坏消息")
	p, err = ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "坏消息", p.Message)
}

func TestNewMessage_Payloads(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{"table_id":"T"}`)
	msg, err := NewMessage(protocol.MsgSync, raw)
	require.NoError(t, err)
	assert.Equal(t, raw, msg.Payload)

	_, err = NewMessage(protocol.MsgSync, make(chan int))
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewMessage(protocol.MsgSync, func() {}) })
}
