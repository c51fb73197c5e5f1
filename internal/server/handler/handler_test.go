package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mybridge/internal/game/table"
	"github.com/palemoky/mybridge/internal/game/tables"
	"github.com/palemoky/mybridge/internal/protocol"
	"github.com/palemoky/mybridge/internal/protocol/codec"
	"github.com/palemoky/mybridge/internal/server/session"
	"github.com/palemoky/mybridge/internal/testutil"
)

var testPlayers = [4]string{"Alex", "Lisa", "John", "Marie"}

const waitFor = 2 * time.Second

type testEnv struct {
	h      *Handler
	tables *tables.Manager
	server *testutil.MockGateway
}

func newTestEnv(t *testing.T, maintenance bool) *testEnv {
	t.Helper()

	srv := &testutil.MockGateway{}
	srv.On("IsMaintenanceMode").Return(maintenance).Maybe()

	h := NewHandler(HandlerDeps{Server: srv, Hub: session.NewHub()})
	m := tables.NewManager(nil, table.DefaultRules(), time.Minute, h.Hooks())
	d := session.NewDriver(m, time.Millisecond, 0)
	h.Bind(m, d)

	t.Cleanup(func() {
		d.Close()
		m.Close()
		h.Close()
	})
	return &testEnv{h: h, tables: m, server: srv}
}

func send(h *Handler, c *testutil.SimpleClient, msgType protocol.MessageType, payload any) {
	h.Handle(c, codec.MustNewMessage(msgType, payload))
}

func payloadOf[T any](t *testing.T, msg *protocol.Message) *T {
	t.Helper()
	require.NotNil(t, msg)
	p, err := codec.ParsePayload[T](msg)
	require.NoError(t, err)
	return p
}

func lastError(t *testing.T, c *testutil.SimpleClient) int {
	t.Helper()
	return payloadOf[protocol.ErrorPayload](t, c.Last(protocol.MsgError)).Code
}

// startTable 开一张四个真人的牌桌，返回牌桌 ID 和四个座位上的连接
func startTable(t *testing.T, env *testEnv) (string, [4]*testutil.SimpleClient) {
	t.Helper()

	var clients [4]*testutil.SimpleClient
	for i := range clients {
		clients[i] = &testutil.SimpleClient{ID: testPlayers[i], Name: testPlayers[i]}
	}

	send(env.h, clients[0], protocol.MsgStartGame, protocol.StartGamePayload{Players: testPlayers, Seed: 42, Seat: 0})
	started := payloadOf[protocol.TableStartedPayload](t, clients[0].Last(protocol.MsgTableStarted))

	for i := 1; i < 4; i++ {
		send(env.h, clients[i], protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: started.TableID, Seat: i})
		require.NotNil(t, clients[i].Last(protocol.MsgTableJoined))
	}
	return started.TableID, clients
}

func TestHandler_StartGame(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	c := &testutil.SimpleClient{ID: "c1"}

	send(env.h, c, protocol.MsgStartGame, protocol.StartGamePayload{Players: testPlayers, Seed: 7, Seat: 2})

	started := payloadOf[protocol.TableStartedPayload](t, c.Last(protocol.MsgTableStarted))
	assert.NotEmpty(t, started.TableID)
	assert.Equal(t, 2, started.Seat)
	assert.Equal(t, 1, env.tables.Count())

	state := payloadOf[protocol.TableStateDTO](t, c.Last(protocol.MsgStateSync))
	assert.Equal(t, 2, state.Seat)
	assert.Equal(t, "bidding", state.Phase)
	assert.Len(t, state.Hand, 13)
	assert.Len(t, state.Players, 4)
}

func TestHandler_StartGameRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		maintenance bool
		payload     any
		code        int
	}{
		{
			name:        "Maintenance",
			maintenance: true,
			payload:     protocol.StartGamePayload{Players: testPlayers},
			code:        protocol.ErrCodeServerMaintenance,
		},
		{
			name:    "Missing player",
			payload: protocol.StartGamePayload{Players: [4]string{"a", "b", "c", ""}},
			code:    protocol.ErrCodeInvalidPlayers,
		},
		{
			name:    "Bot seat out of range",
			payload: protocol.StartGamePayload{Players: testPlayers, Bots: []int{4}},
			code:    protocol.ErrCodeInvalidSeat,
		},
		{
			name:    "Creator seat out of range",
			payload: protocol.StartGamePayload{Players: testPlayers, Seat: 7},
			code:    protocol.ErrCodeInvalidSeat,
		},
		{
			name:    "Negative seed",
			payload: protocol.StartGamePayload{Players: testPlayers, Seed: -1},
			code:    protocol.ErrCodeInvalidMsg,
		},
		{
			name:    "Creator sits on bot seat",
			payload: protocol.StartGamePayload{Players: testPlayers, Bots: []int{1}, Seat: 1},
			code:    protocol.ErrCodeSeatTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, tt.maintenance)
			c := &testutil.SimpleClient{ID: "c1"}
			send(env.h, c, protocol.MsgStartGame, tt.payload)

			assert.Equal(t, tt.code, lastError(t, c))
			assert.Equal(t, 0, env.tables.Count())
		})
	}
}

func TestHandler_JoinTableErrors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	owner := &testutil.SimpleClient{ID: "owner"}
	send(env.h, owner, protocol.MsgStartGame, protocol.StartGamePayload{Players: testPlayers, Bots: []int{3}, Seat: 0})
	id := payloadOf[protocol.TableStartedPayload](t, owner.Last(protocol.MsgTableStarted)).TableID

	c := &testutil.SimpleClient{ID: "guest"}

	send(env.h, c, protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: "missing", Seat: 1})
	assert.Equal(t, protocol.ErrCodeTableNotFound, lastError(t, c))

	send(env.h, c, protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: id, Seat: 0})
	assert.Equal(t, protocol.ErrCodeSeatTaken, lastError(t, c))

	send(env.h, c, protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: id, Seat: 3})
	assert.Equal(t, protocol.ErrCodeSeatTaken, lastError(t, c))

	send(env.h, c, protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: id, Seat: 9})
	assert.Equal(t, protocol.ErrCodeInvalidSeat, lastError(t, c))

	// 旁观
	send(env.h, c, protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: id, Seat: -1})
	require.NotNil(t, c.Last(protocol.MsgTableJoined))
	state := payloadOf[protocol.TableStateDTO](t, c.Last(protocol.MsgStateSync))
	assert.Equal(t, -1, state.Seat)
	assert.Empty(t, state.Hand)
}

func TestHandler_BidBroadcast(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	id, clients := startTable(t, env)

	state := payloadOf[protocol.TableStateDTO](t, clients[0].Last(protocol.MsgStateSync))
	require.Equal(t, 0, state.Current)

	send(env.h, clients[0], protocol.MsgBid, protocol.BidPayload{TableID: id, Seat: 0, Level: 1, Strain: 4})
	assert.Nil(t, clients[0].Last(protocol.MsgError))

	for _, c := range clients {
		assert.Eventually(t, func() bool { return c.Last(protocol.MsgBidAccepted) != nil }, waitFor, 5*time.Millisecond)
		accepted := payloadOf[protocol.BidAcceptedPayload](t, c.Last(protocol.MsgBidAccepted))
		require.NotNil(t, accepted.Call.Bid)
		assert.Equal(t, "1NT", accepted.Call.Bid.Text)
	}
}

func TestHandler_GameErrors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	id, clients := startTable(t, env)

	tests := []struct {
		name    string
		client  int
		msgType protocol.MessageType
		payload any
		code    int
	}{
		{
			name:    "Out of turn",
			client:  1,
			msgType: protocol.MsgPass,
			payload: protocol.PassPayload{TableID: id, Seat: 1},
			code:    protocol.ErrCodeOutOfTurn,
		},
		{
			name:    "Acting for another seat",
			client:  1,
			msgType: protocol.MsgPass,
			payload: protocol.PassPayload{TableID: id, Seat: 0},
			code:    protocol.ErrCodeNotSeated,
		},
		{
			name:    "Bid out of range",
			client:  0,
			msgType: protocol.MsgBid,
			payload: protocol.BidPayload{TableID: id, Seat: 0, Level: 8, Strain: 0},
			code:    protocol.ErrCodeInvalidBid,
		},
		{
			name:    "Play during bidding",
			client:  0,
			msgType: protocol.MsgPlay,
			payload: protocol.PlayPayload{TableID: id, Seat: 0, CardIndex: 0},
			code:    protocol.ErrCodeWrongPhase,
		},
		{
			name:    "Unknown table",
			client:  0,
			msgType: protocol.MsgPass,
			payload: protocol.PassPayload{TableID: "missing", Seat: 0},
			code:    protocol.ErrCodeTableNotFound,
		},
	}

	// 共享一张牌桌，不并行
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := clients[tt.client]
			send(env.h, c, tt.msgType, tt.payload)
			assert.Equal(t, tt.code, lastError(t, c))
		})
	}
}

func TestHandler_InvalidMessages(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	c := &testutil.SimpleClient{ID: "c1"}

	env.h.Handle(c, &protocol.Message{Type: "teleport"})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastError(t, c))

	c.Reset()
	env.h.Handle(c, &protocol.Message{Type: protocol.MsgBid, Payload: []byte(`"nope"`)})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastError(t, c))

	c.Reset()
	env.h.Handle(c, &protocol.Message{Type: protocol.MsgPlay})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastError(t, c))
}

func TestHandler_Ping(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	c := &testutil.SimpleClient{ID: "c1"}

	send(env.h, c, protocol.MsgPing, protocol.PingPayload{Timestamp: 12345})
	pong := payloadOf[protocol.PongPayload](t, c.Last(protocol.MsgPong))
	assert.Equal(t, int64(12345), pong.ClientTimestamp)
	assert.Positive(t, pong.ServerTimestamp)
}

func TestHandler_SyncAndAbandon(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	id, clients := startTable(t, env)

	clients[2].Reset()
	send(env.h, clients[2], protocol.MsgSync, protocol.TablePayload{TableID: id})
	state := payloadOf[protocol.TableStateDTO](t, clients[2].Last(protocol.MsgStateSync))
	assert.Equal(t, 2, state.Seat)
	assert.Len(t, state.Hand, 13)

	stranger := &testutil.SimpleClient{ID: "stranger"}
	send(env.h, stranger, protocol.MsgAbandon, protocol.TablePayload{TableID: id})
	assert.Equal(t, protocol.ErrCodeNotSeated, lastError(t, stranger))

	send(env.h, clients[1], protocol.MsgAbandon, protocol.TablePayload{TableID: id})
	for _, c := range clients {
		assert.Eventually(t, func() bool { return c.Last(protocol.MsgTableClosed) != nil }, waitFor, 5*time.Millisecond)
	}
	assert.Equal(t, 0, env.tables.Count())

	send(env.h, clients[0], protocol.MsgSync, protocol.TablePayload{TableID: id})
	assert.Equal(t, protocol.ErrCodeTableNotFound, lastError(t, clients[0]))
}

func TestHandler_BotsPlayAlong(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	c := &testutil.SimpleClient{ID: "human"}

	send(env.h, c, protocol.MsgStartGame, protocol.StartGamePayload{
		Players: testPlayers,
		Bots:    []int{1, 2, 3},
		Seed:    5,
		Seat:    0,
	})
	id := payloadOf[protocol.TableStartedPayload](t, c.Last(protocol.MsgTableStarted)).TableID

	state := payloadOf[protocol.TableStateDTO](t, c.Last(protocol.MsgStateSync))
	assert.True(t, state.Players[1].IsBot)
	assert.False(t, state.Players[0].IsBot)

	// 开叫的是真人座位 0
	send(env.h, c, protocol.MsgBid, protocol.BidPayload{TableID: id, Seat: 0, Level: 1, Strain: 0})

	// 三个机器人依次行动后又轮到座位 0
	assert.Eventually(t, func() bool {
		for _, msg := range c.Messages() {
			if msg.Type != protocol.MsgBidAccepted {
				continue
			}
			p, err := codec.ParsePayload[protocol.BidAcceptedPayload](msg)
			if err == nil && p.Call.Seat == 3 {
				return true
			}
		}
		return false
	}, waitFor, 5*time.Millisecond)
}

func TestHandler_ClientGoneFreesSeat(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	id, clients := startTable(t, env)

	env.h.ClientGone(clients[3].ID)

	newcomer := &testutil.SimpleClient{ID: "newcomer"}
	send(env.h, newcomer, protocol.MsgJoinTable, protocol.JoinTablePayload{TableID: id, Seat: 3})
	assert.NotNil(t, newcomer.Last(protocol.MsgTableJoined))
	assert.Nil(t, newcomer.Last(protocol.MsgError))
}
