package handler

import (
	"log"
	"math/rand/v2"

	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/protocol"
	"github.com/palemoky/mybridge/internal/protocol/codec"
	"github.com/palemoky/mybridge/internal/protocol/convert"
	"github.com/palemoky/mybridge/internal/server/session"
	"github.com/palemoky/mybridge/internal/types"
)

// handleStartGame 开新牌桌，创建者按 payload.Seat 入座
func (h *Handler) handleStartGame(client types.ClientInterface, msg *protocol.Message) {
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeServerMaintenance))
		return
	}

	payload, err := codec.ParsePayload[protocol.StartGamePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	var bots [rule.SeatCount]bool
	for _, s := range payload.Bots {
		if !rule.Seat(s).Valid() {
			sendError(client, apperrors.ErrInvalidSeat)
			return
		}
		bots[s] = true
	}

	seat := rule.Seat(payload.Seat)
	if seat != session.Spectator && !seat.Valid() {
		sendError(client, apperrors.ErrInvalidSeat)
		return
	}
	if seat.Valid() && bots[seat] {
		sendError(client, apperrors.ErrSeatTaken)
		return
	}

	if payload.Seed < 0 {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	seed := uint64(payload.Seed)
	if seed == 0 {
		seed = rand.Uint64()
	}
	t, err := h.tables.Create(payload.Players, seed)
	if err != nil {
		sendError(client, err)
		return
	}

	// 新牌桌上没有人，入座不会失败
	_ = h.hub.Join(t.ID, client, seat)
	h.driver.Attach(t.ID, bots, seed)

	client.SendMessage(codec.MustNewMessage(protocol.MsgTableStarted, protocol.TableStartedPayload{
		TableID: t.ID,
		Players: payload.Players,
		Bots:    payload.Bots,
		Seat:    int(seat),
	}))
	h.sendState(client, t.ID, seat)

	log.Printf("🎲 连接 %s 开桌 %s (机器人座位 %v)", client.GetID(), t.ID, payload.Bots)
}

// handleJoinTable 入座已有牌桌
func (h *Handler) handleJoinTable(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.JoinTablePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if _, err := h.tables.Get(payload.TableID); err != nil {
		sendError(client, err)
		return
	}

	seat := rule.Seat(payload.Seat)
	if h.driver.IsBot(payload.TableID, seat) {
		sendError(client, apperrors.ErrSeatTaken)
		return
	}
	if err := h.hub.Join(payload.TableID, client, seat); err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgTableJoined, protocol.TableJoinedPayload{
		TableID: payload.TableID,
		Seat:    int(seat),
	}))
	h.sendState(client, payload.TableID, seat)

	log.Printf("🪑 %s(%s) 入座牌桌 %s 座位 %d", client.GetName(), client.GetID(), payload.TableID, seat)
}

// handleSync 请求当前座位视角的牌桌状态
func (h *Handler) handleSync(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.TablePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	seat, _ := h.hub.SeatOf(payload.TableID, client.GetID())
	h.sendState(client, payload.TableID, seat)
}

// handleAbandon 解散牌桌，只有入座的玩家可以
func (h *Handler) handleAbandon(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.TablePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if _, err := h.tables.Get(payload.TableID); err != nil {
		sendError(client, err)
		return
	}
	if seat, ok := h.hub.SeatOf(payload.TableID, client.GetID()); !ok || !seat.Valid() {
		sendError(client, apperrors.ErrNotSeated)
		return
	}

	if err := h.tables.Abandon(payload.TableID); err != nil {
		sendError(client, err)
	}
}

// sendState 发送 seat 视角的完整状态
func (h *Handler) sendState(client types.ClientInterface, tableID string, seat rule.Seat) {
	v, err := h.tables.View(tableID, seat)
	if err != nil {
		sendError(client, err)
		return
	}
	client.SendMessage(codec.MustNewMessage(protocol.MsgStateSync, convert.ViewToDTO(v, h.bots(tableID))))
}
