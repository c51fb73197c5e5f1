package handler

import (
	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/protocol"
	"github.com/palemoky/mybridge/internal/protocol/codec"
	"github.com/palemoky/mybridge/internal/protocol/convert"
	"github.com/palemoky/mybridge/internal/types"
)

// seatFor 校验连接确实坐在 seat 上
func (h *Handler) seatFor(client types.ClientInterface, tableID string, seat int) (rule.Seat, error) {
	if _, err := h.tables.Get(tableID); err != nil {
		return 0, err
	}
	s, ok := h.hub.SeatOf(tableID, client.GetID())
	if !ok || !s.Valid() || s != rule.Seat(seat) {
		return 0, apperrors.ErrNotSeated
	}
	return s, nil
}

// handleBid 处理叫牌；结果通过牌桌事件广播
func (h *Handler) handleBid(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.BidPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	seat, err := h.seatFor(client, payload.TableID, payload.Seat)
	if err != nil {
		sendError(client, err)
		return
	}

	call := rule.Call{Bid: convert.InfoToBid(payload.Level, payload.Strain)}
	if _, err := h.tables.SubmitBid(payload.TableID, seat, call); err != nil {
		sendError(client, err)
	}
}

// handlePass 处理 Pass
func (h *Handler) handlePass(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PassPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	seat, err := h.seatFor(client, payload.TableID, payload.Seat)
	if err != nil {
		sendError(client, err)
		return
	}

	if _, err := h.tables.SubmitBid(payload.TableID, seat, rule.Call{Pass: true}); err != nil {
		sendError(client, err)
	}
}

// handlePlay 处理出牌
func (h *Handler) handlePlay(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PlayPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	seat, err := h.seatFor(client, payload.TableID, payload.Seat)
	if err != nil {
		sendError(client, err)
		return
	}

	if _, err := h.tables.SubmitPlay(payload.TableID, seat, payload.CardIndex); err != nil {
		sendError(client, err)
	}
}
