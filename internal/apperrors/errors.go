package apperrors

import (
	"errors"

	"github.com/palemoky/mybridge/internal/protocol"
)

// GameError 游戏错误（引擎、牌桌和网关共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误；被拒绝的操作不会改变牌桌状态
var (
	ErrTableNotFound   = &GameError{Code: protocol.ErrCodeTableNotFound, Message: "牌桌不存在"}
	ErrInvalidSeat     = &GameError{Code: protocol.ErrCodeInvalidSeat, Message: "无效的座位"}
	ErrInvalidPlayers  = &GameError{Code: protocol.ErrCodeInvalidPlayers, Message: "需要恰好四名玩家"}
	ErrWrongPhase      = &GameError{Code: protocol.ErrCodeWrongPhase, Message: "当前阶段不允许该操作"}
	ErrOutOfTurn       = &GameError{Code: protocol.ErrCodeOutOfTurn, Message: "还没轮到您"}
	ErrInvalidBid      = &GameError{Code: protocol.ErrCodeInvalidBid, Message: "叫牌必须高于当前最高叫牌"}
	ErrCardNotInHand   = &GameError{Code: protocol.ErrCodeCardNotInHand, Message: "手牌中没有这张牌"}
	ErrRevokeViolation = &GameError{Code: protocol.ErrCodeRevokeViolation, Message: "出牌违反跟牌规则"}
	ErrBiddingClosed   = &GameError{Code: protocol.ErrCodeBiddingClosed, Message: "叫牌已结束"}

	// 网关入座
	ErrSeatTaken = &GameError{Code: protocol.ErrCodeSeatTaken, Message: "该座位已有玩家"}
	ErrNotSeated = &GameError{Code: protocol.ErrCodeNotSeated, Message: "您不在该座位上"}
)

// Code 提取错误码，非 GameError 返回 ErrCodeUnknown
func Code(err error) int {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Code
	}
	return protocol.ErrCodeUnknown
}
