package protocol

// 错误码
const (
	ErrCodeUnknown           = 1000
	ErrCodeInvalidMsg        = 1001
	ErrCodeTableNotFound     = 2001
	ErrCodeInvalidSeat       = 2002
	ErrCodeInvalidPlayers    = 2003
	ErrCodeSeatTaken         = 2004
	ErrCodeNotSeated         = 2005
	ErrCodeWrongPhase        = 3001
	ErrCodeOutOfTurn         = 3002
	ErrCodeInvalidBid        = 3003
	ErrCodeCardNotInHand     = 3004
	ErrCodeRevokeViolation   = 3005
	ErrCodeBiddingClosed     = 3006
	ErrCodeRateLimit         = 5001 // 请求过于频繁
	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "未知错误",
	ErrCodeInvalidMsg:        "无效的消息格式",
	ErrCodeTableNotFound:     "牌桌不存在",
	ErrCodeInvalidSeat:       "无效的座位",
	ErrCodeInvalidPlayers:    "需要恰好四名玩家",
	ErrCodeSeatTaken:         "该座位已有玩家",
	ErrCodeNotSeated:         "您不在该座位上",
	ErrCodeWrongPhase:        "当前阶段不允许该操作",
	ErrCodeOutOfTurn:         "还没轮到您",
	ErrCodeInvalidBid:        "叫牌必须高于当前最高叫牌",
	ErrCodeCardNotInHand:     "手牌中没有这张牌",
	ErrCodeRevokeViolation:   "出牌违反跟牌规则",
	ErrCodeBiddingClosed:     "叫牌已结束",
	ErrCodeRateLimit:         "操作过于频繁，请稍后再试",
	ErrCodeServerMaintenance: "服务器维护中",
}
