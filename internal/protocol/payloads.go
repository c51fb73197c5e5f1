package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// StartGamePayload 开新牌桌请求
type StartGamePayload struct {
	Players [4]string `json:"players"` // 按座位顺序的玩家名
	Bots    []int     `json:"bots"`    // 由服务器托管的座位
	Seed    int64     `json:"seed"`    // 0 表示随机
	Seat    int       `json:"seat"`    // 创建者入座的座位，-1 表示不入座
}

// JoinTablePayload 入座请求
type JoinTablePayload struct {
	TableID string `json:"table_id"`
	Seat    int    `json:"seat"`
}

// TablePayload 只带牌桌 ID 的请求（sync、abandon）
type TablePayload struct {
	TableID string `json:"table_id"`
}

// BidPayload 叫牌请求
type BidPayload struct {
	TableID string `json:"table_id"`
	Seat    int    `json:"seat"`
	Level   int    `json:"level"`
	Strain  int    `json:"strain"` // 0=♣ 1=♦ 2=♥ 3=♠ 4=NT
}

// PassPayload Pass 请求
type PassPayload struct {
	TableID string `json:"table_id"`
	Seat    int    `json:"seat"`
}

// PlayPayload 出牌请求
type PlayPayload struct {
	TableID   string `json:"table_id"`
	Seat      int    `json:"seat"`
	CardIndex int    `json:"card_index"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	ClientID string `json:"client_id"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// TableStartedPayload 牌桌创建成功
type TableStartedPayload struct {
	TableID string    `json:"table_id"`
	Players [4]string `json:"players"`
	Bots    []int     `json:"bots"`
	Seat    int       `json:"seat"`
}

// TableJoinedPayload 入座成功
type TableJoinedPayload struct {
	TableID string `json:"table_id"`
	Seat    int    `json:"seat"`
}

// TableClosedPayload 牌桌解散通知
type TableClosedPayload struct {
	TableID string `json:"table_id"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 牌桌状态 ---

// TableStateDTO 牌桌状态数据传输对象（用于重连恢复）
type TableStateDTO struct {
	TableID      string        `json:"table_id"`
	Seat         int           `json:"seat"` // 接收者的座位，-1 表示未入座
	Phase        string        `json:"phase"`
	Current      int           `json:"current"`
	Deal         int           `json:"deal"`
	Players      []PlayerInfo  `json:"players"`
	Hand         []CardInfo    `json:"hand"`
	DrawnTrump   string        `json:"drawn_trump,omitempty"`
	Trump        string        `json:"trump,omitempty"`
	Contract     *ContractInfo `json:"contract,omitempty"`
	Calls        []CallInfo    `json:"calls,omitempty"`
	MinimumBid   *BidInfo      `json:"minimum_bid,omitempty"`
	Trick        []PlayInfo    `json:"trick,omitempty"`
	Legal        []int         `json:"legal,omitempty"`
	TricksPlayed int           `json:"tricks_played"`
	Scores       ScoreInfo     `json:"scores"`
}

// --- 牌桌事件 Payloads ---

// RoundDealtPayload 发牌
type RoundDealtPayload struct {
	TableID    string `json:"table_id"`
	Deal       int    `json:"deal"`
	Start      int    `json:"start"`
	DrawnTrump string `json:"drawn_trump"`
	Bidding    bool   `json:"bidding"`
}

// TurnPayload 轮到某座位
type TurnPayload struct {
	TableID string `json:"table_id"`
	Seat    int    `json:"seat"`
	Phase   string `json:"phase"`
}

// BidAcceptedPayload 叫牌被接受
type BidAcceptedPayload struct {
	TableID string   `json:"table_id"`
	Call    CallInfo `json:"call"`
}

// BiddingEndedPayload 叫牌结束
type BiddingEndedPayload struct {
	TableID  string        `json:"table_id"`
	Contract *ContractInfo `json:"contract,omitempty"`
	Trump    string        `json:"trump,omitempty"`
	Redeal   bool          `json:"redeal"`
}

// CardPlayedPayload 有人出牌
type CardPlayedPayload struct {
	TableID string   `json:"table_id"`
	Seat    int      `json:"seat"`
	Card    CardInfo `json:"card"`
}

// TrickResolvedPayload 一墩结算
type TrickResolvedPayload struct {
	TableID      string     `json:"table_id"`
	Winner       int        `json:"winner"`
	Team         int        `json:"team"`
	Plays        []PlayInfo `json:"plays"`
	Round        [2]int     `json:"round"`
	TricksPlayed int        `json:"tricks_played"`
}

// RoundFinalizedPayload 一局结算
type RoundFinalizedPayload struct {
	TableID string `json:"table_id"`
	Round   [2]int `json:"round"`
	Set     [2]int `json:"set"`
	Game    [2]int `json:"game"`
}

// LadderPayload 赢得一盘、一场或整场比赛
type LadderPayload struct {
	TableID string `json:"table_id"`
	Team    int    `json:"team"`
	Scores  [2]int `json:"scores"` // 对应层级的最新比分
}

// --- 通用结构 ---

// CardInfo 牌信息
type CardInfo struct {
	Suit int    `json:"suit"` // 花色: 0=梅花, 1=方块, 2=红心, 3=黑桃
	Rank int    `json:"rank"` // 点数: 2-14 (J=11, Q=12, K=13, A=14)
	Code string `json:"code"` // 如 "10H"
}

// PlayerInfo 座位信息
type PlayerInfo struct {
	Seat     int       `json:"seat"`
	Name     string    `json:"name"`
	Team     int       `json:"team"`
	HandSize int       `json:"hand_size"`
	Played   *CardInfo `json:"played,omitempty"`
	IsBot    bool      `json:"is_bot"`
}

// BidInfo 叫牌信息
type BidInfo struct {
	Level  int    `json:"level"`
	Strain int    `json:"strain"`
	Text   string `json:"text"` // 如 "3NT"
}

// CallInfo 叫牌记录
type CallInfo struct {
	Seat int      `json:"seat"`
	Pass bool     `json:"pass"`
	Bid  *BidInfo `json:"bid,omitempty"`
}

// ContractInfo 定约
type ContractInfo struct {
	Bid      BidInfo `json:"bid"`
	Declarer int     `json:"declarer"`
}

// PlayInfo 一墩中的一次出牌
type PlayInfo struct {
	Seat int      `json:"seat"`
	Card CardInfo `json:"card"`
}

// ScoreInfo 双方分数
type ScoreInfo struct {
	Round [2]int `json:"round"`
	Set   [2]int `json:"set"`
	Game  [2]int `json:"game"`
	Match [2]int `json:"match"`
}
