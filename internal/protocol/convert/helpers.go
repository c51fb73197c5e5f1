package convert

import (
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
	"github.com/palemoky/mybridge/internal/protocol"
)

// --- 叫牌转换 ---

// BidToInfo 将 rule.Bid 转换为 protocol.BidInfo
func BidToInfo(b rule.Bid) protocol.BidInfo {
	return protocol.BidInfo{
		Level:  b.Level,
		Strain: int(b.Strain),
		Text:   b.String(),
	}
}

// InfoToBid 将请求中的阶数和叫品转换为 rule.Bid
func InfoToBid(level, strain int) rule.Bid {
	return rule.Bid{Level: level, Strain: rule.Strain(strain)}
}

// CallToInfo 将 rule.Call 转换为 protocol.CallInfo
func CallToInfo(c rule.Call) protocol.CallInfo {
	info := protocol.CallInfo{Seat: int(c.Seat), Pass: c.Pass}
	if !c.Pass {
		b := BidToInfo(c.Bid)
		info.Bid = &b
	}
	return info
}

// CallsToInfos 将叫牌记录转换为 []protocol.CallInfo
func CallsToInfos(calls []rule.Call) []protocol.CallInfo {
	infos := make([]protocol.CallInfo, len(calls))
	for i, c := range calls {
		infos[i] = CallToInfo(c)
	}
	return infos
}

// ContractToInfo 将定约转换为 protocol.ContractInfo，nil 表示无定约
func ContractToInfo(c *rule.Contract) *protocol.ContractInfo {
	if c == nil {
		return nil
	}
	return &protocol.ContractInfo{Bid: BidToInfo(c.Bid), Declarer: int(c.Declarer)}
}

// --- 牌桌状态转换 ---

// ViewToDTO 将 table.View 转换为 protocol.TableStateDTO，bots 标记托管座位
func ViewToDTO(v table.View, bots [rule.SeatCount]bool) *protocol.TableStateDTO {
	dto := &protocol.TableStateDTO{
		TableID:      v.TableID,
		Seat:         int(v.Seat),
		Phase:        v.Phase.String(),
		Current:      int(v.Current),
		Deal:         v.Deal,
		Players:      make([]protocol.PlayerInfo, rule.SeatCount),
		Hand:         CardsToInfos(v.Hand),
		Legal:        v.Legal,
		TricksPlayed: v.TricksPlayed,
		Scores: protocol.ScoreInfo{
			Round: v.Ledger.Round,
			Set:   v.Ledger.Set,
			Game:  v.Ledger.Game,
			Match: v.Ledger.Match,
		},
	}
	if !v.Seat.Valid() {
		dto.Seat = -1
	}

	for i := range rule.SeatCount {
		seat := rule.Seat(i)
		p := protocol.PlayerInfo{
			Seat:     i,
			Name:     v.Names[i],
			Team:     int(seat.Team()),
			HandSize: v.HandSizes[i],
			IsBot:    bots[i],
		}
		if v.Played[i] != nil {
			c := CardToInfo(*v.Played[i])
			p.Played = &c
		}
		dto.Players[i] = p
	}

	if v.DrawnTrump != nil {
		dto.DrawnTrump = SuitText(*v.DrawnTrump)
	}
	if v.Trump != nil {
		dto.Trump = v.Trump.String()
	}
	dto.Contract = ContractToInfo(v.Contract)
	if v.Auction != nil {
		dto.Calls = CallsToInfos(v.Auction.Calls)
	}
	if v.MinimumBid != nil {
		b := BidToInfo(*v.MinimumBid)
		dto.MinimumBid = &b
	}
	if v.Trick != nil {
		dto.Trick = PlaysToInfos(v.Trick.Plays)
	}
	return dto
}

// --- 事件转换 ---

// EventToPayload 将牌桌事件转换为消息类型和 payload
func EventToPayload(tableID string, e table.Event) (protocol.MessageType, any) {
	switch ev := e.(type) {
	case table.RoundDealt:
		return protocol.MsgRoundDealt, protocol.RoundDealtPayload{
			TableID:    tableID,
			Deal:       ev.Deal,
			Start:      int(ev.Start),
			DrawnTrump: SuitText(ev.DrawnTrump),
			Bidding:    ev.Bidding,
		}
	case table.TurnChanged:
		return protocol.MsgTurn, protocol.TurnPayload{
			TableID: tableID,
			Seat:    int(ev.Seat),
			Phase:   ev.Phase.String(),
		}
	case table.BidAccepted:
		return protocol.MsgBidAccepted, protocol.BidAcceptedPayload{
			TableID: tableID,
			Call:    CallToInfo(ev.Call),
		}
	case table.BiddingEnded:
		p := protocol.BiddingEndedPayload{
			TableID:  tableID,
			Contract: ContractToInfo(ev.Contract),
			Redeal:   ev.Contract == nil,
		}
		if ev.Contract != nil {
			p.Trump = ev.Trump.String()
		}
		return protocol.MsgBiddingEnded, p
	case table.CardPlayed:
		return protocol.MsgCardPlayed, protocol.CardPlayedPayload{
			TableID: tableID,
			Seat:    int(ev.Seat),
			Card:    CardToInfo(ev.Card),
		}
	case table.TrickResolved:
		return protocol.MsgTrickResolved, protocol.TrickResolvedPayload{
			TableID:      tableID,
			Winner:       int(ev.Winner),
			Team:         int(ev.Team),
			Plays:        PlaysToInfos(ev.Plays),
			Round:        ev.Round,
			TricksPlayed: ev.TricksPlayed,
		}
	case table.RoundFinalized:
		return protocol.MsgRoundFinalized, protocol.RoundFinalizedPayload{
			TableID: tableID,
			Round:   ev.Round,
			Set:     ev.Set,
			Game:    ev.Game,
		}
	case table.SetWon:
		return protocol.MsgSetWon, protocol.LadderPayload{TableID: tableID, Team: int(ev.Team), Scores: ev.Set}
	case table.GameWon:
		return protocol.MsgGameWon, protocol.LadderPayload{TableID: tableID, Team: int(ev.Team), Scores: ev.Game}
	case table.MatchWon:
		return protocol.MsgMatchWon, protocol.LadderPayload{TableID: tableID, Team: int(ev.Team), Scores: ev.Match}
	}
	return "", nil
}
