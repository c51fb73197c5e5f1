package model

import (
	"fmt"
	"strings"

	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
)

// describeEvent 把牌桌事件转成一行日志；不需要展示的事件返回空串
func describeEvent(e table.Event, me rule.Seat) string {
	switch e := e.(type) {
	case table.RoundDealt:
		if e.Bidding {
			return fmt.Sprintf("🃏 第 %d 副牌，%s 家先叫", e.Deal, e.Start)
		}
		return fmt.Sprintf("🃏 第 %d 副牌，将牌 %s，%s 家首攻", e.Deal, e.DrawnTrump, e.Start)
	case table.BidAccepted:
		return "📣 " + e.Call.String()
	case table.BiddingEnded:
		if e.Contract == nil {
			return "🔁 四家都 Pass，重新发牌"
		}
		return fmt.Sprintf("✅ 定约 %s", e.Contract)
	case table.CardPlayed:
		if e.Seat == me {
			return ""
		}
		return fmt.Sprintf("🂠 %s 出 %s", e.Seat, e.Card)
	case table.TrickResolved:
		plays := make([]string, len(e.Plays))
		for i, p := range e.Plays {
			plays[i] = p.Card.String()
		}
		return fmt.Sprintf("🏁 %s 赢墩 [%s]，%s %d : %d",
			e.Winner, strings.Join(plays, " "), e.Team, e.Round[e.Team], e.Round[e.Team.Other()])
	case table.RoundFinalized:
		return fmt.Sprintf("📊 本局结束 %d : %d", e.Round[rule.TeamA], e.Round[rule.TeamB])
	case table.SetWon:
		return fmt.Sprintf("🎉 %s 赢得一盘", e.Team)
	case table.GameWon:
		return fmt.Sprintf("🎉 %s 赢得一场", e.Team)
	case table.MatchWon:
		return fmt.Sprintf("🏆 %s 赢得比赛！", e.Team)
	}
	return ""
}
