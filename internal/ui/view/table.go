// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/mybridge/internal/game/card"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
	"github.com/palemoky/mybridge/internal/ui/common"
	"github.com/palemoky/mybridge/internal/ui/model"
)

const nameWidth = 10

// Render 渲染整张牌桌，帮助打开时居中显示规则
func Render(m model.Model) string {
	if m.ShowingHelp() {
		return lipgloss.Place(m.Width(), m.Height(),
			lipgloss.Center, lipgloss.Center,
			RenderGameRules(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}
	return TableView(m)
}

// TableView renders the main table view for bidding and playing phases.
func TableView(m model.Model) string {
	width := m.Width()
	state := m.State()

	var sb strings.Builder

	title := common.TitleStyle(fmt.Sprintf("🃏 第 %d 副牌 · %s", state.Deal, phaseLabel(state.Phase)))
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		renderScoreboard(state),
		"  ",
		renderContract(state),
	)
	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, top))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderSeats(m, state)))
	sb.WriteString("\n")

	if state.Phase == table.PhaseBidding && state.Auction != nil {
		sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderAuction(state.Auction)))
		sb.WriteString("\n")
	}

	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, RenderHand(state.Hand, state.Legal)))
	sb.WriteString("\n")

	if log := m.Log(); len(log) > 0 {
		sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, common.BoxStyle.Render(strings.Join(log, "\n"))))
		sb.WriteString("\n")
	}

	sb.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderPrompt(m, state)))

	return common.DocStyle.Render(sb.String())
}

func phaseLabel(p table.Phase) string {
	switch p {
	case table.PhaseBidding:
		return "叫牌中"
	case table.PhasePlaying:
		return "打牌中"
	default:
		return "已结束"
	}
}

// renderScoreboard 计分阶梯：局分、盘、场、比赛
func renderScoreboard(state table.View) string {
	l := state.Ledger
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6s %4s %3s %3s %3s\n", "", "局分", "盘", "场", "赛"))
	for _, t := range rule.Teams {
		sb.WriteString(fmt.Sprintf("%s %5d %3d %3d %3d\n",
			common.TeamLabel(t), l.Round[t], l.Set[t], l.Game[t], l.Match[t]))
	}
	return common.BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// renderContract 定约、将牌和已完成墩数
func renderContract(state table.View) string {
	var lines []string

	switch {
	case state.Contract != nil:
		lines = append(lines, fmt.Sprintf("%s 定约: %d%s 由 %s",
			common.DeclareIcon, state.Contract.Bid.Level, common.StrainLabel(state.Contract.Bid.Strain), state.Contract.Declarer))
	case state.DrawnTrump != nil && state.Trump != nil:
		lines = append(lines, "🎲 抽到将牌: "+common.StrainLabel(*state.Trump))
	default:
		lines = append(lines, "定约: 未定")
	}

	if state.Trump != nil {
		lines = append(lines, "将牌: "+common.StrainLabel(*state.Trump))
	}
	lines = append(lines, fmt.Sprintf("墩数: %d / 13", state.TricksPlayed))

	return common.BoxStyle.Render(strings.Join(lines, "\n"))
}

// renderSeats 四个座位：名字、剩余张数、本墩出的牌
func renderSeats(m model.Model, state table.View) string {
	cells := make([]string, 0, rule.SeatCount)
	for s := rule.Seat(0); s < rule.SeatCount; s++ {
		icon := common.HumanIcon
		if m.IsBot(s) {
			icon = common.BotIcon
		}
		marker := "  "
		if state.Phase != table.PhaseClosed && s == state.Current {
			marker = common.TurnIcon + " "
		}
		if s == m.Seat() {
			icon += "(你)"
		}

		played := common.GrayStyle.Render(" -- ")
		if c := state.Played[s]; c != nil {
			played = common.RenderCard(*c)
		}

		cell := fmt.Sprintf("%s%s %s %s\n%s 剩 %d 张\n%s",
			marker, s, icon, common.TruncateName(state.Names[s], nameWidth),
			common.TeamLabel(s.Team()), state.HandSizes[s],
			played)
		cells = append(cells, common.BoxStyle.Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// renderAuction 叫牌记录
func renderAuction(a *rule.AuctionState) string {
	if len(a.Calls) == 0 {
		return common.GrayStyle.Render("尚无叫牌")
	}
	calls := make([]string, len(a.Calls))
	for i, c := range a.Calls {
		calls[i] = c.String()
	}
	return "叫牌: " + strings.Join(calls, " → ")
}

// RenderHand 渲染手牌，序号从 1 开始；legal 非空时不可出的牌置灰
func RenderHand(hand []card.Card, legal []int) string {
	if len(hand) == 0 {
		return ""
	}

	allowed := make(map[int]bool, len(legal))
	for _, i := range legal {
		allowed[i] = true
	}

	cards := make([]string, len(hand))
	for i, c := range hand {
		face := common.RenderCard(c)
		if len(legal) > 0 && !allowed[i] {
			face = common.GrayStyle.Render(" " + c.String() + " ")
		}
		cards[i] = lipgloss.JoinVertical(lipgloss.Center, face, fmt.Sprintf("%d", i+1))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, cards...)
}

func renderPrompt(m model.Model, state table.View) string {
	var sb strings.Builder

	switch {
	case state.Phase == table.PhaseClosed:
		sb.WriteString("牌桌已结束，按 ESC 退出")
	case state.Current == m.Seat() && state.Phase == table.PhaseBidding:
		hint := "轮到你叫牌"
		if state.MinimumBid != nil {
			hint += fmt.Sprintf("（最低 %s）", state.MinimumBid)
		}
		sb.WriteString(hint)
	case state.Current == m.Seat():
		sb.WriteString("轮到你出牌")
	default:
		sb.WriteString(fmt.Sprintf("等待 %s 行动...", state.Current))
	}
	sb.WriteString("\n")
	sb.WriteString(m.Input().View())

	if e := m.Error(); e != "" {
		sb.WriteString("\n")
		sb.WriteString(common.ErrorStyle.Render(e))
	}
	return common.PromptStyle.Render(sb.String())
}
