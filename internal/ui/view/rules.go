package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/mybridge/internal/ui/common"
)

// RenderGameRules renders the game rules.
func RenderGameRules() string {
	var sb string

	sb += "【游戏目标】\n"
	sb += "南北、东西两方对抗，对家为搭档\n"
	sb += "每赢一墩得 20 分，局分达到 100 且领先即赢得一盘\n"
	sb += "赢两盘得一场，赢两场赢得比赛\n\n"

	sb += "【叫牌规则】\n"
	sb += "1. 从起始座位开始依次叫牌或 Pass\n"
	sb += "2. 叫牌必须高于当前最高叫牌：阶数更高，或同阶叫品更高\n"
	sb += "3. 叫品从低到高：♣ ♦ ♥ ♠ NT\n"
	sb += "4. 连续四次 Pass 结束叫牌；无人叫牌则重新发牌\n\n"

	sb += "【出牌规则】\n"
	sb += "1. 叫牌结束后由本副牌的起始座位首攻\n"
	sb += "2. 手里有将牌时，只能出将牌或首攻花色\n"
	sb += "3. 将牌压其他花色，同花色比点数\n"
	sb += "4. 赢墩者领出下一墩\n\n"

	sb += "【命令】\n"
	sb += "• 1NT / bid 3H：叫牌\n"
	sb += "• pass：Pass\n"
	sb += "• 10H / play 10H / 3：出牌（牌码或手牌序号）\n"
	sb += "• help：显示/隐藏帮助\n"
	sb += "• mute：音效开关\n"
	sb += "• ESC / quit：退出\n"

	return common.BoxStyle.Render(sb)
}

// RulesView renders the full rules view.
func RulesView(width, height int) string {
	var sb string

	title := common.TitleStyle("📖 游戏规则")
	sb += lipgloss.PlaceHorizontal(width, lipgloss.Center, title)
	sb += "\n\n"
	sb += lipgloss.PlaceHorizontal(width, lipgloss.Center, RenderGameRules())
	sb += "\n\n"
	sb += lipgloss.PlaceHorizontal(width, lipgloss.Center, "按 ESC 返回")

	return sb
}
