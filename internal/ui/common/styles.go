// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/mybridge/internal/game/card"
	"github.com/palemoky/mybridge/internal/game/rule"
)

// Icon constants
const (
	HumanIcon   = "👤"
	BotIcon     = "🤖"
	TurnIcon    = "▶"
	DealerIcon  = "🎯"
	TrophyIcon  = "🏆"
	TrickIcon   = "🂠"
	DeclareIcon = "📣"
)

// Lipgloss Styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	RedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	GrayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	TeamStyles  = [2]lipgloss.Style{
		rule.TeamA: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		rule.TeamB: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	}
)

// CardStyle 按花色颜色返回牌面样式
func CardStyle(s card.Suit) lipgloss.Style {
	if s.Color() == card.Red {
		return RedStyle
	}
	return BlackStyle
}

// RenderCard 渲染一张牌
func RenderCard(c card.Card) string {
	return CardStyle(c.Suit).Render(" " + c.String() + " ")
}
