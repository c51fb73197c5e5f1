// Package common provides shared utilities for the UI.
package common

import (
	"github.com/palemoky/mybridge/internal/game/rule"
)

// TruncateName truncates a player name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// TeamLabel 渲染搭档方名称
func TeamLabel(t rule.Team) string {
	return TeamStyles[t].Render(t.String())
}

// StrainLabel 渲染叫品，红色花色使用红色
func StrainLabel(s rule.Strain) string {
	if suit, ok := s.Suit(); ok {
		return CardStyle(suit).Render(" " + s.String() + " ")
	}
	return GrayStyle.Render(s.String())
}
