// Package model contains the UI model implementations.
package model

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
)

// Model 视图渲染所需的只读访问
type Model interface {
	Width() int
	Height() int
	Seat() rule.Seat
	State() table.View
	IsBot(seat rule.Seat) bool
	Log() []string
	Error() string
	ShowingHelp() bool
	Input() *textinput.Model
}

// --- Tea Messages ---

// BotTurnMsg 机器人行动的时机到了
type BotTurnMsg struct{}

// ClearErrorMsg clears error message.
type ClearErrorMsg struct{}
