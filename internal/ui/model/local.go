package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
	"github.com/palemoky/mybridge/internal/sound"
)

const (
	maxLogLines  = 10
	errorTimeout = 3 * time.Second
)

// botNames 机器人座位名
var botNames = [rule.SeatCount]string{"北家机器人", "东家机器人", "南家机器人", "西家机器人"}

// Options 本地牌桌选项
type Options struct {
	Name     string
	Seed     uint64
	Rules    table.Rules
	BotDelay time.Duration
	Sound    *sound.SoundManager // 可为 nil

	// 界面渲染函数，由 view 包注入
	Renderer func(Model) string
}

// LocalModel 本地牌桌：玩家坐北，其余三家由机器人代打
type LocalModel struct {
	table    *table.Table
	seat     rule.Seat
	bots     [rule.SeatCount]bool
	policy   table.Policy
	botDelay time.Duration

	soundManager *sound.SoundManager

	log         []string
	err         string
	showingHelp bool

	input  *textinput.Model
	width  int
	height int

	viewRenderer func(Model) string
}

// NewLocalModel 创建本地牌桌
func NewLocalModel(opts Options) (*LocalModel, error) {
	ti := textinput.New()
	ti.Placeholder = "叫牌如 1NT，pass，出牌如 10H 或序号，help 查看帮助"
	ti.CharLimit = 20
	ti.Width = 50
	ti.Focus()

	m := &LocalModel{
		seat:         0,
		policy:       table.NewRandom(opts.Seed),
		botDelay:     opts.BotDelay,
		soundManager: opts.Sound,
		input:        &ti,
		viewRenderer: opts.Renderer,
	}

	names := botNames
	names[m.seat] = opts.Name
	for s := range m.bots {
		m.bots[s] = rule.Seat(s) != m.seat
	}

	t, err := table.New("local", names, opts.Rules, table.Options{
		Seed:     opts.Seed,
		Listener: m.onEvent,
	})
	if err != nil {
		return nil, err
	}
	m.table = t
	return m, nil
}

func (m *LocalModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.nextTurn())
}

func (m *LocalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.showingHelp {
				m.showingHelp = false
				return m, nil
			}
			return m, tea.Quit
		case tea.KeyEnter:
			text := m.input.Value()
			m.input.Reset()
			return m, m.handleInput(text)
		}

	case BotTurnMsg:
		return m, m.runBot()

	case ClearErrorMsg:
		m.err = ""
		return m, nil
	}

	var cmd tea.Cmd
	*m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *LocalModel) View() string {
	if m.viewRenderer == nil {
		return ""
	}
	return m.viewRenderer(m)
}

// handleInput 执行一行玩家输入
func (m *LocalModel) handleInput(text string) tea.Cmd {
	phase, current := m.table.Turn()
	cmd, err := ParseCommand(text, phase, m.table.Hand(m.seat))
	if err != nil {
		return m.showError(err)
	}

	switch cmd.Kind {
	case CmdQuit:
		return tea.Quit
	case CmdHelp:
		m.showingHelp = !m.showingHelp
		return nil
	case CmdMute:
		m.toggleMute()
		return nil
	}

	if current != m.seat {
		return m.showError(apperrors.ErrOutOfTurn)
	}
	if err := m.table.Apply(m.seat, cmd.Action); err != nil {
		return m.showError(err)
	}
	m.err = ""
	return m.nextTurn()
}

func (m *LocalModel) toggleMute() {
	if m.soundManager == nil {
		m.appendLog("🔇 音效未开启")
		return
	}
	muted := !m.soundManager.Muted()
	m.soundManager.SetMuted(muted)
	if muted {
		m.appendLog("🔇 已静音")
	} else {
		m.appendLog("🔊 已恢复音效")
	}
}

// runBot 让当前机器人座位行动
func (m *LocalModel) runBot() tea.Cmd {
	phase, seat := m.table.Turn()
	if phase == table.PhaseClosed || !m.bots[seat] {
		return nil
	}
	if _, err := m.table.Auto(seat, m.policy); err != nil {
		return m.showError(err)
	}
	return m.nextTurn()
}

// nextTurn 轮到机器人时安排一次延迟行动
func (m *LocalModel) nextTurn() tea.Cmd {
	phase, seat := m.table.Turn()
	if phase == table.PhaseClosed || !m.bots[seat] {
		return nil
	}
	return tea.Tick(m.botDelay, func(time.Time) tea.Msg {
		return BotTurnMsg{}
	})
}

func (m *LocalModel) showError(err error) tea.Cmd {
	var ge *apperrors.GameError
	if errors.As(err, &ge) {
		m.err = "⚠️ " + ge.Message
	} else {
		m.err = fmt.Sprintf("⚠️ %v", err)
	}
	return tea.Tick(errorTimeout, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

// onEvent 牌桌事件监听，在牌桌锁内同步调用
func (m *LocalModel) onEvent(e table.Event) {
	if line := describeEvent(e, m.seat); line != "" {
		m.appendLog(line)
	}
	if m.soundManager != nil {
		m.soundManager.PlayEvent(e.Kind())
	}
}

func (m *LocalModel) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

// --- Model implementation ---

func (m *LocalModel) Width() int                { return m.width }
func (m *LocalModel) Height() int               { return m.height }
func (m *LocalModel) Seat() rule.Seat           { return m.seat }
func (m *LocalModel) State() table.View         { return m.table.View(m.seat) }
func (m *LocalModel) IsBot(seat rule.Seat) bool { return seat.Valid() && m.bots[seat] }
func (m *LocalModel) Log() []string             { return m.log }
func (m *LocalModel) Error() string             { return m.err }
func (m *LocalModel) ShowingHelp() bool         { return m.showingHelp }
func (m *LocalModel) Input() *textinput.Model   { return m.input }
