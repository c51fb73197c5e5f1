package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/mybridge/internal/apperrors"
	"github.com/palemoky/mybridge/internal/game/card"
	"github.com/palemoky/mybridge/internal/game/rule"
	"github.com/palemoky/mybridge/internal/game/table"
)

// CommandKind 输入命令种类
type CommandKind int

const (
	CmdAction CommandKind = iota
	CmdHelp
	CmdQuit
	CmdMute
)

// Command 解析后的输入
type Command struct {
	Kind   CommandKind
	Action table.Action
}

var errEmptyInput = errors.New("请输入命令，输入 help 查看帮助")

// ParseCommand 解析一行输入。
//
// 支持 "pass"、"bid 3NT"、"play 10H"、"play 3"（手牌序号，从 1 开始），
// 以及省略动词的写法：叫牌阶段 "2H" 视为叫牌，打牌阶段视为出牌。
func ParseCommand(input string, phase table.Phase, hand []card.Card) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, errEmptyInput
	}

	verb, args := fields[0], fields[1:]
	switch verb {
	case "q", "quit", "exit":
		return Command{Kind: CmdQuit}, nil
	case "h", "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "m", "mute":
		return Command{Kind: CmdMute}, nil
	case "p", "pass":
		return Command{Action: table.Action{Kind: table.ActionPass}}, nil
	case "b", "bid":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("用法: bid 3NT")
		}
		return parseBid(args[0])
	case "play":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("用法: play 10H 或 play 3")
		}
		return parsePlay(args[0], hand)
	}

	if len(args) > 0 {
		return Command{}, fmt.Errorf("无法识别的命令: %q", input)
	}
	if phase == table.PhaseBidding {
		return parseBid(verb)
	}
	return parsePlay(verb, hand)
}

func parseBid(s string) (Command, error) {
	bid, err := rule.ParseBid(s)
	if err != nil {
		return Command{}, err
	}
	return Command{Action: table.Action{Kind: table.ActionBid, Bid: bid}}, nil
}

func parsePlay(s string, hand []card.Card) (Command, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(hand) {
			return Command{}, apperrors.ErrCardNotInHand
		}
		return Command{Action: table.Action{Kind: table.ActionPlay, CardIndex: n - 1}}, nil
	}

	c, err := card.ParseCard(s)
	if err != nil {
		return Command{}, err
	}
	idx := card.IndexOf(hand, c)
	if idx < 0 {
		return Command{}, apperrors.ErrCardNotInHand
	}
	return Command{Action: table.Action{Kind: table.ActionPlay, CardIndex: idx}}, nil
}
