package sound

import "github.com/palemoky/mybridge/internal/game/table"

const defaultSoundDir = "assets/sounds"

// 音效文件名（不含扩展名）
const (
	SoundDeal  = "deal"
	SoundTurn  = "turn"
	SoundCard  = "card"
	SoundTrick = "trick"
	SoundWin   = "win"
)

// clip 音效及其相对音量，音量以 2 为底取对数，0 为原音量
type clip struct {
	name   string
	volume float64
}

var eventSounds = map[string]clip{
	table.KindRoundDealt:    {name: SoundDeal},
	table.KindTurnChanged:   {name: SoundTurn, volume: -1},
	table.KindCardPlayed:    {name: SoundCard, volume: -0.5},
	table.KindTrickResolved: {name: SoundTrick},
	table.KindSetWon:        {name: SoundWin, volume: -0.5},
	table.KindGameWon:       {name: SoundWin},
	table.KindMatchWon:      {name: SoundWin, volume: 0.5},
}

// ForEvent 返回事件对应的音效名与音量；叫牌等事件没有音效
func ForEvent(kind string) (name string, volume float64, ok bool) {
	c, ok := eventSounds[kind]
	return c.name, c.volume, ok
}

// clipNames 去重后的音效名
func clipNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range eventSounds {
		if !seen[c.name] {
			seen[c.name] = true
			names = append(names, c.name)
		}
	}
	return names
}
