package sound

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/mybridge/internal/game/table"
)

func TestForEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind   string
		sound  string
		volume float64
		ok     bool
	}{
		{kind: table.KindRoundDealt, sound: SoundDeal, ok: true},
		{kind: table.KindTurnChanged, sound: SoundTurn, volume: -1, ok: true},
		{kind: table.KindCardPlayed, sound: SoundCard, volume: -0.5, ok: true},
		{kind: table.KindTrickResolved, sound: SoundTrick, ok: true},
		{kind: table.KindSetWon, sound: SoundWin, volume: -0.5, ok: true},
		{kind: table.KindGameWon, sound: SoundWin, ok: true},
		{kind: table.KindMatchWon, sound: SoundWin, volume: 0.5, ok: true},
		{kind: table.KindBidAccepted},
		{kind: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			t.Parallel()
			name, vol, ok := ForEvent(tt.kind)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.sound, name)
			assert.InDelta(t, tt.volume, vol, 1e-9)
		})
	}
}

func TestClipRegistry(t *testing.T) {
	t.Parallel()

	names := clipNames()
	assert.ElementsMatch(t, []string{SoundDeal, SoundTurn, SoundCard, SoundTrick, SoundWin}, names)
}

func TestSoundManager_DisabledIsSilent(t *testing.T) {
	t.Parallel()

	// 未 Init 的管理器不会触碰音频设备
	sm := NewSoundManager(t.TempDir())
	assert.NotPanics(t, func() {
		sm.PlayEvent(table.KindCardPlayed)
		sm.Play("missing")
		sm.SetMuted(true)
		sm.Close()
	})
	assert.True(t, sm.Muted())
}
