//go:build ci

package sound

// SoundManager ci 构建下不链接音频库，所有方法都是空操作
type SoundManager struct {
	muted bool
}

func NewSoundManager(string) *SoundManager { return &SoundManager{} }

func (sm *SoundManager) Init() error { return nil }

func (sm *SoundManager) PlayEvent(string) {}

func (sm *SoundManager) Play(string) {}

func (sm *SoundManager) SetMuted(muted bool) { sm.muted = muted }

func (sm *SoundManager) Muted() bool { return sm.muted }

func (sm *SoundManager) Close() {}
