//go:build !ci

package sound

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const sampleRate = beep.SampleRate(44100)

// 统一转成双声道，缓冲才能混在同一个 speaker 上
var mixFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 4}

// SoundManager 牌桌音效
//
// Init 之前以及 Close 之后所有播放都是空操作。
type SoundManager struct {
	dir string

	mu    sync.RWMutex
	clips map[string]*beep.Buffer
	ready bool
	muted bool
}

// NewSoundManager dir 为音效目录，为空时使用 assets/sounds
func NewSoundManager(dir string) *SoundManager {
	if dir == "" {
		dir = defaultSoundDir
	}
	return &SoundManager{
		dir:   dir,
		clips: make(map[string]*beep.Buffer),
	}
}

// Init 打开音频设备并加载牌桌用到的音效，缺失的文件直接跳过
func (sm *SoundManager) Init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("初始化音频设备失败: %w", err)
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.ready = true

	for _, name := range clipNames() {
		buf, err := decodeClip(sm.dir, name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("加载音效 %s: %w", name, err)
		}
		sm.clips[name] = buf
	}
	return nil
}

// decodeClip 依次尝试 .wav 与 .mp3
func decodeClip(dir, name string) (*beep.Buffer, error) {
	for _, ext := range []string{".wav", ".mp3"} {
		f, err := os.Open(filepath.Join(dir, name+ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		buf, err := bufferFrom(f, ext)
		_ = f.Close()
		return buf, err
	}
	return nil, os.ErrNotExist
}

func bufferFrom(f *os.File, ext string) (*beep.Buffer, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	if ext == ".mp3" {
		stream, format, err = mp3.Decode(f)
	} else {
		stream, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = stream.Close() }()

	var src beep.Streamer = stream
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, stream)
	}

	buf := beep.NewBuffer(mixFormat)
	buf.Append(src)
	return buf, nil
}

// PlayEvent 播放牌桌事件对应的音效
func (sm *SoundManager) PlayEvent(kind string) {
	if name, vol, ok := ForEvent(kind); ok {
		sm.play(name, vol)
	}
}

// Play 按音效名以原音量播放，未加载的音效静默忽略
func (sm *SoundManager) Play(name string) {
	sm.play(name, 0)
}

func (sm *SoundManager) play(name string, vol float64) {
	sm.mu.RLock()
	buf, ok := sm.clips[name]
	active := sm.ready && !sm.muted
	sm.mu.RUnlock()

	if !active || !ok {
		return
	}

	speaker.Play(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   vol,
	})
}

// SetMuted 静音开关
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Muted 是否静音
func (sm *SoundManager) Muted() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.muted
}

func (sm *SoundManager) Close() {
	sm.mu.Lock()
	sm.ready = false
	sm.mu.Unlock()
}
