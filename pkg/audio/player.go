package audio

import (
	"bytes"
	"sync"
	"time"

	"github.com/borgmon/race-alarm/pkg/logger"
	"github.com/borgmon/race-alarm/pkg/models"
	"github.com/ebitengine/oto/v3"
)

const (
	SampleRate   = 44100
	ChannelCount = 1
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	globalAudioCtxErr  error
)

// initAudioContext initializes the global audio context once
func initAudioContext(log logger.Logger) error {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: ChannelCount,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			globalAudioCtxErr = err
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		log.Info("Audio context initialized")
	})
	return globalAudioCtxErr
}

// Engine plays melodies at the volume reported by Volume.
type Engine struct {
	Volume func() float64
	Log    logger.Logger
}

// NewEngine returns an Engine. A nil volume plays at full volume.
func NewEngine(volume func() float64, log logger.Logger) *Engine {
	if volume == nil {
		volume = func() float64 { return 1 }
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Engine{Volume: volume, Log: log}
}

// Init opens the shared audio context, blocking until the device is ready.
// Later calls return the first result.
func (e *Engine) Init() error {
	return openContext(e.Log)
}

// openContext is swapped in tests that must not touch a real device.
var openContext = initAudioContext

// Player is one playback of a melody. It plays once and can be stopped early.
type Player struct {
	stopChan chan struct{}
	stopOnce sync.Once
}

// Play starts m in the background and returns at once. Opening the device and
// synthesis happen on the playback goroutine; when no device is available the
// failure is logged and nothing plays.
func (e *Engine) Play(m models.Melody) *Player {
	p := &Player{stopChan: make(chan struct{})}
	volume := e.Volume()
	go p.start(m, volume, e.Log)
	return p
}

func (p *Player) start(m models.Melody, volume float64, log logger.Logger) {
	if err := openContext(log); err != nil {
		log.Error("Failed to initialize audio context: %v", err)
		return
	}
	select {
	case <-p.stopChan:
		return
	default:
	}

	pcm := Synthesize(TuneFor(m), SampleRate, volume)
	p.play(globalAudioCtx.NewPlayer(bytes.NewReader(pcm)), log)
}

func (p *Player) play(player *oto.Player, log logger.Logger) {
	player.Play()
	for player.IsPlaying() {
		select {
		case <-p.stopChan:
			player.Pause()
			if err := player.Close(); err != nil {
				log.Warning("Failed to close audio player: %v", err)
			}
			return
		case <-time.After(10 * time.Millisecond):
		}
	}

	if err := player.Close(); err != nil {
		log.Warning("Failed to close audio player: %v", err)
	}
}

// Stop ends playback. It is safe to call more than once and on a nil Player.
func (p *Player) Stop() {
	if p == nil {
		return
	}
	p.stopOnce.Do(func() { close(p.stopChan) })
}
