package audio

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate   = 44100
	channelCount = 1
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// chimeData is the synthesized notification tone, generated once
var (
	chimeData     []byte
	chimeDataOnce sync.Once
)

// Player manages chime playback with cancellation support
type Player struct {
	stopChan chan struct{}
	player   *oto.Player
	stopped  bool
	mu       sync.Mutex
}

// initAudioContext initializes the global audio context once
func initAudioContext() {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// PlayChime plays the notification tone once and returns a Player for
// control, or nil if audio is unavailable
func PlayChime() *Player {
	initAudioContext()

	if !audioCtxReady || globalAudioCtx == nil {
		log.Printf("Audio context not ready")
		return nil
	}

	chimeDataOnce.Do(func() {
		chimeData = synthesizeChime()
	})

	p := &Player{
		stopChan: make(chan struct{}),
	}

	// Play the sound in a goroutine so it doesn't block
	go func() {
		p.player = globalAudioCtx.NewPlayer(bytes.NewReader(chimeData))
		p.player.Play()

		for p.player.IsPlaying() {
			select {
			case <-p.stopChan:
				p.player.Pause()
				p.player.Close()
				return
			case <-time.After(10 * time.Millisecond):
				// Continue checking
			}
		}

		if err := p.player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}
	}()

	return p
}

// Stop stops the chime playback
func (p *Player) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)
	}
}

// synthesizeChime generates a short two-note tone (no bundled asset
// needed): E6 into A6 with an exponential decay envelope
func synthesizeChime() []byte {
	type note struct {
		freq     float64
		duration time.Duration
	}
	notes := []note{
		{freq: 1318.51, duration: 120 * time.Millisecond},
		{freq: 1760.00, duration: 220 * time.Millisecond},
	}

	var buf bytes.Buffer
	for _, n := range notes {
		samples := int(float64(sampleRate) * n.duration.Seconds())
		for i := 0; i < samples; i++ {
			t := float64(i) / sampleRate
			envelope := math.Exp(-6 * float64(i) / float64(samples))
			value := 0.35 * envelope * math.Sin(2*math.Pi*n.freq*t)
			binary.Write(&buf, binary.LittleEndian, int16(value*math.MaxInt16))
		}
	}
	return buf.Bytes()
}
