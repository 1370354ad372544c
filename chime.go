package main

import (
	"bytes"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

const chimeSampleRate = 44100

// initAudioContext initializes the global audio context once
func initAudioContext() {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   chimeSampleRate,
			ChannelCount: 1,
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

// chimeTone synthesizes a short two-note reminder chime as 16-bit mono PCM.
func chimeTone() []byte {
	notes := []float64{880.0, 1174.66} // A5 then D6
	noteLen := chimeSampleRate / 3     // ~330ms per note

	buf := make([]byte, 0, len(notes)*noteLen*2)
	for _, freq := range notes {
		for i := 0; i < noteLen; i++ {
			// Linear decay keeps the tone soft instead of beepy.
			envelope := 1.0 - float64(i)/float64(noteLen)
			sample := math.Sin(2*math.Pi*freq*float64(i)/chimeSampleRate) * envelope * 0.4
			v := int16(sample * math.MaxInt16)
			buf = append(buf, byte(v), byte(v>>8))
		}
	}
	return buf
}

// ChimePlayer manages reminder chime playback with cancellation support
type ChimePlayer struct {
	stopChan chan struct{}
	player   *oto.Player
}

// playChime plays the reminder chime and returns a ChimePlayer
func playChime() *ChimePlayer {
	initAudioContext()

	if !audioCtxReady || globalAudioCtx == nil {
		log.Printf("Audio context not ready")
		return nil
	}

	cp := &ChimePlayer{
		stopChan: make(chan struct{}),
	}

	// Play the sound in a goroutine so it doesn't block
	go func() {
		cp.player = globalAudioCtx.NewPlayer(bytes.NewReader(chimeTone()))
		cp.player.Play()

		// Wait for the sound to finish playing or stop signal
		for cp.player.IsPlaying() {
			select {
			case <-cp.stopChan:
				cp.player.Close()
				return
			case <-time.After(time.Millisecond):
				// Continue checking
			}
		}

		if err := cp.player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}
	}()

	return cp
}

// Stop stops the chime playback
func (cp *ChimePlayer) Stop() {
	if cp != nil {
		close(cp.stopChan)
	}
}
