// Package audio plays a short tone whenever the sound timer runs out.
package audio

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

const (
	sampleRate   = beep.SampleRate(44100)
	toneHz       = 440
	toneDuration = time.Second / 10
	volume       = 0.25
)

// Beeper reacts to the sound timer expiry signal.
type Beeper interface {
	Beep()
}

// Mute is a Beeper that does nothing.
type Mute struct{}

func (Mute) Beep() {}

// Speaker plays a buffered sample through the default audio device.
type Speaker struct {
	buffer *beep.Buffer
}

// NewSpeaker initialises the speaker. If samplePath is empty a square tone
// is used, otherwise the mp3 file is decoded once and replayed on each Beep.
func NewSpeaker(samplePath string) (*Speaker, error) {
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	buffer := beep.NewBuffer(format)

	if samplePath == "" {
		buffer.Append(beep.Take(sampleRate.N(toneDuration), SquareWave(sampleRate, toneHz)))
	} else if err := appendMP3(buffer, samplePath); err != nil {
		return nil, err
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		return nil, errors.Wrap(err, "initialising speaker")
	}
	return &Speaker{buffer: buffer}, nil
}

func appendMP3(buffer *beep.Buffer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening beep sample")
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return errors.Wrap(err, "decoding beep sample")
	}
	defer streamer.Close()

	if format.SampleRate == sampleRate {
		buffer.Append(streamer)
	} else {
		buffer.Append(beep.Resample(4, format.SampleRate, sampleRate, streamer))
	}
	return nil
}

func (s *Speaker) Beep() {
	speaker.Play(s.buffer.Streamer(0, s.buffer.Len()))
}

// Close stops playback and releases the audio device.
func (s *Speaker) Close() {
	speaker.Clear()
}

// SquareWave is an endless square wave at hz.
func SquareWave(sr beep.SampleRate, hz float64) beep.Streamer {
	period := float64(sr) / hz
	var pos float64
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := volume
			if math.Mod(pos, period) >= period/2 {
				v = -volume
			}
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}

// Bell rings the terminal bell, for hosts without an audio device.
type Bell struct {
	W io.Writer
}

func (b Bell) Beep() {
	_, _ = b.W.Write([]byte{'\a'})
}
