// Package audio plays the sound cues attached to events.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog"

	"github.com/glory-app/glory/internal/event"
)

// SampleRate is the rate the speaker is opened at; files are resampled to it.
const SampleRate = beep.SampleRate(44100)

// ErrUnsupportedFormat is returned for files that are not mp3, wav or ogg.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Sounder plays a sound file by name.
type Sounder interface {
	Play(file string) error
}

// Speaker plays files from a directory on the default output device. A new
// cue interrupts whatever is still playing.
type Speaker struct {
	dir    string
	volume float64

	mu      sync.Mutex
	current beep.StreamSeekCloser
}

// NewSpeaker opens the output device. volume is in [0, 1].
func NewSpeaker(dir string, volume float64) (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Speaker{dir: dir, volume: volume}, nil
}

// Play decodes file and starts it, cutting off the previous cue.
func (s *Speaker) Play(file string) error {
	stream, format, err := decode(filepath.Join(s.dir, file))
	if err != nil {
		return err
	}

	var out beep.Streamer = stream
	if format.SampleRate != SampleRate {
		out = beep.Resample(4, format.SampleRate, SampleRate, out)
	}
	out = &effects.Volume{
		Streamer: out,
		Base:     2,
		Volume:   gain(s.volume),
		Silent:   s.volume <= 0,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	speaker.Clear()
	if s.current != nil {
		_ = s.current.Close()
	}
	s.current = stream
	speaker.Play(out)
	return nil
}

// Close stops playback and releases the last decoded file.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker.Clear()
	if s.current != nil {
		err := s.current.Close()
		s.current = nil
		return err
	}
	return nil
}

// gain converts a linear [0, 1] volume to the base-2 exponent effects.Volume
// expects.
func gain(volume float64) float64 {
	if volume <= 0 {
		return 0
	}
	return math.Log2(volume)
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return stream, format, nil
}

// Cue returns an event handler that plays file. Playback errors are logged,
// not raised: a missing sound file reports itself and monitoring continues.
func Cue(s Sounder, name event.Name, file string, log zerolog.Logger) event.Handler {
	return func() {
		if err := s.Play(file); err != nil {
			log.Error().Err(err).Str("event", name.String()).Str("file", file).Msg("could not play sound file")
			return
		}
		log.Info().Str("event", name.String()).Str("file", file).Msg("playing sound file")
	}
}
