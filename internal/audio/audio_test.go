package audio

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glory-app/glory/internal/event"
)

type fakeSounder struct {
	played []string
	err    error
}

func (f *fakeSounder) Play(file string) error {
	f.played = append(f.played, file)
	return f.err
}

func TestCuePlaysFile(t *testing.T) {
	var buf bytes.Buffer
	s := &fakeSounder{}
	h := Cue(s, event.Kill, "kill.mp3", zerolog.New(&buf))

	h()
	assert.Equal(t, []string{"kill.mp3"}, s.played)
	assert.Contains(t, buf.String(), "playing sound file")
}

func TestCueLogsPlaybackError(t *testing.T) {
	var buf bytes.Buffer
	s := &fakeSounder{err: errors.New("open soundfiles/kill.mp3: no such file or directory")}
	h := Cue(s, event.Kill, "kill.mp3", zerolog.New(&buf))

	assert.NotPanics(t, assert.PanicTestFunc(h))
	assert.Contains(t, buf.String(), "could not play sound file")
	assert.Contains(t, buf.String(), `"event":"onKill"`)
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := decode(filepath.Join(dir, "missing.mp3"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hi"), 0644))
	_, _, err = decode(txt)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	bad := filepath.Join(dir, "broken.wav")
	require.NoError(t, os.WriteFile(bad, []byte("definitely not RIFF"), 0644))
	_, _, err = decode(bad)
	assert.Error(t, err)
}

func TestGain(t *testing.T) {
	assert.Equal(t, 0.0, gain(1))
	assert.Equal(t, -1.0, gain(0.5))
	assert.Equal(t, 0.0, gain(0))
	assert.False(t, math.IsInf(gain(0), 0))
}
