package soundfile

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/multierr"

	"go.viam.com/beaconrc/components/feedback"
	"go.viam.com/beaconrc/logging"
)

// A Sink is where decoded sound goes. Play must not block for the length of the sound.
type Sink interface {
	Play(ctx context.Context, cue feedback.Cue, buf *audio.FloatBuffer) error
}

// LogSink reports each sound in the log instead of playing it.
type LogSink struct {
	Logger logging.Logger
}

// Play logs the sound.
func (s LogSink) Play(ctx context.Context, cue feedback.Cue, buf *audio.FloatBuffer) error {
	s.Logger.Infow("playing sound", "cue", string(cue), "samples", len(buf.Data), "duration", bufferDuration(buf))
	return nil
}

// NewSink returns the sink conf asks for: a FileSink when OutDir is set and a LogSink otherwise.
func NewSink(conf Config, logger logging.Logger) (Sink, error) {
	if conf.OutDir == "" {
		return LogSink{Logger: logger}, nil
	}
	if err := os.MkdirAll(conf.OutDir, 0o750); err != nil {
		return nil, err
	}
	logger.Infow("writing sounds to files", "dir", conf.OutDir)
	return &FileSink{Dir: conf.OutDir}, nil
}

// FileSink writes every sound it is given to Dir as a 16-bit WAV file, numbered in play order.
type FileSink struct {
	Dir string

	mu    sync.Mutex
	count int
}

// Play writes the sound to the next numbered file.
func (s *FileSink) Play(ctx context.Context, cue feedback.Cue, buf *audio.FloatBuffer) error {
	s.mu.Lock()
	s.count++
	path := filepath.Join(s.Dir, fmt.Sprintf("%03d-%s.wav", s.count, cue))
	s.mu.Unlock()
	return WriteWAV(path, buf, 16)
}

// WriteWAV encodes a full scale float buffer to a PCM WAV file.
func WriteWAV(path string, buf *audio.FloatBuffer, bitDepth int) (err error) {
	if buf.Format == nil {
		return fmt.Errorf("cannot write %q: buffer has no format", path)
	}
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	peak := math.Pow(2, float64(bitDepth-1)) - 1
	ints := make([]int, len(buf.Data))
	for i, v := range buf.Data {
		ints[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * peak))
	}

	enc := wav.NewEncoder(f, buf.Format.SampleRate, bitDepth, buf.Format.NumChannels, 1)
	if err := enc.Write(&audio.IntBuffer{Format: buf.Format, Data: ints, SourceBitDepth: bitDepth}); err != nil {
		return err
	}
	return enc.Close()
}
