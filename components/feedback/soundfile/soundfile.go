// Package soundfile implements a feedback device that plays cues from a directory of WAV files,
// one file per cue named after it (e.g. laughing_1.wav).
package soundfile

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/beaconrc/components/feedback"
	"go.viam.com/beaconrc/logging"
)

// A Clip is a decoded sound, normalized so its loudest sample is at full scale.
type Clip struct {
	Cue      feedback.Cue
	Path     string
	Buffer   *audio.FloatBuffer
	Duration time.Duration
}

// A Library holds the clips loaded from a directory.
type Library struct {
	clips map[feedback.Cue]*Clip
}

// LoadLibrary decodes every .wav file in dir.
func LoadLibrary(dir string) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read cue directory %q", dir)
	}
	lib := &Library{clips: map[feedback.Cue]*Clip{}}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			continue
		}
		cue, err := feedback.ParseCue(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		if err != nil {
			return nil, err
		}
		clip, err := decodeClip(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		clip.Cue = cue
		lib.clips[cue] = clip
	}
	return lib, nil
}

func decodeClip(path string) (clip *Clip, err error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, errors.Errorf("%q is not a valid wav file", path)
	}
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode %q", path)
	}
	buf := pcm.AsFloatBuffer()
	transforms.NormalizeMax(buf)

	return &Clip{Path: path, Buffer: buf, Duration: bufferDuration(buf)}, nil
}

func bufferDuration(buf *audio.FloatBuffer) time.Duration {
	if buf.Format == nil || buf.Format.SampleRate == 0 || buf.Format.NumChannels == 0 {
		return 0
	}
	frames := len(buf.Data) / buf.Format.NumChannels
	return time.Duration(float64(frames) / float64(buf.Format.SampleRate) * float64(time.Second))
}

// Clip returns the clip for cue.
func (l *Library) Clip(cue feedback.Cue) (*Clip, bool) {
	clip, ok := l.clips[cue]
	return clip, ok
}

// Cues lists the loaded cues in name order.
func (l *Library) Cues() []feedback.Cue {
	cues := make([]feedback.Cue, 0, len(l.clips))
	for cue := range l.clips {
		cues = append(cues, cue)
	}
	sort.Slice(cues, func(i, j int) bool { return cues[i] < cues[j] })
	return cues
}

// Config describes a sound file device.
type Config struct {
	Dir string `json:"dir"`
	// Volume scales every clip, from 0 to 1. Zero means full volume.
	Volume float64 `json:"volume,omitempty"`
	// OutDir, when set, receives every played sound as a WAV file instead of the log.
	OutDir string `json:"out_dir,omitempty"`
}

// Device plays library clips through a Sink. Image cues have no display to go to and are logged.
type Device struct {
	lib    *Library
	sink   Sink
	volume float64
	logger logging.Logger
}

// NewDevice returns a device playing clips from lib to sink.
func NewDevice(lib *Library, sink Sink, conf Config, logger logging.Logger) (*Device, error) {
	if conf.Volume < 0 || conf.Volume > 1 {
		return nil, errors.Errorf("volume must be between 0 and 1, not %v", conf.Volume)
	}
	volume := conf.Volume
	if volume == 0 {
		volume = 1
	}
	return &Device{lib: lib, sink: sink, volume: volume, logger: logger}, nil
}

// PlayCue plays the clip for a sound cue.
func (d *Device) PlayCue(ctx context.Context, cue feedback.Cue) error {
	if cue.Kind() == feedback.Image {
		d.logger.Infow("showing image", "cue", string(cue))
		return nil
	}
	clip, ok := d.lib.Clip(cue)
	if !ok {
		return errors.Errorf("no sound file for cue %q", cue)
	}
	buf := clip.Buffer
	if d.volume != 1 {
		scaled := make([]float64, len(buf.Data))
		for i, v := range buf.Data {
			scaled[i] = v * d.volume
		}
		buf = &audio.FloatBuffer{Format: buf.Format, Data: scaled}
	}
	return d.sink.Play(ctx, cue, buf)
}
