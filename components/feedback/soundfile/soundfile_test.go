package soundfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.viam.com/test"

	"go.viam.com/beaconrc/components/feedback"
	"go.viam.com/beaconrc/logging"
)

// writeTone writes a one channel square wave of the given length.
func writeTone(t *testing.T, path string, rate int, dur time.Duration, amplitude float64) {
	t.Helper()
	frames := int(dur.Seconds() * float64(rate))
	data := make([]float64, frames)
	for i := range data {
		if (i/10)%2 == 0 {
			data[i] = amplitude
		} else {
			data[i] = -amplitude
		}
	}
	buf := &audio.FloatBuffer{Format: &audio.Format{NumChannels: 1, SampleRate: rate}, Data: data}
	test.That(t, WriteWAV(path, buf, 16), test.ShouldBeNil)
}

func TestLoadLibrary(t *testing.T) {
	dir := t.TempDir()
	writeTone(t, filepath.Join(dir, "LAUGHING_1.wav"), 8000, 500*time.Millisecond, 0.25)
	writeTone(t, filepath.Join(dir, "snake_hiss.wav"), 8000, 250*time.Millisecond, 0.5)
	test.That(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("cues"), 0o600), test.ShouldBeNil)

	lib, err := LoadLibrary(dir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, lib.Cues(), test.ShouldResemble, []feedback.Cue{feedback.Laughing1, feedback.SnakeHiss})

	clip, ok := lib.Clip(feedback.Laughing1)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, clip.Duration, test.ShouldEqual, 500*time.Millisecond)
	// normalized to full scale
	test.That(t, clip.Buffer.Data[0], test.ShouldAlmostEqual, 1, 1e-9)

	_, ok = lib.Clip(feedback.Airbrake)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestLoadLibraryErrors(t *testing.T) {
	_, err := LoadLibrary(filepath.Join(t.TempDir(), "missing"))
	test.That(t, err, test.ShouldNotBeNil)

	dir := t.TempDir()
	test.That(t, os.WriteFile(filepath.Join(dir, "up.wav"), []byte("not a wav"), 0o600), test.ShouldBeNil)
	_, err = LoadLibrary(dir)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDevicePlaysToSinks(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeTone(t, filepath.Join(dir, "airbrake.wav"), 8000, 100*time.Millisecond, 0.5)
	lib, err := LoadLibrary(dir)
	test.That(t, err, test.ShouldBeNil)

	logger, logs := logging.NewObservedTestLogger(t)
	d, err := NewDevice(lib, LogSink{Logger: logger}, Config{}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.PlayCue(ctx, feedback.Airbrake), test.ShouldBeNil)
	test.That(t, d.PlayCue(ctx, feedback.PinchedMiddle), test.ShouldBeNil)
	test.That(t, logs.FilterMessage("playing sound").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("showing image").Len(), test.ShouldEqual, 1)

	err = d.PlayCue(ctx, feedback.AirRelease)
	test.That(t, err, test.ShouldBeError, `no sound file for cue "air_release"`)

	out := t.TempDir()
	d, err = NewDevice(lib, &FileSink{Dir: out}, Config{Volume: 0.5}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.PlayCue(ctx, feedback.Airbrake), test.ShouldBeNil)

	f, err := os.Open(filepath.Join(out, "001-airbrake.wav"))
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	dec := wav.NewDecoder(f)
	test.That(t, dec.IsValidFile(), test.ShouldBeTrue)
	pcm, err := dec.FullPCMBuffer()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(pcm.Data), test.ShouldEqual, 800)
	test.That(t, pcm.Data[0], test.ShouldEqual, 16384)

	_, err = NewDevice(lib, LogSink{Logger: logger}, Config{Volume: 2}, logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNewSink(t *testing.T) {
	logger := logging.NewTestLogger(t)
	sink, err := NewSink(Config{Dir: "sounds"}, logger)
	test.That(t, err, test.ShouldBeNil)
	_, ok := sink.(LogSink)
	test.That(t, ok, test.ShouldBeTrue)

	out := filepath.Join(t.TempDir(), "played")
	sink, err = NewSink(Config{Dir: "sounds", OutDir: out}, logger)
	test.That(t, err, test.ShouldBeNil)
	fileSink, ok := sink.(*FileSink)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, fileSink.Dir, test.ShouldEqual, out)
	info, err := os.Stat(out)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.IsDir(), test.ShouldBeTrue)
}
