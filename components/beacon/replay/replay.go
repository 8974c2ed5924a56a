// Package replay implements a beacon sensor that plays back recorded button frames, one frame per
// read. It stands in for the IR receiver when running the control loop off-robot.
//
// A script is JSON lines; each line is a frame:
//
//	{"channel": 1, "buttons": ["left_up", "right_up"], "repeat": 20}
//	{"buttons": []}
//
// A frame without a channel is seen on every channel. A frame sent on another channel reads as
// nothing pressed, like a real receiver listening on a different channel.
package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/beaconrc/components/beacon"
)

// ErrScriptDone is returned by Buttons once every frame has been played.
var ErrScriptDone = errors.New("replay script finished")

// Frame is one line of a replay script.
type Frame struct {
	Channel int      `json:"channel,omitempty"`
	Buttons []string `json:"buttons"`
	Repeat  int      `json:"repeat,omitempty"`
}

// frame is a script line played count times in a row.
type frame struct {
	channel int
	pressed beacon.ButtonSet
	count   int
}

// Sensor plays back a parsed script.
type Sensor struct {
	mu     sync.Mutex
	frames []frame
	total  int
	played int
	// position within frames
	next   int
	repeat int
}

// NewSensorFromFile parses the script at path.
func NewSensorFromFile(path string) (*Sensor, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	sensor, err := NewSensor(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read replay script %q", path)
	}
	return sensor, nil
}

// NewSensor parses a script from r. Blank lines and lines starting with '#' are skipped.
func NewSensor(r io.Reader) (*Sensor, error) {
	var (
		frames []frame
		total  int
	)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var raw Frame
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		if raw.Channel != 0 {
			if err := beacon.ValidateChannel(raw.Channel); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
		}
		if raw.Repeat < 0 {
			return nil, errors.Errorf("line %d: repeat must not be negative", lineNum)
		}
		pressed, err := beacon.ParseButtonSet(raw.Buttons...)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}

		repeat := raw.Repeat
		if repeat == 0 {
			repeat = 1
		}
		frames = append(frames, frame{channel: raw.Channel, pressed: pressed, count: repeat})
		total += repeat
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &Sensor{frames: frames, total: total}, nil
}

// Len returns the total number of frames in the script.
func (s *Sensor) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Remaining returns the number of frames not yet played.
func (s *Sensor) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total - s.played
}

// Buttons plays the next frame.
func (s *Sensor) Buttons(ctx context.Context, channel int) (beacon.ButtonSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.frames) {
		return 0, ErrScriptDone
	}
	f := s.frames[s.next]
	s.played++
	s.repeat++
	if s.repeat == f.count {
		s.next++
		s.repeat = 0
	}
	if f.channel != 0 && f.channel != channel {
		return 0, nil
	}
	return f.pressed, nil
}
