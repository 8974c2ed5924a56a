// Package feedback defines the sounds and images a robot plays to show what it is doing.
package feedback

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// A Cue names a sound or image from the robot's built-in media.
type Cue string

// The cues the robot variants use.
const (
	Laughing1     Cue = "laughing_1"
	SnakeHiss     Cue = "snake_hiss"
	AirRelease    Cue = "air_release"
	Airbrake      Cue = "airbrake"
	Up            Cue = "up"
	Down          Cue = "down"
	PinchedMiddle Cue = "pinched_middle"
)

// Kind says how a cue is presented.
type Kind uint8

// Cue kinds.
const (
	Sound Kind = iota
	Image
)

func (k Kind) String() string {
	if k == Image {
		return "image"
	}
	return "sound"
}

var images = map[Cue]bool{
	PinchedMiddle: true,
}

// Kind returns whether the cue is shown or played.
func (c Cue) Kind() Kind {
	if images[c] {
		return Image
	}
	return Sound
}

// ParseCue normalizes a cue name such as "LAUGHING_1" or "snake-hiss".
func ParseCue(name string) (Cue, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if normalized == "" {
		return "", errors.New("cue name is empty")
	}
	return Cue(normalized), nil
}

// A Device plays cues. PlayCue starts the cue and returns without waiting for it to finish.
type Device interface {
	PlayCue(ctx context.Context, cue Cue) error
}
