// Package beacon defines the infrared remote beacon a robot is driven with. A beacon transmits on one
// of four channels; for each channel the receiving sensor reports which of the five buttons are
// currently held down.
package beacon

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// A Button is one of the physical buttons on the IR beacon.
type Button uint8

// The known beacon buttons. The up/down pairs sit on either side of the remote; Beacon is the
// large button in the middle.
const (
	LeftUp Button = 1 << iota
	LeftDown
	RightUp
	RightDown
	Beacon
)

// MinChannel and MaxChannel bound the addressable beacon channels.
const (
	MinChannel = 1
	MaxChannel = 4
)

// AllButtons lists every button in a stable order.
var AllButtons = []Button{LeftUp, LeftDown, RightUp, RightDown, Beacon}

var buttonNames = map[Button]string{
	LeftUp:    "left_up",
	LeftDown:  "left_down",
	RightUp:   "right_up",
	RightDown: "right_down",
	Beacon:    "beacon",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("button(%d)", uint8(b))
}

// ParseButton returns the button with the given name, e.g. "left_up". Matching is case-insensitive
// and accepts dashes in place of underscores.
func ParseButton(name string) (Button, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for b, n := range buttonNames {
		if n == normalized {
			return b, nil
		}
	}
	return 0, errors.Errorf("unknown beacon button %q", name)
}

// A ButtonSet is the set of buttons pressed on one channel at one instant.
type ButtonSet uint8

// NewButtonSet returns the set containing the given buttons.
func NewButtonSet(buttons ...Button) ButtonSet {
	var s ButtonSet
	for _, b := range buttons {
		s |= ButtonSet(b)
	}
	return s
}

// ParseButtonSet builds a set from button names.
func ParseButtonSet(names ...string) (ButtonSet, error) {
	var s ButtonSet
	for _, name := range names {
		b, err := ParseButton(name)
		if err != nil {
			return 0, err
		}
		s |= ButtonSet(b)
	}
	return s, nil
}

// Has reports whether b is pressed.
func (s ButtonSet) Has(b Button) bool {
	return s&ButtonSet(b) != 0
}

// Len returns how many buttons are pressed.
func (s ButtonSet) Len() int {
	return len(s.Buttons())
}

// Empty reports whether no button is pressed.
func (s ButtonSet) Empty() bool {
	return s == 0
}

// Equal reports exact set equality.
func (s ButtonSet) Equal(other ButtonSet) bool {
	return s == other
}

// Buttons returns the pressed buttons in AllButtons order.
func (s ButtonSet) Buttons() []Button {
	return lo.Filter(AllButtons, func(b Button, _ int) bool { return s.Has(b) })
}

func (s ButtonSet) String() string {
	names := lo.Map(s.Buttons(), func(b Button, _ int) string { return b.String() })
	return "{" + strings.Join(names, ",") + "}"
}

// A Sensor reports the beacon buttons held on a channel. Reads are instantaneous and never block;
// there is no buffering of past presses.
type Sensor interface {
	Buttons(ctx context.Context, channel int) (ButtonSet, error)
}

// ValidateChannel returns an error if channel is not addressable by a beacon.
func ValidateChannel(channel int) error {
	if channel < MinChannel || channel > MaxChannel {
		return errors.Errorf("beacon channel must be between %d and %d, got %d", MinChannel, MaxChannel, channel)
	}
	return nil
}
