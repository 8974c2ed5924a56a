package beaconremotecontrol

import (
	"fmt"

	"go.viam.com/beaconrc/components/beacon"
)

// A Directive is what the driver asked for by the buttons they are holding.
type Directive uint8

// The known directives.
const (
	Idle Directive = iota
	Forward
	Backward
	PivotLeft
	PivotRight
	ArcLeftForward
	ArcRightForward
	ArcLeftBackward
	ArcRightBackward
	Action
)

// AllDirectives lists every directive in declaration order.
var AllDirectives = []Directive{
	Idle, Forward, Backward, PivotLeft, PivotRight,
	ArcLeftForward, ArcRightForward, ArcLeftBackward, ArcRightBackward, Action,
}

var directiveNames = map[Directive]string{
	Idle:             "idle",
	Forward:          "forward",
	Backward:         "backward",
	PivotLeft:        "pivot_left",
	PivotRight:       "pivot_right",
	ArcLeftForward:   "arc_left_forward",
	ArcRightForward:  "arc_right_forward",
	ArcLeftBackward:  "arc_left_backward",
	ArcRightBackward: "arc_right_backward",
	Action:           "action",
}

func (d Directive) String() string {
	if name, ok := directiveNames[d]; ok {
		return name
	}
	return fmt.Sprintf("directive(%d)", uint8(d))
}

// steering maps the exact button combinations that move the robot. Combinations are matched
// whole, so holding an extra button falls through to Idle.
var steering = map[beacon.ButtonSet]Directive{
	beacon.NewButtonSet(beacon.LeftUp, beacon.RightUp):     Forward,
	beacon.NewButtonSet(beacon.LeftDown, beacon.RightDown): Backward,
	beacon.NewButtonSet(beacon.LeftUp, beacon.RightDown):   PivotLeft,
	beacon.NewButtonSet(beacon.RightUp, beacon.LeftDown):   PivotRight,
	beacon.NewButtonSet(beacon.LeftUp):                     ArcLeftForward,
	beacon.NewButtonSet(beacon.RightUp):                    ArcRightForward,
	beacon.NewButtonSet(beacon.LeftDown):                   ArcLeftBackward,
	beacon.NewButtonSet(beacon.RightDown):                  ArcRightBackward,
}

var beaconOnly = beacon.NewButtonSet(beacon.Beacon)

// Decode classifies the held buttons. The Beacon button on its own means Action, but only for
// robots that have an action; everything unrecognized is Idle.
func Decode(pressed beacon.ButtonSet, actionEnabled bool) Directive {
	if actionEnabled && pressed == beaconOnly {
		return Action
	}
	if d, ok := steering[pressed]; ok {
		return d
	}
	return Idle
}

// A Decoder decodes with a fixed action setting.
type Decoder struct {
	ActionEnabled bool
}

// NewDecoder returns a Decoder.
func NewDecoder(actionEnabled bool) Decoder {
	return Decoder{ActionEnabled: actionEnabled}
}

// Decode classifies the held buttons.
func (d Decoder) Decode(pressed beacon.ButtonSet) Directive {
	return Decode(pressed, d.ActionEnabled)
}
