// Package fake implements a fake base.
package fake

import (
	"context"
	"fmt"
	"sync"
)

// Command is one command received by the fake base.
type Command struct {
	Op         string
	MMPerSec   float64
	DegsPerSec float64
}

func (c Command) String() string {
	if c.Op == "drive" {
		return fmt.Sprintf("drive(%g, %g)", c.MMPerSec, c.DegsPerSec)
	}
	return c.Op
}

// Base is a fake base that records what it was asked to do.
type Base struct {
	Name string

	mu       sync.Mutex
	commands []Command
	moving   bool
}

// NewBase returns a stopped fake base.
func NewBase(name string) *Base {
	return &Base{Name: name}
}

func (b *Base) record(c Command, moving bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = append(b.commands, c)
	b.moving = moving
}

// Drive records the drive command.
func (b *Base) Drive(ctx context.Context, mmPerSec, degsPerSec float64) error {
	b.record(Command{Op: "drive", MMPerSec: mmPerSec, DegsPerSec: degsPerSec}, mmPerSec != 0 || degsPerSec != 0)
	return nil
}

// Stop records a stop.
func (b *Base) Stop(ctx context.Context) error {
	b.record(Command{Op: "stop"}, false)
	return nil
}

// Hold records a hold.
func (b *Base) Hold(ctx context.Context) error {
	b.record(Command{Op: "hold"}, false)
	return nil
}

// IsMoving returns whether the last command was a nonzero drive.
func (b *Base) IsMoving(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.moving, nil
}

// Commands returns everything the base was asked to do.
func (b *Base) Commands() []Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Command(nil), b.commands...)
}

// Last returns the most recent command, or the zero Command if there was none.
func (b *Base) Last() Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.commands) == 0 {
		return Command{}
	}
	return b.commands[len(b.commands)-1]
}

// Reset forgets the recorded commands.
func (b *Base) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = nil
}
