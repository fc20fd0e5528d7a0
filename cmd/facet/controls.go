package main

import (
	"sync"
	"time"

	"github.com/taigrr/facet/pkg/scene"
)

// controls turns key presses into a scene.Input. Terminals rarely report
// key releases, so a held key is seen as a stream of repeats and each
// component lapses shortly after its last press.
type controls struct {
	mu      sync.Mutex
	input   scene.Input
	pressed [6]time.Time // move x, y, z, turn x, y, z
}

const keyHold = 150 * time.Millisecond

func (c *controls) slots() [6]*float64 {
	return [6]*float64{
		&c.input.Move.X, &c.input.Move.Y, &c.input.Move.Z,
		&c.input.Turn.X, &c.input.Turn.Y, &c.input.Turn.Z,
	}
}

func (c *controls) press(slot int, dir float64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pressed[slot] = now
	*c.slots()[slot] = dir
}

func (c *controls) snapshot(now time.Time) scene.Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, v := range c.slots() {
		if now.Sub(c.pressed[i]) > keyHold {
			*v = 0
		}
	}
	return c.input
}

func (c *controls) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = scene.Input{}
}

// keyBindings maps key names to a controls slot and direction.
var keyBindings = []struct {
	key  string
	slot int
	dir  float64
}{
	{"d", 0, 1},
	{"a", 0, -1},
	{"r", 1, 1},
	{"f", 1, -1},
	{"s", 2, 1},
	{"w", 2, -1},
	{"left", 3, 1},
	{"right", 3, -1},
	{"up", 4, 1},
	{"down", 4, -1},
	{"q", 5, 1},
	{"e", 5, -1},
}
