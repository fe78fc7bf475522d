package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-motion/common"
)

// KeyReader exposes the key state of a single tick.
type KeyReader interface {
	// Pressed reports whether the key is currently held.
	//
	// Parameters:
	//   - key: the key code to check
	//
	// Returns:
	//   - bool: true if held
	Pressed(key common.Key) bool

	// JustPressed reports whether the key went down since the previous tick.
	// Auto-repeat does not produce new edges.
	//
	// Parameters:
	//   - key: the key code to check
	//
	// Returns:
	//   - bool: true on the tick the press was first observed
	JustPressed(key common.Key) bool
}

// KeyState accumulates key events from the window thread and hands out one snapshot per tick.
// KeyDown and KeyUp may be called from any goroutine; Snapshot is called once per tick by the engine.
type KeyState struct {
	mu          *sync.Mutex
	held        map[common.Key]bool
	justPressed map[common.Key]bool
}

// NewKeyState creates an empty KeyState.
//
// Returns:
//   - *KeyState: the new key state
func NewKeyState() *KeyState {
	return &KeyState{
		mu:          &sync.Mutex{},
		held:        make(map[common.Key]bool),
		justPressed: make(map[common.Key]bool),
	}
}

// KeyDown records a press. Repeated presses of an already held key are ignored,
// which keeps JustPressed edge-triggered under platform auto-repeat.
func (ks *KeyState) KeyDown(key common.Key) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	if ks.held[key] {
		return
	}
	ks.held[key] = true
	ks.justPressed[key] = true
}

// KeyUp records a release. A press and release inside the same tick still yields a JustPressed edge.
func (ks *KeyState) KeyUp(key common.Key) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	delete(ks.held, key)
}

// ReleaseAll drops every held key, e.g. when the window loses focus.
func (ks *KeyState) ReleaseAll() {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	clear(ks.held)
}

// Snapshot copies the current state and clears the just-pressed latch.
//
// Returns:
//   - KeySnapshot: the immutable state for this tick
func (ks *KeyState) Snapshot() KeySnapshot {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	snap := KeySnapshot{
		held:        make(map[common.Key]bool, len(ks.held)),
		justPressed: ks.justPressed,
	}
	for k := range ks.held {
		snap.held[k] = true
	}
	ks.justPressed = make(map[common.Key]bool)
	return snap
}

// KeySnapshot is the key state observed at the start of one tick. The zero value has nothing pressed.
type KeySnapshot struct {
	held        map[common.Key]bool
	justPressed map[common.Key]bool
}

var _ KeyReader = KeySnapshot{}

// NewKeySnapshot builds a snapshot directly, mainly for driving controllers without a window.
//
// Parameters:
//   - held: keys currently held
//   - justPressed: keys that went down this tick
//
// Returns:
//   - KeySnapshot: the snapshot
func NewKeySnapshot(held []common.Key, justPressed []common.Key) KeySnapshot {
	snap := KeySnapshot{
		held:        make(map[common.Key]bool, len(held)),
		justPressed: make(map[common.Key]bool, len(justPressed)),
	}
	for _, k := range held {
		snap.held[k] = true
	}
	for _, k := range justPressed {
		snap.justPressed[k] = true
	}
	return snap
}

func (s KeySnapshot) Pressed(key common.Key) bool {
	return key != common.KeyNone && s.held[key]
}

func (s KeySnapshot) JustPressed(key common.Key) bool {
	return key != common.KeyNone && s.justPressed[key]
}
