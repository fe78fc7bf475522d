// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"strings"
)

// CursorMode is the pointer confinement state reported by a window surface.
// Look input treats any mode other than CursorModeFree as captured.
type CursorMode int

const (
	// CursorModeFree leaves the pointer visible and unconstrained.
	CursorModeFree CursorMode = iota
	// CursorModeConfined keeps the pointer inside the window.
	CursorModeConfined
	// CursorModeLocked pins the pointer in place and reports only relative motion.
	CursorModeLocked
)

// String returns the lower-case name of the mode.
func (m CursorMode) String() string {
	switch m {
	case CursorModeFree:
		return "free"
	case CursorModeConfined:
		return "confined"
	case CursorModeLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Captured reports whether the mode routes pointer motion into look input.
func (m CursorMode) Captured() bool {
	return m != CursorModeFree
}

// ParseCursorMode converts "free", "confined" or "locked" (case-insensitive) to a CursorMode.
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - CursorMode: the parsed mode
//   - error: error if the name is unknown
func ParseCursorMode(name string) (CursorMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "free":
		return CursorModeFree, nil
	case "confined":
		return CursorModeConfined, nil
	case "locked":
		return CursorModeLocked, nil
	}
	return CursorModeFree, fmt.Errorf("unknown cursor mode %q", name)
}
