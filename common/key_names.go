package common

import (
	"fmt"
	"strings"
)

// namedKeys maps the configuration spelling of non-alphanumeric keys to their codes.
// Lookups are case-insensitive.
var namedKeys = map[string]Key{
	"space":        KeySpace,
	"escape":       KeyEsc,
	"esc":          KeyEsc,
	"enter":        KeyEnter,
	"tab":          KeyTab,
	"backspace":    KeyBackspace,
	"right":        KeyRight,
	"left":         KeyLeft,
	"down":         KeyDown,
	"up":           KeyUp,
	"leftshift":    KeyLeftShift,
	"lshift":       KeyLeftShift,
	"leftcontrol":  KeyLeftControl,
	"lcontrol":     KeyLeftControl,
	"leftctrl":     KeyLeftControl,
	"leftalt":      KeyLeftAlt,
	"rightshift":   KeyRightShift,
	"rightcontrol": KeyRightControl,
	"rightctrl":    KeyRightControl,
	"rightalt":     KeyRightAlt,
}

// ParseKey converts a key name such as "W", "1", "Space" or "LeftControl" to its Key code.
// An empty name parses to KeyNone.
//
// Parameters:
//   - name: the key name, case-insensitive
//
// Returns:
//   - Key: the parsed key code
//   - error: error if the name is not a known key
func ParseKey(name string) (Key, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return KeyNone, nil
	}
	if len(trimmed) == 1 {
		c := strings.ToUpper(trimmed)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return Key(c), nil
		}
		if c == ' ' {
			return KeySpace, nil
		}
	}
	normalized := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(trimmed))
	if k, ok := namedKeys[normalized]; ok {
		return k, nil
	}
	return KeyNone, fmt.Errorf("unknown key name %q", name)
}

// String returns the canonical name of the key, as accepted by ParseKey.
func (k Key) String() string {
	switch {
	case k == KeyNone:
		return ""
	case (k >= KeyA && k <= KeyZ) || (k >= Key0 && k <= Key9):
		return string(rune(k))
	}
	switch k {
	case KeySpace:
		return "Space"
	case KeyEsc:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyBackspace:
		return "Backspace"
	case KeyRight:
		return "Right"
	case KeyLeft:
		return "Left"
	case KeyDown:
		return "Down"
	case KeyUp:
		return "Up"
	case KeyLeftShift:
		return "LeftShift"
	case KeyLeftControl:
		return "LeftControl"
	case KeyLeftAlt:
		return "LeftAlt"
	case KeyRightShift:
		return "RightShift"
	case KeyRightControl:
		return "RightControl"
	case KeyRightAlt:
		return "RightAlt"
	}
	return fmt.Sprintf("Key(%d)", uint32(k))
}
