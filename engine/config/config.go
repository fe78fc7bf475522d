// package config loads the YAML runtime configuration: tick rate, window backend, logging,
// look tuning, per-role key bindings and the initial scene.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-motion/common"
	"github.com/Carmen-Shannon/oxy-motion/engine/input"
	"github.com/Carmen-Shannon/oxy-motion/engine/logger"
	"github.com/Carmen-Shannon/oxy-motion/engine/look"
	"github.com/Carmen-Shannon/oxy-motion/engine/motion"
	"github.com/Carmen-Shannon/oxy-motion/engine/scene"
	"github.com/Carmen-Shannon/oxy-motion/engine/transform"
	"github.com/Carmen-Shannon/oxy-motion/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of the YAML file.
type Config struct {
	Engine      EngineConfig       `yaml:"engine"`
	Window      WindowConfig       `yaml:"window"`
	Logging     LoggingConfig      `yaml:"logging"`
	Look        LookConfig         `yaml:"look"`
	Controllers []ControllerConfig `yaml:"controllers"`
	Scene       SceneConfig        `yaml:"scene"`
}

// EngineConfig controls the tick loop.
type EngineConfig struct {
	TickRate       float64 `yaml:"tick_rate"`
	Profiling      bool    `yaml:"profiling"`
	MotionWorkers  int     `yaml:"motion_workers"`
	MotionCapacity int     `yaml:"motion_capacity"`
}

// WindowConfig selects the surface backend.
type WindowConfig struct {
	Backend string `yaml:"backend"`
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

// LoggingConfig mirrors logger.Config.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// LookConfig tunes the look controller and the capture gate.
type LookConfig struct {
	Role         string  `yaml:"role"`
	Sensitivity  float32 `yaml:"sensitivity"`
	AngularScale float32 `yaml:"angular_scale"`
	PitchLimit   float32 `yaml:"pitch_limit"`
	ToggleKey    string  `yaml:"toggle_key"`
	CaptureMode  string  `yaml:"capture_mode"`
}

// ControllerConfig binds key names to the motion directions of one role. Empty names leave a direction unbound.
// TurnSpeed defaults to motion.DefaultTurnSpeed when zero.
type ControllerConfig struct {
	Role      string  `yaml:"role"`
	Speed     float32 `yaml:"speed"`
	Forward   string  `yaml:"forward"`
	Backward  string  `yaml:"backward"`
	Left      string  `yaml:"left"`
	Right     string  `yaml:"right"`
	Up        string  `yaml:"up"`
	Down      string  `yaml:"down"`
	TurnLeft  string  `yaml:"turn_left,omitempty"`
	TurnRight string  `yaml:"turn_right,omitempty"`
	TurnSpeed float32 `yaml:"turn_speed,omitempty"`
}

// SceneConfig lists the entities spawned at startup.
type SceneConfig struct {
	Name     string         `yaml:"name"`
	Entities []EntityConfig `yaml:"entities"`
}

// EntityConfig places one role-tagged entity. LookAt, when set, orients the entity toward that point.
type EntityConfig struct {
	Role     string      `yaml:"role"`
	Name     string      `yaml:"name"`
	Position [3]float32  `yaml:"position"`
	LookAt   *[3]float32 `yaml:"look_at,omitempty"`
}

// Default returns the built-in configuration: a camera looking at the origin flanked by two actors,
// WASD/IJKL/arrow bindings and capture toggled with 1.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TickRate:       60,
			MotionCapacity: input.DefaultMotionCapacity,
		},
		Window: WindowConfig{
			Backend: string(window.BackendGLFW),
			Title:   "oxy-motion",
			Width:   1280,
			Height:  720,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logger.FormatConsole,
		},
		Look: LookConfig{
			Role:         scene.RoleCamera.String(),
			Sensitivity:  look.DefaultSensitivity,
			AngularScale: look.DefaultAngularScale,
			PitchLimit:   look.DefaultPitchLimit,
			ToggleKey:    common.Key1.String(),
			CaptureMode:  common.CursorModeConfined.String(),
		},
		Controllers: []ControllerConfig{
			controllerFromProfile(scene.RoleCamera, motion.WASDProfile()),
			controllerFromProfile(scene.RolePrimaryActor, motion.IJKLProfile()),
			controllerFromProfile(scene.RoleSecondaryActor, motion.ArrowProfile()),
		},
		Scene: SceneConfig{
			Name: "main",
			Entities: []EntityConfig{
				{Role: scene.RoleCamera.String(), Name: "camera", Position: [3]float32{0.037, 2.5, 8.372}, LookAt: &[3]float32{0, 0, 0}},
				{Role: scene.RolePrimaryActor.String(), Name: "primary", Position: [3]float32{-2, 0.25, 0}},
				{Role: scene.RoleSecondaryActor.String(), Name: "secondary", Position: [3]float32{2, 0.25, 0}},
			},
		},
	}
}

func controllerFromProfile(role scene.Role, p motion.Profile) ControllerConfig {
	cc := ControllerConfig{
		Role:      role.String(),
		Speed:     p.Speed,
		Forward:   p.Forward.String(),
		Backward:  p.Backward.String(),
		Left:      p.StrafeLeft.String(),
		Right:     p.StrafeRight.String(),
		Up:        p.Up.String(),
		Down:      p.Down.String(),
		TurnLeft:  p.TurnLeft.String(),
		TurnRight: p.TurnRight.String(),
	}
	if p.Turns() {
		cc.TurnSpeed = p.TurnSpeed
	}
	return cc
}

// Load reads the YAML file at path, overlays it onto Default and validates the result.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - *Config: the merged configuration
//   - error: read, parse or validation error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse overlays YAML data onto Default and validates the result.
// A list present in the data replaces the default list entirely.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section and reports all problems at once.
//
// Returns:
//   - error: ErrInvalidConfig joined with each problem, or nil
func (c *Config) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if !(c.Engine.TickRate > 0) || math.IsInf(c.Engine.TickRate, 0) {
		add("engine.tick_rate must be positive, got %v", c.Engine.TickRate)
	}
	if c.Engine.MotionWorkers < 0 {
		add("engine.motion_workers must not be negative, got %d", c.Engine.MotionWorkers)
	}
	if c.Engine.MotionCapacity <= 0 {
		add("engine.motion_capacity must be positive, got %d", c.Engine.MotionCapacity)
	}

	if _, err := window.ParseBackend(c.Window.Backend); err != nil {
		add("window.backend: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		add("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		add("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if _, err := scene.ParseRole(c.Look.Role); err != nil {
		add("look.role: %w", err)
	}
	if !common.IsFinite(c.Look.Sensitivity) || c.Look.Sensitivity <= 0 {
		add("look.sensitivity must be positive, got %v", c.Look.Sensitivity)
	}
	if !common.IsFinite(c.Look.AngularScale) || c.Look.AngularScale <= 0 {
		add("look.angular_scale must be positive, got %v", c.Look.AngularScale)
	}
	if !common.IsFinite(c.Look.PitchLimit) || c.Look.PitchLimit <= 0 || c.Look.PitchLimit >= math.Pi/2 {
		add("look.pitch_limit must be in (0, pi/2), got %v", c.Look.PitchLimit)
	}
	if k, err := c.Look.Toggle(); err != nil {
		add("look.toggle_key: %w", err)
	} else if k == common.KeyNone {
		add("look.toggle_key is required")
	}
	if mode, err := common.ParseCursorMode(c.Look.CaptureMode); err != nil {
		add("look.capture_mode: %w", err)
	} else if !mode.Captured() {
		add("look.capture_mode must be confined or locked, got %q", c.Look.CaptureMode)
	}

	lookRole, lookErr := scene.ParseRole(c.Look.Role)
	seen := make(map[scene.Role]struct{}, len(c.Controllers))
	for i, cc := range c.Controllers {
		role, err := scene.ParseRole(cc.Role)
		if err != nil {
			add("controllers[%d].role: %w", i, err)
			continue
		}
		if _, dup := seen[role]; dup {
			add("controllers[%d]: role %s already has a controller", i, role)
		}
		seen[role] = struct{}{}
		p, err := cc.Profile()
		if err != nil {
			add("controllers[%d]: %w", i, err)
			continue
		}
		if err := p.Validate(); err != nil {
			add("controllers[%d]: %w", i, err)
		}
		if lookErr == nil && role == lookRole && p.Turns() {
			add("controllers[%d]: turn keys on %s conflict with pointer look", i, role)
		}
	}

	for i, ec := range c.Scene.Entities {
		if _, err := scene.ParseRole(ec.Role); err != nil {
			add("scene.entities[%d].role: %w", i, err)
		}
		if !common.IsFiniteVec3(mgl32.Vec3(ec.Position)) {
			add("scene.entities[%d].position must be finite", i)
		}
		if ec.LookAt != nil && !common.IsFiniteVec3(mgl32.Vec3(*ec.LookAt)) {
			add("scene.entities[%d].look_at must be finite", i)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
}

// Toggle parses the capture toggle key.
func (l LookConfig) Toggle() (common.Key, error) {
	return common.ParseKey(l.ToggleKey)
}

// Mode parses the capture cursor mode.
func (l LookConfig) Mode() (common.CursorMode, error) {
	return common.ParseCursorMode(l.CaptureMode)
}

// Profile resolves the key names into a motion profile. The profile is not validated.
//
// Returns:
//   - motion.Profile: the resolved bindings and speed
//   - error: error naming the first unknown key
func (cc ControllerConfig) Profile() (motion.Profile, error) {
	p := motion.Profile{Speed: cc.Speed, TurnSpeed: cc.TurnSpeed}
	if p.TurnSpeed == 0 {
		p.TurnSpeed = motion.DefaultTurnSpeed
	}
	fields := []struct {
		name string
		src  string
		dst  *common.Key
	}{
		{"forward", cc.Forward, &p.Forward},
		{"backward", cc.Backward, &p.Backward},
		{"left", cc.Left, &p.StrafeLeft},
		{"right", cc.Right, &p.StrafeRight},
		{"up", cc.Up, &p.Up},
		{"down", cc.Down, &p.Down},
		{"turn_left", cc.TurnLeft, &p.TurnLeft},
		{"turn_right", cc.TurnRight, &p.TurnRight},
	}
	for _, f := range fields {
		k, err := common.ParseKey(f.src)
		if err != nil {
			return motion.Profile{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = k
	}
	return p, nil
}

// Transform builds the spawn transform, oriented toward LookAt when set.
func (ec EntityConfig) Transform() transform.Transform {
	t := transform.New(ec.Position[0], ec.Position[1], ec.Position[2])
	if ec.LookAt != nil {
		t = t.LookingAt(mgl32.Vec3(*ec.LookAt))
	}
	return t
}

// Overlap is a key bound by more than one controller.
type Overlap struct {
	Key   common.Key
	Roles []string
}

// Overlaps lists keys shared between controllers, sorted by key. Unparseable bindings are skipped.
// Sharing is legal; each bound entity simply moves on the same key.
func (c *Config) Overlaps() []Overlap {
	byKey := make(map[common.Key][]string)
	for _, cc := range c.Controllers {
		p, err := cc.Profile()
		if err != nil {
			continue
		}
		for _, k := range p.Keys() {
			byKey[k] = append(byKey[k], cc.Role)
		}
	}
	var out []Overlap
	for k, roles := range byKey {
		if len(roles) > 1 {
			out = append(out, Overlap{Key: k, Roles: roles})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
