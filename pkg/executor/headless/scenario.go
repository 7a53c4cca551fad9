package headless

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/entrhq/vocab/pkg/overlay"
	"gopkg.in/yaml.v3"
)

// Persistence backends a scenario can run against.
const (
	PersistMemory = "memory"
	PersistFile   = "file"
)

// DefaultScreen is the screen a scenario gets when it does not set one.
var DefaultScreen = overlay.Size{Width: 1000, Height: 1800}

// Scenario is one scripted run of the bubble: a starting state, a list of
// steps fed to the manager in order, and the expected end state.
type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Screen      overlay.Size `yaml:"screen,omitempty"`
	Initial     InitialState `yaml:"initial,omitempty"`
	Steps       []Step       `yaml:"steps"`
	Expect      Expectations `yaml:"expect,omitempty"`

	// Source is the file the scenario was read from.
	Source string `yaml:"-"`
}

// InitialState seeds the store and devices before the first step.
type InitialState struct {
	Position     *overlay.Position `yaml:"position,omitempty"`
	Size         int               `yaml:"size,omitempty"`
	Enabled      *bool             `yaml:"enabled,omitempty"`
	Permission   *bool             `yaml:"permission,omitempty"`
	Transparency *int              `yaml:"transparency,omitempty"`
	Vibration    *bool             `yaml:"vibration,omitempty"`

	// Persist selects the store: "memory" (default) or "file", which saves
	// through the config package into a temporary config file.
	Persist string `yaml:"persist,omitempty"`
}

// Step is a single action. Exactly one action field may be set, except for
// a bare checkpoint that only carries At and/or Expect.
type Step struct {
	// At moves the scenario clock to this offset from the start before the
	// action runs. It may not move the clock backwards.
	At *time.Duration `yaml:"at,omitempty"`

	Pointer string  `yaml:"pointer,omitempty"`
	X       float64 `yaml:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty"`

	LongPress   bool          `yaml:"long_press,omitempty"`
	Signal      string        `yaml:"signal,omitempty"`
	Enable      bool          `yaml:"enable,omitempty"`
	Tick        time.Duration `yaml:"tick,omitempty"`
	Advance     time.Duration `yaml:"advance,omitempty"`
	Permission  *bool         `yaml:"permission,omitempty"`
	Reconfigure *Reconfigure  `yaml:"reconfigure,omitempty"`
	Restart     bool          `yaml:"restart,omitempty"`
	LoseSurface bool          `yaml:"lose_surface,omitempty"`

	// Expect is checked right after the action.
	Expect *Expectations `yaml:"expect,omitempty"`
}

// Reconfigure changes the live bubble settings.
type Reconfigure struct {
	Size         int   `yaml:"size,omitempty"`
	Transparency *int  `yaml:"transparency,omitempty"`
	Vibration    *bool `yaml:"vibration,omitempty"`
}

// Expectations are assertions on the observable state. Unset fields are not
// checked.
type Expectations struct {
	Attached     *bool             `yaml:"attached,omitempty"`
	Enabled      *bool             `yaml:"enabled,omitempty"`
	Position     *overlay.Position `yaml:"position,omitempty"`
	Stored       *overlay.Position `yaml:"stored,omitempty"`
	State        string            `yaml:"state,omitempty"`
	Taps         *int              `yaml:"taps,omitempty"`
	QuickActions *int              `yaml:"quick_actions,omitempty"`
	Dismissed    *bool             `yaml:"dismissed,omitempty"`
	Creates      *int              `yaml:"creates,omitempty"`
	Destroys     *int              `yaml:"destroys,omitempty"`
	Haptics      *int              `yaml:"haptics,omitempty"`
	WakeLock     *bool             `yaml:"wake_lock,omitempty"`
	ZoneVisible  *bool             `yaml:"zone_visible,omitempty"`
	ZoneArmed    *bool             `yaml:"zone_armed,omitempty"`

	// Events must each appear at least once; NoEvents must not appear.
	Events   []string `yaml:"events,omitempty"`
	NoEvents []string `yaml:"no_events,omitempty"`
}

// Action names the single action of a step, or "checkpoint".
func (s Step) Action() (string, error) {
	var actions []string
	if s.Pointer != "" {
		actions = append(actions, "pointer")
	}
	if s.LongPress {
		actions = append(actions, "long_press")
	}
	if s.Signal != "" {
		actions = append(actions, "signal")
	}
	if s.Enable {
		actions = append(actions, "enable")
	}
	if s.Tick != 0 {
		actions = append(actions, "tick")
	}
	if s.Advance != 0 {
		actions = append(actions, "advance")
	}
	if s.Permission != nil {
		actions = append(actions, "permission")
	}
	if s.Reconfigure != nil {
		actions = append(actions, "reconfigure")
	}
	if s.Restart {
		actions = append(actions, "restart")
	}
	if s.LoseSurface {
		actions = append(actions, "lose_surface")
	}

	switch len(actions) {
	case 0:
		if s.At == nil && s.Expect == nil {
			return "", errors.New("step has no action")
		}
		return "checkpoint", nil
	case 1:
		return actions[0], nil
	default:
		return "", fmt.Errorf("step has several actions: %s", strings.Join(actions, ", "))
	}
}

// pointerAction parses the pointer field.
func (s Step) pointerAction() (overlay.PointerAction, error) {
	switch strings.ToLower(s.Pointer) {
	case "down":
		return overlay.PointerDown, nil
	case "move":
		return overlay.PointerMove, nil
	case "up":
		return overlay.PointerUp, nil
	case "cancel":
		return overlay.PointerCancel, nil
	default:
		return 0, fmt.Errorf("unknown pointer action %q", s.Pointer)
	}
}

// Validate checks the scenario before it runs and fills in defaults.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("scenario name is required")
	}
	if s.Screen.Empty() {
		s.Screen = DefaultScreen
	}
	switch s.Initial.Persist {
	case "":
		s.Initial.Persist = PersistMemory
	case PersistMemory, PersistFile:
	default:
		return fmt.Errorf("scenario %q: unknown persist %q", s.Name, s.Initial.Persist)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q: no steps", s.Name)
	}

	var clock time.Duration
	for i, step := range s.Steps {
		action, err := step.Action()
		if err != nil {
			return fmt.Errorf("scenario %q step %d: %w", s.Name, i+1, err)
		}
		if step.At != nil {
			if *step.At < clock {
				return fmt.Errorf("scenario %q step %d: at %s is before %s", s.Name, i+1, *step.At, clock)
			}
			clock = *step.At
		}
		switch action {
		case "pointer":
			if _, err := step.pointerAction(); err != nil {
				return fmt.Errorf("scenario %q step %d: %w", s.Name, i+1, err)
			}
		case "signal":
			if _, err := overlay.ParseSignal(step.Signal); err != nil {
				return fmt.Errorf("scenario %q step %d: %w", s.Name, i+1, err)
			}
		case "tick", "advance":
			d := step.Tick + step.Advance
			if d < 0 {
				return fmt.Errorf("scenario %q step %d: negative duration %s", s.Name, i+1, d)
			}
			clock += d
		}
	}
	return nil
}

// ParseScenarios decodes every YAML document in r. Documents are separated
// by "---", so one file can hold several scenarios.
func ParseScenarios(r io.Reader, source string) ([]*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var scenarios []*Scenario
	for {
		var s Scenario
		err := dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", source, err)
		}
		s.Source = source
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		scenarios = append(scenarios, &s)
	}
	return scenarios, nil
}

// LoadScenarios reads scenarios from files and directories. Directories are
// walked for .yaml and .yml files in lexical order. Names must be unique.
func LoadScenarios(paths []string) ([]*Scenario, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat scenario path: %w", err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := scenarioFiles(path)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	seen := make(map[string]string)
	var scenarios []*Scenario
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read scenario file: %w", err)
		}
		parsed, err := ParseScenarios(bytes.NewReader(data), file)
		if err != nil {
			return nil, err
		}
		for _, s := range parsed {
			if prev, dup := seen[s.Name]; dup {
				return nil, fmt.Errorf("duplicate scenario %q in %s and %s", s.Name, prev, file)
			}
			seen[s.Name] = file
			scenarios = append(scenarios, s)
		}
	}
	return scenarios, nil
}

func scenarioFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
