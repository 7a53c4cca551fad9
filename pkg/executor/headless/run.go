package headless

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/entrhq/vocab/pkg/config"
	"github.com/entrhq/vocab/pkg/logging"
	"github.com/entrhq/vocab/pkg/overlay"
	"github.com/entrhq/vocab/pkg/types"
)

// frameInterval is the step between animation frames during a tick step.
const frameInterval = 16 * time.Millisecond

// scenarioEpoch is where every scenario clock starts, so event timestamps in
// artifacts are reproducible.
var scenarioEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// run is the live state of one scenario.
type run struct {
	scenario *Scenario
	log      *logging.Logger

	now     time.Time
	host    *recordingHost
	perm    *switchable
	wake    *countingWakeLock
	haptics *countingHaptics

	bubble  *config.BubbleSection
	store   overlay.PositionStore
	disk    *diskStore
	manager *overlay.Manager

	events       []types.OverlayEvent
	taps         int
	quickActions int
}

// diskStore is the config-file backend of a scenario with persist: file.
type diskStore struct {
	dir       string
	path      string
	positions *config.PositionStore
}

func newRun(s *Scenario, log *logging.Logger) (*run, error) {
	r := &run{
		scenario: s,
		log:      log,
		now:      scenarioEpoch,
		host:     newRecordingHost(s.Screen),
		perm:     &switchable{granted: true},
		wake:     &countingWakeLock{},
		haptics:  &countingHaptics{},
	}
	if s.Initial.Permission != nil {
		r.perm.granted = *s.Initial.Permission
	}

	switch s.Initial.Persist {
	case PersistFile:
		dir, err := os.MkdirTemp("", "vocab-scenario-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create scenario config dir: %w", err)
		}
		r.disk = &diskStore{dir: dir, path: filepath.Join(dir, "config.json")}
		if err := r.openDisk(); err != nil {
			r.close()
			return nil, err
		}
		seed(r.bubble, s.Initial)
		if err := r.disk.positions.Flush(); err != nil {
			r.close()
			return nil, fmt.Errorf("failed to write initial state: %w", err)
		}
	default:
		r.bubble = config.NewBubbleSection()
		seed(r.bubble, s.Initial)
		mem := overlay.NewMemoryStore()
		if s.Initial.Position != nil {
			mem.Save(r.bubble.Position())
		}
		mem.SaveSize(r.bubble.GetSize())
		mem.SetFeatureEnabled(r.bubble.IsEnabled())
		r.store = mem
	}

	r.manager = r.newManager()
	return r, nil
}

// seed copies the initial state into a bubble section.
func seed(bubble *config.BubbleSection, init InitialState) {
	if init.Position != nil {
		bubble.SetPosition(*init.Position)
	}
	if init.Size != 0 {
		bubble.SetSize(init.Size)
	}
	if init.Enabled != nil {
		bubble.SetEnabled(*init.Enabled)
	}
	if init.Transparency != nil {
		bubble.SetTransparency(*init.Transparency)
	}
	if init.Vibration != nil {
		bubble.SetVibration(*init.Vibration)
	}
}

// openDisk loads the scenario config file into a fresh config manager.
func (r *run) openDisk() error {
	fs, err := config.NewFileStore(r.disk.path)
	if err != nil {
		return fmt.Errorf("failed to open scenario config: %w", err)
	}
	mgr, err := config.NewDefaultManager(fs)
	if err != nil {
		return fmt.Errorf("failed to load scenario config: %w", err)
	}
	positions, err := config.NewPositionStore(mgr, config.WithStoreLogger(r.log))
	if err != nil {
		return err
	}
	section, _ := mgr.GetSection(config.SectionIDBubble)
	r.bubble = section.(*config.BubbleSection)
	r.disk.positions = positions
	r.store = positions
	return nil
}

func (r *run) newManager() *overlay.Manager {
	settings := r.bubble.Settings()
	return overlay.NewManager(r.host, r.store, overlay.Options{
		Permission:     r.perm,
		WakeLock:       r.wake,
		Haptics:        r.haptics,
		Logger:         r.log,
		OnTap:          func() { r.taps++ },
		OnQuickActions: func() { r.quickActions++ },
		OnEvent: func(ev types.OverlayEvent) {
			r.events = append(r.events, ev)
			r.log.Debugf("%s at (%d, %d)", ev.Type, ev.X, ev.Y)
		},
		Alpha:     settings.Alpha,
		Vibration: settings.Vibration,
		Clock:     func() time.Time { return r.now },
	})
}

// step applies one scenario step.
func (r *run) step(s Step) error {
	if s.At != nil {
		r.now = scenarioEpoch.Add(*s.At)
	}

	action, err := s.Action()
	if err != nil {
		return err
	}

	switch action {
	case "pointer":
		pa, err := s.pointerAction()
		if err != nil {
			return err
		}
		r.manager.HandlePointer(overlay.PointerEvent{Action: pa, X: s.X, Y: s.Y, At: r.now})
	case "long_press":
		r.manager.LongPress(r.now)
	case "signal":
		sig, err := overlay.ParseSignal(s.Signal)
		if err != nil {
			return err
		}
		r.manager.Handle(sig)
	case "enable":
		r.manager.Enable()
	case "tick":
		end := r.now.Add(s.Tick)
		for r.now.Before(end) {
			next := r.now.Add(frameInterval)
			if next.After(end) {
				next = end
			}
			r.now = next
			r.manager.Tick(r.now)
		}
	case "advance":
		r.now = r.now.Add(s.Advance)
	case "permission":
		r.perm.granted = *s.Permission
	case "reconfigure":
		r.reconfigure(*s.Reconfigure)
	case "restart":
		return r.restart()
	case "lose_surface":
		r.host.dropAll()
	}
	return nil
}

func (r *run) reconfigure(c Reconfigure) {
	if c.Size != 0 {
		r.bubble.SetSize(c.Size)
	}
	if c.Transparency != nil {
		r.bubble.SetTransparency(*c.Transparency)
	}
	if c.Vibration != nil {
		r.bubble.SetVibration(*c.Vibration)
	}
	r.manager.Reconfigure(r.bubble.Settings())
}

// restart is a graceful process restart. Queued saves are flushed as on a
// clean shutdown, then surfaces vanish without a destroy call, the wake lock
// is released, and a new manager is built over what the store persisted. A
// file store is reopened from disk.
func (r *run) restart() error {
	r.host.dropAll()
	r.wake.Release()

	if r.disk != nil {
		if err := r.disk.positions.Close(); err != nil {
			return fmt.Errorf("failed to persist before restart: %w", err)
		}
		if err := r.openDisk(); err != nil {
			return err
		}
	}

	r.manager = r.newManager()
	r.manager.Handle(overlay.AppStarted)
	return nil
}

// close releases the scenario's store and temporary files.
func (r *run) close() {
	if r.disk == nil {
		return
	}
	if r.disk.positions != nil {
		if err := r.disk.positions.Close(); err != nil {
			r.log.Warnf("failed to save scenario config: %v", err)
		}
	}
	if err := os.RemoveAll(r.disk.dir); err != nil {
		r.log.Warnf("failed to remove %s: %v", r.disk.dir, err)
	}
}

func (r *run) count(t types.OverlayEventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (r *run) eventNames() []string {
	names := make([]string, len(r.events))
	for i, ev := range r.events {
		names[i] = string(ev.Type)
	}
	return names
}

// final captures the observable state for the result.
func (r *run) final() FinalState {
	ctrl := r.manager.Controller()
	zone := ctrl.DeleteZone()
	stored, _ := r.store.Load()
	return FinalState{
		Attached:     r.manager.State() == overlay.Attached,
		Enabled:      r.store.IsFeatureEnabled(),
		Position:     ctrl.Position(),
		Stored:       stored,
		State:        ctrl.State().String(),
		Taps:         r.taps,
		QuickActions: r.quickActions,
		Dismissed:    r.count(types.EventTypeDismissed) > 0,
		Creates:      r.host.creates,
		Destroys:     r.host.destroys,
		Haptics:      r.haptics.pulses,
		WakeLock:     r.wake.held,
		ZoneVisible:  zone.Visible,
		ZoneArmed:    zone.Armed,
	}
}

// check compares the state against e and describes every mismatch.
func (r *run) check(e *Expectations) []string {
	if e == nil {
		return nil
	}
	got := r.final()
	var failures []string
	mismatch := func(field string, have, want interface{}) {
		failures = append(failures, fmt.Sprintf("%s = %v, want %v", field, have, want))
	}

	checkBool := func(field string, have bool, want *bool) {
		if want != nil && have != *want {
			mismatch(field, have, *want)
		}
	}
	checkInt := func(field string, have int, want *int) {
		if want != nil && have != *want {
			mismatch(field, have, *want)
		}
	}
	checkPos := func(field string, have overlay.Position, want *overlay.Position) {
		if want != nil && have != *want {
			mismatch(field, formatPosition(have), formatPosition(*want))
		}
	}

	checkBool("attached", got.Attached, e.Attached)
	checkBool("enabled", got.Enabled, e.Enabled)
	checkPos("position", got.Position, e.Position)
	checkPos("stored", got.Stored, e.Stored)
	if e.State != "" && got.State != e.State {
		mismatch("state", got.State, e.State)
	}
	checkInt("taps", got.Taps, e.Taps)
	checkInt("quick_actions", got.QuickActions, e.QuickActions)
	checkBool("dismissed", got.Dismissed, e.Dismissed)
	checkInt("creates", got.Creates, e.Creates)
	checkInt("destroys", got.Destroys, e.Destroys)
	checkInt("haptics", got.Haptics, e.Haptics)
	checkBool("wake_lock", got.WakeLock, e.WakeLock)
	checkBool("zone_visible", got.ZoneVisible, e.ZoneVisible)
	checkBool("zone_armed", got.ZoneArmed, e.ZoneArmed)

	for _, name := range e.Events {
		if r.count(types.OverlayEventType(name)) == 0 {
			failures = append(failures, fmt.Sprintf("event %q never emitted", name))
		}
	}
	for _, name := range e.NoEvents {
		if n := r.count(types.OverlayEventType(name)); n > 0 {
			failures = append(failures, fmt.Sprintf("event %q emitted %d times", name, n))
		}
	}
	return failures
}

func formatPosition(p overlay.Position) string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// RunScenario plays s against a fresh manager and recording host.
func RunScenario(s *Scenario, log *logging.Logger) ScenarioResult {
	started := time.Now()
	result := ScenarioResult{Name: s.Name, Source: s.Source}

	r, err := newRun(s, log)
	if err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(started)
		return result
	}
	defer r.close()

	for i, step := range s.Steps {
		if err := r.step(step); err != nil {
			result.Error = fmt.Sprintf("step %d: %v", i+1, err)
			break
		}
		result.Steps++
		for _, f := range r.check(step.Expect) {
			result.Failures = append(result.Failures, fmt.Sprintf("after step %d: %s", i+1, f))
		}
	}
	if result.Error == "" {
		result.Failures = append(result.Failures, r.check(&s.Expect)...)
	}

	result.Final = r.final()
	result.Events = r.eventNames()
	r.manager.Close()
	result.Passed = result.Error == "" && len(result.Failures) == 0
	result.Duration = time.Since(started)
	return result
}
