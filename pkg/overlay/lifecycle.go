package overlay

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/entrhq/vocab/pkg/types"
)

// Signal is a lifecycle input to the Manager.
type Signal int

const (
	// AppStarted is sent once per process start.
	AppStarted Signal = iota + 1
	// ScreenOff is sent when the display turns off.
	ScreenOff
	// ScreenOn is sent when the display turns on.
	ScreenOn
	// UserPresent is sent when the user unlocks the device.
	UserPresent
	// StopRequested disables the bubble: the user switched it off or dropped
	// it on the delete zone.
	StopRequested
)

var signalNames = map[Signal]string{
	AppStarted:    "app_started",
	ScreenOff:     "screen_off",
	ScreenOn:      "screen_on",
	UserPresent:   "user_present",
	StopRequested: "stop_requested",
}

func (s Signal) String() string {
	if name, ok := signalNames[s]; ok {
		return name
	}
	return fmt.Sprintf("signal(%d)", int(s))
}

// ParseSignal converts a snake_case or kebab-case name into a Signal.
func ParseSignal(name string) (Signal, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for sig, n := range signalNames {
		if n == normalized {
			return sig, nil
		}
	}
	return 0, fmt.Errorf("unknown signal %q", name)
}

// State is whether the bubble surface is on screen.
type State int

const (
	Detached State = iota
	Attached
)

func (s State) String() string {
	if s == Attached {
		return "attached"
	}
	return "detached"
}

// Attachment records the single live surface. The zero value is detached.
type Attachment struct {
	Handle   SurfaceHandle
	Size     Size
	attached bool
}

// Attached reports whether the attachment holds a live surface.
func (a Attachment) Attached() bool {
	return a.attached
}

// Settings are the user-tunable bubble options applied by Reconfigure.
type Settings struct {
	// Size is the bubble diameter, clamped to [MinOverlaySize, MaxOverlaySize].
	Size int
	// Alpha is the resting opacity, raised to MinAlpha. Zero means fully
	// opaque.
	Alpha float64
	// Vibration enables haptic feedback on tap, long press and dismissal.
	Vibration bool
}

// Options configures a Manager. Every field is optional.
type Options struct {
	Permission Permission
	WakeLock   WakeLock
	Haptics    Haptics
	Logger     Logger

	// OnTap runs when the bubble is tapped.
	OnTap func()
	// OnQuickActions runs on a long press.
	OnQuickActions func()
	// OnEvent receives every overlay event in order.
	OnEvent func(types.OverlayEvent)

	Snap           SnapConfig
	DeleteZoneSize Size

	// Alpha is the initial resting opacity, read like Settings.Alpha.
	Alpha     float64
	Vibration bool

	// Clock stamps lifecycle events. Defaults to time.Now.
	Clock func() time.Time
}

// Manager owns the bubble's surface attachment and turns lifecycle signals
// into create and destroy calls on the Host. It is the only component that
// creates or destroys the surface.
type Manager struct {
	host       Host
	store      PositionStore
	permission Permission
	wakeLock   WakeLock
	log        Logger
	onEvent    func(types.OverlayEvent)
	clock      func() time.Time

	attachment Attachment
	controller *Controller
	screenOn   bool
	lockHeld   bool
}

// NewManager creates a detached Manager. Nothing is drawn until a signal
// such as AppStarted arrives.
func NewManager(host Host, store PositionStore, opts Options) *Manager {
	m := &Manager{
		host:       host,
		store:      store,
		permission: opts.Permission,
		wakeLock:   opts.WakeLock,
		log:        opts.Logger,
		onEvent:    opts.OnEvent,
		clock:      opts.Clock,
		screenOn:   true,
	}
	if m.permission == nil {
		m.permission = AllowAll{}
	}
	if m.log == nil {
		m.log = nopLogger{}
	}
	if m.clock == nil {
		m.clock = time.Now
	}

	zone := opts.DeleteZoneSize
	if zone.Empty() {
		zone = DefaultDeleteZoneSize
	}

	m.controller = &Controller{
		surface:        boundSurface{m: m},
		store:          store,
		log:            m.log,
		snapCfg:        opts.Snap.withDefaults(),
		zoneSize:       zone,
		diameter:       DefaultOverlaySize,
		alpha:          restingAlpha(opts.Alpha),
		haptics:        opts.Haptics,
		vibration:      opts.Vibration,
		onTap:          opts.OnTap,
		onQuickActions: opts.OnQuickActions,
		onEvent:        opts.OnEvent,
	}
	m.controller.onDismiss = func() {
		m.Handle(StopRequested)
	}
	return m
}

// Controller returns the gesture controller.
func (m *Manager) Controller() *Controller {
	return m.controller
}

// State reports whether the bubble is on screen.
func (m *Manager) State() State {
	if m.attachment.attached {
		return Attached
	}
	return Detached
}

// Attachment returns a copy of the current attachment.
func (m *Manager) Attachment() Attachment {
	return m.attachment
}

// Handle applies one lifecycle signal and returns the resulting state.
func (m *Manager) Handle(sig Signal) State {
	m.log.Debugf("signal %s (state=%s)", sig, m.State())

	switch sig {
	case AppStarted:
		if m.screenOn {
			m.tryAttach(sig)
		}
	case ScreenOff:
		m.screenOn = false
		m.detach(sig.String())
	case ScreenOn, UserPresent:
		m.screenOn = true
		m.tryAttach(sig)
	case StopRequested:
		m.detach(sig.String())
		m.store.SetFeatureEnabled(false)
		m.emit(types.EventTypeStopped, nil)
	default:
		m.log.Warnf("ignoring unknown signal %d", int(sig))
	}
	return m.State()
}

// Enable switches the bubble feature on and attaches if the screen is on.
func (m *Manager) Enable() State {
	m.store.SetFeatureEnabled(true)
	if m.screenOn {
		m.tryAttach(AppStarted)
	}
	return m.State()
}

// HandlePointer forwards a pointer sample to the controller while attached.
func (m *Manager) HandlePointer(ev PointerEvent) bool {
	if !m.attachment.attached {
		return false
	}
	return m.controller.HandlePointer(ev)
}

// LongPress forwards a long-press to the controller while attached.
func (m *Manager) LongPress(now time.Time) bool {
	if !m.attachment.attached {
		return false
	}
	return m.controller.LongPress(now)
}

// Tick drives every animation. Hosts call it once per frame.
func (m *Manager) Tick(now time.Time) {
	if !m.attachment.attached {
		return
	}
	m.controller.Tick(now)
}

// Reconfigure applies new settings. A diameter change recreates the surface
// at the current position.
func (m *Manager) Reconfigure(s Settings) {
	d := ClampOverlaySize(s.Size)
	m.store.SaveSize(d)
	m.controller.alpha = restingAlpha(s.Alpha)
	m.controller.vibration = s.Vibration
	m.controller.diameter = d

	if m.attachment.attached {
		if m.attachment.Size.Width != d {
			m.log.Infof("bubble diameter changed %d -> %d; recreating surface", m.attachment.Size.Width, d)
			m.detach("reconfigure")
			m.tryAttach(AppStarted)
		} else {
			m.controller.applyTransform(Identity(m.controller.alpha))
		}
	}
	m.emitEvent(types.NewOverlayEvent(types.EventTypeReconfigured, m.clock(), m.controller.position.X, m.controller.position.Y).
		WithMeta("size", d).
		WithMeta("alpha", m.controller.alpha))
}

// restingAlpha is the opacity the bubble is drawn with for a configured
// alpha. Zero is unset and draws opaque; anything else is kept within
// [MinAlpha, 1].
func restingAlpha(a float64) float64 {
	if a <= 0 {
		return 1
	}
	return clampFloat(a, MinAlpha, 1)
}

// Close detaches without touching the enabled flag, for process shutdown.
func (m *Manager) Close() {
	m.detach("close")
}

func (m *Manager) tryAttach(sig Signal) {
	if err := m.attach(sig.String()); err != nil {
		if errors.Is(err, ErrFeatureDisabled) {
			m.log.Debugf("%s: %v", sig, err)
			return
		}
		m.log.Warnf("%s: bubble not attached: %v", sig, err)
	}
}

func (m *Manager) attach(reason string) error {
	if m.attachment.attached {
		m.log.Debugf("attach (%s): already attached, nothing to do", reason)
		return nil
	}
	if !m.store.IsFeatureEnabled() {
		m.emit(types.EventTypeAttachRefused, ErrFeatureDisabled)
		return ErrFeatureDisabled
	}
	if !m.permission.CanDrawOverlays() {
		m.emit(types.EventTypeAttachRefused, ErrPermissionDenied)
		return ErrPermissionDenied
	}

	pos, err := m.store.Load()
	if err != nil {
		m.log.Warnf("load bubble position: %v; using default", err)
		pos = DefaultPosition
	}
	d, err := m.store.LoadSize()
	if err != nil {
		m.log.Warnf("load bubble size: %v; using default", err)
		d = DefaultOverlaySize
	}
	d = ClampOverlaySize(d)
	size := Square(d)

	if clamped := pos.Clamp(m.host.ScreenSize(), size); clamped != pos {
		m.log.Infof("bubble position (%d, %d) off screen; moved to (%d, %d)", pos.X, pos.Y, clamped.X, clamped.Y)
		pos = clamped
		m.store.Save(pos)
	}

	h, err := m.host.CreateSurface(pos, size)
	if err != nil {
		if !errors.Is(err, ErrAlreadyAttached) || h == 0 {
			m.emit(types.EventTypeAttachRefused, err)
			return fmt.Errorf("create surface: %w", err)
		}
		m.log.Warnf("host already shows the bubble; adopting surface %d", h)
	}

	m.attachment = Attachment{Handle: h, Size: size, attached: true}
	m.controller.reset(pos, d)
	m.controller.applyTransform(Identity(m.controller.alpha))
	m.acquireWakeLock()
	m.log.Infof("bubble attached at (%d, %d) size %d (%s)", pos.X, pos.Y, d, reason)
	m.emitEvent(types.NewOverlayEvent(types.EventTypeAttached, m.clock(), pos.X, pos.Y).WithMeta("reason", reason))
	return nil
}

func (m *Manager) detach(reason string) {
	if !m.attachment.attached {
		m.log.Debugf("detach (%s): not attached, nothing to do", reason)
		m.releaseWakeLock()
		return
	}
	m.controller.Abort(m.clock())

	h := m.attachment.Handle
	m.attachment = Attachment{}
	if err := m.host.DestroySurface(h); err != nil {
		if errors.Is(err, ErrSurfaceGone) || errors.Is(err, ErrNotAttached) {
			m.log.Debugf("destroy surface %d: %v", h, err)
		} else {
			m.log.Errorf("destroy surface %d: %v", h, err)
			m.emitEvent(types.NewErrorEvent(m.clock(), err))
		}
	}
	m.releaseWakeLock()
	m.log.Infof("bubble detached (%s)", reason)
	m.emitEvent(types.NewOverlayEvent(types.EventTypeDetached, m.clock(), m.controller.position.X, m.controller.position.Y).
		WithMeta("reason", reason))
}

// surfaceLost drops a surface the host removed on its own. The next enabling
// signal recreates it.
func (m *Manager) surfaceLost(err error) {
	if !m.attachment.attached {
		return
	}
	m.log.Warnf("bubble surface %d lost: %v", m.attachment.Handle, err)
	m.attachment = Attachment{}
	m.releaseWakeLock()
	m.emit(types.EventTypeSurfaceLost, err)
}

func (m *Manager) acquireWakeLock() {
	if m.wakeLock == nil || m.lockHeld {
		return
	}
	m.wakeLock.Acquire()
	m.lockHeld = true
}

func (m *Manager) releaseWakeLock() {
	if m.wakeLock == nil || !m.lockHeld {
		return
	}
	m.wakeLock.Release()
	m.lockHeld = false
}

func (m *Manager) emit(t types.OverlayEventType, err error) {
	e := types.NewOverlayEvent(t, m.clock(), m.controller.position.X, m.controller.position.Y)
	e.Error = err
	m.emitEvent(e)
}

func (m *Manager) emitEvent(e types.OverlayEvent) {
	if m.onEvent != nil {
		m.onEvent(e)
	}
}

// boundSurface exposes the live attachment to the controller.
type boundSurface struct {
	m *Manager
}

func (b boundSurface) move(pos Position) error {
	if !b.m.attachment.attached {
		return ErrNotAttached
	}
	err := b.m.host.UpdateSurfacePosition(b.m.attachment.Handle, pos)
	b.check(err)
	return err
}

func (b boundSurface) measure() (Size, error) {
	if !b.m.attachment.attached {
		return Size{}, ErrNotAttached
	}
	return b.m.host.MeasureSurface(b.m.attachment.Handle)
}

func (b boundSurface) transform(t Transform) error {
	if !b.m.attachment.attached {
		return ErrNotAttached
	}
	err := b.m.host.ApplyTransform(b.m.attachment.Handle, t)
	b.check(err)
	return err
}

func (b boundSurface) screen() Size {
	return b.m.host.ScreenSize()
}

func (b boundSurface) renderDeleteZone(z DeleteZoneAppearance) {
	b.m.host.RenderDeleteZone(z)
}

func (b boundSurface) check(err error) {
	if errors.Is(err, ErrSurfaceGone) {
		b.m.surfaceLost(err)
	}
}
