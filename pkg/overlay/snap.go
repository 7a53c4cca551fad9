package overlay

import (
	"math"
	"time"
)

// SnapConfig tunes the edge-snap animation.
type SnapConfig struct {
	Margin         int
	WobbleDuration time.Duration
	TravelDuration time.Duration
}

// DefaultSnapConfig returns the stock 300ms animation split evenly between
// the wobble and travel phases.
func DefaultSnapConfig() SnapConfig {
	return SnapConfig{
		Margin:         EdgeMargin,
		WobbleDuration: 150 * time.Millisecond,
		TravelDuration: 150 * time.Millisecond,
	}
}

func (c SnapConfig) withDefaults() SnapConfig {
	d := DefaultSnapConfig()
	if c.Margin <= 0 {
		c.Margin = d.Margin
	}
	if c.WobbleDuration <= 0 {
		c.WobbleDuration = d.WobbleDuration
	}
	if c.TravelDuration <= 0 {
		c.TravelDuration = d.TravelDuration
	}
	return c
}

// SnapTargetX returns the x the bubble settles on: the left margin when it
// starts in the left half of the screen, otherwise the right margin.
func SnapTargetX(startX, screenWidth, overlayWidth, margin int) int {
	if startX < screenWidth/2 {
		return margin
	}
	return screenWidth - overlayWidth - margin
}

// SnapTarget returns where a bubble released at from settles: on the nearest
// side margin, with y pulled back inside [0, screen height - overlay height].
func SnapTarget(from Position, screen, overlay Size, margin int) Position {
	return Position{
		X: SnapTargetX(from.X, screen.Width, overlay.Width, margin),
		Y: clampInt(from.Y, 0, screen.Height-overlay.Height),
	}
}

// Frame is one rendered step of a SnapAnimation.
type Frame struct {
	Position  Position
	Transform Transform
	Phase     string
	// Positional is set when the frame came from a phase that moves the
	// surface. Such frames are persisted.
	Positional bool
}

// Phase is one step of a SnapAnimation. Apply receives the linear progress
// through the phase in [0, 1] and updates the frame in place.
type Phase struct {
	Name       string
	Duration   time.Duration
	Positional bool
	Apply      func(f float64, fr *Frame)
}

// SnapAnimation plays an ordered list of phases from a start time. It holds
// no timers; the owner calls Advance on every frame tick.
type SnapAnimation struct {
	phases     []Phase
	index      int
	phaseStart time.Time
	frame      Frame
	target     Position
	done       bool
}

// NewSnapAnimation builds the two-phase snap from `from` to target:
//
//	wobble  rotation 0,-10,10,-5,5,0 and scale 1,1.2,0.8,1 (anticipate-overshoot)
//	travel  x and y eased with a bounce curve, alpha 1,0.8,1
//
// baseAlpha scales the alpha track so a translucent bubble stays translucent.
func NewSnapAnimation(from, target Position, baseAlpha float64, now time.Time, cfg SnapConfig) *SnapAnimation {
	cfg = cfg.withDefaults()
	rotation := keyframes{0, -10, 10, -5, 5, 0}
	scale := keyframes{1, 1.2, 0.8, 1}
	alpha := keyframes{1, 0.8, 1}
	dx := float64(target.X - from.X)
	dy := float64(target.Y - from.Y)

	a := &SnapAnimation{
		phaseStart: now,
		target:     target,
		frame: Frame{
			Position:  from,
			Transform: Identity(baseAlpha),
		},
	}
	a.phases = []Phase{
		{
			Name:     "wobble",
			Duration: cfg.WobbleDuration,
			Apply: func(f float64, fr *Frame) {
				fr.Transform.Rotation = rotation.at(accelerateDecelerate(f))
				fr.Transform.Scale = scale.at(anticipateOvershoot(f, 1.5))
			},
		},
		{
			Name:       "travel",
			Duration:   cfg.TravelDuration,
			Positional: true,
			Apply: func(f float64, fr *Frame) {
				if f >= 1 {
					fr.Position = target
				} else {
					e := bounce(f)
					fr.Position = from.Offset(dx*e, dy*e)
				}
				fr.Transform.Alpha = baseAlpha * alpha.at(accelerateDecelerate(f))
			},
		},
	}
	return a
}

// Phases returns the phase list in play order.
func (a *SnapAnimation) Phases() []Phase {
	return a.phases
}

// Target returns the settled position.
func (a *SnapAnimation) Target() Position {
	return a.target
}

// Frame returns the most recently rendered frame.
func (a *SnapAnimation) Frame() Frame {
	return a.frame
}

// Done reports whether every phase has completed.
func (a *SnapAnimation) Done() bool {
	return a.done
}

// Duration returns the summed duration of all phases.
func (a *SnapAnimation) Duration() time.Duration {
	var total time.Duration
	for _, p := range a.phases {
		total += p.Duration
	}
	return total
}

// Advance renders the frame for now. Phases that ended before now are applied
// at their final value first, so a late tick never skips a phase's end state.
// It returns the frame and whether the animation is complete.
func (a *SnapAnimation) Advance(now time.Time) (Frame, bool) {
	if a.done {
		return a.frame, true
	}
	a.frame.Positional = false
	for a.index < len(a.phases) {
		p := a.phases[a.index]
		elapsed := now.Sub(a.phaseStart)
		a.frame.Phase = p.Name
		if p.Positional {
			a.frame.Positional = true
		}
		if elapsed < p.Duration {
			p.Apply(float64(elapsed)/float64(p.Duration), &a.frame)
			return a.frame, false
		}
		p.Apply(1, &a.frame)
		a.index++
		a.phaseStart = a.phaseStart.Add(p.Duration)
	}
	a.done = true
	return a.frame, true
}

// keyframes are evenly spaced values over [0, 1]. Progress outside that range
// extrapolates along the first or last segment.
type keyframes []float64

func (k keyframes) at(f float64) float64 {
	n := len(k)
	switch n {
	case 0:
		return 0
	case 1:
		return k[0]
	}
	step := 1 / float64(n-1)
	i := int(math.Floor(f / step))
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	local := (f - float64(i)*step) / step
	return k[i] + (k[i+1]-k[i])*local
}

// bounce eases towards 1 and bounces off it three times.
func bounce(t float64) float64 {
	b := func(t float64) float64 { return t * t * 8 }
	t *= 1.1226
	switch {
	case t < 0.3535:
		return b(t)
	case t < 0.7408:
		return b(t-0.54719) + 0.7
	case t < 0.9644:
		return b(t-0.8526) + 0.9
	default:
		return b(t-1.0435) + 0.95
	}
}

// anticipateOvershoot pulls back first, then overshoots the end and settles.
func anticipateOvershoot(t, tension float64) float64 {
	s := tension * 1.5
	a := func(t, s float64) float64 { return t * t * ((s+1)*t - s) }
	o := func(t, s float64) float64 { return t * t * ((s+1)*t + s) }
	if t < 0.5 {
		return 0.5 * a(t*2, s)
	}
	return 0.5 * (o(t*2-2, s) + 2)
}

func accelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}
