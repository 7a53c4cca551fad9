package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapTargetX(t *testing.T) {
	tests := []struct {
		name   string
		startX int
		want   int
	}{
		{"left half", 100, 20},
		{"right half", 900, 940},
		{"just left of centre", 499, 20},
		{"centre goes right", 500, 940},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SnapTargetX(tt.startX, 1000, 40, EdgeMargin))
		})
	}
}

func TestSnapTarget(t *testing.T) {
	tests := []struct {
		name string
		from Position
		want Position
	}{
		{"inside the screen keeps y", Position{X: 320, Y: 400}, Position{X: 20, Y: 400}},
		{"below the bottom edge", Position{X: 700, Y: 1880}, Position{X: 940, Y: 1760}},
		{"above the top edge", Position{X: 320, Y: -420}, Position{X: 20, Y: 0}},
		{"exactly at the bottom bound", Position{X: 320, Y: 1760}, Position{X: 20, Y: 1760}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SnapTarget(tt.from, phone, Square(40), EdgeMargin))
		})
	}
}

func TestSnapAnimationPhases(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewSnapAnimation(Position{X: 320, Y: 400}, Position{X: 20, Y: 400}, 1, t0, DefaultSnapConfig())

	phases := a.Phases()
	require.Len(t, phases, 2)
	assert.Equal(t, "wobble", phases[0].Name)
	assert.False(t, phases[0].Positional)
	assert.Equal(t, "travel", phases[1].Name)
	assert.True(t, phases[1].Positional)
	assert.Equal(t, 300*time.Millisecond, a.Duration())
	assert.Equal(t, Position{X: 20, Y: 400}, a.Target())
}

func TestSnapAnimationAdvance(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ms := func(n int) time.Time { return t0.Add(time.Duration(n) * time.Millisecond) }
	start := Position{X: 320, Y: 400}

	t.Run("wobble keeps position", func(t *testing.T) {
		a := NewSnapAnimation(start, Position{X: 20, Y: 400}, 1, t0, DefaultSnapConfig())
		for _, n := range []int{0, 30, 75, 120, 149} {
			fr, done := a.Advance(ms(n))
			assert.False(t, done)
			assert.Equal(t, "wobble", fr.Phase)
			assert.False(t, fr.Positional)
			assert.Equal(t, start, fr.Position)
		}
	})

	t.Run("travel moves towards target and ends on it", func(t *testing.T) {
		a := NewSnapAnimation(start, Position{X: 20, Y: 400}, 1, t0, DefaultSnapConfig())
		fr, done := a.Advance(ms(225))
		assert.False(t, done)
		assert.Equal(t, "travel", fr.Phase)
		assert.True(t, fr.Positional)
		assert.Less(t, fr.Position.X, start.X)
		assert.Greater(t, fr.Position.X, 20)
		assert.Equal(t, start.Y, fr.Position.Y)

		fr, done = a.Advance(ms(300))
		assert.True(t, done)
		assert.True(t, a.Done())
		assert.Equal(t, Position{X: 20, Y: 400}, fr.Position)
		assert.InDelta(t, 0, fr.Transform.Rotation, 1e-9)
		assert.InDelta(t, 1, fr.Transform.Scale, 1e-9)
		assert.InDelta(t, 1, fr.Transform.Alpha, 1e-9)
	})

	t.Run("travel eases y towards an in-bounds target", func(t *testing.T) {
		below := Position{X: 320, Y: 1880}
		target := Position{X: 20, Y: 1760}
		a := NewSnapAnimation(below, target, 1, t0, DefaultSnapConfig())
		fr, _ := a.Advance(ms(225))
		assert.Less(t, fr.Position.Y, below.Y)
		assert.GreaterOrEqual(t, fr.Position.Y, target.Y)

		fr, done := a.Advance(ms(300))
		assert.True(t, done)
		assert.Equal(t, target, fr.Position)
	})

	t.Run("late tick applies the wobble end state first", func(t *testing.T) {
		a := NewSnapAnimation(start, Position{X: 20, Y: 400}, 1, t0, DefaultSnapConfig())
		fr, done := a.Advance(ms(1000))
		assert.True(t, done)
		assert.True(t, fr.Positional)
		assert.Equal(t, 20, fr.Position.X)
	})

	t.Run("base alpha scales the alpha track", func(t *testing.T) {
		a := NewSnapAnimation(start, Position{X: 20, Y: 400}, 0.5, t0, DefaultSnapConfig())
		fr, _ := a.Advance(ms(225))
		assert.Less(t, fr.Transform.Alpha, 0.5)
		assert.GreaterOrEqual(t, fr.Transform.Alpha, 0.4-1e-9)
	})
}

func TestEasingEndpoints(t *testing.T) {
	assert.InDelta(t, 0, bounce(0), 1e-9)
	assert.InDelta(t, 1, bounce(1), 1e-3)
	assert.InDelta(t, 0, anticipateOvershoot(0, 1.5), 1e-9)
	assert.InDelta(t, 1, anticipateOvershoot(1, 1.5), 1e-9)
	assert.Less(t, anticipateOvershoot(0.1, 1.5), 0.0, "anticipates below zero")
	assert.Greater(t, anticipateOvershoot(0.9, 1.5), 1.0, "overshoots past one")
	assert.InDelta(t, 0, accelerateDecelerate(0), 1e-9)
	assert.InDelta(t, 1, accelerateDecelerate(1), 1e-9)
	assert.InDelta(t, 0.5, accelerateDecelerate(0.5), 1e-9)
}

func TestKeyframes(t *testing.T) {
	rotation := keyframes{0, -10, 10, -5, 5, 0}
	assert.InDelta(t, 0, rotation.at(0), 1e-9)
	assert.InDelta(t, -10, rotation.at(0.2), 1e-9)
	assert.InDelta(t, 0, rotation.at(0.3), 1e-9)
	assert.InDelta(t, 0, rotation.at(1), 1e-9)

	scale := keyframes{1, 1.2, 0.8, 1}
	assert.InDelta(t, 1.2, scale.at(1.0/3), 1e-9)
	assert.InDelta(t, 1, scale.at(1), 1e-9)
	assert.Less(t, scale.at(-0.1), 1.0, "extrapolates before the first keyframe")

	assert.InDelta(t, 0, keyframes{}.at(0.5), 1e-9)
	assert.InDelta(t, 3, keyframes{3}.at(0.5), 1e-9)
}
