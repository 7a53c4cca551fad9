package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionCenter(t *testing.T) {
	c := Position{X: 20, Y: 100}.Center(Square(40))
	assert.Equal(t, Point{X: 40, Y: 120}, c)
}

func TestPositionOffset(t *testing.T) {
	p := Position{X: 20, Y: 100}.Offset(460.4, 1579.6)
	assert.Equal(t, Position{X: 480, Y: 1680}, p)
}

func TestPositionClamp(t *testing.T) {
	screen := Size{Width: 1000, Height: 1800}

	tests := []struct {
		name string
		in   Position
		want Position
	}{
		{"inside", Position{X: 20, Y: 100}, Position{X: 20, Y: 100}},
		{"past right and bottom", Position{X: 2000, Y: 5000}, Position{X: 960, Y: 1760}},
		{"negative", Position{X: -30, Y: -1}, Position{X: 0, Y: 0}},
		{"exact bounds", Position{X: 960, Y: 1760}, Position{X: 960, Y: 1760}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp(screen, Square(40)))
		})
	}

	t.Run("unknown screen leaves position alone", func(t *testing.T) {
		p := Position{X: 5000, Y: 5000}
		assert.Equal(t, p, p.Clamp(Size{}, Square(40)))
	})

	t.Run("surface larger than screen pins to origin", func(t *testing.T) {
		assert.Equal(t, Position{}, Position{X: 10, Y: 10}.Clamp(Size{Width: 30, Height: 30}, Square(40)))
	})
}

func TestClampOverlaySize(t *testing.T) {
	assert.Equal(t, DefaultOverlaySize, ClampOverlaySize(0))
	assert.Equal(t, MinOverlaySize, ClampOverlaySize(10))
	assert.Equal(t, MaxOverlaySize, ClampOverlaySize(200))
	assert.Equal(t, 55, ClampOverlaySize(55))

	assert.True(t, ValidOverlaySize(30))
	assert.True(t, ValidOverlaySize(80))
	assert.False(t, ValidOverlaySize(29))
	assert.False(t, ValidOverlaySize(81))
}
