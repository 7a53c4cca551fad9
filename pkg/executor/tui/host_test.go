package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/vocab/pkg/overlay"
)

func TestTermHost_SingleSurface(t *testing.T) {
	h := newTermHost()
	h.resize(100, 90)
	assert.Equal(t, overlay.Size{Width: 1000, Height: 1800}, h.ScreenSize())

	first, err := h.CreateSurface(overlay.Position{X: 20, Y: 100}, overlay.Square(40))
	require.NoError(t, err)

	again, err := h.CreateSurface(overlay.Position{X: 0, Y: 0}, overlay.Square(40))
	assert.ErrorIs(t, err, overlay.ErrAlreadyAttached)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, h.count())

	require.NoError(t, h.DestroySurface(first))
	assert.ErrorIs(t, h.DestroySurface(first), overlay.ErrSurfaceGone)
	assert.ErrorIs(t, h.UpdateSurfacePosition(first, overlay.Position{}), overlay.ErrSurfaceGone)
	assert.ErrorIs(t, h.ApplyTransform(first, overlay.Identity(1)), overlay.ErrSurfaceGone)
}

func TestTermHost_MeasureAfterFirstFrame(t *testing.T) {
	h := newTermHost()
	h.resize(100, 90)
	handle, err := h.CreateSurface(overlay.Position{X: 20, Y: 100}, overlay.Square(45))
	require.NoError(t, err)

	_, err = h.MeasureSurface(handle)
	assert.ErrorIs(t, err, overlay.ErrNotMeasured)

	h.snapshot()

	size, err := h.MeasureSurface(handle)
	require.NoError(t, err)
	// 45 units need 5 columns and 3 rows
	assert.Equal(t, overlay.Size{Width: 50, Height: 60}, size)
}

func TestTermHost_Hit(t *testing.T) {
	h := newTermHost()
	_, err := h.CreateSurface(overlay.Position{X: 20, Y: 100}, overlay.Square(40))
	require.NoError(t, err)

	x, y := cellCenter(3, 5)
	assert.True(t, h.hit(x, y))
	x, y = cellCenter(6, 5)
	assert.False(t, h.hit(x, y))
	x, y = cellCenter(3, 7)
	assert.False(t, h.hit(x, y))
}

func TestTermHost_DropAll(t *testing.T) {
	h := newTermHost()
	_, err := h.CreateSurface(overlay.Position{}, overlay.Square(40))
	require.NoError(t, err)
	h.RenderDeleteZone(overlay.DeleteZoneAppearance{Visible: true})

	h.dropAll()

	surfaces, zone, _ := h.snapshot()
	assert.Empty(t, surfaces)
	assert.False(t, zone.Visible)
}

func TestSpanCells(t *testing.T) {
	assert.Equal(t, 1, spanCells(0, colUnits))
	assert.Equal(t, 4, spanCells(40, colUnits))
	assert.Equal(t, 5, spanCells(41, colUnits))
	assert.Equal(t, 2, spanCells(40, rowUnits))
}
