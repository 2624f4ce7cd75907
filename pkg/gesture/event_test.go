package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventKindRoundTrip(t *testing.T) {
	for _, k := range []EventKind{PointerDown, PointerMove, PointerUp, Wheel, Tap} {
		got, err := ParseEventKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseEventKind("press")
	assert.Error(t, err)
}

func TestEffectString(t *testing.T) {
	assert.Equal(t, "rotate(1.000, -2.000)", Effect{Kind: Rotate, DX: 1, DY: -2}.String())
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
}

func TestToDevice(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogicalDPI = 192
	assert.Equal(t, Point{X: 20, Y: 40}, cfg.ToDevice(Point{X: 10, Y: 20}))
}
