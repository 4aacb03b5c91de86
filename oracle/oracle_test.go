package oracle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/linefit/layout"
	"github.com/ByLCY/linefit/metrics"
	"github.com/ByLCY/linefit/oracle"
	canvasoracle "github.com/ByLCY/linefit/oracle/canvas"
	"github.com/ByLCY/linefit/oracle/cells"
	sfntoracle "github.com/ByLCY/linefit/oracle/sfnt"
	shaperoracle "github.com/ByLCY/linefit/oracle/shaper"
	"github.com/ByLCY/linefit/profile"
)

func TestOpenBackends(t *testing.T) {
	tests := []struct {
		backend string
		check   func(t *testing.T, o metrics.Oracle)
	}{
		{profile.BackendCanvas, func(t *testing.T, o metrics.Oracle) { assert.IsType(t, &canvasoracle.Face{}, o) }},
		{profile.BackendSFNT, func(t *testing.T, o metrics.Oracle) { assert.IsType(t, &sfntoracle.Face{}, o) }},
		{profile.BackendShaper, func(t *testing.T, o metrics.Oracle) { assert.IsType(t, &shaperoracle.Face{}, o) }},
		{profile.BackendCells, func(t *testing.T, o metrics.Oracle) { assert.IsType(t, &cells.Oracle{}, o) }},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			o, err := oracle.Open(profile.Profile{
				Backend:       tt.backend,
				Size:          12,
				LetterSpacing: "1pt",
				WordSpacing:   "0.5em",
			}, oracle.Options{})
			require.NoError(t, err)
			tt.check(t, o)
			assert.Equal(t, 1.0, o.LetterSpacing())
			assert.Equal(t, 6.0, o.WordSpacing())
			_, ok := o.(layout.LineMetrics)
			assert.True(t, ok, "every backend reports a line height")
		})
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := oracle.Open(profile.Profile{Backend: "gdi"}, oracle.Options{})
	assert.True(t, errors.Is(err, oracle.ErrUnknownBackend), "got %v", err)

	_, err = oracle.Open(profile.Profile{Size: -3}, oracle.Options{})
	assert.True(t, errors.Is(err, profile.ErrInvalid), "got %v", err)
}

func TestOpenFallsBackOnMissingFont(t *testing.T) {
	for _, backend := range []string{profile.BackendSFNT, profile.BackendShaper, profile.BackendCanvas} {
		o, err := oracle.Open(profile.Profile{Backend: backend, Font: "no/such/font.ttf"}, oracle.Options{BaseDir: t.TempDir()})
		require.NoError(t, err, backend)
		assert.Greater(t, o.MeasureText("abc"), 0.0, backend)
	}
}
