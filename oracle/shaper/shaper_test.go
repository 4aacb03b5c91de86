package shaperoracle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/linefit/metrics"
	shaperoracle "github.com/ByLCY/linefit/oracle/shaper"
	"github.com/ByLCY/linefit/wrap"
)

func TestShapedWidths(t *testing.T) {
	f, err := shaperoracle.Open(goregular.TTF, 12)
	require.NoError(t, err)

	assert.Equal(t, 0.0, f.MeasureText(""))
	assert.Greater(t, f.MeasureText("W"), f.MeasureText("i"))
	assert.Greater(t, f.MeasureText("hello world"), f.MeasureText("hello"))
	lh := f.LineHeight()
	assert.True(t, lh >= 12 && lh <= 20, "line height %g", lh)
}

func TestNativeLetterSpacing(t *testing.T) {
	f, err := shaperoracle.Open(goregular.TTF, 12)
	require.NoError(t, err)
	base := f.MeasureText("abc")

	f.WithSpacing(1, 0)
	assert.InDelta(t, base+3, f.MeasureText("abc"), 1e-9)

	tbl, err := metrics.Build(f)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tbl.FauxSpacing())
	assert.Equal(t, 1.0, f.LetterSpacing())
}

func TestBreaksWithShaper(t *testing.T) {
	f, err := shaperoracle.Open(goregular.TTF, 12)
	require.NoError(t, err)
	tbl, err := metrics.Build(f)
	require.NoError(t, err)
	b := wrap.New(tbl)

	text := "The quick brown fox jumps over the lazy dog."
	lines := b.Split(text, 80, 0)
	require.Greater(t, len(lines), 1)
	for _, ln := range lines {
		assert.LessOrEqual(t, tbl.TextWidth(ln), 80.0, ln)
	}
	assert.Len(t, b.Split(text, 1e9, 0), 1)
}

func TestOpenErrors(t *testing.T) {
	_, err := shaperoracle.Open([]byte{1, 2, 3}, 12)
	assert.Error(t, err)
	_, err = shaperoracle.Open(goregular.TTF, -1)
	assert.Error(t, err)
}
