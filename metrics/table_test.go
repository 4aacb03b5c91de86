package metrics_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/linefit/metrics"
	"github.com/ByLCY/linefit/metrics/metricstest"
)

type nanOracle struct{ metricstest.Oracle }

func (*nanOracle) MeasureText(string) float64 { return math.NaN() }

func TestBuildRejectsNilOracle(t *testing.T) {
	_, err := metrics.Build(nil)
	require.ErrorIs(t, err, metrics.ErrNilOracle)
}

func TestBuildRejectsNonFiniteProbe(t *testing.T) {
	_, err := metrics.Build(&nanOracle{})
	require.Error(t, err)
}

func TestFauxSpacingWhenNotNative(t *testing.T) {
	o := metricstest.New(0.25, 0)
	tbl, err := metrics.Build(o)
	require.NoError(t, err)

	assert.Equal(t, 0.25, tbl.FauxSpacing())
	assert.Equal(t, 9.75, tbl.Width('A'))
	assert.Equal(t, 0.25, o.LetterSpacing(), "probe must restore letter-spacing")
}

func TestNoFauxSpacingWhenNative(t *testing.T) {
	o := metricstest.New(0.25, 0)
	o.Native = true
	tbl, err := metrics.Build(o)
	require.NoError(t, err)

	assert.Zero(t, tbl.FauxSpacing())
	// 原生字距已包含在测量结果里
	assert.Equal(t, 9.75, tbl.Width('A'))
	assert.Equal(t, 0.25, o.LetterSpacing())
}

func TestWordSpacingOverridesSpace(t *testing.T) {
	tbl, err := metrics.Build(metricstest.New(0.25, 12))
	require.NoError(t, err)
	assert.Equal(t, 12.0, tbl.Width(' '))

	tbl, err = metrics.Build(metricstest.New(0.25, -3))
	require.NoError(t, err)
	assert.Equal(t, 4.0, tbl.Width(' '), "non-positive word-spacing is ignored")
}

func TestPairWidths(t *testing.T) {
	tbl, err := metrics.Build(metricstest.New(0.25, 0))
	require.NoError(t, err)

	// "Th" = 9.5 + 7.25 - 1；减去 h 的单字宽度 (7.5) 再加 faux
	w, ok := tbl.Pair('T', 'h')
	require.True(t, ok)
	assert.Equal(t, 8.5, w)

	// 无字偶调整时，字偶宽度等于首字符的原始测量值
	w, ok = tbl.Pair('A', 'b')
	require.True(t, ok)
	assert.Equal(t, 9.5, w)

	_, ok = tbl.Pair('a', 'b')
	assert.False(t, ok, "lowercase-first pairs are not cached")
	_, ok = tbl.Pair('T', 'é')
	assert.False(t, ok, "pairs outside the alphabet are not cached")
	_, ok = tbl.Pair('T', -1)
	assert.False(t, ok)

	assert.Equal(t, 8.5, tbl.Advance('T', 'h'))
	assert.Equal(t, tbl.Width('a'), tbl.Advance('a', 'b'))
}

func TestLazyWidthIsMemoized(t *testing.T) {
	o := metricstest.New(0.25, 0)
	tbl, err := metrics.Build(o)
	require.NoError(t, err)

	before := tbl.Len()
	assert.Equal(t, metrics.DefaultAlphabet.Len(), before)

	assert.Equal(t, 8.25, tbl.Width('é'))
	assert.Equal(t, 16.25, tbl.Width('🌟'))
	assert.Equal(t, 8.25, tbl.Width('é'))
	assert.Equal(t, 1, o.Measured("é"))
	assert.Equal(t, 1, o.Measured("🌟"))
	assert.Equal(t, before+2, tbl.Len())
}

func TestCustomAlphabet(t *testing.T) {
	o := metricstest.New(0, 0)
	tbl, err := metrics.BuildWithOptions(o, metrics.Options{
		Alphabet: &metrics.Alphabet{Upper: "ÅT", Lower: "åh"},
	})
	require.NoError(t, err)

	_, ok := tbl.Pair('Å', 'å')
	assert.True(t, ok)
	w, ok := tbl.Pair('T', 'h')
	require.True(t, ok)
	assert.Equal(t, 8.5, w)
	_, ok = tbl.Pair('A', 'h')
	assert.False(t, ok)
	assert.Equal(t, 4, tbl.Len())
}

func TestTextWidthMatchesAdvance(t *testing.T) {
	tbl, err := metrics.Build(metricstest.New(0.25, 0))
	require.NoError(t, err)

	// T(kerned with h) + h + e
	assert.Equal(t, 8.5+7.5+7.5, tbl.TextWidth("The"))
	assert.Zero(t, tbl.TextWidth(""))
	assert.Equal(t, tbl.Width(0xFFFD)+tbl.Width('a'), tbl.TextWidth("\xffa"))
}

func TestConcurrentLookups(t *testing.T) {
	o := metricstest.New(0.25, 0)
	tbl, err := metrics.Build(o)
	require.NoError(t, err)

	text := []rune("héllo wörld ✨ 𠀀 ñ ü")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, r := range text {
				tbl.Width(r)
			}
		}()
	}
	wg.Wait()

	for _, r := range text {
		assert.Equal(t, metricstest.RuneWidth(r)+0.25, tbl.Width(r), "rune %q", r)
	}
}
