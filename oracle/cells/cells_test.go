package cells_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/linefit/metrics"
	"github.com/ByLCY/linefit/oracle/cells"
	"github.com/ByLCY/linefit/wrap"
)

func TestCellWidths(t *testing.T) {
	o := cells.New(cells.Options{})
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"ab", 2},
		{"中", 2},
		{"中文", 4},
		{"é", 1},
		{"e\u0301", 1},
		{"±", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, o.MeasureText(tt.in), "%q", tt.in)
	}

	wide := cells.New(cells.Options{AmbiguousWide: true})
	assert.Equal(t, 2.0, wide.MeasureText("±"))
	assert.Equal(t, 2.0, wide.MeasureText("ab"))
}

func TestLetterSpacingIsFaux(t *testing.T) {
	o := cells.New(cells.Options{LetterSpacing: 1, WordSpacing: 0})
	tbl, err := metrics.Build(o)
	require.NoError(t, err)
	assert.Equal(t, 1.0, tbl.FauxSpacing())
	assert.Equal(t, 2.0, tbl.Width('a'))
	assert.Equal(t, 1.0, o.LetterSpacing())
}

func TestBreakInCells(t *testing.T) {
	tbl, err := metrics.Build(cells.New(cells.Options{}))
	require.NoError(t, err)
	b := wrap.New(tbl)

	got := b.Split("The quick brown fox jumps over the lazy dog.", 10, 0)
	assert.Equal(t, []string{"The quick", "brown fox", "jumps over", "the lazy", "dog."}, got)

	assert.Equal(t, []string{"中文", "字符"}, b.Split("中文 字符", 4, 0))
	assert.Equal(t, []string{"中文字符"}, b.Split("中文字符", 4, 0))
}
