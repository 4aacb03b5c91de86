package metrics

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"unicode/utf8"
)

// ErrNilOracle is returned when Build is called without a measurement backend.
var ErrNilOracle = errors.New("metrics: 缺少测量后端 Oracle")

const (
	defaultProbeGlyph   = "W"
	defaultProbeSpacing = 101.0
)

// Oracle measures rendered text width for one fixed font/spacing configuration.
// MeasureText must be deterministic for a given configuration.
type Oracle interface {
	MeasureText(s string) float64
	LetterSpacing() float64
	SetLetterSpacing(v float64)
	WordSpacing() float64
}

// Options configures Build.
type Options struct {
	Alphabet     *Alphabet // nil 时使用 DefaultAlphabet
	ProbeGlyph   string    // 探测原生字距支持所用的字形，默认 "W"
	ProbeSpacing float64   // 探测时临时设置的字距，默认 101
}

// Table caches single-character and kerning-pair widths for one configuration.
type Table struct {
	oracle Oracle
	faux   float64

	// ascii 在 Build 之后只读
	ascii    [utf8.RuneSelf]float64
	asciiSet [utf8.RuneSelf]bool

	// 大写首字母的字偶宽度；ASCII 行用定长数组，其余进 map
	rows  [utf8.RuneSelf]*pairRow
	pairs map[[2]rune]float64

	mu   sync.RWMutex
	lazy map[rune]float64
}

type pairRow struct {
	w  [utf8.RuneSelf]float64
	ok [utf8.RuneSelf]bool
}

// Build measures the default alphabet against o.
func Build(o Oracle) (*Table, error) { return BuildWithOptions(o, Options{}) }

// BuildWithOptions 根据给定测量后端构建宽度表：
// 先探测原生字距支持，再测量基础字符与大写字偶。
func BuildWithOptions(o Oracle, opts Options) (*Table, error) {
	if o == nil {
		return nil, ErrNilOracle
	}
	alpha := DefaultAlphabet
	if opts.Alphabet != nil {
		alpha = *opts.Alphabet
	}
	if opts.ProbeGlyph == "" {
		opts.ProbeGlyph = defaultProbeGlyph
	}
	if opts.ProbeSpacing == 0 {
		opts.ProbeSpacing = defaultProbeSpacing
	}

	native, err := supportsLetterSpacing(o, opts.ProbeGlyph, opts.ProbeSpacing)
	if err != nil {
		return nil, err
	}
	t := &Table{
		oracle: o,
		pairs:  map[[2]rune]float64{},
		lazy:   map[rune]float64{},
	}
	if !native {
		t.faux = o.LetterSpacing()
	}
	slog.Debug("metrics: letter-spacing probe", "native", native, "faux", t.faux)

	chars := alpha.Chars()
	for _, r := range chars {
		t.store(r, o.MeasureText(string(r))+t.faux)
	}
	if ws := o.WordSpacing(); ws > 0 {
		t.store(' ', ws)
	}

	for _, u := range alpha.Upper {
		for _, c := range chars {
			w := o.MeasureText(string([]rune{u, c})) - t.Width(c) + t.faux
			t.storePair(u, c, w)
		}
	}
	return t, nil
}

func supportsLetterSpacing(o Oracle, glyph string, spacing float64) (bool, error) {
	base := o.MeasureText(glyph)
	prev := o.LetterSpacing()
	o.SetLetterSpacing(spacing)
	probed := o.MeasureText(glyph)
	o.SetLetterSpacing(prev)
	if !isFinite(base) || !isFinite(probed) {
		return false, fmt.Errorf("metrics: 测量 %q 返回非法宽度 (%g, %g)", glyph, base, probed)
	}
	return probed > base, nil
}

func (t *Table) store(r rune, w float64) {
	if r >= 0 && r < utf8.RuneSelf {
		t.ascii[r] = w
		t.asciiSet[r] = true
		return
	}
	t.lazy[r] = w
}

func (t *Table) storePair(a, b rune, w float64) {
	if a >= 0 && a < utf8.RuneSelf && b >= 0 && b < utf8.RuneSelf {
		row := t.rows[a]
		if row == nil {
			row = &pairRow{}
			t.rows[a] = row
		}
		row.w[b] = w
		row.ok[b] = true
		return
	}
	t.pairs[[2]rune{a, b}] = w
}

// FauxSpacing returns the letter-spacing added manually to every measurement,
// zero when the oracle honors letter-spacing itself.
func (t *Table) FauxSpacing() float64 { return t.faux }

// Width 返回单个码点的宽度；不在表中的码点会被测量并缓存（每个码点只写一次）。
func (t *Table) Width(r rune) float64 {
	if r >= 0 && r < utf8.RuneSelf && t.asciiSet[r] {
		return t.ascii[r]
	}
	t.mu.RLock()
	w, ok := t.lazy[r]
	t.mu.RUnlock()
	if ok {
		return w
	}

	w = t.oracle.MeasureText(string(r)) + t.faux

	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.lazy[r]; ok {
		return prev
	}
	t.lazy[r] = w
	return w
}

// Pair returns the kerning-adjusted width of a when followed by b.
// Only pairs whose first codepoint belongs to the alphabet's Upper set exist.
func (t *Table) Pair(a, b rune) (float64, bool) {
	if a >= 0 && a < utf8.RuneSelf {
		row := t.rows[a]
		if row == nil {
			return 0, false
		}
		if b >= 0 && b < utf8.RuneSelf {
			return row.w[b], row.ok[b]
		}
	}
	if len(t.pairs) == 0 {
		return 0, false
	}
	w, ok := t.pairs[[2]rune{a, b}]
	return w, ok
}

// Advance is the width contribution of r when next follows it.
func (t *Table) Advance(r, next rune) float64 {
	if w, ok := t.Pair(r, next); ok {
		return w
	}
	return t.Width(r)
}

// TextWidth 按与换行扫描相同的规则累计字符串宽度。
func (t *Table) TextWidth(s string) float64 {
	var total float64
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		next := rune(-1)
		if i+size < len(s) {
			next, _ = utf8.DecodeRuneInString(s[i+size:])
		}
		total += t.Advance(r, next)
		i += size
	}
	return total
}

// Len 返回当前已缓存的单字符宽度数量。
func (t *Table) Len() int {
	n := 0
	for _, ok := range t.asciiSet {
		if ok {
			n++
		}
	}
	t.mu.RLock()
	n += len(t.lazy)
	t.mu.RUnlock()
	return n
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
