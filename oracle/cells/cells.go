// Package cells measures text in terminal cells: one cell for most
// characters, two for East Asian wide characters and emoji. Letter spacing is
// not applied by the oracle, so the metrics table adds it itself.
package cells

import (
	"sync"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/width"

	"github.com/ByLCY/linefit/metrics"
)

// Oracle is a metrics.Oracle reporting widths in cells.
type Oracle struct {
	mu            sync.Mutex
	ambiguousWide bool
	letterSpacing float64
	wordSpacing   float64
}

var _ metrics.Oracle = (*Oracle)(nil)

// Options configures a cell oracle.
type Options struct {
	// AmbiguousWide counts East Asian ambiguous characters as two cells,
	// as CJK terminals do.
	AmbiguousWide bool
	LetterSpacing float64
	WordSpacing   float64
}

func New(opts Options) *Oracle {
	return &Oracle{
		ambiguousWide: opts.AmbiguousWide,
		letterSpacing: opts.LetterSpacing,
		wordSpacing:   opts.WordSpacing,
	}
}

// MeasureText returns the number of cells s occupies, per grapheme cluster.
func (o *Oracle) MeasureText(s string) float64 {
	if isPlainASCII(s) {
		return float64(len(s))
	}
	o.mu.Lock()
	wide := o.ambiguousWide
	o.mu.Unlock()

	w := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, cw, newState := uniseg.FirstGraphemeClusterInString(s, state)
		if wide && cw == 1 {
			r, _ := utf8.DecodeRuneInString(cluster)
			if width.LookupRune(r).Kind() == width.EastAsianAmbiguous {
				cw = 2
			}
		}
		w += cw
		s = rest
		state = newState
	}
	return float64(w)
}

func (o *Oracle) LetterSpacing() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.letterSpacing
}

func (o *Oracle) SetLetterSpacing(v float64) {
	o.mu.Lock()
	o.letterSpacing = v
	o.mu.Unlock()
}

func (o *Oracle) WordSpacing() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.wordSpacing
}

// LineHeight is one row.
func (o *Oracle) LineHeight() float64 { return 1 }

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if b := s[i]; b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}
