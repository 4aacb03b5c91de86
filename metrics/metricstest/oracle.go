// Package metricstest provides a deterministic synthetic Oracle for tests.
package metricstest

import (
	"strings"
	"sync"
	"unicode"
)

// Oracle is a fake measurement backend with fixed per-rune widths and a
// single kerning rule: 'T', 'V', 'W' or 'Y' followed by a lowercase ASCII
// letter is tightened by 1. All widths are multiples of 0.25 so sums stay exact.
type Oracle struct {
	// Native 为 true 时 MeasureText 会自行累加字距（模拟原生支持 letterSpacing 的宿主）。
	Native bool

	mu            sync.Mutex
	letterSpacing float64
	wordSpacing   float64
	calls         int
	measured      map[string]int
}

// New returns an oracle configured with the given spacing values.
func New(letterSpacing, wordSpacing float64) *Oracle {
	return &Oracle{
		letterSpacing: letterSpacing,
		wordSpacing:   wordSpacing,
		measured:      map[string]int{},
	}
}

// RuneWidth is the isolated advance of r, before kerning and spacing.
func RuneWidth(r rune) float64 {
	switch {
	case r == ' ':
		return 3.75
	case strings.ContainsRune(".,:;'!|", r):
		return 3.25
	case r == '-':
		return 4.25
	case r == 'i' || r == 'l':
		return 3.25
	case r == 'm' || r == 'w':
		return 11.75
	case r == 'M' || r == 'W':
		return 13.75
	case r < unicode.MaxASCII && unicode.IsUpper(r):
		return 9.5
	case r <= unicode.MaxASCII:
		return 7.25
	case r > 0xFFFF:
		return 16
	default:
		return 8
	}
}

// Kern returns the adjustment applied between a and b.
func Kern(a, b rune) float64 {
	if strings.ContainsRune("TVWY", a) && b >= 'a' && b <= 'z' {
		return -1
	}
	return 0
}

func (o *Oracle) MeasureText(s string) float64 {
	o.mu.Lock()
	o.calls++
	o.measured[s]++
	ls := o.letterSpacing
	o.mu.Unlock()

	var w float64
	prev := rune(-1)
	n := 0
	for _, r := range s {
		w += RuneWidth(r)
		if prev >= 0 {
			w += Kern(prev, r)
		}
		prev = r
		n++
	}
	if o.Native {
		w += ls * float64(n)
	}
	return w
}

func (o *Oracle) LetterSpacing() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.letterSpacing
}

func (o *Oracle) SetLetterSpacing(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.letterSpacing = v
}

func (o *Oracle) WordSpacing() float64 { return o.wordSpacing }

// Calls 返回 MeasureText 的累计调用次数。
func (o *Oracle) Calls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

// Measured 返回字符串 s 被测量的次数。
func (o *Oracle) Measured(s string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.measured[s]
}
