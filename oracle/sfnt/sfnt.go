// Package sfntoracle measures text with golang.org/x/image/font/opentype.
// Advances include the font's kerning table and the letter spacing is applied
// natively, once per rune.
package sfntoracle

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/linefit/layout"
	"github.com/ByLCY/linefit/metrics"
)

// Face is a metrics.Oracle over an OpenType face rendered at 72 DPI, so one
// pixel is one point.
type Face struct {
	mu            sync.Mutex
	face          font.Face
	letterSpacing float64
	wordSpacing   float64
}

var (
	_ metrics.Oracle     = (*Face)(nil)
	_ layout.LineMetrics = (*Face)(nil)
)

// Open parses TTF/OTF data and creates a face at sizePt points.
func Open(data []byte, sizePt float64) (*Face, error) {
	if sizePt <= 0 {
		return nil, fmt.Errorf("sfnt: 非法字号 %g", sizePt)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("sfnt: 解析字体失败: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("sfnt: 创建字体面失败: %w", err)
	}
	return &Face{face: face}, nil
}

// WithSpacing sets the letter and word spacing in points.
func (f *Face) WithSpacing(letter, word float64) *Face {
	f.mu.Lock()
	f.letterSpacing, f.wordSpacing = letter, word
	f.mu.Unlock()
	return f
}

// MeasureText returns the kerned advance of s plus letter spacing per rune.
func (f *Face) MeasureText(s string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := toFloat(font.MeasureString(f.face, s))
	if f.letterSpacing != 0 {
		w += f.letterSpacing * float64(utf8.RuneCountInString(s))
	}
	return w
}

func (f *Face) LetterSpacing() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.letterSpacing
}

func (f *Face) SetLetterSpacing(v float64) {
	f.mu.Lock()
	f.letterSpacing = v
	f.mu.Unlock()
}

func (f *Face) WordSpacing() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wordSpacing
}

// LineHeight returns the recommended line height in points.
func (f *Face) LineHeight() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return toFloat(f.face.Metrics().Height)
}

// Close releases the underlying face.
func (f *Face) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Close()
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
