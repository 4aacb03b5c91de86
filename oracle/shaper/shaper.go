// Package shaperoracle measures text by shaping it with the HarfBuzz port in
// github.com/go-text/typesetting. Letter spacing is applied natively.
package shaperoracle

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/linefit/layout"
	"github.com/ByLCY/linefit/metrics"
)

// Face is a metrics.Oracle that shapes each measured string as a single
// left-to-right run. Widths are in points.
type Face struct {
	mu            sync.Mutex
	shaper        shaping.HarfbuzzShaper
	face          *font.Face
	sizePt        float64
	size          fixed.Int26_6
	lang          language.Language
	letterSpacing float64
	wordSpacing   float64
}

var (
	_ metrics.Oracle     = (*Face)(nil)
	_ layout.LineMetrics = (*Face)(nil)
)

// Open parses font data (the first face of a collection) at sizePt points.
func Open(data []byte, sizePt float64) (*Face, error) {
	if sizePt <= 0 || math.IsInf(sizePt, 0) || math.IsNaN(sizePt) {
		return nil, fmt.Errorf("shaper: 非法字号 %g", sizePt)
	}
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("shaper: 解析字体失败: %w", err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("shaper: 字体文件不含字形")
	}
	return &Face{
		face:   faces[0],
		sizePt: sizePt,
		size:   fixed.Int26_6(math.Round(sizePt * 64)),
		lang:   language.NewLanguage("en"),
	}, nil
}

// WithSpacing sets the letter and word spacing in points.
func (f *Face) WithSpacing(letter, word float64) *Face {
	f.mu.Lock()
	f.letterSpacing, f.wordSpacing = letter, word
	f.mu.Unlock()
	return f
}

// WithLanguage sets the BCP 47 language used for shaping.
func (f *Face) WithLanguage(tag string) *Face {
	f.mu.Lock()
	f.lang = language.NewLanguage(tag)
	f.mu.Unlock()
	return f
}

// MeasureText shapes s and returns its advance plus letter spacing per rune.
func (f *Face) MeasureText(s string) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.face,
		Size:      f.size,
		Script:    scriptOf(runes),
		Language:  f.lang,
	})
	w := float64(out.Advance) / 64
	if f.letterSpacing != 0 {
		w += f.letterSpacing * float64(len(runes))
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

// LineHeight returns ascender - descender + line gap scaled to the face size.
func (f *Face) LineHeight() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ext, ok := f.face.FontHExtents()
	upem := float64(f.face.Upem())
	if !ok || upem == 0 {
		return f.sizePt
	}
	return float64(ext.Ascender-ext.Descender+ext.LineGap) * f.sizePt / upem
}

// scriptOf picks the script of the first rune that has a specific one.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		switch s := language.LookupScript(r); s {
		case language.Common, language.Inherited:
			continue
		default:
			return s
		}
	}
	return language.Latin
}
