// Package canvasoracle measures text with github.com/tdewolff/canvas font faces.
//
// canvas has no letter-spacing control of its own, so the metrics table
// detects the missing support and adds the configured spacing itself.
package canvasoracle

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/linefit/fonts"
	"github.com/ByLCY/linefit/layout"
	"github.com/ByLCY/linefit/metrics"
)

// Loader resolves font sources to canvas font families and caches them.
type Loader struct {
	baseDir string

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily *canvas.FontFamily
}

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// NewLoader creates a loader rooted at baseDir for resolving font paths.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		baseDir:      baseDir,
		fontFamilies: map[string]*fontFamilyEntry{},
	}
}

// Face opens src at sizePt points. A font that fails to load is replaced by
// the built-in fallback font and a warning is logged.
func (l *Loader) Face(src, style string, sizePt float64) (*Face, error) {
	if sizePt <= 0 {
		return nil, fmt.Errorf("canvas: 非法字号 %g", sizePt)
	}
	family, fontStyle, err := l.ensureFontFamily(src, style)
	if err != nil {
		return nil, err
	}
	return New(family.Face(sizePt, canvas.Black, fontStyle, canvas.FontNormal)), nil
}

func (l *Loader) ensureFontFamily(src, style string) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(src, style)
	l.fontMu.Lock()
	defer l.fontMu.Unlock()

	if entry, ok := l.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	fontStyle := parseFontStyle(style)
	family := canvas.NewFontFamily(src)
	if err := l.loadFontIntoFamily(family, src, fontStyle); err != nil {
		fallback, fbStyle, fbErr := l.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		slog.Warn("canvas: 字体加载失败，使用内置字体", "src", src, "fallback", fonts.Fallback, "err", err)
		l.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: fbStyle}
		return fallback, fbStyle, nil
	}

	l.fontFamilies[key] = &fontFamilyEntry{family: family, style: fontStyle}
	return family, fontStyle, nil
}

func (l *Loader) loadFontIntoFamily(family *canvas.FontFamily, src string, style canvas.FontStyle) error {
	data, err := fonts.Load(src, l.baseDir)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

func (l *Loader) fallback() (*canvas.FontFamily, canvas.FontStyle, error) {
	if l.fallbackFamily != nil {
		return l.fallbackFamily, canvas.FontRegular, nil
	}
	data, err := fonts.Builtin(fonts.Fallback)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	family := canvas.NewFontFamily("linefit-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, canvas.FontRegular, err
	}
	l.fallbackFamily = family
	return family, canvas.FontRegular, nil
}

// Face is a metrics.Oracle over a canvas font face. Widths are in points.
type Face struct {
	mu            sync.Mutex
	face          *canvas.FontFace
	letterSpacing float64
	wordSpacing   float64
}

var (
	_ metrics.Oracle     = (*Face)(nil)
	_ layout.LineMetrics = (*Face)(nil)
)

// New wraps an existing canvas font face.
func New(face *canvas.FontFace) *Face { return &Face{face: face} }

// WithSpacing sets the letter and word spacing reported to the metrics table.
func (f *Face) WithSpacing(letter, word float64) *Face {
	f.mu.Lock()
	f.letterSpacing, f.wordSpacing = letter, word
	f.mu.Unlock()
	return f
}

// MeasureText returns the advance width of s in points.
func (f *Face) MeasureText(s string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	// canvas 返回 mm
	return f.face.TextWidth(s) * layout.MmToPt
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

// LineHeight returns the font's natural line height in points.
func (f *Face) LineHeight() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Metrics().LineHeight * layout.MmToPt
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(src, style string) string {
	return fmt.Sprintf("%s|%s", src, strings.ToLower(style))
}
