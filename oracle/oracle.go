// Package oracle opens the measurement backend a profile asks for.
package oracle

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ByLCY/linefit/fonts"
	"github.com/ByLCY/linefit/metrics"
	canvasoracle "github.com/ByLCY/linefit/oracle/canvas"
	"github.com/ByLCY/linefit/oracle/cells"
	sfntoracle "github.com/ByLCY/linefit/oracle/sfnt"
	shaperoracle "github.com/ByLCY/linefit/oracle/shaper"
	"github.com/ByLCY/linefit/profile"
)

// ErrUnknownBackend is returned for a profile naming an unsupported backend.
var ErrUnknownBackend = errors.New("oracle: unknown backend")

// Options configures Open.
type Options struct {
	// BaseDir resolves relative font paths. Empty allows only built-in fonts
	// and absolute paths.
	BaseDir string
	// Canvas shares a font family cache between canvas oracles. Nil creates
	// a fresh loader.
	Canvas *canvasoracle.Loader
}

// Open validates p and returns the oracle for its backend, configured with
// the profile's font, size and spacing.
func Open(p profile.Profile, opts Options) (metrics.Oracle, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	letter, word, err := p.Spacing()
	if err != nil {
		return nil, err
	}

	switch p.Backend {
	case profile.BackendCanvas:
		loader := opts.Canvas
		if loader == nil {
			loader = canvasoracle.NewLoader(opts.BaseDir)
		}
		f, err := loader.Face(p.Font, p.Style, p.Size)
		if err != nil {
			return nil, fmt.Errorf("打开 canvas 字体 %s 失败: %w", p.Font, err)
		}
		return f.WithSpacing(letter, word), nil
	case profile.BackendSFNT:
		f, err := sfntoracle.Open(fontBytes(p.Font, opts.BaseDir), p.Size)
		if err != nil {
			return nil, err
		}
		return f.WithSpacing(letter, word), nil
	case profile.BackendShaper:
		f, err := shaperoracle.Open(fontBytes(p.Font, opts.BaseDir), p.Size)
		if err != nil {
			return nil, err
		}
		return f.WithSpacing(letter, word), nil
	case profile.BackendCells:
		return cells.New(cells.Options{
			AmbiguousWide: p.AmbiguousWide,
			LetterSpacing: letter,
			WordSpacing:   word,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, p.Backend)
	}
}

// fontBytes loads src, falling back to the built-in font with a warning.
func fontBytes(src, baseDir string) []byte {
	data, err := fonts.Load(src, baseDir)
	if err == nil {
		return data
	}
	slog.Warn("字体加载失败，使用内置字体", "src", src, "fallback", fonts.Fallback, "err", err)
	data, _ = fonts.Builtin(fonts.Fallback)
	return data
}
