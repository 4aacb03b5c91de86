// Package profile describes how a measurement oracle should be configured:
// which backend, which font at which size, and the spacing knobs the
// breaker's metrics table honors. Profiles come from the small block DSL,
// TOML or YAML.
package profile

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/linefit/layout"
)

// Backend names understood by the oracle factory.
const (
	BackendCanvas = "canvas"
	BackendSFNT   = "sfnt"
	BackendShaper = "shaper"
	BackendCells  = "cells"
)

// Defaults applied by Normalize.
const (
	DefaultBackend = BackendCanvas
	DefaultFont    = "builtin:goregular"
	DefaultStyle   = "regular"
	DefaultSize    = 12.0
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("profile: invalid")

// Profile is one named measurement configuration. Size is in points;
// spacing and line-height keep their written form (e.g. "0.15px", "1.2x")
// and are resolved against Size.
type Profile struct {
	Name          string  `toml:"name" yaml:"name" json:"name"`
	Backend       string  `toml:"backend" yaml:"backend" json:"backend"`
	Font          string  `toml:"font" yaml:"font" json:"font,omitempty"`
	Style         string  `toml:"style" yaml:"style" json:"style,omitempty"`
	Size          float64 `toml:"size" yaml:"size" json:"size"`
	LetterSpacing string  `toml:"letter-spacing" yaml:"letter-spacing" json:"letterSpacing,omitempty"`
	WordSpacing   string  `toml:"word-spacing" yaml:"word-spacing" json:"wordSpacing,omitempty"`
	LineHeight    string  `toml:"line-height" yaml:"line-height" json:"lineHeight,omitempty"`
	AmbiguousWide bool    `toml:"ambiguous-wide" yaml:"ambiguous-wide" json:"ambiguousWide,omitempty"`
}

// Normalize fills unset fields with defaults.
func (p Profile) Normalize() Profile {
	p.Backend = strings.ToLower(strings.TrimSpace(p.Backend))
	if p.Backend == "" {
		p.Backend = DefaultBackend
	}
	if p.Backend != BackendCells && strings.TrimSpace(p.Font) == "" {
		p.Font = DefaultFont
	}
	if strings.TrimSpace(p.Style) == "" {
		p.Style = DefaultStyle
	}
	if p.Size == 0 {
		p.Size = DefaultSize
	}
	return p
}

// Validate checks that the size is usable and that every length parses.
func (p Profile) Validate() error {
	if math.IsNaN(p.Size) || math.IsInf(p.Size, 0) || p.Size <= 0 {
		return fmt.Errorf("%w: %s 字号 %g 非法", ErrInvalid, p.label(), p.Size)
	}
	if _, _, err := p.Spacing(); err != nil {
		return err
	}
	if _, err := p.LineHeightPt(); err != nil {
		return err
	}
	return nil
}

// Spacing resolves letter and word spacing to points.
func (p Profile) Spacing() (letter, word float64, err error) {
	letter, err = p.resolve("letter-spacing", p.LetterSpacing)
	if err != nil {
		return 0, 0, err
	}
	word, err = p.resolve("word-spacing", p.WordSpacing)
	if err != nil {
		return 0, 0, err
	}
	return letter, word, nil
}

// LineHeightPt resolves the line height in points; empty means 1.4x.
func (p Profile) LineHeightPt() (float64, error) {
	spec, err := layout.ParseLineHeight(p.LineHeight)
	if err != nil {
		return 0, fmt.Errorf("%w: %s line-height %q: %v", ErrInvalid, p.label(), p.LineHeight, err)
	}
	return spec.Resolve(p.Size), nil
}

func (p Profile) resolve(field, raw string) (float64, error) {
	l, err := layout.ParseRawLengthStr(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s %q: %v", ErrInvalid, p.label(), field, raw, err)
	}
	return l.Resolve(p.Size), nil
}

func (p Profile) label() string {
	if p.Name == "" {
		return "profile"
	}
	return "profile " + p.Name
}

// Find returns the profile with the given name (case-insensitive).
func Find(ps []Profile, name string) (Profile, bool) {
	for _, p := range ps {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Profile{}, false
}

// parseFontSize accepts an absolute length; unit-less numbers are points.
func parseFontSize(raw string) (float64, error) {
	l, err := layout.ParseRawLengthStr(raw)
	if err != nil {
		return 0, err
	}
	switch l.Unit {
	case layout.UnitNone:
		return l.Value, nil
	case layout.UnitEM:
		return 0, fmt.Errorf("字号不能使用 em")
	default:
		return l.ToPT(), nil
	}
}
