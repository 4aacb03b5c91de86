// Package linefit predicts where text will wrap when a host renders it at a
// given width, without laying it out.
//
// A Breaker is built once per font configuration: the host's width
// measurement (a metrics.Oracle) is sampled into a metrics.Table, and every
// scan afterwards is pure arithmetic over cached widths.
//
//	b, err := linefit.New(face)
//	lines := b.Split("The quick brown fox", 100, 0)
package linefit

import (
	"fmt"

	"github.com/ByLCY/linefit/layout"
	"github.com/ByLCY/linefit/metrics"
	"github.com/ByLCY/linefit/oracle"
	"github.com/ByLCY/linefit/profile"
	"github.com/ByLCY/linefit/wrap"
)

// New builds a Breaker from the oracle's current font configuration.
func New(o metrics.Oracle) (*wrap.Breaker, error) {
	return NewWithOptions(o, metrics.Options{})
}

// NewWithOptions is New with an explicit alphabet and probe.
func NewWithOptions(o metrics.Oracle, opts metrics.Options) (*wrap.Breaker, error) {
	tbl, err := metrics.BuildWithOptions(o, opts)
	if err != nil {
		return nil, err
	}
	return wrap.New(tbl), nil
}

// FromProfile opens the profile's backend and builds a Breaker over it.
func FromProfile(p profile.Profile, opts oracle.Options) (*wrap.Breaker, error) {
	o, err := oracle.Open(p, opts)
	if err != nil {
		return nil, err
	}
	b, err := New(o)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return b, nil
}

// NewSetter opens the profile's backend and returns a paragraph typesetter
// together with the profile's resolved line height.
func NewSetter(p profile.Profile, opts oracle.Options) (*layout.Setter, float64, error) {
	p = p.Normalize()
	lineHeight, err := p.LineHeightPt()
	if err != nil {
		return nil, 0, err
	}
	o, err := oracle.Open(p, opts)
	if err != nil {
		return nil, 0, err
	}
	b, err := New(o)
	if err != nil {
		return nil, 0, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return layout.NewSetterFor(b, o), lineHeight, nil
}
