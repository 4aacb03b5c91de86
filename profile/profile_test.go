package profile_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/linefit/profile"
)

const sampleDSL = `
// body text
profile Body {
  backend: canvas
  font: "builtin:lmroman10"
  style: regular
  size: 12pt
  letter-spacing: 0.15px
  word_spacing: 0.1em
  line-height: 1.2x
}

/* terminal preview */
profile Term { backend: cells; ambiguous-wide: true; size: 1 }
`

func TestParseProfiles(t *testing.T) {
	ps, err := profile.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(ps) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(ps))
	}

	body := ps[0]
	if body.Name != "Body" || body.Backend != "canvas" || body.Font != "builtin:lmroman10" {
		t.Fatalf("unexpected body profile: %+v", body)
	}
	if body.Size != 12 {
		t.Fatalf("expected size 12, got %g", body.Size)
	}
	ls, ws, err := body.Spacing()
	require.NoError(t, err)
	assert.InDelta(t, 0.1125, ls, 1e-9)
	assert.InDelta(t, 1.2, ws, 1e-9)
	lh, err := body.LineHeightPt()
	require.NoError(t, err)
	assert.InDelta(t, 14.4, lh, 1e-9)

	term, ok := profile.Find(ps, "term")
	if !ok {
		t.Fatalf("Term profile not found")
	}
	if term.Backend != "cells" || !term.AmbiguousWide || term.Size != 1 {
		t.Fatalf("unexpected term profile: %+v", term)
	}
}

func TestParseAST(t *testing.T) {
	f, err := profile.ParseAST(strings.NewReader(sampleDSL))
	require.NoError(t, err)
	require.Len(t, f.Profiles, 2)
	entries := f.Profiles[0].Entries
	require.Len(t, entries, 7)
	assert.Equal(t, "font", entries[1].Key)
	require.NotNil(t, entries[1].Value.String)
	assert.Equal(t, "builtin:lmroman10", entries[1].Value.Text())
	require.NotNil(t, entries[4].Value.Number)
	assert.Equal(t, "0.15px", *entries[4].Value.Number)
	assert.Equal(t, 4, f.Profiles[0].Entries[0].Pos.Line)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":     `profile A { colour: red }`,
		"bad bool":        `profile A { ambiguous-wide: maybe }`,
		"em font size":    `profile A { size: 1em }`,
		"missing brace":   `profile A { size: 12pt`,
		"missing keyword": `Body { size: 12 }`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := profile.ParseString(src)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	p := profile.Profile{}.Normalize()
	assert.Equal(t, profile.BackendCanvas, p.Backend)
	assert.Equal(t, profile.DefaultFont, p.Font)
	assert.Equal(t, profile.DefaultStyle, p.Style)
	assert.Equal(t, profile.DefaultSize, p.Size)
	assert.NoError(t, p.Validate())

	cells := profile.Profile{Backend: " Cells "}.Normalize()
	assert.Equal(t, profile.BackendCells, cells.Backend)
	assert.Empty(t, cells.Font)

	bad := []profile.Profile{
		{Name: "neg", Size: -1},
		{Name: "ls", Size: 12, LetterSpacing: "wide"},
		{Name: "lh", Size: 12, LineHeight: "tall"},
	}
	for _, b := range bad {
		err := b.Validate()
		if !errors.Is(err, profile.ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", b.Name, err)
		}
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	tomlPath := write("fonts.toml", `
[[profile]]
name = "Body"
backend = "sfnt"
size = 10.5
letter-spacing = "1pt"

[[profile]]
name = "Mono"
font = "builtin:gomono"
`)
	yamlPath := write("fonts.yml", `
profile:
  - name: Body
    backend: shaper
    size: 11
    line-height: 16pt
`)
	dslPath := write("fonts.profile", `profile Body { backend: cells }`)

	ps, err := profile.Load(tomlPath)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "sfnt", ps[0].Backend)
	assert.Equal(t, 10.5, ps[0].Size)
	assert.Equal(t, "1pt", ps[0].LetterSpacing)
	assert.Equal(t, "builtin:gomono", ps[1].Font)

	ps, err = profile.Load(yamlPath)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "shaper", ps[0].Backend)
	lh, err := ps[0].LineHeightPt()
	require.NoError(t, err)
	assert.Equal(t, 16.0, lh)

	ps, err = profile.Load(dslPath)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "cells", ps[0].Backend)

	_, err = profile.Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	_, err = profile.Load(write("bad.toml", "[[profile]]\nname = \"x\"\ncolour = \"red\"\n"))
	assert.Error(t, err)
}

func TestLoadYAMLEmpty(t *testing.T) {
	ps, err := profile.LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ps)
}
