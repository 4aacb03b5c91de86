package profile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// document is the shape of TOML and YAML profile files:
//
//	[[profile]]
//	name = "Body"
//	size = 12.0
type document struct {
	Profiles []Profile `toml:"profile" yaml:"profile"`
}

// LoadTOML decodes profiles from TOML. Unknown keys are rejected.
func LoadTOML(r io.Reader) ([]Profile, error) {
	var doc document
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("解析 TOML profile 失败: %w", err)
	}
	return doc.Profiles, nil
}

// LoadYAML decodes profiles from YAML. Unknown keys are rejected; an empty
// document yields no profiles.
func LoadYAML(r io.Reader) ([]Profile, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("解析 YAML profile 失败: %w", err)
	}
	return doc.Profiles, nil
}

// Load reads a profile file, choosing the decoder by extension:
// .toml, .yaml / .yml, anything else is the block DSL.
func Load(path string) ([]Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开 profile 文件失败: %w", err)
	}
	defer f.Close()

	var ps []Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		ps, err = LoadTOML(f)
	case ".yaml", ".yml":
		ps, err = LoadYAML(f)
	default:
		ps, err = Parse(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}
