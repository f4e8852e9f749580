package symbology

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var bundled embed.FS

// definitionFile is the on-disk shape of a symbology definition file.
type definitionFile struct {
	Schemes []Scheme `yaml:"schemes"`
}

// Parse builds a catalog from a single YAML definition document.
func Parse(data []byte) (*Catalog, error) {
	schemes, err := parseSchemes(data)
	if err != nil {
		return nil, err
	}
	return New(schemes), nil
}

// LoadFiles builds a catalog from one or more YAML definition files, merged
// in argument order. Files that define an already-seen scheme code append
// their dimensions to that scheme rather than shadowing it.
func LoadFiles(paths ...string) (*Catalog, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("load symbology: no definition files given")
	}

	var merged []Scheme
	index := map[string]int{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load symbology %s: %w", path, err)
		}
		schemes, err := parseSchemes(data)
		if err != nil {
			return nil, fmt.Errorf("load symbology %s: %w", path, err)
		}
		for _, s := range schemes {
			if i, seen := index[s.Code]; seen {
				merged[i].Dimensions = append(merged[i].Dimensions, s.Dimensions...)
				continue
			}
			index[s.Code] = len(merged)
			merged = append(merged, s)
		}
	}
	return New(merged), nil
}

// Default builds the catalog from the definition files bundled with the
// package.
func Default() (*Catalog, error) {
	entries, err := bundled.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("load bundled symbology: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var merged []Scheme
	index := map[string]int{}
	for _, name := range names {
		data, err := bundled.ReadFile("data/" + name)
		if err != nil {
			return nil, fmt.Errorf("load bundled symbology %s: %w", name, err)
		}
		schemes, err := parseSchemes(data)
		if err != nil {
			return nil, fmt.Errorf("load bundled symbology %s: %w", name, err)
		}
		for _, s := range schemes {
			if i, seen := index[s.Code]; seen {
				merged[i].Dimensions = append(merged[i].Dimensions, s.Dimensions...)
				continue
			}
			index[s.Code] = len(merged)
			merged = append(merged, s)
		}
	}
	return New(merged), nil
}

func parseSchemes(data []byte) ([]Scheme, error) {
	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	for si := range file.Schemes {
		s := &file.Schemes[si]
		if len(s.Code) != 1 {
			return nil, fmt.Errorf("parse definition: scheme %q has code %q, want exactly 1 character", s.Label, s.Code)
		}
		for di := range s.Dimensions {
			d := &s.Dimensions[di]
			for fi := range d.Functions {
				f := &d.Functions[fi]
				if len(f.BattleDimension) != 1 {
					return nil, fmt.Errorf("parse definition: function %q in %s/%s has battle dimension %q, want exactly 1 character",
						f.Name(), s.Label, d.Name, f.BattleDimension)
				}
				f.Code = padFunctionCode(f.Code)
				if len(f.Code) != FunctionCodeWidth {
					return nil, fmt.Errorf("parse definition: function %q in %s/%s has code %q longer than %d characters",
						f.Name(), s.Label, d.Name, f.Code, FunctionCodeWidth)
				}
			}
			for _, m := range append(append([]Modifier{}, d.Modifiers1...), d.Modifiers2...) {
				if len(m.Key) != 1 {
					return nil, fmt.Errorf("parse definition: modifier %q in %s/%s has key %q, want exactly 1 character",
						m.Label, s.Label, d.Name, m.Key)
				}
			}
		}
	}
	return file.Schemes, nil
}

// padFunctionCode right-pads a function identifier with '-' to the fixed
// six-character width used in symbol codes.
func padFunctionCode(code string) string {
	if len(code) >= FunctionCodeWidth {
		return code
	}
	return code + strings.Repeat("-", FunctionCodeWidth-len(code))
}
