package selection

import (
	"fmt"
	"strings"

	"github.com/c360studio/tacsym/symbology"
)

// Field names a mutable slot of a selection for Apply.
type Field string

// Selection fields.
const (
	FieldScheme      Field = "scheme"
	FieldAffiliation Field = "affiliation"
	FieldStatus      Field = "status"
	FieldDimension   Field = "dimension"
	FieldFunction    Field = "function"
	FieldModifier1   Field = "modifier1"
	FieldModifier2   Field = "modifier2"
)

// Selection is the current in-progress symbol composition. Unset fields are
// nil pointers or empty strings; encoding substitutes documented defaults
// for anything unset.
type Selection struct {
	Scheme      *symbology.Scheme
	Affiliation string // key into Affiliations, "" when unset
	Status      string // key into Statuses, "" when unset
	Dimension   *symbology.Dimension
	Function    *symbology.Function
	Modifier1   string // modifier-1 key, "" when unset
	Modifier2   string // modifier-2 key, "" when unset
}

// Options holds the derived option lists for every selectable field, ready
// for an external rendering surface.
type Options struct {
	Schemes      []Option `json:"schemes"`
	Affiliations []Option `json:"affiliations"`
	Statuses     []Option `json:"statuses"`
	Dimensions   []Option `json:"dimensions"`
	Functions    []Option `json:"functions"`
	Modifiers1   []Option `json:"modifiers1"`
	Modifiers2   []Option `json:"modifiers2"`
}

// Session is one symbol edit session: a selection, its derived options, and
// the catalog both are resolved against. Sessions are not safe for
// concurrent use; the shared catalog is.
type Session struct {
	catalog *symbology.Catalog
	sel     Selection
	opts    Options
}

// NewSession creates an empty edit session over the given catalog.
func NewSession(catalog *symbology.Catalog) *Session {
	s := &Session{catalog: catalog}
	s.opts.Schemes = schemeOptions(catalog)
	s.opts.Affiliations = Affiliations
	s.opts.Statuses = Statuses
	return s
}

// Selection returns a copy of the current selection.
func (s *Session) Selection() Selection {
	return s.sel
}

// Options returns the current derived option lists.
func (s *Session) Options() Options {
	return s.opts
}

// Apply performs one field change and synchronously re-derives every
// dependent option list, clearing selections the change invalidated. An
// empty value clears the field. Values that match no current option leave
// the field unset rather than failing; only an unknown field name is an
// error.
func (s *Session) Apply(field Field, value string) error {
	switch field {
	case FieldScheme:
		s.SetScheme(value)
	case FieldAffiliation:
		s.SetAffiliation(value)
	case FieldStatus:
		s.SetStatus(value)
	case FieldDimension:
		s.SetDimension(value)
	case FieldFunction:
		s.SetFunction(value)
	case FieldModifier1:
		s.SetModifier1(value)
	case FieldModifier2:
		s.SetModifier2(value)
	default:
		return fmt.Errorf("apply selection change: unknown field %q", field)
	}
	return nil
}

// SetScheme selects the scheme with the given code. The dimension, function,
// and both modifiers are scheme-specific, so they are cleared; affiliation
// and status survive.
func (s *Session) SetScheme(code string) {
	scheme, _ := s.catalog.SchemeByCode(code)
	s.sel.Scheme = scheme
	s.sel.Dimension = nil
	s.sel.Function = nil
	s.sel.Modifier1 = ""
	s.sel.Modifier2 = ""

	s.opts.Dimensions = dimensionOptions(scheme)
	s.opts.Functions = nil
	s.opts.Modifiers1 = nil
	s.opts.Modifiers2 = nil
}

// SetAffiliation selects a standard identity by key.
func (s *Session) SetAffiliation(key string) {
	if _, ok := lookupOption(Affiliations, key); ok {
		s.sel.Affiliation = key
	} else {
		s.sel.Affiliation = ""
	}
}

// SetStatus selects an operational status by key.
func (s *Session) SetStatus(key string) {
	if _, ok := lookupOption(Statuses, key); ok {
		s.sel.Status = key
	} else {
		s.sel.Status = ""
	}
}

// SetDimension selects a dimension of the current scheme by name and
// rebuilds the function and modifier option lists from it. The function and
// both modifier selections are cleared.
func (s *Session) SetDimension(name string) {
	var dim *symbology.Dimension
	if s.sel.Scheme != nil && name != "" {
		dim, _ = s.sel.Scheme.DimensionByName(name)
	}
	s.applyDimension(dim)
}

// applyDimension installs a resolved dimension (possibly nil) and runs the
// dimension cascade.
func (s *Session) applyDimension(dim *symbology.Dimension) {
	s.sel.Dimension = dim
	s.sel.Function = nil
	s.sel.Modifier1 = ""
	s.sel.Modifier2 = ""

	s.opts.Functions = functionOptions(dim)
	s.opts.Modifiers1 = modifier1Options(dim)
	s.opts.Modifiers2 = modifier2Options(dim, "")
}

// SetFunction selects a function of the current dimension by its
// six-character code. Modifier lists are unaffected.
func (s *Session) SetFunction(code string) {
	s.sel.Function = findFunction(s.sel.Dimension, code)
}

// SetModifier1 selects a modifier-1 entry by key and re-derives the
// modifier-2 option list: the keys of the synthetic mobility and towed-array
// entries replace it wholesale with their own vocabularies, anything else
// restores the dimension-derived list. A modifier-2 selection that is absent
// from the new list is cleared.
func (s *Session) SetModifier1(key string) {
	if _, ok := lookupOption(s.opts.Modifiers1, key); ok {
		s.sel.Modifier1 = key
	} else {
		s.sel.Modifier1 = ""
	}

	s.opts.Modifiers2 = modifier2Options(s.sel.Dimension, s.sel.Modifier1)
	if s.sel.Modifier2 != "" {
		if _, ok := lookupOption(s.opts.Modifiers2, s.sel.Modifier2); !ok {
			s.sel.Modifier2 = ""
		}
	}
}

// SetModifier2 selects a modifier-2 entry by key.
func (s *Session) SetModifier2(key string) {
	if _, ok := lookupOption(s.opts.Modifiers2, key); ok {
		s.sel.Modifier2 = key
	} else {
		s.sel.Modifier2 = ""
	}
}

func schemeOptions(catalog *symbology.Catalog) []Option {
	schemes := catalog.Schemes()
	opts := make([]Option, 0, len(schemes))
	for _, sc := range schemes {
		opts = append(opts, Option{Key: sc.Code, Label: sc.Label})
	}
	return opts
}

func dimensionOptions(scheme *symbology.Scheme) []Option {
	if scheme == nil {
		return nil
	}
	dims := scheme.NamedDimensions()
	opts := make([]Option, 0, len(dims))
	for _, d := range dims {
		opts = append(opts, Option{Key: d.Name, Label: d.Name})
	}
	return opts
}

// functionOptions flattens a dimension's function list. Each label keeps
// only the most specific name element, prefixed with an en-dash placeholder
// per ancestor so deeper entries visually indent.
func functionOptions(dim *symbology.Dimension) []Option {
	if dim == nil {
		return nil
	}
	opts := make([]Option, 0, len(dim.Functions))
	for _, f := range dim.Functions {
		opts = append(opts, Option{
			Key:   f.Code,
			Label: strings.Repeat("– ", f.Depth()) + f.Name(),
		})
	}
	return opts
}

func modifier1Options(dim *symbology.Dimension) []Option {
	if dim == nil {
		return nil
	}
	opts := make([]Option, 0, len(dim.Modifiers1))
	for _, m := range dim.Modifiers1 {
		opts = append(opts, Option{Key: m.Key, Label: m.Label})
	}
	opts = append(opts, syntheticModifiers1[dim.Name]...)
	return opts
}

func modifier2Options(dim *symbology.Dimension, modifier1 string) []Option {
	if override, ok := modifier2Overrides[modifier1]; ok {
		return override
	}
	if dim == nil {
		return nil
	}
	opts := make([]Option, 0, len(dim.Modifiers2))
	for _, m := range dim.Modifiers2 {
		opts = append(opts, Option{Key: m.Key, Label: m.Label})
	}
	return opts
}

func findFunction(dim *symbology.Dimension, code string) *symbology.Function {
	if dim == nil || code == "" {
		return nil
	}
	for i := range dim.Functions {
		if dim.Functions[i].Code == code {
			return &dim.Functions[i]
		}
	}
	return nil
}
