package symbology

// FunctionCodeWidth is the fixed width of a function identifier within a
// symbol code. Shorter codes in definition files are right-padded with '-'.
const FunctionCodeWidth = 6

// Modifier is a single entry in a dimension's modifier vocabulary.
type Modifier struct {
	// Key is the single-character code written into the symbol code.
	Key string `yaml:"key" json:"key"`

	// Label is the human-readable name shown in option lists.
	Label string `yaml:"label" json:"label"`
}

// Function is a leaf icon definition within a dimension.
type Function struct {
	// Names is the hierarchical name, most-general element first.
	Names []string `yaml:"names" json:"names"`

	// BattleDimension is the single-character battle dimension this
	// function encodes at position 2 of a symbol code.
	BattleDimension string `yaml:"battleDimension" json:"battleDimension"`

	// Code is the six-character function identifier at positions 4-9.
	Code string `yaml:"code" json:"code"`
}

// Name returns the most specific element of the function's name hierarchy.
func (f Function) Name() string {
	if len(f.Names) == 0 {
		return ""
	}
	return f.Names[len(f.Names)-1]
}

// Depth returns how many ancestors the function has in its name hierarchy.
func (f Function) Depth() int {
	if len(f.Names) == 0 {
		return 0
	}
	return len(f.Names) - 1
}

// Dimension is a named category within a scheme. Entries without a name are
// placeholders carried over from upstream symbology tables; they are kept in
// the data but excluded from option derivation.
type Dimension struct {
	Name       string     `yaml:"name" json:"name"`
	Functions  []Function `yaml:"functions" json:"functions"`
	Modifiers1 []Modifier `yaml:"modifiers1" json:"modifiers1,omitempty"`
	Modifiers2 []Modifier `yaml:"modifiers2" json:"modifiers2,omitempty"`
}

// Modifier1 looks up a modifier-1 vocabulary entry by key.
func (d *Dimension) Modifier1(key string) (Modifier, bool) {
	return lookupModifier(d.Modifiers1, key)
}

// Modifier2 looks up a modifier-2 vocabulary entry by key.
func (d *Dimension) Modifier2(key string) (Modifier, bool) {
	return lookupModifier(d.Modifiers2, key)
}

func lookupModifier(mods []Modifier, key string) (Modifier, bool) {
	for _, m := range mods {
		if m.Key == key {
			return m, true
		}
	}
	return Modifier{}, false
}

// Scheme is a top-level symbology category such as Warfighting or
// Emergency Management.
type Scheme struct {
	// Code is the single-character scheme identifier at position 0 of a
	// symbol code.
	Code string `yaml:"code" json:"code"`

	Label      string      `yaml:"label" json:"label"`
	Dimensions []Dimension `yaml:"dimensions" json:"dimensions"`
}

// NamedDimensions returns the scheme's dimensions that carry a non-empty
// name, in definition order. These are the dimensions presented as options.
func (s *Scheme) NamedDimensions() []*Dimension {
	var out []*Dimension
	for i := range s.Dimensions {
		if s.Dimensions[i].Name != "" {
			out = append(out, &s.Dimensions[i])
		}
	}
	return out
}

// DimensionByName returns the named dimension, if present.
func (s *Scheme) DimensionByName(name string) (*Dimension, bool) {
	for i := range s.Dimensions {
		if s.Dimensions[i].Name != "" && s.Dimensions[i].Name == name {
			return &s.Dimensions[i], true
		}
	}
	return nil, false
}

// DimensionByFunction scans every dimension's function list for a matching
// (battleDimension, functionCode) pair and returns the first dimension that
// contains one. When the underlying data assigns the same pair to more than
// one dimension the first match wins; Catalog.Validate reports such
// duplicates at load time.
func (s *Scheme) DimensionByFunction(battleDimension, functionCode string) (*Dimension, bool) {
	for i := range s.Dimensions {
		d := &s.Dimensions[i]
		for _, f := range d.Functions {
			if f.BattleDimension == battleDimension && f.Code == functionCode {
				return d, true
			}
		}
	}
	return nil, false
}

// Catalog is the immutable symbology dictionary.
type Catalog struct {
	schemes []Scheme
	byCode  map[string]*Scheme
}

// New builds a catalog from the given schemes. The slice is retained; callers
// must not mutate it afterwards.
func New(schemes []Scheme) *Catalog {
	c := &Catalog{
		schemes: schemes,
		byCode:  make(map[string]*Scheme, len(schemes)),
	}
	for i := range c.schemes {
		s := &c.schemes[i]
		if _, exists := c.byCode[s.Code]; !exists {
			c.byCode[s.Code] = s
		}
	}
	return c
}

// Schemes returns all schemes in definition order.
func (c *Catalog) Schemes() []Scheme {
	return c.schemes
}

// SchemeByCode returns the scheme with the given single-character code.
func (c *Catalog) SchemeByCode(code string) (*Scheme, bool) {
	s, ok := c.byCode[code]
	return s, ok
}
