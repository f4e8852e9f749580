package symbology

import "fmt"

// Duplicate reports a (battleDimension, functionCode) pair claimed by more
// than one dimension within a scheme. Lookups resolve such pairs
// first-match-wins in dimension order; this report exists so operators can
// find and fix the ambiguity in their definition files.
type Duplicate struct {
	SchemeCode      string
	BattleDimension string
	FunctionCode    string
	Dimensions      []string
}

func (d Duplicate) String() string {
	return fmt.Sprintf("scheme %s: function (%s, %s) defined in dimensions %v",
		d.SchemeCode, d.BattleDimension, d.FunctionCode, d.Dimensions)
}

// Validate scans every scheme for (battleDimension, functionCode) pairs that
// appear in more than one dimension. The catalog remains usable regardless;
// callers decide whether duplicates are warnings or hard errors.
func (c *Catalog) Validate() []Duplicate {
	var dups []Duplicate
	for i := range c.schemes {
		s := &c.schemes[i]

		type pair struct{ battleDimension, code string }
		owners := map[pair][]string{}
		order := []pair{}
		for di := range s.Dimensions {
			d := &s.Dimensions[di]
			name := d.Name
			if name == "" {
				name = fmt.Sprintf("(unnamed #%d)", di)
			}
			seen := map[pair]bool{}
			for _, f := range d.Functions {
				p := pair{f.BattleDimension, f.Code}
				if seen[p] {
					continue // same pair twice inside one dimension is not cross-dimension ambiguity
				}
				seen[p] = true
				if len(owners[p]) == 0 {
					order = append(order, p)
				}
				owners[p] = append(owners[p], name)
			}
		}

		for _, p := range order {
			if names := owners[p]; len(names) > 1 {
				dups = append(dups, Duplicate{
					SchemeCode:      s.Code,
					BattleDimension: p.battleDimension,
					FunctionCode:    p.code,
					Dimensions:      names,
				})
			}
		}
	}
	return dups
}
