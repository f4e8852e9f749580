package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c360studio/tacsym/symbology"
)

// CodeLength is the fixed width of a symbol code:
// scheme(1) + affiliation(1) + battle dimension(1) + status(1) +
// function(6) + modifier1(1) + modifier2(1).
const CodeLength = 12

// Encode-time defaults substituted for unset selection fields.
const (
	DefaultSchemeCode      = "S"
	DefaultAffiliation     = "U"
	DefaultBattleDimension = "Z"
	DefaultStatus          = "-"
	DefaultFunctionCode    = "------"
	DefaultModifier        = "-"
)

// ErrCodeLength is returned by Decode when the input is not exactly
// CodeLength characters. Decoding never slices out-of-range substrings.
var ErrCodeLength = errors.New("symbol code must be exactly 12 characters")

// Encode renders the selection as a symbol code. It is total: unset fields
// fall back to the documented defaults, and the result is always exactly
// CodeLength characters.
func (sel Selection) Encode() string {
	scheme := DefaultSchemeCode
	if sel.Scheme != nil {
		scheme = sel.Scheme.Code
	}

	affiliation := sel.Affiliation
	if affiliation == "" {
		affiliation = DefaultAffiliation
	}

	battleDimension := DefaultBattleDimension
	functionCode := DefaultFunctionCode
	if sel.Function != nil {
		battleDimension = sel.Function.BattleDimension
		functionCode = padCode(sel.Function.Code, symbology.FunctionCodeWidth)
	}

	status := sel.Status
	if status == "" {
		status = DefaultStatus
	}

	modifier1 := sel.Modifier1
	if modifier1 == "" {
		modifier1 = DefaultModifier
	}
	modifier2 := sel.Modifier2
	if modifier2 == "" {
		modifier2 = DefaultModifier
	}

	return scheme + affiliation + battleDimension + status + functionCode + modifier1 + modifier2
}

// Encode renders the session's current selection as a symbol code.
func (s *Session) Encode() string {
	return s.sel.Encode()
}

// Decode replaces the session's state with the selection encoded by the
// given symbol code. Each positional field resolves against the catalog or
// its fixed vocabulary; a field whose segment matches nothing is simply left
// unset, never an error. Only a malformed length fails.
func (s *Session) Decode(code string) error {
	if len(code) != CodeLength {
		return fmt.Errorf("decode %q (%d characters): %w", code, len(code), ErrCodeLength)
	}

	schemeCode := code[0:1]
	affiliation := code[1:2]
	battleDimension := code[2:3]
	status := code[3:4]
	functionCode := code[4:10]
	modifier1 := code[10:11]
	modifier2 := code[11:12]

	// Scheme, then the cascade down from it. A scheme miss clears every
	// catalog-derived field.
	s.SetScheme(schemeCode)

	if s.sel.Scheme != nil {
		if dim, ok := s.sel.Scheme.DimensionByFunction(battleDimension, functionCode); ok {
			s.applyDimension(dim)
			s.SetFunction(functionCode)
		}
	}

	// Affiliation and status resolve independently of the catalog.
	s.SetAffiliation(affiliation)
	s.SetStatus(status)

	// Modifier 1 resolves against the post-cascade option list; modifier 2
	// against the list modifier 1 selects.
	s.SetModifier1(modifier1)
	s.SetModifier2(modifier2)

	return nil
}

// NewSessionFromCode creates an edit session pre-populated from an existing
// symbol code.
func NewSessionFromCode(catalog *symbology.Catalog, code string) (*Session, error) {
	s := NewSession(catalog)
	if err := s.Decode(code); err != nil {
		return nil, err
	}
	return s, nil
}

func padCode(code string, width int) string {
	if len(code) >= width {
		return code
	}
	return code + strings.Repeat("-", width-len(code))
}
