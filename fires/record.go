// Package fires is the client side of the remote fire-record service: fetch,
// create, and update of fire point records over HTTP, plus materialization of
// those records as map symbols through a renderer collaborator.
package fires

import (
	"fmt"
	"time"

	"github.com/c360studio/tacsym/selection"
)

// Record is one fire point as exchanged with the remote service.
type Record struct {
	// ID uniquely identifies the record. Assigned client-side on create
	// when empty.
	ID string `json:"id"`

	// Name is the operator-facing label for the point.
	Name string `json:"name"`

	// Latitude and Longitude position the point in degrees.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// SymbolCode is the 12-character symbol identification code rendered
	// for this point.
	SymbolCode string `json:"symbolCode"`

	// Remarks carries free-form operator notes.
	Remarks string `json:"remarks,omitempty"`

	// UpdatedAt is the service-side modification timestamp.
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the fields the client can check before sending: position
// bounds and symbol code width. Catalog membership of the code's segments is
// not checked here; unknown segments degrade at decode time.
func (r Record) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("fire record: name is required")
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		return fmt.Errorf("fire record %q: latitude %v out of range [-90, 90]", r.Name, r.Latitude)
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return fmt.Errorf("fire record %q: longitude %v out of range [-180, 180]", r.Name, r.Longitude)
	}
	if len(r.SymbolCode) != selection.CodeLength {
		return fmt.Errorf("fire record %q: symbol code %q: %w", r.Name, r.SymbolCode, selection.ErrCodeLength)
	}
	return nil
}
