// Package directory models the externally managed credential directory and validates credentials against it
package directory

import "fmt"

// Schema maps record fields to zero based column indices
type Schema struct {
	Version int
	PAN     int
	PIN     int
	Status  int
	Expiry  int
}

// SchemaV1 is the layout operators maintain today: B=PAN, C=PIN, H=status, I=expiry
var SchemaV1 = MustSchema(Schema{Version: 1, PAN: 1, PIN: 2, Status: 7, Expiry: 8})

// Validate checks indices are non negative and distinct
func (s Schema) Validate() error {
	cols := map[string]int{"pan": s.PAN, "pin": s.PIN, "status": s.Status, "expiry": s.Expiry}
	seen := map[int]string{}
	for _, name := range []string{"pan", "pin", "status", "expiry"} {
		idx := cols[name]
		if idx < 0 {
			return fmt.Errorf("directory schema v%d: %s column %d is negative", s.Version, name, idx)
		}
		if other, dup := seen[idx]; dup {
			return fmt.Errorf("directory schema v%d: %s and %s share column %d", s.Version, other, name, idx)
		}
		seen[idx] = name
	}
	return nil
}

// MustSchema panics on an invalid schema
func MustSchema(s Schema) Schema {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}

// Width is the number of columns a row needs to carry every field
func (s Schema) Width() int {
	return max(s.PAN, s.PIN, s.Status, s.Expiry) + 1
}
