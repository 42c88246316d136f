package directory

import (
	"strings"

	"taxkaki/internal/core/normalize"
)

// Status is the account state column
type Status string

// Known statuses; anything else parses as StatusOther
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOther    Status = "other"
)

// ParseStatus maps a cell to a Status, trimmed and case insensitive
func ParseStatus(raw string) Status {
	switch strings.ToLower(normalize.Trim(raw)) {
	case "active":
		return StatusActive
	case "inactive":
		return StatusInactive
	}
	return StatusOther
}

// Record is one directory row with every cell trimmed
// ExpiryRaw is kept unparsed so a malformed date only matters once the validator reaches it
type Record struct {
	PAN       string
	PIN       string
	StatusRaw string
	Status    Status
	ExpiryRaw string
}

// ParseRow reads a row through schema; missing columns are blank and it never fails
func ParseRow(s Schema, row []any) Record {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return normalize.Trim(normalize.Cell(row[i]))
	}
	status := cell(s.Status)
	return Record{
		PAN:       cell(s.PAN),
		PIN:       cell(s.PIN),
		StatusRaw: status,
		Status:    ParseStatus(status),
		ExpiryRaw: cell(s.Expiry),
	}
}
