package main

import (
	"fmt"
	"io"

	"taxkaki/internal/core/directory"
	"taxkaki/internal/core/expiry"
	"taxkaki/internal/core/normalize"
	"taxkaki/internal/platform/logger"
)

// Defect kinds
const (
	KindBlankPAN      = "blank_pan"
	KindDuplicatePAN  = "duplicate_pan"
	KindBlankPIN      = "blank_pin"
	KindUnknownStatus = "unknown_status"
	KindBadExpiry     = "malformed_expiry"
)

// Defect is one problem found on one directory row
// Row is 1 based, matching what an operator sees in the sheet
type Defect struct {
	Row    int
	Kind   string
	PAN    string
	Detail string
}

// Audit inspects rows after the first skip header rows
func Audit(s directory.Schema, rows [][]any, skip int) []Defect {
	var out []Defect
	first := map[string]int{}
	for i, row := range rows {
		if i < skip {
			continue
		}
		n := i + 1
		rec := directory.ParseRow(s, row)

		pan := normalize.PAN(rec.PAN)
		if pan == "" {
			out = append(out, Defect{Row: n, Kind: KindBlankPAN})
			continue
		}
		masked := logger.MaskPAN(pan)
		if prev, dup := first[pan]; dup {
			out = append(out, Defect{Row: n, Kind: KindDuplicatePAN, PAN: masked, Detail: fmt.Sprintf("shadowed by row %d", prev)})
		} else {
			first[pan] = n
		}
		if rec.PIN == "" {
			out = append(out, Defect{Row: n, Kind: KindBlankPIN, PAN: masked, Detail: "can never log in"})
		}
		if rec.Status == directory.StatusOther {
			out = append(out, Defect{Row: n, Kind: KindUnknownStatus, PAN: masked, Detail: fmt.Sprintf("%q", rec.StatusRaw)})
		}
		if rec.ExpiryRaw != "" {
			if _, err := expiry.Parse(rec.ExpiryRaw); err != nil {
				out = append(out, Defect{Row: n, Kind: KindBadExpiry, PAN: masked, Detail: err.Error()})
			}
		}
	}
	return out
}

// Report writes one line per defect and a summary
func Report(w io.Writer, total int, defects []Defect) {
	for _, d := range defects {
		_, _ = fmt.Fprintf(w, "row %d\t%s\t%s\t%s\n", d.Row, d.Kind, d.PAN, d.Detail)
	}
	_, _ = fmt.Fprintf(w, "%d rows checked, %d defects\n", total, len(defects))
}
