package main

import (
	"bytes"
	"testing"

	"taxkaki/internal/core/directory"
	"taxkaki/internal/platform/testkit"
)

func dirRow(pan, pin, status, exp string) []any {
	return []any{"", pan, pin, "", "", "", "", status, exp}
}

func TestAudit(t *testing.T) {
	rows := [][]any{
		dirRow("PAN", "PIN", "Status", "Expiry"),
		dirRow("AB1234", "9999", "Active", ""),
		dirRow("  ", "1111", "active", ""),
		dirRow(" ab1234 ", "0000", "inactive", ""),
		dirRow("CD5678", "1", "Suspended", "31/04/2025"),
		{"", "EF0001"},
	}

	got := Audit(directory.SchemaV1, rows, 1)

	want := []struct {
		row  int
		kind string
	}{
		{3, KindBlankPAN},
		{4, KindDuplicatePAN},
		{5, KindUnknownStatus},
		{5, KindBadExpiry},
		{6, KindBlankPIN},
		{6, KindUnknownStatus},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d defects: %+v", len(got), got)
	}
	for i, w := range want {
		if got[i].Row != w.row || got[i].Kind != w.kind {
			t.Fatalf("defect %d = %+v, want row %d %s", i, got[i], w.row, w.kind)
		}
	}
	if got[1].Detail != "shadowed by row 2" {
		t.Fatalf("duplicate detail %q", got[1].Detail)
	}
}

func TestAudit_CleanDirectory(t *testing.T) {
	rows := [][]any{dirRow("AB1234", "9999", "active", "1/1/2030")}
	if d := Audit(directory.SchemaV1, rows, 0); len(d) != 0 {
		t.Fatalf("defects: %+v", d)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, 2, []Defect{{Row: 3, Kind: KindBlankPAN}})
	testkit.MustContain(t, buf.String(), "row 3\tblank_pan")
	testkit.MustContain(t, buf.String(), "2 rows checked, 1 defects")
}
