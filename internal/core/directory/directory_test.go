package directory

import (
	"encoding/json"
	"testing"
	"time"

	"taxkaki/internal/platform/testkit"
)

// row builds a SchemaV1 row: A=#, B=PAN, C=PIN, H=status, I=expiry
func row(pan, pin any, status, exp string) []any {
	return []any{"1", pan, pin, "", "", "", "", status, exp}
}

var today = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func TestSchema(t *testing.T) {
	if SchemaV1.Width() != 9 {
		t.Fatalf("width=%d", SchemaV1.Width())
	}
	if err := (Schema{Version: 9, PAN: 1, PIN: 1, Status: 2, Expiry: 3}).Validate(); err == nil {
		t.Fatal("duplicate columns should be rejected")
	}
	if err := (Schema{Version: 9, PAN: -1, PIN: 1, Status: 2, Expiry: 3}).Validate(); err == nil {
		t.Fatal("negative columns should be rejected")
	}
	testkit.MustPanic(t, func() { MustSchema(Schema{PAN: 0, PIN: 0}) })
}

func TestParseRow(t *testing.T) {
	cases := []struct {
		name string
		in   []any
		want Record
	}{
		{
			name: "trimmed",
			in:   row("  AB1234 ", " 9999 ", " Active ", " 31/12/2030 "),
			want: Record{PAN: "AB1234", PIN: "9999", StatusRaw: "Active", Status: StatusActive, ExpiryRaw: "31/12/2030"},
		},
		{
			name: "numeric pin",
			in:   row("AB1234", 9999.0, "active", ""),
			want: Record{PAN: "AB1234", PIN: "9999", StatusRaw: "active", Status: StatusActive},
		},
		{
			name: "json number pin",
			in:   row("AB1234", json.Number("1234"), "INACTIVE", ""),
			want: Record{PAN: "AB1234", PIN: "1234", StatusRaw: "INACTIVE", Status: StatusInactive},
		},
		{
			name: "short row",
			in:   []any{"1", "AB1234"},
			want: Record{PAN: "AB1234", Status: StatusOther},
		},
		{
			name: "nil cells",
			in:   row(nil, nil, "suspended", ""),
			want: Record{StatusRaw: "suspended", Status: StatusOther},
		},
		{
			name: "empty row",
			in:   nil,
			want: Record{Status: StatusOther},
		},
	}
	for _, tc := range cases {
		if got := ParseRow(SchemaV1, tc.in); got != tc.want {
			t.Errorf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		rec  Record
		pin  string
		want Outcome
	}{
		{"ok no expiry", ParseRow(SchemaV1, row("AB1234", "9999", "Active", "")), "9999", OutcomeOK},
		{"ok pin whitespace", ParseRow(SchemaV1, row("AB1234", "9999", "Active", "")), " 9999\t", OutcomeOK},
		{"pin case sensitive", ParseRow(SchemaV1, row("AB1234", "abcd", "Active", "")), "ABCD", OutcomeInvalidPIN},
		{"blank pin cell, blank pin", ParseRow(SchemaV1, row("AB1234", "", "Active", "")), "", OutcomeInvalidPIN},
		{"blank pin cell, spaces", ParseRow(SchemaV1, row("AB1234", "", "Active", "")), "   ", OutcomeInvalidPIN},
		{"missing pin cell", ParseRow(SchemaV1, []any{"", "AB1234"}), "", OutcomeInvalidPIN},
		{"blank pin given", ParseRow(SchemaV1, row("AB1234", "9999", "Active", "")), " ", OutcomeInvalidPIN},
		{"pin leading zero", ParseRow(SchemaV1, row("AB1234", "0999", "Active", "")), "999", OutcomeInvalidPIN},
		{"inactive", ParseRow(SchemaV1, row("AB1234", "9999", "Inactive", "")), "9999", OutcomeInactive},
		{"blank status", ParseRow(SchemaV1, row("AB1234", "9999", "", "")), "9999", OutcomeInactive},
		{"pin checked before status", ParseRow(SchemaV1, row("AB1234", "9999", "Inactive", "")), "0000", OutcomeInvalidPIN},
		{"inactive before expiry", ParseRow(SchemaV1, row("AB1234", "9999", "Inactive", "01/01/2021")), "9999", OutcomeInactive},
		{"expires today", ParseRow(SchemaV1, row("AB1234", "9999", "Active", "15/10/2026")), "9999", OutcomeOK},
		{"expired yesterday", ParseRow(SchemaV1, row("AB1234", "9999", "Active", "14/10/2026")), "9999", OutcomeExpired},
		{"future", ParseRow(SchemaV1, row("AB1234", "9999", "Active", "31/12/2030")), "9999", OutcomeOK},
		{"calendar invalid", ParseRow(SchemaV1, row("AB1234", "9999", "Active", "29/02/2021")), "9999", OutcomeMalformedExpiry},
		{"before 2020", ParseRow(SchemaV1, row("AB1234", "9999", "Active", "01/01/2019")), "9999", OutcomeMalformedExpiry},
		{"iso date", ParseRow(SchemaV1, row("AB1234", "9999", "Active", "2030-12-31")), "9999", OutcomeMalformedExpiry},
	}
	for _, tc := range cases {
		if got := Validate(tc.rec, tc.pin, today); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	rows := [][]any{
		{"#", "PAN", "PIN", "", "", "", "", "Status", "Expiry"},
		row("xy9999", "1111", "Active", ""),
		row("XY9999", "2222", "Active", ""),
	}
	rec, ok := Find(SchemaV1, rows, " Xy9999 ")
	if !ok || rec.PIN != "1111" {
		t.Fatalf("rec=%+v ok=%v", rec, ok)
	}
	if _, ok := Find(SchemaV1, rows, "ZZ0000"); ok {
		t.Fatal("unexpected match")
	}
	if _, ok := Find(SchemaV1, [][]any{row("", "1", "Active", "")}, "  "); ok {
		t.Fatal("blank PAN must not match a blank row")
	}
}

func TestOutcomeMessages(t *testing.T) {
	seen := map[string]Outcome{}
	for _, o := range Outcomes {
		m := o.Message()
		if m == "" || m == string(o) {
			t.Fatalf("%s has no message", o)
		}
		if prev, dup := seen[m]; dup {
			t.Fatalf("%s and %s share a message", prev, o)
		}
		seen[m] = o
	}
	if !OutcomeOK.OK() || OutcomeExpired.OK() {
		t.Fatal("OK() wrong")
	}
}
