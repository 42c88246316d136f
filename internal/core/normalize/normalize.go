// Package normalize canonicalises identifiers typed by people or pasted from spreadsheets
// PAN pipeline
// 1 trim surrounding whitespace and BOMs
// 2 drop invalid UTF-8
// 3 Unicode NFKC
// 4 strip format chars (zero width joiners, BOM)
// 5 width fold fullwidth to ASCII
// 6 upper case
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformer chains carry state so they are pooled, not shared
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			cases.Upper(language.Und),
		)
	},
}

// Trim removes surrounding whitespace including the BOM spreadsheets like to leave behind
func Trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '\uFEFF' })
}

// PAN returns the canonical form of a subscriber PAN
func PAN(s string) string {
	s = Trim(s)
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return strings.ToUpper(s)
	}
	return out
}

// SamePAN reports whether a and b name the same subscriber
// blank never matches
func SamePAN(a, b string) bool {
	ca := PAN(a)
	return ca != "" && ca == PAN(b)
}

// PIN returns the comparable form of a PIN: trimmed, case and digits untouched
func PIN(s string) string { return Trim(s) }
