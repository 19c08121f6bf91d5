package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// UnitKey - normalize a region name for lookups: NFC, case folded,
// surrounding spaces trimmed and inner runs of spaces collapsed
func UnitKey(name string) string {
	s := norm.NFC.String(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), " ")
	return folder.String(s)
}
