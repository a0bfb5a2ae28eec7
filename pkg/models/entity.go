package models

import "strings"

// ID is a YNAB4 entity identifier of the form "<EntityType>/<value>",
// e.g. "Category/A1B2-C3" or "MonthlyBudget/2024-03".
type ID string

// Well-known category ids that have no record in the budget document.
const (
	ImmediateIncomeID ID = "Category/__ImmediateIncome__"
	TransferID        ID = "Category/__Transfer__"
)

// Reserved second segments marking categories YNAB4 keeps out of sight.
const (
	HiddenSegment   = "__Hidden__"
	InternalSegment = "__Internal__"
)

// EntityType returns the prefix before the first slash.
func (id ID) EntityType() string {
	s := string(id)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i]
	}
	return s
}

// Value returns everything after the first slash, or "" when there is none.
func (id ID) Value() string {
	s := string(id)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// Segment returns the i-th slash separated segment and whether it exists.
func (id ID) Segment(i int) (string, bool) {
	parts := strings.Split(string(id), "/")
	if i < 0 || i >= len(parts) {
		return "", false
	}
	return parts[i], true
}

// Reserved reports whether the second segment marks a hidden or internal entity.
func (id ID) Reserved() bool {
	seg, ok := id.Segment(1)
	return ok && (seg == HiddenSegment || seg == InternalSegment)
}

func (id ID) String() string { return string(id) }
