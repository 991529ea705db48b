package filter

import "fmt"

// Well-known element identifiers for the filter indicator targets.
// The list page template is the only markup coupling.
const (
	FilterButtonID      = "expense-filter-button"
	FilterCountID       = "expense-filter-count"
	FilterStatusCountID = "expense-filter-status-count"
	FilterStatusTextID  = "expense-filter-status-text"
)

// Indicators is the presentation state for the filter badge, the
// filter toggle button and the accessible status region. Targets that
// are absent from the rendered page are simply skipped.
type Indicators struct {
	Count int

	BadgeVisible     bool
	BadgeText        string
	ButtonEmphasized bool
	StatusVisible    bool
	StatusText       string
}

// Indicators derives the badge state from the active filter count.
// A zero count hides the badge and the status region and drops the
// button emphasis.
func (c Criteria) Indicators() Indicators {
	count := c.ActiveCount()
	ind := Indicators{Count: count}
	if count == 0 {
		return ind
	}

	ind.BadgeVisible = true
	ind.BadgeText = fmt.Sprintf("%d", count)
	ind.ButtonEmphasized = true
	ind.StatusVisible = true
	if count == 1 {
		ind.StatusText = "1 filter applied"
	} else {
		ind.StatusText = fmt.Sprintf("%d filters applied", count)
	}
	return ind
}
