package filter

// Well-known identifiers for the filter form and its controls.
const (
	FilterFormID  = "expense-filter-form"
	FilterClearID = "expense-filter-clear"
	TagsInputID   = "filterTagsInput"
)

// ScalarControlIDs lists the five scalar form controls in display
// order.
var ScalarControlIDs = []string{
	ParamMealType,
	ParamOrderType,
	ParamCategory,
	ParamStartDate,
	ParamEndDate,
}

// TagWidget is the capability exposed by the tag-selection widget.
// Silent mode suppresses the widget's own persistence side effects.
type TagWidget interface {
	Clear(silent bool)
	AddItem(value string, silent bool)
}

// Control is a single form control holding a string value.
type Control struct {
	Value string
}

// Form mirrors the filter form's controls so criteria can be pushed
// into them. Controls the page does not render are simply missing from
// the map; every operation treats a missing control, a nil tag widget
// or a nil submit callback as a no-op.
type Form struct {
	controls map[string]*Control
	tags     TagWidget
	submit   func()
}

// NewForm builds a form over the given controls. tags and submit may
// be nil when the page renders without the widget or without a
// submittable form.
func NewForm(controls map[string]*Control, tags TagWidget, submit func()) *Form {
	if controls == nil {
		controls = map[string]*Control{}
	}
	return &Form{controls: controls, tags: tags, submit: submit}
}

// ControlValue returns the current value of a control, or "" when the
// control does not exist.
func (f *Form) ControlValue(id string) string {
	if ctl, ok := f.controls[id]; ok {
		return ctl.Value
	}
	return ""
}

// Sync writes the criteria into the form: each scalar control gets its
// effective value (empty string when unset), then the tag widget is
// cleared and repopulated in insertion order, all in silent mode.
func (f *Form) Sync(c Criteria) {
	for _, id := range ScalarControlIDs {
		f.setControl(id, c.Scalar(id))
	}
	if f.tags == nil {
		return
	}
	f.tags.Clear(true)
	for _, tag := range c.Tags {
		f.tags.AddItem(tag, true)
	}
}

// Reset empties every scalar control, clears the tag widget and
// triggers exactly one form submission. Used by the clear-filters
// action.
func (f *Form) Reset() {
	for _, id := range ScalarControlIDs {
		f.setControl(id, "")
	}
	if f.tags != nil {
		f.tags.Clear(true)
	}
	if f.submit != nil {
		f.submit()
	}
}

func (f *Form) setControl(id, value string) {
	if ctl, ok := f.controls[id]; ok {
		ctl.Value = value
	}
}
