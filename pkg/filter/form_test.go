package filter

import (
	"reflect"
	"testing"
)

type fakeTagWidget struct {
	items   []string
	clears  int
	silent  bool
	persist int
}

func (w *fakeTagWidget) Clear(silent bool) {
	w.items = nil
	w.clears++
	w.silent = silent
	if !silent {
		w.persist++
	}
}

func (w *fakeTagWidget) AddItem(value string, silent bool) {
	w.items = append(w.items, value)
	if !silent {
		w.persist++
	}
}

func newTestForm(widget TagWidget, submit func()) *Form {
	controls := map[string]*Control{}
	for _, id := range ScalarControlIDs {
		controls[id] = &Control{}
	}
	return NewForm(controls, widget, submit)
}

func TestFormSyncWritesScalars(t *testing.T) {
	form := newTestForm(nil, nil)
	form.Sync(Criteria{MealType: "lunch", StartDate: "2026-01-05"})

	if got := form.ControlValue(ParamMealType); got != "lunch" {
		t.Fatalf("meal_type: %q", got)
	}
	if got := form.ControlValue(ParamStartDate); got != "2026-01-05" {
		t.Fatalf("start_date: %q", got)
	}
	if got := form.ControlValue(ParamCategory); got != "" {
		t.Fatalf("unset category should sync to empty, got %q", got)
	}
}

func TestFormSyncRoundTrip(t *testing.T) {
	orig := Criteria{
		MealType:  "dinner",
		OrderType: "dine_in",
		Category:  "dining",
		StartDate: "2026-02-01",
		EndDate:   "2026-02-28",
	}
	form := newTestForm(nil, nil)
	form.Sync(Decode(orig.Encode()))

	for _, id := range ScalarControlIDs {
		if got := form.ControlValue(id); got != orig.Scalar(id) {
			t.Fatalf("control %s: expected %q, got %q", id, orig.Scalar(id), got)
		}
	}
}

func TestFormSyncTagsSilentAndOrdered(t *testing.T) {
	widget := &fakeTagWidget{items: []string{"stale"}}
	form := newTestForm(widget, nil)
	form.Sync(Criteria{Tags: []string{"thai", "spicy", "cheap"}})

	if widget.clears != 1 {
		t.Fatalf("expected one clear, got %d", widget.clears)
	}
	if !reflect.DeepEqual(widget.items, []string{"thai", "spicy", "cheap"}) {
		t.Fatalf("unexpected widget items: %#v", widget.items)
	}
	if widget.persist != 0 {
		t.Fatalf("silent mode must not trigger widget persistence, got %d", widget.persist)
	}
}

func TestFormSyncMissingControlsNoPanic(t *testing.T) {
	form := NewForm(nil, nil, nil)
	form.Sync(Criteria{MealType: "lunch", Tags: []string{"a"}})
	form.Reset()
}

func TestFormResetClearsAndSubmitsOnce(t *testing.T) {
	widget := &fakeTagWidget{items: []string{"thai"}}
	submits := 0
	form := newTestForm(widget, func() { submits++ })

	form.Sync(Criteria{MealType: "lunch", OrderType: "takeout", Category: "dining", StartDate: "2026-01-01", EndDate: "2026-01-31"})
	form.Reset()

	for _, id := range ScalarControlIDs {
		if got := form.ControlValue(id); got != "" {
			t.Fatalf("control %s not reset: %q", id, got)
		}
	}
	if len(widget.items) != 0 {
		t.Fatalf("widget not cleared: %#v", widget.items)
	}
	if submits != 1 {
		t.Fatalf("expected exactly one submission, got %d", submits)
	}
}
