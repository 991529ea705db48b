package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/nivecher/meal-expense-tracker-sub003/pkg/db/models"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/export"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/filter"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/prefs"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/view"
)

// Fixed option sets for the scalar filter selects.
var (
	mealTypes  = []string{"breakfast", "lunch", "dinner", "snack"}
	orderTypes = []string{"dine_in", "takeout", "delivery"}
	categories = []string{"dining", "grocery", "travel", "entertainment"}
)

// tagSelection is the server-side rendering of the tag widget: the
// form synchronizer pushes the criteria's tags through it and the
// template renders the resulting selection.
type tagSelection struct {
	items []string
}

func (t *tagSelection) Clear(silent bool) { t.items = nil }

func (t *tagSelection) AddItem(value string, silent bool) {
	t.items = append(t.items, value)
}

// expensesPage is the template data for the expense list.
type expensesPage struct {
	Expenses   []models.Expense
	Indicators filter.Indicators

	Form         map[string]string
	SelectedTags map[string]bool
	AllTags      []models.Tag
	SavedFilters []models.SavedFilter

	MealTypes  []string
	OrderTypes []string
	Categories []string

	CardVisible  bool
	TableVisible bool

	Page       int
	TotalPages int
	TotalCount int64
	RawQuery   string
}

// restaurantsPage is the template data for the restaurant list.
type restaurantsPage struct {
	Restaurants  []models.Restaurant
	CardVisible  bool
	TableVisible bool
	Page         int
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	store := s.prefStore(w, r)
	criteria := filter.Decode(r.URL.Query())

	pageSize := s.pageSize(store, prefs.ExpensePageSizeKey, r.URL.Query().Get("page_size"))
	page := s.currentPage(store, prefs.ExpensePageKey, r.URL.Query().Get("page"))

	mode := s.resolveViewMode(store, prefs.ExpenseViewKey)

	// Push the decoded criteria through the form model the template
	// renders from.
	controls := map[string]*filter.Control{}
	for _, id := range filter.ScalarControlIDs {
		controls[id] = &filter.Control{}
	}
	widget := &tagSelection{}
	form := filter.NewForm(controls, widget, nil)
	form.Sync(criteria)

	formValues := map[string]string{}
	for _, id := range filter.ScalarControlIDs {
		formValues[id] = form.ControlValue(id)
	}
	selected := map[string]bool{}
	for _, tag := range widget.items {
		selected[tag] = true
	}

	expenses, err := s.store.ListExpenses(ctx, criteria, pageSize, (page-1)*pageSize)
	if err != nil {
		s.log.Error("failed to list expenses: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	total, err := s.store.CountExpenses(ctx, criteria)
	if err != nil {
		s.log.Error("failed to count expenses: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	allTags, err := s.store.ListTags(ctx)
	if err != nil {
		s.log.Error("failed to list tags: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	savedFilters, err := s.store.ListSavedFilters(ctx)
	if err != nil {
		s.log.Error("failed to list saved filters: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	data := expensesPage{
		Expenses:     expenses,
		Indicators:   criteria.Indicators(),
		Form:         formValues,
		SelectedTags: selected,
		AllTags:      allTags,
		SavedFilters: savedFilters,
		MealTypes:    mealTypes,
		OrderTypes:   orderTypes,
		Categories:   categories,
		CardVisible:  mode == view.ModeCard,
		TableVisible: mode == view.ModeTable,
		Page:         page,
		TotalPages:   totalPages,
		TotalCount:   total,
		RawQuery:     criteria.Encode().Encode(),
	}

	s.render(w, expensesTmpl, data)
}

func (s *Server) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	store := s.prefStore(w, r)

	pageSize := s.pageSize(store, prefs.RestaurantPageSizeKey, r.URL.Query().Get("page_size"))
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	mode := s.resolveViewMode(store, prefs.RestaurantViewKey)

	restaurants, err := s.store.ListRestaurants(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		s.log.Error("failed to list restaurants: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := restaurantsPage{
		Restaurants:  restaurants,
		CardVisible:  mode == view.ModeCard,
		TableVisible: mode == view.ModeTable,
		Page:         page,
	}

	s.render(w, restaurantsTmpl, data)
}

// handleClearFilters resets every filter control and submits once,
// which on the server side is the redirect back to the unfiltered
// list.
func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	controls := map[string]*filter.Control{}
	for _, id := range filter.ScalarControlIDs {
		controls[id] = &filter.Control{Value: r.FormValue(id)}
	}
	widget := &tagSelection{}
	form := filter.NewForm(controls, widget, func() {
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
	})
	form.Reset()
}

func (s *Server) handleSaveFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	if name == "" {
		http.Error(w, "missing filter name", http.StatusBadRequest)
		return
	}

	criteria := filter.Decode(r.Form)
	saved := &models.SavedFilter{
		Name:        name,
		Query:       criteria.Encode().Encode(),
		Description: r.FormValue("description"),
	}
	if err := s.store.CreateSavedFilter(r.Context(), saved); err != nil {
		s.log.Error("failed to save filter %q: %v", name, err)
		http.Error(w, "failed to save filter", http.StatusConflict)
		return
	}

	s.redirectToExpenses(w, r, saved.Query)
}

func (s *Server) handleApplyFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing filter name", http.StatusBadRequest)
		return
	}

	saved, err := s.store.GetSavedFilter(r.Context(), name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.redirectToExpenses(w, r, saved.Query)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	criteria := filter.Decode(r.URL.Query())

	expenses, err := s.store.ListExpenses(r.Context(), criteria, 0, 0)
	if err != nil {
		s.log.Error("failed to list expenses for export: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.xlsx"`)
	if err := export.WriteExpensesXLSX(w, expenses); err != nil {
		s.log.Error("failed to write export: %v", err)
	}
}

// handlePreferences persists a single named preference through both
// channels. View-mode values are normalized before they are stored so
// the legacy "compact" value never round-trips.
func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	value := r.FormValue("value")

	if !prefs.KnownName(name) {
		http.Error(w, "unknown preference", http.StatusBadRequest)
		return
	}
	if name == prefs.ExpenseViewKey || name == prefs.RestaurantViewKey {
		mode, ok := view.Normalize(value)
		if !ok {
			http.Error(w, "invalid view mode", http.StatusBadRequest)
			return
		}
		value = string(mode)
	}

	s.prefStore(w, r).Set(name, value)
	w.WriteHeader(http.StatusNoContent)
}

// resolveViewMode runs the view-toggle controller against the stored
// preference, falling back to the configured default mode.
func (s *Server) resolveViewMode(store *prefs.Store, prefName string) view.Mode {
	cardControl := &view.Control{ID: view.CardControlID}
	tableControl := &view.Control{ID: view.TableControlID}
	if defaultMode, ok := view.Normalize(s.cfg.Preferences.DefaultViewMode); ok && defaultMode == view.ModeTable {
		tableControl.Checked = true
	} else {
		cardControl.Checked = true
	}

	controller := view.NewController(store, prefName,
		cardControl, tableControl,
		&view.Panel{ID: view.CardContainerID},
		&view.Panel{ID: view.TableContainerID})
	return controller.Init()
}

// pageSize resolves the effective page size: an explicit query value
// wins and is persisted, else the stored preference, else the
// configured default. Malformed values fall back rather than fail.
func (s *Server) pageSize(store *prefs.Store, prefName, queryValue string) int {
	size := s.cfg.Preferences.DefaultPageSize
	if stored, ok := store.Get(prefName); ok {
		if n, err := strconv.Atoi(stored); err == nil && n > 0 {
			size = n
		}
	}
	if queryValue != "" {
		if n, err := strconv.Atoi(queryValue); err == nil && n > 0 {
			size = n
			store.Set(prefName, strconv.Itoa(n))
		}
	}
	return size
}

// currentPage resolves the page number the same way and persists the
// page the user lands on.
func (s *Server) currentPage(store *prefs.Store, prefName, queryValue string) int {
	page := 1
	if stored, ok := store.Get(prefName); ok {
		if n, err := strconv.Atoi(stored); err == nil && n > 0 {
			page = n
		}
	}
	if queryValue != "" {
		if n, err := strconv.Atoi(queryValue); err == nil && n > 0 {
			page = n
		}
	}
	store.Set(prefName, strconv.Itoa(page))
	return page
}

func (s *Server) redirectToExpenses(w http.ResponseWriter, r *http.Request, rawQuery string) {
	target := "/expenses"
	if rawQuery != "" {
		target = fmt.Sprintf("/expenses?%s", rawQuery)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// render executes into a buffer first so a template failure never
// emits a half-written page.
func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.log.Error("failed to execute template: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Error("failed to write response: %v", err)
	}
}
