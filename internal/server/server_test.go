package server

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	config "github.com/nivecher/meal-expense-tracker-sub003/internal/config/server"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/db/models"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/db/store"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/log"
)

type testEnv struct {
	store  *store.SQLiteStore
	server *httptest.Server
	client *http.Client
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.GetServerDefault()
	cfg.Log.Level = "ERROR"
	cfg.Log.NoColor = true

	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "server-test.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()
	if err := st.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	srv := NewServer(&cfg, st, log.NewLoggerService("test", cfg.Log))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testEnv{store: st, server: ts, client: client}
}

func (e *testEnv) seedExpense(t *testing.T, desc, mealType, category, date string, tags ...string) {
	t.Helper()
	ctx := context.Background()
	spentAt, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	expense := &models.Expense{
		Description: desc,
		MealType:    mealType,
		OrderType:   "dine_in",
		Category:    category,
		Amount:      10,
		SpentAt:     spentAt,
	}
	if err := e.store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("create expense: %v", err)
	}
	if len(tags) > 0 {
		if err := e.store.TagExpense(ctx, expense.ID, tags); err != nil {
			t.Fatalf("tag expense: %v", err)
		}
	}
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	res, err := e.client.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return res
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	res, err := e.client.PostForm(e.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return res
}

func document(t *testing.T, res *http.Response) *goquery.Document {
	t.Helper()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

func assertPanelVisibility(t *testing.T, doc *goquery.Document, cardVisible bool) {
	t.Helper()
	card := doc.Find("#card-view-container")
	table := doc.Find("#table-view-container")
	if card.Length() != 1 || table.Length() != 1 {
		t.Fatal("expected both view containers in the page")
	}
	if card.HasClass("d-none") == !cardVisible && table.HasClass("d-none") == cardVisible {
		return
	}
	t.Fatalf("panel visibility mismatch: card d-none=%v table d-none=%v, expected cardVisible=%v",
		card.HasClass("d-none"), table.HasClass("d-none"), cardVisible)
}

func TestExpensesPageRendersFilterState(t *testing.T) {
	env := setupEnv(t)
	env.seedExpense(t, "pad thai", "lunch", "dining", "2026-01-10", "thai")
	env.seedExpense(t, "croissant", "breakfast", "dining", "2026-01-11")

	doc := document(t, env.get(t, "/expenses?meal_type=lunch&tags=thai"))

	badge := doc.Find("#expense-filter-count")
	if badge.HasClass("d-none") || strings.TrimSpace(badge.Text()) != "2" {
		t.Fatalf("expected visible badge with count 2, got class=%q text=%q",
			badge.AttrOr("class", ""), badge.Text())
	}
	status := doc.Find("#expense-filter-status-text")
	if status.HasClass("d-none") {
		t.Fatal("status region should be visible with active filters")
	}
	if got := strings.TrimSpace(doc.Find("#expense-filter-status-count").Text()); got != "2" {
		t.Fatalf("unexpected status count: %q", got)
	}

	selectedMeal := doc.Find("#meal_type option[selected]")
	if selectedMeal.AttrOr("value", "") != "lunch" {
		t.Fatalf("meal_type control not synced: %q", selectedMeal.AttrOr("value", ""))
	}
	selectedTags := doc.Find("#filterTagsInput option[selected]")
	if selectedTags.Length() != 1 || selectedTags.AttrOr("value", "") != "thai" {
		t.Fatalf("tag widget not synced, got %d selected", selectedTags.Length())
	}

	if rows := doc.Find("#table-view-container tbody tr"); rows.Length() != 1 {
		t.Fatalf("expected one filtered expense row, got %d", rows.Length())
	}
}

func TestExpensesPageNoFiltersHidesBadge(t *testing.T) {
	env := setupEnv(t)
	env.seedExpense(t, "pad thai", "lunch", "dining", "2026-01-10")

	doc := document(t, env.get(t, "/expenses?meal_type=None&category="))

	if !doc.Find("#expense-filter-count").HasClass("d-none") {
		t.Fatal("badge should be hidden when nothing is filtered")
	}
	if !doc.Find("#expense-filter-status-text").HasClass("d-none") {
		t.Fatal("status region should be hidden when nothing is filtered")
	}
	assertPanelVisibility(t, doc, true)
}

func TestViewPreferencePersistsAcrossRequests(t *testing.T) {
	env := setupEnv(t)
	env.seedExpense(t, "pad thai", "lunch", "dining", "2026-01-10")

	// First visit establishes the session; default mode is card.
	assertPanelVisibility(t, document(t, env.get(t, "/expenses")), true)

	res := env.postForm(t, "/preferences", url.Values{
		"name":  {"expense_view_preference"},
		"value": {"table"},
	})
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("unexpected preference status: %d", res.StatusCode)
	}

	assertPanelVisibility(t, document(t, env.get(t, "/expenses")), false)

	// The restaurant page keeps its own preference.
	doc := document(t, env.get(t, "/restaurants"))
	assertPanelVisibility(t, doc, true)
}

func TestLegacyCompactCookieReadsAsTable(t *testing.T) {
	env := setupEnv(t)
	env.seedExpense(t, "pad thai", "lunch", "dining", "2026-01-10")

	base, err := url.Parse(env.server.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	env.client.Jar.SetCookies(base, []*http.Cookie{
		{Name: "expense_view_preference", Value: "compact"},
	})

	res := env.get(t, "/expenses")
	var normalized bool
	for _, cookie := range res.Cookies() {
		if cookie.Name == "expense_view_preference" && cookie.Value == "table" {
			normalized = true
		}
	}
	assertPanelVisibility(t, document(t, res), false)
	if !normalized {
		t.Fatal("legacy compact value must be re-persisted as table")
	}
}

func TestClearFiltersRedirectsOnce(t *testing.T) {
	env := setupEnv(t)

	res := env.postForm(t, "/expenses/filters/clear", url.Values{
		"meal_type": {"lunch"},
		"tags":      {"thai"},
	})
	defer res.Body.Close()

	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/expenses" {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestPreferencesRejectsUnknownName(t *testing.T) {
	env := setupEnv(t)

	res := env.postForm(t, "/preferences", url.Values{
		"name":  {"session_token"},
		"value": {"x"},
	})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	res = env.postForm(t, "/preferences", url.Values{
		"name":  {"expense_view_preference"},
		"value": {"grid"},
	})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid mode, got %d", res.StatusCode)
	}
}

func TestSavedFilterSaveAndApply(t *testing.T) {
	env := setupEnv(t)

	res := env.postForm(t, "/expenses/filters/save", url.Values{
		"name":      {"thai-lunches"},
		"meal_type": {"lunch"},
		"tags":      {"thai"},
	})
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect after save, got %d", res.StatusCode)
	}

	res = env.get(t, "/expenses/filters/apply?name=thai-lunches")
	defer res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected redirect on apply, got %d", res.StatusCode)
	}
	loc := res.Header.Get("Location")
	if !strings.Contains(loc, "meal_type=lunch") || !strings.Contains(loc, "tags=thai") {
		t.Fatalf("redirect missing saved criteria: %q", loc)
	}
}

func TestExportReturnsWorkbook(t *testing.T) {
	env := setupEnv(t)
	env.seedExpense(t, "pad thai", "lunch", "dining", "2026-01-10", "thai")
	env.seedExpense(t, "sushi", "dinner", "dining", "2026-01-11")

	res := env.get(t, "/expenses/export?meal_type=lunch")
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("unexpected content type: %q", ct)
	}

	f, err := excelize.OpenReader(res.Body)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 filtered row, got %d", len(rows))
	}
	if rows[1][1] != "pad thai" {
		t.Fatalf("unexpected exported row: %#v", rows[1])
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := setupEnv(t)
	res := env.get(t, "/healthz")
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
}
