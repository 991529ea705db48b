package store

import (
	"context"

	"github.com/nivecher/meal-expense-tracker-sub003/pkg/db/models"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/filter"
)

// ExpenseStore defines the interface for database operations
type ExpenseStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Restaurant operations
	CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error
	GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error)
	ListRestaurants(ctx context.Context, limit, offset int) ([]models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, restaurant *models.Restaurant) error
	DeleteRestaurant(ctx context.Context, id uint) error

	// Expense operations
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id uint) (*models.Expense, error)
	ListExpenses(ctx context.Context, criteria filter.Criteria, limit, offset int) ([]models.Expense, error)
	CountExpenses(ctx context.Context, criteria filter.Criteria) (int64, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id uint) error

	// Tag operations
	GetOrCreateTag(ctx context.Context, name string) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	TagExpense(ctx context.Context, expenseID uint, tagNames []string) error

	// Saved filter operations
	CreateSavedFilter(ctx context.Context, saved *models.SavedFilter) error
	GetSavedFilter(ctx context.Context, name string) (*models.SavedFilter, error)
	ListSavedFilters(ctx context.Context) ([]models.SavedFilter, error)
	DeleteSavedFilter(ctx context.Context, id uint) error

	// Preference operations (the prefs session channel backend)
	GetPreference(ctx context.Context, sessionID, name string) (string, error)
	SetPreference(ctx context.Context, sessionID, name, value string) error
}
