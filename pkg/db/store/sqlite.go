package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/db/migrations"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/db/models"
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/filter"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dateLayout is the wire format of the start_date/end_date filter
// parameters. Values that fail to parse are treated as unset.
const dateLayout = "2006-01-02"

// SQLiteStore implements ExpenseStore using SQLite
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path         string
	MaxOpenConns int
	LogLevel     logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed expense store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(1) // SQLite only supports 1 writer
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs database migrations
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return migrations.NewMigrator(s.db).Migrate(ctx)
}

// Health checks database connectivity
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Restaurant operations

func (s *SQLiteStore) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	return s.db.WithContext(ctx).Create(restaurant).Error
}

func (s *SQLiteStore) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *SQLiteStore) ListRestaurants(ctx context.Context, limit, offset int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	query := s.db.WithContext(ctx).Order("name")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&restaurants).Error
	return restaurants, err
}

func (s *SQLiteStore) UpdateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	return s.db.WithContext(ctx).Save(restaurant).Error
}

func (s *SQLiteStore) DeleteRestaurant(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Restaurant{}, id).Error
}

// Expense operations

func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	return s.db.WithContext(ctx).Create(expense).Error
}

func (s *SQLiteStore) GetExpense(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Tags").
		Where("id = ?", id).
		First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *SQLiteStore) ListExpenses(ctx context.Context, criteria filter.Criteria, limit, offset int) ([]models.Expense, error) {
	var expenses []models.Expense
	query := s.expenseQuery(ctx, criteria).
		Preload("Restaurant").
		Preload("Tags").
		Order("spent_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&expenses).Error
	return expenses, err
}

func (s *SQLiteStore) CountExpenses(ctx context.Context, criteria filter.Criteria) (int64, error) {
	var count int64
	err := s.expenseQuery(ctx, criteria).Model(&models.Expense{}).
		Distinct("expenses.id").
		Count(&count).Error
	return count, err
}

// expenseQuery translates filter criteria into a gorm query. Sentinel
// scalar values have already been normalized away by Criteria.Scalar;
// unparsable date bounds are skipped.
func (s *SQLiteStore) expenseQuery(ctx context.Context, criteria filter.Criteria) *gorm.DB {
	query := s.db.WithContext(ctx)

	if v := criteria.Scalar(filter.ParamMealType); v != "" {
		query = query.Where("expenses.meal_type = ?", v)
	}
	if v := criteria.Scalar(filter.ParamOrderType); v != "" {
		query = query.Where("expenses.order_type = ?", v)
	}
	if v := criteria.Scalar(filter.ParamCategory); v != "" {
		query = query.Where("expenses.category = ?", v)
	}
	if v := criteria.Scalar(filter.ParamStartDate); v != "" {
		if start, err := time.Parse(dateLayout, v); err == nil {
			query = query.Where("expenses.spent_at >= ?", start)
		}
	}
	if v := criteria.Scalar(filter.ParamEndDate); v != "" {
		if end, err := time.Parse(dateLayout, v); err == nil {
			// Inclusive upper bound for the whole day
			query = query.Where("expenses.spent_at < ?", end.AddDate(0, 0, 1))
		}
	}
	if len(criteria.Tags) > 0 {
		query = query.
			Joins("JOIN expense_tags ON expense_tags.expense_id = expenses.id").
			Joins("JOIN tags ON tags.id = expense_tags.tag_id").
			Where("tags.name IN ?", criteria.Tags).
			Distinct("expenses.*")
	}

	return query
}

func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	return s.db.WithContext(ctx).Save(expense).Error
}

func (s *SQLiteStore) DeleteExpense(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Expense{}, id).Error
}

// Tag operations

func (s *SQLiteStore) GetOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *SQLiteStore) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Order("name").Find(&tags).Error
	return tags, err
}

func (s *SQLiteStore) TagExpense(ctx context.Context, expenseID uint, tagNames []string) error {
	expense, err := s.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}

	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag, err := s.GetOrCreateTag(ctx, name)
		if err != nil {
			return err
		}
		tags = append(tags, *tag)
	}

	return s.db.WithContext(ctx).Model(expense).Association("Tags").Replace(tags)
}

// Saved filter operations

func (s *SQLiteStore) CreateSavedFilter(ctx context.Context, saved *models.SavedFilter) error {
	return s.db.WithContext(ctx).Create(saved).Error
}

func (s *SQLiteStore) GetSavedFilter(ctx context.Context, name string) (*models.SavedFilter, error) {
	var saved models.SavedFilter
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *SQLiteStore) ListSavedFilters(ctx context.Context) ([]models.SavedFilter, error) {
	var filters []models.SavedFilter
	err := s.db.WithContext(ctx).Order("name").Find(&filters).Error
	return filters, err
}

func (s *SQLiteStore) DeleteSavedFilter(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.SavedFilter{}, id).Error
}

// Preference operations

// GetPreference returns "" without an error when the preference has
// never been written, matching the prefs channel contract.
func (s *SQLiteStore) GetPreference(ctx context.Context, sessionID, name string) (string, error) {
	var pref models.SessionPreference
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND name = ?", sessionID, name).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return pref.Value, nil
}

func (s *SQLiteStore) SetPreference(ctx context.Context, sessionID, name, value string) error {
	pref := models.SessionPreference{SessionID: sessionID, Name: name}
	return s.db.WithContext(ctx).
		Where(&pref).
		Assign(models.SessionPreference{Value: value}).
		FirstOrCreate(&pref).Error
}
