package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/luislong0/daily-diet-api/migrations"
	"github.com/luislong0/daily-diet-api/models"
)

const mealOwnerColumns = "meals.*, users.name AS user_name, users.bio, users.photo_url"

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an already opened *gorm.DB.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GormConfig is the configuration every GormStore is opened with. Errors are
// translated so unique and foreign key violations surface as gorm sentinels.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	}
}

// OpenPostgres connects through pgx, applies the embedded migrations and
// attaches GORM to the same pool.
func OpenPostgres(ctx context.Context, dsn string) (*GormStore, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := migrations.Up(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), GormConfig())
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return NewGormStore(db), nil
}

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *GormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *GormStore) CreateMeal(ctx context.Context, m *models.Meal) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *GormStore) GetMeal(ctx context.Context, id string) (*models.Meal, error) {
	var m models.Meal
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *GormStore) GetMealWithOwner(ctx context.Context, id string) (*models.MealWithOwner, error) {
	var rows []models.MealWithOwner
	err := s.db.WithContext(ctx).
		Table("meals").
		Select(mealOwnerColumns).
		Joins("JOIN users ON users.id = meals.user_id").
		Where("meals.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (s *GormStore) ListMealsByUser(ctx context.Context, userID string) ([]models.Meal, error) {
	meals := []models.Meal{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at ASC, created_at ASC").
		Find(&meals).Error
	if err != nil {
		return nil, translate(err)
	}
	return meals, nil
}

func (s *GormStore) ListMealsWithOwner(ctx context.Context, userID string) ([]models.MealWithOwner, error) {
	rows := []models.MealWithOwner{}
	err := s.db.WithContext(ctx).
		Table("meals").
		Select(mealOwnerColumns).
		Joins("JOIN users ON users.id = meals.user_id").
		Where("meals.user_id = ?", userID).
		Order("meals.occurred_at ASC, meals.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// UpdateMeal replaces the mutable fields. CreatedAt and UserID are never written.
func (s *GormStore) UpdateMeal(ctx context.Context, m *models.Meal) error {
	res := s.db.WithContext(ctx).
		Model(&models.Meal{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"name":        m.Name,
			"description": m.Description,
			"is_in_diet":  m.IsInDiet,
			"occurred_at": m.OccurredAt,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteMeal(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Meal{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrMissingReference, err)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
