package store

import (
	"context"
	"errors"

	"github.com/luislong0/daily-diet-api/models"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrMissingReference is returned when an insert references a row that does not exist.
	ErrMissingReference = errors.New("missing referenced record")
)

// Store defines persistence operations for users and meals.
type Store interface {
	// users
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// meals
	CreateMeal(ctx context.Context, m *models.Meal) error
	GetMeal(ctx context.Context, id string) (*models.Meal, error)
	GetMealWithOwner(ctx context.Context, id string) (*models.MealWithOwner, error)
	// ListMealsByUser returns the user's meals oldest first by OccurredAt,
	// ties broken by CreatedAt.
	ListMealsByUser(ctx context.Context, userID string) ([]models.Meal, error)
	ListMealsWithOwner(ctx context.Context, userID string) ([]models.MealWithOwner, error)
	UpdateMeal(ctx context.Context, m *models.Meal) error
	DeleteMeal(ctx context.Context, id string) error

	Close() error
}
