package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/luislong0/daily-diet-api/models"
	"github.com/luislong0/daily-diet-api/store"
	"github.com/luislong0/daily-diet-api/utils"
)

type MealService struct {
	users  *UserService
	store  store.Store
	cache  StatsCache
	events *MealEventBus
	loc    *time.Location
	now    func() time.Time
}

// NewMealService builds the meal service. loc is the timezone caller-supplied
// dates are interpreted in; cache and events may be nil.
func NewMealService(users *UserService, st store.Store, cache StatsCache, events *MealEventBus, loc *time.Location) *MealService {
	if cache == nil {
		cache = NoopStatsCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &MealService{users: users, store: st, cache: cache, events: events, loc: loc, now: time.Now}
}

type CreateMealInput struct {
	Name        string
	Description string
	IsInDiet    bool
	UserID      string
	// Date and Time are optional; when both are empty the meal occurs now.
	Date string
	Time string
}

type UpdateMealInput struct {
	ID          string
	Name        string
	Description string
	IsInDiet    bool
	Date        string
	Time        string
}

// ListByUser returns the user's meals oldest first, each joined with owner fields.
func (s *MealService) ListByUser(ctx context.Context, userID string) ([]models.MealWithOwner, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListMealsWithOwner(ctx, userID)
}

func (s *MealService) GetWithOwner(ctx context.Context, id string) (*models.MealWithOwner, error) {
	if !isUUID(id) {
		return nil, ErrMealNotFound
	}
	row, err := s.store.GetMealWithOwner(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *MealService) Create(ctx context.Context, in CreateMealInput) (*models.Meal, error) {
	if _, err := s.users.Get(ctx, in.UserID); err != nil {
		return nil, err
	}

	now := storeTime(s.now())
	occurredAt := now
	if in.Date != "" || in.Time != "" {
		t, err := utils.ParseMealDateTime(in.Date, in.Time, s.loc)
		if err != nil {
			return nil, err
		}
		occurredAt = storeTime(t)
	}

	meal := &models.Meal{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		IsInDiet:    in.IsInDiet,
		UserID:      in.UserID,
		CreatedAt:   now,
		OccurredAt:  occurredAt,
	}
	if err := s.store.CreateMeal(ctx, meal); err != nil {
		// the owner can vanish between the check and the insert
		if errors.Is(err, store.ErrMissingReference) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.afterWrite(ctx, MealCreated, *meal)
	return meal, nil
}

// Update replaces name, description, diet flag and occurrence time. The
// creation timestamp and owner never change.
func (s *MealService) Update(ctx context.Context, in UpdateMealInput) (*models.Meal, error) {
	occurredAt, err := utils.ParseMealDateTime(in.Date, in.Time, s.loc)
	if err != nil {
		return nil, err
	}

	meal, err := s.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	meal.Name = in.Name
	meal.Description = in.Description
	meal.IsInDiet = in.IsInDiet
	meal.OccurredAt = storeTime(occurredAt)

	if err := s.store.UpdateMeal(ctx, meal); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}

	s.afterWrite(ctx, MealUpdated, *meal)
	return meal, nil
}

func (s *MealService) Delete(ctx context.Context, id string) error {
	meal, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMeal(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMealNotFound
		}
		return err
	}

	s.afterWrite(ctx, MealDeleted, *meal)
	return nil
}

func (s *MealService) get(ctx context.Context, id string) (*models.Meal, error) {
	if !isUUID(id) {
		return nil, ErrMealNotFound
	}
	meal, err := s.store.GetMeal(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return meal, nil
}

func (s *MealService) afterWrite(ctx context.Context, kind string, meal models.Meal) {
	log := utils.LoggerFromContext(ctx)
	log.Info(kind, "meal_id", meal.ID, "user_id", meal.UserID)

	if err := s.cache.Invalidate(ctx, meal.UserID); err != nil {
		log.Warn("stats cache invalidate failed", "user_id", meal.UserID, "error", err)
	}
	s.events.Publish(ctx, MealEvent{Kind: kind, UserID: meal.UserID, Meal: meal, At: s.now().UTC()})
}
