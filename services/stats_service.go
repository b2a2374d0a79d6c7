package services

import (
	"context"

	"github.com/luislong0/daily-diet-api/models"
	"github.com/luislong0/daily-diet-api/store"
	"github.com/luislong0/daily-diet-api/utils"
)

type MealStats struct {
	MealsCount     int `json:"mealsCount"`
	InDietCount    int `json:"inDietCount"`
	NotInDietCount int `json:"notInDietCount"`
	BestSequence   int `json:"bestSequence"`
}

type StatsService struct {
	users *UserService
	store store.Store
	cache StatsCache
}

// NewStatsService builds the statistics service. A nil cache disables caching.
func NewStatsService(users *UserService, st store.Store, cache StatsCache) *StatsService {
	if cache == nil {
		cache = NoopStatsCache{}
	}
	return &StatsService{users: users, store: st, cache: cache}
}

// ForUser returns the meal statistics of an existing user.
func (s *StatsService) ForUser(ctx context.Context, userID string) (*MealStats, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	log := utils.LoggerFromContext(ctx)
	// the version is read before the meals so a concurrent write moves it on
	version, err := s.cache.Version(ctx, userID)
	useCache := err == nil
	if err != nil {
		log.Warn("stats cache version read failed", "user_id", userID, "error", err)
	}
	if useCache {
		if cached, ok, err := s.cache.Get(ctx, userID, version); err != nil {
			log.Warn("stats cache read failed", "user_id", userID, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	meals, err := s.store.ListMealsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := ComputeMealStats(meals)

	if useCache {
		if err := s.cache.Set(ctx, userID, version, stats); err != nil {
			log.Warn("stats cache write failed", "user_id", userID, "error", err)
		}
	}
	return &stats, nil
}

// ComputeMealStats expects meals in chronological order.
func ComputeMealStats(meals []models.Meal) MealStats {
	flags := make([]bool, len(meals))
	stats := MealStats{MealsCount: len(meals)}
	for i, m := range meals {
		flags[i] = m.IsInDiet
		if m.IsInDiet {
			stats.InDietCount++
		} else {
			stats.NotInDietCount++
		}
	}
	stats.BestSequence = BestInDietSequence(flags)
	return stats
}

// BestInDietSequence returns the longest run of consecutive true values, 0 when there is none.
func BestInDietSequence(inDiet []bool) int {
	best, run := 0, 0
	for _, in := range inDiet {
		if in {
			run++
			continue
		}
		best = max(best, run)
		run = 0
	}
	return max(best, run)
}
