package store

import (
	"context"
	"sort"
	"sync"

	"github.com/luislong0/daily-diet-api/models"
)

// MemoryStore keeps users and meals in-process. It enforces the same unique
// name and foreign key rules as the Postgres schema.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]models.User
	userOrder []string
	names     map[string]string // name -> user ID
	meals     map[string]models.Meal
	mealOrder []string
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]models.User),
		names: make(map[string]string),
		meals: make(map[string]models.Meal),
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.names[u.Name]; taken {
		return ErrDuplicate
	}
	if _, exists := m.users[u.ID]; exists {
		return ErrDuplicate
	}
	m.users[u.ID] = *u
	m.names[u.Name] = u.ID
	m.userOrder = append(m.userOrder, u.ID)
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// ListUsers returns users in insertion order.
func (m *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]models.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		res = append(res, m.users[id])
	}
	return res, nil
}

func (m *MemoryStore) CreateMeal(_ context.Context, meal *models.Meal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[meal.UserID]; !ok {
		return ErrMissingReference
	}
	if _, exists := m.meals[meal.ID]; exists {
		return ErrDuplicate
	}
	m.meals[meal.ID] = *meal
	m.mealOrder = append(m.mealOrder, meal.ID)
	return nil
}

func (m *MemoryStore) GetMeal(_ context.Context, id string) (*models.Meal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	meal, ok := m.meals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &meal, nil
}

func (m *MemoryStore) GetMealWithOwner(_ context.Context, id string) (*models.MealWithOwner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	meal, ok := m.meals[id]
	if !ok {
		return nil, ErrNotFound
	}
	owner, ok := m.users[meal.UserID]
	if !ok {
		// inner join semantics
		return nil, ErrNotFound
	}
	row := withOwner(meal, owner)
	return &row, nil
}

func (m *MemoryStore) ListMealsByUser(_ context.Context, userID string) ([]models.Meal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mealsOf(userID), nil
}

func (m *MemoryStore) ListMealsWithOwner(_ context.Context, userID string) ([]models.MealWithOwner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owner, ok := m.users[userID]
	if !ok {
		return []models.MealWithOwner{}, nil
	}
	meals := m.mealsOf(userID)
	res := make([]models.MealWithOwner, 0, len(meals))
	for _, meal := range meals {
		res = append(res, withOwner(meal, owner))
	}
	return res, nil
}

func (m *MemoryStore) UpdateMeal(_ context.Context, meal *models.Meal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.meals[meal.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Name = meal.Name
	cur.Description = meal.Description
	cur.IsInDiet = meal.IsInDiet
	cur.OccurredAt = meal.OccurredAt
	m.meals[meal.ID] = cur
	return nil
}

func (m *MemoryStore) DeleteMeal(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.meals[id]; !ok {
		return ErrNotFound
	}
	delete(m.meals, id)
	for i, mid := range m.mealOrder {
		if mid == id {
			m.mealOrder = append(m.mealOrder[:i], m.mealOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// mealsOf must be called with the lock held.
func (m *MemoryStore) mealsOf(userID string) []models.Meal {
	res := make([]models.Meal, 0)
	for _, id := range m.mealOrder {
		if meal := m.meals[id]; meal.UserID == userID {
			res = append(res, meal)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].OccurredAt.Equal(res[j].OccurredAt) {
			return res[i].OccurredAt.Before(res[j].OccurredAt)
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res
}

func withOwner(meal models.Meal, owner models.User) models.MealWithOwner {
	return models.MealWithOwner{
		Meal:     meal,
		UserName: owner.Name,
		Bio:      owner.Bio,
		PhotoURL: owner.PhotoURL,
	}
}
