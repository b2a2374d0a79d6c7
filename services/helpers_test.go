package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luislong0/daily-diet-api/models"
	"github.com/luislong0/daily-diet-api/store"
)

type recordingSink struct {
	mu     sync.Mutex
	events []MealEvent
	err    error
}

func (r *recordingSink) PublishMealEvent(_ context.Context, ev MealEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingSink) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

// stepClock advances one minute on every call so creation order is total.
type stepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Minute)
	return c.cur
}

type harness struct {
	store *store.MemoryStore
	users *UserService
	meals *MealService
	stats *StatsService
	sink  *recordingSink
}

func newHarness(t *testing.T, cache StatsCache) *harness {
	t.Helper()
	st := store.NewMemoryStore()
	sink := &recordingSink{}
	clock := &stepClock{cur: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}

	users := NewUserService(st, nil)
	users.now = clock.Now
	meals := NewMealService(users, st, cache, NewMealEventBus(sink), time.UTC)
	meals.now = clock.Now

	return &harness{
		store: st,
		users: users,
		meals: meals,
		stats: NewStatsService(users, st, cache),
		sink:  sink,
	}
}

func (h *harness) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := h.users.Create(context.Background(), CreateUserInput{Name: name, Bio: "bio", PhotoURL: "https://img/" + name})
	require.NoError(t, err)
	return u
}

func (h *harness) meal(t *testing.T, userID string, inDiet bool) *models.Meal {
	t.Helper()
	m, err := h.meals.Create(context.Background(), CreateMealInput{Name: "meal", Description: "desc", IsInDiet: inDiet, UserID: userID})
	require.NoError(t, err)
	return m
}

type failingCache struct{}

var errCacheDown = errors.New("cache down")

func (failingCache) Version(context.Context, string) (int64, error) { return 0, errCacheDown }
func (failingCache) Get(context.Context, string, int64) (*MealStats, bool, error) {
	return nil, false, errCacheDown
}
func (failingCache) Set(context.Context, string, int64, MealStats) error { return errCacheDown }
func (failingCache) Invalidate(context.Context, string) error { return errCacheDown }
