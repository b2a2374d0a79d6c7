package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luislong0/daily-diet-api/models"
)

func seedUser(t *testing.T, s *MemoryStore, id, name string) models.User {
	t.Helper()
	u := models.User{ID: id, Name: name, Bio: "bio " + name, PhotoURL: "https://img/" + name, CreatedAt: time.Now()}
	require.NoError(t, s.CreateUser(context.Background(), &u))
	return u
}

func TestMemoryStoreRejectsDuplicateNames(t *testing.T) {
	s := NewMemoryStore()
	seedUser(t, s, "u-1", "ana")

	err := s.CreateUser(context.Background(), &models.User{ID: "u-2", Name: "ana"})
	assert.ErrorIs(t, err, ErrDuplicate)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMemoryStoreMealRequiresOwner(t *testing.T) {
	s := NewMemoryStore()
	err := s.CreateMeal(context.Background(), &models.Meal{ID: "m-1", UserID: "ghost"})
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestMemoryStoreListsMealsChronologically(t *testing.T) {
	s := NewMemoryStore()
	owner := seedUser(t, s, "u-1", "ana")
	seedUser(t, s, "u-2", "bia")
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	for _, m := range []models.Meal{
		{ID: "late", UserID: "u-1", OccurredAt: base.Add(2 * time.Hour), CreatedAt: base},
		{ID: "early", UserID: "u-1", OccurredAt: base, CreatedAt: base.Add(time.Minute)},
		{ID: "other", UserID: "u-2", OccurredAt: base, CreatedAt: base},
		{ID: "tie", UserID: "u-1", OccurredAt: base, CreatedAt: base.Add(2 * time.Minute)},
	} {
		m := m
		require.NoError(t, s.CreateMeal(ctx, &m))
	}

	rows, err := s.ListMealsWithOwner(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"early", "tie", "late"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	for _, r := range rows {
		assert.Equal(t, owner.Name, r.UserName)
		assert.Equal(t, owner.Bio, r.Bio)
		assert.Equal(t, owner.PhotoURL, r.PhotoURL)
	}
}

func TestMemoryStoreUpdateKeepsCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	seedUser(t, s, "u-1", "ana")
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateMeal(ctx, &models.Meal{ID: "m-1", UserID: "u-1", Name: "a", CreatedAt: created, OccurredAt: created}))

	occurred := created.Add(48 * time.Hour)
	require.NoError(t, s.UpdateMeal(ctx, &models.Meal{ID: "m-1", Name: "b", Description: "d", IsInDiet: true, OccurredAt: occurred, CreatedAt: occurred}))

	got, err := s.GetMeal(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)
	assert.True(t, got.IsInDiet)
	assert.True(t, got.OccurredAt.Equal(occurred))
	assert.True(t, got.CreatedAt.Equal(created))
	assert.Equal(t, "u-1", got.UserID)

	assert.ErrorIs(t, s.UpdateMeal(ctx, &models.Meal{ID: "nope"}), ErrNotFound)
}

func TestMemoryStoreDeleteMeal(t *testing.T) {
	s := NewMemoryStore()
	seedUser(t, s, "u-1", "ana")
	ctx := context.Background()
	require.NoError(t, s.CreateMeal(ctx, &models.Meal{ID: "m-1", UserID: "u-1"}))

	require.NoError(t, s.DeleteMeal(ctx, "m-1"))
	_, err := s.GetMealWithOwner(ctx, "m-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteMeal(ctx, "m-1"), ErrNotFound)

	meals, err := s.ListMealsByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, meals)
}
