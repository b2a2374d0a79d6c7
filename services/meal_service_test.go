package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealServiceCreate(t *testing.T) {
	h := newHarness(t, nil)
	u := h.user(t, "ana")

	m, err := h.meals.Create(context.Background(), CreateMealInput{
		Name:        "Lunch",
		Description: "rice and beans",
		IsInDiet:    true,
		UserID:      u.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, u.ID, m.UserID)
	assert.True(t, m.IsInDiet)
	assert.Equal(t, m.CreatedAt, m.OccurredAt)
	assert.Equal(t, []string{MealCreated}, h.sink.kinds())
}

func TestMealServiceCreateWithDateTime(t *testing.T) {
	h := newHarness(t, nil)
	u := h.user(t, "ana")

	m, err := h.meals.Create(context.Background(), CreateMealInput{
		Name: "Breakfast", Description: "eggs", IsInDiet: true, UserID: u.ID,
		Date: "12/03/2024", Time: "07:30",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 12, 7, 30, 0, 0, time.UTC), m.OccurredAt)
	assert.NotEqual(t, m.CreatedAt, m.OccurredAt)
}

func TestMealServiceCreateRejectsUnknownUser(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.meals.Create(context.Background(), CreateMealInput{Name: "x", Description: "y", UserID: "1b4e28ba-2fa1-11d2-883f-0016d3cca427"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, h.sink.kinds())
}

func TestMealServiceCreateRejectsBadDate(t *testing.T) {
	h := newHarness(t, nil)
	u := h.user(t, "ana")

	_, err := h.meals.Create(context.Background(), CreateMealInput{Name: "x", Description: "y", UserID: u.ID, Date: "2024-03-12", Time: "07:30"})
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestMealServiceUpdateKeepsCreatedAt(t *testing.T) {
	h := newHarness(t, nil)
	u := h.user(t, "ana")
	m := h.meal(t, u.ID, true)

	updated, err := h.meals.Update(context.Background(), UpdateMealInput{
		ID: m.ID, Name: "Dinner", Description: "salad", IsInDiet: false,
		Date: "01/02/2024", Time: "20:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dinner", updated.Name)
	assert.False(t, updated.IsInDiet)
	assert.Equal(t, m.CreatedAt, updated.CreatedAt)
	assert.Equal(t, time.Date(2024, 2, 1, 20, 0, 0, 0, time.UTC), updated.OccurredAt)

	got, err := h.meals.GetWithOwner(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", got.Name)
	assert.Equal(t, "salad", got.Description)
	assert.Equal(t, m.CreatedAt, got.CreatedAt)
	assert.Equal(t, []string{MealCreated, MealUpdated}, h.sink.kinds())
}

func TestMealServiceUpdateErrors(t *testing.T) {
	h := newHarness(t, nil)
	u := h.user(t, "ana")
	m := h.meal(t, u.ID, true)

	_, err := h.meals.Update(context.Background(), UpdateMealInput{ID: "1b4e28ba-2fa1-11d2-883f-0016d3cca427", Name: "x", Description: "y", Date: "01/02/2024", Time: "20:00"})
	assert.ErrorIs(t, err, ErrMealNotFound)

	_, err = h.meals.Update(context.Background(), UpdateMealInput{ID: "abc", Name: "x", Description: "y", Date: "01/02/2024", Time: "20:00"})
	assert.ErrorIs(t, err, ErrMealNotFound)

	_, err = h.meals.Update(context.Background(), UpdateMealInput{ID: m.ID, Name: "x", Description: "y", Date: "31/02/2024", Time: "20:00"})
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestMealServiceDelete(t *testing.T) {
	h := newHarness(t, nil)
	u := h.user(t, "ana")
	m := h.meal(t, u.ID, true)

	require.NoError(t, h.meals.Delete(context.Background(), m.ID))

	_, err := h.meals.GetWithOwner(context.Background(), m.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)

	err = h.meals.Delete(context.Background(), m.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)
	assert.Equal(t, []string{MealCreated, MealDeleted}, h.sink.kinds())
}

func TestMealServiceListByUser(t *testing.T) {
	h := newHarness(t, nil)
	ana := h.user(t, "ana")
	bia := h.user(t, "bia")

	first := h.meal(t, ana.ID, true)
	second := h.meal(t, ana.ID, false)
	h.meal(t, bia.ID, true)

	rows, err := h.meals.ListByUser(context.Background(), ana.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, second.ID, rows[1].ID)
	for _, r := range rows {
		assert.Equal(t, "ana", r.UserName)
		assert.Equal(t, "bio", r.Bio)
		assert.Equal(t, "https://img/ana", r.PhotoURL)
	}

	empty := h.user(t, "cid")
	rows, err = h.meals.ListByUser(context.Background(), empty.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = h.meals.ListByUser(context.Background(), "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMealServiceSinkFailureDoesNotFailWrite(t *testing.T) {
	h := newHarness(t, nil)
	h.sink.err = errors.New("broker down")
	u := h.user(t, "ana")

	m, err := h.meals.Create(context.Background(), CreateMealInput{Name: "x", Description: "y", IsInDiet: true, UserID: u.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
}

func TestMealServiceCacheFailureDoesNotFailWrite(t *testing.T) {
	h := newHarness(t, failingCache{})
	u := h.user(t, "ana")

	m := h.meal(t, u.ID, true)
	require.NoError(t, h.meals.Delete(context.Background(), m.ID))
}
