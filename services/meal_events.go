package services

import (
	"context"
	"time"

	"github.com/luislong0/daily-diet-api/models"
	"github.com/luislong0/daily-diet-api/utils"
)

const (
	MealCreated = "meal.created"
	MealUpdated = "meal.updated"
	MealDeleted = "meal.deleted"
)

type MealEvent struct {
	Kind   string      `json:"kind"`
	UserID string      `json:"userId"`
	Meal   models.Meal `json:"meal"`
	At     time.Time   `json:"at"`
}

// MealEventSink receives every meal write.
type MealEventSink interface {
	PublishMealEvent(ctx context.Context, ev MealEvent) error
}

// MealEventBus fans meal events out to its sinks. A failing sink is logged
// and never fails the write that produced the event.
type MealEventBus struct {
	sinks []MealEventSink
}

func NewMealEventBus(sinks ...MealEventSink) *MealEventBus {
	b := &MealEventBus{}
	for _, s := range sinks {
		if s != nil {
			b.sinks = append(b.sinks, s)
		}
	}
	return b
}

func (b *MealEventBus) Publish(ctx context.Context, ev MealEvent) {
	if b == nil {
		return
	}
	for _, s := range b.sinks {
		if err := s.PublishMealEvent(ctx, ev); err != nil {
			utils.LoggerFromContext(ctx).Warn("meal event publish failed",
				"kind", ev.Kind, "meal_id", ev.Meal.ID, "error", err)
		}
	}
}
