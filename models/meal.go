package models

import "time"

// One logged meal. CreatedAt is set once on insert; OccurredAt is when the
// meal was eaten and is what chronological listings and streaks use.
type Meal struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	IsInDiet    bool      `gorm:"column:is_in_diet;not null" json:"isInDiet"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	OccurredAt  time.Time `gorm:"not null" json:"occurred_at"`
}

// MealWithOwner is a meal row joined with the owner's public fields.
type MealWithOwner struct {
	Meal
	UserName string `json:"userName"`
	Bio      string `json:"bio"`
	PhotoURL string `gorm:"column:photo_url" json:"photoUrl"`
}
