package models

import "time"

type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Bio       string    `gorm:"not null" json:"bio"`
	PhotoURL  string    `gorm:"column:photo_url;not null" json:"photoUrl"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
