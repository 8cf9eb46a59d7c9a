package models

import "gorm.io/gorm"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Course struct {
	gorm.Model
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Difficulty  string `gorm:"default:medium" json:"difficulty"` // easy, medium, hard

	Chapters []Chapter `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
