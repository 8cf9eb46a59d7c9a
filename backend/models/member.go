package models

import "gorm.io/gorm"

type Member struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Courses  []Course  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Chapters []Chapter `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}
