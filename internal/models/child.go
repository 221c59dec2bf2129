package models

import "time"

type Child struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ParentID uint   `gorm:"index;not null" json:"parent_id"`
	Parent   Parent `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parent"`

	Name        string     `gorm:"size:100;not null" json:"name"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
