package entity

import (
	"gorm.io/gorm"
)

type Comment struct {
	gorm.Model
	IssueID uint   `gorm:"index;not null" json:"-"`
	UserID  uint   `gorm:"not null" json:"user"`
	Text    string `gorm:"not null" json:"text"`
}
