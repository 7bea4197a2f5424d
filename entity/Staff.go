package entity

import (
	"gorm.io/gorm"
)

// Staff is a field worker eligible for issue assignment. Department holds the
// department type key; assignment queries prefer this over the department's
// member roster.
type Staff struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	UserID      uint   `gorm:"uniqueIndex;not null" json:"userId"`
	User        User   `json:"-"`
	Department  string `gorm:"index;not null" json:"department"`
	Designation string `json:"designation,omitempty"`
	Active      bool   `gorm:"not null;default:true" json:"active"`
}
