package entity

import (
	"time"

	"gorm.io/gorm"
)

type ProofOfWork struct {
	gorm.Model
	IssueID      uint      `gorm:"index;not null" json:"-"`
	UploadedByID uint      `gorm:"not null" json:"uploadedBy"` // staff id
	ImageURL     string    `gorm:"not null" json:"imageUrl"`
	UploadedAt   time.Time `json:"uploadedAt"`
}
