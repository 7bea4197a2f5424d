package entity

import (
	"gorm.io/gorm"
)

// IssueImage is one durable image reference on an issue. Rows are appended at
// creation and by proof-of-work, never edited.
type IssueImage struct {
	gorm.Model
	IssueID  uint   `gorm:"index;not null" json:"-"`
	URL      string `gorm:"not null" json:"url"`
	Position int    `json:"position"`
}
