package entity

import (
	"gorm.io/gorm"
)

// Upvote is one citizen's vote on an issue. The composite unique index keeps
// the set duplicate-free; toggling off deletes the row.
type Upvote struct {
	gorm.Model
	IssueID uint `gorm:"not null;uniqueIndex:idx_upvote_issue_user" json:"-"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_upvote_issue_user" json:"user"`
}
