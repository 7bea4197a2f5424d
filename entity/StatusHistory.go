package entity

import (
	"time"

	"gorm.io/gorm"
)

// StatusHistory is the append-only audit trail of an issue. The last entry's
// status always equals Issue.Status; the lifecycle engine writes both in the
// same transaction.
type StatusHistory struct {
	gorm.Model
	IssueID     uint        `gorm:"index;not null" json:"-"`
	Status      IssueStatus `gorm:"not null" json:"status"`
	ChangedByID uint        `json:"changedBy"`
	Timestamp   time.Time   `json:"timestamp"`
}
