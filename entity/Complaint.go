package entity

import (
	"time"

	"gorm.io/gorm"
)

type ComplaintStatus string

const (
	ComplaintOpen          ComplaintStatus = "OPEN"
	ComplaintInvestigating ComplaintStatus = "INVESTIGATING"
	ComplaintActionTaken   ComplaintStatus = "ACTION_TAKEN"
	ComplaintClosed        ComplaintStatus = "CLOSED"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintOpen, ComplaintInvestigating, ComplaintActionTaken, ComplaintClosed:
		return true
	}
	return false
}

// Complaint is raised by a citizen or admin against a department over how an
// issue was handled.
type Complaint struct {
	gorm.Model
	IssueID       uint  `gorm:"index;not null" json:"issue"`
	Issue         Issue `json:"-"`
	RaisedByID    uint  `gorm:"not null" json:"raisedBy"`
	AgainstDeptID *uint `json:"againstDept,omitempty"`

	Reason string          `json:"reason"`
	Status ComplaintStatus `gorm:"not null;default:OPEN" json:"status"`

	Actions []ComplaintAction `gorm:"foreignKey:ComplaintID" json:"actions"`
}

// ComplaintAction is one entry in a complaint's append-only action log.
type ComplaintAction struct {
	gorm.Model
	ComplaintID uint      `gorm:"index;not null" json:"-"`
	Text        string    `gorm:"not null" json:"text"`
	ByID        uint      `json:"by"`
	At          time.Time `json:"at"`
}
