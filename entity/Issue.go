package entity

import (
	"time"

	"gorm.io/gorm"
)

type Issue struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Type        string `gorm:"not null" json:"type"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`

	ReportedByID uint `gorm:"not null" json:"reportedBy"`
	ReportedBy   User `json:"-"` // preload only for detail views

	// ClassifiedDept is what the intake pipeline inferred; FinalDept is what
	// an administrator confirmed. Kept separate so an override is visible.
	ClassifiedDept *string `json:"classifiedDept"`
	FinalDept      *string `json:"finalDept"`

	AssignedByID *uint      `json:"assignedBy,omitempty"`
	AssignedAt   *time.Time `json:"assignedAt,omitempty"`

	AssignedToStaffID *uint      `json:"assignedToStaff,omitempty"`
	AssignedToStaff   *Staff     `json:"-"`
	StaffAssignedAt   *time.Time `json:"staffAssignedAt,omitempty"`

	Status   IssueStatus `gorm:"not null;default:REPORTED" json:"status"`
	Priority Priority    `gorm:"not null;default:LOW" json:"priority"`

	// Version guards concurrent lifecycle writes (compare-and-swap on save).
	Version uint `gorm:"not null;default:1" json:"-"`

	Images        []IssueImage    `gorm:"foreignKey:IssueID" json:"images"`
	StatusHistory []StatusHistory `gorm:"foreignKey:IssueID" json:"statusHistory"`
	ProofOfWork   []ProofOfWork   `gorm:"foreignKey:IssueID" json:"proofOfWork"`
	Upvotes       []Upvote        `gorm:"foreignKey:IssueID" json:"upvotes"`
	Comments      []Comment       `gorm:"foreignKey:IssueID" json:"comments"`
}
