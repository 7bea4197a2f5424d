package entity

import (
	"gorm.io/gorm"
)

// Department is static reference data; Type is the key the classifier and the
// rule table produce (e.g. ROADS, SANITATION).
type Department struct {
	gorm.Model
	Type       string `gorm:"uniqueIndex;not null" json:"type"`
	Name       string `gorm:"uniqueIndex;not null" json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	AutoAssign bool   `gorm:"not null;default:true" json:"autoAssign"`

	// Fallback roster used only when no staff row carries this department key.
	Members []Staff `gorm:"many2many:department_members" json:"-"`
}
