package entity

import (
	"gorm.io/gorm"
)

const (
	RoleCitizen         = "CITIZEN"
	RoleStaff           = "STAFF"
	RoleDepartmentAdmin = "DEPARTMENT_ADMIN"
	RoleMunicipalAdmin  = "MUNICIPAL_ADMIN"
)

type User struct {
	gorm.Model
	FullName     string `gorm:"not null" json:"fullName"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	MobileNumber string `gorm:"uniqueIndex;not null" json:"mobileNumber"`
	AadharNumber string `json:"aadharNumber,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Password     string `json:"-"`
	Role         string `gorm:"not null;default:CITIZEN" json:"role"`
	Avatar       string `json:"avatar"`

	// Department type key, set for department admins and staff users.
	Department *string `json:"department,omitempty"`

	// Relations, preloaded only when needed
	Issues       []Issue `gorm:"foreignKey:ReportedByID" json:"-"`
	StaffProfile *Staff  `gorm:"foreignKey:UserID" json:"-"`
}
