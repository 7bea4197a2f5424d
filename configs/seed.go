package configs

import (
	"log"

	"civiceye/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the municipal admin account on first boot.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	mobile := getEnv("ADMIN_MOBILE", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:        email,
		MobileNumber: mobile,
		Password:     string(hash),
		FullName:     "Municipal Admin",
		Role:         entity.RoleMunicipalAdmin,
	}
	return db.Create(&admin).Error
}

// SeedDepartments inserts the reference departments the classifier's rule
// table maps onto.
func SeedDepartments() error {
	db := DB()

	depts := []entity.Department{
		{Type: "ROADS", Name: "Roads & Infrastructure"},
		{Type: "SANITATION", Name: "Sanitation"},
		{Type: "ELECTRICITY", Name: "Electricity"},
		{Type: "FORESTRY", Name: "Urban Forestry"},
		{Type: "WATER", Name: "Water Supply"},
		{Type: "GENERAL_WORKS", Name: "General Works"},
	}
	for _, d := range depts {
		if err := db.FirstOrCreate(&entity.Department{}, entity.Department{Type: d.Type, Name: d.Name}).Error; err != nil {
			return err
		}
	}
	return nil
}
