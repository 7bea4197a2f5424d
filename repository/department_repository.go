package repository

import (
	"civiceye/entity"

	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(dept *entity.Department) error {
	return r.db.Create(dept).Error
}

func (r *DepartmentRepository) FindByID(id uint) (*entity.Department, error) {
	var dept entity.Department
	if err := r.db.First(&dept, id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) FindByName(name string) (*entity.Department, error) {
	var dept entity.Department
	if err := r.db.Where("name = ?", name).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) FindByType(deptType string) (*entity.Department, error) {
	var dept entity.Department
	if err := r.db.Where("type = ?", deptType).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) ListAll() ([]entity.Department, error) {
	var depts []entity.Department
	err := r.db.Order("name ASC").Find(&depts).Error
	return depts, err
}

// Roster returns the department's embedded member list, the fallback when no
// staff row references the department by type key.
func (r *DepartmentRepository) Roster(dept *entity.Department) ([]entity.Staff, error) {
	var members []entity.Staff
	err := r.db.Model(dept).Association("Members").Find(&members)
	return members, err
}

func (r *DepartmentRepository) AddToRoster(dept *entity.Department, staff *entity.Staff) error {
	return r.db.Model(dept).Association("Members").Append(staff)
}
