package repository

import (
	"civiceye/entity"

	"gorm.io/gorm"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(staff *entity.Staff) error {
	return r.db.Create(staff).Error
}

func (r *StaffRepository) FindByID(id uint) (*entity.Staff, error) {
	var staff entity.Staff
	if err := r.db.First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) FindByUserID(userID uint) (*entity.Staff, error) {
	var staff entity.Staff
	if err := r.db.Where("user_id = ?", userID).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) FindActiveByDepartment(deptType string) ([]entity.Staff, error) {
	var staff []entity.Staff
	err := r.db.
		Where("department = ? AND active = ?", deptType, true).
		Order("name ASC").
		Find(&staff).Error
	return staff, err
}
