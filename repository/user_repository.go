package repository

import (
	"civiceye/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByMobile(mobile string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("mobile_number = ?", mobile).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByAny reports whether any account matches the given identifiers;
// empty identifiers are ignored.
func (r *UserRepository) ExistsByAny(email, mobile, aadhar string) (bool, error) {
	q := r.db.Model(&entity.User{}).Where("1 = 0")
	if email != "" {
		q = q.Or("email = ?", email)
	}
	if mobile != "" {
		q = q.Or("mobile_number = ?", mobile)
	}
	if aadhar != "" {
		q = q.Or("aadhar_number = ?", aadhar)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ListAll() ([]entity.User, error) {
	var users []entity.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&entity.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) Update(user *entity.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.db.Delete(&entity.User{}, id).Error
}
