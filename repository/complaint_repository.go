package repository

import (
	"civiceye/entity"

	"gorm.io/gorm"
)

type ComplaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(c *entity.Complaint) error {
	return r.db.Create(c).Error
}

func (r *ComplaintRepository) FindByID(id uint) (*entity.Complaint, error) {
	var c entity.Complaint
	if err := r.db.Preload("Actions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ComplaintRepository) ListByIssue(issueID uint) ([]entity.Complaint, error) {
	var cs []entity.Complaint
	err := r.db.Where("issue_id = ?", issueID).Order("created_at DESC").Find(&cs).Error
	return cs, err
}

func (r *ComplaintRepository) ListAll() ([]entity.Complaint, error) {
	var cs []entity.Complaint
	err := r.db.Order("created_at DESC").Find(&cs).Error
	return cs, err
}

func (r *ComplaintRepository) AppendAction(a *entity.ComplaintAction) error {
	return r.db.Create(a).Error
}

func (r *ComplaintRepository) UpdateStatus(id uint, status entity.ComplaintStatus) error {
	return r.db.Model(&entity.Complaint{}).
		Where("id = ?", id).
		Update("status", status).Error
}
