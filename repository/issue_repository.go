package repository

import (
	"errors"

	"civiceye/entity"

	"gorm.io/gorm"
)

// ErrVersionConflict means the issue row changed between load and save.
var ErrVersionConflict = errors.New("issue was modified concurrently")

type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(tx *gorm.DB, issue *entity.Issue) error {
	return tx.Create(issue).Error
}

func (r *IssueRepository) FindByID(id uint) (*entity.Issue, error) {
	var issue entity.Issue
	if err := r.db.First(&issue, id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// FindDetail preloads everything the detail views need, history and comments
// in insertion order.
func (r *IssueRepository) FindDetail(id uint) (*entity.Issue, error) {
	var issue entity.Issue
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("ProofOfWork").
		Preload("Upvotes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&issue, id).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// SaveCAS writes the issue back only if nobody bumped its version in the
// meantime. The in-memory version is incremented on success.
func (r *IssueRepository) SaveCAS(tx *gorm.DB, issue *entity.Issue) error {
	expected := issue.Version
	issue.Version = expected + 1

	res := tx.Model(&entity.Issue{}).
		Where("id = ? AND version = ?", issue.ID, expected).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(issue)
	if res.Error != nil {
		issue.Version = expected
		return res.Error
	}
	if res.RowsAffected == 0 {
		issue.Version = expected
		return ErrVersionConflict
	}
	return nil
}

func (r *IssueRepository) AppendHistory(tx *gorm.DB, h *entity.StatusHistory) error {
	return tx.Create(h).Error
}

func (r *IssueRepository) AppendImage(tx *gorm.DB, img *entity.IssueImage) error {
	return tx.Create(img).Error
}

func (r *IssueRepository) AppendProof(tx *gorm.DB, p *entity.ProofOfWork) error {
	return tx.Create(p).Error
}

func (r *IssueRepository) HasUpvote(issueID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Upvote{}).
		Where("issue_id = ? AND user_id = ?", issueID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *IssueRepository) AddUpvote(tx *gorm.DB, issueID, userID uint) error {
	return tx.Create(&entity.Upvote{IssueID: issueID, UserID: userID}).Error
}

func (r *IssueRepository) RemoveUpvote(tx *gorm.DB, issueID, userID uint) error {
	return tx.Unscoped().
		Where("issue_id = ? AND user_id = ?", issueID, userID).
		Delete(&entity.Upvote{}).Error
}

func (r *IssueRepository) CountUpvotes(issueID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Upvote{}).Where("issue_id = ?", issueID).Count(&count).Error
	return count, err
}

func (r *IssueRepository) AddComment(tx *gorm.DB, comment *entity.Comment) error {
	return tx.Create(comment).Error
}

func (r *IssueRepository) ListByReporter(userID uint) ([]entity.Issue, error) {
	var issues []entity.Issue
	err := r.db.
		Preload("Images").
		Where("reported_by_id = ?", userID).
		Order("created_at DESC").
		Find(&issues).Error
	return issues, err
}

func (r *IssueRepository) ListAll() ([]entity.Issue, error) {
	var issues []entity.Issue
	err := r.db.Preload("Images").Order("created_at DESC").Find(&issues).Error
	return issues, err
}

func (r *IssueRepository) ListByStaff(staffID uint) ([]entity.Issue, error) {
	var issues []entity.Issue
	err := r.db.
		Preload("Images").
		Where("assigned_to_staff_id = ?", staffID).
		Order("created_at DESC").
		Find(&issues).Error
	return issues, err
}

func (r *IssueRepository) ListRecent(limit int) ([]entity.Issue, error) {
	var issues []entity.Issue
	err := r.db.Order("created_at DESC").Limit(limit).Find(&issues).Error
	return issues, err
}

func (r *IssueRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Issue{}).Count(&count).Error
	return count, err
}

func (r *IssueRepository) CountByStatus(status entity.IssueStatus) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Issue{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountCritical counts HIGH priority issues that are not yet resolved.
func (r *IssueRepository) CountCritical() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Issue{}).
		Where("priority = ? AND status <> ?", entity.PriorityHigh, entity.StatusResolved).
		Count(&count).Error
	return count, err
}
