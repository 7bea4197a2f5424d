package services

import (
	"errors"
	"fmt"
	"time"

	"civiceye/entity"
	"civiceye/repository"

	"gorm.io/gorm"
)

// ComplaintService handles grievances raised against a department over how an
// issue was handled.
type ComplaintService struct {
	Repo   *repository.ComplaintRepository
	Issues *repository.IssueRepository
	Assign *AssignService
	Now    func() time.Time
}

func NewComplaintService(repo *repository.ComplaintRepository, issues *repository.IssueRepository, assign *AssignService) *ComplaintService {
	return &ComplaintService{Repo: repo, Issues: issues, Assign: assign, Now: time.Now}
}

func (s *ComplaintService) Create(issueID, raisedByID uint, againstDept, reason string) (*entity.Complaint, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if _, err := s.Issues.FindByID(issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: issue %d", ErrNotFound, issueID)
		}
		return nil, err
	}

	complaint := &entity.Complaint{
		IssueID:    issueID,
		RaisedByID: raisedByID,
		Reason:     reason,
		Status:     entity.ComplaintOpen,
	}
	if againstDept != "" {
		dept, err := s.Assign.ResolveDepartment(againstDept)
		if err != nil {
			return nil, err
		}
		complaint.AgainstDeptID = &dept.ID
	}

	if err := s.Repo.Create(complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func (s *ComplaintService) AddAction(complaintID, byID uint, text string) (*entity.ComplaintAction, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: action text is required", ErrValidation)
	}
	if _, err := s.Repo.FindByID(complaintID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
		}
		return nil, err
	}

	action := &entity.ComplaintAction{
		ComplaintID: complaintID,
		Text:        text,
		ByID:        byID,
		At:          s.Now(),
	}
	if err := s.Repo.AppendAction(action); err != nil {
		return nil, err
	}
	return action, nil
}

func (s *ComplaintService) UpdateStatus(complaintID uint, status entity.ComplaintStatus) (*entity.Complaint, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown complaint status %q", ErrValidation, status)
	}
	if _, err := s.Repo.FindByID(complaintID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
		}
		return nil, err
	}

	if err := s.Repo.UpdateStatus(complaintID, status); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(complaintID)
}

func (s *ComplaintService) Get(complaintID uint) (*entity.Complaint, error) {
	c, err := s.Repo.FindByID(complaintID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
	}
	return c, err
}

func (s *ComplaintService) ListByIssue(issueID uint) ([]entity.Complaint, error) {
	return s.Repo.ListByIssue(issueID)
}

func (s *ComplaintService) ListAll() ([]entity.Complaint, error) {
	return s.Repo.ListAll()
}
