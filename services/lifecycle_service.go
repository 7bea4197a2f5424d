package services

import (
	"errors"
	"fmt"
	"time"

	"civiceye/entity"
	"civiceye/repository"

	"gorm.io/gorm"
)

// casRetries bounds how often a mutating operation reloads and retries after
// losing a compare-and-swap race before giving up with ErrConflict.
const casRetries = 3

// Notifier receives lifecycle events for the admin live feed. May be nil.
type Notifier interface {
	Publish(event string, issue *entity.Issue)
}

// LifecycleService is the only writer of Issue.Status. Every transition
// updates the status pointer and appends the matching history entry in one
// transaction, guarded by the issue's version counter.
type LifecycleService struct {
	DB        *gorm.DB
	Repo      *repository.IssueRepository
	Staff     *repository.StaffRepository
	AssignSvc *AssignService
	Feed      Notifier
	Now       func() time.Time
}

func NewLifecycleService(db *gorm.DB, repo *repository.IssueRepository, staff *repository.StaffRepository, assign *AssignService) *LifecycleService {
	return &LifecycleService{
		DB:        db,
		Repo:      repo,
		Staff:     staff,
		AssignSvc: assign,
		Now:       time.Now,
	}
}

func (s *LifecycleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *LifecycleService) notify(event string, issue *entity.Issue) {
	if s.Feed != nil {
		s.Feed.Publish(event, issue)
	}
}

// ----- Create -----

type CreateInput struct {
	Title          string
	Description    string
	Type           string
	Latitude       float64
	Longitude      float64
	Address        string
	Priority       entity.Priority
	ClassifiedDept *string
	ImageURLs      []string
}

// Create persists a new issue in REPORTED with a one-entry history. Only the
// intake pipeline calls this; it has already stored at least one image.
func (s *LifecycleService) Create(reporterID uint, in CreateInput) (*entity.Issue, error) {
	if in.Title == "" || in.Description == "" || in.Type == "" {
		return nil, fmt.Errorf("%w: title, description and type are required", ErrValidation)
	}
	if len(in.ImageURLs) == 0 {
		return nil, fmt.Errorf("%w: at least one stored image is required", ErrValidation)
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityLow
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}

	issue := &entity.Issue{
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Address:        in.Address,
		ReportedByID:   reporterID,
		ClassifiedDept: in.ClassifiedDept,
		Status:         entity.StatusReported,
		Priority:       priority,
		Version:        1,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, issue); err != nil {
			return err
		}
		for i, url := range in.ImageURLs {
			img := &entity.IssueImage{IssueID: issue.ID, URL: url, Position: i}
			if err := s.Repo.AppendImage(tx, img); err != nil {
				return err
			}
		}
		return s.Repo.AppendHistory(tx, &entity.StatusHistory{
			IssueID:     issue.ID,
			Status:      entity.StatusReported,
			ChangedByID: reporterID,
			Timestamp:   s.now(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify("issue.created", issue)
	return issue, nil
}

// ----- Assignment -----

type AssignInput struct {
	Department string // id, name, or type key; resolved in that order
	StaffID    *uint
	Priority   entity.Priority
}

// Assign records the administrator's department and/or staff assignment.
// Department only moves the issue to ASSIGNED_DEPT; a staff id moves it to
// ASSIGNED_STAFF. Re-assignment at the same workflow position updates the
// fields without a transition.
func (s *LifecycleService) Assign(issueID, adminID uint, in AssignInput) (*entity.Issue, error) {
	if in.Department == "" && in.StaffID == nil {
		return nil, fmt.Errorf("%w: department or staffId is required", ErrValidation)
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}

	issue, err := s.mutate(issueID, func(tx *gorm.DB, issue *entity.Issue) error {
		now := s.now()

		if in.Department != "" {
			dept, err := s.AssignSvc.ResolveDepartment(in.Department)
			if err != nil {
				return err
			}
			issue.FinalDept = &dept.Type
			issue.AssignedByID = &adminID
			issue.AssignedAt = &now
		}
		if in.Priority != "" {
			issue.Priority = in.Priority
		}

		target := entity.StatusAssignedDept
		if in.StaffID != nil {
			staff, err := s.Staff.FindByID(*in.StaffID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: staff %d", ErrNotFound, *in.StaffID)
			}
			if err != nil {
				return err
			}
			if !staff.Active {
				return fmt.Errorf("%w: staff %d is not active", ErrValidation, staff.ID)
			}

			dept := issue.FinalDept
			if dept == nil {
				dept = issue.ClassifiedDept
			}
			if dept == nil {
				return fmt.Errorf("%w: staff assignment requires a known department", ErrValidation)
			}
			if staff.Department != *dept {
				return fmt.Errorf("%w: staff %d does not belong to %s", ErrValidation, staff.ID, *dept)
			}

			issue.AssignedToStaffID = &staff.ID
			issue.StaffAssignedAt = &now
			issue.AssignedByID = &adminID
			target = entity.StatusAssignedStaff
		}

		if issue.Status == target {
			return nil // re-assignment, no transition
		}
		return s.transition(tx, issue, target, adminID)
	})
	if err != nil {
		return nil, err
	}

	s.notify("issue.assigned", issue)
	return issue, nil
}

// ----- Explicit status change -----

func (s *LifecycleService) ChangeStatus(issueID, actorID uint, to entity.IssueStatus) (*entity.Issue, error) {
	issue, err := s.mutate(issueID, func(tx *gorm.DB, issue *entity.Issue) error {
		return s.transition(tx, issue, to, actorID)
	})
	if err != nil {
		return nil, err
	}

	s.notify("issue.status", issue)
	return issue, nil
}

// ----- Proof of work -----

// RecordProof appends the stored proof image and drives the COMPLETED
// transition. Called by ProofOfWorkService after the upload succeeded; a
// failed upload never reaches this point.
func (s *LifecycleService) RecordProof(issueID, staffID, staffUserID uint, imageURL string) (*entity.Issue, error) {
	issue, err := s.mutate(issueID, func(tx *gorm.DB, issue *entity.Issue) error {
		if err := s.transition(tx, issue, entity.StatusCompleted, staffUserID); err != nil {
			return err
		}

		if err := s.Repo.AppendProof(tx, &entity.ProofOfWork{
			IssueID:      issue.ID,
			UploadedByID: staffID,
			ImageURL:     imageURL,
			UploadedAt:   s.now(),
		}); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&entity.IssueImage{}).Where("issue_id = ?", issue.ID).Count(&count).Error; err != nil {
			return err
		}
		return s.Repo.AppendImage(tx, &entity.IssueImage{
			IssueID:  issue.ID,
			URL:      imageURL,
			Position: int(count),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify("issue.proof", issue)
	return issue, nil
}

// ----- Upvotes & comments -----

// ToggleUpvote adds the citizen's vote if absent, removes it otherwise, and
// reports the resulting membership. The unique index on (issue, user) keeps
// the set duplicate-free under races.
func (s *LifecycleService) ToggleUpvote(issueID, userID uint) (bool, error) {
	if _, err := s.Repo.FindByID(issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("%w: issue %d", ErrNotFound, issueID)
		}
		return false, err
	}

	has, err := s.Repo.HasUpvote(issueID, userID)
	if err != nil {
		return false, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if has {
			return s.Repo.RemoveUpvote(tx, issueID, userID)
		}
		return s.Repo.AddUpvote(tx, issueID, userID)
	})
	if err != nil {
		return false, err
	}
	return !has, nil
}

func (s *LifecycleService) AddComment(issueID, userID uint, text string) (*entity.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	if _, err := s.Repo.FindByID(issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: issue %d", ErrNotFound, issueID)
		}
		return nil, err
	}

	comment := &entity.Comment{IssueID: issueID, UserID: userID, Text: text}
	if err := s.Repo.AddComment(s.DB, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ----- internals -----

// mutate loads the issue, applies fn, and saves with a version check,
// retrying on lost races. fn may append history rows through tx; they commit
// atomically with the status pointer.
func (s *LifecycleService) mutate(issueID uint, fn func(tx *gorm.DB, issue *entity.Issue) error) (*entity.Issue, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		issue, err := s.Repo.FindByID(issueID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: issue %d", ErrNotFound, issueID)
		}
		if err != nil {
			return nil, err
		}

		err = s.DB.Transaction(func(tx *gorm.DB) error {
			if err := fn(tx, issue); err != nil {
				return err
			}
			return s.Repo.SaveCAS(tx, issue)
		})
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return issue, nil
	}
	return nil, fmt.Errorf("%w: issue %d was updated concurrently", ErrConflict, issueID)
}

func (s *LifecycleService) transition(tx *gorm.DB, issue *entity.Issue, to entity.IssueStatus, actorID uint) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, to)
	}
	if !issue.Status.CanTransition(to) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrValidation, issue.Status, to)
	}

	issue.Status = to
	return s.Repo.AppendHistory(tx, &entity.StatusHistory{
		IssueID:     issue.ID,
		Status:      to,
		ChangedByID: actorID,
		Timestamp:   s.now(),
	})
}
