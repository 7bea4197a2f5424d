package services

import (
	"context"
	"errors"
	"fmt"

	"civiceye/entity"
	"civiceye/repository"

	"gorm.io/gorm"
)

// ProofOfWorkService accepts one completion-evidence file from staff, stores
// it durably, and drives the COMPLETED transition. A failed store surfaces to
// the caller and leaves the issue untouched.
type ProofOfWorkService struct {
	Store     *ImageStore
	Staff     *repository.StaffRepository
	Lifecycle *LifecycleService
}

func NewProofOfWorkService(store *ImageStore, staff *repository.StaffRepository, lifecycle *LifecycleService) *ProofOfWorkService {
	return &ProofOfWorkService{Store: store, Staff: staff, Lifecycle: lifecycle}
}

func (p *ProofOfWorkService) Submit(ctx context.Context, issueID, staffUserID uint, localPath string) (*entity.Issue, error) {
	if localPath == "" {
		return nil, fmt.Errorf("%w: exactly one proof file is required", ErrValidation)
	}

	staff, err := p.Staff.FindByUserID(staffUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no staff profile for user %d", ErrNotFound, staffUserID)
	}
	if err != nil {
		return nil, err
	}

	url, err := p.Store.Store(ctx, localPath, "proofs")
	if err != nil {
		return nil, err // no transition on store failure
	}

	return p.Lifecycle.RecordProof(issueID, staff.ID, staff.UserID, url)
}
