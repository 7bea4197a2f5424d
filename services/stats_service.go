package services

import (
	"errors"
	"fmt"

	"civiceye/entity"
	"civiceye/repository"

	"gorm.io/gorm"
)

// StatsService backs the admin dashboard counters.
type StatsService struct {
	Issues *repository.IssueRepository
	Users  *repository.UserRepository
}

func NewStatsService(issues *repository.IssueRepository, users *repository.UserRepository) *StatsService {
	return &StatsService{Issues: issues, Users: users}
}

func (s *StatsService) TotalIssues() (int64, error) {
	return s.Issues.CountAll()
}

func (s *StatsService) TotalUsers() (int64, error) {
	return s.Users.CountAll()
}

func (s *StatsService) ResolvedIssues() (int64, error) {
	return s.Issues.CountByStatus(entity.StatusResolved)
}

func (s *StatsService) CriticalIssues() (int64, error) {
	return s.Issues.CountCritical()
}

func (s *StatsService) RecentIssues(limit int) ([]entity.Issue, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Issues.ListRecent(limit)
}

func (s *StatsService) ListUsers() ([]entity.User, error) {
	return s.Users.ListAll()
}

type UpdateUserInput struct {
	FullName     *string
	Email        *string
	MobileNumber *string
	Role         *string
}

func (s *StatsService) UpdateUser(id uint, in UpdateUserInput) (*entity.User, error) {
	user, err := s.Users.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.MobileNumber != nil {
		user.MobileNumber = *in.MobileNumber
	}
	if in.Role != nil {
		switch *in.Role {
		case entity.RoleCitizen, entity.RoleStaff, entity.RoleDepartmentAdmin, entity.RoleMunicipalAdmin:
			user.Role = *in.Role
		default:
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *in.Role)
		}
	}

	if err := s.Users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *StatsService) DeleteUser(id uint) error {
	if _, err := s.Users.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	} else if err != nil {
		return err
	}
	return s.Users.Delete(id)
}
