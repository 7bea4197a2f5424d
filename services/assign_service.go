package services

import (
	"errors"
	"fmt"
	"strconv"

	"civiceye/entity"
	"civiceye/repository"

	"gorm.io/gorm"
)

// StaffMember is the assignment view of a staff record.
type StaffMember struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AssignService resolves department identifiers and lists staff eligible for
// assignment.
type AssignService struct {
	Depts *repository.DepartmentRepository
	Staff *repository.StaffRepository
}

func NewAssignService(depts *repository.DepartmentRepository, staff *repository.StaffRepository) *AssignService {
	return &AssignService{Depts: depts, Staff: staff}
}

// ResolveDepartment tries the key as an internal id, then an exact name, then
// a type key; the first hit wins.
func (a *AssignService) ResolveDepartment(key string) (*entity.Department, error) {
	resolvers := []func(string) (*entity.Department, error){
		a.byID,
		func(k string) (*entity.Department, error) { return a.Depts.FindByName(k) },
		func(k string) (*entity.Department, error) { return a.Depts.FindByType(k) },
	}

	for _, resolve := range resolvers {
		dept, err := resolve(key)
		if err == nil {
			return dept, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: department %q", ErrNotFound, key)
}

func (a *AssignService) byID(key string) (*entity.Department, error) {
	id, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound // not id-shaped, try the next strategy
	}
	return a.Depts.FindByID(uint(id))
}

// ListMembers returns the staff eligible for assignment in a department.
// Staff rows carrying the department key are preferred; the department's
// embedded roster is the fallback. An empty result is valid.
func (a *AssignService) ListMembers(key string) ([]StaffMember, error) {
	dept, err := a.ResolveDepartment(key)
	if err != nil {
		return nil, err
	}

	staff, err := a.Staff.FindActiveByDepartment(dept.Type)
	if err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		staff, err = a.Depts.Roster(dept)
		if err != nil {
			return nil, err
		}
	}

	members := make([]StaffMember, 0, len(staff))
	for _, s := range staff {
		members = append(members, StaffMember{ID: s.ID, Name: s.Name})
	}
	return members, nil
}
