package entity

// IssueStatus is the workflow position of an issue. It only moves forward
// through the transition table below; RESOLVED is terminal.
type IssueStatus string

const (
	StatusReported      IssueStatus = "REPORTED"
	StatusAssignedDept  IssueStatus = "ASSIGNED_DEPT"
	StatusAssignedStaff IssueStatus = "ASSIGNED_STAFF"
	StatusInProgress    IssueStatus = "IN_PROGRESS"
	StatusCompleted     IssueStatus = "COMPLETED"
	StatusVerified      IssueStatus = "VERIFIED"
	StatusResolved      IssueStatus = "RESOLVED"
)

// transitions defines every edge the lifecycle engine accepts.
// REPORTED may jump straight to ASSIGNED_STAFF (admin assigns department and
// staff in one call), and ASSIGNED_STAFF may jump straight to COMPLETED
// (staff uploads proof without an explicit start).
var transitions = map[IssueStatus][]IssueStatus{
	StatusReported:      {StatusAssignedDept, StatusAssignedStaff},
	StatusAssignedDept:  {StatusAssignedStaff},
	StatusAssignedStaff: {StatusInProgress, StatusCompleted},
	StatusInProgress:    {StatusCompleted},
	StatusCompleted:     {StatusVerified},
	StatusVerified:      {StatusResolved},
	StatusResolved:      {},
}

func (s IssueStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s IssueStatus) CanTransition(to IssueStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s IssueStatus) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}
