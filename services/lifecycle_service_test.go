package services

import (
	"errors"
	"testing"

	"civiceye/entity"

	"gorm.io/gorm"
)

func TestCreateStartsInReportedWithHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)

	issue := createTestIssue(t, svc, 7)

	if issue.Status != entity.StatusReported {
		t.Fatalf("status = %s, want %s", issue.Status, entity.StatusReported)
	}
	if issue.Version != 1 {
		t.Fatalf("version = %d, want 1", issue.Version)
	}

	detail, err := svc.Repo.FindDetail(issue.ID)
	if err != nil {
		t.Fatalf("find detail: %v", err)
	}
	if len(detail.StatusHistory) != 1 {
		t.Fatalf("history entries = %d, want 1", len(detail.StatusHistory))
	}
	h := detail.StatusHistory[0]
	if h.Status != entity.StatusReported || h.ChangedByID != 7 {
		t.Fatalf("history entry = %s by %d, want %s by 7", h.Status, h.ChangedByID, entity.StatusReported)
	}
	if !h.Timestamp.Equal(fixedNow) {
		t.Fatalf("history timestamp = %v, want %v", h.Timestamp, fixedNow)
	}
	if len(detail.Images) != 1 || detail.Images[0].URL != "/uploads/issues/a.jpg" {
		t.Fatalf("images = %+v, want the stored url", detail.Images)
	}
}

func TestCreateRequiresImagesAndFields(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)

	_, err := svc.Create(1, CreateInput{Title: "t", Description: "d", Type: "pothole"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("no images: err = %v, want ErrValidation", err)
	}

	_, err = svc.Create(1, CreateInput{Type: "pothole", ImageURLs: []string{"/u/a.jpg"}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("missing title: err = %v, want ErrValidation", err)
	}
}

func TestAssignDepartmentOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	seedDepartment(t, db, "ROADS", "Road Maintenance")
	issue := createTestIssue(t, svc, 7)

	updated, err := svc.Assign(issue.ID, 2, AssignInput{Department: "ROADS"})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	if updated.Status != entity.StatusAssignedDept {
		t.Fatalf("status = %s, want %s", updated.Status, entity.StatusAssignedDept)
	}
	if updated.FinalDept == nil || *updated.FinalDept != "ROADS" {
		t.Fatalf("finalDept = %v, want ROADS", updated.FinalDept)
	}
	if updated.AssignedByID == nil || *updated.AssignedByID != 2 {
		t.Fatalf("assignedBy = %v, want 2", updated.AssignedByID)
	}

	detail, _ := svc.Repo.FindDetail(issue.ID)
	if len(detail.StatusHistory) != 2 {
		t.Fatalf("history entries = %d, want 2", len(detail.StatusHistory))
	}
	if last := detail.StatusHistory[len(detail.StatusHistory)-1]; last.Status != detail.Status {
		t.Fatalf("last history %s does not match status %s", last.Status, detail.Status)
	}
}

func TestAssignDepartmentAndStaffInOneCall(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	seedDepartment(t, db, "SANITATION", "Sanitation")
	staff := seedStaff(t, db, "asha", "SANITATION", true)
	issue := createTestIssue(t, svc, 7)

	updated, err := svc.Assign(issue.ID, 2, AssignInput{
		Department: "SANITATION",
		StaffID:    &staff.ID,
		Priority:   entity.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	if updated.Status != entity.StatusAssignedStaff {
		t.Fatalf("status = %s, want %s", updated.Status, entity.StatusAssignedStaff)
	}
	if updated.AssignedToStaffID == nil || *updated.AssignedToStaffID != staff.ID {
		t.Fatalf("assignedToStaff = %v, want %d", updated.AssignedToStaffID, staff.ID)
	}
	if updated.Priority != entity.PriorityHigh {
		t.Fatalf("priority = %s, want HIGH", updated.Priority)
	}

	// REPORTED jumps straight to ASSIGNED_STAFF: exactly one transition.
	detail, _ := svc.Repo.FindDetail(issue.ID)
	if len(detail.StatusHistory) != 2 {
		t.Fatalf("history entries = %d, want 2", len(detail.StatusHistory))
	}
}

func TestAssignStaffRejectsWrongDepartment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	seedDepartment(t, db, "ROADS", "Road Maintenance")
	staff := seedStaff(t, db, "ravi", "SANITATION", true)
	issue := createTestIssue(t, svc, 7)

	_, err := svc.Assign(issue.ID, 2, AssignInput{Department: "ROADS", StaffID: &staff.ID})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	reloaded, _ := svc.Repo.FindByID(issue.ID)
	if reloaded.Status != entity.StatusReported {
		t.Fatalf("status changed to %s on failed assign", reloaded.Status)
	}
}

func TestAssignStaffRejectsInactive(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	seedDepartment(t, db, "ROADS", "Road Maintenance")
	staff := seedStaff(t, db, "mira", "ROADS", false)
	issue := createTestIssue(t, svc, 7)

	_, err := svc.Assign(issue.ID, 2, AssignInput{Department: "ROADS", StaffID: &staff.ID})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestReassignSameStatusSkipsTransition(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	seedDepartment(t, db, "ROADS", "Road Maintenance")
	seedDepartment(t, db, "WATER", "Water Supply")
	issue := createTestIssue(t, svc, 7)

	if _, err := svc.Assign(issue.ID, 2, AssignInput{Department: "ROADS"}); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	updated, err := svc.Assign(issue.ID, 2, AssignInput{Department: "WATER"})
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}

	if *updated.FinalDept != "WATER" {
		t.Fatalf("finalDept = %s, want WATER", *updated.FinalDept)
	}
	detail, _ := svc.Repo.FindDetail(issue.ID)
	if len(detail.StatusHistory) != 2 {
		t.Fatalf("history entries = %d after reassign, want 2", len(detail.StatusHistory))
	}
}

func TestChangeStatusRejectsIllegalTransition(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	issue := createTestIssue(t, svc, 7)

	cases := []entity.IssueStatus{
		entity.StatusCompleted,
		entity.StatusVerified,
		entity.StatusResolved,
		entity.IssueStatus("BOGUS"),
	}
	for _, to := range cases {
		if _, err := svc.ChangeStatus(issue.ID, 2, to); !errors.Is(err, ErrValidation) {
			t.Errorf("REPORTED -> %s: err = %v, want ErrValidation", to, err)
		}
	}

	reloaded, _ := svc.Repo.FindDetail(issue.ID)
	if reloaded.Status != entity.StatusReported {
		t.Fatalf("status = %s after rejected transitions", reloaded.Status)
	}
	if len(reloaded.StatusHistory) != 1 {
		t.Fatalf("history grew to %d on rejected transitions", len(reloaded.StatusHistory))
	}
}

func TestFullLifecycleVerifyResolve(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	seedDepartment(t, db, "ROADS", "Road Maintenance")
	staff := seedStaff(t, db, "dev", "ROADS", true)
	issue := createTestIssue(t, svc, 7)

	if _, err := svc.Assign(issue.ID, 2, AssignInput{Department: "ROADS", StaffID: &staff.ID}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := svc.ChangeStatus(issue.ID, staff.UserID, entity.StatusInProgress); err != nil {
		t.Fatalf("start work: %v", err)
	}
	if _, err := svc.RecordProof(issue.ID, staff.ID, staff.UserID, "/uploads/proofs/p.jpg"); err != nil {
		t.Fatalf("record proof: %v", err)
	}
	if _, err := svc.ChangeStatus(issue.ID, 2, entity.StatusVerified); err != nil {
		t.Fatalf("verify: %v", err)
	}
	final, err := svc.ChangeStatus(issue.ID, 2, entity.StatusResolved)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if final.Status != entity.StatusResolved {
		t.Fatalf("status = %s, want RESOLVED", final.Status)
	}
	if _, err := svc.ChangeStatus(issue.ID, 2, entity.StatusReported); !errors.Is(err, ErrValidation) {
		t.Fatalf("resolved issue accepted a transition: %v", err)
	}

	detail, _ := svc.Repo.FindDetail(issue.ID)
	want := []entity.IssueStatus{
		entity.StatusReported,
		entity.StatusAssignedStaff,
		entity.StatusInProgress,
		entity.StatusCompleted,
		entity.StatusVerified,
		entity.StatusResolved,
	}
	if len(detail.StatusHistory) != len(want) {
		t.Fatalf("history entries = %d, want %d", len(detail.StatusHistory), len(want))
	}
	for i, h := range detail.StatusHistory {
		if h.Status != want[i] {
			t.Errorf("history[%d] = %s, want %s", i, h.Status, want[i])
		}
	}
}

func TestRecordProofAppendsImageAndProof(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	seedDepartment(t, db, "ROADS", "Road Maintenance")
	staff := seedStaff(t, db, "kiran", "ROADS", true)
	issue := createTestIssue(t, svc, 7)

	if _, err := svc.Assign(issue.ID, 2, AssignInput{Department: "ROADS", StaffID: &staff.ID}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	updated, err := svc.RecordProof(issue.ID, staff.ID, staff.UserID, "/uploads/proofs/p.jpg")
	if err != nil {
		t.Fatalf("record proof: %v", err)
	}

	if updated.Status != entity.StatusCompleted {
		t.Fatalf("status = %s, want COMPLETED", updated.Status)
	}

	detail, _ := svc.Repo.FindDetail(issue.ID)
	if len(detail.ProofOfWork) != 1 {
		t.Fatalf("proof rows = %d, want 1", len(detail.ProofOfWork))
	}
	p := detail.ProofOfWork[0]
	if p.UploadedByID != staff.ID || p.ImageURL != "/uploads/proofs/p.jpg" {
		t.Fatalf("proof = %+v", p)
	}
	if len(detail.Images) != 2 {
		t.Fatalf("images = %d, want original plus proof", len(detail.Images))
	}
	if last := detail.Images[len(detail.Images)-1]; last.URL != "/uploads/proofs/p.jpg" || last.Position != 1 {
		t.Fatalf("proof image appended as %+v", last)
	}
}

func TestToggleUpvote(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	issue := createTestIssue(t, svc, 7)

	added, err := svc.ToggleUpvote(issue.ID, 9)
	if err != nil || !added {
		t.Fatalf("first toggle = %v, %v; want true, nil", added, err)
	}
	count, _ := svc.Repo.CountUpvotes(issue.ID)
	if count != 1 {
		t.Fatalf("count = %d after upvote, want 1", count)
	}

	added, err = svc.ToggleUpvote(issue.ID, 9)
	if err != nil || added {
		t.Fatalf("second toggle = %v, %v; want false, nil", added, err)
	}
	count, _ = svc.Repo.CountUpvotes(issue.ID)
	if count != 0 {
		t.Fatalf("count = %d after un-vote, want 0", count)
	}

	// Toggling back on must work even though a soft-deleted row once existed.
	added, err = svc.ToggleUpvote(issue.ID, 9)
	if err != nil || !added {
		t.Fatalf("third toggle = %v, %v; want true, nil", added, err)
	}

	if _, err := svc.ToggleUpvote(9999, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown issue: err = %v, want ErrNotFound", err)
	}
}

func TestMutateSurfacesConflictAfterRetries(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	issue := createTestIssue(t, svc, 7)

	// A concurrent writer bumps the version before every save attempt, so
	// each compare-and-swap loses until the retry budget runs out.
	_, err := svc.mutate(issue.ID, func(tx *gorm.DB, is *entity.Issue) error {
		return db.Model(&entity.Issue{}).
			Where("id = ?", is.ID).
			Update("version", gorm.Expr("version + 1")).Error
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLifecycle(t, db)
	issue := createTestIssue(t, svc, 7)

	comment, err := svc.AddComment(issue.ID, 9, "still not fixed")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if comment.ID == 0 || comment.UserID != 9 {
		t.Fatalf("comment = %+v", comment)
	}

	if _, err := svc.AddComment(issue.ID, 9, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty text: err = %v, want ErrValidation", err)
	}
	if _, err := svc.AddComment(9999, 9, "hi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown issue: err = %v, want ErrNotFound", err)
	}
}
