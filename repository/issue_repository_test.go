package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"civiceye/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Issue{}, &entity.IssueImage{}, &entity.StatusHistory{},
		&entity.ProofOfWork{}, &entity.Upvote{}, &entity.Comment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestIssue(t *testing.T, db *gorm.DB) *entity.Issue {
	t.Helper()

	issue := &entity.Issue{
		Title:        "Pothole on Elm Street",
		Description:  "Deep pothole near the bus stop",
		Type:         "pothole",
		ReportedByID: 7,
		Status:       entity.StatusReported,
		Priority:     entity.PriorityLow,
		Version:      1,
	}
	if err := db.Create(issue).Error; err != nil {
		t.Fatalf("create issue: %v", err)
	}
	return issue
}

func TestSaveCASBumpsVersion(t *testing.T) {
	db := newTestDB(t)
	repo := NewIssueRepository(db)
	issue := newTestIssue(t, db)

	issue.Status = entity.StatusAssignedDept
	if err := repo.SaveCAS(db, issue); err != nil {
		t.Fatalf("save: %v", err)
	}
	if issue.Version != 2 {
		t.Fatalf("in-memory version = %d, want 2", issue.Version)
	}

	reloaded, err := repo.FindByID(issue.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Version != 2 || reloaded.Status != entity.StatusAssignedDept {
		t.Fatalf("reloaded = v%d %s, want v2 ASSIGNED_DEPT", reloaded.Version, reloaded.Status)
	}
}

func TestSaveCASRejectsStaleVersion(t *testing.T) {
	db := newTestDB(t)
	repo := NewIssueRepository(db)
	issue := newTestIssue(t, db)

	// Two loads of the same row; the second save must lose.
	first, _ := repo.FindByID(issue.ID)
	second, _ := repo.FindByID(issue.ID)

	first.Status = entity.StatusAssignedDept
	if err := repo.SaveCAS(db, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second.Status = entity.StatusAssignedStaff
	err := repo.SaveCAS(db, second)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("second save: err = %v, want ErrVersionConflict", err)
	}
	if second.Version != 1 {
		t.Fatalf("loser's version = %d, want restored to 1", second.Version)
	}

	reloaded, _ := repo.FindByID(issue.ID)
	if reloaded.Status != entity.StatusAssignedDept {
		t.Fatalf("status = %s, the losing write must not land", reloaded.Status)
	}
}

func TestUpvoteRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewIssueRepository(db)
	issue := newTestIssue(t, db)

	if err := repo.AddUpvote(db, issue.ID, 9); err != nil {
		t.Fatalf("add: %v", err)
	}
	if has, _ := repo.HasUpvote(issue.ID, 9); !has {
		t.Fatal("HasUpvote = false after add")
	}
	if count, _ := repo.CountUpvotes(issue.ID); count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	// A duplicate vote violates the composite unique index.
	if err := repo.AddUpvote(db, issue.ID, 9); err == nil {
		t.Fatal("duplicate upvote accepted")
	}

	if err := repo.RemoveUpvote(db, issue.ID, 9); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if has, _ := repo.HasUpvote(issue.ID, 9); has {
		t.Fatal("HasUpvote = true after remove")
	}

	// The row is gone for real, so voting again works.
	if err := repo.AddUpvote(db, issue.ID, 9); err != nil {
		t.Fatalf("re-add after remove: %v", err)
	}
}

func TestFindDetailOrdersImagesByPosition(t *testing.T) {
	db := newTestDB(t)
	repo := NewIssueRepository(db)
	issue := newTestIssue(t, db)

	for i, url := range []string{"/u/c.jpg", "/u/a.jpg", "/u/b.jpg"} {
		if err := repo.AppendImage(db, &entity.IssueImage{IssueID: issue.ID, URL: url, Position: 2 - i}); err != nil {
			t.Fatalf("append image: %v", err)
		}
	}

	detail, err := repo.FindDetail(issue.ID)
	if err != nil {
		t.Fatalf("find detail: %v", err)
	}
	want := []string{"/u/b.jpg", "/u/a.jpg", "/u/c.jpg"}
	for i, img := range detail.Images {
		if img.URL != want[i] {
			t.Errorf("images[%d] = %s, want %s", i, img.URL, want[i])
		}
	}
}

func TestCountCritical(t *testing.T) {
	db := newTestDB(t)
	repo := NewIssueRepository(db)

	mk := func(priority entity.Priority, status entity.IssueStatus) {
		issue := &entity.Issue{
			Title: "t", Description: "d", Type: "pothole",
			ReportedByID: 1, Status: status, Priority: priority, Version: 1,
		}
		if err := db.Create(issue).Error; err != nil {
			t.Fatal(err)
		}
	}
	mk(entity.PriorityHigh, entity.StatusReported)
	mk(entity.PriorityHigh, entity.StatusInProgress)
	mk(entity.PriorityHigh, entity.StatusResolved)
	mk(entity.PriorityLow, entity.StatusReported)

	count, err := repo.CountCritical()
	if err != nil {
		t.Fatalf("count critical: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2 unresolved HIGH issues", count)
	}
}
