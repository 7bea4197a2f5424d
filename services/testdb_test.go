package services

import (
	"path/filepath"
	"testing"
	"time"

	"civiceye/entity"
	"civiceye/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Department{}, &entity.Staff{},
		&entity.Issue{}, &entity.IssueImage{}, &entity.StatusHistory{},
		&entity.ProofOfWork{}, &entity.Upvote{}, &entity.Comment{},
		&entity.Complaint{}, &entity.ComplaintAction{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestLifecycle(t *testing.T, db *gorm.DB) *LifecycleService {
	t.Helper()

	issueRepo := repository.NewIssueRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)

	svc := NewLifecycleService(db, issueRepo, staffRepo, NewAssignService(deptRepo, staffRepo))
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func seedDepartment(t *testing.T, db *gorm.DB, deptType, name string) *entity.Department {
	t.Helper()

	dept := &entity.Department{Type: deptType, Name: name}
	if err := db.Create(dept).Error; err != nil {
		t.Fatalf("seed department %s: %v", deptType, err)
	}
	return dept
}

func seedStaff(t *testing.T, db *gorm.DB, name, deptType string, active bool) *entity.Staff {
	t.Helper()

	user := &entity.User{FullName: name, Email: name + "@city.gov", MobileNumber: "mob-" + name, Role: entity.RoleStaff}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed staff user: %v", err)
	}
	staff := &entity.Staff{Name: name, UserID: user.ID, Department: deptType, Active: active}
	if err := db.Create(staff).Error; err != nil {
		t.Fatalf("seed staff %s: %v", name, err)
	}
	// Active carries a gorm default tag, so Create replaces a false value
	// with the default; persist it with an explicit column update.
	if !active {
		if err := db.Model(staff).UpdateColumn("active", false).Error; err != nil {
			t.Fatalf("seed staff %s: %v", name, err)
		}
	}
	return staff
}

func createTestIssue(t *testing.T, svc *LifecycleService, reporterID uint) *entity.Issue {
	t.Helper()

	dept := "ROADS"
	issue, err := svc.Create(reporterID, CreateInput{
		Title:          "Pothole on Elm Street",
		Description:    "Deep pothole near the bus stop",
		Type:           "pothole",
		Latitude:       18.52,
		Longitude:      73.85,
		Address:        "Elm Street, Ward 4",
		ClassifiedDept: &dept,
		ImageURLs:      []string{"/uploads/issues/a.jpg"},
	})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}
	return issue
}
