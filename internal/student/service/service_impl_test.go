package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shafaqzafar/demoacademia/internal/clock"
	studentdomain "github.com/shafaqzafar/demoacademia/internal/student/domain"
	"github.com/shafaqzafar/demoacademia/pkg/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&studentdomain.Student{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake.NewNode: %v", err)
	}
	return &Service{
		db:    db,
		log:   zap.NewNop(),
		clock: clock.FixedClock{At: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},

		genID:       node,
		studentrepo: repository.ProvideStore[studentdomain.Student](db),
	}
}

func TestCreateStudent(t *testing.T) {
	svc := newTestService(t)
	campusID := svc.genID.Generate().String()

	student, err := svc.Create(context.Background(), studentdomain.CreateStudentRequest{
		CampusID: campusID,
		Name:     "  Ayesha Khan  ",
		Class:    "10",
		Section:  "B",
		Email:    "Ayesha@Example.com",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if student.Name != "Ayesha Khan" {
		t.Fatalf("expected trimmed name, got %q", student.Name)
	}
	if student.Email != "ayesha@example.com" {
		t.Fatalf("expected lowercased email, got %q", student.Email)
	}
}

func TestCreateStudentValidation(t *testing.T) {
	svc := newTestService(t)
	campusID := svc.genID.Generate().String()

	if _, err := svc.Create(context.Background(), studentdomain.CreateStudentRequest{CampusID: "nope", Name: "X"}); !errors.Is(err, studentdomain.ErrInvalidCampus) {
		t.Fatalf("expected ErrInvalidCampus, got %v", err)
	}
	if _, err := svc.Create(context.Background(), studentdomain.CreateStudentRequest{CampusID: campusID, Name: " "}); !errors.Is(err, studentdomain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.Create(context.Background(), studentdomain.CreateStudentRequest{CampusID: campusID, Name: "X", Email: "not-an-email"}); !errors.Is(err, studentdomain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestListStudentsFiltersAndPaginates(t *testing.T) {
	svc := newTestService(t)
	campusID := svc.genID.Generate().String()
	otherCampus := svc.genID.Generate().String()

	for i := 0; i < 30; i++ {
		class := "10"
		if i%2 == 1 {
			class = "9"
		}
		_, err := svc.Create(context.Background(), studentdomain.CreateStudentRequest{
			CampusID: campusID,
			Name:     fmt.Sprintf("Student %02d", i),
			Class:    class,
			Section:  "A",
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if _, err := svc.Create(context.Background(), studentdomain.CreateStudentRequest{CampusID: otherCampus, Name: "Outsider", Class: "10"}); err != nil {
		t.Fatalf("create outsider: %v", err)
	}

	resp, err := svc.List(context.Background(), studentdomain.ListStudentRequest{CampusID: campusID, Class: "10", PageSize: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if resp.PageInfo.TotalSize != 15 {
		t.Fatalf("expected 15 class-10 students, got %d", resp.PageInfo.TotalSize)
	}
	if len(resp.Students) != 10 {
		t.Fatalf("expected first page of 10, got %d", len(resp.Students))
	}
	if resp.PageInfo.NextPageToken == "" {
		t.Fatalf("expected next page token")
	}

	second, err := svc.List(context.Background(), studentdomain.ListStudentRequest{
		CampusID:  campusID,
		Class:     "10",
		PageSize:  10,
		PageToken: resp.PageInfo.NextPageToken,
	})
	if err != nil {
		t.Fatalf("List page two returned error: %v", err)
	}
	if len(second.Students) != 5 {
		t.Fatalf("expected remaining 5, got %d", len(second.Students))
	}
	if second.PageInfo.NextPageToken != "" {
		t.Fatalf("expected no further pages")
	}
}

func TestListStudentsNameSearch(t *testing.T) {
	svc := newTestService(t)
	campusID := svc.genID.Generate().String()

	for _, name := range []string{"Ayaan Khan", "Bilal Ahmed", "Ayan Malik"} {
		if _, err := svc.Create(context.Background(), studentdomain.CreateStudentRequest{CampusID: campusID, Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	resp, err := svc.List(context.Background(), studentdomain.ListStudentRequest{CampusID: campusID, Name: "Aya"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(resp.Students) != 2 {
		t.Fatalf("expected 2 matches for 'Aya', got %d", len(resp.Students))
	}
}

func TestGetUpdateDeleteStudent(t *testing.T) {
	svc := newTestService(t)
	campusID := svc.genID.Generate().String()

	created, err := svc.Create(context.Background(), studentdomain.CreateStudentRequest{CampusID: campusID, Name: "Bilal", Class: "8"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(context.Background(), campusID, created.ID.String())
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Name != "Bilal" {
		t.Fatalf("unexpected student %+v", got)
	}

	// Cross-campus access must read as not found.
	if _, err := svc.GetByID(context.Background(), svc.genID.Generate().String(), created.ID.String()); !errors.Is(err, studentdomain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound across campuses, got %v", err)
	}

	class := "9"
	updated, err := svc.Update(context.Background(), campusID, created.ID.String(), studentdomain.UpdateStudentRequest{Class: &class})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Class != "9" {
		t.Fatalf("expected promoted class, got %q", updated.Class)
	}

	if err := svc.Delete(context.Background(), campusID, created.ID.String()); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), campusID, created.ID.String()); !errors.Is(err, studentdomain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound after delete, got %v", err)
	}
}
