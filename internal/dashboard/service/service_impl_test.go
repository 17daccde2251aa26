package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	assignmentdomain "github.com/shafaqzafar/demoacademia/internal/assignment/domain"
	certificatedomain "github.com/shafaqzafar/demoacademia/internal/certificate/domain"
	dashboarddomain "github.com/shafaqzafar/demoacademia/internal/dashboard/domain"
	"github.com/shafaqzafar/demoacademia/internal/events"
	notificationdomain "github.com/shafaqzafar/demoacademia/internal/notification/domain"
	studentdomain "github.com/shafaqzafar/demoacademia/internal/student/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubCertificates struct {
	certificatedomain.Service
	stats certificatedomain.Stats
}

func (s stubCertificates) Stats(ctx context.Context, campusID string) (*certificatedomain.Stats, error) {
	stats := s.stats
	return &stats, nil
}

func newTestService(t *testing.T) (*Service, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&studentdomain.Student{},
		&assignmentdomain.Assignment{},
		&notificationdomain.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS campus_events (
			id BIGINT PRIMARY KEY,
			campus_id BIGINT NOT NULL,
			event_type TEXT NOT NULL,
			payload TEXT,
			dedupe_key TEXT,
			published BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL
		)`,
	).Error; err != nil {
		t.Fatalf("create campus_events: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake.NewNode: %v", err)
	}
	svc := &Service{
		db:  db,
		log: zap.NewNop(),
		certificates: stubCertificates{
			stats: certificatedomain.Stats{Total: 12, IssuedThisMonth: 3, Printed: 5},
		},
	}
	return svc, node
}

func TestGetSummary(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	campusID := node.Generate()
	other := node.Generate()

	for i := 0; i < 4; i++ {
		student := studentdomain.Student{ID: node.Generate(), CampusID: campusID, Name: "Student"}
		if err := svc.db.Create(&student).Error; err != nil {
			t.Fatalf("seed student: %v", err)
		}
	}
	outsider := studentdomain.Student{ID: node.Generate(), CampusID: other, Name: "Elsewhere"}
	if err := svc.db.Create(&outsider).Error; err != nil {
		t.Fatalf("seed outsider: %v", err)
	}
	assignment := assignmentdomain.Assignment{ID: node.Generate(), CampusID: campusID, Title: "Homework"}
	if err := svc.db.Create(&assignment).Error; err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
	unread := notificationdomain.Notification{ID: node.Generate(), CampusID: campusID, UserID: node.Generate(), Title: "Notice"}
	read := notificationdomain.Notification{ID: node.Generate(), CampusID: campusID, UserID: node.Generate(), Title: "Old", IsRead: true}
	if err := svc.db.Create(&unread).Error; err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	if err := svc.db.Create(&read).Error; err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	resp, err := svc.GetSummary(ctx, campusID.String())
	if err != nil {
		t.Fatalf("GetSummary returned error: %v", err)
	}
	if resp.Summary.Students != 4 {
		t.Fatalf("expected 4 students, got %d", resp.Summary.Students)
	}
	if resp.Summary.Assignments != 1 {
		t.Fatalf("expected 1 assignment, got %d", resp.Summary.Assignments)
	}
	if resp.Summary.UnreadNotifications != 1 {
		t.Fatalf("expected 1 unread notification, got %d", resp.Summary.UnreadNotifications)
	}
	if resp.Summary.CertificatesTotal != 12 || resp.Summary.CertificatesThisMonth != 3 || resp.Summary.CertificatesPrinted != 5 {
		t.Fatalf("unexpected certificate numbers: %+v", resp.Summary)
	}
}

func TestGetSummaryInvalidCampus(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetSummary(context.Background(), "not-a-campus")
	if !errors.Is(err, dashboarddomain.ErrInvalidCampus) {
		t.Fatalf("expected ErrInvalidCampus, got %v", err)
	}
}

func TestListActivityFormatsEvents(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	campusID := node.Generate()

	rows := []struct {
		eventType string
		payload   string
		at        time.Time
	}{
		{events.EventCertificateIssued, `{"person_name":"Ayesha Khan"}`, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		{events.EventAssignmentCreated, `{"title":"Algebra homework"}`, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{events.EventCertificateDeleted, `{}`, time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)},
	}
	for i, row := range rows {
		err := svc.db.Exec(
			`INSERT INTO campus_events (id, campus_id, event_type, payload, dedupe_key, published, created_at)
			 VALUES (?, ?, ?, ?, ?, false, ?)`,
			node.Generate(), campusID, row.eventType, row.payload, row.eventType, row.at,
		).Error
		if err != nil {
			t.Fatalf("seed event %d: %v", i, err)
		}
	}

	resp, err := svc.ListActivity(ctx, campusID.String(), 10)
	if err != nil {
		t.Fatalf("ListActivity returned error: %v", err)
	}
	if len(resp.Activity) != 3 {
		t.Fatalf("expected 3 activity rows, got %d", len(resp.Activity))
	}
	if resp.Activity[0].Message != "Certificate deleted" {
		t.Fatalf("expected newest event first, got %q", resp.Activity[0].Message)
	}
	if resp.Activity[1].Message != `Assignment "Algebra homework" posted` {
		t.Fatalf("unexpected assignment message %q", resp.Activity[1].Message)
	}
	if resp.Activity[2].Message != "Certificate issued to Ayesha Khan" {
		t.Fatalf("unexpected certificate message %q", resp.Activity[2].Message)
	}
}

func TestListActivityLimit(t *testing.T) {
	svc, node := newTestService(t)
	ctx := context.Background()
	campusID := node.Generate()

	for i := 0; i < 5; i++ {
		err := svc.db.Exec(
			`INSERT INTO campus_events (id, campus_id, event_type, payload, dedupe_key, published, created_at)
			 VALUES (?, ?, ?, ?, ?, false, ?)`,
			node.Generate(), campusID, events.EventCertificateIssued, `{}`,
			node.Generate().String(), time.Date(2026, 3, 1, 9, i, 0, 0, time.UTC),
		).Error
		if err != nil {
			t.Fatalf("seed event %d: %v", i, err)
		}
	}

	resp, err := svc.ListActivity(ctx, campusID.String(), 2)
	if err != nil {
		t.Fatalf("ListActivity returned error: %v", err)
	}
	if len(resp.Activity) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(resp.Activity))
	}
}
