package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	certificatedomain "github.com/shafaqzafar/demoacademia/internal/certificate/domain"
	"github.com/shafaqzafar/demoacademia/internal/certificate/printing"
	"github.com/shafaqzafar/demoacademia/internal/certificate/render"
	certtemplatedomain "github.com/shafaqzafar/demoacademia/internal/certtemplate/domain"
	certtemplaterepo "github.com/shafaqzafar/demoacademia/internal/certtemplate/repository"
	"github.com/shafaqzafar/demoacademia/internal/clock"
	"github.com/shafaqzafar/demoacademia/internal/events"
	studentdomain "github.com/shafaqzafar/demoacademia/internal/student/domain"
	"github.com/shafaqzafar/demoacademia/pkg/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubSurface struct {
	content  string
	printed  bool
	released bool
}

func (s *stubSurface) SetContent(_ context.Context, html string) error {
	s.content = html
	return nil
}

func (s *stubSurface) Print(context.Context) error {
	s.printed = true
	return nil
}

func (s *stubSurface) Release() { s.released = true }

type stubFactory struct {
	surfaces []*stubSurface
	fail     bool
}

func (f *stubFactory) Acquire(context.Context) (printing.Surface, error) {
	if f.fail {
		return nil, errors.New("browser down")
	}
	surface := &stubSurface{}
	f.surfaces = append(f.surfaces, surface)
	return surface, nil
}

type fixture struct {
	svc     *Service
	db      *gorm.DB
	factory *stubFactory
	node    *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&certificatedomain.StudentCertificate{},
		&certtemplatedomain.CertificateTemplate{},
		&studentdomain.Student{},
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
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_campus_events_dedupe
		 ON campus_events (campus_id, dedupe_key)`,
	).Error; err != nil {
		t.Fatalf("create dedupe index: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake.NewNode: %v", err)
	}
	factory := &stubFactory{}
	log := zap.NewNop()

	svc := &Service{
		db:    db,
		log:   log,
		clock: clock.FixedClock{At: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)},

		genID:        node,
		certrepo:     repository.ProvideStore[certificatedomain.StudentCertificate](db),
		studentrepo:  repository.ProvideStore[studentdomain.Student](db),
		templaterepo: certtemplaterepo.Provide(db),

		engine:     render.NewEngine(),
		dispatcher: printing.NewDispatcher(factory, time.Millisecond, log),
		outbox:     events.NewOutbox(db, node),
	}
	return &fixture{svc: svc, db: db, factory: factory, node: node}
}

func (f *fixture) seedCampus() snowflake.ID {
	return f.node.Generate()
}

func (f *fixture) seedStudent(t *testing.T, campusID snowflake.ID, name, class string) studentdomain.Student {
	t.Helper()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	student := studentdomain.Student{
		ID:        f.node.Generate(),
		CampusID:  campusID,
		Name:      name,
		Class:     class,
		Section:   "A",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.db.Create(&student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return student
}

func (f *fixture) seedTemplate(t *testing.T, campusID snowflake.ID) certtemplatedomain.CertificateTemplate {
	t.Helper()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tmpl := certtemplatedomain.CertificateTemplate{
		ID:        f.node.Generate(),
		CampusID:  campusID,
		Name:      "Achievement",
		Type:      "achievement",
		BodyText:  "Awarded to {name} of class {class}",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.db.Create(&tmpl).Error; err != nil {
		t.Fatalf("seed template: %v", err)
	}
	return tmpl
}

func TestIssueCreatesOnePerStudent(t *testing.T) {
	f := newFixture(t)
	campusID := f.seedCampus()
	tmpl := f.seedTemplate(t, campusID)
	first := f.seedStudent(t, campusID, "Ayesha Khan", "10")
	second := f.seedStudent(t, campusID, "Bilal Ahmed", "10")

	result, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: tmpl.ID.String(),
		StudentIDs: []string{first.ID.String(), second.ID.String()},
		IssueDate:  "2026-03-15",
	})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if len(result.Issued) != 2 || len(result.Failed) != 0 {
		t.Fatalf("expected 2 issued, got %+v", result)
	}
	for _, cert := range result.Issued {
		if cert.Status != certificatedomain.StatusIssued {
			t.Fatalf("unexpected status %q", cert.Status)
		}
		if cert.IssueDate != "2026-03-15" {
			t.Fatalf("unexpected issue date %q", cert.IssueDate)
		}
	}
	if result.Issued[0].PersonName != "Ayesha Khan" {
		t.Fatalf("expected snapshot of student name, got %q", result.Issued[0].PersonName)
	}

	var eventCount int64
	if err := f.db.Table("campus_events").Where("event_type = ?", events.EventCertificateIssued).Count(&eventCount).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if eventCount != 2 {
		t.Fatalf("expected 2 issued events, got %d", eventCount)
	}
}

func TestIssueContinuesPastFailingStudent(t *testing.T) {
	f := newFixture(t)
	campusID := f.seedCampus()
	tmpl := f.seedTemplate(t, campusID)
	known := f.seedStudent(t, campusID, "Known", "9")
	missing := f.node.Generate()

	result, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: tmpl.ID.String(),
		StudentIDs: []string{missing.String(), known.ID.String()},
	})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if len(result.Issued) != 1 {
		t.Fatalf("expected the known student to issue, got %+v", result)
	}
	if len(result.Failed) != 1 || result.Failed[0].StudentID != missing.String() {
		t.Fatalf("expected one failure for missing student, got %+v", result.Failed)
	}
}

func TestIssueValidation(t *testing.T) {
	f := newFixture(t)
	campusID := f.seedCampus()
	tmpl := f.seedTemplate(t, campusID)

	if _, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: tmpl.ID.String(),
	}); !errors.Is(err, certificatedomain.ErrNoStudents) {
		t.Fatalf("expected ErrNoStudents, got %v", err)
	}
	if _, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: f.node.Generate().String(),
		StudentIDs: []string{"1"},
	}); !errors.Is(err, certificatedomain.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRenderSubstitutesAndEscapes(t *testing.T) {
	f := newFixture(t)
	campusID := f.seedCampus()
	tmpl := f.seedTemplate(t, campusID)
	student := f.seedStudent(t, campusID, "Ayesha & Co", "10")

	result, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: tmpl.ID.String(),
		StudentIDs: []string{student.ID.String()},
	})
	if err != nil || len(result.Issued) != 1 {
		t.Fatalf("issue: %v %+v", err, result)
	}

	html, err := f.svc.Render(context.Background(), campusID.String(), result.Issued[0].ID.String())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(html, "Awarded to Ayesha &amp; Co of class 10") {
		t.Fatalf("expected substituted and escaped body, got: %s", html)
	}
}

func TestRenderMissingTemplateSurfacesNotFound(t *testing.T) {
	f := newFixture(t)
	campusID := f.seedCampus()
	tmpl := f.seedTemplate(t, campusID)
	student := f.seedStudent(t, campusID, "Ayesha", "10")

	result, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: tmpl.ID.String(),
		StudentIDs: []string{student.ID.String()},
	})
	if err != nil || len(result.Issued) != 1 {
		t.Fatalf("issue: %v %+v", err, result)
	}
	if err := f.db.Delete(&certtemplatedomain.CertificateTemplate{}, "id = ?", tmpl.ID).Error; err != nil {
		t.Fatalf("delete template: %v", err)
	}

	if _, err := f.svc.Render(context.Background(), campusID.String(), result.Issued[0].ID.String()); !errors.Is(err, certificatedomain.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestPrintMarksPrintedAndDispatches(t *testing.T) {
	f := newFixture(t)
	campusID := f.seedCampus()
	tmpl := f.seedTemplate(t, campusID)
	student := f.seedStudent(t, campusID, "Bilal", "8")

	result, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: tmpl.ID.String(),
		StudentIDs: []string{student.ID.String()},
	})
	if err != nil || len(result.Issued) != 1 {
		t.Fatalf("issue: %v %+v", err, result)
	}

	cert, err := f.svc.Print(context.Background(), campusID.String(), result.Issued[0].ID.String())
	if err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	if cert.Status != certificatedomain.StatusPrinted {
		t.Fatalf("expected printed status, got %q", cert.Status)
	}
	if len(f.factory.surfaces) != 1 || !f.factory.surfaces[0].printed {
		t.Fatalf("expected one surface to print, got %+v", f.factory.surfaces)
	}
	if !strings.Contains(f.factory.surfaces[0].content, "Awarded to Bilal") {
		t.Fatalf("surface received wrong document")
	}

	var eventCount int64
	if err := f.db.Table("campus_events").Where("event_type = ?", events.EventCertificatePrinted).Count(&eventCount).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if eventCount != 1 {
		t.Fatalf("expected printed event, got %d", eventCount)
	}
}

func TestPrintSurfaceUnavailableLeavesStatus(t *testing.T) {
	f := newFixture(t)
	f.factory.fail = true
	campusID := f.seedCampus()
	tmpl := f.seedTemplate(t, campusID)
	student := f.seedStudent(t, campusID, "Bilal", "8")

	result, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: tmpl.ID.String(),
		StudentIDs: []string{student.ID.String()},
	})
	if err != nil || len(result.Issued) != 1 {
		t.Fatalf("issue: %v %+v", err, result)
	}

	if _, err := f.svc.Print(context.Background(), campusID.String(), result.Issued[0].ID.String()); !errors.Is(err, printing.ErrSurfaceUnavailable) {
		t.Fatalf("expected ErrSurfaceUnavailable, got %v", err)
	}

	cert, err := f.svc.GetByID(context.Background(), campusID.String(), result.Issued[0].ID.String())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cert.Status != certificatedomain.StatusIssued {
		t.Fatalf("failed print must not change status, got %q", cert.Status)
	}
}

func TestListFiltersAndStats(t *testing.T) {
	f := newFixture(t)
	campusID := f.seedCampus()
	tmpl := f.seedTemplate(t, campusID)
	first := f.seedStudent(t, campusID, "One", "10")
	second := f.seedStudent(t, campusID, "Two", "10")

	result, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: tmpl.ID.String(),
		StudentIDs: []string{first.ID.String(), second.ID.String()},
	})
	if err != nil || len(result.Issued) != 2 {
		t.Fatalf("issue: %v %+v", err, result)
	}
	if _, err := f.svc.Print(context.Background(), campusID.String(), result.Issued[0].ID.String()); err != nil {
		t.Fatalf("print: %v", err)
	}

	printed, err := f.svc.List(context.Background(), certificatedomain.ListRequest{
		CampusID: campusID.String(),
		Status:   "printed",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(printed.Certificates) != 1 {
		t.Fatalf("expected 1 printed certificate, got %d", len(printed.Certificates))
	}

	byStudent, err := f.svc.List(context.Background(), certificatedomain.ListRequest{
		CampusID:  campusID.String(),
		StudentID: second.ID.String(),
	})
	if err != nil {
		t.Fatalf("List by student returned error: %v", err)
	}
	if len(byStudent.Certificates) != 1 {
		t.Fatalf("expected 1 certificate for student, got %d", len(byStudent.Certificates))
	}

	if _, err := f.svc.List(context.Background(), certificatedomain.ListRequest{
		CampusID: campusID.String(),
		Status:   "lost",
	}); !errors.Is(err, certificatedomain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	stats, err := f.svc.Stats(context.Background(), campusID.String())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Total != 2 || stats.Printed != 1 || stats.IssuedThisMonth != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestDeletePublishesEvent(t *testing.T) {
	f := newFixture(t)
	campusID := f.seedCampus()
	tmpl := f.seedTemplate(t, campusID)
	student := f.seedStudent(t, campusID, "Gone", "7")

	result, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: tmpl.ID.String(),
		StudentIDs: []string{student.ID.String()},
	})
	if err != nil || len(result.Issued) != 1 {
		t.Fatalf("issue: %v %+v", err, result)
	}

	if err := f.svc.Delete(context.Background(), campusID.String(), result.Issued[0].ID.String()); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), campusID.String(), result.Issued[0].ID.String()); !errors.Is(err, certificatedomain.ErrCertificateNotFound) {
		t.Fatalf("expected ErrCertificateNotFound, got %v", err)
	}

	var eventCount int64
	if err := f.db.Table("campus_events").Where("event_type = ?", events.EventCertificateDeleted).Count(&eventCount).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if eventCount != 1 {
		t.Fatalf("expected deleted event, got %d", eventCount)
	}
}

func TestUpdateCertificate(t *testing.T) {
	f := newFixture(t)
	campusID := f.seedCampus()
	tmpl := f.seedTemplate(t, campusID)
	student := f.seedStudent(t, campusID, "Before", "6")

	result, err := f.svc.Issue(context.Background(), certificatedomain.IssueRequest{
		CampusID:   campusID.String(),
		TemplateID: tmpl.ID.String(),
		StudentIDs: []string{student.ID.String()},
	})
	if err != nil || len(result.Issued) != 1 {
		t.Fatalf("issue: %v %+v", err, result)
	}

	name := "Corrected Name"
	date := "2026-04-01"
	updated, err := f.svc.Update(context.Background(), campusID.String(), result.Issued[0].ID.String(), certificatedomain.UpdateRequest{
		PersonName: &name,
		IssueDate:  &date,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.PersonName != name || updated.IssueDate != date {
		t.Fatalf("unexpected update result %+v", updated)
	}
}
