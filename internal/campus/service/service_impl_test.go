package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	campusdomain "github.com/shafaqzafar/demoacademia/internal/campus/domain"
	"github.com/shafaqzafar/demoacademia/internal/clock"
	"github.com/shafaqzafar/demoacademia/pkg/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCampusTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&campusdomain.Campus{}, &campusdomain.CampusMember{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake.NewNode: %v", err)
	}
	return &Service{
		db:    db,
		log:   zap.NewNop(),
		clock: clock.FixedClock{At: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},

		genID:      node,
		campusrepo: repository.ProvideStore[campusdomain.Campus](db),
		memberrepo: repository.ProvideStore[campusdomain.CampusMember](db),
	}
}

func TestCreateCampusMakesOwner(t *testing.T) {
	db := setupCampusTestDB(t)
	svc := newTestService(t, db)
	userID := svc.genID.Generate()

	campus, err := svc.Create(context.Background(), userID, campusdomain.CreateCampusRequest{Name: "North Campus"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if campus.Slug != "north-campus" {
		t.Fatalf("expected derived slug, got %q", campus.Slug)
	}

	members, err := svc.ListMembers(context.Background(), campus.ID.String())
	if err != nil {
		t.Fatalf("ListMembers returned error: %v", err)
	}
	if len(members) != 1 || members[0].Role != campusdomain.RoleOwner {
		t.Fatalf("expected creating user to be owner, got %+v", members)
	}
}

func TestCreateCampusRejectsDuplicateSlug(t *testing.T) {
	db := setupCampusTestDB(t)
	svc := newTestService(t, db)
	userID := svc.genID.Generate()

	if _, err := svc.Create(context.Background(), userID, campusdomain.CreateCampusRequest{Name: "Main", Slug: "main"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), userID, campusdomain.CreateCampusRequest{Name: "Main Two", Slug: "main"})
	if !errors.Is(err, campusdomain.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCreateCampusValidation(t *testing.T) {
	db := setupCampusTestDB(t)
	svc := newTestService(t, db)

	if _, err := svc.Create(context.Background(), 0, campusdomain.CreateCampusRequest{Name: "X"}); !errors.Is(err, campusdomain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
	if _, err := svc.Create(context.Background(), svc.genID.Generate(), campusdomain.CreateCampusRequest{Name: "  "}); !errors.Is(err, campusdomain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.Create(context.Background(), svc.genID.Generate(), campusdomain.CreateCampusRequest{Name: "X", Slug: "Bad Slug!"}); !errors.Is(err, campusdomain.ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
}

func TestListByUserScopesMemberships(t *testing.T) {
	db := setupCampusTestDB(t)
	svc := newTestService(t, db)
	alice := svc.genID.Generate()
	bob := svc.genID.Generate()

	if _, err := svc.Create(context.Background(), alice, campusdomain.CreateCampusRequest{Name: "Alpha"}); err != nil {
		t.Fatalf("create alpha: %v", err)
	}
	if _, err := svc.Create(context.Background(), bob, campusdomain.CreateCampusRequest{Name: "Beta"}); err != nil {
		t.Fatalf("create beta: %v", err)
	}

	campuses, err := svc.ListByUser(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(campuses) != 1 || campuses[0].Name != "Alpha" {
		t.Fatalf("expected only alice's campus, got %+v", campuses)
	}
}

func TestUpdateCampus(t *testing.T) {
	db := setupCampusTestDB(t)
	svc := newTestService(t, db)

	campus, err := svc.Create(context.Background(), svc.genID.Generate(), campusdomain.CreateCampusRequest{Name: "Old Name"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "New Name"
	updated, err := svc.Update(context.Background(), campus.ID.String(), campusdomain.UpdateCampusRequest{Name: &name})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "New Name" {
		t.Fatalf("expected renamed campus, got %q", updated.Name)
	}
	if updated.Slug != campus.Slug {
		t.Fatalf("slug must not change on rename")
	}

	if _, err := svc.Update(context.Background(), "999999", campusdomain.UpdateCampusRequest{Name: &name}); !errors.Is(err, campusdomain.ErrCampusNotFound) {
		t.Fatalf("expected ErrCampusNotFound, got %v", err)
	}
}

func TestAddMemberAndIsMember(t *testing.T) {
	db := setupCampusTestDB(t)
	svc := newTestService(t, db)
	owner := svc.genID.Generate()

	campus, err := svc.Create(context.Background(), owner, campusdomain.CreateCampusRequest{Name: "Gamma"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	teacher := svc.genID.Generate()
	member, err := svc.AddMember(context.Background(), campus.ID.String(), teacher, campusdomain.RoleTeacher)
	if err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}
	if member.Role != campusdomain.RoleTeacher {
		t.Fatalf("unexpected role %q", member.Role)
	}

	if _, err := svc.AddMember(context.Background(), campus.ID.String(), teacher, campusdomain.RoleTeacher); !errors.Is(err, campusdomain.ErrMemberExists) {
		t.Fatalf("expected ErrMemberExists, got %v", err)
	}
	if _, err := svc.AddMember(context.Background(), campus.ID.String(), svc.genID.Generate(), campusdomain.Role("JANITOR")); !errors.Is(err, campusdomain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}

	ok, err := svc.IsMember(context.Background(), campus.ID, teacher)
	if err != nil || !ok {
		t.Fatalf("expected teacher membership, ok=%v err=%v", ok, err)
	}
	ok, err = svc.IsMember(context.Background(), campus.ID, svc.genID.Generate())
	if err != nil || ok {
		t.Fatalf("expected stranger to not be a member, ok=%v err=%v", ok, err)
	}
}
