package seed

import (
	"testing"

	authdomain "github.com/shafaqzafar/demoacademia/internal/auth/domain"
	campusdomain "github.com/shafaqzafar/demoacademia/internal/campus/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(&authdomain.User{}, &campusdomain.Campus{}, &campusdomain.CampusMember{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestEnsureMainCampusIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := EnsureMainCampus(db); err != nil {
		t.Fatalf("EnsureMainCampus: %v", err)
	}
	if err := EnsureMainCampus(db); err != nil {
		t.Fatalf("second EnsureMainCampus: %v", err)
	}

	var count int64
	if err := db.Model(&campusdomain.Campus{}).Where("slug = ?", defaultCampusSlug).Count(&count).Error; err != nil {
		t.Fatalf("count campuses: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one default campus, got %d", count)
	}
}

func TestEnsureMainCampusAndAdmin(t *testing.T) {
	db := newTestDB(t)

	if err := EnsureMainCampusAndAdmin(db); err != nil {
		t.Fatalf("EnsureMainCampusAndAdmin: %v", err)
	}
	if err := EnsureMainCampusAndAdmin(db); err != nil {
		t.Fatalf("second EnsureMainCampusAndAdmin: %v", err)
	}

	var user authdomain.User
	if err := db.Where("email = ?", defaultAdminEmail).First(&user).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if user.PasswordHash == nil || *user.PasswordHash == "" {
		t.Fatal("expected admin to have a password hash")
	}

	var members int64
	if err := db.Model(&campusdomain.CampusMember{}).Where("user_id = ?", user.ID).Count(&members).Error; err != nil {
		t.Fatalf("count memberships: %v", err)
	}
	if members != 1 {
		t.Fatalf("expected one OWNER membership, got %d", members)
	}

	var member campusdomain.CampusMember
	if err := db.Where("user_id = ?", user.ID).First(&member).Error; err != nil {
		t.Fatalf("load membership: %v", err)
	}
	if member.Role != campusdomain.RoleOwner {
		t.Fatalf("expected OWNER role, got %s", member.Role)
	}
}
