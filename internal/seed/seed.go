package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/shafaqzafar/demoacademia/internal/auth/domain"
	"github.com/shafaqzafar/demoacademia/internal/auth/password"
	campusdomain "github.com/shafaqzafar/demoacademia/internal/campus/domain"
	"gorm.io/gorm"
)

const (
	defaultCampusName    = "Main"
	defaultCampusSlug    = "main"
	defaultAdminEmail    = "admin@demoacademia.local"
	defaultAdminPassword = "admin"
	defaultAdminDisplay  = "Campus Admin"
)

// EnsureMainCampus seeds the default campus for startup bootstrap.
func EnsureMainCampus(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureMainCampusTx(ctx, tx, node)
		return err
	})
}

// EnsureMainCampusAndAdmin seeds the default campus and admin user for
// single-tenant installs.
func EnsureMainCampusAndAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		campus, err := ensureMainCampusTx(ctx, tx, node)
		if err != nil {
			return err
		}

		var user authdomain.User
		err = tx.WithContext(ctx).
			Where("email = ?", strings.ToLower(defaultAdminEmail)).
			First(&user).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			hashed, err := password.Hash(defaultAdminPassword)
			if err != nil {
				return err
			}
			now := time.Now().UTC()
			user = authdomain.User{
				ID:           node.Generate(),
				Email:        strings.ToLower(defaultAdminEmail),
				DisplayName:  defaultAdminDisplay,
				PasswordHash: &hashed,
				IsDefault:    true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
				return err
			}
		}

		var member campusdomain.CampusMember
		err = tx.WithContext(ctx).
			Where("campus_id = ? AND user_id = ?", campus.ID, user.ID).
			First(&member).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			member = campusdomain.CampusMember{
				ID:        node.Generate(),
				CampusID:  campus.ID,
				UserID:    user.ID,
				Role:      campusdomain.RoleOwner,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.WithContext(ctx).Create(&member).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func ensureMainCampusTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (campusdomain.Campus, error) {
	var campus campusdomain.Campus
	err := tx.WithContext(ctx).Where("slug = ?", defaultCampusSlug).First(&campus).Error
	if err == nil {
		return campus, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return campus, err
	}
	now := time.Now().UTC()
	campus = campusdomain.Campus{
		ID:        node.Generate(),
		Name:      defaultCampusName,
		Slug:      defaultCampusSlug,
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&campus).Error; err != nil {
		return campus, err
	}
	return campus, nil
}
