package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tmpl *CertificateTemplate) error
	Update(ctx context.Context, db *gorm.DB, tmpl *CertificateTemplate) error
	Delete(ctx context.Context, db *gorm.DB, campusID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, campusID, id snowflake.ID) (*CertificateTemplate, error)
	FindDefault(ctx context.Context, db *gorm.DB, campusID snowflake.ID, templateType string) (*CertificateTemplate, error)
	List(ctx context.Context, db *gorm.DB, campusID snowflake.ID, filter ListRequest) ([]CertificateTemplate, error)
}
