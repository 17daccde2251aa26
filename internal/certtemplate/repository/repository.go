package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	certtemplatedomain "github.com/shafaqzafar/demoacademia/internal/certtemplate/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) certtemplatedomain.Repository {
	return &repo{db: db}
}

func (r *repo) conn(db *gorm.DB) *gorm.DB {
	if db != nil {
		return db
	}
	return r.db
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tmpl *certtemplatedomain.CertificateTemplate) error {
	return r.conn(db).WithContext(ctx).Create(tmpl).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tmpl *certtemplatedomain.CertificateTemplate) error {
	return r.conn(db).WithContext(ctx).Save(tmpl).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, campusID, id snowflake.ID) error {
	return r.conn(db).WithContext(ctx).
		Where("campus_id = ? AND id = ?", campusID, id).
		Delete(&certtemplatedomain.CertificateTemplate{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, campusID, id snowflake.ID) (*certtemplatedomain.CertificateTemplate, error) {
	var tmpl certtemplatedomain.CertificateTemplate
	err := r.conn(db).WithContext(ctx).
		Where("campus_id = ? AND id = ?", campusID, id).
		First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, certtemplatedomain.ErrNotFound
		}
		return nil, err
	}
	return &tmpl, nil
}

func (r *repo) FindDefault(ctx context.Context, db *gorm.DB, campusID snowflake.ID, templateType string) (*certtemplatedomain.CertificateTemplate, error) {
	query := r.conn(db).WithContext(ctx).
		Where("campus_id = ? AND is_default = ?", campusID, true)
	if templateType = strings.TrimSpace(templateType); templateType != "" {
		query = query.Where("type = ?", templateType)
	}

	var tmpl certtemplatedomain.CertificateTemplate
	err := query.First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, certtemplatedomain.ErrNotFound
		}
		return nil, err
	}
	return &tmpl, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, campusID snowflake.ID, filter certtemplatedomain.ListRequest) ([]certtemplatedomain.CertificateTemplate, error) {
	query := r.conn(db).WithContext(ctx).
		Where("campus_id = ?", campusID)
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if templateType := strings.TrimSpace(filter.Type); templateType != "" {
		query = query.Where("type = ?", templateType)
	}
	if filter.IsDefault != nil {
		query = query.Where("is_default = ?", *filter.IsDefault)
	}

	var templates []certtemplatedomain.CertificateTemplate
	if err := query.Order("created_at DESC, id DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}
