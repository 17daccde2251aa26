package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shafaqzafar/demoacademia/internal/cache"
	certtemplatedomain "github.com/shafaqzafar/demoacademia/internal/certtemplate/domain"
	"github.com/shafaqzafar/demoacademia/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultTemplateType = "achievement"
	defaultCacheTTL     = 30 * time.Second
)

var typePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

type defaultKey struct {
	campusID     snowflake.ID
	templateType string
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID    *snowflake.Node
	repo     certtemplatedomain.Repository
	defaults *cache.TTLCache[defaultKey, *certtemplatedomain.CertificateTemplate]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  certtemplatedomain.Repository
}

func NewService(p ServiceParam) certtemplatedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("certtemplate.service"),
		clock: p.Clock,

		genID:    p.GenID,
		repo:     p.Repo,
		defaults: cache.NewTTLCache[defaultKey, *certtemplatedomain.CertificateTemplate](),
	}
}

func (s *Service) Create(ctx context.Context, req certtemplatedomain.CreateRequest) (*certtemplatedomain.CertificateTemplate, error) {
	campusID, err := certtemplatedomain.ParseID(req.CampusID)
	if err != nil || campusID == 0 {
		return nil, certtemplatedomain.ErrInvalidCampus
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, certtemplatedomain.ErrInvalidName
	}
	templateType, err := normalizeType(req.Type)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	tmpl := certtemplatedomain.CertificateTemplate{
		ID:        s.genID.Generate(),
		CampusID:  campusID,
		Name:      name,
		Type:      templateType,
		IsDefault: req.IsDefault,

		Orientation: strings.TrimSpace(req.Orientation),

		BackgroundColor:    strings.TrimSpace(req.BackgroundColor),
		LogoURL:            strings.TrimSpace(req.LogoURL),
		ShowBorder:         req.ShowBorder,
		BorderColor:        strings.TrimSpace(req.BorderColor),
		BorderWidth:        req.BorderWidth,
		BorderStyle:        strings.TrimSpace(req.BorderStyle),
		BorderRadius:       req.BorderRadius,
		BackgroundImageURL: strings.TrimSpace(req.BackgroundImageURL),
		BackgroundOpacity:  req.BackgroundOpacity,
		WatermarkText:      strings.TrimSpace(req.WatermarkText),
		WatermarkImageURL:  strings.TrimSpace(req.WatermarkImageURL),
		WatermarkOpacity:   req.WatermarkOpacity,
		WatermarkRotate:    req.WatermarkRotate,

		FontFamily:      strings.TrimSpace(req.FontFamily),
		TitleFontFamily: strings.TrimSpace(req.TitleFontFamily),
		TitleFontSize:   req.TitleFontSize,
		BodyFontSize:    req.BodyFontSize,
		FooterFontSize:  req.FooterFontSize,

		Title:      req.Title,
		BodyText:   req.BodyText,
		FooterText: req.FooterText,

		Signature1Name:     strings.TrimSpace(req.Signature1Name),
		Signature1Title:    strings.TrimSpace(req.Signature1Title),
		Signature1ImageURL: strings.TrimSpace(req.Signature1ImageURL),
		Signature2Name:     strings.TrimSpace(req.Signature2Name),
		Signature2Title:    strings.TrimSpace(req.Signature2Title),
		Signature2ImageURL: strings.TrimSpace(req.Signature2ImageURL),

		ShowSerial:    req.ShowSerial,
		SerialPrefix:  strings.TrimSpace(req.SerialPrefix),
		SerialPadding: req.SerialPadding,

		Extras: req.Extras,

		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tmpl.IsDefault {
			if err := s.clearDefault(ctx, tx, campusID, templateType); err != nil {
				return err
			}
		}
		return s.repo.Insert(ctx, tx, &tmpl)
	})
	if err != nil {
		return nil, err
	}
	s.defaults.Delete(defaultKey{campusID: campusID, templateType: templateType})
	return &tmpl, nil
}

func (s *Service) List(ctx context.Context, campusID string, req certtemplatedomain.ListRequest) ([]certtemplatedomain.CertificateTemplate, error) {
	campus, err := certtemplatedomain.ParseID(campusID)
	if err != nil || campus == 0 {
		return nil, certtemplatedomain.ErrInvalidCampus
	}
	return s.repo.List(ctx, nil, campus, req)
}

func (s *Service) GetByID(ctx context.Context, campusID, id string) (*certtemplatedomain.CertificateTemplate, error) {
	campus, err := certtemplatedomain.ParseID(campusID)
	if err != nil || campus == 0 {
		return nil, certtemplatedomain.ErrInvalidCampus
	}
	templateID, err := certtemplatedomain.ParseID(id)
	if err != nil {
		return nil, certtemplatedomain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, nil, campus, templateID)
}

func (s *Service) GetDefault(ctx context.Context, campusID, templateType string) (*certtemplatedomain.CertificateTemplate, error) {
	campus, err := certtemplatedomain.ParseID(campusID)
	if err != nil || campus == 0 {
		return nil, certtemplatedomain.ErrInvalidCampus
	}
	key := defaultKey{campusID: campus, templateType: templateType}
	if tmpl, ok := s.defaults.Get(key); ok {
		return tmpl, nil
	}
	tmpl, err := s.repo.FindDefault(ctx, nil, campus, templateType)
	if err != nil {
		return nil, err
	}
	s.defaults.Set(key, tmpl, defaultCacheTTL)
	return tmpl, nil
}

func (s *Service) Update(ctx context.Context, campusID, id string, req certtemplatedomain.UpdateRequest) (*certtemplatedomain.CertificateTemplate, error) {
	tmpl, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return nil, err
	}
	previousType := tmpl.Type

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, certtemplatedomain.ErrInvalidName
		}
		tmpl.Name = name
	}
	if req.Type != nil {
		templateType, err := normalizeType(*req.Type)
		if err != nil {
			return nil, err
		}
		tmpl.Type = templateType
	}

	applyString(&tmpl.Orientation, req.Orientation)
	applyString(&tmpl.BackgroundColor, req.BackgroundColor)
	applyString(&tmpl.LogoURL, req.LogoURL)
	applyBool(&tmpl.ShowBorder, req.ShowBorder)
	applyString(&tmpl.BorderColor, req.BorderColor)
	applyFloat(&tmpl.BorderWidth, req.BorderWidth)
	applyString(&tmpl.BorderStyle, req.BorderStyle)
	applyFloat(&tmpl.BorderRadius, req.BorderRadius)
	applyString(&tmpl.BackgroundImageURL, req.BackgroundImageURL)
	applyFloat(&tmpl.BackgroundOpacity, req.BackgroundOpacity)
	applyString(&tmpl.WatermarkText, req.WatermarkText)
	applyString(&tmpl.WatermarkImageURL, req.WatermarkImageURL)
	applyFloat(&tmpl.WatermarkOpacity, req.WatermarkOpacity)
	applyFloat(&tmpl.WatermarkRotate, req.WatermarkRotate)
	applyString(&tmpl.FontFamily, req.FontFamily)
	applyString(&tmpl.TitleFontFamily, req.TitleFontFamily)
	applyFloat(&tmpl.TitleFontSize, req.TitleFontSize)
	applyFloat(&tmpl.BodyFontSize, req.BodyFontSize)
	applyFloat(&tmpl.FooterFontSize, req.FooterFontSize)
	if req.Title != nil {
		tmpl.Title = *req.Title
	}
	if req.BodyText != nil {
		tmpl.BodyText = *req.BodyText
	}
	if req.FooterText != nil {
		tmpl.FooterText = *req.FooterText
	}
	applyString(&tmpl.Signature1Name, req.Signature1Name)
	applyString(&tmpl.Signature1Title, req.Signature1Title)
	applyString(&tmpl.Signature1ImageURL, req.Signature1ImageURL)
	applyString(&tmpl.Signature2Name, req.Signature2Name)
	applyString(&tmpl.Signature2Title, req.Signature2Title)
	applyString(&tmpl.Signature2ImageURL, req.Signature2ImageURL)
	applyBool(&tmpl.ShowSerial, req.ShowSerial)
	applyString(&tmpl.SerialPrefix, req.SerialPrefix)
	applyFloat(&tmpl.SerialPadding, req.SerialPadding)

	if req.Extras != nil {
		tmpl.Extras = req.Extras
	}
	tmpl.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, nil, tmpl); err != nil {
		return nil, err
	}
	s.defaults.Delete(defaultKey{campusID: tmpl.CampusID, templateType: previousType})
	s.defaults.Delete(defaultKey{campusID: tmpl.CampusID, templateType: tmpl.Type})
	return tmpl, nil
}

func (s *Service) SetDefault(ctx context.Context, campusID, id string) (*certtemplatedomain.CertificateTemplate, error) {
	tmpl, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.clearDefault(ctx, tx, tmpl.CampusID, tmpl.Type); err != nil {
			return err
		}
		tmpl.IsDefault = true
		tmpl.UpdatedAt = s.clock.Now()
		return s.repo.Update(ctx, tx, tmpl)
	})
	if err != nil {
		return nil, err
	}
	s.defaults.Delete(defaultKey{campusID: tmpl.CampusID, templateType: tmpl.Type})
	return tmpl, nil
}

func (s *Service) Delete(ctx context.Context, campusID, id string) error {
	tmpl, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, nil, tmpl.CampusID, tmpl.ID); err != nil {
		return err
	}
	s.defaults.Delete(defaultKey{campusID: tmpl.CampusID, templateType: tmpl.Type})
	return nil
}

func (s *Service) clearDefault(ctx context.Context, tx *gorm.DB, campusID snowflake.ID, templateType string) error {
	return tx.WithContext(ctx).
		Model(&certtemplatedomain.CertificateTemplate{}).
		Where("campus_id = ? AND type = ? AND is_default = ?", campusID, templateType, true).
		Update("is_default", false).Error
}

func normalizeType(raw string) (string, error) {
	templateType := strings.ToLower(strings.TrimSpace(raw))
	if templateType == "" {
		return defaultTemplateType, nil
	}
	if !typePattern.MatchString(templateType) {
		return "", certtemplatedomain.ErrInvalidType
	}
	return templateType, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func applyFloat(dst **float64, src *float64) {
	if src != nil {
		*dst = src
	}
}

func applyBool(dst **bool, src *bool) {
	if src != nil {
		*dst = src
	}
}
