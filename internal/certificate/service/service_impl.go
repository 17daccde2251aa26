package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	certificatedomain "github.com/shafaqzafar/demoacademia/internal/certificate/domain"
	"github.com/shafaqzafar/demoacademia/internal/certificate/printing"
	"github.com/shafaqzafar/demoacademia/internal/certificate/render"
	certtemplatedomain "github.com/shafaqzafar/demoacademia/internal/certtemplate/domain"
	"github.com/shafaqzafar/demoacademia/internal/clock"
	"github.com/shafaqzafar/demoacademia/internal/events"
	"github.com/shafaqzafar/demoacademia/internal/observability/metrics"
	studentdomain "github.com/shafaqzafar/demoacademia/internal/student/domain"
	"github.com/shafaqzafar/demoacademia/pkg/db/pagination"
	"github.com/shafaqzafar/demoacademia/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID        *snowflake.Node
	certrepo     repository.Repository[certificatedomain.StudentCertificate]
	studentrepo  repository.Repository[studentdomain.Student]
	templaterepo certtemplatedomain.Repository

	engine     *render.Engine
	dispatcher *printing.Dispatcher
	outbox     *events.Outbox
	metrics    *metrics.RenderMetrics
}

type ServiceParam struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	GenID        *snowflake.Node
	TemplateRepo certtemplatedomain.Repository
	Engine       *render.Engine
	Dispatcher   *printing.Dispatcher
	Outbox       *events.Outbox
	Metrics      *metrics.RenderMetrics `optional:"true"`
}

func NewService(p ServiceParam) certificatedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("certificate.service"),
		clock: p.Clock,

		genID:        p.GenID,
		certrepo:     repository.ProvideStore[certificatedomain.StudentCertificate](p.DB),
		studentrepo:  repository.ProvideStore[studentdomain.Student](p.DB),
		templaterepo: p.TemplateRepo,

		engine:     p.Engine,
		dispatcher: p.Dispatcher,
		outbox:     p.Outbox,
		metrics:    p.Metrics,
	}
}

// Issue creates one certificate per selected student. Creates are
// independent; a failing student is reported in the result and the rest
// proceed.
func (s *Service) Issue(ctx context.Context, req certificatedomain.IssueRequest) (*certificatedomain.IssueResult, error) {
	campusID, err := parseCampusID(req.CampusID)
	if err != nil {
		return nil, err
	}
	templateID, err := snowflake.ParseString(strings.TrimSpace(req.TemplateID))
	if err != nil {
		return nil, certificatedomain.ErrTemplateNotFound
	}
	if len(req.StudentIDs) == 0 {
		return nil, certificatedomain.ErrNoStudents
	}

	tmpl, err := s.templaterepo.FindByID(ctx, nil, campusID, templateID)
	if err != nil {
		if errors.Is(err, certtemplatedomain.ErrNotFound) {
			return nil, certificatedomain.ErrTemplateNotFound
		}
		return nil, err
	}

	issueDate := strings.TrimSpace(req.IssueDate)
	if issueDate == "" {
		issueDate = s.clock.Now().Format("2006-01-02")
	}

	result := &certificatedomain.IssueResult{}
	for _, rawStudentID := range req.StudentIDs {
		cert, err := s.issueOne(ctx, campusID, tmpl.ID, rawStudentID, issueDate)
		if err != nil {
			result.Failed = append(result.Failed, certificatedomain.IssueFailure{
				StudentID: rawStudentID,
				Reason:    err.Error(),
			})
			continue
		}
		result.Issued = append(result.Issued, *cert)
	}
	return result, nil
}

func (s *Service) issueOne(ctx context.Context, campusID, templateID snowflake.ID, rawStudentID, issueDate string) (*certificatedomain.StudentCertificate, error) {
	studentID, err := snowflake.ParseString(strings.TrimSpace(rawStudentID))
	if err != nil {
		return nil, certificatedomain.ErrStudentNotFound
	}

	var student studentdomain.Student
	if err := s.studentrepo.First(ctx, nil, &student, "id = ? AND campus_id = ?", studentID, campusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, certificatedomain.ErrStudentNotFound
		}
		return nil, err
	}

	now := s.clock.Now()
	cert := certificatedomain.StudentCertificate{
		ID:         s.genID.Generate(),
		CampusID:   campusID,
		StudentID:  student.ID,
		TemplateID: templateID,
		Status:     certificatedomain.StatusIssued,
		IssueDate:  issueDate,
		PersonName: student.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.certrepo.Insert(ctx, tx, &cert); err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			CampusID: campusID,
			Type:     events.EventCertificateIssued,
			Payload: events.CertificatePayload{
				CertificateID: cert.ID.String(),
				CampusID:      campusID.String(),
				StudentID:     student.ID.String(),
				TemplateID:    templateID.String(),
				PersonName:    student.Name,
			}.ToMap(),
			DedupeKey: "certificate.issued:" + cert.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (s *Service) List(ctx context.Context, req certificatedomain.ListRequest) (*certificatedomain.ListResponse, error) {
	campusID, err := parseCampusID(req.CampusID)
	if err != nil {
		return nil, err
	}

	page := pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}.Normalize()
	offset, err := pagination.DecodeToken(page.PageToken)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Model(&certificatedomain.StudentCertificate{}).
		Where("campus_id = ?", campusID)
	if raw := strings.TrimSpace(req.StudentID); raw != "" {
		studentID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, certificatedomain.ErrInvalidID
		}
		query = query.Where("student_id = ?", studentID)
	}
	if raw := strings.TrimSpace(req.TemplateID); raw != "" {
		templateID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, certificatedomain.ErrInvalidID
		}
		query = query.Where("template_id = ?", templateID)
	}
	if status := strings.ToLower(strings.TrimSpace(req.Status)); status != "" {
		if status != string(certificatedomain.StatusIssued) && status != string(certificatedomain.StatusPrinted) {
			return nil, certificatedomain.ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var certificates []certificatedomain.StudentCertificate
	err = query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(page.PageSize).
		Find(&certificates).Error
	if err != nil {
		return nil, err
	}

	resp := &certificatedomain.ListResponse{
		Certificates: certificates,
		PageInfo:     pagination.PageInfo{TotalSize: total},
	}
	if next := offset + len(certificates); int64(next) < total {
		resp.PageInfo.NextPageToken = pagination.EncodeToken(next)
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, campusID, id string) (*certificatedomain.StudentCertificate, error) {
	campus, err := parseCampusID(campusID)
	if err != nil {
		return nil, err
	}
	certID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, certificatedomain.ErrInvalidID
	}

	var cert certificatedomain.StudentCertificate
	if err := s.certrepo.First(ctx, nil, &cert, "id = ? AND campus_id = ?", certID, campus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, certificatedomain.ErrCertificateNotFound
		}
		return nil, err
	}
	return &cert, nil
}

func (s *Service) Update(ctx context.Context, campusID, id string, req certificatedomain.UpdateRequest) (*certificatedomain.StudentCertificate, error) {
	cert, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return nil, err
	}

	if req.IssueDate != nil {
		cert.IssueDate = strings.TrimSpace(*req.IssueDate)
	}
	if req.PersonName != nil {
		cert.PersonName = strings.TrimSpace(*req.PersonName)
	}
	cert.UpdatedAt = s.clock.Now()

	if err := s.certrepo.Save(ctx, nil, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *Service) Delete(ctx context.Context, campusID, id string) error {
	cert, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.certrepo.Delete(ctx, tx, "id = ?", cert.ID); err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			CampusID: cert.CampusID,
			Type:     events.EventCertificateDeleted,
			Payload: events.CertificatePayload{
				CertificateID: cert.ID.String(),
				CampusID:      cert.CampusID.String(),
				StudentID:     cert.StudentID.String(),
			}.ToMap(),
			DedupeKey: "certificate.deleted:" + cert.ID.String(),
		})
	})
}

// Render composes the certificate into a standalone HTML document.
func (s *Service) Render(ctx context.Context, campusID, id string) (string, error) {
	doc, _, err := s.renderDocument(ctx, campusID, id)
	if err != nil {
		return "", err
	}
	return doc.HTML(), nil
}

func (s *Service) renderDocument(ctx context.Context, campusID, id string) (*render.Document, *certificatedomain.StudentCertificate, error) {
	start := time.Now()
	cert, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return nil, nil, err
	}

	tmpl, err := s.templaterepo.FindByID(ctx, nil, cert.CampusID, cert.TemplateID)
	if err != nil && !errors.Is(err, certtemplatedomain.ErrNotFound) {
		return nil, nil, err
	}

	input := render.RenderInput{
		Template: tmpl.RenderView(),
		Certificate: render.CertificateView{
			ID:         int64(cert.ID),
			IssueDate:  cert.IssueDate,
			PersonName: cert.PersonName,
		},
	}

	var student studentdomain.Student
	err = s.studentrepo.First(ctx, nil, &student, "id = ? AND campus_id = ?", cert.StudentID, cert.CampusID)
	switch {
	case err == nil:
		input.Student = &render.StudentView{
			ID:      int64(student.ID),
			Name:    student.Name,
			Class:   student.Class,
			Section: student.Section,
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Render falls back to the certificate's stored person name.
	default:
		return nil, nil, err
	}

	doc, err := s.engine.Render(input)
	if err != nil {
		if errors.Is(err, render.ErrTemplateNotFound) {
			s.metrics.IncRendered("template_not_found")
			return nil, nil, certificatedomain.ErrTemplateNotFound
		}
		s.metrics.IncRendered("failed")
		return nil, nil, err
	}
	s.metrics.IncRendered("success")
	s.metrics.ObserveRenderDuration("success", time.Since(start))
	return doc, cert, nil
}

// Print renders the certificate and hands it to the print dispatcher, then
// marks the certificate printed.
func (s *Service) Print(ctx context.Context, campusID, id string) (*certificatedomain.StudentCertificate, error) {
	doc, cert, err := s.renderDocument(ctx, campusID, id)
	if err != nil {
		return nil, err
	}

	s.metrics.PrintStarted()
	err = s.dispatcher.Display(ctx, doc)
	s.metrics.PrintFinished()
	if err != nil {
		s.metrics.IncPrintDispatched("surface_unavailable")
		return nil, err
	}
	s.metrics.IncPrintDispatched("success")

	cert.Status = certificatedomain.StatusPrinted
	cert.UpdatedAt = s.clock.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.certrepo.Save(ctx, tx, cert); err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			CampusID: cert.CampusID,
			Type:     events.EventCertificatePrinted,
			Payload: events.CertificatePayload{
				CertificateID: cert.ID.String(),
				CampusID:      cert.CampusID.String(),
				StudentID:     cert.StudentID.String(),
			}.ToMap(),
		})
	})
	if err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *Service) Stats(ctx context.Context, campusID string) (*certificatedomain.Stats, error) {
	campus, err := parseCampusID(campusID)
	if err != nil {
		return nil, err
	}

	stats := &certificatedomain.Stats{}
	base := s.db.WithContext(ctx).
		Model(&certificatedomain.StudentCertificate{}).
		Where("campus_id = ?", campus)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	now := s.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if err := base.Session(&gorm.Session{}).
		Where("created_at >= ?", monthStart).
		Count(&stats.IssuedThisMonth).Error; err != nil {
		return nil, err
	}

	if err := base.Session(&gorm.Session{}).
		Where("status = ?", certificatedomain.StatusPrinted).
		Count(&stats.Printed).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func parseCampusID(raw string) (snowflake.ID, error) {
	campusID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || campusID == 0 {
		return 0, certificatedomain.ErrInvalidCampus
	}
	return campusID, nil
}
