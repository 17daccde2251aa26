package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	assignmentdomain "github.com/shafaqzafar/demoacademia/internal/assignment/domain"
	certificatedomain "github.com/shafaqzafar/demoacademia/internal/certificate/domain"
	dashboarddomain "github.com/shafaqzafar/demoacademia/internal/dashboard/domain"
	"github.com/shafaqzafar/demoacademia/internal/events"
	notificationdomain "github.com/shafaqzafar/demoacademia/internal/notification/domain"
	studentdomain "github.com/shafaqzafar/demoacademia/internal/student/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultActivityLimit = 20

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	certificates certificatedomain.Service
}

type ServiceParam struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Certificates certificatedomain.Service
}

func NewService(p ServiceParam) dashboarddomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("dashboard.service"),
		certificates: p.Certificates,
	}
}

func (s *Service) GetSummary(ctx context.Context, campusID string) (dashboarddomain.SummaryResponse, error) {
	var resp dashboarddomain.SummaryResponse
	campus, err := parseCampusID(campusID)
	if err != nil {
		return resp, err
	}

	stats, err := s.certificates.Stats(ctx, campusID)
	if err != nil {
		return resp, err
	}
	resp.Summary.CertificatesTotal = stats.Total
	resp.Summary.CertificatesThisMonth = stats.IssuedThisMonth
	resp.Summary.CertificatesPrinted = stats.Printed

	counts := []struct {
		model any
		dest  *int64
		conds []any
	}{
		{&studentdomain.Student{}, &resp.Summary.Students, []any{"campus_id = ?", campus}},
		{&assignmentdomain.Assignment{}, &resp.Summary.Assignments, []any{"campus_id = ?", campus}},
		{&notificationdomain.Notification{}, &resp.Summary.UnreadNotifications, []any{"campus_id = ? AND is_read = ?", campus, false}},
	}
	for _, c := range counts {
		err := s.db.WithContext(ctx).
			Model(c.model).
			Where(c.conds[0], c.conds[1:]...).
			Count(c.dest).Error
		if err != nil {
			return resp, err
		}
	}
	return resp, nil
}

type eventRow struct {
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

func (s *Service) ListActivity(ctx context.Context, campusID string, limit int) (dashboarddomain.ActivityResponse, error) {
	var resp dashboarddomain.ActivityResponse
	campus, err := parseCampusID(campusID)
	if err != nil {
		return resp, err
	}
	if limit <= 0 || limit > 100 {
		limit = defaultActivityLimit
	}

	var rows []eventRow
	err = s.db.WithContext(ctx).
		Table("campus_events").
		Select("event_type, payload, created_at").
		Where("campus_id = ?", campus).
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return resp, err
	}

	resp.Activity = make([]dashboarddomain.Activity, 0, len(rows))
	for _, row := range rows {
		resp.Activity = append(resp.Activity, dashboarddomain.Activity{
			Message:    describeEvent(row.EventType, row.Payload),
			EventType:  row.EventType,
			OccurredAt: row.CreatedAt,
		})
	}
	return resp, nil
}

func describeEvent(eventType string, payload []byte) string {
	var fields map[string]any
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &fields); err != nil {
			fields = nil
		}
	}
	switch eventType {
	case events.EventCertificateIssued:
		if name := stringField(fields, "person_name"); name != "" {
			return fmt.Sprintf("Certificate issued to %s", name)
		}
		return "Certificate issued"
	case events.EventCertificatePrinted:
		if name := stringField(fields, "person_name"); name != "" {
			return fmt.Sprintf("Certificate printed for %s", name)
		}
		return "Certificate printed"
	case events.EventCertificateDeleted:
		return "Certificate deleted"
	case events.EventAssignmentCreated:
		if title := stringField(fields, "title"); title != "" {
			return fmt.Sprintf("Assignment %q posted", title)
		}
		return "Assignment posted"
	default:
		return eventType
	}
}

func stringField(fields map[string]any, key string) string {
	if fields == nil {
		return ""
	}
	value, _ := fields[key].(string)
	return strings.TrimSpace(value)
}

func parseCampusID(raw string) (snowflake.ID, error) {
	campusID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || campusID == 0 {
		return 0, dashboarddomain.ErrInvalidCampus
	}
	return campusID, nil
}
