package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shafaqzafar/demoacademia/internal/clock"
	notificationdomain "github.com/shafaqzafar/demoacademia/internal/notification/domain"
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

	genID *snowflake.Node
	repo  repository.Repository[notificationdomain.Notification]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
}

func NewService(p ServiceParam) notificationdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("notification.service"),
		clock: p.Clock,

		genID: p.GenID,
		repo:  repository.ProvideStore[notificationdomain.Notification](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req notificationdomain.CreateRequest) (*notificationdomain.Notification, error) {
	campusID, err := parseCampusID(req.CampusID)
	if err != nil {
		return nil, err
	}
	if req.UserID == 0 {
		return nil, notificationdomain.ErrInvalidUser
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, notificationdomain.ErrInvalidTitle
	}

	notification := notificationdomain.Notification{
		ID:        s.genID.Generate(),
		CampusID:  campusID,
		UserID:    req.UserID,
		Title:     title,
		Body:      strings.TrimSpace(req.Body),
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, nil, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

func (s *Service) List(ctx context.Context, req notificationdomain.ListRequest) (*notificationdomain.ListResponse, error) {
	campusID, err := parseCampusID(req.CampusID)
	if err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("campus_id = ?", campusID)
	if userID := strings.TrimSpace(req.UserID); userID != "" {
		uid, err := snowflake.ParseString(userID)
		if err != nil {
			return nil, notificationdomain.ErrInvalidUser
		}
		query = query.Where("user_id = ?", uid)
	}
	if req.IsRead != nil {
		query = query.Where("is_read = ?", *req.IsRead)
	}

	page := pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}.Normalize()
	offset, err := pagination.DecodeToken(page.PageToken)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var notifications []notificationdomain.Notification
	err = query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(page.PageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	resp := &notificationdomain.ListResponse{
		Notifications: notifications,
		PageInfo:      pagination.PageInfo{TotalSize: total},
	}
	if next := offset + len(notifications); int64(next) < total {
		resp.PageInfo.NextPageToken = pagination.EncodeToken(next)
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, campusID, id string) (*notificationdomain.Notification, error) {
	campus, err := parseCampusID(campusID)
	if err != nil {
		return nil, err
	}
	notificationID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, notificationdomain.ErrInvalidID
	}

	var notification notificationdomain.Notification
	if err := s.repo.First(ctx, nil, &notification, "id = ? AND campus_id = ?", notificationID, campus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notificationdomain.ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// MarkRead is idempotent: marking an already-read notification keeps the
// original read timestamp.
func (s *Service) MarkRead(ctx context.Context, campusID, id string) (*notificationdomain.Notification, error) {
	notification, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return nil, err
	}
	if notification.IsRead {
		return notification, nil
	}

	now := s.clock.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := s.repo.Save(ctx, nil, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *Service) Delete(ctx context.Context, campusID, id string) error {
	notification, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, nil, "id = ?", notification.ID)
}

func parseCampusID(raw string) (snowflake.ID, error) {
	campusID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || campusID == 0 {
		return 0, notificationdomain.ErrInvalidCampus
	}
	return campusID, nil
}
