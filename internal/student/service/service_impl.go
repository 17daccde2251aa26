package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shafaqzafar/demoacademia/internal/clock"
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

	genID       *snowflake.Node
	studentrepo repository.Repository[studentdomain.Student]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
}

func NewService(p ServiceParam) studentdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("student.service"),
		clock: p.Clock,

		genID:       p.GenID,
		studentrepo: repository.ProvideStore[studentdomain.Student](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req studentdomain.CreateStudentRequest) (*studentdomain.Student, error) {
	campusID, err := parseCampusID(req.CampusID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, studentdomain.ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && !strings.Contains(email, "@") {
		return nil, studentdomain.ErrInvalidEmail
	}

	now := s.clock.Now()
	student := studentdomain.Student{
		ID:        s.genID.Generate(),
		CampusID:  campusID,
		Name:      name,
		Class:     strings.TrimSpace(req.Class),
		Section:   strings.TrimSpace(req.Section),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.studentrepo.Insert(ctx, nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *Service) List(ctx context.Context, req studentdomain.ListStudentRequest) (*studentdomain.ListStudentResponse, error) {
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
		Model(&studentdomain.Student{}).
		Where("campus_id = ?", campusID)
	if name := strings.TrimSpace(req.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if class := strings.TrimSpace(req.Class); class != "" {
		query = query.Where("class = ?", class)
	}
	if section := strings.TrimSpace(req.Section); section != "" {
		query = query.Where("section = ?", section)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var students []studentdomain.Student
	err = query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(page.PageSize).
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	resp := &studentdomain.ListStudentResponse{
		Students: students,
		PageInfo: pagination.PageInfo{TotalSize: total},
	}
	if next := offset + len(students); int64(next) < total {
		resp.PageInfo.NextPageToken = pagination.EncodeToken(next)
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, campusID, id string) (*studentdomain.Student, error) {
	campus, err := parseCampusID(campusID)
	if err != nil {
		return nil, err
	}
	studentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, studentdomain.ErrInvalidID
	}

	var student studentdomain.Student
	if err := s.studentrepo.First(ctx, nil, &student, "id = ? AND campus_id = ?", studentID, campus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, studentdomain.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (s *Service) Update(ctx context.Context, campusID, id string, req studentdomain.UpdateStudentRequest) (*studentdomain.Student, error) {
	student, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, studentdomain.ErrInvalidName
		}
		student.Name = name
	}
	if req.Class != nil {
		student.Class = strings.TrimSpace(*req.Class)
	}
	if req.Section != nil {
		student.Section = strings.TrimSpace(*req.Section)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != "" && !strings.Contains(email, "@") {
			return nil, studentdomain.ErrInvalidEmail
		}
		student.Email = email
	}
	student.UpdatedAt = s.clock.Now()

	if err := s.studentrepo.Save(ctx, nil, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *Service) Delete(ctx context.Context, campusID, id string) error {
	student, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return err
	}
	return s.studentrepo.Delete(ctx, nil, "id = ?", student.ID)
}

func parseCampusID(raw string) (snowflake.ID, error) {
	campusID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || campusID == 0 {
		return 0, studentdomain.ErrInvalidCampus
	}
	return campusID, nil
}
