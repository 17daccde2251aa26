package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	assignmentdomain "github.com/shafaqzafar/demoacademia/internal/assignment/domain"
	"github.com/shafaqzafar/demoacademia/internal/clock"
	"github.com/shafaqzafar/demoacademia/internal/events"
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

	genID          *snowflake.Node
	assignmentrepo repository.Repository[assignmentdomain.Assignment]
	submissionrepo repository.Repository[assignmentdomain.Submission]
	studentrepo    repository.Repository[studentdomain.Student]
	outbox         *events.Outbox
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	GenID  *snowflake.Node
	Outbox *events.Outbox
}

func NewService(p ServiceParam) assignmentdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("assignment.service"),
		clock: p.Clock,

		genID:          p.GenID,
		assignmentrepo: repository.ProvideStore[assignmentdomain.Assignment](p.DB),
		submissionrepo: repository.ProvideStore[assignmentdomain.Submission](p.DB),
		studentrepo:    repository.ProvideStore[studentdomain.Student](p.DB),
		outbox:         p.Outbox,
	}
}

func (s *Service) Create(ctx context.Context, req assignmentdomain.CreateRequest) (*assignmentdomain.Assignment, error) {
	campusID, err := parseCampusID(req.CampusID)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, assignmentdomain.ErrInvalidTitle
	}

	now := s.clock.Now()
	assignment := assignmentdomain.Assignment{
		ID:          s.genID.Generate(),
		CampusID:    campusID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		DueDate:     strings.TrimSpace(req.DueDate),
		Class:       strings.TrimSpace(req.Class),
		Section:     strings.TrimSpace(req.Section),
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.assignmentrepo.Insert(ctx, tx, &assignment); err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			CampusID: campusID,
			Type:     events.EventAssignmentCreated,
			Payload: events.AssignmentPayload{
				AssignmentID: assignment.ID.String(),
				CampusID:     campusID.String(),
				Class:        assignment.Class,
				Section:      assignment.Section,
				Title:        assignment.Title,
			}.ToMap(),
			DedupeKey: "assignment.created:" + assignment.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *Service) List(ctx context.Context, req assignmentdomain.ListRequest) (*assignmentdomain.ListResponse, error) {
	campusID, err := parseCampusID(req.CampusID)
	if err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).
		Model(&assignmentdomain.Assignment{}).
		Where("campus_id = ?", campusID)
	query = applySearch(query, req.Q)
	if class := strings.TrimSpace(req.Class); class != "" {
		query = query.Where("class = ?", class)
	}
	if section := strings.TrimSpace(req.Section); section != "" {
		query = query.Where("section = ?", section)
	}
	return s.page(ctx, query, req)
}

// ListByStudent returns assignments that apply to the student's class and
// section. Assignments with an empty class or section apply to everyone.
func (s *Service) ListByStudent(ctx context.Context, campusID, studentID string, req assignmentdomain.ListRequest) (*assignmentdomain.ListResponse, error) {
	campus, err := parseCampusID(campusID)
	if err != nil {
		return nil, err
	}
	sid, err := snowflake.ParseString(strings.TrimSpace(studentID))
	if err != nil {
		return nil, assignmentdomain.ErrInvalidID
	}

	var student studentdomain.Student
	if err := s.studentrepo.First(ctx, nil, &student, "id = ? AND campus_id = ?", sid, campus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assignmentdomain.ErrStudentNotFound
		}
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Model(&assignmentdomain.Assignment{}).
		Where("campus_id = ?", campus)
	if student.Class != "" {
		query = query.Where("class = ? OR class = ''", student.Class)
	}
	if student.Section != "" {
		query = query.Where("section = ? OR section = ''", student.Section)
	}
	query = applySearch(query, req.Q)
	return s.page(ctx, query, req)
}

func (s *Service) page(ctx context.Context, query *gorm.DB, req assignmentdomain.ListRequest) (*assignmentdomain.ListResponse, error) {
	page := pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}.Normalize()
	offset, err := pagination.DecodeToken(page.PageToken)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var assignments []assignmentdomain.Assignment
	err = query.
		Order("id DESC").
		Offset(offset).
		Limit(page.PageSize).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	resp := &assignmentdomain.ListResponse{
		Assignments: assignments,
		PageInfo:    pagination.PageInfo{TotalSize: total},
	}
	if next := offset + len(assignments); int64(next) < total {
		resp.PageInfo.NextPageToken = pagination.EncodeToken(next)
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, campusID, id string) (*assignmentdomain.Assignment, error) {
	campus, err := parseCampusID(campusID)
	if err != nil {
		return nil, err
	}
	assignmentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, assignmentdomain.ErrInvalidID
	}

	var assignment assignmentdomain.Assignment
	if err := s.assignmentrepo.First(ctx, nil, &assignment, "id = ? AND campus_id = ?", assignmentID, campus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assignmentdomain.ErrAssignmentNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (s *Service) Update(ctx context.Context, campusID, id string, req assignmentdomain.UpdateRequest) (*assignmentdomain.Assignment, error) {
	assignment, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, assignmentdomain.ErrInvalidTitle
		}
		assignment.Title = title
	}
	if req.Description != nil {
		assignment.Description = strings.TrimSpace(*req.Description)
	}
	if req.DueDate != nil {
		assignment.DueDate = strings.TrimSpace(*req.DueDate)
	}
	if req.Class != nil {
		assignment.Class = strings.TrimSpace(*req.Class)
	}
	if req.Section != nil {
		assignment.Section = strings.TrimSpace(*req.Section)
	}
	assignment.UpdatedAt = s.clock.Now()

	if err := s.assignmentrepo.Save(ctx, nil, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *Service) Delete(ctx context.Context, campusID, id string) error {
	assignment, err := s.GetByID(ctx, campusID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.submissionrepo.Delete(ctx, tx, "assignment_id = ?", assignment.ID); err != nil {
			return err
		}
		return s.assignmentrepo.Delete(ctx, tx, "id = ?", assignment.ID)
	})
}

func (s *Service) SubmitWork(ctx context.Context, campusID, assignmentID, studentID, content string) (*assignmentdomain.Submission, error) {
	assignment, err := s.GetByID(ctx, campusID, assignmentID)
	if err != nil {
		return nil, err
	}
	sid, err := snowflake.ParseString(strings.TrimSpace(studentID))
	if err != nil {
		return nil, assignmentdomain.ErrInvalidID
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, assignmentdomain.ErrEmptySubmission
	}

	var student studentdomain.Student
	if err := s.studentrepo.First(ctx, nil, &student, "id = ? AND campus_id = ?", sid, assignment.CampusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assignmentdomain.ErrStudentNotFound
		}
		return nil, err
	}

	existing, err := s.submissionrepo.Count(ctx, nil, "assignment_id = ? AND student_id = ?", assignment.ID, sid)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, assignmentdomain.ErrAlreadySubmitted
	}

	submission := assignmentdomain.Submission{
		ID:           s.genID.Generate(),
		AssignmentID: assignment.ID,
		StudentID:    sid,
		Content:      content,
		SubmittedAt:  s.clock.Now(),
	}
	if err := s.submissionrepo.Insert(ctx, nil, &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *Service) ListSubmissions(ctx context.Context, campusID, assignmentID string) ([]assignmentdomain.Submission, error) {
	assignment, err := s.GetByID(ctx, campusID, assignmentID)
	if err != nil {
		return nil, err
	}
	var submissions []assignmentdomain.Submission
	if err := s.submissionrepo.Find(ctx, nil, &submissions, "assignment_id = ?", assignment.ID); err != nil {
		return nil, err
	}
	return submissions, nil
}

func applySearch(query *gorm.DB, q string) *gorm.DB {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return query
	}
	pattern := "%" + q + "%"
	return query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
}

func parseCampusID(raw string) (snowflake.ID, error) {
	campusID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || campusID == 0 {
		return 0, assignmentdomain.ErrInvalidCampus
	}
	return campusID, nil
}
