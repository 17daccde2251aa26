package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
	campusdomain "github.com/shafaqzafar/demoacademia/internal/campus/domain"
	"github.com/shafaqzafar/demoacademia/internal/clock"
	"github.com/shafaqzafar/demoacademia/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	genID      *snowflake.Node
	campusrepo repository.Repository[campusdomain.Campus]
	memberrepo repository.Repository[campusdomain.CampusMember]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
}

func NewService(p ServiceParam) campusdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("campus.service"),
		clock: p.Clock,

		genID:      p.GenID,
		campusrepo: repository.ProvideStore[campusdomain.Campus](p.DB),
		memberrepo: repository.ProvideStore[campusdomain.CampusMember](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, userID snowflake.ID, req campusdomain.CreateCampusRequest) (*campusdomain.Campus, error) {
	if userID == 0 {
		return nil, campusdomain.ErrInvalidUser
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, campusdomain.ErrInvalidName
	}
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if slug == "" {
		slug = slugify(name)
	}
	if !slugPattern.MatchString(slug) {
		return nil, campusdomain.ErrInvalidSlug
	}

	now := s.clock.Now()
	campus := campusdomain.Campus{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.campusrepo.Count(ctx, tx, "slug = ?", slug)
		if err != nil {
			return err
		}
		if taken > 0 {
			return campusdomain.ErrSlugTaken
		}
		if err := s.campusrepo.Insert(ctx, tx, &campus); err != nil {
			return err
		}
		member := campusdomain.CampusMember{
			ID:        s.genID.Generate(),
			CampusID:  campus.ID,
			UserID:    userID,
			Role:      campusdomain.RoleOwner,
			CreatedAt: now,
		}
		return s.memberrepo.Insert(ctx, tx, &member)
	})
	if err != nil {
		return nil, err
	}
	return &campus, nil
}

func (s *Service) Update(ctx context.Context, campusID string, req campusdomain.UpdateCampusRequest) (*campusdomain.Campus, error) {
	id, err := snowflake.ParseString(campusID)
	if err != nil {
		return nil, campusdomain.ErrCampusNotFound
	}

	var campus campusdomain.Campus
	if err := s.campusrepo.First(ctx, nil, &campus, "id = ?", id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, campusdomain.ErrCampusNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, campusdomain.ErrInvalidName
		}
		campus.Name = name
	}
	campus.UpdatedAt = s.clock.Now()

	if err := s.campusrepo.Save(ctx, nil, &campus); err != nil {
		return nil, err
	}
	return &campus, nil
}

func (s *Service) Get(ctx context.Context, campusID string) (*campusdomain.Campus, error) {
	id, err := snowflake.ParseString(campusID)
	if err != nil {
		return nil, campusdomain.ErrCampusNotFound
	}
	var campus campusdomain.Campus
	if err := s.campusrepo.First(ctx, nil, &campus, "id = ?", id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, campusdomain.ErrCampusNotFound
		}
		return nil, err
	}
	return &campus, nil
}

func (s *Service) ListByUser(ctx context.Context, userID snowflake.ID) ([]campusdomain.Campus, error) {
	if userID == 0 {
		return nil, campusdomain.ErrInvalidUser
	}
	var campuses []campusdomain.Campus
	err := s.db.WithContext(ctx).
		Joins("JOIN campus_members ON campus_members.campus_id = campuses.id").
		Where("campus_members.user_id = ?", userID).
		Order("campuses.created_at ASC").
		Find(&campuses).Error
	if err != nil {
		return nil, err
	}
	return campuses, nil
}

func (s *Service) IsMember(ctx context.Context, campusID, userID snowflake.ID) (bool, error) {
	total, err := s.memberrepo.Count(ctx, nil, "campus_id = ? AND user_id = ?", campusID, userID)
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (s *Service) ListMembers(ctx context.Context, campusID string) ([]campusdomain.CampusMember, error) {
	id, err := snowflake.ParseString(campusID)
	if err != nil {
		return nil, campusdomain.ErrCampusNotFound
	}
	var members []campusdomain.CampusMember
	if err := s.memberrepo.Find(ctx, nil, &members, "campus_id = ?", id); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *Service) AddMember(ctx context.Context, campusID string, userID snowflake.ID, role campusdomain.Role) (*campusdomain.CampusMember, error) {
	id, err := snowflake.ParseString(campusID)
	if err != nil {
		return nil, campusdomain.ErrCampusNotFound
	}
	if userID == 0 {
		return nil, campusdomain.ErrInvalidUser
	}
	if !role.Valid() {
		return nil, campusdomain.ErrInvalidRole
	}

	exists, err := s.memberrepo.Count(ctx, nil, "campus_id = ? AND user_id = ?", id, userID)
	if err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, campusdomain.ErrMemberExists
	}

	member := campusdomain.CampusMember{
		ID:        s.genID.Generate(),
		CampusID:  id,
		UserID:    userID,
		Role:      role,
		CreatedAt: s.clock.Now(),
	}
	if err := s.memberrepo.Insert(ctx, nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
