package authorization

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *Enforcer
}

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *Enforcer
}

func NewService(p ServiceParam) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

// Authorize checks that the actor may perform action on object within the
// campus. Actors are "user:<id>" or "system"; system actors bypass
// membership checks so internal jobs can operate across campuses.
func (s *ServiceImpl) Authorize(ctx context.Context, actor, campusID, object, action string) error {
	if _, ok := knownObjects[object]; !ok {
		return ErrInvalidObject
	}
	actionObject, ok := knownActions[action]
	if !ok || actionObject != object {
		return ErrInvalidAction
	}

	if actor == "system" {
		return nil
	}

	rawUserID, ok := strings.CutPrefix(actor, "user:")
	if !ok {
		return ErrInvalidActor
	}
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil || userID == 0 {
		return ErrInvalidActor
	}

	campus, err := strconv.ParseInt(campusID, 10, 64)
	if err != nil || campus == 0 {
		return ErrInvalidCampus
	}

	allowed, err := s.enforcer.Enforce(ctx, userID, campus, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("actor", actor),
			zap.String("campus_id", campusID),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}
