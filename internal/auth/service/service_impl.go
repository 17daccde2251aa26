package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/shafaqzafar/demoacademia/internal/auth/domain"
	"github.com/shafaqzafar/demoacademia/internal/auth/password"
	"github.com/shafaqzafar/demoacademia/internal/auth/token"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	issuer *token.Issuer
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Issuer *token.Issuer
}

func NewService(p ServiceParam) authdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("auth.service"),
		issuer: p.Issuer,
	}
}

func (s *Service) Login(ctx context.Context, email, plaintext string) (string, *authdomain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plaintext == "" {
		return "", nil, authdomain.ErrInvalidCredentials
	}

	var user authdomain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a verification anyway so missing accounts are not
			// distinguishable from wrong passwords by timing.
			password.Verify(plaintext, "")
			return "", nil, authdomain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.Disabled {
		return "", nil, authdomain.ErrUserDisabled
	}
	if user.PasswordHash == nil || !password.Verify(plaintext, *user.PasswordHash) {
		return "", nil, authdomain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user.ID, user.Email, user.DisplayName)
	if err != nil {
		s.log.Error("issue session token", zap.Error(err))
		return "", nil, err
	}
	return signed, &user, nil
}

func (s *Service) GetUser(ctx context.Context, id snowflake.ID) (*authdomain.User, error) {
	var user authdomain.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
