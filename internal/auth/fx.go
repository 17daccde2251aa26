package auth

import (
	"github.com/shafaqzafar/demoacademia/internal/auth/service"
	"github.com/shafaqzafar/demoacademia/internal/auth/token"
	"github.com/shafaqzafar/demoacademia/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(newIssuer),
	fx.Provide(service.NewService),
)

func newIssuer(cfg config.Config) *token.Issuer {
	return token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}
