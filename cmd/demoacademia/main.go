package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shafaqzafar/demoacademia/internal/assignment"
	"github.com/shafaqzafar/demoacademia/internal/auth"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
	"github.com/shafaqzafar/demoacademia/internal/campus"
	"github.com/shafaqzafar/demoacademia/internal/certificate"
	"github.com/shafaqzafar/demoacademia/internal/certificate/printing"
	"github.com/shafaqzafar/demoacademia/internal/certtemplate"
	"github.com/shafaqzafar/demoacademia/internal/clock"
	"github.com/shafaqzafar/demoacademia/internal/config"
	"github.com/shafaqzafar/demoacademia/internal/dashboard"
	"github.com/shafaqzafar/demoacademia/internal/events"
	"github.com/shafaqzafar/demoacademia/internal/migration"
	"github.com/shafaqzafar/demoacademia/internal/notification"
	"github.com/shafaqzafar/demoacademia/internal/observability"
	"github.com/shafaqzafar/demoacademia/internal/seed"
	"github.com/shafaqzafar/demoacademia/internal/server"
	"github.com/shafaqzafar/demoacademia/internal/student"
	"github.com/shafaqzafar/demoacademia/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		clock.Module,
		db.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if err := seed.EnsureMainCampus(conn); err != nil {
				return err
			}
			if !cfg.IsProduction() && cfg.Bootstrap.EnsureDefaultCampusAndAdmin {
				return seed.EnsureMainCampusAndAdmin(conn)
			}
			return nil
		}),
		events.Module,
		auth.Module,
		authorization.Module,
		campus.Module,
		student.Module,
		certtemplate.Module,
		certificate.Module,
		printing.Module,
		assignment.Module,
		notification.Module,
		dashboard.Module,
		server.Module,
	)
	app.Run()
}
