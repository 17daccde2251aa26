package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	assignmentdomain "github.com/shafaqzafar/demoacademia/internal/assignment/domain"
	authdomain "github.com/shafaqzafar/demoacademia/internal/auth/domain"
	"github.com/shafaqzafar/demoacademia/internal/auth/token"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
	campusdomain "github.com/shafaqzafar/demoacademia/internal/campus/domain"
	certificatedomain "github.com/shafaqzafar/demoacademia/internal/certificate/domain"
	certtemplatedomain "github.com/shafaqzafar/demoacademia/internal/certtemplate/domain"
	"github.com/shafaqzafar/demoacademia/internal/config"
	dashboarddomain "github.com/shafaqzafar/demoacademia/internal/dashboard/domain"
	notificationdomain "github.com/shafaqzafar/demoacademia/internal/notification/domain"
	"github.com/shafaqzafar/demoacademia/internal/observability/logger"
	"github.com/shafaqzafar/demoacademia/internal/observability/metrics"
	studentdomain "github.com/shafaqzafar/demoacademia/internal/student/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HeaderCampus carries the campus scope of the request.
const HeaderCampus = "X-Campus-Id"

const (
	contextUserIDKey = "session_user_id"
	contextEmailKey  = "session_email"
)

type Server struct {
	cfg    config.Config
	db     *gorm.DB
	log    *zap.Logger
	issuer *token.Issuer

	loginLimiter *rateLimiter

	authSvc         authdomain.Service
	authzSvc        authorization.Service
	campusSvc       campusdomain.Service
	studentSvc      studentdomain.Service
	certtemplateSvc certtemplatedomain.Service
	certificateSvc  certificatedomain.Service
	assignmentSvc   assignmentdomain.Service
	notificationSvc notificationdomain.Service
	dashboardSvc    dashboarddomain.Service
}

type ServerParam struct {
	fx.In

	Cfg    config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Issuer *token.Issuer

	AuthSvc         authdomain.Service
	AuthzSvc        authorization.Service
	CampusSvc       campusdomain.Service
	StudentSvc      studentdomain.Service
	CerttemplateSvc certtemplatedomain.Service
	CertificateSvc  certificatedomain.Service
	AssignmentSvc   assignmentdomain.Service
	NotificationSvc notificationdomain.Service
	DashboardSvc    dashboarddomain.Service
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:    p.Cfg,
		db:     p.DB,
		log:    p.Log.Named("server"),
		issuer: p.Issuer,

		loginLimiter: newRateLimiter(10, time.Minute),

		authSvc:         p.AuthSvc,
		authzSvc:        p.AuthzSvc,
		campusSvc:       p.CampusSvc,
		studentSvc:      p.StudentSvc,
		certtemplateSvc: p.CerttemplateSvc,
		certificateSvc:  p.CertificateSvc,
		assignmentSvc:   p.AssignmentSvc,
		notificationSvc: p.NotificationSvc,
		dashboardSvc:    p.DashboardSvc,
	}
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
	}))
	if httpMetrics != nil {
		engine.Use(metrics.GinMiddleware(httpMetrics))
	}
	return engine
}

func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/v1")
	v1.POST("/auth/login", s.Login)

	authed := v1.Group("")
	authed.Use(s.SessionRequired())
	{
		authed.GET("/auth/me", s.Me)

		authed.POST("/campuses", s.CreateCampus)
		authed.GET("/campuses", s.ListCampuses)
		authed.GET("/campuses/:id", s.GetCampus)
		authed.PATCH("/campuses/:id", s.UpdateCampus)
		authed.GET("/campuses/:id/members", s.ListCampusMembers)
		authed.POST("/campuses/:id/members", s.AddCampusMember)

		authed.POST("/students", s.CreateStudent)
		authed.GET("/students", s.ListStudents)
		authed.GET("/students/:id", s.GetStudentByID)
		authed.PATCH("/students/:id", s.UpdateStudent)
		authed.DELETE("/students/:id", s.DeleteStudent)
		authed.GET("/students/:id/assignments", s.ListAssignmentsByStudent)

		authed.POST("/certificate-templates", s.CreateCertificateTemplate)
		authed.GET("/certificate-templates", s.ListCertificateTemplates)
		// "default" doubles as a reserved id: GET /certificate-templates/default
		// resolves the campus default for ?type=.
		authed.GET("/certificate-templates/:id", s.GetCertificateTemplateByID)
		authed.PATCH("/certificate-templates/:id", s.UpdateCertificateTemplate)
		authed.POST("/certificate-templates/:id/default", s.SetDefaultCertificateTemplate)
		authed.DELETE("/certificate-templates/:id", s.DeleteCertificateTemplate)

		authed.POST("/certificates", s.IssueCertificates)
		authed.GET("/certificates", s.ListCertificates)
		authed.GET("/certificates/:id", s.GetCertificateByID)
		authed.PATCH("/certificates/:id", s.UpdateCertificate)
		authed.DELETE("/certificates/:id", s.DeleteCertificate)
		authed.GET("/certificates/:id/render", s.RenderCertificate)
		authed.POST("/certificates/:id/print", s.PrintCertificate)

		authed.POST("/assignments", s.CreateAssignment)
		authed.GET("/assignments", s.ListAssignments)
		authed.GET("/assignments/:id", s.GetAssignmentByID)
		authed.PATCH("/assignments/:id", s.UpdateAssignment)
		authed.DELETE("/assignments/:id", s.DeleteAssignment)
		authed.POST("/assignments/:id/submissions", s.SubmitAssignmentWork)
		authed.GET("/assignments/:id/submissions", s.ListAssignmentSubmissions)

		authed.POST("/notifications", s.CreateNotification)
		authed.GET("/notifications", s.ListNotifications)
		authed.GET("/notifications/:id", s.GetNotificationByID)
		authed.POST("/notifications/:id/read", s.MarkNotificationRead)
		authed.DELETE("/notifications/:id", s.DeleteNotification)

		authed.GET("/dashboard/summary", s.GetDashboardSummary)
		authed.GET("/dashboard/activity", s.GetDashboardActivity)

		authed.POST("/test/cleanup", s.TestCleanup)
	}
}

// RunHTTP starts the HTTP listener on the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(server *Server, engine *gin.Engine) {
		server.RegisterRoutes(engine)
	}),
	fx.Invoke(RunHTTP),
)
