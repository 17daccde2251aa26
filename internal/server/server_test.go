package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/shafaqzafar/demoacademia/internal/auth/domain"
	"github.com/shafaqzafar/demoacademia/internal/auth/password"
	authservice "github.com/shafaqzafar/demoacademia/internal/auth/service"
	"github.com/shafaqzafar/demoacademia/internal/auth/token"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
	campusdomain "github.com/shafaqzafar/demoacademia/internal/campus/domain"
	campusservice "github.com/shafaqzafar/demoacademia/internal/campus/service"
	"github.com/shafaqzafar/demoacademia/internal/clock"
	"github.com/shafaqzafar/demoacademia/internal/config"
	studentdomain "github.com/shafaqzafar/demoacademia/internal/student/domain"
	studentservice "github.com/shafaqzafar/demoacademia/internal/student/service"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serverFixture struct {
	server *Server
	engine *gin.Engine
	db     *gorm.DB
	node   *snowflake.Node
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&authdomain.User{},
		&campusdomain.Campus{},
		&campusdomain.CampusMember{},
		&studentdomain.Student{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake.NewNode: %v", err)
	}

	log := zap.NewNop()
	fixed := clock.FixedClock{At: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	issuer := token.NewIssuer("test-secret", time.Hour)

	enforcer, err := authorization.NewEnforcer(db)
	if err != nil {
		t.Fatalf("NewEnforcer: %v", err)
	}

	srv := &Server{
		cfg:    config.Config{Environment: "test"},
		db:     db,
		log:    log,
		issuer: issuer,

		loginLimiter: newRateLimiter(5, time.Minute),

		authSvc: authservice.NewService(authservice.ServiceParam{
			DB: db, Log: log, Issuer: issuer,
		}),
		authzSvc: authorization.NewService(authorization.ServiceParam{
			DB: db, Log: log, Enforcer: enforcer,
		}),
		campusSvc: campusservice.NewService(campusservice.ServiceParam{
			DB: db, Log: log, Clock: fixed, GenID: node,
		}),
		studentSvc: studentservice.NewService(studentservice.ServiceParam{
			DB: db, Log: log, Clock: fixed, GenID: node,
		}),
	}

	engine := gin.New()
	srv.RegisterRoutes(engine)
	return &serverFixture{server: srv, engine: engine, db: db, node: node}
}

func (f *serverFixture) seedUser(t *testing.T, email, plaintext string) *authdomain.User {
	t.Helper()
	hashed, err := password.Hash(plaintext)
	if err != nil {
		t.Fatalf("password.Hash: %v", err)
	}
	user := authdomain.User{
		ID:           f.node.Generate(),
		Email:        email,
		DisplayName:  "Test User",
		PasswordHash: &hashed,
	}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func (f *serverFixture) seedCampusMember(t *testing.T, userID snowflake.ID, role campusdomain.Role) *campusdomain.Campus {
	t.Helper()
	campus := campusdomain.Campus{
		ID:   f.node.Generate(),
		Name: "Test Campus",
		Slug: "test-campus-" + f.node.Generate().String(),
	}
	if err := f.db.Create(&campus).Error; err != nil {
		t.Fatalf("seed campus: %v", err)
	}
	member := campusdomain.CampusMember{
		ID:       f.node.Generate(),
		CampusID: campus.ID,
		UserID:   userID,
		Role:     role,
	}
	if err := f.db.Create(&member).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return &campus
}

func (f *serverFixture) login(t *testing.T, email, plaintext string) string {
	t.Helper()
	body, _ := json.Marshal(gin.H{"email": email, "password": plaintext})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("expected a session token")
	}
	return resp.Data.Token
}

func (f *serverFixture) do(sessionToken, campusID, method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}
	if campusID != "" {
		req.Header.Set(HeaderCampus, campusID)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func TestLoginREST(t *testing.T) {
	f := newServerFixture(t)
	f.seedUser(t, "teacher@example.com", "open sesame")

	sessionToken := f.login(t, "teacher@example.com", "open sesame")

	rec := f.do(sessionToken, "", http.MethodGet, "/v1/auth/me", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newServerFixture(t)
	f.seedUser(t, "teacher@example.com", "open sesame")

	body, _ := json.Marshal(gin.H{"email": "teacher@example.com", "password": "wrong"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	f := newServerFixture(t)

	var last int
	for i := 0; i < 7; i++ {
		body, _ := json.Marshal(gin.H{"email": "nobody@example.com", "password": "wrong"})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f.engine.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after repeated attempts, got %d", last)
	}
}

func TestSessionRequired(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do("", "", http.MethodGet, "/v1/students", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = f.do("not-a-token", "", http.MethodGet, "/v1/students", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", rec.Code)
	}
}

func TestStudentCRUDOverHTTP(t *testing.T) {
	f := newServerFixture(t)
	user := f.seedUser(t, "admin@example.com", "open sesame")
	campus := f.seedCampusMember(t, user.ID, campusdomain.RoleAdmin)
	sessionToken := f.login(t, "admin@example.com", "open sesame")

	rec := f.do(sessionToken, campus.ID.String(), http.MethodPost, "/v1/students", gin.H{
		"name":    "Ayesha Khan",
		"class":   "10",
		"section": "B",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create student returned %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	rec = f.do(sessionToken, campus.ID.String(), http.MethodGet, "/v1/students", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list students returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(sessionToken, campus.ID.String(), http.MethodGet, "/v1/students/"+created.Data.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get student returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(sessionToken, campus.ID.String(), http.MethodGet, "/v1/students/"+f.node.Generate().String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing student, got %d", rec.Code)
	}
}

func TestStudentRoleEnforcement(t *testing.T) {
	f := newServerFixture(t)
	user := f.seedUser(t, "teacher@example.com", "open sesame")
	campus := f.seedCampusMember(t, user.ID, campusdomain.RoleTeacher)
	sessionToken := f.login(t, "teacher@example.com", "open sesame")

	// Teachers can view students but not manage them.
	rec := f.do(sessionToken, campus.ID.String(), http.MethodPost, "/v1/students", gin.H{
		"name": "Ayesha Khan",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for teacher manage, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(sessionToken, campus.ID.String(), http.MethodGet, "/v1/students", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected teacher view to be allowed, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCleanupHiddenInProduction(t *testing.T) {
	f := newServerFixture(t)
	f.seedUser(t, "admin@example.com", "open sesame")
	sessionToken := f.login(t, "admin@example.com", "open sesame")

	// The environment check must not depend on casing.
	f.server.cfg.Environment = "Production"
	rec := f.do(sessionToken, "", http.MethodPost, "/v1/test/cleanup", gin.H{"prefix": "e2e-"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 in production, got %d: %s", rec.Code, rec.Body.String())
	}

	f.server.cfg.Environment = "test"
	rec = f.do(sessionToken, "", http.MethodPost, "/v1/test/cleanup", gin.H{"prefix": "e2e-"})
	if rec.Code != http.StatusOK {
		t.Fatalf("cleanup returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMissingCampusHeader(t *testing.T) {
	f := newServerFixture(t)
	user := f.seedUser(t, "admin@example.com", "open sesame")
	f.seedCampusMember(t, user.ID, campusdomain.RoleAdmin)
	sessionToken := f.login(t, "admin@example.com", "open sesame")

	rec := f.do(sessionToken, "", http.MethodGet, "/v1/students", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without campus header, got %d: %s", rec.Code, rec.Body.String())
	}
}
