package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type testCleanupRequest struct {
	Prefix string `json:"prefix"`
}

// TestCleanup wipes campuses and users created by end-to-end test runs. The
// route is disabled in production.
func (s *Server) TestCleanup(c *gin.Context) {
	if s.cfg.IsProduction() {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req testCleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		AbortWithError(c, newValidationError("prefix", "required", "prefix is required"))
		return
	}

	ctx := c.Request.Context()
	campusIDs, err := s.loadCampusIDsByPrefix(ctx, prefix)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.deleteCampusData(ctx, campusIDs); err != nil {
		AbortWithError(c, err)
		return
	}

	userIDs, err := s.loadUserIDsByPrefix(ctx, prefix)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.deleteUserData(ctx, userIDs); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) loadCampusIDsByPrefix(ctx context.Context, prefix string) ([]int64, error) {
	like := strings.TrimSpace(prefix) + "%"
	var campusIDs []int64
	if err := s.db.WithContext(ctx).
		Table("campuses").
		Select("id").
		Where("name LIKE ?", like).
		Scan(&campusIDs).Error; err != nil {
		return nil, err
	}
	return campusIDs, nil
}

func (s *Server) deleteCampusData(ctx context.Context, campusIDs []int64) error {
	if len(campusIDs) == 0 {
		return nil
	}
	queries := []string{
		`DELETE FROM assignment_submissions WHERE assignment_id IN (SELECT id FROM assignments WHERE campus_id IN ?)`,
		`DELETE FROM assignments WHERE campus_id IN ?`,
		`DELETE FROM student_certificates WHERE campus_id IN ?`,
		`DELETE FROM certificate_templates WHERE campus_id IN ?`,
		`DELETE FROM notifications WHERE campus_id IN ?`,
		`DELETE FROM campus_events WHERE campus_id IN ?`,
		`DELETE FROM students WHERE campus_id IN ?`,
		`DELETE FROM campus_members WHERE campus_id IN ?`,
		`DELETE FROM campuses WHERE id IN ?`,
	}
	for _, query := range queries {
		if err := s.db.WithContext(ctx).Exec(query, campusIDs).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) loadUserIDsByPrefix(ctx context.Context, prefix string) ([]int64, error) {
	like := strings.TrimSpace(prefix) + "%"
	var userIDs []int64
	if err := s.db.WithContext(ctx).
		Table("users").
		Select("id").
		Where("email LIKE ?", like).
		Scan(&userIDs).Error; err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (s *Server) deleteUserData(ctx context.Context, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	queries := []string{
		`DELETE FROM notifications WHERE user_id IN ?`,
		`DELETE FROM campus_members WHERE user_id IN ?`,
		`DELETE FROM users WHERE id IN ?`,
	}
	for _, query := range queries {
		if err := s.db.WithContext(ctx).Exec(query, userIDs).Error; err != nil {
			return err
		}
	}
	return nil
}
