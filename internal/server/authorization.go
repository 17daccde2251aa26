package server

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

func (s *Server) authorizeCampusAction(c *gin.Context, object string, action string) error {
	if s.authzSvc == nil {
		return ErrForbidden
	}
	userID, ok := s.userIDFromSession(c)
	if !ok {
		return ErrUnauthorized
	}
	campusID := requestCampusID(c)
	if campusID == "" {
		return newValidationError("campus_id", "missing_campus", "campus id is required")
	}
	return s.authorizeForCampus(c, userID, campusID, object, action)
}

func (s *Server) authorizeForCampus(c *gin.Context, userID snowflake.ID, campusID string, object string, action string) error {
	actor := fmt.Sprintf("user:%s", userID.String())
	return s.authzSvc.Authorize(c.Request.Context(), actor, strings.TrimSpace(campusID), strings.TrimSpace(object), strings.TrimSpace(action))
}

func (s *Server) userIDFromSession(c *gin.Context) (snowflake.ID, bool) {
	value, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	raw, ok := value.(string)
	if !ok {
		return 0, false
	}
	userID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return userID, true
}
