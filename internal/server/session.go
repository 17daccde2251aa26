package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	obscontext "github.com/shafaqzafar/demoacademia/internal/observability/context"
)

// SessionRequired authenticates requests with a bearer session token and
// stashes the principal plus the campus scope on the gin context.
func (s *Server) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := s.issuer.Parse(parts[1])
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextUserIDKey, userID.String())
		c.Set(contextEmailKey, claims.Email)

		ctx := obscontext.WithActor(c.Request.Context(), "user", userID.String())
		if campusID := requestCampusID(c); campusID != "" {
			c.Set("campus_id", campusID)
			ctx = obscontext.WithCampusID(ctx, campusID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func requestCampusID(c *gin.Context) string {
	if value := strings.TrimSpace(c.GetHeader(HeaderCampus)); value != "" {
		return value
	}
	if value, ok := c.GetQuery("campus_id"); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
