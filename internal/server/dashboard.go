package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
)

func (s *Server) GetDashboardSummary(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectDashboard, authorization.ActionDashboardView); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.dashboardSvc.GetSummary(c.Request.Context(), requestCampusID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Summary})
}

func (s *Server) GetDashboardActivity(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectDashboard, authorization.ActionDashboardView); err != nil {
		AbortWithError(c, err)
		return
	}

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
			return
		}
		limit = value
	}

	resp, err := s.dashboardSvc.ListActivity(c.Request.Context(), requestCampusID(c), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": resp.Activity})
}
