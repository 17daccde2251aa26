package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
	notificationdomain "github.com/shafaqzafar/demoacademia/internal/notification/domain"
	"github.com/shafaqzafar/demoacademia/pkg/db/pagination"
)

type createNotificationRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (s *Server) CreateNotification(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectNotification, authorization.ActionNotificationManage); err != nil {
		AbortWithError(c, err)
		return
	}

	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user id"))
		return
	}

	resp, err := s.notificationSvc.Create(c.Request.Context(), notificationdomain.CreateRequest{
		CampusID: requestCampusID(c),
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Body:     strings.TrimSpace(req.Body),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListNotifications(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectNotification, authorization.ActionNotificationView); err != nil {
		AbortWithError(c, err)
		return
	}

	var query struct {
		pagination.Pagination
		UserID string `form:"user_id"`
		IsRead *bool  `form:"is_read"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.notificationSvc.List(c.Request.Context(), notificationdomain.ListRequest{
		CampusID:  requestCampusID(c),
		UserID:    strings.TrimSpace(query.UserID),
		IsRead:    query.IsRead,
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetNotificationByID(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectNotification, authorization.ActionNotificationView); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.notificationSvc.GetByID(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectNotification, authorization.ActionNotificationView); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.notificationSvc.MarkRead(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteNotification(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectNotification, authorization.ActionNotificationManage); err != nil {
		AbortWithError(c, err)
		return
	}

	err := s.notificationSvc.Delete(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
