package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
	campusdomain "github.com/shafaqzafar/demoacademia/internal/campus/domain"
)

type createCampusRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (s *Server) CreateCampus(c *gin.Context) {
	userID, ok := s.userIDFromSession(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createCampusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.campusSvc.Create(c.Request.Context(), userID, campusdomain.CreateCampusRequest{
		Name: strings.TrimSpace(req.Name),
		Slug: strings.TrimSpace(req.Slug),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCampuses(c *gin.Context) {
	userID, ok := s.userIDFromSession(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	items, err := s.campusSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) GetCampus(c *gin.Context) {
	campusID := strings.TrimSpace(c.Param("id"))
	if campusID == "" {
		AbortWithError(c, newValidationError("id", "missing_id", "campus id is required"))
		return
	}
	if err := s.requireCampusMembership(c, campusID); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.campusSvc.Get(c.Request.Context(), campusID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCampus(c *gin.Context) {
	campusID := strings.TrimSpace(c.Param("id"))
	if campusID == "" {
		AbortWithError(c, newValidationError("id", "missing_id", "campus id is required"))
		return
	}

	userID, ok := s.userIDFromSession(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if err := s.authorizeForCampus(c, userID, campusID, authorization.ObjectCampus, authorization.ActionCampusManage); err != nil {
		AbortWithError(c, err)
		return
	}

	var req struct {
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.campusSvc.Update(c.Request.Context(), campusID, campusdomain.UpdateCampusRequest{
		Name: req.Name,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCampusMembers(c *gin.Context) {
	campusID := strings.TrimSpace(c.Param("id"))
	if campusID == "" {
		AbortWithError(c, newValidationError("id", "missing_id", "campus id is required"))
		return
	}
	if err := s.requireCampusMembership(c, campusID); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.campusSvc.ListMembers(c.Request.Context(), campusID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type addCampusMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (s *Server) AddCampusMember(c *gin.Context) {
	campusID := strings.TrimSpace(c.Param("id"))
	if campusID == "" {
		AbortWithError(c, newValidationError("id", "missing_id", "campus id is required"))
		return
	}

	userID, ok := s.userIDFromSession(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if err := s.authorizeForCampus(c, userID, campusID, authorization.ObjectCampus, authorization.ActionCampusManage); err != nil {
		AbortWithError(c, err)
		return
	}

	var req addCampusMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	memberID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user id"))
		return
	}
	role := campusdomain.Role(strings.ToUpper(strings.TrimSpace(req.Role)))

	resp, err := s.campusSvc.AddMember(c.Request.Context(), campusID, memberID, role)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) requireCampusMembership(c *gin.Context, campusID string) error {
	userID, ok := s.userIDFromSession(c)
	if !ok {
		return ErrUnauthorized
	}
	parsed, err := snowflake.ParseString(campusID)
	if err != nil {
		return newValidationError("id", "invalid_id", "invalid campus id")
	}
	isMember, err := s.campusSvc.IsMember(c.Request.Context(), parsed, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrForbidden
	}
	return nil
}
