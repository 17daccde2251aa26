package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	assignmentdomain "github.com/shafaqzafar/demoacademia/internal/assignment/domain"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
	"github.com/shafaqzafar/demoacademia/pkg/db/pagination"
)

type createAssignmentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Class       string `json:"class"`
	Section     string `json:"section"`
}

func (s *Server) CreateAssignment(c *gin.Context) {
	userID, ok := s.userIDFromSession(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if err := s.authorizeCampusAction(c, authorization.ObjectAssignment, authorization.ActionAssignmentManage); err != nil {
		AbortWithError(c, err)
		return
	}

	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.assignmentSvc.Create(c.Request.Context(), assignmentdomain.CreateRequest{
		CampusID:    requestCampusID(c),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		DueDate:     strings.TrimSpace(req.DueDate),
		Class:       strings.TrimSpace(req.Class),
		Section:     strings.TrimSpace(req.Section),
		CreatedBy:   userID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAssignments(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectAssignment, authorization.ActionAssignmentView); err != nil {
		AbortWithError(c, err)
		return
	}

	var query struct {
		pagination.Pagination
		Q       string `form:"q"`
		Class   string `form:"class"`
		Section string `form:"section"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.assignmentSvc.List(c.Request.Context(), assignmentdomain.ListRequest{
		CampusID:  requestCampusID(c),
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Q:         strings.TrimSpace(query.Q),
		Class:     strings.TrimSpace(query.Class),
		Section:   strings.TrimSpace(query.Section),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAssignmentByID(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectAssignment, authorization.ActionAssignmentView); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.assignmentSvc.GetByID(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateAssignment(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectAssignment, authorization.ActionAssignmentManage); err != nil {
		AbortWithError(c, err)
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		DueDate     *string `json:"due_date"`
		Class       *string `json:"class"`
		Section     *string `json:"section"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.assignmentSvc.Update(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")), assignmentdomain.UpdateRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Class:       req.Class,
		Section:     req.Section,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAssignment(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectAssignment, authorization.ActionAssignmentManage); err != nil {
		AbortWithError(c, err)
		return
	}

	err := s.assignmentSvc.Delete(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type submitAssignmentRequest struct {
	StudentID string `json:"student_id"`
	Content   string `json:"content"`
}

func (s *Server) SubmitAssignmentWork(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectAssignment, authorization.ActionAssignmentView); err != nil {
		AbortWithError(c, err)
		return
	}

	var req submitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.assignmentSvc.SubmitWork(
		c.Request.Context(),
		requestCampusID(c),
		strings.TrimSpace(c.Param("id")),
		strings.TrimSpace(req.StudentID),
		req.Content,
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAssignmentSubmissions(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectAssignment, authorization.ActionAssignmentManage); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.assignmentSvc.ListSubmissions(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
