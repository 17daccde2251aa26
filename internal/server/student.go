package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	assignmentdomain "github.com/shafaqzafar/demoacademia/internal/assignment/domain"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
	studentdomain "github.com/shafaqzafar/demoacademia/internal/student/domain"
	"github.com/shafaqzafar/demoacademia/pkg/db/pagination"
)

type createStudentRequest struct {
	Name    string `json:"name"`
	Class   string `json:"class"`
	Section string `json:"section"`
	Email   string `json:"email"`
}

// @Summary      Create Student
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createStudentRequest true "Create Student Request"
// @Success      200  {object}  studentdomain.Student
// @Router       /v1/students [post]
func (s *Server) CreateStudent(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectStudent, authorization.ActionStudentManage); err != nil {
		AbortWithError(c, err)
		return
	}

	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.studentSvc.Create(c.Request.Context(), studentdomain.CreateStudentRequest{
		CampusID: requestCampusID(c),
		Name:     strings.TrimSpace(req.Name),
		Class:    strings.TrimSpace(req.Class),
		Section:  strings.TrimSpace(req.Section),
		Email:    strings.TrimSpace(req.Email),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Students
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        name        query  string  false  "Name"
// @Param        class       query  string  false  "Class"
// @Param        section     query  string  false  "Section"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Router       /v1/students [get]
func (s *Server) ListStudents(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectStudent, authorization.ActionStudentView); err != nil {
		AbortWithError(c, err)
		return
	}

	var query struct {
		pagination.Pagination
		Name    string `form:"name"`
		Class   string `form:"class"`
		Section string `form:"section"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.studentSvc.List(c.Request.Context(), studentdomain.ListStudentRequest{
		CampusID:  requestCampusID(c),
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Name:      strings.TrimSpace(query.Name),
		Class:     strings.TrimSpace(query.Class),
		Section:   strings.TrimSpace(query.Section),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetStudentByID(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectStudent, authorization.ActionStudentView); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.studentSvc.GetByID(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateStudent(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectStudent, authorization.ActionStudentManage); err != nil {
		AbortWithError(c, err)
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Class   *string `json:"class"`
		Section *string `json:"section"`
		Email   *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.studentSvc.Update(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")), studentdomain.UpdateStudentRequest{
		Name:    req.Name,
		Class:   req.Class,
		Section: req.Section,
		Email:   req.Email,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteStudent(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectStudent, authorization.ActionStudentManage); err != nil {
		AbortWithError(c, err)
		return
	}

	err := s.studentSvc.Delete(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListAssignmentsByStudent returns the assignments that apply to one student.
func (s *Server) ListAssignmentsByStudent(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectAssignment, authorization.ActionAssignmentView); err != nil {
		AbortWithError(c, err)
		return
	}

	var query struct {
		pagination.Pagination
		Q string `form:"q"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.assignmentSvc.ListByStudent(
		c.Request.Context(),
		requestCampusID(c),
		strings.TrimSpace(c.Param("id")),
		assignmentdomain.ListRequest{
			PageToken: query.PageToken,
			PageSize:  query.PageSize,
			Q:         strings.TrimSpace(query.Q),
		},
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
