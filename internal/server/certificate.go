package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
	certificatedomain "github.com/shafaqzafar/demoacademia/internal/certificate/domain"
	"github.com/shafaqzafar/demoacademia/pkg/db/pagination"
)

type issueCertificatesRequest struct {
	TemplateID string   `json:"template_id"`
	StudentIDs []string `json:"student_ids"`
	IssueDate  string   `json:"issue_date"`
}

// @Summary      Issue Certificates
// @Description  Issue one certificate per selected student
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body issueCertificatesRequest true "Issue Request"
// @Success      200  {object}  certificatedomain.IssueResult
// @Router       /v1/certificates [post]
func (s *Server) IssueCertificates(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificate, authorization.ActionCertificateIssue); err != nil {
		AbortWithError(c, err)
		return
	}

	var req issueCertificatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.certificateSvc.Issue(c.Request.Context(), certificatedomain.IssueRequest{
		CampusID:   requestCampusID(c),
		TemplateID: strings.TrimSpace(req.TemplateID),
		StudentIDs: req.StudentIDs,
		IssueDate:  strings.TrimSpace(req.IssueDate),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Certificates
// @Tags         certificates
// @Produce      json
// @Security     BearerAuth
// @Param        student_id   query  string  false  "Student ID"
// @Param        template_id  query  string  false  "Template ID"
// @Param        status       query  string  false  "Status"
// @Param        page_token   query  string  false  "Page Token"
// @Param        page_size    query  int     false  "Page Size"
// @Router       /v1/certificates [get]
func (s *Server) ListCertificates(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificate, authorization.ActionCertificateView); err != nil {
		AbortWithError(c, err)
		return
	}

	var query struct {
		pagination.Pagination
		StudentID  string `form:"student_id"`
		TemplateID string `form:"template_id"`
		Status     string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.certificateSvc.List(c.Request.Context(), certificatedomain.ListRequest{
		CampusID:   requestCampusID(c),
		PageToken:  query.PageToken,
		PageSize:   query.PageSize,
		StudentID:  strings.TrimSpace(query.StudentID),
		TemplateID: strings.TrimSpace(query.TemplateID),
		Status:     strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCertificateByID(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificate, authorization.ActionCertificateView); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.certificateSvc.GetByID(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCertificate(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificate, authorization.ActionCertificateManage); err != nil {
		AbortWithError(c, err)
		return
	}

	var req struct {
		IssueDate  *string `json:"issue_date"`
		PersonName *string `json:"person_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.certificateSvc.Update(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")), certificatedomain.UpdateRequest{
		IssueDate:  req.IssueDate,
		PersonName: req.PersonName,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCertificate(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificate, authorization.ActionCertificateManage); err != nil {
		AbortWithError(c, err)
		return
	}

	err := s.certificateSvc.Delete(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RenderCertificate returns the rendered document as an HTML page, ready for
// a browser preview.
func (s *Server) RenderCertificate(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificate, authorization.ActionCertificateView); err != nil {
		AbortWithError(c, err)
		return
	}

	html, err := s.certificateSvc.Render(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) PrintCertificate(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificate, authorization.ActionCertificatePrint); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.certificateSvc.Print(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
