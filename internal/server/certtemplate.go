package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
	certtemplatedomain "github.com/shafaqzafar/demoacademia/internal/certtemplate/domain"
)

type certificateTemplateRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsDefault bool   `json:"is_default"`

	Orientation string `json:"orientation"`

	BackgroundColor    string   `json:"background_color"`
	LogoURL            string   `json:"logo_url"`
	ShowBorder         *bool    `json:"show_border"`
	BorderColor        string   `json:"border_color"`
	BorderWidth        *float64 `json:"border_width"`
	BorderStyle        string   `json:"border_style"`
	BorderRadius       *float64 `json:"border_radius"`
	BackgroundImageURL string   `json:"background_image_url"`
	BackgroundOpacity  *float64 `json:"background_opacity"`
	WatermarkText      string   `json:"watermark_text"`
	WatermarkImageURL  string   `json:"watermark_image_url"`
	WatermarkOpacity   *float64 `json:"watermark_opacity"`
	WatermarkRotate    *float64 `json:"watermark_rotate"`

	FontFamily      string   `json:"font_family"`
	TitleFontFamily string   `json:"title_font_family"`
	TitleFontSize   *float64 `json:"title_font_size"`
	BodyFontSize    *float64 `json:"body_font_size"`
	FooterFontSize  *float64 `json:"footer_font_size"`

	Title      string `json:"title"`
	BodyText   string `json:"body_text"`
	FooterText string `json:"footer_text"`

	Signature1Name     string `json:"signature1_name"`
	Signature1Title    string `json:"signature1_title"`
	Signature1ImageURL string `json:"signature1_image_url"`
	Signature2Name     string `json:"signature2_name"`
	Signature2Title    string `json:"signature2_title"`
	Signature2ImageURL string `json:"signature2_image_url"`

	ShowSerial    *bool    `json:"show_serial"`
	SerialPrefix  string   `json:"serial_prefix"`
	SerialPadding *float64 `json:"serial_padding"`

	Extras map[string]any `json:"extras"`
}

type updateCertificateTemplateRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`

	Orientation *string `json:"orientation"`

	BackgroundColor    *string  `json:"background_color"`
	LogoURL            *string  `json:"logo_url"`
	ShowBorder         *bool    `json:"show_border"`
	BorderColor        *string  `json:"border_color"`
	BorderWidth        *float64 `json:"border_width"`
	BorderStyle        *string  `json:"border_style"`
	BorderRadius       *float64 `json:"border_radius"`
	BackgroundImageURL *string  `json:"background_image_url"`
	BackgroundOpacity  *float64 `json:"background_opacity"`
	WatermarkText      *string  `json:"watermark_text"`
	WatermarkImageURL  *string  `json:"watermark_image_url"`
	WatermarkOpacity   *float64 `json:"watermark_opacity"`
	WatermarkRotate    *float64 `json:"watermark_rotate"`

	FontFamily      *string  `json:"font_family"`
	TitleFontFamily *string  `json:"title_font_family"`
	TitleFontSize   *float64 `json:"title_font_size"`
	BodyFontSize    *float64 `json:"body_font_size"`
	FooterFontSize  *float64 `json:"footer_font_size"`

	Title      *string `json:"title"`
	BodyText   *string `json:"body_text"`
	FooterText *string `json:"footer_text"`

	Signature1Name     *string `json:"signature1_name"`
	Signature1Title    *string `json:"signature1_title"`
	Signature1ImageURL *string `json:"signature1_image_url"`
	Signature2Name     *string `json:"signature2_name"`
	Signature2Title    *string `json:"signature2_title"`
	Signature2ImageURL *string `json:"signature2_image_url"`

	ShowSerial    *bool    `json:"show_serial"`
	SerialPrefix  *string  `json:"serial_prefix"`
	SerialPadding *float64 `json:"serial_padding"`

	Extras map[string]any `json:"extras"`
}

func (r updateCertificateTemplateRequest) toDomain() certtemplatedomain.UpdateRequest {
	return certtemplatedomain.UpdateRequest{
		Name: r.Name,
		Type: r.Type,

		Orientation: r.Orientation,

		BackgroundColor:    r.BackgroundColor,
		LogoURL:            r.LogoURL,
		ShowBorder:         r.ShowBorder,
		BorderColor:        r.BorderColor,
		BorderWidth:        r.BorderWidth,
		BorderStyle:        r.BorderStyle,
		BorderRadius:       r.BorderRadius,
		BackgroundImageURL: r.BackgroundImageURL,
		BackgroundOpacity:  r.BackgroundOpacity,
		WatermarkText:      r.WatermarkText,
		WatermarkImageURL:  r.WatermarkImageURL,
		WatermarkOpacity:   r.WatermarkOpacity,
		WatermarkRotate:    r.WatermarkRotate,

		FontFamily:      r.FontFamily,
		TitleFontFamily: r.TitleFontFamily,
		TitleFontSize:   r.TitleFontSize,
		BodyFontSize:    r.BodyFontSize,
		FooterFontSize:  r.FooterFontSize,

		Title:      r.Title,
		BodyText:   r.BodyText,
		FooterText: r.FooterText,

		Signature1Name:     r.Signature1Name,
		Signature1Title:    r.Signature1Title,
		Signature1ImageURL: r.Signature1ImageURL,
		Signature2Name:     r.Signature2Name,
		Signature2Title:    r.Signature2Title,
		Signature2ImageURL: r.Signature2ImageURL,

		ShowSerial:    r.ShowSerial,
		SerialPrefix:  r.SerialPrefix,
		SerialPadding: r.SerialPadding,

		Extras: r.Extras,
	}
}

// @Summary      Create Certificate Template
// @Tags         certificate-templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body certificateTemplateRequest true "Create Template Request"
// @Router       /v1/certificate-templates [post]
func (s *Server) CreateCertificateTemplate(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificateTemplate, authorization.ActionTemplateManage); err != nil {
		AbortWithError(c, err)
		return
	}

	var req certificateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.certtemplateSvc.Create(c.Request.Context(), certtemplatedomain.CreateRequest{
		CampusID:  requestCampusID(c),
		Name:      req.Name,
		Type:      req.Type,
		IsDefault: req.IsDefault,

		Orientation: req.Orientation,

		BackgroundColor:    req.BackgroundColor,
		LogoURL:            req.LogoURL,
		ShowBorder:         req.ShowBorder,
		BorderColor:        req.BorderColor,
		BorderWidth:        req.BorderWidth,
		BorderStyle:        req.BorderStyle,
		BorderRadius:       req.BorderRadius,
		BackgroundImageURL: req.BackgroundImageURL,
		BackgroundOpacity:  req.BackgroundOpacity,
		WatermarkText:      req.WatermarkText,
		WatermarkImageURL:  req.WatermarkImageURL,
		WatermarkOpacity:   req.WatermarkOpacity,
		WatermarkRotate:    req.WatermarkRotate,

		FontFamily:      req.FontFamily,
		TitleFontFamily: req.TitleFontFamily,
		TitleFontSize:   req.TitleFontSize,
		BodyFontSize:    req.BodyFontSize,
		FooterFontSize:  req.FooterFontSize,

		Title:      req.Title,
		BodyText:   req.BodyText,
		FooterText: req.FooterText,

		Signature1Name:     req.Signature1Name,
		Signature1Title:    req.Signature1Title,
		Signature1ImageURL: req.Signature1ImageURL,
		Signature2Name:     req.Signature2Name,
		Signature2Title:    req.Signature2Title,
		Signature2ImageURL: req.Signature2ImageURL,

		ShowSerial:    req.ShowSerial,
		SerialPrefix:  req.SerialPrefix,
		SerialPadding: req.SerialPadding,

		Extras: req.Extras,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Certificate Templates
// @Tags         certificate-templates
// @Produce      json
// @Security     BearerAuth
// @Param        name        query  string  false  "Name"
// @Param        type        query  string  false  "Type"
// @Param        is_default  query  bool    false  "Default only"
// @Router       /v1/certificate-templates [get]
func (s *Server) ListCertificateTemplates(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificateTemplate, authorization.ActionTemplateView); err != nil {
		AbortWithError(c, err)
		return
	}

	var query certtemplatedomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.certtemplateSvc.List(c.Request.Context(), requestCampusID(c), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDefaultCertificateTemplate(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificateTemplate, authorization.ActionTemplateView); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.certtemplateSvc.GetDefault(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Query("type")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCertificateTemplateByID(c *gin.Context) {
	if id := strings.TrimSpace(c.Param("id")); id == "default" {
		s.GetDefaultCertificateTemplate(c)
		return
	}

	if err := s.authorizeCampusAction(c, authorization.ObjectCertificateTemplate, authorization.ActionTemplateView); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.certtemplateSvc.GetByID(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCertificateTemplate(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificateTemplate, authorization.ActionTemplateManage); err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateCertificateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.certtemplateSvc.Update(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")), req.toDomain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetDefaultCertificateTemplate(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificateTemplate, authorization.ActionTemplateManage); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.certtemplateSvc.SetDefault(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCertificateTemplate(c *gin.Context) {
	if err := s.authorizeCampusAction(c, authorization.ObjectCertificateTemplate, authorization.ActionTemplateManage); err != nil {
		AbortWithError(c, err)
		return
	}

	err := s.certtemplateSvc.Delete(c.Request.Context(), requestCampusID(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
