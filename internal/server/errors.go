package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	assignmentdomain "github.com/shafaqzafar/demoacademia/internal/assignment/domain"
	authdomain "github.com/shafaqzafar/demoacademia/internal/auth/domain"
	"github.com/shafaqzafar/demoacademia/internal/auth/token"
	"github.com/shafaqzafar/demoacademia/internal/authorization"
	campusdomain "github.com/shafaqzafar/demoacademia/internal/campus/domain"
	certificatedomain "github.com/shafaqzafar/demoacademia/internal/certificate/domain"
	"github.com/shafaqzafar/demoacademia/internal/certificate/printing"
	certtemplatedomain "github.com/shafaqzafar/demoacademia/internal/certtemplate/domain"
	dashboarddomain "github.com/shafaqzafar/demoacademia/internal/dashboard/domain"
	notificationdomain "github.com/shafaqzafar/demoacademia/internal/notification/domain"
	obscontext "github.com/shafaqzafar/demoacademia/internal/observability/context"
	studentdomain "github.com/shafaqzafar/demoacademia/internal/student/domain"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not_found")
	ErrTooManyRequests    = errors.New("too_many_requests")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

type apiError struct {
	status  int
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return e.Code
}

func newValidationError(field, code, message string) error {
	return &apiError{
		status:  http.StatusBadRequest,
		Code:    code,
		Field:   field,
		Message: message,
	}
}

func invalidRequestError() error {
	return &apiError{
		status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

// AbortWithError translates service errors into HTTP responses. Unrecognized
// errors become opaque 500s so internals never leak to clients. The request id
// rides along so support tickets can be matched to log entries.
func AbortWithError(c *gin.Context, err error) {
	requestID := obscontext.RequestIDFromGin(c)

	var api *apiError
	if errors.As(err, &api) {
		payload := gin.H{"error": api}
		if requestID != "" {
			payload["request_id"] = requestID
		}
		c.AbortWithStatusJSON(api.status, payload)
		return
	}

	status := statusForError(err)
	code := err.Error()
	if status == http.StatusInternalServerError {
		code = "internal_error"
	}
	payload := gin.H{"error": gin.H{"code": code}}
	if requestID != "" {
		payload["request_id"] = requestID
	}
	c.AbortWithStatusJSON(status, payload)
}

func statusForError(err error) int {
	switch {
	case isNotFoundError(err):
		return http.StatusNotFound
	case isValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, authdomain.ErrUserDisabled):
		return http.StatusForbidden
	case errors.Is(err, campusdomain.ErrSlugTaken),
		errors.Is(err, campusdomain.ErrMemberExists),
		errors.Is(err, assignmentdomain.ErrAlreadySubmitted):
		return http.StatusConflict
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, printing.ErrSurfaceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, campusdomain.ErrCampusNotFound),
		errors.Is(err, studentdomain.ErrStudentNotFound),
		errors.Is(err, certtemplatedomain.ErrNotFound),
		errors.Is(err, certificatedomain.ErrCertificateNotFound),
		errors.Is(err, certificatedomain.ErrTemplateNotFound),
		errors.Is(err, certificatedomain.ErrStudentNotFound),
		errors.Is(err, assignmentdomain.ErrAssignmentNotFound),
		errors.Is(err, assignmentdomain.ErrStudentNotFound),
		errors.Is(err, notificationdomain.ErrNotificationNotFound),
		errors.Is(err, authdomain.ErrUserNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, campusdomain.ErrInvalidName),
		errors.Is(err, campusdomain.ErrInvalidSlug),
		errors.Is(err, campusdomain.ErrInvalidUser),
		errors.Is(err, campusdomain.ErrInvalidRole),
		errors.Is(err, studentdomain.ErrInvalidCampus),
		errors.Is(err, studentdomain.ErrInvalidName),
		errors.Is(err, studentdomain.ErrInvalidEmail),
		errors.Is(err, studentdomain.ErrInvalidID),
		errors.Is(err, certtemplatedomain.ErrInvalidCampus),
		errors.Is(err, certtemplatedomain.ErrInvalidID),
		errors.Is(err, certtemplatedomain.ErrInvalidName),
		errors.Is(err, certtemplatedomain.ErrInvalidType),
		errors.Is(err, certificatedomain.ErrInvalidCampus),
		errors.Is(err, certificatedomain.ErrInvalidID),
		errors.Is(err, certificatedomain.ErrNoStudents),
		errors.Is(err, certificatedomain.ErrInvalidStatus),
		errors.Is(err, assignmentdomain.ErrInvalidCampus),
		errors.Is(err, assignmentdomain.ErrInvalidID),
		errors.Is(err, assignmentdomain.ErrInvalidTitle),
		errors.Is(err, assignmentdomain.ErrEmptySubmission),
		errors.Is(err, notificationdomain.ErrInvalidCampus),
		errors.Is(err, notificationdomain.ErrInvalidID),
		errors.Is(err, notificationdomain.ErrInvalidUser),
		errors.Is(err, notificationdomain.ErrInvalidTitle),
		errors.Is(err, dashboarddomain.ErrInvalidCampus),
		errors.Is(err, authorization.ErrInvalidActor),
		errors.Is(err, authorization.ErrInvalidCampus),
		errors.Is(err, authorization.ErrInvalidObject),
		errors.Is(err, authorization.ErrInvalidAction):
		return true
	default:
		return false
	}
}
