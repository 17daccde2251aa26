package authorization

// Objects are the protected resource families.
const (
	ObjectCampus              = "campus"
	ObjectStudent             = "student"
	ObjectCertificateTemplate = "certificate_template"
	ObjectCertificate         = "certificate"
	ObjectAssignment          = "assignment"
	ObjectNotification        = "notification"
	ObjectDashboard           = "dashboard"
)

// Actions are object-scoped capabilities.
const (
	ActionCampusView   = "campus.view"
	ActionCampusManage = "campus.manage"

	ActionStudentView   = "student.view"
	ActionStudentManage = "student.manage"

	ActionTemplateView   = "certificate_template.view"
	ActionTemplateManage = "certificate_template.manage"

	ActionCertificateView   = "certificate.view"
	ActionCertificateIssue  = "certificate.issue"
	ActionCertificatePrint  = "certificate.print"
	ActionCertificateManage = "certificate.manage"

	ActionAssignmentView   = "assignment.view"
	ActionAssignmentManage = "assignment.manage"

	ActionNotificationView   = "notification.view"
	ActionNotificationManage = "notification.manage"

	ActionDashboardView = "dashboard.view"
)

var knownObjects = map[string]struct{}{
	ObjectCampus:              {},
	ObjectStudent:             {},
	ObjectCertificateTemplate: {},
	ObjectCertificate:         {},
	ObjectAssignment:          {},
	ObjectNotification:        {},
	ObjectDashboard:           {},
}

var knownActions = map[string]string{
	ActionCampusView:         ObjectCampus,
	ActionCampusManage:       ObjectCampus,
	ActionStudentView:        ObjectStudent,
	ActionStudentManage:      ObjectStudent,
	ActionTemplateView:       ObjectCertificateTemplate,
	ActionTemplateManage:     ObjectCertificateTemplate,
	ActionCertificateView:    ObjectCertificate,
	ActionCertificateIssue:   ObjectCertificate,
	ActionCertificatePrint:   ObjectCertificate,
	ActionCertificateManage:  ObjectCertificate,
	ActionAssignmentView:     ObjectAssignment,
	ActionAssignmentManage:   ObjectAssignment,
	ActionNotificationView:   ObjectNotification,
	ActionNotificationManage: ObjectNotification,
	ActionDashboardView:      ObjectDashboard,
}
