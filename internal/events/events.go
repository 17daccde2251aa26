package events

// Campus event types recorded for the activity feed and integrations.
const (
	EventCertificateIssued  = "certificate.issued"
	EventCertificatePrinted = "certificate.printed"
	EventCertificateDeleted = "certificate.deleted"
	EventAssignmentCreated  = "assignment.created"
)

// CertificatePayload captures the minimal data needed to describe a
// certificate lifecycle event.
type CertificatePayload struct {
	CertificateID string `json:"certificate_id"`
	CampusID      string `json:"campus_id"`
	StudentID     string `json:"student_id,omitempty"`
	TemplateID    string `json:"template_id,omitempty"`
	PersonName    string `json:"person_name,omitempty"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p CertificatePayload) ToMap() map[string]any {
	payload := map[string]any{
		"certificate_id": p.CertificateID,
		"campus_id":      p.CampusID,
	}
	if p.StudentID != "" {
		payload["student_id"] = p.StudentID
	}
	if p.TemplateID != "" {
		payload["template_id"] = p.TemplateID
	}
	if p.PersonName != "" {
		payload["person_name"] = p.PersonName
	}
	return payload
}

// AssignmentPayload captures the minimal data needed to describe a new
// assignment event.
type AssignmentPayload struct {
	AssignmentID string `json:"assignment_id"`
	CampusID     string `json:"campus_id"`
	Class        string `json:"class,omitempty"`
	Section      string `json:"section,omitempty"`
	Title        string `json:"title,omitempty"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p AssignmentPayload) ToMap() map[string]any {
	payload := map[string]any{
		"assignment_id": p.AssignmentID,
		"campus_id":     p.CampusID,
	}
	if p.Class != "" {
		payload["class"] = p.Class
	}
	if p.Section != "" {
		payload["section"] = p.Section
	}
	if p.Title != "" {
		payload["title"] = p.Title
	}
	return payload
}
