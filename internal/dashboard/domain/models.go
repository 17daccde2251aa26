package domain

import "time"

// Summary captures the headline numbers shown on the campus dashboard.
type Summary struct {
	Students              int64 `json:"students"`
	Assignments           int64 `json:"assignments"`
	CertificatesTotal     int64 `json:"certificates_total"`
	CertificatesThisMonth int64 `json:"certificates_this_month"`
	CertificatesPrinted   int64 `json:"certificates_printed"`
	UnreadNotifications   int64 `json:"unread_notifications"`
}

// SummaryResponse is the API response for the dashboard summary.
type SummaryResponse struct {
	Summary Summary `json:"summary"`
}

// Activity is a human-readable campus event.
type Activity struct {
	Message    string    `json:"message"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityResponse is the API response for the recent activity feed.
type ActivityResponse struct {
	Activity []Activity `json:"activity"`
}
