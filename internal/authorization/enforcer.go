package authorization

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// roleGrants maps a campus membership role to the actions it may perform.
// "*" grants every known action.
var roleGrants = map[string][]string{
	"OWNER": {"*"},
	"ADMIN": {"*"},
	"TEACHER": {
		ActionCampusView,
		ActionStudentView,
		ActionTemplateView,
		ActionCertificateView,
		ActionCertificateIssue,
		ActionCertificatePrint,
		ActionAssignmentView,
		ActionAssignmentManage,
		ActionNotificationView,
		ActionNotificationManage,
		ActionDashboardView,
	},
	"STUDENT": {
		ActionCampusView,
		ActionCertificateView,
		ActionAssignmentView,
		ActionNotificationView,
		ActionDashboardView,
	},
}

// Enforcer resolves membership roles and evaluates role grants.
type Enforcer struct {
	db *gorm.DB
}

func NewEnforcer(db *gorm.DB) (*Enforcer, error) {
	if db == nil {
		return nil, errors.New("authorization enforcer requires a database handle")
	}
	return &Enforcer{db: db}, nil
}

// Enforce reports whether the user holds a role on the campus that grants
// the action. Users without a membership row are denied.
func (e *Enforcer) Enforce(ctx context.Context, userID, campusID int64, action string) (bool, error) {
	var role string
	err := e.db.WithContext(ctx).
		Table("campus_members").
		Select("role").
		Where("campus_id = ? AND user_id = ?", campusID, userID).
		Limit(1).
		Scan(&role).Error
	if err != nil {
		return false, err
	}
	if role == "" {
		return false, nil
	}

	grants, ok := roleGrants[role]
	if !ok {
		return false, nil
	}
	for _, grant := range grants {
		if grant == "*" || grant == action {
			return true, nil
		}
	}
	return false, nil
}
