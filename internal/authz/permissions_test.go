package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
)

func TestPermissionMatrix(t *testing.T) {
	tests := []struct {
		name  string
		check func(models.UserRole) bool
		allow []models.UserRole
	}{
		{"create jobs", CanCreateJobs, []models.UserRole{models.RoleAdmin, models.RoleManager}},
		{"assign jobs", CanAssignJobs, []models.UserRole{models.RoleAdmin, models.RoleManager, models.RoleSupervisor}},
		{"edit job details", CanEditJobDetails, []models.UserRole{models.RoleAdmin, models.RoleManager, models.RoleSupervisor}},
		{"approve completion", CanApproveCompletion, []models.UserRole{models.RoleAdmin, models.RoleManager, models.RoleSupervisor}},
		{"cancel job", CanCancelJob, []models.UserRole{models.RoleAdmin, models.RoleManager}},
		{"delete jobs", CanDeleteJobs, []models.UserRole{models.RoleAdmin}},
		{"manage users", CanManageUsers, []models.UserRole{models.RoleAdmin}},
		{"manage departments", CanManageDepartments, []models.UserRole{models.RoleAdmin}},
		{"view all jobs", CanViewAllJobs, []models.UserRole{models.RoleAdmin, models.RoleManager, models.RoleSupervisor}},
		{"needs approval to complete", NeedsApprovalToComplete, []models.UserRole{models.RoleStaff}},
	}

	all := []models.UserRole{models.RoleAdmin, models.RoleManager, models.RoleSupervisor, models.RoleStaff}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed := make(map[models.UserRole]bool, len(tt.allow))
			for _, r := range tt.allow {
				allowed[r] = true
			}
			for _, role := range all {
				assert.Equal(t, allowed[role], tt.check(role), "role %s", role)
			}
		})
	}
}

func TestCanUpdateProgress_AllRoles(t *testing.T) {
	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleManager, models.RoleSupervisor, models.RoleStaff} {
		assert.True(t, CanUpdateProgress(role))
	}
	assert.False(t, CanUpdateProgress(models.UserRole("GUEST")))
}
