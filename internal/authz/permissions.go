// Package authz centralises the role permission matrix so handlers and
// services never compare role strings inline.
package authz

import "github.com/Nabeelato/job-tracker-app-sub001/internal/models"

func is(role models.UserRole, any ...models.UserRole) bool {
	for _, r := range any {
		if role == r {
			return true
		}
	}
	return false
}

// CanCreateJobs reports whether the role may open new jobs.
func CanCreateJobs(role models.UserRole) bool {
	return is(role, models.RoleAdmin, models.RoleManager)
}

// CanAssignJobs reports whether the role may change who works a job.
func CanAssignJobs(role models.UserRole) bool {
	return is(role, models.RoleAdmin, models.RoleManager, models.RoleSupervisor)
}

// CanEditJobDetails reports whether the role may edit a job's fields.
func CanEditJobDetails(role models.UserRole) bool {
	return is(role, models.RoleAdmin, models.RoleManager, models.RoleSupervisor)
}

// CanApproveCompletion reports whether the role may resolve a pending
// completion request.
func CanApproveCompletion(role models.UserRole) bool {
	return is(role, models.RoleAdmin, models.RoleManager, models.RoleSupervisor)
}

// CanCancelJob reports whether the role may cancel an active job.
func CanCancelJob(role models.UserRole) bool {
	return is(role, models.RoleAdmin, models.RoleManager)
}

// CanDeleteJobs reports whether the role may hard-delete jobs.
func CanDeleteJobs(role models.UserRole) bool {
	return is(role, models.RoleAdmin)
}

// CanManageUsers reports whether the role may create, edit, or
// deactivate accounts.
func CanManageUsers(role models.UserRole) bool {
	return is(role, models.RoleAdmin)
}

// CanManageDepartments reports whether the role may administer
// departments, custom fields, and column labels.
func CanManageDepartments(role models.UserRole) bool {
	return is(role, models.RoleAdmin)
}

// CanViewAllJobs reports whether the role sees every job rather than
// only their own assignments.
func CanViewAllJobs(role models.UserRole) bool {
	return is(role, models.RoleAdmin, models.RoleManager, models.RoleSupervisor)
}

// NeedsApprovalToComplete reports whether the role must request
// completion instead of moving a job to COMPLETED directly.
func NeedsApprovalToComplete(role models.UserRole) bool {
	return role == models.RoleStaff
}

// CanUpdateProgress reports whether the role may change a job's
// progress percentage. Everyone working the job may.
func CanUpdateProgress(role models.UserRole) bool {
	return is(role, models.RoleAdmin, models.RoleManager, models.RoleSupervisor, models.RoleStaff)
}
