package workflow

import (
	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
)

// transitions maps each pipeline status to its allowed successors.
// COMPLETED and CANCELLED are terminal.
var transitions = map[models.JobStatus][]models.JobStatus{
	models.StatusRFISent:            {models.StatusInfoSentJobStarted, models.StatusCancelled},
	models.StatusInfoSentJobStarted: {models.StatusMissingInfo, models.StatusReadyToProceed, models.StatusCancelled},
	models.StatusMissingInfo:        {models.StatusInfoSentJobStarted, models.StatusCancelled},
	models.StatusReadyToProceed:     {models.StatusForReview, models.StatusCancelled},
	models.StatusForReview:          {models.StatusCompleted, models.StatusInfoSentJobStarted, models.StatusCancelled},
	models.StatusCompleted:          {},
	models.StatusCancelled:          {},
}

// NextStatuses returns the statuses a job may legally move to from the
// current status, for the given actor role. The transition into COMPLETED
// is reserved for managers and supervisors; note that ADMIN is not
// exempted from that restriction. An unrecognized current status is an
// error, never an empty default.
func NextStatuses(current models.JobStatus, role models.UserRole) ([]models.JobStatus, error) {
	allowed, ok := transitions[current]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "unrecognized job status "+string(current))
	}

	if role == models.RoleManager || role == models.RoleSupervisor {
		return append([]models.JobStatus(nil), allowed...), nil
	}

	filtered := make([]models.JobStatus, 0, len(allowed))
	for _, s := range allowed {
		if s == models.StatusCompleted {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered, nil
}

// CanTransition reports whether the given role may move a job from one
// status to another.
func CanTransition(from, to models.JobStatus, role models.UserRole) (bool, error) {
	allowed, err := NextStatuses(from, role)
	if err != nil {
		return false, err
	}
	for _, s := range allowed {
		if s == to {
			return true, nil
		}
	}
	return false, nil
}

// IsTerminal reports whether a status has no legal successors.
func IsTerminal(status models.JobStatus) bool {
	allowed, ok := transitions[status]
	return ok && len(allowed) == 0
}
