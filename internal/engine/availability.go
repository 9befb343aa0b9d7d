package engine

import "github.com/adhaghani/cybercrime-platform-sub001/internal/models"

// Team status labels derived from workload per member.
const (
	TeamStatusOverloaded = "OVERLOADED"
	TeamStatusBusy       = "BUSY"
	TeamStatusModerate   = "MODERATE"
	TeamStatusLight      = "LIGHT"
	TeamStatusAvailable  = "AVAILABLE"
)

// IsAvailable reports whether the staff member can take on another
// case under the given overload threshold.
func (w *StaffWorkload) IsAvailable(overloadThreshold int) bool {
	return w.ActiveCaseCount < overloadThreshold
}

// AvailableStaffCount counts staff members in the assignment-eligible
// pool that are below the overload threshold. The pool is staff with
// role STAFF; supervisors join it only when the option is set, and
// admin roles never handle cases directly.
func AvailableStaffCount(w Workloads, opts Options) int {
	count := 0
	for _, wl := range w.Staff {
		if !inAssignmentPool(wl.Staff.Role, opts) {
			continue
		}
		if wl.IsAvailable(opts.OverloadThreshold) {
			count++
		}
	}
	return count
}

func inAssignmentPool(role models.StaffRole, opts Options) bool {
	switch role {
	case models.RoleStaff:
		return true
	case models.RoleSupervisor:
		return opts.IncludeSupervisorsInPool
	default:
		return false
	}
}

// TeamStatus buckets a team's workload per member into a status label.
// Bounds are closed below, so a value sitting exactly on a boundary
// lands in the higher-workload bucket.
func TeamStatus(workloadPerMember float64) string {
	switch {
	case workloadPerMember >= 8:
		return TeamStatusOverloaded
	case workloadPerMember >= 5:
		return TeamStatusBusy
	case workloadPerMember >= 3:
		return TeamStatusModerate
	case workloadPerMember >= 1:
		return TeamStatusLight
	default:
		return TeamStatusAvailable
	}
}
