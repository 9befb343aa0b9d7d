package engine

import (
	"sort"
	"time"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/models"
	"github.com/google/uuid"
)

// WarnFunc receives non-fatal data-integrity findings (an assignment
// referencing an unknown report or staff member). The engine excludes
// such rows from aggregation and reports them here instead of failing.
// Callers typically pass zap's SugaredLogger.Warnw; a nil WarnFunc
// silences warnings.
type WarnFunc func(msg string, keysAndValues ...interface{})

// StaffWorkload holds the per-staff aggregates derived from the
// assignment history. Averages are nil when no case contributes a
// sample; they are never coerced to zero.
type StaffWorkload struct {
	Staff             models.Staff
	ActiveCaseCount   int
	ResolvedCaseCount int
	TotalCaseCount    int
	AvgResolutionDays *float64
	AvgResponseDays   *float64
}

// TeamWorkload aggregates StaffWorkload across the members of one
// supervisor's team. Counts are sums; averages are the simple mean of
// the member averages, ignoring members without one.
type TeamWorkload struct {
	Supervisor        models.Staff
	TeamSize          int
	ActiveCaseCount   int
	ResolvedCaseCount int
	TotalCaseCount    int
	AvgResolutionDays *float64
	AvgResponseDays   *float64
	WorkloadPerMember float64
}

// Workloads is the output of Aggregate: per-staff figures keyed by
// staff id plus per-team rollups ordered by supervisor id so repeated
// runs over the same snapshot produce identical output.
type Workloads struct {
	Staff map[uuid.UUID]*StaffWorkload
	Teams []TeamWorkload
}

// sample accumulates duration observations for one mean.
type sample struct {
	sum   float64
	count int
}

func (s *sample) add(d time.Duration) {
	s.sum += d.Hours() / 24
	s.count++
}

func (s *sample) mean() *float64 {
	if s.count == 0 {
		return nil
	}
	m := s.sum / float64(s.count)
	return &m
}

// Aggregate computes per-staff and per-team workload figures from a
// snapshot. Assignments referencing a report or staff member absent
// from the snapshot are excluded and surfaced through warn.
//
// An assignment contributes to its staff member as follows: reports in
// a non-terminal status count as active; RESOLVED reports count as
// resolved and contribute a resolution-time sample (updated - assigned);
// every assignment counts toward the total. Assignments with a recorded
// action contribute a response-time sample.
func Aggregate(reports []models.Report, assignments []models.Assignment, staff []models.Staff, warn WarnFunc) Workloads {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}

	reportByID := make(map[uuid.UUID]models.Report, len(reports))
	for _, r := range reports {
		reportByID[r.ID] = r
	}

	byStaff := make(map[uuid.UUID]*StaffWorkload, len(staff))
	for _, s := range staff {
		byStaff[s.ID] = &StaffWorkload{Staff: s}
	}

	resolution := make(map[uuid.UUID]*sample)
	response := make(map[uuid.UUID]*sample)

	for _, a := range assignments {
		report, ok := reportByID[a.ReportID]
		if !ok {
			warn("assignment references unknown report",
				"assignment_id", a.ID, "report_id", a.ReportID)
			continue
		}
		wl, ok := byStaff[a.StaffID]
		if !ok {
			warn("assignment references unknown staff member",
				"assignment_id", a.ID, "staff_id", a.StaffID)
			continue
		}

		wl.TotalCaseCount++
		switch {
		case !report.Status.IsTerminal():
			wl.ActiveCaseCount++
		case report.Status == models.StatusResolved:
			wl.ResolvedCaseCount++
			s := resolution[a.StaffID]
			if s == nil {
				s = &sample{}
				resolution[a.StaffID] = s
			}
			s.add(a.UpdatedAt.Sub(a.AssignedAt))
		}

		if a.ActionTaken != "" {
			s := response[a.StaffID]
			if s == nil {
				s = &sample{}
				response[a.StaffID] = s
			}
			s.add(a.UpdatedAt.Sub(a.AssignedAt))
		}
	}

	for id, wl := range byStaff {
		if s, ok := resolution[id]; ok {
			wl.AvgResolutionDays = s.mean()
		}
		if s, ok := response[id]; ok {
			wl.AvgResponseDays = s.mean()
		}
	}

	return Workloads{
		Staff: byStaff,
		Teams: aggregateTeams(staff, byStaff),
	}
}

// aggregateTeams rolls staff workloads up into one team per
// SUPERVISOR. A supervisor with no members is a valid empty team.
func aggregateTeams(staff []models.Staff, byStaff map[uuid.UUID]*StaffWorkload) []TeamWorkload {
	members := make(map[uuid.UUID][]models.Staff)
	for _, s := range staff {
		if s.SupervisorID == nil || *s.SupervisorID == s.ID {
			continue
		}
		members[*s.SupervisorID] = append(members[*s.SupervisorID], s)
	}

	var teams []TeamWorkload
	for _, s := range staff {
		if s.Role != models.RoleSupervisor {
			continue
		}

		team := TeamWorkload{Supervisor: s}
		var resolutionMeans, responseMeans sample
		for _, m := range members[s.ID] {
			team.TeamSize++
			wl := byStaff[m.ID]
			team.ActiveCaseCount += wl.ActiveCaseCount
			team.ResolvedCaseCount += wl.ResolvedCaseCount
			team.TotalCaseCount += wl.TotalCaseCount
			if wl.AvgResolutionDays != nil {
				resolutionMeans.sum += *wl.AvgResolutionDays
				resolutionMeans.count++
			}
			if wl.AvgResponseDays != nil {
				responseMeans.sum += *wl.AvgResponseDays
				responseMeans.count++
			}
		}
		team.AvgResolutionDays = resolutionMeans.mean()
		team.AvgResponseDays = responseMeans.mean()
		team.WorkloadPerMember = float64(team.ActiveCaseCount) / float64(max(team.TeamSize, 1))
		teams = append(teams, team)
	}

	sort.Slice(teams, func(i, j int) bool {
		return teams[i].Supervisor.ID.String() < teams[j].Supervisor.ID.String()
	})
	return teams
}
