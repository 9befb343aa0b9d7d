package engine

import (
	"math"
	"sort"
	"time"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/models"
	"github.com/google/uuid"
)

// Options are the read-only scoring constants. They are plumbed in per
// call so the engine itself holds no state.
type Options struct {
	OverloadThreshold        int
	CrimeTypeWeight          float64
	FacilityTypeWeight       float64
	HighPriorityThreshold    int
	IncludeSupervisorsInPool bool
}

// DefaultOptions returns the calibrated scoring constants.
func DefaultOptions() Options {
	return Options{
		OverloadThreshold:     5,
		CrimeTypeWeight:       1.2,
		FacilityTypeWeight:    1.0,
		HighPriorityThreshold: 60,
	}
}

func (o Options) typeWeight(t models.ReportType) float64 {
	if t == models.ReportTypeCrime {
		return o.CrimeTypeWeight
	}
	return o.FacilityTypeWeight
}

// Rank produces the full priority ordering of unassigned reports at
// the instant now. A report is unassigned when its status is PENDING
// or IN_PROGRESS and no assignment row references it. typeFilter, when
// non-nil, restricts the ranking to one report type.
//
// The ordering is total and deterministic: priority score descending,
// then older submission first, then report id ascending.
func Rank(now time.Time, reports []models.Report, assignments []models.Assignment, staff []models.Staff, typeFilter *models.ReportType, opts Options, warn WarnFunc) []models.RankedReport {
	workloads := Aggregate(reports, assignments, staff, warn)
	availableStaff := AvailableStaffCount(workloads, opts)

	staffByID := make(map[uuid.UUID]struct{}, len(staff))
	for _, s := range staff {
		staffByID[s.ID] = struct{}{}
	}
	reportByID := make(map[uuid.UUID]struct{}, len(reports))
	for _, r := range reports {
		reportByID[r.ID] = struct{}{}
	}

	// Assignment rows already rejected by Aggregate (unknown report or
	// staff) are ignored here too, so eligibility and workload agree on
	// what counts as an assignment.
	assignmentCounts := make(map[uuid.UUID]int, len(assignments))
	for _, a := range assignments {
		if _, ok := reportByID[a.ReportID]; !ok {
			continue
		}
		if _, ok := staffByID[a.StaffID]; !ok {
			continue
		}
		assignmentCounts[a.ReportID]++
	}

	ranked := make([]models.RankedReport, 0, len(reports))
	for _, r := range reports {
		if r.Status.IsTerminal() {
			continue
		}
		if assignmentCounts[r.ID] > 0 {
			continue
		}
		if typeFilter != nil && r.Type != *typeFilter {
			continue
		}

		severity := NormalizeSeverity(r)
		waiting := waitingDays(now, r.SubmittedAt)
		score := priorityScore(waiting, severity, r.Type, availableStaff, opts)

		ranked = append(ranked, models.RankedReport{
			Report:              r,
			WaitingDays:         waiting,
			SeverityScore:       severity,
			SeverityLabel:       SeverityLabel(severity),
			AssignmentCount:     assignmentCounts[r.ID],
			AvailableStaffCount: availableStaff,
			PriorityScore:       score,
			RequiresAttention:   score >= opts.HighPriorityThreshold,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return ranked
}

// waitingDays is the whole days elapsed since submission, never
// negative (clock skew can put submittedAt slightly in the future).
func waitingDays(now, submittedAt time.Time) int {
	days := int(now.Sub(submittedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// priorityScore combines waiting time and severity additively, then
// scales by the type weight and the staff-scarcity factor. Fewer
// available staff raises urgency across the board. The result is
// rounded and clamped to [0, 100].
func priorityScore(waitingDays, severityScore int, t models.ReportType, availableStaff int, opts Options) int {
	staffFactor := 1.0 + 1.0/math.Max(float64(availableStaff), 1)
	raw := (float64(waitingDays)*2 + float64(severityScore)*6) * opts.typeWeight(t) * staffFactor

	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Paginate slices an already-ranked list. The ranking is computed once
// over the full snapshot, so pages are consistent with each other: no
// report moves between pages of the same ranking. A page past the end
// yields an empty (never nil) data slice.
func Paginate(ranked []models.RankedReport, page, pageSize int) models.RankedReportPage {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	// The offset arithmetic can wrap negative for absurd page numbers
	// straight off the query string; a wrapped start or end must read
	// as "past the end", not as a valid slice bound.
	start := (page - 1) * pageSize
	end := start + pageSize
	data := make([]models.RankedReport, 0, pageSize)
	if start >= 0 && start < len(ranked) {
		if end > len(ranked) || end < 0 {
			end = len(ranked)
		}
		data = append(data, ranked[start:end]...)
	}

	return models.RankedReportPage{
		Data:     data,
		Total:    len(ranked),
		Page:     page,
		PageSize: pageSize,
	}
}
