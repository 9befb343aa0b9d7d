package engine

import (
	"math"
	"testing"
	"time"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_SevereCrimeWithScarceStaffClampsTo100(t *testing.T) {
	// 10 waiting days, severity 5, one available staff member:
	// (10*2 + 5*6) * 1.2 * 2.0 = 120, clamped to 100.
	reports := []models.Report{
		crimeReport(10, models.StatusPending, "SEVERE", testNow.AddDate(0, 0, -10)),
	}
	staff := availablePool(1)

	ranked := Rank(testNow, reports, nil, staff, nil, DefaultOptions(), nil)
	require.Len(t, ranked, 1)

	r := ranked[0]
	assert.Equal(t, 10, r.WaitingDays)
	assert.Equal(t, 5, r.SeverityScore)
	assert.Equal(t, 1, r.AvailableStaffCount)
	assert.Equal(t, 100, r.PriorityScore)
	assert.True(t, r.RequiresAttention)
	assert.Equal(t, "Critical", r.SeverityLabel)
}

func TestRank_FreshLowFacilityReportRoundsUp(t *testing.T) {
	// 0 waiting days, severity 1, ten available staff:
	// (0 + 6) * 1.0 * 1.1 = 6.6, rounds to 7.
	reports := []models.Report{
		facilityReport(10, models.StatusPending, "LOW", testNow),
	}
	staff := availablePool(10)

	ranked := Rank(testNow, reports, nil, staff, nil, DefaultOptions(), nil)
	require.Len(t, ranked, 1)

	r := ranked[0]
	assert.Equal(t, 0, r.WaitingDays)
	assert.Equal(t, 1, r.SeverityScore)
	assert.Equal(t, 10, r.AvailableStaffCount)
	assert.Equal(t, 7, r.PriorityScore)
	assert.False(t, r.RequiresAttention)
}

func TestRank_ExcludesTerminalAndAssignedReports(t *testing.T) {
	staff := availablePool(3)
	reports := []models.Report{
		crimeReport(10, models.StatusPending, "MINOR", testNow.AddDate(0, 0, -1)),
		crimeReport(11, models.StatusResolved, "SEVERE", testNow.AddDate(0, 0, -1)),
		crimeReport(12, models.StatusRejected, "SEVERE", testNow.AddDate(0, 0, -1)),
		crimeReport(13, models.StatusInProgress, "SEVERE", testNow.AddDate(0, 0, -1)),
	}
	assignments := []models.Assignment{
		assignmentRow(20, uid(13), staff[0].ID, testNow, 0, ""),
	}

	ranked := Rank(testNow, reports, assignments, staff, nil, DefaultOptions(), nil)
	require.Len(t, ranked, 1)
	assert.Equal(t, uid(10), ranked[0].ID)
	assert.Equal(t, 0, ranked[0].AssignmentCount)
}

func TestRank_TypeFilter(t *testing.T) {
	staff := availablePool(3)
	reports := []models.Report{
		crimeReport(10, models.StatusPending, "MINOR", testNow),
		facilityReport(11, models.StatusPending, "HIGH", testNow),
	}

	crime := models.ReportTypeCrime
	ranked := Rank(testNow, reports, nil, staff, &crime, DefaultOptions(), nil)
	require.Len(t, ranked, 1)
	assert.Equal(t, models.ReportTypeCrime, ranked[0].Type)
}

func TestRank_OrderIsTotalAndDeterministic(t *testing.T) {
	staff := availablePool(5)
	// Both timestamps sit in the same whole waiting day, so equal
	// severities produce equal scores and the time tie-break decides.
	older := testNow.Add(-26 * time.Hour)
	newer := testNow.Add(-25 * time.Hour)

	reports := []models.Report{
		// Same score, same timestamp: id breaks the tie.
		facilityReport(12, models.StatusPending, "MEDIUM", newer),
		facilityReport(11, models.StatusPending, "MEDIUM", newer),
		// Same score, older submission wins.
		facilityReport(13, models.StatusPending, "MEDIUM", older),
		// Highest severity first.
		facilityReport(14, models.StatusPending, "CRITICAL", newer),
	}

	ranked := Rank(testNow, reports, nil, staff, nil, DefaultOptions(), nil)
	require.Len(t, ranked, 4)

	assert.Equal(t, uid(14), ranked[0].ID)
	assert.Equal(t, uid(13), ranked[1].ID)
	assert.Equal(t, uid(11), ranked[2].ID)
	assert.Equal(t, uid(12), ranked[3].ID)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].PriorityScore, ranked[i].PriorityScore)
	}
}

func TestRank_ScoreAlwaysWithinBounds(t *testing.T) {
	staff := availablePool(1)
	var reports []models.Report
	for i := byte(0); i < 30; i++ {
		reports = append(reports, crimeReport(10+i, models.StatusPending, "SEVERE",
			testNow.Add(-time.Duration(i)*30*24*time.Hour)))
	}
	// Future submission must clamp waiting days at zero, not go negative.
	reports = append(reports, facilityReport(99, models.StatusPending, "LOW", testNow.Add(48*time.Hour)))

	ranked := Rank(testNow, reports, nil, staff, nil, DefaultOptions(), nil)
	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.PriorityScore, 0)
		assert.LessOrEqual(t, r.PriorityScore, 100)
		assert.GreaterOrEqual(t, r.WaitingDays, 0)
	}
}

func TestRank_NoStaffStillRanks(t *testing.T) {
	reports := []models.Report{
		facilityReport(10, models.StatusPending, "LOW", testNow),
	}

	ranked := Rank(testNow, reports, nil, nil, nil, DefaultOptions(), nil)
	require.Len(t, ranked, 1)
	// Zero available staff is treated as maximum scarcity: factor 2.0.
	assert.Equal(t, 0, ranked[0].AvailableStaffCount)
	assert.Equal(t, 12, ranked[0].PriorityScore)
}

func TestRank_IdempotentOverSameSnapshot(t *testing.T) {
	staff := availablePool(4)
	var reports []models.Report
	for i := byte(0); i < 12; i++ {
		reports = append(reports, crimeReport(10+i, models.StatusPending, "MODERATE",
			testNow.AddDate(0, 0, -int(i))))
	}

	first := Rank(testNow, reports, nil, staff, nil, DefaultOptions(), nil)
	second := Rank(testNow, reports, nil, staff, nil, DefaultOptions(), nil)
	assert.Equal(t, first, second)
}

func TestRank_EmptySnapshot(t *testing.T) {
	ranked := Rank(testNow, nil, nil, nil, nil, DefaultOptions(), nil)
	assert.Empty(t, ranked)

	page := Paginate(ranked, 1, 10)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Zero(t, page.Total)
}

func TestPaginate_CoversRankingExactlyOnce(t *testing.T) {
	staff := availablePool(5)
	var reports []models.Report
	for i := byte(0); i < 25; i++ {
		reports = append(reports, facilityReport(10+i, models.StatusPending, "MEDIUM",
			testNow.Add(-time.Duration(i)*time.Hour)))
	}
	ranked := Rank(testNow, reports, nil, staff, nil, DefaultOptions(), nil)
	require.Len(t, ranked, 25)

	seen := make(map[string]int)
	var flattened []models.RankedReport
	for page := 1; page <= 3; page++ {
		p := Paginate(ranked, page, 10)
		assert.Equal(t, 25, p.Total)
		assert.Equal(t, page, p.Page)
		for _, r := range p.Data {
			seen[r.ID.String()]++
			flattened = append(flattened, r)
		}
	}

	require.Len(t, flattened, 25)
	for id, count := range seen {
		assert.Equal(t, 1, count, "report %s appeared %d times", id, count)
	}
	// Pages concatenate back into the global ranking order.
	assert.Equal(t, ranked, flattened)
}

func TestPaginate_DefensiveInputs(t *testing.T) {
	staff := availablePool(5)
	reports := []models.Report{facilityReport(10, models.StatusPending, "LOW", testNow)}
	ranked := Rank(testNow, reports, nil, staff, nil, DefaultOptions(), nil)

	p := Paginate(ranked, 0, -1)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, defaultPageSize, p.PageSize)
	assert.Len(t, p.Data, 1)

	beyond := Paginate(ranked, 9, 10)
	assert.NotNil(t, beyond.Data)
	assert.Empty(t, beyond.Data)
	assert.Equal(t, 1, beyond.Total)
}

func TestPaginate_ExtremePageNumbersDoNotPanic(t *testing.T) {
	staff := availablePool(5)
	var reports []models.Report
	for i := byte(0); i < 5; i++ {
		reports = append(reports, facilityReport(10+i, models.StatusPending, "LOW",
			testNow.Add(-time.Duration(i)*time.Hour)))
	}
	ranked := Rank(testNow, reports, nil, staff, nil, DefaultOptions(), nil)

	// Offsets that wrap the int must behave like any page past the
	// end: an empty page, not a slice panic.
	for _, page := range []int{922337203685477581, math.MaxInt, math.MaxInt / 2} {
		p := Paginate(ranked, page, 100)
		assert.NotNil(t, p.Data)
		assert.Empty(t, p.Data)
		assert.Equal(t, 5, p.Total)
		assert.Equal(t, page, p.Page)
	}
}
