package engine

import (
	"math"
	"sort"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/models"
)

// Performance blend weights and the neutral speed default applied when
// a team has no resolved cases to measure.
const (
	resolutionWeight    = 0.5
	speedWeight         = 0.3
	balanceWeight       = 0.2
	neutralSpeedScore   = 50.0
	topPerformerCount   = 3
	speedPenaltyPerDay  = 5.0
	balancePenaltyPerWL = 10.0
)

// TeamPerformance scores every team, including empty ones, and returns
// the metrics ranked by performance score descending (team id
// ascending on ties). An inactive team lands at 35.0 rather than a
// misleading perfect score: 0 resolution, neutral 50 speed, 100
// balance.
func TeamPerformance(teams []TeamWorkload) []models.TeamMetrics {
	metrics := make([]models.TeamMetrics, 0, len(teams))
	for _, t := range teams {
		m := models.TeamMetrics{
			TeamID:            t.Supervisor.ID,
			SupervisorName:    t.Supervisor.Name,
			Department:        t.Supervisor.Department,
			Position:          t.Supervisor.Position,
			TeamSize:          t.TeamSize,
			TotalCases:        t.TotalCaseCount,
			ResolvedCases:     t.ResolvedCaseCount,
			ActiveCases:       t.ActiveCaseCount,
			ResolutionRatePct: resolutionRatePct(t.ResolvedCaseCount, t.TotalCaseCount),
			AvgResolutionDays: t.AvgResolutionDays,
			AvgResponseDays:   t.AvgResponseDays,
			WorkloadPerMember: t.WorkloadPerMember,
			TeamStatus:        TeamStatus(t.WorkloadPerMember),
		}
		m.PerformanceScore = performanceScore(m.ResolutionRatePct, t.AvgResolutionDays, t.WorkloadPerMember)
		metrics = append(metrics, m)
	}

	sort.Slice(metrics, func(i, j int) bool {
		if metrics[i].PerformanceScore != metrics[j].PerformanceScore {
			return metrics[i].PerformanceScore > metrics[j].PerformanceScore
		}
		return metrics[i].TeamID.String() < metrics[j].TeamID.String()
	})
	return metrics
}

// TopPerformers returns the leading teams from an already-ranked
// metrics list, at most topPerformerCount of them.
func TopPerformers(ranked []models.TeamMetrics) []models.TeamMetrics {
	n := topPerformerCount
	if len(ranked) < n {
		n = len(ranked)
	}
	return ranked[:n]
}

// resolutionRatePct is the resolved share of all cases, in percent.
// A team with no cases reports exactly 0.
func resolutionRatePct(resolved, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(resolved) / float64(total) * 100
}

// performanceScore blends three normalized components.
//
//	resolution: the resolution rate itself (0-100)
//	speed:      100 minus 5 per average resolution day, floor 0;
//	            a nil average means no data and scores neutral 50
//	balance:    100 minus 10 per unit of workload per member, floor 0
//
// The blend is 0.5/0.3/0.2 and the result is rounded to one decimal.
func performanceScore(resolutionRate float64, avgResolutionDays *float64, workloadPerMember float64) float64 {
	speed := neutralSpeedScore
	if avgResolutionDays != nil {
		speed = math.Max(0, 100-*avgResolutionDays*speedPenaltyPerDay)
	}
	balance := 100 - math.Min(workloadPerMember*balancePenaltyPerWL, 100)

	score := resolutionWeight*resolutionRate + speedWeight*speed + balanceWeight*balance
	return math.Round(score*10) / 10
}
