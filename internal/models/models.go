// Package models defines the data structures used across the application.
// These map to the campus incident PostgreSQL schema.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportType distinguishes the two incident report families.
type ReportType string

const (
	ReportTypeCrime    ReportType = "CRIME"
	ReportTypeFacility ReportType = "FACILITY"
)

// ReportStatus is the lifecycle state of a report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "PENDING"
	StatusInProgress ReportStatus = "IN_PROGRESS"
	StatusResolved   ReportStatus = "RESOLVED"
	StatusRejected   ReportStatus = "REJECTED"
)

// IsTerminal reports whether the status is a final state.
func (s ReportStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusRejected
}

// StaffRole is the authorization role of a staff member.
type StaffRole string

const (
	RoleStaff      StaffRole = "STAFF"
	RoleSupervisor StaffRole = "SUPERVISOR"
	RoleAdmin      StaffRole = "ADMIN"
	RoleSuperAdmin StaffRole = "SUPERADMIN"
)

// Report is an incident report submitted by a student or staff member.
// The triage engine treats reports as read-only snapshot rows.
type Report struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Type        ReportType   `json:"type" db:"type"`
	Status      ReportStatus `json:"status" db:"status"`
	Title       string       `json:"title" db:"title"`
	Location    string       `json:"location" db:"location"`
	SubmittedAt time.Time    `json:"submitted_at" db:"submitted_at"`
	SubmittedBy uuid.UUID    `json:"submitted_by" db:"submitted_by"`

	// Type-specific severity vocabulary. Exactly one is populated:
	// InjuryLevel for CRIME, SeverityLevel for FACILITY. Either may be
	// empty when the submitter left it unspecified.
	InjuryLevel   string `json:"injury_level,omitempty" db:"injury_level"`
	SeverityLevel string `json:"severity_level,omitempty" db:"severity_level"`
}

// Assignment links a report to a staff member. Reassignment creates a
// new row; rows are never deleted.
type Assignment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ReportID    uuid.UUID `json:"report_id" db:"report_id"`
	StaffID     uuid.UUID `json:"staff_id" db:"staff_id"`
	AssignedAt  time.Time `json:"assigned_at" db:"assigned_at"`
	ActionTaken string    `json:"action_taken,omitempty" db:"action_taken"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Staff is a staff account. SupervisorID is nil for staff that report
// to nobody (supervisors, admins).
type Staff struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Department   string     `json:"department" db:"department"`
	Position     string     `json:"position" db:"position"`
	Role         StaffRole  `json:"role" db:"role"`
	SupervisorID *uuid.UUID `json:"supervisor_id,omitempty" db:"supervisor_id"`
}

// RankedReport is a report enriched with the triage engine's derived
// fields, as served to staff dashboards.
type RankedReport struct {
	Report
	WaitingDays         int    `json:"waiting_days"`
	SeverityScore       int    `json:"severity_score"`
	SeverityLabel       string `json:"severity_label"`
	AssignmentCount     int    `json:"assignment_count"`
	AvailableStaffCount int    `json:"available_staff_count"`
	PriorityScore       int    `json:"priority_score"`
	RequiresAttention   bool   `json:"requires_attention"`
}

// RankedReportPage is one page of the full priority ranking.
type RankedReportPage struct {
	Data     []RankedReport `json:"data"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// TeamMetrics is the per-team aggregate served to supervisor
// dashboards. Averages are pointers: nil means "no data", never 0.
type TeamMetrics struct {
	TeamID            uuid.UUID `json:"team_id"`
	SupervisorName    string    `json:"supervisor_name"`
	Department        string    `json:"department"`
	Position          string    `json:"position"`
	TeamSize          int       `json:"team_size"`
	TotalCases        int       `json:"total_cases"`
	ResolvedCases     int       `json:"resolved_cases"`
	ActiveCases       int       `json:"active_cases"`
	ResolutionRatePct float64   `json:"resolution_rate_pct"`
	AvgResolutionDays *float64  `json:"avg_resolution_days"`
	AvgResponseDays   *float64  `json:"avg_response_days"`
	WorkloadPerMember float64   `json:"workload_per_member"`
	PerformanceScore  float64   `json:"performance_score"`
	TeamStatus        string    `json:"team_status"`
}

// HealthStatus represents the server health check response.
type HealthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache,omitempty"`
}
