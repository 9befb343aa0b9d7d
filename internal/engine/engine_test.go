package engine

import (
	"time"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/models"
	"github.com/google/uuid"
)

// Shared fixtures for the engine tests. Ids are deterministic so
// ordering assertions are stable.

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func uid(n byte) uuid.UUID {
	return uuid.UUID{15: n}
}

func uidPtr(n byte) *uuid.UUID {
	id := uid(n)
	return &id
}

func staffMember(n byte, role models.StaffRole, supervisorID *uuid.UUID) models.Staff {
	return models.Staff{
		ID:           uid(n),
		Name:         "Staff " + uid(n).String()[34:],
		Department:   "Campus Security",
		Position:     "Officer",
		Role:         role,
		SupervisorID: supervisorID,
	}
}

func crimeReport(n byte, status models.ReportStatus, injury string, submittedAt time.Time) models.Report {
	return models.Report{
		ID:          uid(n),
		Type:        models.ReportTypeCrime,
		Status:      status,
		Location:    "Block A",
		SubmittedAt: submittedAt,
		SubmittedBy: uid(200),
		InjuryLevel: injury,
	}
}

func facilityReport(n byte, status models.ReportStatus, severity string, submittedAt time.Time) models.Report {
	return models.Report{
		ID:            uid(n),
		Type:          models.ReportTypeFacility,
		Status:        status,
		Location:      "Block B",
		SubmittedAt:   submittedAt,
		SubmittedBy:   uid(200),
		SeverityLevel: severity,
	}
}

func assignmentRow(n byte, reportID, staffID uuid.UUID, assignedAt time.Time, daysToUpdate float64, action string) models.Assignment {
	return models.Assignment{
		ID:          uid(n),
		ReportID:    reportID,
		StaffID:     staffID,
		AssignedAt:  assignedAt,
		ActionTaken: action,
		UpdatedAt:   assignedAt.Add(time.Duration(daysToUpdate * 24 * float64(time.Hour))),
	}
}

// availablePool returns n STAFF-role members with no caseload, enough
// to pin availableStaffCount in priority tests.
func availablePool(n int) []models.Staff {
	staff := make([]models.Staff, 0, n)
	for i := 0; i < n; i++ {
		staff = append(staff, staffMember(byte(100+i), models.RoleStaff, nil))
	}
	return staff
}
