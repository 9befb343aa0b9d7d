// Package store provides read-only access to the report, assignment
// and staff records backing the triage engine. The engine never
// computes over a partially-fetched data set: callers take a full
// Snapshot first and score afterwards.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/models"
	"github.com/google/uuid"
)

// ErrSnapshotFetch marks a failure to read the input snapshot from the
// external store. Callers fail the whole request on it; no partial
// results are ever returned.
var ErrSnapshotFetch = errors.New("snapshot fetch failed")

// ReportFilter narrows ListReports. Nil fields match everything.
type ReportFilter struct {
	Status *models.ReportStatus
	Type   *models.ReportType
}

// AssignmentFilter narrows ListAssignments.
type AssignmentFilter struct {
	ReportID *uuid.UUID
	StaffID  *uuid.UUID
}

// StaffFilter narrows ListStaff.
type StaffFilter struct {
	Role         *models.StaffRole
	SupervisorID *uuid.UUID
}

// Source is the read-only record store the engine consumes.
type Source interface {
	ListReports(ctx context.Context, f ReportFilter) ([]models.Report, error)
	ListAssignments(ctx context.Context, f AssignmentFilter) ([]models.Assignment, error)
	ListStaff(ctx context.Context, f StaffFilter) ([]models.Staff, error)
}

// Snapshot is a consistent view of the records at one instant.
type Snapshot struct {
	Reports     []models.Report
	Assignments []models.Assignment
	Staff       []models.Staff
	TakenAt     time.Time
}

// TakeSnapshot fetches all three record sets up front. Any failure
// aborts the snapshot with ErrSnapshotFetch so the caller never scores
// an inconsistent subset.
func TakeSnapshot(ctx context.Context, src Source) (*Snapshot, error) {
	reports, err := src.ListReports(ctx, ReportFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: list reports: %w", ErrSnapshotFetch, err)
	}
	assignments, err := src.ListAssignments(ctx, AssignmentFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: list assignments: %w", ErrSnapshotFetch, err)
	}
	staff, err := src.ListStaff(ctx, StaffFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: list staff: %w", ErrSnapshotFetch, err)
	}

	return &Snapshot{
		Reports:     reports,
		Assignments: assignments,
		Staff:       staff,
		TakenAt:     time.Now(),
	}, nil
}
