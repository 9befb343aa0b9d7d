package store

import (
	"context"
	"fmt"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore implements Source on the platform's PostgreSQL schema.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewPostgresStore creates a new Postgres-backed store
func NewPostgresStore(db *pgxpool.Pool, logger *zap.SugaredLogger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// ListReports returns reports matching the filter
func (s *PostgresStore) ListReports(ctx context.Context, f ReportFilter) ([]models.Report, error) {
	query := `
		SELECT id, type, status, title, location, submitted_at, submitted_by,
			COALESCE(injury_level, ''), COALESCE(severity_level, '')
		FROM reports
		WHERE ($1::TEXT IS NULL OR status = $1)
		  AND ($2::TEXT IS NULL OR type = $2)
		ORDER BY submitted_at, id
	`

	rows, err := s.db.Query(ctx, query, textArg((*string)(f.Status)), textArg((*string)(f.Type)))
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.ID, &r.Type, &r.Status, &r.Title, &r.Location,
			&r.SubmittedAt, &r.SubmittedBy, &r.InjuryLevel, &r.SeverityLevel); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// ListAssignments returns assignment rows matching the filter
func (s *PostgresStore) ListAssignments(ctx context.Context, f AssignmentFilter) ([]models.Assignment, error) {
	query := `
		SELECT id, report_id, staff_id, assigned_at, COALESCE(action_taken, ''), updated_at
		FROM assignments
		WHERE ($1::UUID IS NULL OR report_id = $1)
		  AND ($2::UUID IS NULL OR staff_id = $2)
		ORDER BY assigned_at, id
	`

	rows, err := s.db.Query(ctx, query, f.ReportID, f.StaffID)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.ReportID, &a.StaffID,
			&a.AssignedAt, &a.ActionTaken, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ListStaff returns staff accounts matching the filter
func (s *PostgresStore) ListStaff(ctx context.Context, f StaffFilter) ([]models.Staff, error) {
	query := `
		SELECT id, name, department, position, role, supervisor_id
		FROM staff
		WHERE ($1::TEXT IS NULL OR role = $1)
		  AND ($2::UUID IS NULL OR supervisor_id = $2)
		ORDER BY name, id
	`

	rows, err := s.db.Query(ctx, query, textArg((*string)(f.Role)), f.SupervisorID)
	if err != nil {
		return nil, fmt.Errorf("query staff: %w", err)
	}
	defer rows.Close()

	var staff []models.Staff
	for rows.Next() {
		var st models.Staff
		if err := rows.Scan(&st.ID, &st.Name, &st.Department, &st.Position,
			&st.Role, &st.SupervisorID); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		staff = append(staff, st)
	}
	return staff, rows.Err()
}

// textArg passes an optional enum filter as a nullable text parameter.
func textArg(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
