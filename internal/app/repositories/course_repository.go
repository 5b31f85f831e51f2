package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atakan/campusadmin/internal/app/models"
	"github.com/atakan/campusadmin/internal/db"
	"github.com/atakan/campusadmin/internal/pkg/apperrors"
	"github.com/atakan/campusadmin/internal/pkg/dberrors"
)

const courseColumns = `
	id, course_code, course_name, description, credits, instructor, department,
	schedule_days, COALESCE(schedule_time, ''), capacity, semester, academic_year,
	status, created_at, updated_at`

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.CourseCode,
		&course.CourseName,
		&course.Description,
		&course.Credits,
		&course.Instructor,
		&course.Department,
		&course.Schedule.Days,
		&course.Schedule.Time,
		&course.Capacity,
		&course.Semester,
		&course.AcademicYear,
		&course.Status,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if course.Schedule.Days == nil {
		course.Schedule.Days = []string{}
	}
	return &course, nil
}

// Create inserts a new course record
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	days := course.Schedule.Days
	if days == nil {
		days = []string{}
	}

	query := `
		INSERT INTO courses (
			course_code, course_name, description, credits, instructor,
			department, schedule_days, schedule_time, capacity, semester,
			academic_year, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		course.CourseCode,
		course.CourseName,
		course.Description,
		course.Credits,
		course.Instructor,
		course.Department,
		days,
		course.Schedule.Time,
		course.Capacity,
		course.Semester,
		course.AcademicYear,
		course.Status,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_course_code_key") {
			return apperrors.ErrCourseCodeAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course with its enrolled student summaries
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	students, err := r.studentSummaries(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	course.EnrolledStudents = students[id]
	if course.EnrolledStudents == nil {
		course.EnrolledStudents = []models.StudentSummary{}
	}

	return course, nil
}

// List retrieves courses matching the filter, newest first
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error) {
	query := `SELECT` + courseColumns + ` FROM courses`

	var conds []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, filter.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(course_name ILIKE '%%' || $%d || '%%' OR course_code ILIKE '%%' || $%d || '%%'
			  OR department ILIKE '%%' || $%d || '%%')`,
			n, n, n))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conds = append(conds, fmt.Sprintf("department = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Semester != "" {
		args = append(args, filter.Semester)
		conds = append(conds, fmt.Sprintf("semester = $%d", len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	var ids []int64
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		course.EnrolledStudents = []models.StudentSummary{}
		courses = append(courses, course)
		ids = append(ids, course.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		students, err := r.studentSummaries(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, course := range courses {
			if list, ok := students[course.ID]; ok {
				course.EnrolledStudents = list
			}
		}
	}

	return courses, nil
}

// studentSummaries loads the enrolled student summaries for a set of courses
func (r *CourseRepository) studentSummaries(ctx context.Context, courseIDs []int64) (map[int64][]models.StudentSummary, error) {
	query := `
		SELECT e.course_id, s.id, s.student_id, s.first_name, s.last_name, s.email, s.class
		FROM course_enrollments e
		JOIN students s ON s.id = e.student_id
		WHERE e.course_id = ANY($1)
		ORDER BY s.last_name, s.first_name
	`

	rows, err := r.db.Query(ctx, query, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading enrolled students: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.StudentSummary)
	for rows.Next() {
		var courseID int64
		var summary models.StudentSummary
		if err := rows.Scan(&courseID, &summary.ID, &summary.StudentID,
			&summary.FirstName, &summary.LastName, &summary.Email, &summary.Class); err != nil {
			return nil, err
		}
		result[courseID] = append(result[courseID], summary)
	}

	return result, rows.Err()
}

// CodeExists checks whether another course already uses this code.
// Codes are stored uppercase, so the check is case-insensitive as long as
// the caller normalizes first.
func (r *CourseRepository) CodeExists(ctx context.Context, courseCode string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE course_code = $1 AND id <> $2)`,
		courseCode, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course code existence: %w", err)
	}
	return exists, nil
}

// Update writes the merged course record
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	days := course.Schedule.Days
	if days == nil {
		days = []string{}
	}

	query := `
		UPDATE courses
		SET course_code = $1, course_name = $2, description = $3, credits = $4,
			instructor = $5, department = $6, schedule_days = $7,
			schedule_time = NULLIF($8, ''), capacity = $9, semester = $10,
			academic_year = $11, status = $12, updated_at = now()
		WHERE id = $13
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		course.CourseCode,
		course.CourseName,
		course.Description,
		course.Credits,
		course.Instructor,
		course.Department,
		days,
		course.Schedule.Time,
		course.Capacity,
		course.Semester,
		course.AcademicYear,
		course.Status,
		course.ID,
	).Scan(&course.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCourseNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "courses_course_code_key") {
			return apperrors.ErrCourseCodeAlreadyExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	return nil
}

// Delete removes a course and purges all enrollment pairings referencing it
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM course_enrollments WHERE course_id = $1`, id); err != nil {
			return fmt.Errorf("error purging enrollments: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}

		return nil
	})
}
