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

const studentColumns = `
	id, student_id, first_name, last_name, email, phone,
	to_char(date_of_birth, 'YYYY-MM-DD'), class, section,
	COALESCE(address_street, ''), COALESCE(address_city, ''),
	COALESCE(address_state, ''), COALESCE(address_zip, ''),
	status, created_at, updated_at`

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.StudentID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.Phone,
		&student.DateOfBirth,
		&student.Class,
		&student.Section,
		&student.Address.Street,
		&student.Address.City,
		&student.Address.State,
		&student.Address.Zip,
		&student.Status,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (
			student_id, first_name, last_name, email, phone, date_of_birth,
			class, section, address_street, address_city, address_state, address_zip, status
		)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8,
			NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), $13)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.StudentID,
		student.FirstName,
		student.LastName,
		student.Email,
		student.Phone,
		student.DateOfBirth,
		student.Class,
		student.Section,
		student.Address.Street,
		student.Address.City,
		student.Address.State,
		student.Address.Zip,
		student.Status,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		// The service pre-checks uniqueness; a constraint hit here means a
		// concurrent insert won the race.
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student with their enrolled course summaries
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	courses, err := r.courseSummaries(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	student.EnrolledCourses = courses[id]
	if student.EnrolledCourses == nil {
		student.EnrolledCourses = []models.CourseSummary{}
	}

	return student, nil
}

// List retrieves students matching the filter, newest first
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students`

	var conds []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, filter.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(first_name ILIKE '%%' || $%d || '%%' OR last_name ILIKE '%%' || $%d || '%%'
			  OR student_id ILIKE '%%' || $%d || '%%' OR class ILIKE '%%' || $%d || '%%')`,
			n, n, n, n))
	}
	if filter.Class != "" {
		args = append(args, filter.Class)
		conds = append(conds, fmt.Sprintf("class = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CourseID > 0 {
		args = append(args, filter.CourseID)
		conds = append(conds, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM course_enrollments e WHERE e.student_id = students.id AND e.course_id = $%d)`,
			len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	var ids []int64
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		student.EnrolledCourses = []models.CourseSummary{}
		students = append(students, student)
		ids = append(ids, student.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		courses, err := r.courseSummaries(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, student := range students {
			if list, ok := courses[student.ID]; ok {
				student.EnrolledCourses = list
			}
		}
	}

	return students, nil
}

// courseSummaries loads the enrolled course summaries for a set of students
func (r *StudentRepository) courseSummaries(ctx context.Context, studentIDs []int64) (map[int64][]models.CourseSummary, error) {
	query := `
		SELECT e.student_id, c.id, c.course_code, c.course_name
		FROM course_enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = ANY($1)
		ORDER BY c.course_code
	`

	rows, err := r.db.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading enrolled courses: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.CourseSummary)
	for rows.Next() {
		var studentID int64
		var summary models.CourseSummary
		if err := rows.Scan(&studentID, &summary.ID, &summary.CourseCode, &summary.CourseName); err != nil {
			return nil, err
		}
		result[studentID] = append(result[studentID], summary)
	}

	return result, rows.Err()
}

// StudentIDExists checks whether another student already uses this student number
func (r *StudentRepository) StudentIDExists(ctx context.Context, studentID string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1 AND id <> $2)`,
		studentID, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student ID existence: %w", err)
	}
	return exists, nil
}

// EmailExists checks whether another student already uses this email
func (r *StudentRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE email = $1 AND id <> $2)`,
		email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// Update writes the merged student record and applies the enrollment diff
// in the same transaction: addCourseIDs are set-added, removeCourseIDs
// set-pulled.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student, addCourseIDs, removeCourseIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE students
			SET student_id = $1, first_name = $2, last_name = $3, email = $4,
				phone = $5, date_of_birth = $6::date, class = $7, section = $8,
				address_street = NULLIF($9, ''), address_city = NULLIF($10, ''),
				address_state = NULLIF($11, ''), address_zip = NULLIF($12, ''),
				status = $13, updated_at = now()
			WHERE id = $14
			RETURNING updated_at
		`

		err := tx.QueryRow(ctx, query,
			student.StudentID,
			student.FirstName,
			student.LastName,
			student.Email,
			student.Phone,
			student.DateOfBirth,
			student.Class,
			student.Section,
			student.Address.Street,
			student.Address.City,
			student.Address.State,
			student.Address.Zip,
			student.Status,
			student.ID,
		).Scan(&student.UpdatedAt)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrStudentNotFound
			}
			if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
				return apperrors.ErrStudentIDAlreadyExists
			}
			if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error updating student: %w", err)
		}

		if len(removeCourseIDs) > 0 {
			_, err := tx.Exec(ctx,
				`DELETE FROM course_enrollments WHERE student_id = $1 AND course_id = ANY($2)`,
				student.ID, removeCourseIDs)
			if err != nil {
				return fmt.Errorf("error removing enrollments: %w", err)
			}
		}

		if len(addCourseIDs) > 0 {
			// Ids that don't resolve to a course are skipped; ON CONFLICT
			// keeps the pairing a set.
			_, err := tx.Exec(ctx, `
				INSERT INTO course_enrollments (student_id, course_id)
				SELECT $1, c.id FROM courses c WHERE c.id = ANY($2)
				ON CONFLICT DO NOTHING`,
				student.ID, addCourseIDs)
			if err != nil {
				return fmt.Errorf("error adding enrollments: %w", err)
			}
		}

		return nil
	})
}

// Delete removes a student and purges all enrollment pairings referencing them
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM course_enrollments WHERE student_id = $1`, id); err != nil {
			return fmt.Errorf("error purging enrollments: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting student: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}

		return nil
	})
}
