package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atakan/campusadmin/internal/db"
	"github.com/atakan/campusadmin/internal/pkg/apperrors"
)

// EnrollmentRepository maintains the student/course enrollment pairing.
// Every mutation runs in a single transaction, so the two sides of the
// association can never diverge.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Enroll adds a pairing between a student and a course. The course row is
// locked before the capacity count, so concurrent enrolls into the same
// course serialize and capacity cannot be exceeded.
func (r *EnrollmentRepository) Enroll(ctx context.Context, studentID, courseID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var capacity int
		err := tx.QueryRow(ctx,
			`SELECT capacity FROM courses WHERE id = $1 FOR UPDATE`, courseID).Scan(&capacity)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCourseNotFound
			}
			return fmt.Errorf("error locking course: %w", err)
		}

		var studentExists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, studentID).Scan(&studentExists)
		if err != nil {
			return fmt.Errorf("error checking student existence: %w", err)
		}
		if !studentExists {
			return apperrors.ErrStudentNotFound
		}

		var enrolled bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM course_enrollments WHERE student_id = $1 AND course_id = $2)`,
			studentID, courseID).Scan(&enrolled)
		if err != nil {
			return fmt.Errorf("error checking enrollment: %w", err)
		}
		if enrolled {
			return apperrors.ErrAlreadyEnrolled
		}

		var count int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM course_enrollments WHERE course_id = $1`, courseID).Scan(&count)
		if err != nil {
			return fmt.Errorf("error counting enrollments: %w", err)
		}
		if count >= capacity {
			return apperrors.ErrCourseFull
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO course_enrollments (student_id, course_id) VALUES ($1, $2)`,
			studentID, courseID); err != nil {
			return fmt.Errorf("error inserting enrollment: %w", err)
		}

		return nil
	})
}

// Unenroll removes the pairing between a student and a course. Both
// entities must exist; removing an absent pairing is a no-op.
func (r *EnrollmentRepository) Unenroll(ctx context.Context, studentID, courseID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var studentExists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, studentID).Scan(&studentExists)
		if err != nil {
			return fmt.Errorf("error checking student existence: %w", err)
		}
		if !studentExists {
			return apperrors.ErrStudentNotFound
		}

		var courseExists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&courseExists)
		if err != nil {
			return fmt.Errorf("error checking course existence: %w", err)
		}
		if !courseExists {
			return apperrors.ErrCourseNotFound
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM course_enrollments WHERE student_id = $1 AND course_id = $2`,
			studentID, courseID); err != nil {
			return fmt.Errorf("error deleting enrollment: %w", err)
		}

		return nil
	})
}

// AddStudentToCourses set-adds the student to every resolvable course id.
// Ids that don't resolve are skipped and capacity is not checked; this is
// the lax initial-enrollment path used at student creation.
func (r *EnrollmentRepository) AddStudentToCourses(ctx context.Context, studentID int64, courseIDs []int64) error {
	if len(courseIDs) == 0 {
		return nil
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO course_enrollments (student_id, course_id)
		SELECT $1, c.id FROM courses c WHERE c.id = ANY($2)
		ON CONFLICT DO NOTHING`,
		studentID, courseIDs)
	if err != nil {
		return fmt.Errorf("error adding initial enrollments: %w", err)
	}

	return nil
}

// CourseIDsForStudent returns the ids of all courses the student is enrolled in
func (r *EnrollmentRepository) CourseIDsForStudent(ctx context.Context, studentID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT course_id FROM course_enrollments WHERE student_id = $1 ORDER BY course_id`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error loading enrollments: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
