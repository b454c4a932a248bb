package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/bachlog/internal/db"
	"github.com/alexanderramin/bachlog/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo using a SQLite database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

// NewSQLiteCourseRepo creates a new SQLiteCourseRepo.
func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

const courseColumns = `id, uuid, semester, code, title, credits, is_autumn_course, is_spring_course,
	curriculum, module, comment, grade, created_at, updated_at`

func (r *SQLiteCourseRepo) Create(ctx context.Context, c *domain.CourseRecord) error {
	if err := c.Validate(); err != nil {
		return err
	}

	now := nowUTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	query := `INSERT INTO courses (uuid, semester, code, title, credits, is_autumn_course, is_spring_course,
		curriculum, module, comment, grade, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		emptyToNull(c.UUID),
		c.Semester,
		c.Code,
		c.Title,
		c.Credits,
		boolToInt(c.IsAutumnCourse),
		boolToInt(c.IsSpringCourse),
		c.Curriculum,
		nullableString(c.Module),
		c.Comment,
		c.Grade,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: inserting course %s: %v", domain.ErrPersistence, c.Code, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: reading course id: %v", domain.ErrPersistence, err)
	}
	c.ID = id
	return nil
}

func (r *SQLiteCourseRepo) FindByID(ctx context.Context, id int64) (*domain.CourseRecord, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	c, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", domain.ErrCourseNotFound, id)
		}
		return nil, err
	}
	return c, nil
}

func (r *SQLiteCourseRepo) FindAll(ctx context.Context) ([]*domain.CourseRecord, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY semester, code, id`
	return r.queryCourses(ctx, "listing courses", query)
}

func (r *SQLiteCourseRepo) FindByCode(ctx context.Context, code string) ([]*domain.CourseRecord, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE UPPER(code) = UPPER(?) ORDER BY semester, id`
	return r.queryCourses(ctx, "listing courses by code", query, strings.TrimSpace(code))
}

func (r *SQLiteCourseRepo) FindBySemester(ctx context.Context, semester int) ([]*domain.CourseRecord, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE semester = ? ORDER BY code, id`
	return r.queryCourses(ctx, "listing courses by semester", query, semester)
}

func (r *SQLiteCourseRepo) UpdateSemester(ctx context.Context, id int64, semester int) error {
	if err := domain.ValidateSemester(semester); err != nil {
		return err
	}
	return r.updateField(ctx, id, "semester", `UPDATE courses SET semester = ?, updated_at = ? WHERE id = ?`, semester)
}

func (r *SQLiteCourseRepo) UpdateSeason(ctx context.Context, id int64, autumn, spring bool) error {
	query := `UPDATE courses SET is_autumn_course = ?, is_spring_course = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, boolToInt(autumn), boolToInt(spring), nowUTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("%w: updating season: %v", domain.ErrPersistence, err)
	}
	return requireAffected(res, id)
}

func (r *SQLiteCourseRepo) UpdateCurriculum(ctx context.Context, id int64, curriculum string) error {
	return r.updateField(ctx, id, "curriculum", `UPDATE courses SET curriculum = ?, updated_at = ? WHERE id = ?`, curriculum)
}

func (r *SQLiteCourseRepo) UpdateModule(ctx context.Context, id int64, module *string) error {
	return r.updateField(ctx, id, "module", `UPDATE courses SET module = ?, updated_at = ? WHERE id = ?`, nullableString(module))
}

func (r *SQLiteCourseRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting course: %v", domain.ErrPersistence, err)
	}
	return requireAffected(res, id)
}

func (r *SQLiteCourseRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses`)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting courses: %v", domain.ErrPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: counting deleted courses: %v", domain.ErrPersistence, err)
	}
	return n, nil
}

func (r *SQLiteCourseRepo) updateField(ctx context.Context, id int64, field, query string, value any) error {
	res, err := r.db.ExecContext(ctx, query, value, nowUTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("%w: updating %s: %v", domain.ErrPersistence, field, err)
	}
	return requireAffected(res, id)
}

func (r *SQLiteCourseRepo) queryCourses(ctx context.Context, op, query string, args ...any) ([]*domain.CourseRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var courses []*domain.CourseRecord
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterating: %w", op, err)
	}
	return courses, nil
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: reading affected rows: %v", domain.ErrPersistence, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrCourseNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanCourse reads one course row. Nullable scan targets keep rows written
// by the legacy schema (NULL title, comment, grade) readable.
func scanCourse(row rowScanner) (*domain.CourseRecord, error) {
	var c domain.CourseRecord
	var uuid, title, module, comment, grade, curriculum sql.NullString
	var credits sql.NullFloat64
	var autumn, spring sql.NullInt64
	var createdAt, updatedAt sql.NullString

	err := row.Scan(
		&c.ID, &uuid, &c.Semester, &c.Code, &title, &credits,
		&autumn, &spring, &curriculum, &module, &comment, &grade,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}

	c.UUID = uuid.String
	c.Title = title.String
	c.Credits = credits.Float64
	c.IsAutumnCourse = autumn.Int64 != 0
	c.IsSpringCourse = spring.Int64 != 0
	c.Curriculum = curriculum.String
	c.Module = stringPtr(module)
	c.Comment = comment.String
	c.Grade = grade.String
	c.CreatedAt = parseTimestamp(createdAt.String)
	c.UpdatedAt = parseTimestamp(updatedAt.String)

	return &c, nil
}
