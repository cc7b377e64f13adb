package course

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for courses.
type Repository interface {
	Create(ctx context.Context, c *Course) error
	GetByID(ctx context.Context, id string) (*Course, error)
	// List returns one page of courses ordered by start date, then title.
	List(ctx context.Context, filter CourseFilter) ([]*Course, int, error)
	// ListAll returns every course in the same order as List.
	ListAll(ctx context.Context) ([]*Course, error)
	Update(ctx context.Context, c *Course) error
	// Delete removes the course; its bookings go with it.
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// bookedCountColumn counts bookings that hold a seat.
const bookedCountColumn = "(SELECT count(*) FROM public.bookings b " +
	"WHERE b.course_id = c.id AND b.status IN ('pending', 'confirmed')) AS booked_count"

func selectCourses(extra ...string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := []string{
		"c.id", "c.title", "c.capacity", "c.start_date", "c.end_date",
		"c.created_at", "c.updated_at", bookedCountColumn,
	}
	return psql.Select(append(cols, extra...)...).
		From("public.courses c").
		OrderBy("c.start_date ASC", "c.title ASC", "c.id ASC")
}

func scanCourse(row pgx.Row, extra ...any) (*Course, error) {
	var c Course
	dest := []any{
		&c.ID, &c.Title, &c.Capacity, &c.StartDate, &c.EndDate,
		&c.CreatedAt, &c.UpdatedAt, &c.BookedCount,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgxRepository) Create(ctx context.Context, c *Course) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.courses").
		Columns("title", "capacity", "start_date", "end_date").
		Values(c.Title, c.Capacity, c.StartDate, c.EndDate).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create course query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("create course failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Course, error) {
	query, args, err := selectCourses().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get course query failed: %w", err)
	}

	c, err := scanCourse(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get course failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter CourseFilter) ([]*Course, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query, args, err := selectCourses("count(*) OVER() AS total_count").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list courses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courses failed: %w", err)
	}
	defer rows.Close()

	var courses []*Course
	var total int
	for rows.Next() {
		c, err := scanCourse(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan course failed: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate courses failed: %w", err)
	}

	return courses, total, nil
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Course, error) {
	query, args, err := selectCourses().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list all courses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all courses failed: %w", err)
	}
	defer rows.Close()

	var courses []*Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course failed: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses failed: %w", err)
	}
	return courses, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Course) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.courses").
		Set("title", c.Title).
		Set("capacity", c.Capacity).
		Set("start_date", c.StartDate).
		Set("end_date", c.EndDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update course query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update course failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete course query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete course failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
