package lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, l *Lesson) error
	// GetByID loads the lesson with its exercises.
	GetByID(ctx context.Context, id string) (*Lesson, error)
	List(ctx context.Context, filter Filter) ([]*Lesson, int, error)
	Update(ctx context.Context, l *Lesson) error
	// Delete removes the lesson and its exercises.
	Delete(ctx context.Context, id string) error

	AddExercise(ctx context.Context, e *Exercise) error
	DeleteExercise(ctx context.Context, lessonID, exerciseID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, l *Lesson) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.lessons").
		Columns("title", "description", "content").
		Values(l.Title, l.Description, l.Content).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create lesson query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return fmt.Errorf("create lesson failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Lesson, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "title", "description", "content", "created_at", "updated_at").
		From("public.lessons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get lesson query failed: %w", err)
	}

	var l Lesson
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.Title, &l.Description, &l.Content, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lesson failed: %w", err)
	}

	exercises, err := r.listExercises(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.Exercises = exercises
	return &l, nil
}

func (r *pgxRepository) listExercises(ctx context.Context, lessonID string) ([]*Exercise, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "lesson_id", "question", "correct_answer",
		"option_1", "option_2", "option_3", "explanation", "created_at",
	).
		From("public.exercises").
		Where(squirrel.Eq{"lesson_id": lessonID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list exercises query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises failed: %w", err)
	}
	defer rows.Close()

	var exercises []*Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(
			&e.ID, &e.LessonID, &e.Question, &e.CorrectAnswer,
			&e.Option1, &e.Option2, &e.Option3, &e.Explanation, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan exercise failed: %w", err)
		}
		exercises = append(exercises, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises failed: %w", err)
	}
	return exercises, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Lesson, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "title", "description", "content", "created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.lessons")

	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"title": "%" + filter.Keyword + "%"},
			squirrel.ILike{"description": "%" + filter.Keyword + "%"},
		})
	}

	query = query.OrderBy("title ASC", "id ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list lessons query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lessons failed: %w", err)
	}
	defer rows.Close()

	var result []*Lesson
	var total int
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &l.Content, &l.CreatedAt, &l.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan lesson failed: %w", err)
		}
		result = append(result, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate lessons failed: %w", err)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, l *Lesson) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.lessons").
		Set("title", l.Title).
		Set("description", l.Description).
		Set("content", l.Content).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": l.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update lesson query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update lesson failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.lessons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete lesson query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete lesson failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddExercise(ctx context.Context, e *Exercise) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.exercises").
		Columns("lesson_id", "question", "correct_answer", "option_1", "option_2", "option_3", "explanation").
		Values(e.LessonID, e.Question, e.CorrectAnswer, e.Option1, e.Option2, e.Option3, e.Explanation).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create exercise query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("create exercise failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) DeleteExercise(ctx context.Context, lessonID, exerciseID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.exercises").
		Where(squirrel.Eq{"id": exerciseID, "lesson_id": lessonID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete exercise query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete exercise failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}
