package booking

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

const (
	uniqueUserCourseConstraint = "uniq_user_course"
	courseForeignKeyConstraint = "bookings_course_id_fkey"
)

type Repository interface {
	// WithTx runs fn in one transaction. The Repository passed to fn is bound to it.
	// Calls nested inside an open transaction reuse it.
	WithTx(ctx context.Context, fn func(Repository) error) error

	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// LockByID reads the booking and holds a row lock until the transaction ends.
	LockByID(ctx context.Context, id string) (*Booking, error)
	Update(ctx context.Context, b *Booking) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error

	// ExistsForUserCourse checks for a booking of the pair, ignoring excludeBookingID.
	ExistsForUserCourse(ctx context.Context, userID, courseID, excludeBookingID string) (bool, error)
	// ListByUser returns every booking of the user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	// ListRecent returns the newest bookings across all users.
	ListRecent(ctx context.Context, limit int) ([]*Booking, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepository struct {
	pool *pgxpool.Pool
	db   querier
	inTx bool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool, db: pool}
}

func (r *pgxRepository) WithTx(ctx context.Context, fn func(Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&pgxRepository{pool: r.pool, db: tx, inTx: true})
	})
}

// mapWriteError turns constraint violations into domain errors.
func mapWriteError(err error) (error, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}
	switch {
	case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == uniqueUserCourseConstraint:
		return ErrDuplicateBooking, true
	case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == courseForeignKeyConstraint:
		return ErrCourseNotFound, true
	}
	return nil, false
}

func selectBookings(extra ...string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := []string{
		"b.id", "b.course_id", "b.user_id", "b.name", "b.email", "b.message", "b.status",
		"b.created_at", "b.updated_at",
		"c.title", "c.start_date", "c.end_date", "u.username", "u.email",
	}
	return psql.Select(append(cols, extra...)...).
		From("public.bookings b").
		Join("public.courses c ON b.course_id = c.id").
		Join("public.users u ON b.user_id = u.id")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.CourseID, &b.UserID, &b.Name, &b.Email, &b.Message, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
		&b.CourseTitle, &b.CourseStartDate, &b.CourseEndDate, &b.Username, &b.UserEmail,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("id", "course_id", "user_id", "name", "email", "message", "status").
		Values(b.ID, b.CourseID, b.UserID, b.Name, b.Email, b.Message, b.Status).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		if mapped, ok := mapWriteError(err); ok {
			return mapped
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getOne(ctx context.Context, id string, lock bool) (*Booking, error) {
	q := selectBookings().Where(squirrel.Eq{"b.id": id})
	if lock {
		q = q.Suffix("FOR UPDATE OF b")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return r.getOne(ctx, id, false)
}

func (r *pgxRepository) LockByID(ctx context.Context, id string) (*Booking, error) {
	return r.getOne(ctx, id, true)
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("course_id", b.CourseID).
		Set("name", b.Name).
		Set("email", b.Email).
		Set("message", b.Message).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped, ok := mapWriteError(err); ok {
			return mapped
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ExistsForUserCourse(ctx context.Context, userID, courseID, excludeBookingID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"user_id": userID, "course_id": courseID})
	if excludeBookingID != "" {
		sub = sub.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	subSQL, args, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("build duplicate check query failed: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS ("+subSQL+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("duplicate check failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*Booking, error) {
	query, args, err := q.OrderBy("b.created_at DESC", "b.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings failed: %w", err)
	}
	return bookings, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	return r.list(ctx, selectBookings().Where(squirrel.Eq{"b.user_id": userID}))
}

func (r *pgxRepository) ListRecent(ctx context.Context, limit int) ([]*Booking, error) {
	return r.list(ctx, selectBookings().Limit(uint64(limit)))
}

func (r *pgxRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("status", "count(*)").
		From("public.bookings").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count bookings query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count bookings failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var st Status
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan booking count failed: %w", err)
		}
		counts[st] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking counts failed: %w", err)
	}
	return counts, nil
}
